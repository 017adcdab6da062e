package models

import (
	"strconv"
	"strings"
)

// Table names in the survey spreadsheet.
const (
	InputDataTable    = "Input data"
	StoredSearchTable = "Stored last search"
)

// Column headers, in sheet order.
const (
	ColumnGender               = "Gender"
	ColumnAgeGroup             = "Age Group"
	ColumnIncomeBracket        = "Income Bracket"
	ColumnLikelihood           = "Likelihood"
	ColumnLikelihoodPercentage = "Likelihood Percentage"
)

var (
	InputDataHeader    = []string{ColumnGender, ColumnAgeGroup, ColumnIncomeBracket, ColumnLikelihood}
	StoredSearchHeader = []string{ColumnGender, ColumnAgeGroup, ColumnIncomeBracket, ColumnLikelihoodPercentage}
)

// Likelihood scale bounds.
const (
	MinLikelihood = 0
	MaxLikelihood = 10
)

// Choice pairs the key a user types with the value stored in the sheet.
type Choice struct {
	Key   string
	Value string
}

// Choices is an ordered enumeration.
type Choices []Choice

// Lookup returns the value bound to key.
func (c Choices) Lookup(key string) (string, bool) {
	for _, ch := range c {
		if ch.Key == key {
			return ch.Value, true
		}
	}
	return "", false
}

// Contains reports whether value is a member of the enumeration.
func (c Choices) Contains(value string) bool {
	for _, ch := range c {
		if ch.Value == value {
			return true
		}
	}
	return false
}

// Values returns the enumeration values in order.
func (c Choices) Values() []string {
	out := make([]string, len(c))
	for i, ch := range c {
		out[i] = ch.Value
	}
	return out
}

const (
	Male   = "Male"
	Female = "Female"
)

var GenderChoices = Choices{
	{Key: "M", Value: Male},
	{Key: "F", Value: Female},
}

var AgeGroupChoices = Choices{
	{Key: "1", Value: "18-24"},
	{Key: "2", Value: "25-34"},
	{Key: "3", Value: "35-44"},
	{Key: "4", Value: "45-54"},
	{Key: "5", Value: "55-64"},
	{Key: "6", Value: "65+"},
}

var IncomeBracketChoices = Choices{
	{Key: "1", Value: "$25,000-$49,999"},
	{Key: "2", Value: "$50,000-$74,999"},
	{Key: "3", Value: "$75,000-$99,999"},
	{Key: "4", Value: "$100,000-$149,999"},
	{Key: "5", Value: "$150,000 or more"},
}

// SurveyRecord is one survey response. Records are append-only.
type SurveyRecord struct {
	Gender        string `json:"gender"`
	AgeGroup      string `json:"age_group"`
	IncomeBracket string `json:"income_bracket"`
	Likelihood    int    `json:"likelihood"`
}

// Persona returns the categorical part of the record.
func (r SurveyRecord) Persona() Persona {
	return Persona{Gender: r.Gender, AgeGroup: r.AgeGroup, IncomeBracket: r.IncomeBracket}
}

// Validate checks every field against its enumeration and the likelihood scale.
func (r SurveyRecord) Validate() error {
	if err := r.Persona().Validate(); err != nil {
		return err
	}
	if r.Likelihood < MinLikelihood || r.Likelihood > MaxLikelihood {
		return &FieldError{Field: ColumnLikelihood, Value: strconv.Itoa(r.Likelihood)}
	}
	return nil
}

// Row returns the record as a sheet row in InputDataHeader order.
func (r SurveyRecord) Row() []interface{} {
	return []interface{}{r.Gender, r.AgeGroup, r.IncomeBracket, r.Likelihood}
}

// Persona is a (gender, age group, income bracket) filter key.
type Persona struct {
	Gender        string `json:"gender"`
	AgeGroup      string `json:"age_group"`
	IncomeBracket string `json:"income_bracket"`
}

// Validate checks every field against its enumeration.
func (p Persona) Validate() error {
	switch {
	case !GenderChoices.Contains(p.Gender):
		return &FieldError{Field: ColumnGender, Value: p.Gender}
	case !AgeGroupChoices.Contains(p.AgeGroup):
		return &FieldError{Field: ColumnAgeGroup, Value: p.AgeGroup}
	case !IncomeBracketChoices.Contains(p.IncomeBracket):
		return &FieldError{Field: ColumnIncomeBracket, Value: p.IncomeBracket}
	}
	return nil
}

// String renders the persona the way the menu prints it.
func (p Persona) String() string {
	return strings.Join([]string{
		ColumnGender + ": " + p.Gender,
		ColumnAgeGroup + ": " + p.AgeGroup,
		ColumnIncomeBracket + ": " + p.IncomeBracket,
	}, ", ")
}

// StoredSearchResult is a persona lookup the user chose to keep.
type StoredSearchResult struct {
	Persona
	LikelihoodPercentage string `json:"likelihood_percentage"`
}

// Row returns the result as a sheet row in StoredSearchHeader order.
func (s StoredSearchResult) Row() []interface{} {
	return []interface{}{s.Gender, s.AgeGroup, s.IncomeBracket, s.LikelihoodPercentage}
}

// Fields returns header/value pairs in sheet order.
func (s StoredSearchResult) Fields() [][2]string {
	return [][2]string{
		{ColumnGender, s.Gender},
		{ColumnAgeGroup, s.AgeGroup},
		{ColumnIncomeBracket, s.IncomeBracket},
		{ColumnLikelihoodPercentage, s.LikelihoodPercentage},
	}
}

// FieldError reports a value outside its enumeration or range.
type FieldError struct {
	Field string
	Value string
}

func (e *FieldError) Error() string {
	return "invalid " + strings.ToLower(e.Field) + ": " + strconv.Quote(e.Value)
}
