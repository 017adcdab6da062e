package stats

import (
	"fmt"

	"github.com/BerylCAtieno/product-survey/internal/models"
)

// Dimension names a categorical column records can be grouped by.
type Dimension string

const (
	DimensionGender        Dimension = "gender"
	DimensionAgeGroup      Dimension = "age_group"
	DimensionIncomeBracket Dimension = "income_bracket"
)

// ParseDimension validates a dimension name.
func ParseDimension(s string) (Dimension, error) {
	switch d := Dimension(s); d {
	case DimensionGender, DimensionAgeGroup, DimensionIncomeBracket:
		return d, nil
	}
	return "", fmt.Errorf("unknown dimension %q", s)
}

// Choices returns the enumeration a dimension ranges over.
func (d Dimension) Choices() models.Choices {
	switch d {
	case DimensionGender:
		return models.GenderChoices
	case DimensionAgeGroup:
		return models.AgeGroupChoices
	case DimensionIncomeBracket:
		return models.IncomeBracketChoices
	}
	return nil
}

func (d Dimension) filter(value string) Filter {
	switch d {
	case DimensionGender:
		return ByGender(value)
	case DimensionAgeGroup:
		return ByAgeGroup(value)
	case DimensionIncomeBracket:
		return ByIncomeBracket(value)
	}
	return Filter{}
}

// Group is the aggregation for one value of a dimension.
type Group struct {
	Value string `json:"value"`
	Result
}

// Breakdown returns one group per enumeration value, in enumeration order.
// Values with no records are included with an empty Result.
func Breakdown(records []models.SurveyRecord, d Dimension) []Group {
	choices := d.Choices()
	groups := make([]Group, 0, len(choices))
	for _, ch := range choices {
		groups = append(groups, Group{
			Value:  ch.Value,
			Result: Likelihood(records, d.filter(ch.Value)),
		})
	}
	return groups
}
