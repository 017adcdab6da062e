// Package stats computes purchase-likelihood percentages over survey records.
package stats

import (
	"fmt"

	"github.com/BerylCAtieno/product-survey/internal/models"
)

// Filter restricts records by zero or more categorical dimensions.
// An empty field matches any value.
type Filter struct {
	Gender        string
	AgeGroup      string
	IncomeBracket string
}

func ByGender(gender string) Filter { return Filter{Gender: gender} }
func ByAgeGroup(ageGroup string) Filter { return Filter{AgeGroup: ageGroup} }
func ByIncomeBracket(income string) Filter { return Filter{IncomeBracket: income} }

func ByGenderAndAgeGroup(gender, ageGroup string) Filter {
	return Filter{Gender: gender, AgeGroup: ageGroup}
}

func ByGenderAndIncomeBracket(gender, income string) Filter {
	return Filter{Gender: gender, IncomeBracket: income}
}

func ByAgeGroupAndIncomeBracket(ageGroup, income string) Filter {
	return Filter{AgeGroup: ageGroup, IncomeBracket: income}
}

// ByPersona matches all three dimensions.
func ByPersona(p models.Persona) Filter {
	return Filter{Gender: p.Gender, AgeGroup: p.AgeGroup, IncomeBracket: p.IncomeBracket}
}

// Match reports whether r satisfies every set dimension.
func (f Filter) Match(r models.SurveyRecord) bool {
	if f.Gender != "" && r.Gender != f.Gender {
		return false
	}
	if f.AgeGroup != "" && r.AgeGroup != f.AgeGroup {
		return false
	}
	if f.IncomeBracket != "" && r.IncomeBracket != f.IncomeBracket {
		return false
	}
	return true
}

// Result is the outcome of one aggregation. A zero Result means no record matched.
type Result struct {
	Matched    int     `json:"matched"`
	Mean       float64 `json:"mean"`
	Percentage float64 `json:"percentage"`
}

// Empty reports whether no record contributed to the result.
func (r Result) Empty() bool { return r.Matched == 0 }

// Formatted renders the percentage with two decimals and a % suffix.
func (r Result) Formatted() string { return FormatPercentage(r.Percentage) }

// Likelihood filters records and returns mean(likelihood)/10*100.
// Records whose likelihood lies outside the 0..10 scale are skipped.
func Likelihood(records []models.SurveyRecord, f Filter) Result {
	var sum, n int
	for _, r := range records {
		if !f.Match(r) || !inScale(r.Likelihood) {
			continue
		}
		sum += r.Likelihood
		n++
	}
	if n == 0 {
		return Result{}
	}
	mean := float64(sum) / float64(n)
	return Result{
		Matched:    n,
		Mean:       mean,
		Percentage: mean / models.MaxLikelihood * 100,
	}
}

func inScale(v int) bool {
	return v >= models.MinLikelihood && v <= models.MaxLikelihood
}

// FormatPercentage renders p as "66.67%".
func FormatPercentage(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}
