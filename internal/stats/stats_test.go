package stats

import (
	"math/rand"
	"testing"

	"github.com/BerylCAtieno/product-survey/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(gender, age, income string, likelihood int) models.SurveyRecord {
	return models.SurveyRecord{Gender: gender, AgeGroup: age, IncomeBracket: income, Likelihood: likelihood}
}

var sample = []models.SurveyRecord{
	record(models.Male, "18-24", "$25,000-$49,999", 8),
	record(models.Male, "25-34", "$50,000-$74,999", 4),
	record(models.Female, "18-24", "$50,000-$74,999", 6),
	record(models.Female, "65+", "$150,000 or more", 10),
	record(models.Female, "18-24", "$25,000-$49,999", 2),
}

func TestLikelihood(t *testing.T) {
	tests := []struct {
		name    string
		filter  Filter
		matched int
		want    float64
	}{
		{"no filter", Filter{}, 5, 60},
		{"gender male", ByGender(models.Male), 2, 60},
		{"gender female", ByGender(models.Female), 3, 60},
		{"age group", ByAgeGroup("18-24"), 3, 53.333333333333336},
		{"income bracket", ByIncomeBracket("$50,000-$74,999"), 2, 50},
		{"gender and age", ByGenderAndAgeGroup(models.Female, "18-24"), 2, 40},
		{"gender and income", ByGenderAndIncomeBracket(models.Male, "$25,000-$49,999"), 1, 80},
		{"age and income", ByAgeGroupAndIncomeBracket("18-24", "$25,000-$49,999"), 2, 50},
		{"persona", ByPersona(models.Persona{Gender: models.Female, AgeGroup: "65+", IncomeBracket: "$150,000 or more"}), 1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Likelihood(sample, tt.filter)
			assert.Equal(t, tt.matched, got.Matched)
			assert.InDelta(t, tt.want, got.Percentage, 1e-9)
			assert.False(t, got.Empty())
		})
	}
}

func TestLikelihood_NoMatchReturnsZero(t *testing.T) {
	got := Likelihood(sample, ByGenderAndAgeGroup(models.Male, "65+"))
	assert.True(t, got.Empty())
	assert.Equal(t, Result{}, got)

	got = Likelihood(nil, Filter{})
	assert.True(t, got.Empty())
	assert.Zero(t, got.Percentage)
}

func TestLikelihood_SkipsOutOfScale(t *testing.T) {
	records := []models.SurveyRecord{
		record(models.Male, "18-24", "$25,000-$49,999", 10),
		record(models.Male, "18-24", "$25,000-$49,999", 42),
		record(models.Male, "18-24", "$25,000-$49,999", -3),
	}
	got := Likelihood(records, ByGender(models.Male))
	assert.Equal(t, 1, got.Matched)
	assert.Equal(t, 100.0, got.Percentage)
}

func TestLikelihood_PercentageInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var records []models.SurveyRecord
	for i := 0; i < 500; i++ {
		records = append(records, record(
			models.GenderChoices[rng.Intn(len(models.GenderChoices))].Value,
			models.AgeGroupChoices[rng.Intn(len(models.AgeGroupChoices))].Value,
			models.IncomeBracketChoices[rng.Intn(len(models.IncomeBracketChoices))].Value,
			rng.Intn(11),
		))
	}

	for _, g := range models.GenderChoices {
		for _, a := range models.AgeGroupChoices {
			for _, inc := range models.IncomeBracketChoices {
				p := models.Persona{Gender: g.Value, AgeGroup: a.Value, IncomeBracket: inc.Value}
				got := Likelihood(records, ByPersona(p))
				assert.GreaterOrEqual(t, got.Percentage, 0.0, p.String())
				assert.LessOrEqual(t, got.Percentage, 100.0, p.String())
			}
		}
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "66.67%", FormatPercentage(200.0/3))
	assert.Equal(t, "0.00%", FormatPercentage(0))
	assert.Equal(t, "100.00%", Result{Matched: 1, Percentage: 100}.Formatted())
}

func TestBreakdown(t *testing.T) {
	groups := Breakdown(sample, DimensionAgeGroup)
	require.Len(t, groups, len(models.AgeGroupChoices))

	assert.Equal(t, "18-24", groups[0].Value)
	assert.Equal(t, 3, groups[0].Matched)
	assert.Equal(t, "35-44", groups[2].Value)
	assert.True(t, groups[2].Empty())
	assert.Equal(t, "65+", groups[5].Value)
	assert.Equal(t, 100.0, groups[5].Percentage)
}

func TestParseDimension(t *testing.T) {
	d, err := ParseDimension("income_bracket")
	require.NoError(t, err)
	assert.Equal(t, DimensionIncomeBracket, d)

	_, err = ParseDimension("likelihood")
	assert.Error(t, err)
}
