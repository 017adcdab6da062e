package profiler

import (
	"testing"

	"github.com/BerylCAtieno/product-survey/internal/models"
	"github.com/stretchr/testify/assert"
)

var persona = models.Persona{Gender: models.Female, AgeGroup: "25-34", IncomeBracket: "$100,000-$149,999"}

func TestParseProfile(t *testing.T) {
	text := "location: Urban, occupation: UX Designer, pain_points: lack of time, motivations: convenience, quality, interests: gaming, travel, photography, channel: YouTube\n"

	got := ParseProfile(text, persona)
	assert.Equal(t, models.CustomerProfile{
		Age:               "25-34",
		Gender:            models.Female,
		Location:          "Urban",
		Occupation:        "UX Designer",
		Income:            "$100,000-$149,999",
		PainPoints:        []string{"lack of time"},
		Motivations:       []string{"convenience", "quality"},
		Interests:         []string{"gaming", "travel", "photography"},
		PreferredChannels: []string{"YouTube"},
	}, got)
}

func TestParseProfile_ModelOverridesDemographics(t *testing.T) {
	got := ParseProfile("age: 30-34, occupation: Nurse", persona)
	assert.Equal(t, "30-34", got.Age)
	assert.Equal(t, "Nurse", got.Occupation)
	assert.Nil(t, got.Interests)
}

func TestParseProfile_Garbage(t *testing.T) {
	got := ParseProfile("I cannot help with that.", persona)
	assert.Equal(t, persona.Gender, got.Gender)
	assert.Empty(t, got.Occupation)
	assert.Empty(t, Sketch(models.CustomerProfile{}))
}

func TestSketch(t *testing.T) {
	p := ParseProfile("location: Suburban, occupation: Teacher, pain_points: budget, motivations: learning, channel: Facebook", persona)
	assert.Equal(t, "Teacher; Suburban; motivated by learning; struggles with budget; reached via Facebook", Sketch(p))
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(persona, "72.50%")
	assert.Contains(t, prompt, "Female")
	assert.Contains(t, prompt, "25-34")
	assert.Contains(t, prompt, "$100,000-$149,999")
	assert.Contains(t, prompt, "72.50%")
}
