package prompt

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/BerylCAtieno/product-survey/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPrompter(input string) (*Prompter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return New(strings.NewReader(input), out), out
}

func TestGender_AcceptsAllMembers(t *testing.T) {
	tests := map[string]string{
		"M\n":   models.Male,
		"m\n":   models.Male,
		" f \n": models.Female,
		"F\n":   models.Female,
	}
	for input, want := range tests {
		p, _ := newPrompter(input)
		got, err := p.Gender()
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
}

func TestGender_RepromptsOnInvalid(t *testing.T) {
	p, out := newPrompter("x\nmale\n\nF\n")
	got, err := p.Gender()
	require.NoError(t, err)
	assert.Equal(t, models.Female, got)
	assert.Equal(t, 3, strings.Count(out.String(), "Invalid choice. Please choose either 'M' or 'F'."))
}

func TestAgeGroup_AcceptsAllMembersRejectsOthers(t *testing.T) {
	for _, ch := range models.AgeGroupChoices {
		p, _ := newPrompter(ch.Key + "\n")
		got, err := p.AgeGroup()
		require.NoError(t, err)
		assert.Equal(t, ch.Value, got)
	}

	p, out := newPrompter("0\n7\n18-24\nabc\n2\n")
	got, err := p.AgeGroup()
	require.NoError(t, err)
	assert.Equal(t, "25-34", got)
	assert.Equal(t, 4, strings.Count(out.String(), "between 1 and 6"))
	assert.Contains(t, out.String(), "6: 65+")
}

func TestIncomeBracket_AcceptsAllMembersRejectsOthers(t *testing.T) {
	for _, ch := range models.IncomeBracketChoices {
		p, _ := newPrompter(ch.Key + "\n")
		got, err := p.IncomeBracket()
		require.NoError(t, err)
		assert.Equal(t, ch.Value, got)
	}

	p, out := newPrompter("6\n5\n")
	got, err := p.IncomeBracket()
	require.NoError(t, err)
	assert.Equal(t, "$150,000 or more", got)
	assert.Equal(t, 1, strings.Count(out.String(), "between 1 and 5"))
}

func TestParseLikelihood(t *testing.T) {
	for v := 0; v <= 10; v++ {
		got, ok := ParseLikelihood(strconv.Itoa(v))
		assert.True(t, ok, v)
		assert.Equal(t, v, got)
	}
	got, ok := ParseLikelihood("07")
	assert.True(t, ok)
	assert.Equal(t, 7, got)

	for _, bad := range []string{"", "11", "-1", "+5", "5.0", "ten", " 5", "100"} {
		_, ok := ParseLikelihood(bad)
		assert.False(t, ok, bad)
	}
}

func TestLikelihood_Reprompts(t *testing.T) {
	p, out := newPrompter("11\nseven\n7\n")
	got, err := p.Likelihood()
	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.Equal(t, 2, strings.Count(out.String(), "Invalid input. Please enter a number between 0 and 10."))
}

func TestYesNo(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"No\n", false},
		{"maybe\ny\n", true},
	}
	for _, tt := range tests {
		p, _ := newPrompter(tt.input)
		got, err := p.YesNo("store? ")
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestInputClosed(t *testing.T) {
	p, _ := newPrompter("x\ny\n")
	_, err := p.Gender()
	assert.ErrorIs(t, err, ErrInputClosed)

	p, _ = newPrompter("")
	err = p.WaitForEnter("Press Enter")
	assert.ErrorIs(t, err, ErrInputClosed)
}

func TestLine_LastLineWithoutNewline(t *testing.T) {
	p, _ := newPrompter("F")
	got, err := p.Gender()
	require.NoError(t, err)
	assert.Equal(t, models.Female, got)
}

func TestPersona(t *testing.T) {
	p, _ := newPrompter("m\n3\n4\n")
	got, err := p.Persona()
	require.NoError(t, err)
	assert.Equal(t, models.Persona{Gender: models.Male, AgeGroup: "35-44", IncomeBracket: "$100,000-$149,999"}, got)
}
