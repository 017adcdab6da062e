package menu

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/BerylCAtieno/product-survey/internal/models"
	"github.com/BerylCAtieno/product-survey/internal/store"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func seeded() *store.MemoryStore {
	return store.NewMemoryStore(
		models.SurveyRecord{Gender: models.Male, AgeGroup: "18-24", IncomeBracket: "$25,000-$49,999", Likelihood: 8},
		models.SurveyRecord{Gender: models.Male, AgeGroup: "25-34", IncomeBracket: "$50,000-$74,999", Likelihood: 4},
		models.SurveyRecord{Gender: models.Female, AgeGroup: "18-24", IncomeBracket: "$50,000-$74,999", Likelihood: 6},
	)
}

// session runs the controller over a scripted input, one answer per line.
func session(t *testing.T, s store.Store, lines []string, opts ...Option) string {
	t.Helper()
	out := &bytes.Buffer{}
	c := New(s, strings.NewReader(strings.Join(lines, "\n")+"\n"), out, opts...)
	require.NoError(t, c.Run(context.Background()))
	return out.String()
}

func TestInsertData(t *testing.T) {
	s := store.NewMemoryStore()
	out := session(t, s, []string{
		"1",       // Insert Data
		"x", "f",  // gender, with one retry
		"2",       // 25-34
		"9", "3",  // income, with one retry
		"11", "7", // likelihood, with one retry
		"",        // press enter
		"4",       // exit
	})

	records, err := s.Records(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.SurveyRecord{
		{Gender: models.Female, AgeGroup: "25-34", IncomeBracket: "$75,000-$99,999", Likelihood: 7},
	}, records)
	assert.Contains(t, out, "Data has been successfully inserted into the spreadsheet.")
	assert.Contains(t, out, "Exiting the program...")
}

func TestExtract_Searches(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  string
	}{
		{"gender", []string{"1", "M"}, "Likelihood of purchase for Male is 60.00%"},
		{"age group", []string{"2", "1"}, "Likelihood of purchase for age group 18-24 is 70.00%"},
		{"income bracket", []string{"3", "2"}, "Likelihood of purchase for customers in the income bracket $50,000-$74,999 is 50.00%"},
		{"gender and age group", []string{"4", "F", "1"}, "Likelihood of purchase for Female and 18-24 is 60.00%"},
		{"gender and income bracket", []string{"5", "M", "1"}, "Likelihood of purchase for Male and $25,000-$49,999 is 80.00%"},
		{"age group and income bracket", []string{"6", "2", "2"}, "Likelihood of purchase for 25-34 and $50,000-$74,999 is 40.00%"},
		{"no data", []string{"4", "F", "6"}, "No data found for the specified combination."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := append([]string{"2"}, tt.input...)
			input = append(input, "", "8", "4")
			out := session(t, seeded(), input)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestCreatePersona_StoreAndView(t *testing.T) {
	s := seeded()
	out := session(t, s, []string{
		"2", "7", "m", "1", "1",
		"maybe", "yes", "",
		"8",
		"3", "1", "",
		"2", "",
		"3", "4",
	})

	assert.Contains(t, out, "Likelihood of purchase for persona Gender: Male, Age Group: 18-24, Income Bracket: $25,000-$49,999 is 80.00%")
	assert.Contains(t, out, "Invalid choice. Please enter 'Y' or 'N'.")
	assert.Contains(t, out, "Search results stored successfully.")
	assert.Contains(t, out, "Last Search Persona:")
	assert.Contains(t, out, "Likelihood Percentage: 80.00%")
	assert.Contains(t, out, "LIKELIHOOD PERCENTAGE")

	results, err := s.SearchResults(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.StoredSearchResult{{
		Persona:              models.Persona{Gender: models.Male, AgeGroup: "18-24", IncomeBracket: "$25,000-$49,999"},
		LikelihoodPercentage: "80.00%",
	}}, results)
}

func TestCreatePersona_Decline(t *testing.T) {
	s := seeded()
	out := session(t, s, []string{"2", "7", "F", "1", "2", "n", "", "8", "4"})

	assert.Contains(t, out, "Search results not stored.")
	results, err := s.SearchResults(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestCreatePersona_NoData(t *testing.T) {
	out := session(t, seeded(), []string{"2", "7", "F", "6", "5", "", "8", "4"})
	assert.Contains(t, out, "No data found for the specified combination.")
	assert.NotContains(t, out, "Do you want to store the search results?")
}

func TestViewStoredData_Empty(t *testing.T) {
	out := session(t, store.NewMemoryStore(), []string{"3", "1", "", "2", "", "3", "4"})
	assert.Equal(t, 2, strings.Count(out, "No available data"))
}

func TestInvalidChoices(t *testing.T) {
	out := session(t, seeded(), []string{
		"9", "",
		"2", "0", "", "8",
		"3", "x", "", "3",
		"4",
	})
	assert.Contains(t, out, "Invalid choice...")
	assert.Equal(t, 2, strings.Count(out, "Invalid choice. Please try again."))
	assert.Equal(t, 3, strings.Count(out, "Press Enter to try again...."))
}

func TestRun_InputClosedEndsSession(t *testing.T) {
	out := &bytes.Buffer{}
	c := New(seeded(), strings.NewReader("2\n7\nM\n"), out)
	assert.NoError(t, c.Run(context.Background()))
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := New(seeded(), strings.NewReader("4\n"), &bytes.Buffer{})
	assert.ErrorIs(t, c.Run(ctx), context.Canceled)
}

type failingStore struct{ store.MemoryStore }

var errUnavailable = errors.New("spreadsheet unavailable")

func (f *failingStore) Records(context.Context) ([]models.SurveyRecord, error) {
	return nil, errUnavailable
}

func (f *failingStore) AppendRecord(context.Context, models.SurveyRecord) error {
	return errUnavailable
}

func (f *failingStore) SearchResults(context.Context) ([]models.StoredSearchResult, error) {
	return nil, errUnavailable
}

func TestStoreFailuresKeepSessionAlive(t *testing.T) {
	out := session(t, &failingStore{}, []string{
		"1", "M", "1", "1", "5", "",
		"2", "1", "F", "", "8",
		"3", "1", "", "3",
		"4",
	})
	assert.Contains(t, out, "Error: could not insert the data: spreadsheet unavailable")
	assert.Contains(t, out, "Error: could not read the survey data: spreadsheet unavailable")
	assert.Contains(t, out, "Error: could not read the stored searches: spreadsheet unavailable")
	assert.Contains(t, out, "Exiting the program...")
}

type fakeDescriber struct {
	calls int
	err   error
}

func (f *fakeDescriber) DescribePersona(_ context.Context, p models.Persona, likelihood string) (*models.ProfileResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &models.ProfileResponse{
		Persona:              p,
		LikelihoodPercentage: likelihood,
		Profile:              models.CustomerProfile{Occupation: "Student", Location: "Urban"},
	}, nil
}

func TestCreatePersona_Describer(t *testing.T) {
	d := &fakeDescriber{}
	out := session(t, seeded(), []string{"2", "7", "M", "1", "1", "n", "", "8", "4"}, WithDescriber(d))
	assert.Equal(t, 1, d.calls)
	assert.Contains(t, out, "Typical customer: Student; Urban")

	d = &fakeDescriber{err: errors.New("quota exceeded")}
	out = session(t, seeded(), []string{"2", "7", "M", "1", "1", "n", "", "8", "4"}, WithDescriber(d))
	assert.Equal(t, 1, d.calls)
	assert.NotContains(t, out, "Typical customer")
	assert.Contains(t, out, "Search results not stored.")
}
