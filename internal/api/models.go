package api

import (
	"time"

	"github.com/BerylCAtieno/product-survey/internal/models"
	"github.com/BerylCAtieno/product-survey/internal/stats"
)

// Response types
type LikelihoodResponse struct {
	Filter    FilterParams `json:"filter"`
	Matched   int          `json:"matched"`
	Mean      float64      `json:"mean"`
	Percent   float64      `json:"percentage"`
	Formatted string       `json:"formatted,omitempty"`
}

type FilterParams struct {
	Gender        string `json:"gender,omitempty"`
	AgeGroup      string `json:"age_group,omitempty"`
	IncomeBracket string `json:"income_bracket,omitempty"`
}

type BreakdownResponse struct {
	Dimension stats.Dimension `json:"dimension"`
	Groups    []GroupResult   `json:"groups"`
}

type GroupResult struct {
	Value     string  `json:"value"`
	Matched   int     `json:"matched"`
	Percent   float64 `json:"percentage"`
	Formatted string  `json:"formatted,omitempty"`
}

type SearchesResponse struct {
	Count    int                         `json:"count"`
	Searches []models.StoredSearchResult `json:"searches"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Request types
type DescribeRequest struct {
	Gender        string `json:"gender" binding:"required"`
	AgeGroup      string `json:"age_group" binding:"required"`
	IncomeBracket string `json:"income_bracket" binding:"required"`
}

func (r DescribeRequest) Persona() models.Persona {
	return models.Persona{Gender: r.Gender, AgeGroup: r.AgeGroup, IncomeBracket: r.IncomeBracket}
}

// AppendRecordRequest carries one survey response. Likelihood is a pointer so
// an absent value is rejected while 0 stays a valid answer.
type AppendRecordRequest struct {
	Gender        string `json:"gender" binding:"required"`
	AgeGroup      string `json:"age_group" binding:"required"`
	IncomeBracket string `json:"income_bracket" binding:"required"`
	Likelihood    *int   `json:"likelihood" binding:"required"`
}

func (r AppendRecordRequest) Record() models.SurveyRecord {
	rec := models.SurveyRecord{Gender: r.Gender, AgeGroup: r.AgeGroup, IncomeBracket: r.IncomeBracket}
	if r.Likelihood != nil {
		rec.Likelihood = *r.Likelihood
	}
	return rec
}

// Helper functions
func newLikelihoodResponse(f stats.Filter, res stats.Result) LikelihoodResponse {
	resp := LikelihoodResponse{
		Filter: FilterParams{
			Gender:        f.Gender,
			AgeGroup:      f.AgeGroup,
			IncomeBracket: f.IncomeBracket,
		},
		Matched: res.Matched,
		Mean:    res.Mean,
		Percent: res.Percentage,
	}
	if !res.Empty() {
		resp.Formatted = res.Formatted()
	}
	return resp
}

func newBreakdownResponse(d stats.Dimension, groups []stats.Group) BreakdownResponse {
	resp := BreakdownResponse{Dimension: d, Groups: make([]GroupResult, 0, len(groups))}
	for _, g := range groups {
		gr := GroupResult{Value: g.Value, Matched: g.Matched, Percent: g.Percentage}
		if !g.Empty() {
			gr.Formatted = g.Formatted()
		}
		resp.Groups = append(resp.Groups, gr)
	}
	return resp
}

func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
