package store

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/BerylCAtieno/product-survey/internal/models"
)

// table maps a sheet's header row to column positions so rows are read by
// column name.
type table struct {
	name    string
	columns map[string]int
	rows    [][]interface{}
}

func newTable(name string, values [][]interface{}) table {
	t := table{name: name, columns: make(map[string]int)}
	if len(values) == 0 {
		return t
	}
	for i, h := range values[0] {
		t.columns[cellString(h)] = i
	}
	t.rows = values[1:]
	return t
}

func (t table) get(row []interface{}, column string) string {
	i, ok := t.columns[column]
	if !ok || i >= len(row) {
		return ""
	}
	return cellString(row[i])
}

func blank(row []interface{}) bool {
	for _, c := range row {
		if cellString(c) != "" {
			return false
		}
	}
	return true
}

// records decodes survey responses. Rows whose likelihood is not an integer are skipped.
func (t table) records() []models.SurveyRecord {
	out := make([]models.SurveyRecord, 0, len(t.rows))
	for i, row := range t.rows {
		if blank(row) {
			continue
		}
		raw := t.get(row, models.ColumnLikelihood)
		likelihood, err := strconv.Atoi(raw)
		if err != nil {
			// +2: one for the header, one because sheet rows are 1-based
			log.Printf("WARN: skipping row %d of %q: invalid likelihood %q", i+2, t.name, raw)
			continue
		}
		out = append(out, models.SurveyRecord{
			Gender:        t.get(row, models.ColumnGender),
			AgeGroup:      t.get(row, models.ColumnAgeGroup),
			IncomeBracket: t.get(row, models.ColumnIncomeBracket),
			Likelihood:    likelihood,
		})
	}
	return out
}

func (t table) searchResults() []models.StoredSearchResult {
	out := make([]models.StoredSearchResult, 0, len(t.rows))
	for _, row := range t.rows {
		if blank(row) {
			continue
		}
		out = append(out, models.StoredSearchResult{
			Persona: models.Persona{
				Gender:        t.get(row, models.ColumnGender),
				AgeGroup:      t.get(row, models.ColumnAgeGroup),
				IncomeBracket: t.get(row, models.ColumnIncomeBracket),
			},
			LikelihoodPercentage: t.get(row, models.ColumnLikelihoodPercentage),
		})
	}
	return out
}

func cellString(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(c)
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(c))
	}
}

func headerRow(header []string) []interface{} {
	row := make([]interface{}, len(header))
	for i, h := range header {
		row[i] = h
	}
	return row
}
