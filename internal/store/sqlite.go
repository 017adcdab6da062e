package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/product-survey/internal/models"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database at dbPath (a file path or ":memory:")
// and verifies connectivity with a ping.
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A ":memory:" database lives and dies with its connection.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// sqliteDSN enables WAL on top of whatever query parameters dbPath carries.
func sqliteDSN(dbPath string) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + "_pragma=journal_mode(WAL)"
}

// InitSchema creates both tables if they don't exist.
func (s *SQLiteStore) InitSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS input_data (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			gender TEXT NOT NULL,
			age_group TEXT NOT NULL,
			income_bracket TEXT NOT NULL,
			likelihood INTEGER NOT NULL CHECK (likelihood BETWEEN 0 AND 10),
			created_at TEXT DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS stored_searches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			gender TEXT NOT NULL,
			age_group TEXT NOT NULL,
			income_bracket TEXT NOT NULL,
			likelihood_percentage TEXT NOT NULL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP
		);
	`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Records(ctx context.Context) ([]models.SurveyRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT gender, age_group, income_bracket, likelihood
		FROM input_data
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []models.SurveyRecord
	for rows.Next() {
		var r models.SurveyRecord
		if err := rows.Scan(&r.Gender, &r.AgeGroup, &r.IncomeBracket, &r.Likelihood); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}
	return records, nil
}

func (s *SQLiteStore) AppendRecord(ctx context.Context, r models.SurveyRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO input_data (gender, age_group, income_bracket, likelihood)
		VALUES (?, ?, ?, ?)
	`, r.Gender, r.AgeGroup, r.IncomeBracket, r.Likelihood)
	if err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

func (s *SQLiteStore) SearchResults(ctx context.Context) ([]models.StoredSearchResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT gender, age_group, income_bracket, likelihood_percentage
		FROM stored_searches
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stored searches: %w", err)
	}
	defer rows.Close()

	var results []models.StoredSearchResult
	for rows.Next() {
		var r models.StoredSearchResult
		if err := rows.Scan(&r.Gender, &r.AgeGroup, &r.IncomeBracket, &r.LikelihoodPercentage); err != nil {
			return nil, fmt.Errorf("failed to scan stored search: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stored searches: %w", err)
	}
	return results, nil
}

func (s *SQLiteStore) AppendSearchResult(ctx context.Context, r models.StoredSearchResult) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stored_searches (gender, age_group, income_bracket, likelihood_percentage)
		VALUES (?, ?, ?, ?)
	`, r.Gender, r.AgeGroup, r.IncomeBracket, r.LikelihoodPercentage)
	if err != nil {
		return fmt.Errorf("failed to save search result: %w", err)
	}
	return nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
