// Package store reads and appends survey rows in the two survey tables:
// "Input data" (responses) and "Stored last search" (saved persona lookups).
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/BerylCAtieno/product-survey/internal/config"
	"github.com/BerylCAtieno/product-survey/internal/models"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown store backend")

// Store defines the contract for survey persistence.
// Both tables are append-only.
type Store interface {
	// Records returns every response in the "Input data" table, oldest first.
	Records(ctx context.Context) ([]models.SurveyRecord, error)

	// AppendRecord appends one response to the "Input data" table.
	AppendRecord(ctx context.Context, r models.SurveyRecord) error

	// SearchResults returns every saved lookup in the "Stored last search" table, oldest first.
	SearchResults(ctx context.Context) ([]models.StoredSearchResult, error)

	// AppendSearchResult appends one saved lookup to the "Stored last search" table.
	AppendSearchResult(ctx context.Context, s models.StoredSearchResult) error

	// Close releases any resources held by the store.
	Close() error
}

// Open connects to the backend selected by cfg.Store.
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	switch cfg.Store {
	case config.StoreSheets:
		return OpenSheets(ctx, SheetsConfig{
			CredentialsFile: cfg.CredentialsFile,
			SpreadsheetName: cfg.SpreadsheetName,
			SpreadsheetID:   cfg.SpreadsheetID,
		})
	case config.StoreSQLite:
		s, err := NewSQLiteStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := s.InitSchema(ctx); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	case config.StorePostgres:
		s, err := NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := s.InitSchema(ctx); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	case config.StoreMemory:
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Store)
}
