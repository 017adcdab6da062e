package store

import (
	"context"
	"sync"

	"github.com/BerylCAtieno/product-survey/internal/models"
)

// MemoryStore keeps both tables in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	records  []models.SurveyRecord
	searches []models.StoredSearchResult
}

func NewMemoryStore(records ...models.SurveyRecord) *MemoryStore {
	return &MemoryStore{records: append([]models.SurveyRecord(nil), records...)}
}

func (m *MemoryStore) Records(ctx context.Context) ([]models.SurveyRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.SurveyRecord(nil), m.records...), nil
}

func (m *MemoryStore) AppendRecord(ctx context.Context, r models.SurveyRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, r)
	return nil
}

func (m *MemoryStore) SearchResults(ctx context.Context) ([]models.StoredSearchResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.StoredSearchResult(nil), m.searches...), nil
}

func (m *MemoryStore) AppendSearchResult(ctx context.Context, s models.StoredSearchResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches = append(m.searches, s)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
