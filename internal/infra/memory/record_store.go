package memory

import (
	"context"
	"sort"
	"sync"

	"daily-vocab-service/internal/domain"
)

// RecordStore is an in-memory implementation of app.RecordStore, used
// when no Postgres is configured and throughout the unit tests.
type RecordStore struct {
	mu      sync.RWMutex
	records map[string]domain.UserRecord
}

func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[string]domain.UserRecord),
	}
}

func (s *RecordStore) All(_ context.Context) ([]domain.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]domain.UserRecord, 0, len(s.records))
	for _, record := range s.records {
		all = append(all, record)
	}
	// Map iteration order is random; keep reads deterministic.
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })
	return all, nil
}

func (s *RecordStore) FindByEmail(_ context.Context, email string) (domain.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[email]
	if !ok {
		return domain.UserRecord{}, domain.ErrRecordNotFound
	}
	return record, nil
}

func (s *RecordStore) Save(_ context.Context, record domain.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.Email] = record
	return nil
}

func (s *RecordStore) UpdateRanks(_ context.Context, ranked []domain.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range ranked {
		if record, ok := s.records[entry.Email]; ok {
			record.Rank = entry.Rank
			s.records[entry.Email] = record
		}
	}
	return nil
}

func (s *RecordStore) ResetRanks(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for email, record := range s.records {
		record.Rank = 0
		s.records[email] = record
	}
	return nil
}
