package usage

import (
	"sync"

	"github.com/briefcast/briefcast/app/model"
)

// MemoryStore keeps usage records in memory. It backs deployments that run
// without a database file and the tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]model.UsageRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]model.UsageRecord)}
}

func (s *MemoryStore) Get(userID string) (model.UsageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if record, ok := s.records[userID]; ok {
		return record, nil
	}
	return model.UsageRecord{UserID: userID}, nil
}

func (s *MemoryStore) Save(record model.UsageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.UserID] = record
	return nil
}

func (s *MemoryStore) SetPremium(userID string, premium bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[userID]
	if !ok {
		record = model.UsageRecord{UserID: userID}
	}
	record.IsPremium = premium
	s.records[userID] = record
	return nil
}

func (s *MemoryStore) GetUserCount() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records), nil
}
