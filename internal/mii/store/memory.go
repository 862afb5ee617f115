package store

import (
	"context"
	"sync"

	"miigate/internal/mii/models"
	"miigate/internal/sentinel"
)

// InMemory stores Mii records in memory. Used in tests and when no database
// is configured.
type InMemory struct {
	mu      sync.RWMutex
	records map[string]models.MiiRecord
}

// NewInMemory creates an in-memory record store.
func NewInMemory() *InMemory {
	return &InMemory{records: make(map[string]models.MiiRecord)}
}

// Seed registers a username with the default guest record, mirroring what
// account creation does.
func (s *InMemory) Seed(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[username] = models.DefaultRecord()
}

// GetMii returns the record for a username.
func (s *InMemory) GetMii(_ context.Context, username string) (models.MiiRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[username]
	if !ok {
		return models.MiiRecord{}, sentinel.ErrNotFound
	}
	return record, nil
}

// SetMii replaces the record for a username.
func (s *InMemory) SetMii(_ context.Context, username string, record models.MiiRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[username]; !ok {
		return sentinel.ErrNotFound
	}
	s.records[username] = record
	return nil
}
