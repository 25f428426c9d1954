package database

import (
	"context"
	"sync"

	"kashbill/internal/domain"
	"kashbill/internal/ports/output"
)

var _ output.PreferenceStore = (*MemoryPreferenceStore)(nil)

// MemoryPreferenceStore is a process-local store; preferences die with it.
type MemoryPreferenceStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryPreferenceStore() *MemoryPreferenceStore {
	return &MemoryPreferenceStore{values: map[string]string{}}
}

func (s *MemoryPreferenceStore) Load(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return "", domain.ErrPreferenceNotFound
	}
	return v, nil
}

func (s *MemoryPreferenceStore) Save(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
