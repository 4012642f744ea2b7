package session

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore is an in-process Store for single-instance deployments and
// tests. Payloads are kept as their JSON encoding so callers can never
// mutate stored state through a returned pointer.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]byte)}
}

// Get returns the visitor's payload, or an empty payload for an unknown id.
func (s *MemoryStore) Get(_ context.Context, visitorID string) (*Data, error) {
	s.mu.RLock()
	raw, ok := s.sessions[visitorID]
	s.mu.RUnlock()

	d := &Data{}
	if !ok {
		return d, nil
	}
	if err := json.Unmarshal(raw, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Put writes the payload back when dirty.
func (s *MemoryStore) Put(_ context.Context, visitorID string, d *Data) error {
	if !d.Dirty() {
		return nil
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.sessions[visitorID] = raw
	s.mu.Unlock()

	d.clearDirty()
	return nil
}
