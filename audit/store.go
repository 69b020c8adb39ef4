// Package audit records the evaluations the service performs. The rule
// set itself is fixed and never persisted; only the outcomes are.
package audit

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Record is one recorded facility evaluation.
type Record struct {
	ID           string          `json:"id"`
	FacilityName string          `json:"facility_name"`
	Verdict      string          `json:"verdict"`
	Result       json.RawMessage `json:"result"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Store manages evaluation record persistence and retrieval.
type Store interface {
	// Save a new record. The caller assigns the ID.
	Save(rec *Record) error

	// Get a record by ID.
	Get(id string) (*Record, error)

	// ListRecent returns up to limit records, newest first.
	ListRecent(limit int) ([]*Record, error)
}

// InMemoryStore implements Store with a map guarded by an RWMutex.
// Used by tests and by the server when no database is configured.
type InMemoryStore struct {
	records map[string]*Record
	order   []string // insertion order of IDs
	mu      sync.RWMutex
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		records: make(map[string]*Record),
	}
}

// Save stores a record, enforcing unique IDs and stamping CreatedAt.
func (s *InMemoryStore) Save(rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		return fmt.Errorf("record ID is required")
	}
	if _, exists := s.records[rec.ID]; exists {
		return fmt.Errorf("record with ID %s already exists", rec.ID)
	}

	rec.CreatedAt = time.Now()
	s.records[rec.ID] = rec
	s.order = append(s.order, rec.ID)
	return nil
}

// Get retrieves a record by ID.
func (s *InMemoryStore) Get(id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exists := s.records[id]
	if !exists {
		return nil, fmt.Errorf("record %s not found", id)
	}
	return rec, nil
}

// ListRecent returns up to limit records, newest insertion first.
func (s *InMemoryStore) ListRecent(limit int) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.order) {
		limit = len(s.order)
	}

	recent := make([]*Record, 0, limit)
	for i := len(s.order) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, s.records[s.order[i]])
	}
	return recent, nil
}
