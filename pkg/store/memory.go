package store

import (
	"context"
	"sort"
	"sync"

	"github.com/sketchflow/sketchflow/pkg/diagram"
)

// MemoryStore keeps records in process memory. Used by tests and by the
// API when no MongoDB connection is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

// Put stores a document under a fresh id.
func (s *MemoryStore) Put(ctx context.Context, doc diagram.Document) (Record, error) {
	rec := newRecord(doc)
	s.mu.Lock()
	s.records[rec.ID] = rec
	s.mu.Unlock()
	return rec, nil
}

// Get retrieves a record by id.
func (s *MemoryStore) Get(ctx context.Context, id string) (Record, error) {
	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return Record{}, errNotFound(id)
	}
	return rec, nil
}

// List returns the most recent records, newest first.
func (s *MemoryStore) List(ctx context.Context, limit int64) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	s.mu.RLock()
	out := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete removes a record.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return errNotFound(id)
	}
	delete(s.records, id)
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
