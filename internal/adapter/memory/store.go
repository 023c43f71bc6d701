// Package memory provides an in-process facility document store and the JSON
// fixture format used to seed any store.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/couchcryptid/facility-safety-service/internal/domain"
)

// Store is a thread-safe in-memory document store. Its natural order is
// insertion order; replacing a document keeps its position.
type Store struct {
	mu    sync.RWMutex
	docs  map[string]map[string]any
	order []string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{docs: make(map[string]map[string]any)}
}

// PutFacility stores or replaces the document for id.
func (s *Store) PutFacility(_ context.Context, id string, fields map[string]any) error {
	if id == "" {
		return fmt.Errorf("put facility: empty id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		s.order = append(s.order, id)
	}
	s.docs[id] = copyFields(fields)
	return nil
}

// ListFacilities returns a copy of every document in insertion order.
func (s *Store) ListFacilities(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Document, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, domain.Document{ID: id, Fields: copyFields(s.docs[id])})
	}
	return out, nil
}

// GetFacility returns a copy of the document for id.
func (s *Store) GetFacility(_ context.Context, id string) (domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fields, ok := s.docs[id]
	if !ok {
		return domain.Document{}, domain.ErrFacilityNotFound
	}
	return domain.Document{ID: id, Fields: copyFields(fields)}, nil
}

// UpdateFacility merges fields into the existing document for id.
func (s *Store) UpdateFacility(_ context.Context, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return fmt.Errorf("update facility %s: %w", id, domain.ErrFacilityNotFound)
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error {
	return nil
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func copyFields(fields map[string]any) map[string]any {
	cp := make(map[string]any, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return cp
}
