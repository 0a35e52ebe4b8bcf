package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/custodia-labs/deckforge/internal/core/domain"
	"github.com/custodia-labs/deckforge/internal/core/ports/driven"
)

// Ensure AnnotationStore implements the interface.
var _ driven.AnnotationStore = (*AnnotationStore)(nil)

// AnnotationStore is an in-memory implementation of driven.AnnotationStore.
// Category lookups scan every record.
type AnnotationStore struct {
	mu          sync.RWMutex
	records     map[string]domain.StoredSlideRecord
	collections map[string]domain.Collection
}

// NewAnnotationStore creates a new in-memory annotation store.
func NewAnnotationStore() *AnnotationStore {
	return &AnnotationStore{
		records:     make(map[string]domain.StoredSlideRecord),
		collections: make(map[string]domain.Collection),
	}
}

// Save stores or replaces a record.
func (s *AnnotationStore) Save(_ context.Context, record domain.StoredSlideRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.Tags = slices.Clone(record.Tags)
	s.records[record.DocumentID] = record
	return nil
}

// Get retrieves a record by document ID.
func (s *AnnotationStore) Get(_ context.Context, documentID string) (*domain.StoredSlideRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[documentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

// ListByCategory returns records whose category equals cat.
func (s *AnnotationStore) ListByCategory(_ context.Context, cat domain.Category) ([]domain.StoredSlideRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.StoredSlideRecord
	for _, rec := range s.records {
		if rec.Category == cat {
			out = append(out, rec)
		}
	}
	sortRecords(out)
	return out, nil
}

// List returns all records, newest first.
func (s *AnnotationStore) List(_ context.Context) ([]domain.StoredSlideRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.StoredSlideRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	sortRecords(out)
	return out, nil
}

// CountByCategory returns counts for categories that have records.
func (s *AnnotationStore) CountByCategory(_ context.Context) ([]domain.CategoryCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[domain.Category]int)
	for _, rec := range s.records {
		counts[rec.Category]++
	}
	out := make([]domain.CategoryCount, 0, len(counts))
	for cat, n := range counts {
		out = append(out, domain.CategoryCount{Category: cat, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

// Delete removes a record.
func (s *AnnotationStore) Delete(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[documentID]; !ok {
		return domain.ErrNotFound
	}
	delete(s.records, documentID)
	return nil
}

// SaveCollection stores or replaces a collection.
func (s *AnnotationStore) SaveCollection(_ context.Context, c domain.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.PresentationIDs = slices.Clone(c.PresentationIDs)
	s.collections[c.Name] = c
	return nil
}

// GetCollection retrieves a collection by name.
func (s *AnnotationStore) GetCollection(_ context.Context, name string) (*domain.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.collections[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c.PresentationIDs = slices.Clone(c.PresentationIDs)
	return &c, nil
}

// ListCollections returns all collections ordered by name.
func (s *AnnotationStore) ListCollections(_ context.Context) ([]domain.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Collection, 0, len(s.collections))
	for _, c := range s.collections {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Close is a no-op.
func (s *AnnotationStore) Close() error {
	return nil
}

// sortRecords orders newest first, then by document ID for stability.
func sortRecords(recs []domain.StoredSlideRecord) {
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].AnnotatedAt.Equal(recs[j].AnnotatedAt) {
			return recs[i].AnnotatedAt.After(recs[j].AnnotatedAt)
		}
		return recs[i].DocumentID < recs[j].DocumentID
	})
}
