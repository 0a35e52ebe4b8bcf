package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/custodia-labs/deckforge/internal/core/domain"
	"github.com/custodia-labs/deckforge/internal/core/ports/driven"
	"github.com/custodia-labs/deckforge/internal/core/ports/driving"
)

// Ensure CollectionService implements the interface.
var _ driving.CollectionService = (*CollectionService)(nil)

// CollectionService manages named groups of source presentations.
type CollectionService struct {
	store driven.AnnotationStore
}

// NewCollectionService creates a collection service.
func NewCollectionService(store driven.AnnotationStore) *CollectionService {
	return &CollectionService{store: store}
}

// Add appends presentation IDs to a collection, creating it if needed.
// IDs already in the collection are not repeated.
func (s *CollectionService) Add(ctx context.Context, name string, presentationIDs ...string) (*domain.Collection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: collection name is required", domain.ErrInvalidInput)
	}

	c, err := s.store.GetCollection(ctx, name)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c = &domain.Collection{Name: name}
	case err != nil:
		return nil, fmt.Errorf("get collection %s: %w", name, err)
	}

	for _, id := range presentationIDs {
		id = strings.TrimSpace(id)
		if id != "" && !slices.Contains(c.PresentationIDs, id) {
			c.PresentationIDs = append(c.PresentationIDs, id)
		}
	}
	if err := s.store.SaveCollection(ctx, *c); err != nil {
		return nil, fmt.Errorf("save collection %s: %w", name, err)
	}
	return c, nil
}

// Get retrieves a collection by name.
func (s *CollectionService) Get(ctx context.Context, name string) (*domain.Collection, error) {
	return s.store.GetCollection(ctx, name)
}

// List returns all collections.
func (s *CollectionService) List(ctx context.Context) ([]domain.Collection, error) {
	return s.store.ListCollections(ctx)
}
