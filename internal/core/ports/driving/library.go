package driving

import (
	"context"

	"github.com/custodia-labs/deckforge/internal/core/domain"
)

// SlideLibrary browses and maintains the annotated slides.
type SlideLibrary interface {
	// ByCategory returns every stored slide in a category.
	ByCategory(ctx context.Context, cat domain.Category) ([]domain.StoredSlideRecord, error)

	// ByCategoryAndTags ranks a category's slides by tag overlap with hints.
	ByCategoryAndTags(ctx context.Context, cat domain.Category, hints []string) ([]domain.StoredSlideRecord, error)

	// Get retrieves one stored slide by document ID.
	Get(ctx context.Context, documentID string) (*domain.StoredSlideRecord, error)

	// List returns every stored slide.
	List(ctx context.Context) ([]domain.StoredSlideRecord, error)

	// Categories returns a count for every category, including empty ones.
	Categories(ctx context.Context) ([]domain.CategoryCount, error)

	// Delete removes a stored slide.
	Delete(ctx context.Context, documentID string) error
}

// CollectionService manages named groups of source presentations.
type CollectionService interface {
	// Add appends presentation IDs to a collection, creating it if needed.
	Add(ctx context.Context, name string, presentationIDs ...string) (*domain.Collection, error)

	// Get retrieves a collection by name.
	Get(ctx context.Context, name string) (*domain.Collection, error)

	// List returns all collections.
	List(ctx context.Context) ([]domain.Collection, error)
}
