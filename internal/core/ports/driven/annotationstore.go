package driven

import (
	"context"

	"github.com/custodia-labs/deckforge/internal/core/domain"
)

// AnnotationStore persists annotated slides and presentation collections.
type AnnotationStore interface {
	// Save upserts a record keyed by DocumentID. The last write wins.
	Save(ctx context.Context, record domain.StoredSlideRecord) error

	// Get retrieves a record by document ID.
	// Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, documentID string) (*domain.StoredSlideRecord, error)

	// ListByCategory returns records whose category equals cat exactly.
	ListByCategory(ctx context.Context, cat domain.Category) ([]domain.StoredSlideRecord, error)

	// List returns all records, most recently annotated first.
	List(ctx context.Context) ([]domain.StoredSlideRecord, error)

	// CountByCategory returns per-category record counts.
	CountByCategory(ctx context.Context) ([]domain.CategoryCount, error)

	// Delete removes a record. Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, documentID string) error

	// SaveCollection upserts a collection by name.
	SaveCollection(ctx context.Context, c domain.Collection) error

	// GetCollection retrieves a collection by name.
	// Returns domain.ErrNotFound if absent.
	GetCollection(ctx context.Context, name string) (*domain.Collection, error)

	// ListCollections returns all collections ordered by name.
	ListCollections(ctx context.Context) ([]domain.Collection, error)

	// Close releases resources.
	Close() error
}
