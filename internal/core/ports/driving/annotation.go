package driving

import (
	"context"

	"github.com/custodia-labs/deckforge/internal/core/domain"
)

// AnnotationService runs the summarise, categorise and tag pipeline over
// presentations and persists the results.
type AnnotationService interface {
	// AnnotatePresentation annotates every slide of one presentation.
	// Slide failures are reported, not returned.
	AnnotatePresentation(ctx context.Context, presentationID string) (*domain.AnnotationReport, error)

	// AnnotatePresentations annotates several presentations in order.
	// A presentation that cannot be read is reported and the rest proceed.
	AnnotatePresentations(ctx context.Context, presentationIDs []string) ([]domain.AnnotationReport, error)

	// AnnotateCollection annotates every presentation of a named collection.
	AnnotateCollection(ctx context.Context, name string) ([]domain.AnnotationReport, error)
}
