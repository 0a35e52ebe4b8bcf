package driven

import (
	"context"

	"github.com/custodia-labs/deckforge/internal/core/domain"
)

// PresentationService reads and mutates presentations.
type PresentationService interface {
	// GetPresentation returns a presentation with its ordered slides.
	// Returns domain.ErrNotFound if the presentation does not exist.
	GetPresentation(ctx context.Context, id string) (*domain.Presentation, error)

	// CreatePresentation creates an empty presentation and returns its ID
	// and the object ID of the slide the service creates with it.
	CreatePresentation(ctx context.Context, title string) (id, firstSlideID string, err error)

	// BatchUpdate applies requests atomically. Replies are positionally
	// aligned with the requests.
	BatchUpdate(ctx context.Context, presentationID string, requests []domain.PageRequest) (domain.BatchUpdateResponse, error)
}

// PresentationSession is a scoped handle to the presentation service.
// After Close every call returns domain.ErrSessionClosed.
type PresentationSession interface {
	PresentationService
	Close() error
}

// PresentationOpener acquires presentation sessions.
type PresentationOpener interface {
	Open(ctx context.Context) (PresentationSession, error)
}
