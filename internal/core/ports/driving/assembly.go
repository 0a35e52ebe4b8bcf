package driving

import (
	"context"

	"github.com/custodia-labs/deckforge/internal/core/domain"
)

// AssemblyService builds a new presentation from stored slides.
type AssemblyService interface {
	// Assemble runs the whole pipeline. Only failure to reach the external
	// services returns an error; section failures are in the report.
	Assemble(ctx context.Context, req domain.AssemblyRequest) (*domain.AssemblyReport, error)

	// Outline generates the section plan for an intent without building anything.
	Outline(ctx context.Context, intent, clientDescription string) (*domain.PresentationOutline, error)
}

// TransplantService copies a single slide between presentations.
type TransplantService interface {
	// Transplant reconstructs the source slide in the destination.
	// The error is non-nil only if no session could be opened.
	Transplant(ctx context.Context, req domain.TransplantRequest) (*domain.TransplantResult, error)
}
