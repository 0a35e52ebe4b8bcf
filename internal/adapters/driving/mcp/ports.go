package mcp

import (
	"github.com/custodia-labs/deckforge/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// Only Library is required; tools whose port is nil are not registered.
type Ports struct {
	// Library browses the annotated slides.
	Library driving.SlideLibrary

	// Collections lists named presentation collections.
	Collections driving.CollectionService

	// Assembly generates outlines and assembles presentations.
	Assembly driving.AssemblyService

	// Annotation annotates source presentations.
	Annotation driving.AnnotationService

	// Transplant copies single slides.
	Transplant driving.TransplantService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Library == nil {
		return ErrMissingSlideLibrary
	}
	return nil
}
