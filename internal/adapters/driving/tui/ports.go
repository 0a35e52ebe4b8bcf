// Package tui provides an interactive terminal browser for the annotated
// slide library. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"github.com/custodia-labs/deckforge/internal/core/ports/driving"
)

// Ports aggregates the driving ports the browser needs.
type Ports struct {
	// Library browses and deletes annotated slides.
	Library driving.SlideLibrary

	// Collections lists named presentation collections. Optional.
	Collections driving.CollectionService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(library driving.SlideLibrary, collections driving.CollectionService) *Ports {
	return &Ports{
		Library:     library,
		Collections: collections,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Library == nil {
		return ErrMissingSlideLibrary
	}
	return nil
}
