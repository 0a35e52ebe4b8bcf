// Package domain defines the core business entities for deckforge.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawSlide: A slide as read from the presentation service
//   - Category: The closed twelve-label slide taxonomy
//   - StoredSlideRecord: An annotated slide persisted in the annotation store
//   - PresentationOutline: The section plan produced from a client intent
//   - PageRequest: The element creation requests sent to the presentation service
//   - TransplantResult: The tri-state outcome of reconstructing a slide elsewhere
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
