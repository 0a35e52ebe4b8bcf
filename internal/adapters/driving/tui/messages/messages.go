// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/deckforge/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewCategories lists the taxonomy with slide counts.
	ViewCategories ViewType = iota
	// ViewSlides lists the slides of one category.
	ViewSlides
	// ViewSlideDetail shows one annotated slide.
	ViewSlideDetail
	// ViewCollections lists presentation collections.
	ViewCollections
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewCategories:
		return "categories"
	case ViewSlides:
		return "slides"
	case ViewSlideDetail:
		return "slide_detail"
	case ViewCollections:
		return "collections"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// CategoriesLoaded carries per-category slide counts.
type CategoriesLoaded struct {
	Counts []domain.CategoryCount
	Err    error
}

// CategorySelected signals a category was opened.
type CategorySelected struct {
	Category domain.Category
}

// SlidesLoaded carries the slides of a category, ranked by the tag hints
// when any were given.
type SlidesLoaded struct {
	Category domain.Category
	Tags     []string
	Slides   []domain.StoredSlideRecord
	Err      error
}

// SlideSelected signals a slide was opened.
type SlideSelected struct {
	Record domain.StoredSlideRecord
}

// SlideDeleted signals a stored slide was removed.
type SlideDeleted struct {
	DocumentID string
	Err        error
}

// CollectionsLoaded carries the collections from the service.
type CollectionsLoaded struct {
	Collections []domain.Collection
	Err         error
}
