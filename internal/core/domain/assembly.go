package domain

import "fmt"

// AssemblyRequest describes the presentation a client wants.
type AssemblyRequest struct {
	// Intent is the free-text description of what the deck should achieve.
	Intent string

	// Title is the title of the new presentation.
	Title string

	// ClientDescription optionally describes the audience.
	ClientDescription string

	// Theme is applied to every transplanted slide.
	Theme Theme

	// TagHints rank each category's candidates by tag overlap.
	TagHints []string
}

// Validate checks the request before any external call is made.
func (r AssemblyRequest) Validate() error {
	if r.Intent == "" {
		return fmt.Errorf("%w: intent is required", ErrInvalidInput)
	}
	if r.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	return r.Theme.Validate()
}

// SectionStatus is the outcome of one outline section.
type SectionStatus string

// Section outcomes.
const (
	SectionTransplanted     SectionStatus = "transplanted"
	SectionPartial          SectionStatus = "partial"
	SectionNoCandidates     SectionStatus = "no_candidates"
	SectionSelectionFailed  SectionStatus = "selection_failed"
	SectionTransplantFailed SectionStatus = "transplant_failed"
	SectionUnknownCategory  SectionStatus = "unknown_category"
)

// SectionReport records what happened to one outline section.
type SectionReport struct {
	Section OutlineSection
	Status  SectionStatus

	// Source identifies the selected slide, when one was selected.
	SourcePresentationID string
	SourceSlideID        string

	// NewSlideID is set when a slide exists in the destination.
	NewSlideID string

	Elements []ElementResult

	// Settled is false when the destination never showed the new slide
	// within the settle attempts.
	Settled bool

	// ThemeErr records a theming failure; it never fails the section.
	ThemeErr error

	Err error
}

// AssemblyReport is the outcome of an assembly run.
type AssemblyReport struct {
	PresentationID string
	Outline        PresentationOutline
	Sections       []SectionReport
}

// Count returns how many sections ended with the given status.
func (r AssemblyReport) Count(status SectionStatus) int {
	n := 0
	for _, s := range r.Sections {
		if s.Status == status {
			n++
		}
	}
	return n
}
