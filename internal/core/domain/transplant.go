package domain

// TransplantRequest asks for one slide to be reconstructed in another presentation.
type TransplantRequest struct {
	SourcePresentationID      string
	SourceSlideID             string
	DestinationPresentationID string
}

// TransplantStatus is the slide-level outcome of a transplant.
type TransplantStatus string

// Transplant outcomes.
const (
	// TransplantSuccess means every element was replicated.
	TransplantSuccess TransplantStatus = "success"

	// TransplantPartial means the slide exists but its content is incomplete.
	TransplantPartial TransplantStatus = "partial_success"

	// TransplantError means no new slide exists.
	TransplantError TransplantStatus = "error"
)

// SlideExists returns true if the outcome left a slide in the destination.
func (s TransplantStatus) SlideExists() bool {
	return s == TransplantSuccess || s == TransplantPartial
}

// ElementOutcome is the result of reconstructing a single page element.
type ElementOutcome string

// Element outcomes.
const (
	ElementCopied  ElementOutcome = "copied"
	ElementSkipped ElementOutcome = "skipped"
	ElementFailed  ElementOutcome = "failed"
)

// ElementResult records what happened to one source element.
type ElementResult struct {
	SourceObjectID string
	Kind           ElementKind
	Outcome        ElementOutcome
	Reason         string
}

// TransplantResult is the outcome of a transplant.
type TransplantResult struct {
	Status     TransplantStatus
	NewSlideID string
	Elements   []ElementResult

	// Err explains an error or partial_success outcome.
	Err error
}

// Count returns how many elements ended with the given outcome.
func (r TransplantResult) Count(outcome ElementOutcome) int {
	n := 0
	for _, e := range r.Elements {
		if e.Outcome == outcome {
			n++
		}
	}
	return n
}
