package services

import "errors"

// Pipeline errors. Each is wrapped with the slide, section or stage it
// occurred in.
var (
	// ErrSummarization indicates the summarise stage failed or returned nothing.
	ErrSummarization = errors.New("summarization failed")

	// ErrCategorization indicates the categorise stage failed or returned a
	// label outside the taxonomy.
	ErrCategorization = errors.New("categorization failed")

	// ErrTagging indicates the tag stage failed.
	ErrTagging = errors.New("tagging failed")

	// ErrSelectionFailed indicates the selector reply was unusable.
	ErrSelectionFailed = errors.New("selection failed")

	// ErrNoCandidates indicates there was nothing to select from.
	ErrNoCandidates = errors.New("no candidates")

	// ErrOutlineFailed indicates the outline could not be generated.
	ErrOutlineFailed = errors.New("outline generation failed")

	// ErrParseFailed is returned when an LLM reply holds no parseable JSON,
	// either bare or in a markdown code fence.
	ErrParseFailed = errors.New("failed to parse response")
)
