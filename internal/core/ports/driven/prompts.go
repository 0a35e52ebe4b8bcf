package driven

import "context"

// PromptStore provides access to LLM prompt templates.
// Templates use {name} placeholders filled by the caller.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// User-edited templates take precedence over the built-in defaults.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// PromptWatcher is implemented by prompt stores that can reload when
// their backing files change. Watch blocks until ctx is cancelled.
type PromptWatcher interface {
	Watch(ctx context.Context) error
}

// Well-known prompt names used throughout the application.
const (
	// PromptSummariseSlide expects {slide}.
	PromptSummariseSlide = "summarise_slide"

	// PromptCategoriseSlide expects {summary} and {categories}.
	PromptCategoriseSlide = "categorise_slide"

	// PromptTagSlide expects {summary}.
	PromptTagSlide = "tag_slide"

	// PromptPresentationOutline expects {intent}, {categories} and {client}.
	PromptPresentationOutline = "presentation_outline"

	// PromptSelectSlide expects {category}, {guidance}, {intent} and {candidates}.
	PromptSelectSlide = "select_slide"
)

// AllPromptNames lists every prompt the application loads.
func AllPromptNames() []string {
	return []string{
		PromptSummariseSlide,
		PromptCategoriseSlide,
		PromptTagSlide,
		PromptPresentationOutline,
		PromptSelectSlide,
	}
}
