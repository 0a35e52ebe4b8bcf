package domain

// OutlineSection is one section of a generated presentation outline.
type OutlineSection struct {
	// Category is empty when the heading is not a taxonomy label.
	Category Category

	// Heading is the section heading with decoration removed.
	Heading string

	// Guidance is the remainder of the section text.
	Guidance string
}

// PresentationOutline is the ordered section plan for one assembly run.
type PresentationOutline struct {
	Sections []OutlineSection

	// Raw is the unparsed LLM reply.
	Raw string
}
