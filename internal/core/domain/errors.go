package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownCategory indicates a label outside the fixed slide taxonomy.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrSlideNotFound indicates the requested slide is absent from its presentation.
	ErrSlideNotFound = errors.New("slide not found")

	// ErrLayoutNotFound indicates a theme layout matches no layout of the presentation.
	ErrLayoutNotFound = errors.New("layout not found")

	// ErrSessionClosed indicates a presentation session was used after Close.
	ErrSessionClosed = errors.New("presentation session closed")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Annotation, outline generation and selection all require it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrPresentationsUnavailable indicates no presentation service credentials are configured.
	ErrPresentationsUnavailable = errors.New("presentation service unavailable")

	// ErrAccessDenied indicates the credentials were rejected or lack access.
	ErrAccessDenied = errors.New("access denied")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
