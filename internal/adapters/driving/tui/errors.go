package tui

import "errors"

// ErrMissingSlideLibrary is returned when the slide library is not provided.
var ErrMissingSlideLibrary = errors.New("tui: slide library is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
