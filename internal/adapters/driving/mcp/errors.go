// Package mcp provides an MCP (Model Context Protocol) server adapter for deckforge.
// It lets AI assistants browse the annotated slide library and assemble decks.
package mcp

import "errors"

// ErrMissingSlideLibrary is returned when the slide library is not provided.
var ErrMissingSlideLibrary = errors.New("mcp: slide library is required")
