package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deckforge/internal/core/domain"
)

func TestExtractCategory(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected domain.Category
		ok       bool
	}{
		{"plain label", "deckforge://categories/Agenda/slides", domain.CategoryAgenda, true},
		{"escaped space", "deckforge://categories/Title%20Slide/slides", domain.CategoryTitleSlide, true},
		{"escaped slash", "deckforge://categories/Background%2FContext/slides", domain.CategoryBackground, true},
		{"unknown label", "deckforge://categories/Appendix/slides", "", false},
		{"missing suffix", "deckforge://categories/Agenda", "", false},
		{"invalid prefix", "file://categories/Agenda/slides", "", false},
		{"bad escape", "deckforge://categories/%zz/slides", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, ok := extractCategory(tt.uri)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, cat)
		})
	}
}

func TestExtractDocumentID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{"valid slide URI", "deckforge://slides/slide-g1-1700000000", "slide-g1-1700000000"},
		{"invalid prefix", "file://slides/slide-g1", ""},
		{"empty URI", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractDocumentID(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleCategoriesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns counts", func(t *testing.T) {
		server := newTestServer(t, &Ports{Library: &mockLibrary{counts: []domain.CategoryCount{
			{Category: domain.CategoryTitleSlide, Count: 4},
			{Category: domain.CategoryQA, Count: 0},
		}}})

		result, err := server.handleCategoriesResource(ctx, makeReadResourceRequest("deckforge://categories"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, `"category": "Title Slide"`)
		assert.Contains(t, result.Contents[0].Text, `"count": 4`)
	})

	t.Run("library failure", func(t *testing.T) {
		server := newTestServer(t, &Ports{Library: &mockLibrary{err: errors.New("db locked")}})

		_, err := server.handleCategoriesResource(ctx, makeReadResourceRequest("deckforge://categories"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "counting categories")
	})
}

func TestServer_handleCollectionsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil collection service returns empty list", func(t *testing.T) {
		server := newTestServer(t, &Ports{})

		result, err := server.handleCollectionsResource(ctx, makeReadResourceRequest("deckforge://collections"))

		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns collections", func(t *testing.T) {
		server := newTestServer(t, &Ports{Collections: &mockCollections{collections: []domain.Collection{
			{Name: "formal", PresentationIDs: []string{"deck-1"}},
		}}})

		result, err := server.handleCollectionsResource(ctx, makeReadResourceRequest("deckforge://collections"))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, `"name": "formal"`)
		assert.Contains(t, result.Contents[0].Text, "deck-1")
	})

	t.Run("list failure", func(t *testing.T) {
		server := newTestServer(t, &Ports{Collections: &mockCollections{err: errors.New("corrupt")}})

		_, err := server.handleCollectionsResource(ctx, makeReadResourceRequest("deckforge://collections"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing collections")
	})
}

func TestServer_handleCategorySlidesResource(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t, &Ports{})

	t.Run("returns slides", func(t *testing.T) {
		result, err := server.handleCategorySlidesResource(ctx,
			makeReadResourceRequest("deckforge://categories/Data%2FStatistics/slides"))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, "slide-g1-1700000000")
		assert.NotContains(t, result.Contents[0].Text, "slide-g2-1700000000")
	})

	t.Run("unknown category is not found", func(t *testing.T) {
		_, err := server.handleCategorySlidesResource(ctx,
			makeReadResourceRequest("deckforge://categories/Appendix/slides"))

		require.Error(t, err)
	})
}

func TestServer_handleSlideResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns slide with elements", func(t *testing.T) {
		server := newTestServer(t, &Ports{})

		result, err := server.handleSlideResource(ctx, makeReadResourceRequest("deckforge://slides/slide-g1-1700000000"))

		require.NoError(t, err)
		text := result.Contents[0].Text
		assert.Contains(t, text, "Revenue grew")
		assert.Contains(t, text, `"objectId": "s1"`)
	})

	t.Run("missing slide is not found", func(t *testing.T) {
		server := newTestServer(t, &Ports{})

		_, err := server.handleSlideResource(ctx, makeReadResourceRequest("deckforge://slides/nope"))

		require.Error(t, err)
	})

	t.Run("invalid uri", func(t *testing.T) {
		server := newTestServer(t, &Ports{})

		_, err := server.handleSlideResource(ctx, makeReadResourceRequest("deckforge://other"))

		require.Error(t, err)
	})

	t.Run("library failure", func(t *testing.T) {
		server := newTestServer(t, &Ports{Library: &mockLibrary{err: errors.New("db locked")}})

		_, err := server.handleSlideResource(ctx, makeReadResourceRequest("deckforge://slides/slide-g1"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "getting slide")
	})
}
