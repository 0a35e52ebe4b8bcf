package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/deckforge/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for deckforge resources.
	uriScheme = "deckforge://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "categories",
		Name:        "categories",
		Description: "Slide taxonomy with the number of stored slides per category",
		MIMEType:    "application/json",
	}, s.handleCategoriesResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "collections",
		Name:        "collections",
		Description: "Named groups of source presentations",
		MIMEType:    "application/json",
	}, s.handleCollectionsResource)

	// Category names are path-escaped, e.g. Background%2FContext.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "categories/{category}/slides",
		Name:        "category-slides",
		Description: "Stored slides of one category",
		MIMEType:    "application/json",
	}, s.handleCategorySlidesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "slides/{documentId}",
		Name:        "slide",
		Description: "One stored slide with its summary, tags and elements",
		MIMEType:    "application/json",
	}, s.handleSlideResource)
}

func (s *Server) handleCategoriesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	counts, err := s.ports.Library.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting categories: %w", err)
	}

	type categoryInfo struct {
		Category string `json:"category"`
		Count    int    `json:"count"`
	}
	infos := make([]categoryInfo, len(counts))
	for i, c := range counts {
		infos[i] = categoryInfo{Category: string(c.Category), Count: c.Count}
	}
	return jsonResult(req.Params.URI, infos)
}

func (s *Server) handleCollectionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Collections == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	cols, err := s.ports.Collections.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}

	type collectionInfo struct {
		Name            string   `json:"name"`
		PresentationIDs []string `json:"presentation_ids"`
	}
	infos := make([]collectionInfo, len(cols))
	for i, c := range cols {
		infos[i] = collectionInfo{Name: c.Name, PresentationIDs: c.PresentationIDs}
	}
	return jsonResult(req.Params.URI, infos)
}

func (s *Server) handleCategorySlidesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	cat, ok := extractCategory(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	records, err := s.ports.Library.ByCategory(ctx, cat)
	if err != nil {
		return nil, fmt.Errorf("listing slides: %w", err)
	}

	slides := make([]SlideOutput, len(records))
	for i := range records {
		slides[i] = toSlideOutput(records[i])
	}
	return jsonResult(req.Params.URI, slides)
}

func (s *Server) handleSlideResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docID := extractDocumentID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	rec, err := s.ports.Library.Get(ctx, docID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("getting slide: %w", err)
	}

	type slideDetail struct {
		SlideOutput
		Elements []domain.PageElement `json:"elements"`
	}
	elements := rec.Slide.PageElements
	if elements == nil {
		elements = []domain.PageElement{}
	}
	return jsonResult(req.Params.URI, slideDetail{SlideOutput: toSlideOutput(*rec), Elements: elements})
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractCategory parses deckforge://categories/{category}/slides.
func extractCategory(uri string) (domain.Category, bool) {
	const prefix = uriScheme + "categories/"
	const suffix = "/slides"

	if !strings.HasPrefix(uri, prefix) || !strings.HasSuffix(uri, suffix) {
		return "", false
	}
	raw := strings.TrimSuffix(strings.TrimPrefix(uri, prefix), suffix)
	name, err := url.PathUnescape(raw)
	if err != nil {
		return "", false
	}
	cat, err := domain.ParseCategory(name)
	if err != nil {
		return "", false
	}
	return cat, true
}

// extractDocumentID extracts the document ID from deckforge://slides/{documentId}.
func extractDocumentID(uri string) string {
	const prefix = uriScheme + "slides/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
