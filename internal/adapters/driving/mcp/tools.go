package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/deckforge/internal/core/domain"
)

// FindSlidesInput is the input schema for the find_slides tool.
type FindSlidesInput struct {
	Category string   `json:"category" jsonschema:"slide category, e.g. Title Slide or Data/Statistics"`
	Tags     []string `json:"tags,omitempty" jsonschema:"tag hints; slides sharing more tags rank first"`
}

// SlideOutput is one stored slide.
type SlideOutput struct {
	DocumentID     string   `json:"document_id"`
	PresentationID string   `json:"presentation_id"`
	SlideID        string   `json:"slide_id"`
	Category       string   `json:"category"`
	Tags           []string `json:"tags"`
	Summary        string   `json:"summary"`
}

// FindSlidesOutput is the output schema for the find_slides tool.
type FindSlidesOutput struct {
	Slides []SlideOutput `json:"slides"`
	Count  int           `json:"count"`
}

// OutlineInput is the input schema for the outline tool.
type OutlineInput struct {
	Intent string `json:"intent" jsonschema:"what the presentation should achieve"`
	Client string `json:"client,omitempty" jsonschema:"description of the audience"`
}

// SectionOutput is one outline section.
type SectionOutput struct {
	Heading  string `json:"heading"`
	Category string `json:"category"`
	Guidance string `json:"guidance"`
}

// OutlineOutput is the output schema for the outline tool.
type OutlineOutput struct {
	Sections []SectionOutput `json:"sections"`
}

// AssembleInput is the input schema for the assemble tool.
type AssembleInput struct {
	Intent          string   `json:"intent" jsonschema:"what the presentation should achieve"`
	Title           string   `json:"title" jsonschema:"title of the new presentation"`
	Client          string   `json:"client,omitempty" jsonschema:"description of the audience"`
	Tags            []string `json:"tags,omitempty" jsonschema:"tag hints that rank candidate slides"`
	BackgroundColor string   `json:"background_color,omitempty" jsonschema:"background colour as #RRGGBB"`
	BackgroundImage string   `json:"background_image,omitempty" jsonschema:"background image URL"`
	Layout          string   `json:"layout,omitempty" jsonschema:"layout for every slide: name such as TITLE_AND_BODY, display name or object ID"`
	Template        string   `json:"template_presentation_id,omitempty" jsonschema:"presentation whose layout is applied to every slide"`
}

// SectionResultOutput is the outcome of one assembled section.
type SectionResultOutput struct {
	Heading              string `json:"heading"`
	Category             string `json:"category"`
	Status               string `json:"status"`
	SourcePresentationID string `json:"source_presentation_id"`
	SourceSlideID        string `json:"source_slide_id"`
	NewSlideID           string `json:"new_slide_id"`
	Error                string `json:"error"`
}

// AssembleOutput is the output schema for the assemble tool.
type AssembleOutput struct {
	PresentationID string                `json:"presentation_id"`
	URL            string                `json:"url"`
	Sections       []SectionResultOutput `json:"sections"`
}

// AnnotateInput is the input schema for the annotate tool.
type AnnotateInput struct {
	PresentationIDs []string `json:"presentation_ids,omitempty" jsonschema:"Google Slides presentation IDs"`
	Collection      string   `json:"collection,omitempty" jsonschema:"annotate every presentation of this collection"`
}

// AnnotateResultOutput summarises one annotated presentation.
type AnnotateResultOutput struct {
	PresentationID string `json:"presentation_id"`
	Stored         int    `json:"stored"`
	Failed         int    `json:"failed"`
	Error          string `json:"error"`
}

// AnnotateOutput is the output schema for the annotate tool.
type AnnotateOutput struct {
	Presentations []AnnotateResultOutput `json:"presentations"`
}

// TransplantInput is the input schema for the transplant tool.
type TransplantInput struct {
	SourcePresentationID      string `json:"source_presentation_id" jsonschema:"presentation holding the slide"`
	SlideID                   string `json:"slide_id" jsonschema:"object ID of the slide to copy"`
	DestinationPresentationID string `json:"destination_presentation_id" jsonschema:"presentation to append the copy to"`
}

// TransplantOutput is the output schema for the transplant tool.
type TransplantOutput struct {
	Status     string `json:"status"`
	NewSlideID string `json:"new_slide_id"`
	Copied     int    `json:"copied"`
	Failed     int    `json:"failed"`
	Error      string `json:"error"`
}

// registerTools registers the tool handlers whose ports are available.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_slides",
		Description: "Find annotated slides in a category, optionally ranked by tags",
	}, s.handleFindSlides)

	if s.ports.Assembly != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "outline",
			Description: "Generate a section outline for a presentation intent without creating anything",
		}, s.handleOutline)
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "assemble",
			Description: "Assemble a new Google Slides presentation from the best stored slide per section",
		}, s.handleAssemble)
	}

	if s.ports.Annotation != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "annotate",
			Description: "Summarise, categorise and tag the slides of presentations",
		}, s.handleAnnotate)
	}

	if s.ports.Transplant != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "transplant",
			Description: "Copy one slide into another presentation",
		}, s.handleTransplant)
	}
}

func (s *Server) handleFindSlides(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindSlidesInput,
) (*mcp.CallToolResult, FindSlidesOutput, error) {
	cat, err := domain.ParseCategory(input.Category)
	if err != nil {
		return nil, FindSlidesOutput{}, fmt.Errorf("%w (valid: %s)", err, domain.CategoryList())
	}

	var records []domain.StoredSlideRecord
	if len(input.Tags) > 0 {
		records, err = s.ports.Library.ByCategoryAndTags(ctx, cat, input.Tags)
	} else {
		records, err = s.ports.Library.ByCategory(ctx, cat)
	}
	if err != nil {
		return nil, FindSlidesOutput{}, err
	}

	output := FindSlidesOutput{
		Slides: make([]SlideOutput, len(records)),
		Count:  len(records),
	}
	for i := range records {
		output.Slides[i] = toSlideOutput(records[i])
	}
	return nil, output, nil
}

func (s *Server) handleOutline(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OutlineInput,
) (*mcp.CallToolResult, OutlineOutput, error) {
	if input.Intent == "" {
		return nil, OutlineOutput{}, errors.New("intent is required")
	}

	outline, err := s.ports.Assembly.Outline(ctx, input.Intent, input.Client)
	if err != nil {
		return nil, OutlineOutput{}, err
	}

	output := OutlineOutput{Sections: make([]SectionOutput, len(outline.Sections))}
	for i, sec := range outline.Sections {
		output.Sections[i] = SectionOutput{
			Heading:  sec.Heading,
			Category: string(sec.Category),
			Guidance: sec.Guidance,
		}
	}
	return nil, output, nil
}

func (s *Server) handleAssemble(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AssembleInput,
) (*mcp.CallToolResult, AssembleOutput, error) {
	theme := domain.Theme{
		Layout:                 input.Layout,
		TemplatePresentationID: input.Template,
		BackgroundImageURL:     input.BackgroundImage,
	}
	if input.BackgroundColor != "" {
		c, err := domain.ParseHexColor(input.BackgroundColor)
		if err != nil {
			return nil, AssembleOutput{}, err
		}
		theme.BackgroundColor = &c
	}

	req := domain.AssemblyRequest{
		Intent:            input.Intent,
		Title:             input.Title,
		ClientDescription: input.Client,
		Theme:             theme,
		TagHints:          input.Tags,
	}
	if err := req.Validate(); err != nil {
		return nil, AssembleOutput{}, err
	}

	report, err := s.ports.Assembly.Assemble(ctx, req)
	if err != nil {
		return nil, AssembleOutput{}, err
	}

	output := AssembleOutput{
		PresentationID: report.PresentationID,
		URL:            "https://docs.google.com/presentation/d/" + report.PresentationID + "/edit",
		Sections:       make([]SectionResultOutput, len(report.Sections)),
	}
	for i := range report.Sections {
		sec := &report.Sections[i]
		output.Sections[i] = SectionResultOutput{
			Heading:              sec.Section.Heading,
			Category:             string(sec.Section.Category),
			Status:               string(sec.Status),
			SourcePresentationID: sec.SourcePresentationID,
			SourceSlideID:        sec.SourceSlideID,
			NewSlideID:           sec.NewSlideID,
			Error:                errText(sec.Err),
		}
	}
	return nil, output, nil
}

func (s *Server) handleAnnotate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnnotateInput,
) (*mcp.CallToolResult, AnnotateOutput, error) {
	var (
		reports []domain.AnnotationReport
		err     error
	)
	switch {
	case input.Collection != "":
		reports, err = s.ports.Annotation.AnnotateCollection(ctx, input.Collection)
	case len(input.PresentationIDs) > 0:
		reports, err = s.ports.Annotation.AnnotatePresentations(ctx, input.PresentationIDs)
	default:
		return nil, AnnotateOutput{}, errors.New("presentation_ids or collection is required")
	}
	if err != nil {
		return nil, AnnotateOutput{}, err
	}

	output := AnnotateOutput{Presentations: make([]AnnotateResultOutput, len(reports))}
	for i := range reports {
		output.Presentations[i] = AnnotateResultOutput{
			PresentationID: reports[i].PresentationID,
			Stored:         len(reports[i].Stored),
			Failed:         len(reports[i].Failures),
			Error:          errText(reports[i].Err),
		}
	}
	return nil, output, nil
}

func (s *Server) handleTransplant(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TransplantInput,
) (*mcp.CallToolResult, TransplantOutput, error) {
	result, err := s.ports.Transplant.Transplant(ctx, domain.TransplantRequest{
		SourcePresentationID:      input.SourcePresentationID,
		SourceSlideID:             input.SlideID,
		DestinationPresentationID: input.DestinationPresentationID,
	})
	if err != nil {
		return nil, TransplantOutput{}, err
	}

	return nil, TransplantOutput{
		Status:     string(result.Status),
		NewSlideID: result.NewSlideID,
		Copied:     result.Count(domain.ElementCopied),
		Failed:     result.Count(domain.ElementFailed),
		Error:      errText(result.Err),
	}, nil
}

func toSlideOutput(rec domain.StoredSlideRecord) SlideOutput {
	tags := rec.Tags
	if tags == nil {
		tags = []string{}
	}
	return SlideOutput{
		DocumentID:     rec.DocumentID,
		PresentationID: rec.PresentationID,
		SlideID:        rec.Slide.ObjectID,
		Category:       string(rec.Category),
		Tags:           tags,
		Summary:        rec.Summary,
	}
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
