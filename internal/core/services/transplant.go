package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/deckforge/internal/core/domain"
	"github.com/custodia-labs/deckforge/internal/core/ports/driven"
	"github.com/custodia-labs/deckforge/internal/core/ports/driving"
	"github.com/custodia-labs/deckforge/internal/logger"
)

// DefaultShapeType is used when a shape's type is unknown and for
// elements that cannot be reconstructed.
const DefaultShapeType = "TEXT_BOX"

// Transplanter reconstructs a slide's visual content in another
// presentation, element by element.
type Transplanter struct {
	newID func() string
}

// NewTransplanter creates a transplanter with random object IDs.
func NewTransplanter() *Transplanter {
	return &Transplanter{newID: newObjectID}
}

// SetIDGenerator replaces the object ID generator.
func (t *Transplanter) SetIDGenerator(fn func() string) {
	t.newID = fn
}

// Transplant copies req.SourceSlideID into the destination. It never
// returns an error; the outcome is carried in the result.
func (t *Transplanter) Transplant(
	ctx context.Context, pres driven.PresentationService, req domain.TransplantRequest,
) domain.TransplantResult {
	src, err := pres.GetPresentation(ctx, req.SourcePresentationID)
	if err != nil {
		return failedTransplant(fmt.Errorf("get source presentation %s: %w", req.SourcePresentationID, err))
	}
	slide, ok := src.Slide(req.SourceSlideID)
	if !ok {
		return failedTransplant(fmt.Errorf("%w: %s in %s", domain.ErrSlideNotFound, req.SourceSlideID, req.SourcePresentationID))
	}

	slideID := t.newID()
	resp, err := pres.BatchUpdate(ctx, req.DestinationPresentationID, []domain.PageRequest{
		domain.CreateSlide{ObjectID: slideID},
	})
	if err != nil {
		return failedTransplant(fmt.Errorf("create slide: %w", err))
	}
	if len(resp.Replies) > 0 && resp.Replies[0].ObjectID != "" {
		slideID = resp.Replies[0].ObjectID
	}

	result := domain.TransplantResult{Status: domain.TransplantSuccess, NewSlideID: slideID}
	var requests []domain.PageRequest
	for _, el := range slide.PageElements {
		reqs, res := t.prepare(el, slideID)
		if res.Outcome == domain.ElementFailed {
			logger.Warn("element %s on slide %s: %s", el.ObjectID, slide.ObjectID, res.Reason)
		}
		result.Elements = append(result.Elements, res)
		requests = append(requests, reqs...)
	}

	if len(requests) > 0 {
		if _, err := pres.BatchUpdate(ctx, req.DestinationPresentationID, requests); err != nil {
			logger.Error("content of slide %s not copied: %v", slideID, err)
			for i := range result.Elements {
				if result.Elements[i].Outcome == domain.ElementCopied {
					result.Elements[i].Outcome = domain.ElementFailed
					result.Elements[i].Reason = "batch update failed"
				}
			}
			result.Status = domain.TransplantPartial
			result.Err = fmt.Errorf("copy slide content: %w", err)
			return result
		}
	}

	if n := result.Count(domain.ElementFailed); n > 0 {
		result.Status = domain.TransplantPartial
		result.Err = fmt.Errorf("%d of %d elements failed", n, len(result.Elements))
	}
	return result
}

// prepare builds the creation requests for one element. Failures are
// confined to the element.
func (t *Transplanter) prepare(el domain.PageElement, pageID string) ([]domain.PageRequest, domain.ElementResult) {
	res := domain.ElementResult{SourceObjectID: el.ObjectID, Kind: el.Kind, Outcome: domain.ElementCopied}
	if err := checkElement(el); err != nil {
		res.Outcome = domain.ElementFailed
		res.Reason = err.Error()
		return nil, res
	}

	id := t.newID()
	switch el.Kind {
	case domain.ElementKindShape:
		shapeType := DefaultShapeType
		var runs []string
		if el.Shape != nil {
			if el.Shape.ShapeType != "" {
				shapeType = el.Shape.ShapeType
			}
			runs = el.Shape.TextRuns
		}
		reqs := []domain.PageRequest{domain.CreateShape{
			ObjectID:  id,
			PageID:    pageID,
			ShapeType: shapeType,
			Size:      el.Size,
			Transform: el.Transform,
		}}
		index := 0
		for _, run := range runs {
			if run == "" {
				continue
			}
			reqs = append(reqs, domain.InsertText{ObjectID: id, Text: run, InsertionIndex: index})
			index += utf16Len(run)
		}
		return reqs, res

	case domain.ElementKindImage:
		var url string
		if el.Image != nil {
			url = el.Image.URL()
		}
		if url == "" {
			res.Outcome = domain.ElementSkipped
			res.Reason = "image has no URL"
			return nil, res
		}
		return []domain.PageRequest{domain.CreateImage{
			ObjectID:  id,
			PageID:    pageID,
			URL:       url,
			Size:      el.Size,
			Transform: el.Transform,
		}}, res

	default:
		res.Reason = "replaced with placeholder text box"
		return []domain.PageRequest{domain.CreateShape{
			ObjectID:  id,
			PageID:    pageID,
			ShapeType: DefaultShapeType,
			Size:      el.Size,
			Transform: el.Transform,
		}}, res
	}
}

func checkElement(el domain.PageElement) error {
	if el.ObjectID == "" {
		return errors.New("element has no object ID")
	}
	if el.Size != nil && (el.Size.Width.Magnitude < 0 || el.Size.Height.Magnitude < 0) {
		return fmt.Errorf("negative size %gx%g", el.Size.Width.Magnitude, el.Size.Height.Magnitude)
	}
	if el.Shape != nil {
		for _, run := range el.Shape.TextRuns {
			if !utf8.ValidString(run) {
				return errors.New("text run is not valid UTF-8")
			}
		}
	}
	return nil
}

func failedTransplant(err error) domain.TransplantResult {
	logger.Error("transplant: %v", err)
	return domain.TransplantResult{Status: domain.TransplantError, Err: err}
}

// utf16Len is the length of s in UTF-16 code units, the unit of text
// insertion indexes.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// newObjectID returns an object ID valid for the presentation service:
// 5 to 50 characters starting with a word character.
func newObjectID() string {
	return "df_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Ensure TransplantService implements the interface.
var _ driving.TransplantService = (*TransplantService)(nil)

// TransplantService runs a single transplant in its own session.
type TransplantService struct {
	opener       driven.PresentationOpener
	transplanter *Transplanter
}

// NewTransplantService creates a transplant service.
func NewTransplantService(opener driven.PresentationOpener, transplanter *Transplanter) *TransplantService {
	return &TransplantService{opener: opener, transplanter: transplanter}
}

// Transplant opens a session, runs the transplant and closes the session.
func (s *TransplantService) Transplant(ctx context.Context, req domain.TransplantRequest) (*domain.TransplantResult, error) {
	if s.opener == nil {
		return nil, domain.ErrPresentationsUnavailable
	}
	if req.SourcePresentationID == "" || req.SourceSlideID == "" || req.DestinationPresentationID == "" {
		return nil, fmt.Errorf("%w: source presentation, source slide and destination are required", domain.ErrInvalidInput)
	}
	session, err := s.opener.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open presentation session: %w", err)
	}
	defer session.Close()

	result := s.transplanter.Transplant(ctx, session, req)
	return &result, nil
}
