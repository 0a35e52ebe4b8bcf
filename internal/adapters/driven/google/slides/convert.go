package slides

import (
	"encoding/json"
	"fmt"

	"google.golang.org/api/slides/v1"

	"github.com/custodia-labs/deckforge/internal/core/domain"
)

// toPresentation maps an API presentation to the domain model.
func toPresentation(p *slides.Presentation) *domain.Presentation {
	out := &domain.Presentation{
		ID:     p.PresentationId,
		Title:  p.Title,
		Slides: make([]domain.RawSlide, 0, len(p.Slides)),
	}
	for _, page := range p.Slides {
		if page == nil {
			continue
		}
		out.Slides = append(out.Slides, toRawSlide(page))
	}
	for _, layout := range p.Layouts {
		if layout == nil {
			continue
		}
		l := domain.Layout{ObjectID: layout.ObjectId}
		if layout.LayoutProperties != nil {
			l.Name = layout.LayoutProperties.Name
			l.DisplayName = layout.LayoutProperties.DisplayName
		}
		out.Layouts = append(out.Layouts, l)
	}
	return out
}

// toRawSlide maps a page, keeping the API serialisation as the raw payload.
func toRawSlide(page *slides.Page) domain.RawSlide {
	slide := domain.RawSlide{
		ObjectID:     page.ObjectId,
		PageElements: make([]domain.PageElement, 0, len(page.PageElements)),
	}
	for _, el := range page.PageElements {
		if el == nil {
			continue
		}
		slide.PageElements = append(slide.PageElements, toPageElement(el))
	}
	if raw, err := json.Marshal(page); err == nil {
		slide.Raw = raw
	}
	return slide
}

func toPageElement(el *slides.PageElement) domain.PageElement {
	out := domain.PageElement{
		ObjectID:  el.ObjectId,
		Kind:      domain.ElementKindOther,
		Size:      toSize(el.Size),
		Transform: toTransform(el.Transform),
	}

	switch {
	case el.Shape != nil:
		out.Kind = domain.ElementKindShape
		out.Shape = &domain.Shape{ShapeType: el.Shape.ShapeType, TextRuns: textRuns(el.Shape.Text)}
	case el.Image != nil:
		out.Kind = domain.ElementKindImage
		out.Image = &domain.Image{ContentURL: el.Image.ContentUrl, SourceURL: el.Image.SourceUrl}
	}
	return out
}

// textRuns returns the literal run contents. Paragraph markers and auto
// text carry no run and are dropped.
func textRuns(text *slides.TextContent) []string {
	if text == nil {
		return nil
	}
	var runs []string
	for _, te := range text.TextElements {
		if te == nil || te.TextRun == nil {
			continue
		}
		runs = append(runs, te.TextRun.Content)
	}
	return runs
}

func toSize(s *slides.Size) *domain.Size {
	if s == nil {
		return nil
	}
	out := &domain.Size{}
	if s.Width != nil {
		out.Width = domain.Dimension{Magnitude: s.Width.Magnitude, Unit: s.Width.Unit}
	}
	if s.Height != nil {
		out.Height = domain.Dimension{Magnitude: s.Height.Magnitude, Unit: s.Height.Unit}
	}
	return out
}

func toTransform(t *slides.AffineTransform) *domain.Transform {
	if t == nil {
		return nil
	}
	return &domain.Transform{
		ScaleX:     t.ScaleX,
		ScaleY:     t.ScaleY,
		ShearX:     t.ShearX,
		ShearY:     t.ShearY,
		TranslateX: t.TranslateX,
		TranslateY: t.TranslateY,
		Unit:       t.Unit,
	}
}

func fromSize(s *domain.Size) *slides.Size {
	if s == nil {
		return nil
	}
	return &slides.Size{
		Width:  &slides.Dimension{Magnitude: s.Width.Magnitude, Unit: s.Width.Unit},
		Height: &slides.Dimension{Magnitude: s.Height.Magnitude, Unit: s.Height.Unit},
	}
}

func fromTransform(t *domain.Transform) *slides.AffineTransform {
	if t == nil {
		return nil
	}
	return &slides.AffineTransform{
		ScaleX:     t.ScaleX,
		ScaleY:     t.ScaleY,
		ShearX:     t.ShearX,
		ShearY:     t.ShearY,
		TranslateX: t.TranslateX,
		TranslateY: t.TranslateY,
		Unit:       t.Unit,
	}
}

func elementProperties(pageID string, size *domain.Size, transform *domain.Transform) *slides.PageElementProperties {
	return &slides.PageElementProperties{
		PageObjectId: pageID,
		Size:         fromSize(size),
		Transform:    fromTransform(transform),
	}
}

// toRequests maps domain requests to API requests, preserving order.
func toRequests(reqs []domain.PageRequest) ([]*slides.Request, error) {
	out := make([]*slides.Request, 0, len(reqs))
	for i, r := range reqs {
		req, err := toRequest(r)
		if err != nil {
			return nil, fmt.Errorf("request %d: %w", i, err)
		}
		out = append(out, req)
	}
	return out, nil
}

func toRequest(r domain.PageRequest) (*slides.Request, error) {
	switch r := r.(type) {
	case domain.CreateSlide:
		create := &slides.CreateSlideRequest{ObjectId: r.ObjectID}
		if r.InsertionIndex != nil {
			create.InsertionIndex = int64(*r.InsertionIndex)
			create.ForceSendFields = []string{"InsertionIndex"}
		}
		return &slides.Request{CreateSlide: create}, nil

	case domain.CreateShape:
		return &slides.Request{CreateShape: &slides.CreateShapeRequest{
			ObjectId:          r.ObjectID,
			ShapeType:         r.ShapeType,
			ElementProperties: elementProperties(r.PageID, r.Size, r.Transform),
		}}, nil

	case domain.CreateImage:
		return &slides.Request{CreateImage: &slides.CreateImageRequest{
			ObjectId:          r.ObjectID,
			Url:               r.URL,
			ElementProperties: elementProperties(r.PageID, r.Size, r.Transform),
		}}, nil

	case domain.InsertText:
		return &slides.Request{InsertText: &slides.InsertTextRequest{
			ObjectId:        r.ObjectID,
			Text:            r.Text,
			InsertionIndex:  int64(r.InsertionIndex),
			ForceSendFields: []string{"InsertionIndex"},
		}}, nil

	case domain.DeleteObject:
		return &slides.Request{DeleteObject: &slides.DeleteObjectRequest{ObjectId: r.ObjectID}}, nil

	case domain.UpdatePageBackground:
		return backgroundRequest(r)

	case domain.UpdateSlideLayout:
		return &slides.Request{UpdateSlideProperties: &slides.UpdateSlidePropertiesRequest{
			ObjectId:        r.PageID,
			SlideProperties: &slides.SlideProperties{LayoutObjectId: r.LayoutID},
			Fields:          "layoutObjectId",
		}}, nil

	default:
		return nil, fmt.Errorf("%w: unsupported request %T", domain.ErrInvalidInput, r)
	}
}

func backgroundRequest(r domain.UpdatePageBackground) (*slides.Request, error) {
	fill := &slides.PageBackgroundFill{}
	var fields string
	switch {
	case r.Color != nil && r.ImageURL != "":
		return nil, fmt.Errorf("%w: background has both colour and image", domain.ErrInvalidInput)
	case r.Color != nil:
		fill.SolidFill = &slides.SolidFill{Color: &slides.OpaqueColor{RgbColor: &slides.RgbColor{
			Red:             r.Color.Red,
			Green:           r.Color.Green,
			Blue:            r.Color.Blue,
			ForceSendFields: []string{"Red", "Green", "Blue"},
		}}}
		fields = "pageBackgroundFill.solidFill.color"
	case r.ImageURL != "":
		fill.StretchedPictureFill = &slides.StretchedPictureFill{ContentUrl: r.ImageURL}
		fields = "pageBackgroundFill.stretchedPictureFill.contentUrl"
	default:
		return nil, fmt.Errorf("%w: background has neither colour nor image", domain.ErrInvalidInput)
	}

	return &slides.Request{UpdatePageProperties: &slides.UpdatePagePropertiesRequest{
		ObjectId:       r.PageID,
		PageProperties: &slides.PageProperties{PageBackgroundFill: fill},
		Fields:         fields,
	}}, nil
}

// toBatchResponse aligns replies with the requests. Requests without a
// created object get an empty reply.
func toBatchResponse(resp *slides.BatchUpdatePresentationResponse, n int) domain.BatchUpdateResponse {
	out := domain.BatchUpdateResponse{Replies: make([]domain.Reply, n)}
	if resp == nil {
		return out
	}
	for i, r := range resp.Replies {
		if i >= n || r == nil {
			continue
		}
		switch {
		case r.CreateSlide != nil:
			out.Replies[i].ObjectID = r.CreateSlide.ObjectId
		case r.CreateShape != nil:
			out.Replies[i].ObjectID = r.CreateShape.ObjectId
		case r.CreateImage != nil:
			out.Replies[i].ObjectID = r.CreateImage.ObjectId
		}
	}
	return out
}
