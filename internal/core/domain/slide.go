package domain

import (
	"encoding/json"
	"strings"
)

// ElementKind classifies a page element for reconstruction.
type ElementKind string

// Element kinds.
const (
	// ElementKindShape is a shape, possibly holding text.
	ElementKindShape ElementKind = "shape"

	// ElementKindImage is an image with a content or source URL.
	ElementKindImage ElementKind = "image"

	// ElementKindOther covers tables, lines, video, charts, groups
	// and anything else that cannot be reconstructed element by element.
	ElementKindOther ElementKind = "other"
)

// Dimension is a magnitude with a unit, e.g. 3000000 EMU.
type Dimension struct {
	Magnitude float64 `json:"magnitude"`
	Unit      string  `json:"unit,omitempty"`
}

// Size is the extent of a page element before its transform is applied.
type Size struct {
	Width  Dimension `json:"width"`
	Height Dimension `json:"height"`
}

// Transform is the affine transform placing an element on its page.
type Transform struct {
	ScaleX     float64 `json:"scaleX"`
	ScaleY     float64 `json:"scaleY"`
	ShearX     float64 `json:"shearX"`
	ShearY     float64 `json:"shearY"`
	TranslateX float64 `json:"translateX"`
	TranslateY float64 `json:"translateY"`
	Unit       string  `json:"unit,omitempty"`
}

// Shape holds the type and text of a shape element.
type Shape struct {
	// ShapeType is the presentation service's shape type, e.g. TEXT_BOX.
	ShapeType string `json:"shapeType,omitempty"`

	// TextRuns are the literal text run contents in source order.
	TextRuns []string `json:"textRuns,omitempty"`
}

// Text returns the concatenated text of all runs.
func (s Shape) Text() string {
	var n int
	for _, r := range s.TextRuns {
		n += len(r)
	}
	b := make([]byte, 0, n)
	for _, r := range s.TextRuns {
		b = append(b, r...)
	}
	return string(b)
}

// Image holds the URLs of an image element.
type Image struct {
	// ContentURL is a short-lived URL for the rendered image.
	ContentURL string `json:"contentUrl,omitempty"`

	// SourceURL is the URL the image was originally inserted from.
	SourceURL string `json:"sourceUrl,omitempty"`
}

// URL returns the best URL to re-create the image from, or "" if none.
func (i Image) URL() string {
	if i.ContentURL != "" {
		return i.ContentURL
	}
	return i.SourceURL
}

// PageElement is one visual object positioned on a slide.
type PageElement struct {
	ObjectID  string      `json:"objectId"`
	Kind      ElementKind `json:"kind"`
	Size      *Size       `json:"size,omitempty"`
	Transform *Transform  `json:"transform,omitempty"`
	Shape     *Shape      `json:"shape,omitempty"`
	Image     *Image      `json:"image,omitempty"`
}

// RawSlide is a slide as read from the presentation service.
type RawSlide struct {
	// ObjectID is unique within the owning presentation.
	ObjectID string `json:"objectId"`

	// PageElements are in z-order as returned by the service.
	PageElements []PageElement `json:"pageElements"`

	// Raw is the service's own serialisation of the page.
	Raw json.RawMessage `json:"-"`
}

// Payload returns the text sent to the summarise stage: the service's own
// serialisation when present, otherwise the JSON of the parsed slide.
func (s RawSlide) Payload() string {
	if len(s.Raw) > 0 {
		return string(s.Raw)
	}
	b, err := json.Marshal(s)
	if err != nil {
		return s.ObjectID
	}
	return string(b)
}

// Layout is a slide layout available in a presentation.
type Layout struct {
	ObjectID    string
	Name        string
	DisplayName string
}

// Presentation is a presentation with its ordered slides.
type Presentation struct {
	ID      string
	Title   string
	Slides  []RawSlide
	Layouts []Layout
}

// FindLayout returns the layout matching ref by object ID, or by name or
// display name ignoring case.
func (p *Presentation) FindLayout(ref string) (Layout, bool) {
	if ref == "" {
		return Layout{}, false
	}
	for _, l := range p.Layouts {
		if l.ObjectID == ref {
			return l, true
		}
	}
	for _, l := range p.Layouts {
		if strings.EqualFold(l.Name, ref) || strings.EqualFold(l.DisplayName, ref) {
			return l, true
		}
	}
	return Layout{}, false
}

// Slide returns the slide with the given object ID.
func (p *Presentation) Slide(objectID string) (RawSlide, bool) {
	for _, s := range p.Slides {
		if s.ObjectID == objectID {
			return s, true
		}
	}
	return RawSlide{}, false
}
