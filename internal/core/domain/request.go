package domain

// PageRequest is one mutation sent to the presentation service in a batch.
// The set of implementations is closed.
type PageRequest interface {
	pageRequest()
}

// CreateSlide appends an empty slide.
type CreateSlide struct {
	ObjectID string

	// InsertionIndex places the slide; nil appends.
	InsertionIndex *int
}

// CreateShape creates a shape on a page.
type CreateShape struct {
	ObjectID  string
	PageID    string
	ShapeType string
	Size      *Size
	Transform *Transform
}

// CreateImage creates an image on a page from a URL.
type CreateImage struct {
	ObjectID  string
	PageID    string
	URL       string
	Size      *Size
	Transform *Transform
}

// InsertText inserts text into a shape at a UTF-16 index.
type InsertText struct {
	ObjectID       string
	Text           string
	InsertionIndex int
}

// DeleteObject deletes a page or page element.
type DeleteObject struct {
	ObjectID string
}

// UpdatePageBackground sets a solid colour or stretched image background.
// Exactly one of Color and ImageURL is set.
type UpdatePageBackground struct {
	PageID   string
	Color    *RGBColor
	ImageURL string
}

// UpdateSlideLayout points a slide at a layout.
type UpdateSlideLayout struct {
	PageID   string
	LayoutID string
}

func (CreateSlide) pageRequest()          {}
func (CreateShape) pageRequest()          {}
func (CreateImage) pageRequest()          {}
func (InsertText) pageRequest()           {}
func (DeleteObject) pageRequest()         {}
func (UpdatePageBackground) pageRequest() {}
func (UpdateSlideLayout) pageRequest()    {}

// Reply is the reply to one request in a batch. ObjectID is set for
// create requests.
type Reply struct {
	ObjectID string
}

// BatchUpdateResponse holds replies positionally aligned with the requests.
type BatchUpdateResponse struct {
	Replies []Reply
}
