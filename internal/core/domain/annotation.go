package domain

import (
	"fmt"
	"time"
)

// AnnotatedSlide is a slide with the output of the annotation pipeline.
type AnnotatedSlide struct {
	Slide    RawSlide
	Summary  string
	Category Category
	Tags     []string
}

// StoredSlideRecord is an annotated slide as persisted in the annotation store.
type StoredSlideRecord struct {
	AnnotatedSlide

	// DocumentID is the store key, see NewDocumentID.
	DocumentID string

	// PresentationID is the presentation the slide was read from.
	PresentationID string

	// AnnotatedAt is when the pipeline finished the slide.
	AnnotatedAt time.Time
}

// NewDocumentID builds the store key for a slide annotated at t.
// The key is slide-{objectId}-{epochSeconds}, with -{nonce} appended when
// nonce is non-empty so that two runs within one second do not collide.
func NewDocumentID(objectID string, t time.Time, nonce string) string {
	id := fmt.Sprintf("slide-%s-%d", objectID, t.Unix())
	if nonce != "" {
		id += "-" + nonce
	}
	return id
}

// SlideMetadata is the shrunk view of a record sent to the selector.
type SlideMetadata struct {
	PresentationID string   `json:"presentation_id"`
	ObjectID       string   `json:"objectId"`
	Summary        string   `json:"summary"`
	Tags           []string `json:"tags"`
}

// Metadata returns the selector view of the record.
func (r StoredSlideRecord) Metadata() SlideMetadata {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return SlideMetadata{
		PresentationID: r.PresentationID,
		ObjectID:       r.Slide.ObjectID,
		Summary:        r.Summary,
		Tags:           tags,
	}
}

// SlideFailure records a slide that could not be annotated.
type SlideFailure struct {
	SlideID string
	Stage   string
	Err     error
}

// AnnotationReport is the outcome of annotating one presentation.
type AnnotationReport struct {
	PresentationID string
	Stored         []StoredSlideRecord
	Failures       []SlideFailure

	// Err is set when the presentation itself could not be read.
	Err error
}

// CategoryCount is the number of stored slides in a category.
type CategoryCount struct {
	Category Category
	Count    int
}
