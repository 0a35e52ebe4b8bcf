package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/deckforge/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view ViewType
		want string
	}{
		{ViewCategories, "categories"},
		{ViewSlides, "slides"},
		{ViewSlideDetail, "slide_detail"},
		{ViewCollections, "collections"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.String())
		})
	}
}

func TestViewType_Values(t *testing.T) {
	assert.Equal(t, ViewType(0), ViewCategories)
	assert.NotEqual(t, ViewSlides, ViewSlideDetail)
}

func TestSlidesLoaded(t *testing.T) {
	msg := SlidesLoaded{
		Category: domain.CategoryAgenda,
		Tags:     []string{"roadmap"},
		Slides:   []domain.StoredSlideRecord{{DocumentID: "d1"}},
	}

	assert.Equal(t, domain.CategoryAgenda, msg.Category)
	assert.Len(t, msg.Slides, 1)
	assert.NoError(t, msg.Err)
}

func TestSlideDeleted_WithError(t *testing.T) {
	msg := SlideDeleted{DocumentID: "d1", Err: errors.New("gone")}

	assert.Equal(t, "d1", msg.DocumentID)
	assert.EqualError(t, msg.Err, "gone")
}
