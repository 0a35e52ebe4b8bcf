package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllCategories_Twelve(t *testing.T) {
	cats := AllCategories()
	require.Len(t, cats, 12)
	assert.Equal(t, CategoryTitleSlide, cats[0])
	assert.Equal(t, CategoryThankYou, cats[11])

	cats[0] = "mutated"
	assert.Equal(t, CategoryTitleSlide, AllCategories()[0])
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Category
		wantErr bool
	}{
		{name: "verbatim", input: "Agenda", want: CategoryAgenda},
		{name: "with slash", input: "Background/Context", want: CategoryBackground},
		{name: "ampersand", input: "Q&A", want: CategoryQA},
		{name: "surrounding whitespace", input: "  Thank You\n", want: CategoryThankYou},
		{name: "lower case rejected", input: "agenda", wantErr: true},
		{name: "partial rejected", input: "Background", wantErr: true},
		{name: "free text rejected", input: "This slide is an Agenda", wantErr: true},
		{name: "trailing period rejected", input: "Conclusion.", wantErr: true},
		{name: "empty rejected", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownCategory)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCategory_EveryLabelRoundTrips(t *testing.T) {
	for _, c := range AllCategories() {
		got, err := ParseCategory(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
		assert.True(t, c.IsValid())
	}
}

func TestCategory_IsValid(t *testing.T) {
	assert.False(t, Category("").IsValid())
	assert.False(t, Category(" Agenda").IsValid())
	assert.False(t, Category("Other").IsValid())
}

func TestCategoryList(t *testing.T) {
	list := CategoryList()
	assert.Contains(t, list, "Title Slide, Introduction, Agenda")
	assert.Contains(t, list, "Q&A, Thank You")
}
