package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deckforge/internal/core/domain"
)

const sampleOutline = `Title Slide:
    Title of the presentation
    Presenter name

**2. Agenda:**
- Topics covered

## Background/Context: why this matters now

Closing Remarks:
    Something the taxonomy does not know


Q&A
    Invite questions`

func TestParseOutline(t *testing.T) {
	outline := ParseOutline(sampleOutline)

	require.Len(t, outline.Sections, 5)
	assert.Equal(t, sampleOutline, outline.Raw)

	assert.Equal(t, domain.CategoryTitleSlide, outline.Sections[0].Category)
	assert.Equal(t, "Title of the presentation\nPresenter name", outline.Sections[0].Guidance)

	assert.Equal(t, domain.CategoryAgenda, outline.Sections[1].Category)
	assert.Equal(t, "- Topics covered", outline.Sections[1].Guidance)

	assert.Equal(t, domain.CategoryBackground, outline.Sections[2].Category)
	assert.Equal(t, "why this matters now", outline.Sections[2].Guidance)

	assert.Equal(t, domain.Category(""), outline.Sections[3].Category)
	assert.Equal(t, "Closing Remarks", outline.Sections[3].Heading)

	assert.Equal(t, domain.CategoryQA, outline.Sections[4].Category)
}

func TestParseOutline_Empty(t *testing.T) {
	assert.Empty(t, ParseOutline("").Sections)
	assert.Empty(t, ParseOutline("\n\n  \n\n").Sections)
}

func TestCleanHeading(t *testing.T) {
	tests := []struct {
		in      string
		heading string
		inline  string
	}{
		{in: "Conclusion:", heading: "Conclusion"},
		{in: "1. Introduction", heading: "Introduction"},
		{in: "Section 3: Data/Statistics", heading: "Data/Statistics"},
		{in: "### Thank You", heading: "Thank You"},
		{in: "- Recommendations/Next Steps: act now", heading: "Recommendations/Next Steps", inline: "act now"},
		{in: "`Case Studies/Examples`", heading: "Case Studies/Examples"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			heading, inline := cleanHeading(tt.in)
			assert.Equal(t, tt.heading, heading)
			assert.Equal(t, tt.inline, inline)
		})
	}
}

func TestOutliner_Generate(t *testing.T) {
	llm := newMockLLM().on("OUTLINE", "Title Slide:\n  hello\n\nThank You:\n  bye")
	o := NewOutliner(llm, newMockPromptStore(), NewBudgeter(runeTokenizer{}, DefaultAnnotationBudget))

	outline, err := o.Generate(context.Background(), "pitch our product", "a bank")

	require.NoError(t, err)
	require.Len(t, outline.Sections, 2)
	assert.Contains(t, llm.prompts[0], "pitch our product")
	assert.Contains(t, llm.prompts[0], "a bank")
}

func TestOutliner_Generate_Failures(t *testing.T) {
	budget := NewBudgeter(runeTokenizer{}, DefaultAnnotationBudget)

	_, err := NewOutliner(newMockLLM().fail("OUTLINE", errBoom), newMockPromptStore(), budget).
		Generate(context.Background(), "x", "")
	assert.ErrorIs(t, err, ErrOutlineFailed)

	_, err = NewOutliner(newMockLLM().on("OUTLINE", "  "), newMockPromptStore(), budget).
		Generate(context.Background(), "x", "")
	assert.ErrorIs(t, err, ErrOutlineFailed)

	_, err = NewOutliner(nil, newMockPromptStore(), budget).Generate(context.Background(), "x", "")
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}
