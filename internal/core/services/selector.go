package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/deckforge/internal/core/domain"
	"github.com/custodia-labs/deckforge/internal/core/ports/driven"
	"github.com/custodia-labs/deckforge/internal/logger"
)

// Selection identifies the slide chosen for a section.
type Selection struct {
	PresentationID string `json:"presentation_id"`
	ObjectID       string `json:"objectId"`
}

// Selector asks an LLM to pick the one candidate slide that best serves a
// section of the client's presentation.
type Selector struct {
	llm      driven.LLMService
	prompts  driven.PromptStore
	budgeter *Budgeter
}

// NewSelector creates a selector. The budgeter should carry the selection
// budget, which is usually smaller than the annotation budget.
func NewSelector(llm driven.LLMService, prompts driven.PromptStore, budgeter *Budgeter) *Selector {
	return &Selector{llm: llm, prompts: prompts, budgeter: budgeter}
}

// Select returns the chosen candidate. With no candidates it returns
// ErrNoCandidates without calling the LLM. A reply that is not JSON, lacks
// either key, or names a slide that is not a candidate is ErrSelectionFailed.
func (s *Selector) Select(
	ctx context.Context,
	candidates []domain.StoredSlideRecord,
	category domain.Category,
	guidance, intent string,
) (Selection, error) {
	if len(candidates) == 0 {
		return Selection{}, ErrNoCandidates
	}
	if s.llm == nil {
		return Selection{}, domain.ErrLLMUnavailable
	}

	metadata := make([]domain.SlideMetadata, len(candidates))
	for i, c := range candidates {
		metadata[i] = c.Metadata()
	}
	payload, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return Selection{}, fmt.Errorf("encode candidates: %w", err)
	}

	tmpl, err := loadPrompt(s.prompts, driven.PromptSelectSlide)
	if err != nil {
		return Selection{}, err
	}
	prompt := s.budgeter.FitPrompt(tmpl, map[string]string{
		"category":   category.String(),
		"guidance":   guidance,
		"intent":     intent,
		"candidates": string(payload),
	}, "candidates")

	logger.Debug("selecting %s from %d candidates", category, len(candidates))
	reply, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{})
	if err != nil {
		return Selection{}, fmt.Errorf("%w: %w", ErrSelectionFailed, err)
	}

	sel, err := parseJSON[Selection](reply)
	if err != nil {
		return Selection{}, fmt.Errorf("%w: %w", ErrSelectionFailed, err)
	}
	if sel.PresentationID == "" || sel.ObjectID == "" {
		return Selection{}, fmt.Errorf("%w: reply must set presentation_id and objectId", ErrSelectionFailed)
	}
	for _, c := range candidates {
		if c.PresentationID == sel.PresentationID && c.Slide.ObjectID == sel.ObjectID {
			return sel, nil
		}
	}
	return Selection{}, fmt.Errorf("%w: %s/%s is not a candidate", ErrSelectionFailed, sel.PresentationID, sel.ObjectID)
}
