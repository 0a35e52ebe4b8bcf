package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/deckforge/internal/core/domain"
	"github.com/custodia-labs/deckforge/internal/core/ports/driven"
	"github.com/custodia-labs/deckforge/internal/core/ports/driving"
)

// Ensure Retriever implements the interface.
var _ driving.SlideLibrary = (*Retriever)(nil)

// Retriever looks up annotated slides in the annotation store.
type Retriever struct {
	store driven.AnnotationStore
}

// NewRetriever creates a retriever over a store.
func NewRetriever(store driven.AnnotationStore) *Retriever {
	return &Retriever{store: store}
}

// ByCategory returns every stored slide whose category equals cat.
func (r *Retriever) ByCategory(ctx context.Context, cat domain.Category) ([]domain.StoredSlideRecord, error) {
	if !cat.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, cat)
	}
	records, err := r.store.ListByCategory(ctx, cat)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", cat, err)
	}
	return records, nil
}

// ByCategoryAndTags returns a category's slides ranked by the number of
// tags they share with hints, compared case-insensitively. When any slide
// overlaps, slides without overlap are dropped.
func (r *Retriever) ByCategoryAndTags(
	ctx context.Context, cat domain.Category, hints []string,
) ([]domain.StoredSlideRecord, error) {
	records, err := r.ByCategory(ctx, cat)
	if err != nil {
		return nil, err
	}
	want := make(map[string]bool, len(hints))
	for _, h := range hints {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			want[h] = true
		}
	}
	if len(want) == 0 {
		return records, nil
	}

	scores := make(map[string]int, len(records))
	var matched []domain.StoredSlideRecord
	for _, rec := range records {
		n := 0
		for _, tag := range rec.Tags {
			if want[strings.ToLower(tag)] {
				n++
			}
		}
		if n > 0 {
			scores[rec.DocumentID] = n
			matched = append(matched, rec)
		}
	}
	if len(matched) == 0 {
		return records, nil
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return scores[matched[i].DocumentID] > scores[matched[j].DocumentID]
	})
	return matched, nil
}

// Get retrieves one stored slide by document ID.
func (r *Retriever) Get(ctx context.Context, documentID string) (*domain.StoredSlideRecord, error) {
	return r.store.Get(ctx, documentID)
}

// List returns every stored slide.
func (r *Retriever) List(ctx context.Context) ([]domain.StoredSlideRecord, error) {
	return r.store.List(ctx)
}

// Categories returns a count for every category in taxonomy order,
// including categories with no slides.
func (r *Retriever) Categories(ctx context.Context) ([]domain.CategoryCount, error) {
	counts, err := r.store.CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	byCat := make(map[domain.Category]int, len(counts))
	for _, c := range counts {
		byCat[c.Category] = c.Count
	}
	out := make([]domain.CategoryCount, 0, len(domain.AllCategories()))
	for _, cat := range domain.AllCategories() {
		out = append(out, domain.CategoryCount{Category: cat, Count: byCat[cat]})
	}
	return out, nil
}

// Delete removes a stored slide.
func (r *Retriever) Delete(ctx context.Context, documentID string) error {
	return r.store.Delete(ctx, documentID)
}
