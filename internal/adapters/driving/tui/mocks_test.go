package tui

import (
	"context"

	"github.com/custodia-labs/deckforge/internal/core/domain"
	"github.com/custodia-labs/deckforge/internal/core/ports/driving"
)

var (
	_ driving.SlideLibrary      = (*mockLibrary)(nil)
	_ driving.CollectionService = (*mockCollections)(nil)
)

type mockLibrary struct {
	records []domain.StoredSlideRecord
	counts  []domain.CategoryCount
	err     error
	deleted []string
}

func (m *mockLibrary) ByCategory(_ context.Context, cat domain.Category) ([]domain.StoredSlideRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.StoredSlideRecord
	for _, r := range m.records {
		if r.Category == cat {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockLibrary) ByCategoryAndTags(ctx context.Context, cat domain.Category, _ []string) ([]domain.StoredSlideRecord, error) {
	return m.ByCategory(ctx, cat)
}

func (m *mockLibrary) Get(_ context.Context, documentID string) (*domain.StoredSlideRecord, error) {
	for i := range m.records {
		if m.records[i].DocumentID == documentID {
			return &m.records[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockLibrary) List(_ context.Context) ([]domain.StoredSlideRecord, error) {
	return m.records, m.err
}

func (m *mockLibrary) Categories(_ context.Context) ([]domain.CategoryCount, error) {
	return m.counts, m.err
}

func (m *mockLibrary) Delete(_ context.Context, documentID string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, documentID)
	return nil
}

type mockCollections struct {
	collections []domain.Collection
	err         error
}

func (m *mockCollections) Add(_ context.Context, name string, ids ...string) (*domain.Collection, error) {
	c := domain.Collection{Name: name, PresentationIDs: ids}
	m.collections = append(m.collections, c)
	return &c, nil
}

func (m *mockCollections) Get(_ context.Context, name string) (*domain.Collection, error) {
	for i := range m.collections {
		if m.collections[i].Name == name {
			return &m.collections[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockCollections) List(_ context.Context) ([]domain.Collection, error) {
	return m.collections, m.err
}
