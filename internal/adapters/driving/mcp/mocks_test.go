package mcp

import (
	"context"

	"github.com/custodia-labs/deckforge/internal/core/domain"
	"github.com/custodia-labs/deckforge/internal/core/ports/driving"
)

var (
	_ driving.SlideLibrary      = (*mockLibrary)(nil)
	_ driving.CollectionService = (*mockCollections)(nil)
	_ driving.AssemblyService   = (*mockAssembly)(nil)
	_ driving.AnnotationService = (*mockAnnotation)(nil)
	_ driving.TransplantService = (*mockTransplant)(nil)
)

// mockLibrary is a mock implementation of driving.SlideLibrary.
type mockLibrary struct {
	records   []domain.StoredSlideRecord
	counts    []domain.CategoryCount
	err       error
	lastHints []string
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

func (m *mockLibrary) ByCategoryAndTags(ctx context.Context, cat domain.Category, hints []string) ([]domain.StoredSlideRecord, error) {
	m.lastHints = hints
	return m.ByCategory(ctx, cat)
}

func (m *mockLibrary) Get(_ context.Context, documentID string) (*domain.StoredSlideRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
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

func (m *mockLibrary) Delete(_ context.Context, _ string) error {
	return m.err
}

// mockCollections is a mock implementation of driving.CollectionService.
type mockCollections struct {
	collections []domain.Collection
	err         error
}

func (m *mockCollections) Add(_ context.Context, name string, ids ...string) (*domain.Collection, error) {
	return &domain.Collection{Name: name, PresentationIDs: ids}, m.err
}

func (m *mockCollections) Get(_ context.Context, _ string) (*domain.Collection, error) {
	return nil, domain.ErrNotFound
}

func (m *mockCollections) List(_ context.Context) ([]domain.Collection, error) {
	return m.collections, m.err
}

// mockAssembly is a mock implementation of driving.AssemblyService.
type mockAssembly struct {
	outline *domain.PresentationOutline
	report  *domain.AssemblyReport
	err     error
	lastReq domain.AssemblyRequest
}

func (m *mockAssembly) Assemble(_ context.Context, req domain.AssemblyRequest) (*domain.AssemblyReport, error) {
	m.lastReq = req
	return m.report, m.err
}

func (m *mockAssembly) Outline(_ context.Context, _, _ string) (*domain.PresentationOutline, error) {
	return m.outline, m.err
}

// mockAnnotation is a mock implementation of driving.AnnotationService.
type mockAnnotation struct {
	reports        []domain.AnnotationReport
	err            error
	lastCollection string
	lastIDs        []string
}

func (m *mockAnnotation) AnnotatePresentation(_ context.Context, id string) (*domain.AnnotationReport, error) {
	return &domain.AnnotationReport{PresentationID: id}, m.err
}

func (m *mockAnnotation) AnnotatePresentations(_ context.Context, ids []string) ([]domain.AnnotationReport, error) {
	m.lastIDs = ids
	return m.reports, m.err
}

func (m *mockAnnotation) AnnotateCollection(_ context.Context, name string) ([]domain.AnnotationReport, error) {
	m.lastCollection = name
	return m.reports, m.err
}

// mockTransplant is a mock implementation of driving.TransplantService.
type mockTransplant struct {
	result  *domain.TransplantResult
	err     error
	lastReq domain.TransplantRequest
}

func (m *mockTransplant) Transplant(_ context.Context, req domain.TransplantRequest) (*domain.TransplantResult, error) {
	m.lastReq = req
	return m.result, m.err
}

func testRecords() []domain.StoredSlideRecord {
	return []domain.StoredSlideRecord{
		{
			AnnotatedSlide: domain.AnnotatedSlide{
				Slide: domain.RawSlide{
					ObjectID:     "g1",
					PageElements: []domain.PageElement{{ObjectID: "s1", Kind: domain.ElementKindShape}},
				},
				Summary:  "Revenue grew 40% year on year",
				Category: domain.CategoryData,
				Tags:     []string{"revenue", "growth"},
			},
			DocumentID:     "slide-g1-1700000000",
			PresentationID: "deck-1",
		},
		{
			AnnotatedSlide: domain.AnnotatedSlide{
				Slide:    domain.RawSlide{ObjectID: "g2"},
				Summary:  "Context of the market",
				Category: domain.CategoryBackground,
			},
			DocumentID:     "slide-g2-1700000000",
			PresentationID: "deck-1",
		},
	}
}
