package cli

import (
	"context"
	"errors"

	"github.com/custodia-labs/deckforge/internal/core/domain"
	"github.com/custodia-labs/deckforge/internal/core/ports/driving"
)

var (
	_ driving.AnnotationService = (*mockAnnotationService)(nil)
	_ driving.AssemblyService   = (*mockAssemblyService)(nil)
	_ driving.TransplantService = (*mockTransplantService)(nil)
	_ driving.SlideLibrary      = (*mockSlideLibrary)(nil)
	_ driving.CollectionService = (*mockCollectionService)(nil)
	_ driving.SettingsService   = (*mockSettingsService)(nil)
)

type mockAnnotationService struct {
	reports        []domain.AnnotationReport
	err            error
	lastIDs        []string
	lastCollection string
}

func (m *mockAnnotationService) AnnotatePresentation(_ context.Context, id string) (*domain.AnnotationReport, error) {
	return &domain.AnnotationReport{PresentationID: id}, m.err
}

func (m *mockAnnotationService) AnnotatePresentations(_ context.Context, ids []string) ([]domain.AnnotationReport, error) {
	m.lastIDs = ids
	return m.reports, m.err
}

func (m *mockAnnotationService) AnnotateCollection(_ context.Context, name string) ([]domain.AnnotationReport, error) {
	m.lastCollection = name
	return m.reports, m.err
}

type mockAssemblyService struct {
	report  *domain.AssemblyReport
	outline *domain.PresentationOutline
	err     error
	lastReq *domain.AssemblyRequest
}

func (m *mockAssemblyService) Assemble(_ context.Context, req domain.AssemblyRequest) (*domain.AssemblyReport, error) {
	m.lastReq = &req
	return m.report, m.err
}

func (m *mockAssemblyService) Outline(_ context.Context, _, _ string) (*domain.PresentationOutline, error) {
	return m.outline, m.err
}

type mockTransplantService struct {
	result  *domain.TransplantResult
	err     error
	lastReq domain.TransplantRequest
}

func (m *mockTransplantService) Transplant(_ context.Context, req domain.TransplantRequest) (*domain.TransplantResult, error) {
	m.lastReq = req
	return m.result, m.err
}

type mockSlideLibrary struct {
	records   []domain.StoredSlideRecord
	counts    []domain.CategoryCount
	err       error
	lastHints []string
	deleted   []string
}

func (m *mockSlideLibrary) ByCategory(_ context.Context, cat domain.Category) ([]domain.StoredSlideRecord, error) {
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

func (m *mockSlideLibrary) ByCategoryAndTags(ctx context.Context, cat domain.Category, hints []string) ([]domain.StoredSlideRecord, error) {
	m.lastHints = hints
	return m.ByCategory(ctx, cat)
}

func (m *mockSlideLibrary) Get(_ context.Context, id string) (*domain.StoredSlideRecord, error) {
	for i := range m.records {
		if m.records[i].DocumentID == id {
			return &m.records[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockSlideLibrary) List(_ context.Context) ([]domain.StoredSlideRecord, error) {
	return m.records, m.err
}

func (m *mockSlideLibrary) Categories(_ context.Context) ([]domain.CategoryCount, error) {
	return m.counts, m.err
}

func (m *mockSlideLibrary) Delete(_ context.Context, id string) error {
	for _, r := range m.records {
		if r.DocumentID == id {
			m.deleted = append(m.deleted, id)
			return nil
		}
	}
	return domain.ErrNotFound
}

type mockCollectionService struct {
	collections map[string]*domain.Collection
}

func (m *mockCollectionService) Add(_ context.Context, name string, ids ...string) (*domain.Collection, error) {
	if m.collections == nil {
		m.collections = map[string]*domain.Collection{}
	}
	c, ok := m.collections[name]
	if !ok {
		c = &domain.Collection{Name: name}
		m.collections[name] = c
	}
	c.PresentationIDs = append(c.PresentationIDs, ids...)
	return c, nil
}

func (m *mockCollectionService) Get(_ context.Context, name string) (*domain.Collection, error) {
	if c, ok := m.collections[name]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockCollectionService) List(_ context.Context) ([]domain.Collection, error) {
	out := make([]domain.Collection, 0, len(m.collections))
	for _, c := range m.collections {
		out = append(out, *c)
	}
	return out, nil
}

type mockSettingsService struct {
	settings    domain.AppSettings
	validateErr error
	pingErr     error
	googlePath  string
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.settings = *settings
	return nil
}

func (m *mockSettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return errors.New("invalid provider")
	}
	m.settings.LLM.Provider = provider
	m.settings.LLM.Model = model
	m.settings.LLM.APIKey = apiKey
	return nil
}

func (m *mockSettingsService) SetGoogleCredentials(path string) error {
	m.googlePath = path
	m.settings.Google.CredentialsFile = path
	return nil
}

func (m *mockSettingsService) Validate() error {
	return m.validateErr
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *mockSettingsService) ValidateLLMConfig() error {
	return m.pingErr
}

// testServices holds the mocks installed by setupTestServices.
type testServices struct {
	annotation  *mockAnnotationService
	assembly    *mockAssemblyService
	transplant  *mockTransplantService
	library     *mockSlideLibrary
	collections *mockCollectionService
	settings    *mockSettingsService
}

// setupTestServices installs fresh mocks and resets command flags.
// The returned cleanup restores the previous services.
func setupTestServices() (*testServices, func()) {
	old := Services{
		Annotation:  annotationService,
		Assembly:    assemblyService,
		Transplant:  transplantService,
		Library:     slideLibrary,
		Collections: collectionService,
		Settings:    settingsService,
		Prompts:     promptWatcher,
	}

	ts := &testServices{
		annotation:  &mockAnnotationService{},
		assembly:    &mockAssemblyService{},
		transplant:  &mockTransplantService{},
		library:     &mockSlideLibrary{},
		collections: &mockCollectionService{},
		settings:    &mockSettingsService{settings: domain.DefaultAppSettings()},
	}
	SetServices(Services{
		Annotation:  ts.annotation,
		Assembly:    ts.assembly,
		Transplant:  ts.transplant,
		Library:     ts.library,
		Collections: ts.collections,
		Settings:    ts.settings,
	})

	return ts, func() {
		SetServices(old)
		resetFlags()
	}
}

func resetFlags() {
	annotateCollection, annotateJSON = "", false
	assembleIntent, assembleTitle, assembleClient = "", "", ""
	assembleTags = nil
	assembleBackgroundColor, assembleBackgroundImage, assembleLayout, assembleTemplate = "", "", "", ""
	assembleDryRun, assembleJSON = false, false
	slidesCategory, slidesTags, slidesJSON = "", nil, false
	verbose = false
}
