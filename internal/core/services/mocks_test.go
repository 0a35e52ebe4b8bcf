package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/deckforge/internal/core/domain"
	"github.com/custodia-labs/deckforge/internal/core/ports/driven"
)

// runeTokenizer treats every rune as one token.
type runeTokenizer struct{}

func (runeTokenizer) Encode(text string) []int {
	out := make([]int, 0, len(text))
	for _, r := range text {
		out = append(out, int(r))
	}
	return out
}

func (runeTokenizer) Decode(tokens []int) string {
	rs := make([]rune, len(tokens))
	for i, t := range tokens {
		rs[i] = rune(t)
	}
	return string(rs)
}

func (runeTokenizer) Count(text string) int {
	return len([]rune(text))
}

// mockPromptStore serves fixed templates.
type mockPromptStore struct {
	prompts map[string]string
}

func newMockPromptStore() *mockPromptStore {
	return &mockPromptStore{prompts: map[string]string{
		driven.PromptSummariseSlide:      "SUMMARISE {slide}",
		driven.PromptCategoriseSlide:     "CATEGORISE into {categories}: {summary}",
		driven.PromptTagSlide:            "TAG {summary}",
		driven.PromptPresentationOutline: "OUTLINE for {client}: {intent}",
		driven.PromptSelectSlide:         "SELECT {category} ({guidance}) for {intent} from {candidates}",
	}}
}

func (m *mockPromptStore) Load(name string) (string, error) {
	p, ok := m.prompts[name]
	if !ok {
		return "", fmt.Errorf("prompt %s: %w", name, domain.ErrNotFound)
	}
	return p, nil
}

func (m *mockPromptStore) Reload() {}

// mockLLM answers by the first word of the prompt. Replies for a stage are
// consumed in order; the last one repeats.
type mockLLM struct {
	mu      sync.Mutex
	replies map[string][]string
	errs    map[string]error
	prompts []string
}

func newMockLLM() *mockLLM {
	return &mockLLM{replies: map[string][]string{}, errs: map[string]error{}}
}

func (m *mockLLM) on(stage string, replies ...string) *mockLLM {
	m.replies[stage] = append(m.replies[stage], replies...)
	return m
}

func (m *mockLLM) fail(stage string, err error) *mockLLM {
	m.errs[stage] = err
	return m
}

func (m *mockLLM) calls(stage string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, p := range m.prompts {
		if strings.HasPrefix(p, stage) {
			n++
		}
	}
	return n
}

func (m *mockLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	stage, _, _ := strings.Cut(prompt, " ")
	if err := m.errs[stage]; err != nil {
		return "", err
	}
	rs := m.replies[stage]
	switch len(rs) {
	case 0:
		return "", nil
	case 1:
		return rs[0], nil
	default:
		m.replies[stage] = rs[1:]
		return rs[0], nil
	}
}

func (m *mockLLM) ModelName() string            { return "mock" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// fakeSlides is an in-memory presentation service.
type fakeSlides struct {
	mu            sync.Mutex
	presentations map[string]*domain.Presentation
	batches       [][]domain.PageRequest
	nextID        int

	// failBatch fails BatchUpdate when it returns an error for the requests.
	failBatch func(reqs []domain.PageRequest) error
	getErr    error
	createErr error

	// hideSlides delays visibility of created slides for this many reads.
	hideSlides int
	reads      int
	gets       int
	opened     int
	closed     int
}

func newFakeSlides() *fakeSlides {
	return &fakeSlides{presentations: map[string]*domain.Presentation{}}
}

func (f *fakeSlides) add(p *domain.Presentation) {
	f.presentations[p.ID] = p
}

func (f *fakeSlides) Open(_ context.Context) (driven.PresentationSession, error) {
	f.opened++
	return f, nil
}

func (f *fakeSlides) Close() error {
	f.closed++
	return nil
}

func (f *fakeSlides) GetPresentation(_ context.Context, id string) (*domain.Presentation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.presentations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	f.reads++
	cp := *p
	if f.hideSlides > 0 {
		f.hideSlides--
		cp.Slides = nil
	}
	return &cp, nil
}

func (f *fakeSlides) CreatePresentation(_ context.Context, title string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", "", f.createErr
	}
	f.nextID++
	id := fmt.Sprintf("new-%d", f.nextID)
	f.presentations[id] = &domain.Presentation{
		ID:     id,
		Title:  title,
		Slides: []domain.RawSlide{{ObjectID: "p"}},
		Layouts: []domain.Layout{
			{ObjectID: "layout-title", Name: "TITLE", DisplayName: "Title slide"},
			{ObjectID: "layout-body", Name: "TITLE_AND_BODY", DisplayName: "Title and body"},
		},
	}
	return id, "p", nil
}

func (f *fakeSlides) BatchUpdate(_ context.Context, id string, reqs []domain.PageRequest) (domain.BatchUpdateResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, reqs)
	if f.failBatch != nil {
		if err := f.failBatch(reqs); err != nil {
			return domain.BatchUpdateResponse{}, err
		}
	}
	p, ok := f.presentations[id]
	if !ok {
		return domain.BatchUpdateResponse{}, domain.ErrNotFound
	}
	resp := domain.BatchUpdateResponse{Replies: make([]domain.Reply, len(reqs))}
	for i, r := range reqs {
		switch r := r.(type) {
		case domain.CreateSlide:
			p.Slides = append(p.Slides, domain.RawSlide{ObjectID: r.ObjectID})
			resp.Replies[i].ObjectID = r.ObjectID
		case domain.CreateShape:
			resp.Replies[i].ObjectID = r.ObjectID
		case domain.CreateImage:
			resp.Replies[i].ObjectID = r.ObjectID
		case domain.DeleteObject:
			for j, s := range p.Slides {
				if s.ObjectID == r.ObjectID {
					p.Slides = append(p.Slides[:j], p.Slides[j+1:]...)
					break
				}
			}
		}
	}
	return resp, nil
}

// requestsOf returns every batched request of type T.
func requestsOf[T domain.PageRequest](f *fakeSlides) []T {
	var out []T
	for _, b := range f.batches {
		for _, r := range b {
			if t, ok := r.(T); ok {
				out = append(out, t)
			}
		}
	}
	return out
}

var errBoom = errors.New("boom")

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("obj%02d", n)
	}
}
