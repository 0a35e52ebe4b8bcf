package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/deckforge/internal/core/domain"
	"github.com/custodia-labs/deckforge/internal/core/ports/driven"
	"github.com/custodia-labs/deckforge/internal/core/ports/driving"
	"github.com/custodia-labs/deckforge/internal/logger"
)

// Ensure Annotator implements the interface.
var _ driving.AnnotationService = (*Annotator)(nil)

// Annotation stages, as recorded on slide failures.
const (
	StageSummarise  = "summarise"
	StageCategorise = "categorise"
	StageTag        = "tag"
	StagePersist    = "persist"
)

// Annotator runs the summarise, categorise and tag pipeline over each
// slide of a presentation, persisting every slide as soon as it is tagged.
type Annotator struct {
	opener   driven.PresentationOpener
	llm      driven.LLMService
	prompts  driven.PromptStore
	store    driven.AnnotationStore
	budgeter *Budgeter
	now      func() time.Time
	nonce    func() string
}

// NewAnnotator creates an annotator. The llm parameter may be nil, in which
// case every operation returns domain.ErrLLMUnavailable.
func NewAnnotator(
	opener driven.PresentationOpener,
	llm driven.LLMService,
	prompts driven.PromptStore,
	store driven.AnnotationStore,
	budgeter *Budgeter,
) *Annotator {
	return &Annotator{
		opener:   opener,
		llm:      llm,
		prompts:  prompts,
		store:    store,
		budgeter: budgeter,
		now:      time.Now,
		nonce:    randomNonce,
	}
}

// SetClock replaces the time source used for document IDs.
func (a *Annotator) SetClock(now func() time.Time) {
	a.now = now
}

// SetNonce replaces the document ID nonce generator. A generator that
// returns "" yields plain slide-{objectId}-{epoch} IDs.
func (a *Annotator) SetNonce(nonce func() string) {
	a.nonce = nonce
}

// AnnotatePresentation annotates every slide of one presentation.
func (a *Annotator) AnnotatePresentation(ctx context.Context, presentationID string) (*domain.AnnotationReport, error) {
	reports, err := a.AnnotatePresentations(ctx, []string{presentationID})
	if err != nil {
		return nil, err
	}
	report := reports[0]
	if report.Err != nil {
		return &report, report.Err
	}
	return &report, nil
}

// AnnotatePresentations annotates presentations in order within one session.
func (a *Annotator) AnnotatePresentations(ctx context.Context, presentationIDs []string) ([]domain.AnnotationReport, error) {
	if a.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}
	if a.opener == nil {
		return nil, domain.ErrPresentationsUnavailable
	}
	if len(presentationIDs) == 0 {
		return nil, fmt.Errorf("%w: no presentation IDs", domain.ErrInvalidInput)
	}

	session, err := a.opener.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open presentation session: %w", err)
	}
	defer session.Close()

	reports := make([]domain.AnnotationReport, 0, len(presentationIDs))
	for _, id := range presentationIDs {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		reports = append(reports, a.annotate(ctx, session, id))
	}
	return reports, nil
}

// AnnotateCollection annotates every presentation in a named collection.
func (a *Annotator) AnnotateCollection(ctx context.Context, name string) ([]domain.AnnotationReport, error) {
	c, err := a.store.GetCollection(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get collection %s: %w", name, err)
	}
	logger.Info("Annotating collection %q (%d presentations)", c.Name, len(c.PresentationIDs))
	return a.AnnotatePresentations(ctx, c.PresentationIDs)
}

func (a *Annotator) annotate(ctx context.Context, pres driven.PresentationService, presentationID string) domain.AnnotationReport {
	logger.Section("Annotate " + presentationID)
	report := domain.AnnotationReport{PresentationID: presentationID}

	p, err := pres.GetPresentation(ctx, presentationID)
	if err != nil {
		logger.Error("presentation %s: %v", presentationID, err)
		report.Err = fmt.Errorf("get presentation %s: %w", presentationID, err)
		return report
	}
	logger.Info("Presentation %q has %d slides", p.Title, len(p.Slides))

	for _, slide := range p.Slides {
		if ctx.Err() != nil {
			report.Failures = append(report.Failures, domain.SlideFailure{SlideID: slide.ObjectID, Err: ctx.Err()})
			continue
		}
		rec, stage, err := a.annotateSlide(ctx, presentationID, slide)
		if err != nil {
			logger.Error("slide %s/%s (%s): %v", presentationID, slide.ObjectID, stage, err)
			report.Failures = append(report.Failures, domain.SlideFailure{
				SlideID: slide.ObjectID,
				Stage:   stage,
				Err:     err,
			})
			continue
		}
		logger.Debug("slide %s -> %s %v", slide.ObjectID, rec.Category, rec.Tags)
		report.Stored = append(report.Stored, rec)
	}
	return report
}

func (a *Annotator) annotateSlide(
	ctx context.Context, presentationID string, slide domain.RawSlide,
) (domain.StoredSlideRecord, string, error) {
	summary, err := a.Summarise(ctx, slide)
	if err != nil {
		return domain.StoredSlideRecord{}, StageSummarise, err
	}
	category, err := a.Categorise(ctx, summary)
	if err != nil {
		return domain.StoredSlideRecord{}, StageCategorise, err
	}
	tags, err := a.Tag(ctx, summary)
	if err != nil {
		return domain.StoredSlideRecord{}, StageTag, err
	}

	at := a.now()
	rec := domain.StoredSlideRecord{
		AnnotatedSlide: domain.AnnotatedSlide{
			Slide:    slide,
			Summary:  summary,
			Category: category,
			Tags:     tags,
		},
		DocumentID:     domain.NewDocumentID(slide.ObjectID, at, a.nonce()),
		PresentationID: presentationID,
		AnnotatedAt:    at,
	}
	if err := a.store.Save(ctx, rec); err != nil {
		return domain.StoredSlideRecord{}, StagePersist, fmt.Errorf("save %s: %w", rec.DocumentID, err)
	}
	return rec, "", nil
}

// Summarise describes a slide's content and purpose.
func (a *Annotator) Summarise(ctx context.Context, slide domain.RawSlide) (string, error) {
	tmpl, err := loadPrompt(a.prompts, driven.PromptSummariseSlide)
	if err != nil {
		return "", err
	}
	prompt := a.budgeter.FitPrompt(tmpl, map[string]string{"slide": slide.Payload()}, "slide")

	reply, err := a.llm.Generate(ctx, prompt, driven.GenerateOptions{})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSummarization, err)
	}
	summary := strings.TrimSpace(reply)
	if summary == "" {
		return "", fmt.Errorf("%w: empty reply", ErrSummarization)
	}
	return summary, nil
}

// Categorise assigns a summary to exactly one taxonomy label. A reply that
// is not a label verbatim is a failure.
func (a *Annotator) Categorise(ctx context.Context, summary string) (domain.Category, error) {
	tmpl, err := loadPrompt(a.prompts, driven.PromptCategoriseSlide)
	if err != nil {
		return "", err
	}
	prompt := a.budgeter.FitPrompt(tmpl, map[string]string{
		"summary":    summary,
		"categories": domain.CategoryList(),
	}, "summary")

	reply, err := a.llm.Generate(ctx, prompt, driven.GenerateOptions{})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCategorization, err)
	}
	category, err := domain.ParseCategory(reply)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCategorization, err)
	}
	return category, nil
}

// Tag extracts keywords from a summary. An empty list is valid.
func (a *Annotator) Tag(ctx context.Context, summary string) ([]string, error) {
	tmpl, err := loadPrompt(a.prompts, driven.PromptTagSlide)
	if err != nil {
		return nil, err
	}
	prompt := a.budgeter.FitPrompt(tmpl, map[string]string{"summary": summary}, "summary")

	reply, err := a.llm.Generate(ctx, prompt, driven.GenerateOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTagging, err)
	}
	return splitTags(reply), nil
}

func splitTags(reply string) []string {
	tags := []string{}
	for _, part := range strings.Split(reply, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func randomNonce() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// FailureSummary joins the failures of a set of reports into one error,
// or nil if every slide and presentation succeeded.
func FailureSummary(reports []domain.AnnotationReport) error {
	var errs []error
	for _, r := range reports {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
		for _, f := range r.Failures {
			errs = append(errs, fmt.Errorf("%s/%s: %w", r.PresentationID, f.SlideID, f.Err))
		}
	}
	return errors.Join(errs...)
}
