package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/custodia-labs/deckforge/internal/core/domain"
	"github.com/custodia-labs/deckforge/internal/core/ports/driven"
	"github.com/custodia-labs/deckforge/internal/core/ports/driving"
	"github.com/custodia-labs/deckforge/internal/logger"
)

// Ensure Assembler implements the interface.
var _ driving.AssemblyService = (*Assembler)(nil)

var errNotSettled = errors.New("slide not yet visible")

// SettleConfig bounds the wait for a new slide to appear in the destination.
type SettleConfig struct {
	Attempts int
	Interval time.Duration
}

// DefaultSettleConfig returns the default settle policy.
func DefaultSettleConfig() SettleConfig {
	return SettleConfig{Attempts: domain.DefaultSettleAttempts, Interval: domain.DefaultSettleInterval}
}

// Assembler builds a presentation from an intent: outline, then for each
// section retrieve, select, transplant, settle and theme.
type Assembler struct {
	opener       driven.PresentationOpener
	outliner     *Outliner
	retriever    *Retriever
	selector     *Selector
	transplanter *Transplanter
	settle       SettleConfig
}

// NewAssembler creates an assembler.
func NewAssembler(
	opener driven.PresentationOpener,
	outliner *Outliner,
	retriever *Retriever,
	selector *Selector,
	transplanter *Transplanter,
	settle SettleConfig,
) *Assembler {
	return &Assembler{
		opener:       opener,
		outliner:     outliner,
		retriever:    retriever,
		selector:     selector,
		transplanter: transplanter,
		settle:       settle,
	}
}

// Outline generates the section plan without touching any presentation.
func (a *Assembler) Outline(ctx context.Context, intent, clientDescription string) (*domain.PresentationOutline, error) {
	if intent == "" {
		return nil, fmt.Errorf("%w: intent is required", domain.ErrInvalidInput)
	}
	return a.outliner.Generate(ctx, intent, clientDescription)
}

// Assemble runs the pipeline. Section failures are recorded in the report
// and the next section is attempted; only failure to open a session,
// generate the outline or create the presentation returns an error.
func (a *Assembler) Assemble(ctx context.Context, req domain.AssemblyRequest) (*domain.AssemblyReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if a.opener == nil {
		return nil, domain.ErrPresentationsUnavailable
	}

	logger.Section("Assemble " + req.Title)
	session, err := a.opener.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open presentation session: %w", err)
	}
	defer session.Close()

	outline, err := a.outliner.Generate(ctx, req.Intent, req.ClientDescription)
	if err != nil {
		return nil, err
	}

	presentationID, firstSlideID, err := session.CreatePresentation(ctx, req.Title)
	if err != nil {
		return nil, fmt.Errorf("create presentation: %w", err)
	}
	logger.Info("Created presentation %s", presentationID)
	if firstSlideID != "" {
		if _, err := session.BatchUpdate(ctx, presentationID, []domain.PageRequest{
			domain.DeleteObject{ObjectID: firstSlideID},
		}); err != nil {
			logger.Warn("delete initial slide %s: %v", firstSlideID, err)
		}
	}

	layout := resolveLayout(ctx, session, presentationID, req.Theme)
	if layout.err != nil {
		logger.Error("resolve layout: %v", layout.err)
	}

	report := &domain.AssemblyReport{PresentationID: presentationID, Outline: *outline}
	for _, section := range outline.Sections {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Sections = append(report.Sections, a.assembleSection(ctx, session, presentationID, req, layout, section))
	}
	return report, nil
}

// resolvedLayout is the destination layout chosen for an assembly run.
// err is reported on every themed section when the layout could not be found.
type resolvedLayout struct {
	objectID string
	err      error
}

// resolveLayout maps the theme's layout onto a layout object ID of the
// destination presentation. With a template, the template's layout is
// chosen first and then matched into the destination by name.
func resolveLayout(ctx context.Context, pres driven.PresentationService, presentationID string, theme domain.Theme) resolvedLayout {
	if theme.Layout == "" && theme.TemplatePresentationID == "" {
		return resolvedLayout{}
	}
	dst, err := pres.GetPresentation(ctx, presentationID)
	if err != nil {
		return resolvedLayout{err: fmt.Errorf("read destination layouts: %w", err)}
	}

	if theme.TemplatePresentationID == "" {
		l, ok := dst.FindLayout(theme.Layout)
		if !ok {
			return resolvedLayout{err: fmt.Errorf("%w: %q in destination", domain.ErrLayoutNotFound, theme.Layout)}
		}
		return resolvedLayout{objectID: l.ObjectID}
	}

	tmpl, err := pres.GetPresentation(ctx, theme.TemplatePresentationID)
	if err != nil {
		return resolvedLayout{err: fmt.Errorf("read template %s: %w", theme.TemplatePresentationID, err)}
	}
	if len(tmpl.Layouts) == 0 {
		return resolvedLayout{err: fmt.Errorf("%w: template %s has no layouts", domain.ErrLayoutNotFound, theme.TemplatePresentationID)}
	}
	chosen := tmpl.Layouts[0]
	if theme.Layout != "" {
		l, ok := tmpl.FindLayout(theme.Layout)
		if !ok {
			return resolvedLayout{err: fmt.Errorf("%w: %q in template %s", domain.ErrLayoutNotFound, theme.Layout, theme.TemplatePresentationID)}
		}
		chosen = l
	}
	for _, name := range []string{chosen.Name, chosen.DisplayName} {
		if l, ok := dst.FindLayout(name); ok {
			logger.Debug("template layout %s maps to %s", chosen.ObjectID, l.ObjectID)
			return resolvedLayout{objectID: l.ObjectID}
		}
	}
	return resolvedLayout{err: fmt.Errorf("%w: template layout %q has no match in destination", domain.ErrLayoutNotFound, chosen.Name)}
}

func (a *Assembler) assembleSection(
	ctx context.Context,
	pres driven.PresentationService,
	presentationID string,
	req domain.AssemblyRequest,
	layout resolvedLayout,
	section domain.OutlineSection,
) domain.SectionReport {
	rep := domain.SectionReport{Section: section}
	if section.Category == "" {
		logger.Warn("section %q is not a known category, skipping", section.Heading)
		rep.Status = domain.SectionUnknownCategory
		return rep
	}
	logger.Info("Section %s", section.Category)

	candidates, err := a.retriever.ByCategoryAndTags(ctx, section.Category, req.TagHints)
	if err != nil {
		logger.Error("retrieve %s: %v", section.Category, err)
		rep.Status = domain.SectionSelectionFailed
		rep.Err = err
		return rep
	}

	sel, err := a.selector.Select(ctx, candidates, section.Category, section.Guidance, req.Intent)
	switch {
	case errors.Is(err, ErrNoCandidates):
		logger.Info("no stored slides for %s", section.Category)
		rep.Status = domain.SectionNoCandidates
		return rep
	case err != nil:
		logger.Error("select %s: %v", section.Category, err)
		rep.Status = domain.SectionSelectionFailed
		rep.Err = err
		return rep
	}
	rep.SourcePresentationID = sel.PresentationID
	rep.SourceSlideID = sel.ObjectID

	result := a.transplanter.Transplant(ctx, pres, domain.TransplantRequest{
		SourcePresentationID:      sel.PresentationID,
		SourceSlideID:             sel.ObjectID,
		DestinationPresentationID: presentationID,
	})
	rep.Elements = result.Elements
	rep.Err = result.Err
	switch result.Status {
	case domain.TransplantSuccess:
		rep.Status = domain.SectionTransplanted
	case domain.TransplantPartial:
		rep.Status = domain.SectionPartial
	default:
		rep.Status = domain.SectionTransplantFailed
		return rep
	}
	rep.NewSlideID = result.NewSlideID

	rep.Settled = a.waitForSlide(ctx, pres, presentationID, result.NewSlideID)
	rep.ThemeErr = applyTheme(ctx, pres, presentationID, result.NewSlideID, req.Theme, layout.objectID)
	if layout.err != nil {
		rep.ThemeErr = errors.Join(layout.err, rep.ThemeErr)
	}
	if rep.ThemeErr != nil {
		logger.Error("theme slide %s: %v", result.NewSlideID, rep.ThemeErr)
	}
	return rep
}

// waitForSlide polls the destination with exponential backoff until the
// slide is visible. It reports false when the attempts run out.
func (a *Assembler) waitForSlide(ctx context.Context, pres driven.PresentationService, presentationID, slideID string) bool {
	attempts := a.settle.Attempts
	if attempts <= 0 {
		return true
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = a.settle.Interval
	b.MaxInterval = 8 * a.settle.Interval

	_, err := backoff.Retry(ctx, func() (bool, error) {
		p, err := pres.GetPresentation(ctx, presentationID)
		if isPermanent(err) {
			return false, backoff.Permanent(err)
		}
		if err != nil {
			return false, err
		}
		if _, ok := p.Slide(slideID); !ok {
			return false, errNotSettled
		}
		return true, nil
	}, backoff.WithBackOff(b), backoff.WithMaxTries(uint(attempts)))
	if err != nil {
		logger.Warn("slide %s did not settle: %v", slideID, err)
		return false
	}
	return true
}

// isPermanent reports errors that another settle attempt cannot fix.
func isPermanent(err error) bool {
	return errors.Is(err, domain.ErrSessionClosed) ||
		errors.Is(err, domain.ErrAccessDenied) ||
		errors.Is(err, domain.ErrNotFound)
}

// applyTheme sets the background then the layout of a slide. Each step is
// attempted even if the other fails. layoutID is the resolved destination
// layout, empty for none.
func applyTheme(ctx context.Context, pres driven.PresentationService, presentationID, slideID string, theme domain.Theme, layoutID string) error {
	var errs []error
	var background domain.PageRequest
	switch {
	case theme.BackgroundColor != nil:
		background = domain.UpdatePageBackground{PageID: slideID, Color: theme.BackgroundColor}
	case theme.BackgroundImageURL != "":
		background = domain.UpdatePageBackground{PageID: slideID, ImageURL: theme.BackgroundImageURL}
	}
	if background != nil {
		if _, err := pres.BatchUpdate(ctx, presentationID, []domain.PageRequest{background}); err != nil {
			errs = append(errs, fmt.Errorf("background: %w", err))
		}
	}
	if layoutID != "" {
		if _, err := pres.BatchUpdate(ctx, presentationID, []domain.PageRequest{
			domain.UpdateSlideLayout{PageID: slideID, LayoutID: layoutID},
		}); err != nil {
			errs = append(errs, fmt.Errorf("layout: %w", err))
		}
	}
	return errors.Join(errs...)
}
