package slides

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/slides/v1"

	"github.com/custodia-labs/deckforge/internal/core/domain"
	"github.com/custodia-labs/deckforge/internal/core/ports/driven"
	"github.com/custodia-labs/deckforge/internal/logger"
)

// Ensure the adapter implements the ports.
var (
	_ driven.PresentationOpener  = (*Opener)(nil)
	_ driven.PresentationSession = (*Session)(nil)
)

// Scopes requested for the credentials.
var Scopes = []string{
	slides.PresentationsScope,
	slides.DriveReadonlyScope,
}

// Opener creates Slides API sessions. All sessions share one rate limiter.
type Opener struct {
	opts    []option.ClientOption
	limiter *RateLimiter
}

// NewOpener creates an opener from a service account or authorised user
// JSON credentials file.
func NewOpener(ctx context.Context, credentialsFile string) (*Opener, error) {
	if credentialsFile == "" {
		return nil, domain.ErrPresentationsUnavailable
	}
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	return NewOpenerWithOptions(option.WithTokenSource(creds.TokenSource)), nil
}

// NewOpenerWithOptions creates an opener with explicit client options.
func NewOpenerWithOptions(opts ...option.ClientOption) *Opener {
	return &Opener{opts: opts, limiter: NewRateLimiter(DefaultRateLimit)}
}

// SetRateLimit replaces the shared rate limiter.
func (o *Opener) SetRateLimit(cfg RateLimitConfig) {
	o.limiter = NewRateLimiter(cfg)
}

// Open creates a session backed by a new Slides service.
func (o *Opener) Open(ctx context.Context) (driven.PresentationSession, error) {
	svc, err := slides.NewService(ctx, o.opts...)
	if err != nil {
		return nil, fmt.Errorf("create slides service: %w", err)
	}
	return &Session{svc: svc, limiter: o.limiter}, nil
}

// Session is a scoped handle to the Slides API.
type Session struct {
	svc     *slides.Service
	limiter *RateLimiter
	closed  atomic.Bool
}

// Close ends the session. Later calls return domain.ErrSessionClosed.
func (s *Session) Close() error {
	s.closed.Store(true)
	return nil
}

// before checks the session and waits for the rate limiter.
func (s *Session) before(ctx context.Context) error {
	if s.closed.Load() {
		return domain.ErrSessionClosed
	}
	return s.limiter.Wait(ctx)
}

// after records rate limiting and classifies the error.
func (s *Session) after(err error) error {
	if err == nil {
		return nil
	}
	if IsRateLimited(err) {
		wait := retryAfter(err)
		logger.Warn("slides API rate limited, backing off %s", wait)
		s.limiter.RecordRateLimitError(wait)
	}
	return WrapError(err)
}

// GetPresentation returns a presentation with its ordered slides.
func (s *Session) GetPresentation(ctx context.Context, id string) (*domain.Presentation, error) {
	if err := s.before(ctx); err != nil {
		return nil, err
	}
	p, err := s.svc.Presentations.Get(id).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get presentation %s: %w", id, s.after(err))
	}
	return toPresentation(p), nil
}

// CreatePresentation creates an empty presentation titled title.
func (s *Session) CreatePresentation(ctx context.Context, title string) (string, string, error) {
	if err := s.before(ctx); err != nil {
		return "", "", err
	}
	p, err := s.svc.Presentations.Create(&slides.Presentation{Title: title}).Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("create presentation: %w", s.after(err))
	}
	var first string
	if len(p.Slides) > 0 && p.Slides[0] != nil {
		first = p.Slides[0].ObjectId
	}
	logger.Debug("created presentation %s (%q)", p.PresentationId, title)
	return p.PresentationId, first, nil
}

// BatchUpdate applies requests atomically.
func (s *Session) BatchUpdate(
	ctx context.Context,
	presentationID string,
	requests []domain.PageRequest,
) (domain.BatchUpdateResponse, error) {
	if err := s.before(ctx); err != nil {
		return domain.BatchUpdateResponse{}, err
	}
	if len(requests) == 0 {
		return domain.BatchUpdateResponse{}, nil
	}
	reqs, err := toRequests(requests)
	if err != nil {
		return domain.BatchUpdateResponse{}, err
	}

	resp, err := s.svc.Presentations.BatchUpdate(presentationID, &slides.BatchUpdatePresentationRequest{
		Requests: reqs,
	}).Context(ctx).Do()
	if err != nil {
		return domain.BatchUpdateResponse{}, fmt.Errorf("batch update %s: %w", presentationID, s.after(err))
	}
	return toBatchResponse(resp, len(requests)), nil
}
