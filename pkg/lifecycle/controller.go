// Package lifecycle drives a dream from capture through follow-up questions to
// a reconstructed, processed record.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"tableflip.dev/dreams/pkg/dream"
	"tableflip.dev/dreams/pkg/enrich"
	"tableflip.dev/dreams/pkg/store"
)

// ErrInvalidTransition is returned when a command does not apply to the
// session's current state.
var ErrInvalidTransition = errors.New("lifecycle: invalid transition")

// Controller runs sessions against a store and an enrichment service.
type Controller struct {
	store    *store.Store
	enricher *enrich.Enricher
	logger   *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewController wires a controller to its store and enricher.
func NewController(s *store.Store, e *enrich.Enricher, opts ...Option) *Controller {
	c := &Controller{store: s, enricher: e, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	if c.enricher == nil {
		c.enricher = enrich.NewEnricher(nil, enrich.WithLogger(c.logger))
	}
	return c
}

// Capture creates a draft, commits it, and begins a session for it. An empty
// capture fails with dream.ErrCapture and nothing is stored.
func (c *Controller) Capture(ctx context.Context, rawContent, audioURI string) (*Session, error) {
	d, err := dream.NewDraft(rawContent, audioURI)
	if err != nil {
		return nil, err
	}
	c.store.SetDraft(d)
	if err := c.store.Add(d); err != nil {
		c.store.ClearDraft()
		return nil, err
	}
	c.logger.Debug("dream captured", "id", d.ID)
	return c.Begin(ctx, d.ID)
}

// Begin starts a session for a stored, unprocessed dream and fetches its
// follow-up questions. Question failures never stop the session; the fallback
// questions are used instead.
func (c *Controller) Begin(ctx context.Context, id string) (*Session, error) {
	d, err := c.store.Get(id)
	if err != nil {
		return nil, err
	}
	if d.IsProcessed {
		return nil, fmt.Errorf("%w: dream %s is already processed", ErrInvalidTransition, id)
	}

	s := newSession(id)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = QuestionsPending
	questions := c.enricher.Questions(ctx, sourceText(d))
	s.questions = questions
	s.answers = make([]string, len(questions))
	s.index = 0
	s.state = Answering
	return s, nil
}

// Answer records text for the current question and advances. Blank text is a
// skip. After the last question the dream is reconstructed.
func (c *Controller) Answer(ctx context.Context, s *Session, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Answering {
		return c.invalid(s, "answer")
	}
	s.answers[s.index] = strings.TrimSpace(text)
	s.index++
	if s.index < len(s.questions) {
		return nil
	}
	return c.reconstruct(ctx, s)
}

// Skip advances past the current question without an answer.
func (c *Controller) Skip(ctx context.Context, s *Session) error {
	return c.Answer(ctx, s, "")
}

// SkipAll drops the remaining questions and reconstructs immediately.
func (c *Controller) SkipAll(ctx context.Context, s *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Answering {
		return c.invalid(s, "skip all")
	}
	s.index = len(s.questions)
	return c.reconstruct(ctx, s)
}

// Retry re-runs a failed reconstruction.
func (c *Controller) Retry(ctx context.Context, s *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Error {
		return c.invalid(s, "retry")
	}
	return c.reconstruct(ctx, s)
}

// Abandon ends the session. The record stays stored and unprocessed.
func (c *Controller) Abandon(s *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Error && s.state != Answering {
		return c.invalid(s, "abandon")
	}
	s.state = Abandoned
	c.logger.Info("dream left unprocessed", "id", s.id)
	return nil
}

// ImagePrompt describes a stored dream for an illustration. Generation
// failures fall back to a generic description.
func (c *Controller) ImagePrompt(ctx context.Context, id string) (string, error) {
	d, err := c.store.Get(id)
	if err != nil {
		return "", err
	}
	return c.enricher.ImagePrompt(ctx, d.Body()), nil
}

// reconstruct must be called with s.mu held.
func (c *Controller) reconstruct(ctx context.Context, s *Session) error {
	s.state = Reconstructing
	s.err = nil

	d, err := c.store.Get(s.id)
	if err != nil {
		return c.fail(s, err)
	}
	n, err := c.enricher.Reconstruct(ctx, sourceText(d), s.details())
	if err != nil {
		return c.fail(s, err)
	}
	updated, err := c.store.Update(s.id, n.Patch())
	if err != nil {
		return c.fail(s, err)
	}
	s.result = updated
	s.state = Finalized
	c.logger.Info("dream processed", "id", s.id, "title", updated.Title)
	return nil
}

func (c *Controller) fail(s *Session, err error) error {
	s.state = Error
	s.err = err
	c.logger.Warn("reconstruction failed", "id", s.id, "error", err)
	return err
}

func (c *Controller) invalid(s *Session, cmd string) error {
	return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, cmd, s.state)
}

// sourceText is the text sent for enrichment. Audio-only dreams are described
// by their recording reference.
func sourceText(d *dream.Dream) string {
	if strings.TrimSpace(d.RawContent) != "" {
		return d.RawContent
	}
	return "Audio recording: " + d.AudioURI
}
