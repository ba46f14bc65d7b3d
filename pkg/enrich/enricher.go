package enrich

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"tableflip.dev/dreams/pkg/dream"
)

// Enricher wraps a Client with the local fallback policy: question and image
// prompt failures are always absorbed, reconstruction parse failures degrade to
// a minimal narrative, and only reconstruction transport failures surface.
type Enricher struct {
	client Client
	logger *slog.Logger
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithLogger sets the logger used to report fallbacks.
func WithLogger(l *slog.Logger) Option {
	return func(e *Enricher) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEnricher builds an Enricher. A nil client behaves like an unreachable
// service.
func NewEnricher(c Client, opts ...Option) *Enricher {
	e := &Enricher{client: c, logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Questions returns at least one follow-up question for dreamText.
func (e *Enricher) Questions(ctx context.Context, dreamText string) []string {
	if e.client == nil {
		e.logger.Warn("no enrichment client, using fallback questions")
		return FallbackQuestions()
	}
	questions, err := e.client.GenerateFollowUpQuestions(ctx, dreamText)
	if err != nil {
		e.logger.Warn("follow-up questions failed, using fallback", "error", err)
		return FallbackQuestions()
	}
	cleaned := make([]string, 0, len(questions))
	for _, q := range questions {
		if q = strings.TrimSpace(q); q != "" {
			cleaned = append(cleaned, q)
		}
	}
	if len(cleaned) == 0 {
		e.logger.Warn("follow-up questions empty, using fallback")
		return FallbackQuestions()
	}
	return cleaned
}

// Reconstruct produces a narrative for the raw dream text. The returned error
// always wraps ErrTransport.
func (e *Enricher) Reconstruct(ctx context.Context, rawContent, additionalDetails string) (Narrative, error) {
	if e.client == nil {
		return Narrative{}, fmt.Errorf("%w: no enrichment client configured", ErrTransport)
	}
	n, err := e.client.ReconstructNarrative(ctx, rawContent, additionalDetails)
	if err == nil {
		return normalize(n, rawContent), nil
	}
	var perr *ParseError
	if errors.As(err, &perr) {
		e.logger.Warn("reconstruction unparseable, using minimal narrative", "error", perr.Err)
		return fallbackNarrative(perr.Raw, rawContent), nil
	}
	if !errors.Is(err, ErrTransport) {
		err = fmt.Errorf("%w: %w", ErrTransport, err)
	}
	e.logger.Error("reconstruction failed", "error", err)
	return Narrative{}, err
}

// ImagePrompt returns a short visual description of the dream.
func (e *Enricher) ImagePrompt(ctx context.Context, dreamText string) string {
	if e.client == nil {
		return FallbackImagePrompt
	}
	prompt, err := e.client.GenerateImagePrompt(ctx, dreamText)
	if err != nil || strings.TrimSpace(prompt) == "" {
		e.logger.Warn("image prompt failed, using fallback", "error", err)
		return FallbackImagePrompt
	}
	return strings.TrimSpace(prompt)
}

func fallbackNarrative(raw, rawContent string) Narrative {
	content := strings.TrimSpace(raw)
	if content == "" {
		content = rawContent
	}
	return Narrative{
		Title:                FallbackTitle,
		ReconstructedContent: content,
		Characters:           []string{},
		Symbols:              []string{},
		Mood:                 dream.DefaultMood,
		SurrealLevel:         dream.DefaultSurrealLevel,
	}
}

// normalize fills the gaps a client may leave so the result can always be
// merged into a processed dream.
func normalize(n Narrative, rawContent string) Narrative {
	if strings.TrimSpace(n.Title) == "" {
		n.Title = FallbackTitle
	}
	if strings.TrimSpace(n.ReconstructedContent) == "" {
		n.ReconstructedContent = rawContent
	}
	if n.Characters == nil {
		n.Characters = []string{}
	}
	if n.Symbols == nil {
		n.Symbols = []string{}
	}
	if !n.Mood.Valid() {
		n.Mood = dream.DefaultMood
	}
	if !n.SurrealLevel.Valid() {
		n.SurrealLevel = dream.DefaultSurrealLevel
	}
	return n
}
