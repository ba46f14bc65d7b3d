// Package mcp provides the Model Context Protocol server integration for dreams.
package mcp

import (
	"context"
	"errors"
	"strings"

	"tableflip.dev/dreams/pkg/dream"
	"tableflip.dev/dreams/pkg/filter"
	"tableflip.dev/dreams/pkg/lifecycle"
	"tableflip.dev/dreams/pkg/store"
)

// Service coordinates store and lifecycle operations shared by the MCP server.
type Service struct {
	Store      *store.Store
	Controller *lifecycle.Controller
}

// ErrMissingID is returned when a tool call names no dream.
var ErrMissingID = errors.New("dream id is required")

// ListOptions carries the raw filter arguments of a list call.
type ListOptions struct {
	Mood         string
	SurrealLevel string
	Search       string
	From         string
	To           string
}

// RecordOptions captures a new dream.
type RecordOptions struct {
	Text     string
	AudioURI string
	// Process runs reconstruction right away with every question skipped.
	Process bool
}

// DreamDTO is a transport-friendly projection of a dream.
type DreamDTO struct {
	dream.Dream
	DisplayDate string `json:"displayDate"`
	Excerpt     string `json:"excerpt"`
}

// NewService builds a service over a store and controller.
func NewService(s *store.Store, c *lifecycle.Controller) *Service {
	return &Service{Store: s, Controller: c}
}

func toDTO(d *dream.Dream) DreamDTO {
	return DreamDTO{
		Dream:       *d,
		DisplayDate: dream.FormatForDisplay(d.Date.Time),
		Excerpt:     dream.Excerpt(d.Body(), dream.DefaultExcerptLength),
	}
}

func toDTOs(dreams []*dream.Dream) []DreamDTO {
	out := make([]DreamDTO, 0, len(dreams))
	for _, d := range dreams {
		out = append(out, toDTO(d))
	}
	return out
}

// ListDreams returns dreams matching opts, most recent first.
func (s *Service) ListDreams(_ context.Context, opts ListOptions) ([]DreamDTO, error) {
	if s.Store == nil {
		return nil, errors.New("store is not configured")
	}
	f, err := filter.Parse(opts.Mood, opts.SurrealLevel, opts.Search, opts.From, opts.To)
	if err != nil {
		return nil, err
	}
	return toDTOs(filter.Apply(s.Store.All(), f)), nil
}

// DreamByID fetches one dream.
func (s *Service) DreamByID(_ context.Context, id string) (*DreamDTO, error) {
	if s.Store == nil {
		return nil, errors.New("store is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrMissingID
	}
	d, err := s.Store.Get(id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(d)
	return &dto, nil
}

// Record stores a new dream and optionally processes it.
func (s *Service) Record(ctx context.Context, opts RecordOptions) (*DreamDTO, error) {
	if s.Store == nil || s.Controller == nil {
		return nil, errors.New("store is not configured")
	}
	if !opts.Process {
		d, err := dream.NewDraft(opts.Text, opts.AudioURI)
		if err != nil {
			return nil, err
		}
		if err := s.Store.Add(d); err != nil {
			return nil, err
		}
		return s.DreamByID(ctx, d.ID)
	}

	sess, err := s.Controller.Capture(ctx, opts.Text, opts.AudioURI)
	if err != nil {
		return nil, err
	}
	if err := s.Controller.SkipAll(ctx, sess); err != nil {
		_ = s.Controller.Abandon(sess)
		return nil, err
	}
	return s.DreamByID(ctx, sess.ID())
}

// Update merges a patch into a dream.
func (s *Service) Update(_ context.Context, id string, p dream.Patch) (*DreamDTO, error) {
	if s.Store == nil {
		return nil, errors.New("store is not configured")
	}
	if strings.TrimSpace(id) == "" {
		return nil, ErrMissingID
	}
	d, err := s.Store.Update(id, p)
	if err != nil {
		return nil, err
	}
	dto := toDTO(d)
	return &dto, nil
}

// Delete removes a dream.
func (s *Service) Delete(_ context.Context, id string) error {
	if s.Store == nil {
		return errors.New("store is not configured")
	}
	if strings.TrimSpace(id) == "" {
		return ErrMissingID
	}
	return s.Store.Delete(id)
}

// Process reconstructs an unprocessed dream without follow-up answers.
func (s *Service) Process(ctx context.Context, id string) (*DreamDTO, error) {
	if s.Controller == nil {
		return nil, errors.New("lifecycle is not configured")
	}
	sess, err := s.Controller.Begin(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Controller.SkipAll(ctx, sess); err != nil {
		_ = s.Controller.Abandon(sess)
		return nil, err
	}
	return s.DreamByID(ctx, id)
}

// ImagePrompt describes a dream for an illustration.
func (s *Service) ImagePrompt(ctx context.Context, id string) (string, error) {
	if s.Controller == nil {
		return "", errors.New("lifecycle is not configured")
	}
	if strings.TrimSpace(id) == "" {
		return "", ErrMissingID
	}
	return s.Controller.ImagePrompt(ctx, id)
}
