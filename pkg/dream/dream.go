// Package dream defines the persisted dream record and the pure helpers that
// create, validate, and format it.
package dream

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCapture is returned when a draft has neither text nor audio.
	ErrCapture = errors.New("dream: nothing captured, need text or audio")
	// ErrInvalid is returned when a record or a merge would break an invariant.
	ErrInvalid = errors.New("dream: invalid record")
)

// UntitledTitle is the placeholder title of an unprocessed dream.
const UntitledTitle = "Untitled Dream"

// Dream is the only persisted entity.
type Dream struct {
	ID                   string       `json:"id" yaml:"id"`
	Title                string       `json:"title" yaml:"title"`
	RawContent           string       `json:"rawContent" yaml:"rawContent"`
	ReconstructedContent string       `json:"reconstructedContent" yaml:"reconstructedContent"`
	AudioURI             string       `json:"audioUri,omitempty" yaml:"audioUri,omitempty"`
	ImageURI             string       `json:"imageUri,omitempty" yaml:"imageUri,omitempty"`
	Characters           []string     `json:"characters" yaml:"characters"`
	Symbols              []string     `json:"symbols" yaml:"symbols"`
	Mood                 Mood         `json:"mood" yaml:"mood"`
	SurrealLevel         SurrealLevel `json:"surrealLevel" yaml:"surrealLevel"`
	Date                 Timestamp    `json:"date" yaml:"date"`
	IsProcessed          bool         `json:"isProcessed" yaml:"isProcessed"`
}

// NewDraft creates an unprocessed dream from captured text and an optional
// audio reference.
func NewDraft(rawContent, audioURI string) (*Dream, error) {
	audioURI = strings.TrimSpace(audioURI)
	if strings.TrimSpace(rawContent) == "" && audioURI == "" {
		return nil, ErrCapture
	}
	return &Dream{
		ID:           NewID(),
		Title:        UntitledTitle,
		RawContent:   rawContent,
		AudioURI:     audioURI,
		Characters:   []string{},
		Symbols:      []string{},
		Mood:         DefaultMood,
		SurrealLevel: DefaultSurrealLevel,
		Date:         Now(),
	}, nil
}

// Validate checks the record invariants that can be verified on a single
// record. Id uniqueness is the store's concern.
func (d *Dream) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: nil dream", ErrInvalid)
	}
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalid)
	}
	if strings.TrimSpace(d.RawContent) == "" && strings.TrimSpace(d.AudioURI) == "" {
		return fmt.Errorf("%w: %v", ErrInvalid, ErrCapture)
	}
	if d.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalid)
	}
	if !d.Mood.Valid() {
		return fmt.Errorf("%w: unknown mood %q", ErrInvalid, string(d.Mood))
	}
	if !d.SurrealLevel.Valid() {
		return fmt.Errorf("%w: unknown surreal level %q", ErrInvalid, string(d.SurrealLevel))
	}
	if d.IsProcessed && strings.TrimSpace(d.ReconstructedContent) == "" {
		return fmt.Errorf("%w: processed dream without reconstructed content", ErrInvalid)
	}
	return nil
}

// Clone returns a deep copy so callers never share slices with the store.
func (d *Dream) Clone() *Dream {
	if d == nil {
		return nil
	}
	cp := *d
	cp.Characters = cloneStrings(d.Characters)
	cp.Symbols = cloneStrings(d.Symbols)
	return &cp
}

// DisplayTitle falls back to the placeholder when the title is blank.
func (d *Dream) DisplayTitle() string {
	if t := strings.TrimSpace(d.Title); t != "" {
		return t
	}
	return UntitledTitle
}

// Body is the best available narrative: the reconstruction once processed,
// the raw capture otherwise.
func (d *Dream) Body() string {
	if d.IsProcessed && d.ReconstructedContent != "" {
		return d.ReconstructedContent
	}
	return d.RawContent
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
