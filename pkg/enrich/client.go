// Package enrich talks to the text generation service that turns a raw dream
// into follow-up questions, a reconstructed narrative, and an image prompt.
package enrich

import (
	"context"
	"errors"

	"tableflip.dev/dreams/pkg/dream"
)

// ErrTransport marks a failure to reach the text generation service or to get
// any usable answer back from it.
var ErrTransport = errors.New("enrich: transport failure")

// ParseError is returned when the service answered but the answer could not be
// read as a structured narrative. Raw holds the unparsed completion.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return "enrich: parse response: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Client is the contract the lifecycle needs from the text generation service.
// Every call goes over the network and may fail.
type Client interface {
	GenerateFollowUpQuestions(ctx context.Context, dreamText string) ([]string, error)
	ReconstructNarrative(ctx context.Context, rawContent, additionalDetails string) (Narrative, error)
	GenerateImagePrompt(ctx context.Context, dreamText string) (string, error)
}

// Narrative is the structured result of a reconstruction.
type Narrative struct {
	Title                string             `json:"title"`
	ReconstructedContent string             `json:"reconstructedContent"`
	Characters           []string           `json:"characters"`
	Symbols              []string           `json:"symbols"`
	Mood                 dream.Mood         `json:"mood"`
	SurrealLevel         dream.SurrealLevel `json:"surrealLevel"`
}

// Patch converts the narrative into the update that finalizes a dream.
func (n Narrative) Patch() dream.Patch {
	return dream.Patch{
		Title:                dream.String(n.Title),
		ReconstructedContent: dream.String(n.ReconstructedContent),
		Characters:           dream.Strings(n.Characters),
		Symbols:              dream.Strings(n.Symbols),
		Mood:                 dream.MoodPtr(n.Mood),
		SurrealLevel:         dream.LevelPtr(n.SurrealLevel),
		IsProcessed:          dream.Bool(true),
	}
}

const (
	// FallbackTitle names a dream whose reconstruction could not be parsed.
	FallbackTitle = "Mysterious Dream"
	// FallbackImagePrompt is used whenever an image prompt cannot be generated.
	FallbackImagePrompt = "8-bit pixel art of a dreamlike landscape with surreal elements"
)

// FallbackQuestions returns the generic questions used when none could be
// generated.
func FallbackQuestions() []string {
	return []string{
		"What emotions did you feel during this dream?",
		"Were there any specific colors or visual details you remember?",
		"Did the dream remind you of anything from your waking life?",
	}
}
