package dream

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Patch is a typed partial update. Nil fields are left untouched. Id, raw
// content and date are not part of the patchable set.
type Patch struct {
	Title                *string       `json:"title,omitempty"`
	ReconstructedContent *string       `json:"reconstructedContent,omitempty"`
	AudioURI             *string       `json:"audioUri,omitempty"`
	ImageURI             *string       `json:"imageUri,omitempty"`
	Characters           *[]string     `json:"characters,omitempty"`
	Symbols              *[]string     `json:"symbols,omitempty"`
	Mood                 *Mood         `json:"mood,omitempty"`
	SurrealLevel         *SurrealLevel `json:"surrealLevel,omitempty"`
	IsProcessed          *bool         `json:"isProcessed,omitempty"`
}

// DecodePatch parses a JSON patch, rejecting fields outside the patchable set.
func DecodePatch(data []byte) (Patch, error) {
	var p Patch
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return Patch{}, fmt.Errorf("%w: patch: %v", ErrInvalid, err)
	}
	return p, nil
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil &&
		p.ReconstructedContent == nil &&
		p.AudioURI == nil &&
		p.ImageURI == nil &&
		p.Characters == nil &&
		p.Symbols == nil &&
		p.Mood == nil &&
		p.SurrealLevel == nil &&
		p.IsProcessed == nil
}

// Apply returns a copy of d with the patch merged in. The original is never
// modified, and the merged record must still satisfy Validate.
func (p Patch) Apply(d *Dream) (*Dream, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: nil dream", ErrInvalid)
	}
	out := d.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.ReconstructedContent != nil {
		out.ReconstructedContent = *p.ReconstructedContent
	}
	if p.AudioURI != nil {
		out.AudioURI = *p.AudioURI
	}
	if p.ImageURI != nil {
		out.ImageURI = *p.ImageURI
	}
	if p.Characters != nil {
		out.Characters = cloneStrings(*p.Characters)
	}
	if p.Symbols != nil {
		out.Symbols = cloneStrings(*p.Symbols)
	}
	if p.Mood != nil {
		out.Mood = *p.Mood
	}
	if p.SurrealLevel != nil {
		out.SurrealLevel = *p.SurrealLevel
	}
	if p.IsProcessed != nil {
		out.IsProcessed = *p.IsProcessed
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// String, Strings, MoodPtr, LevelPtr and Bool build patch fields inline.
func String(v string) *string { return &v }

func Strings(v []string) *[]string {
	cp := cloneStrings(v)
	return &cp
}

func MoodPtr(v Mood) *Mood { return &v }

func LevelPtr(v SurrealLevel) *SurrealLevel { return &v }

func Bool(v bool) *bool { return &v }
