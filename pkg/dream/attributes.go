package dream

import (
	"fmt"
	"strings"
)

// Mood is the emotional tone of a dream.
type Mood string

const (
	MoodHappy     Mood = "happy"
	MoodSad       Mood = "sad"
	MoodScary     Mood = "scary"
	MoodConfusing Mood = "confusing"
	MoodNeutral   Mood = "neutral"
)

// DefaultMood is assigned to new drafts and to unparseable enrichment results.
const DefaultMood = MoodNeutral

// AllMoods returns the supported moods in display order.
func AllMoods() []Mood {
	return []Mood{
		MoodHappy,
		MoodSad,
		MoodScary,
		MoodConfusing,
		MoodNeutral,
	}
}

// ParseMood converts a string to a Mood or returns an error for unknown values.
func ParseMood(raw string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(raw)))
	for _, candidate := range AllMoods() {
		if candidate == m {
			return candidate, nil
		}
	}
	return DefaultMood, fmt.Errorf("%w: unknown mood %q", ErrInvalid, raw)
}

// Valid reports whether m is one of the enumerated moods.
func (m Mood) Valid() bool {
	for _, candidate := range AllMoods() {
		if candidate == m {
			return true
		}
	}
	return false
}

func (m Mood) String() string {
	return string(m)
}

func (m Mood) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: unknown mood %q", ErrInvalid, string(m))
	}
	return []byte(m), nil
}

func (m *Mood) UnmarshalText(b []byte) error {
	parsed, err := ParseMood(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// SurrealLevel is a three point classification of how unusual a dream is.
type SurrealLevel string

const (
	SurrealLow    SurrealLevel = "low"
	SurrealMedium SurrealLevel = "medium"
	SurrealHigh   SurrealLevel = "high"
)

// DefaultSurrealLevel is assigned to new drafts and to unparseable enrichment results.
const DefaultSurrealLevel = SurrealMedium

// AllSurrealLevels returns the supported levels from least to most surreal.
func AllSurrealLevels() []SurrealLevel {
	return []SurrealLevel{
		SurrealLow,
		SurrealMedium,
		SurrealHigh,
	}
}

// ParseSurrealLevel converts a string to a SurrealLevel or returns an error for
// unknown values.
func ParseSurrealLevel(raw string) (SurrealLevel, error) {
	l := SurrealLevel(strings.ToLower(strings.TrimSpace(raw)))
	for _, candidate := range AllSurrealLevels() {
		if candidate == l {
			return candidate, nil
		}
	}
	return DefaultSurrealLevel, fmt.Errorf("%w: unknown surreal level %q", ErrInvalid, raw)
}

// Valid reports whether l is one of the enumerated levels.
func (l SurrealLevel) Valid() bool {
	for _, candidate := range AllSurrealLevels() {
		if candidate == l {
			return true
		}
	}
	return false
}

func (l SurrealLevel) String() string {
	return string(l)
}

func (l SurrealLevel) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: unknown surreal level %q", ErrInvalid, string(l))
	}
	return []byte(l), nil
}

func (l *SurrealLevel) UnmarshalText(b []byte) error {
	parsed, err := ParseSurrealLevel(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
