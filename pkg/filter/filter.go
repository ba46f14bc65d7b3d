// Package filter selects and orders dreams for display.
package filter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"tableflip.dev/dreams/pkg/dream"
)

// Filter is an ephemeral query. A nil or empty field places no constraint on
// that dimension.
type Filter struct {
	Mood         *dream.Mood         `json:"mood,omitempty"`
	SurrealLevel *dream.SurrealLevel `json:"surrealLevel,omitempty"`
	SearchText   string              `json:"searchText,omitempty"`
	From         *time.Time          `json:"dateFrom,omitempty"`
	To           *time.Time          `json:"dateTo,omitempty"`
}

// IsZero reports whether no constraint is active.
func (f Filter) IsZero() bool {
	return f.Mood == nil &&
		f.SurrealLevel == nil &&
		strings.TrimSpace(f.SearchText) == "" &&
		f.From == nil &&
		f.To == nil
}

// Clone returns a copy that shares no pointers with f.
func (f Filter) Clone() Filter {
	out := Filter{SearchText: f.SearchText}
	if f.Mood != nil {
		m := *f.Mood
		out.Mood = &m
	}
	if f.SurrealLevel != nil {
		l := *f.SurrealLevel
		out.SurrealLevel = &l
	}
	if f.From != nil {
		t := *f.From
		out.From = &t
	}
	if f.To != nil {
		t := *f.To
		out.To = &t
	}
	return out
}

// Match reports whether d satisfies every active constraint.
func (f Filter) Match(d *dream.Dream) bool {
	if d == nil {
		return false
	}
	if f.Mood != nil && d.Mood != *f.Mood {
		return false
	}
	if f.SurrealLevel != nil && d.SurrealLevel != *f.SurrealLevel {
		return false
	}
	// Surrounding whitespace is ignored, so a blank search matches everything.
	if search := strings.ToLower(strings.TrimSpace(f.SearchText)); search != "" {
		if !strings.Contains(strings.ToLower(d.Title), search) &&
			!strings.Contains(strings.ToLower(d.ReconstructedContent), search) &&
			!strings.Contains(strings.ToLower(d.RawContent), search) {
			return false
		}
	}
	if f.From != nil && d.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && d.Date.After(*f.To) {
		return false
	}
	return true
}

// Apply returns the dreams matching f, most recent first. Dreams with the same
// date keep their relative input order. The input slice is not modified.
func Apply(dreams []*dream.Dream, f Filter) []*dream.Dream {
	out := make([]*dream.Dream, 0, len(dreams))
	for _, d := range dreams {
		if f.Match(d) {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	return out
}

const layoutDay = "2006-01-02"

// Parse builds a Filter from user supplied strings. Dates are either RFC 3339
// timestamps or plain days; a plain "to" day includes the whole day.
func Parse(mood, level, search, from, to string) (Filter, error) {
	var f Filter
	if strings.TrimSpace(mood) != "" {
		m, err := dream.ParseMood(mood)
		if err != nil {
			return Filter{}, err
		}
		f.Mood = &m
	}
	if strings.TrimSpace(level) != "" {
		l, err := dream.ParseSurrealLevel(level)
		if err != nil {
			return Filter{}, err
		}
		f.SurrealLevel = &l
	}
	f.SearchText = strings.TrimSpace(search)
	if strings.TrimSpace(from) != "" {
		t, _, err := parseDate(from)
		if err != nil {
			return Filter{}, fmt.Errorf("filter: from: %w", err)
		}
		f.From = &t
	}
	if strings.TrimSpace(to) != "" {
		t, day, err := parseDate(to)
		if err != nil {
			return Filter{}, fmt.Errorf("filter: to: %w", err)
		}
		if day {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		f.To = &t
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return Filter{}, fmt.Errorf("filter: date range ends before it starts")
	}
	return f, nil
}

func parseDate(v string) (time.Time, bool, error) {
	v = strings.TrimSpace(v)
	if t, err := dream.ParseTime(v); err == nil {
		return t, false, nil
	}
	t, err := time.ParseInLocation(layoutDay, v, time.Local)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}
