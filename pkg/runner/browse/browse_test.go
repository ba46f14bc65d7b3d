package browse

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/v2/list"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/dreams/pkg/dream"
	"tableflip.dev/dreams/pkg/store"
)

func seed(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(nil)
	for i, tc := range []struct {
		title string
		raw   string
		mood  dream.Mood
	}{
		{"Meadow", "a sunny meadow", dream.MoodHappy},
		{"Flood", "a flooded house", dream.MoodScary},
	} {
		d, err := dream.NewDraft(tc.raw, "")
		if err != nil {
			t.Fatalf("draft: %v", err)
		}
		d.Title = tc.title
		d.Mood = tc.mood
		d.Date = dream.At(time.Date(2024, time.March, 1+i, 7, 0, 0, 0, time.UTC))
		if err := s.Add(d); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	return s
}

func loaded(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(m.loadDreams()())
	return next.(Model)
}

func press(t *testing.T, m Model, key tea.KeyPressMsg) Model {
	t.Helper()
	next, _ := m.Update(key)
	return next.(Model)
}

func indexOf(items []list.Item, name string) int {
	for i, it := range items {
		if mi, ok := it.(moodItem); ok && mi.name == name {
			return i
		}
	}
	return -1
}

func stripANSI(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func TestLoadDreamsShowsEverything(t *testing.T) {
	m := loaded(t, New(context.Background(), seed(t)))
	if got := len(m.dreamList.Items()); got != 2 {
		t.Fatalf("expected 2 dreams, got %d", got)
	}
	// Most recent first.
	if d := m.currentDream(); d == nil || d.Title != "Flood" {
		t.Fatalf("expected Flood selected first, got %+v", d)
	}
}

func TestMoodPaneFilters(t *testing.T) {
	m := New(context.Background(), seed(t))
	idx := indexOf(m.moodList.Items(), dream.MoodHappy.String())
	if idx < 0 {
		t.Fatalf("happy mood not listed")
	}
	m.moodList.Select(idx)
	m = loaded(t, m)
	if got := len(m.dreamList.Items()); got != 1 {
		t.Fatalf("expected 1 happy dream, got %d", got)
	}
	if d := m.currentDream(); d == nil || d.Title != "Meadow" {
		t.Fatalf("expected Meadow, got %+v", d)
	}
}

func TestSearchMode(t *testing.T) {
	m := New(context.Background(), seed(t))
	m = press(t, m, tea.KeyPressMsg{Text: "/", Code: '/'})
	if m.mode != modeSearch {
		t.Fatalf("expected search mode, got %v", m.mode)
	}
	m.input.SetValue("flooded")
	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.mode != modeNormal {
		t.Fatalf("expected normal mode after enter, got %v", m.mode)
	}
	if m.search != "flooded" {
		t.Fatalf("expected search to be applied, got %q", m.search)
	}
	m = loaded(t, m)
	if got := len(m.dreamList.Items()); got != 1 {
		t.Fatalf("expected 1 match, got %d", got)
	}
}

func TestDoubleDDeletes(t *testing.T) {
	s := seed(t)
	m := loaded(t, New(context.Background(), s))
	d := press(t, m, tea.KeyPressMsg{Text: "d", Code: 'd'})
	if s.Len() != 2 {
		t.Fatalf("single d should not delete")
	}
	d = press(t, d, tea.KeyPressMsg{Text: "d", Code: 'd'})
	if s.Len() != 1 {
		t.Fatalf("expected dd to delete, %d left", s.Len())
	}
	if !strings.Contains(d.status, "Flood") {
		t.Fatalf("expected status to name the deleted dream, got %q", d.status)
	}
}

func TestViewRendersDetail(t *testing.T) {
	m := New(context.Background(), seed(t))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = loaded(t, next.(Model))

	view := stripANSI(m.View())
	for _, want := range []string{"Moods", "Dreams", "Flood", "a flooded house", "scary", "2 shown"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestWatchWithoutPersistenceIsQuiet(t *testing.T) {
	m := New(context.Background(), seed(t))
	if msg := m.watch(nil)(); msg != nil {
		t.Fatalf("expected no message from a memory store, got %T", msg)
	}
}
