package dream

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewDraftDefaults(t *testing.T) {
	d, err := NewDraft("I was flying over a city", "")
	if err != nil {
		t.Fatalf("new draft: %v", err)
	}
	if d.IsProcessed {
		t.Fatalf("expected unprocessed draft")
	}
	if d.Mood != MoodNeutral {
		t.Fatalf("expected neutral mood, got %q", d.Mood)
	}
	if d.SurrealLevel != SurrealMedium {
		t.Fatalf("expected medium surreal level, got %q", d.SurrealLevel)
	}
	if d.Title != UntitledTitle {
		t.Fatalf("expected placeholder title, got %q", d.Title)
	}
	if d.ID == "" {
		t.Fatalf("expected generated id")
	}
	if len(d.Characters) != 0 || len(d.Symbols) != 0 {
		t.Fatalf("expected empty characters and symbols")
	}
	if d.ReconstructedContent != "" {
		t.Fatalf("expected empty reconstruction")
	}
	if d.Date.IsZero() {
		t.Fatalf("expected creation date")
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("draft should be valid: %v", err)
	}
}

func TestNewDraftAudioOnly(t *testing.T) {
	d, err := NewDraft("   ", "file:///recordings/1.m4a")
	if err != nil {
		t.Fatalf("new draft: %v", err)
	}
	if d.AudioURI != "file:///recordings/1.m4a" {
		t.Fatalf("unexpected audio uri %q", d.AudioURI)
	}
}

func TestNewDraftRequiresSubstance(t *testing.T) {
	for _, raw := range []string{"", "  ", "\n\t"} {
		if _, err := NewDraft(raw, ""); !errors.Is(err, ErrCapture) {
			t.Fatalf("NewDraft(%q) expected ErrCapture, got %v", raw, err)
		}
	}
}

func TestNewDraftUniqueIDs(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		d, err := NewDraft("dream", "")
		if err != nil {
			t.Fatalf("new draft: %v", err)
		}
		if _, dup := seen[d.ID]; dup {
			t.Fatalf("duplicate id %s after %d drafts", d.ID, i)
		}
		seen[d.ID] = struct{}{}
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name    string
		content string
		max     int
		want    string
	}{
		{"short", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"truncated", "hello world", 5, "hello..."},
		{"trailing space trimmed", "hello world", 6, "hello..."},
		{"runes", "héllo wörld", 4, "héll..."},
		{"empty", "", 3, ""},
		{"default length", strings.Repeat("a", 120), 0, strings.Repeat("a", 100) + "..."},
		{"trailing dots folded", "Then I woke up... and the sea was gone", 15, "Then I woke up..."},
		{"ellipsis input is cut", "A long dream about the sea...", 10, "A long dre..."},
		{"ellipsis input longer than max", "Then I woke up...", 12, "Then I woke..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Excerpt(tt.content, tt.max); got != tt.want {
				t.Fatalf("Excerpt(%q, %d) = %q, want %q", tt.content, tt.max, got, tt.want)
			}
		})
	}
}

func TestExcerptIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"short",
		"I was flying over a city and then the city turned into the sea",
		"word   with   gaps   everywhere   in   it",
		"ünïcödé dreams of ëlectric shëep",
		"Then I woke up... and the sea was gone.",
		"dots. . . and more dots...",
	}
	for _, in := range inputs {
		for n := 1; n < 20; n++ {
			once := Excerpt(in, n)
			if twice := Excerpt(once, n); twice != once {
				t.Fatalf("Excerpt not idempotent for %q, n=%d: %q then %q", in, n, once, twice)
			}
			if body := strings.TrimSuffix(once, "..."); once != in && len([]rune(body)) > n {
				t.Fatalf("Excerpt(%q, %d) kept %d runes", in, n, len([]rune(body)))
			}
		}
	}
}

func TestFormatForDisplay(t *testing.T) {
	if got := FormatForDisplay(time.Time{}); got != "" {
		t.Fatalf("expected empty string for zero time, got %q", got)
	}
	when := time.Date(2024, time.January, 2, 12, 0, 0, 0, time.Local)
	if got := FormatForDisplay(when); got != "Tue, Jan 2, 2024" {
		t.Fatalf("unexpected display format %q", got)
	}
}

func TestParseMood(t *testing.T) {
	m, err := ParseMood(" Happy ")
	if err != nil || m != MoodHappy {
		t.Fatalf("expected happy, got %q (%v)", m, err)
	}
	if _, err := ParseMood("joyful"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if _, err := ParseSurrealLevel("extreme"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestDreamJSONRejectsUnknownMood(t *testing.T) {
	raw := `{"id":"a","title":"t","rawContent":"x","reconstructedContent":"","characters":[],"symbols":[],"mood":"joyful","surrealLevel":"low","date":"2024-01-02T00:00:00.000Z","isProcessed":false}`
	var d Dream
	if err := json.Unmarshal([]byte(raw), &d); err == nil {
		t.Fatalf("expected error for unknown mood")
	}
}

func TestDreamJSONRoundTrip(t *testing.T) {
	d, err := NewDraft("flying", "file:///a.m4a")
	if err != nil {
		t.Fatalf("new draft: %v", err)
	}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"surrealLevel":"medium"`) {
		t.Fatalf("unexpected encoding %s", b)
	}
	var got Dream
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Date != d.Date {
		t.Fatalf("date changed across round trip: %v vs %v", got.Date, d.Date)
	}
	if got.ID != d.ID || got.AudioURI != d.AudioURI || got.Mood != d.Mood {
		t.Fatalf("fields changed across round trip: %+v vs %+v", got, d)
	}
}

func TestPatchApplyChangesOnlyNamedFields(t *testing.T) {
	d, err := NewDraft("I was flying over a city", "")
	if err != nil {
		t.Fatalf("new draft: %v", err)
	}
	p := Patch{
		IsProcessed:          Bool(true),
		ReconstructedContent: String("A long flight above glowing towers."),
	}
	got, err := p.Apply(d)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !got.IsProcessed || got.ReconstructedContent != "A long flight above glowing towers." {
		t.Fatalf("patch not applied: %+v", got)
	}
	if got.RawContent != d.RawContent || got.Date != d.Date || got.ID != d.ID || got.Title != d.Title {
		t.Fatalf("unrelated fields changed: %+v", got)
	}
	if d.IsProcessed {
		t.Fatalf("original must not be modified")
	}
}

func TestPatchApplyRejectsBrokenInvariant(t *testing.T) {
	d, err := NewDraft("dream", "")
	if err != nil {
		t.Fatalf("new draft: %v", err)
	}
	if _, err := (Patch{IsProcessed: Bool(true)}).Apply(d); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for processed without content, got %v", err)
	}
	if _, err := (Patch{Mood: MoodPtr("joyful")}).Apply(d); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for unknown mood, got %v", err)
	}
}

func TestDecodePatchRejectsUnknownFields(t *testing.T) {
	for _, raw := range []string{
		`{"rawContent":"rewritten"}`,
		`{"id":"other"}`,
		`{"date":"2024-01-01T00:00:00.000Z"}`,
		`{"colour":"blue"}`,
	} {
		if _, err := DecodePatch([]byte(raw)); !errors.Is(err, ErrInvalid) {
			t.Fatalf("DecodePatch(%s) expected ErrInvalid, got %v", raw, err)
		}
	}
	p, err := DecodePatch([]byte(`{"title":"Sky","mood":"happy"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Title == nil || *p.Title != "Sky" || p.Mood == nil || *p.Mood != MoodHappy {
		t.Fatalf("unexpected patch %+v", p)
	}
}
