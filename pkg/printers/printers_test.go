package printers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"tableflip.dev/dreams/pkg/dream"
)

func init() {
	color.NoColor = true
}

func sample(t *testing.T) *dream.Dream {
	t.Helper()
	d, err := dream.NewDraft("I was flying over a city", "")
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	d.Date = dream.At(time.Date(2024, 1, 2, 12, 0, 0, 0, time.Local))
	return d
}

func TestListShowsRows(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf, ShowID: true}
	d := sample(t)
	pp.List(d)

	out := buf.String()
	for _, want := range []string{d.ID, "Tue, Jan 2, 2024", dream.UntitledTitle, "I was flying over a city", "neutral"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestListEmpty(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.List()
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("expected none, got %q", buf.String())
	}
}

func TestDreamDetail(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf, Width: 20}
	d := sample(t)
	d.IsProcessed = true
	d.Title = "Flight"
	d.ReconstructedContent = "I rose over the rooftops and the river below."
	d.Characters = []string{"a crow"}
	pp.Dream(d)

	out := buf.String()
	if !strings.Contains(out, "Flight") || !strings.Contains(out, "Characters: a crow") {
		t.Fatalf("unexpected detail:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "I rose") && len(line) > 20 {
			t.Fatalf("narrative not wrapped: %q", line)
		}
	}
}

func TestEncode(t *testing.T) {
	d := sample(t)

	var js bytes.Buffer
	if err := Encode(&js, FormatJSON, d); err != nil {
		t.Fatalf("json: %v", err)
	}
	var back dream.Dream
	if err := json.Unmarshal(js.Bytes(), &back); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if back.ID != d.ID || !back.Date.Equal(d.Date) {
		t.Fatalf("json lost fields: %+v", back)
	}

	var ys bytes.Buffer
	if err := Encode(&ys, FormatYAML, d); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	var m map[string]any
	if err := yaml.Unmarshal(ys.Bytes(), &m); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if m["id"] != d.ID || m["mood"] != "neutral" || m["rawContent"] != d.RawContent {
		t.Fatalf("unexpected yaml: %s", ys.String())
	}

	if err := Encode(&ys, FormatText, d); err == nil {
		t.Fatal("expected error for text format")
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(""); err != nil || f != FormatText {
		t.Fatalf("expected text, got %q %v", f, err)
	}
	if f, err := ParseFormat("YAML"); err != nil || f != FormatYAML {
		t.Fatalf("expected yaml, got %q %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected error")
	}
}

func TestCountByDay(t *testing.T) {
	a, b, c := sample(t), sample(t), sample(t)
	c.Date = dream.At(time.Date(2024, 2, 2, 12, 0, 0, 0, time.Local))
	count := CountByDay(time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local), a, b, c)
	if len(count) != 31 {
		t.Fatalf("expected 31 days, got %d", len(count))
	}
	if count[1] != 2 {
		t.Fatalf("expected 2 dreams on Jan 2, got %d", count[1])
	}
}

func TestCalendarPrintsMonth(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Calendar(time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local), sample(t))
	if !strings.Contains(buf.String(), "January 2024") || !strings.Contains(buf.String(), "31") {
		t.Fatalf("unexpected calendar:\n%s", buf.String())
	}
}

func TestShareText(t *testing.T) {
	d := sample(t)
	if got, want := ShareText(d), "Untitled Dream\n\nI was flying over a city\n\nShared from Dream Fixer"; got != want {
		t.Fatalf("draft share text = %q, want %q", got, want)
	}

	d.Title = "Skyline"
	d.ReconstructedContent = "I flew over a city of glass."
	d.IsProcessed = true
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Share(d)
	if got, want := buf.String(), "Skyline\n\nI flew over a city of glass.\n\nShared from Dream Fixer\n"; got != want {
		t.Fatalf("processed share text = %q, want %q", got, want)
	}
}
