package share

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"tableflip.dev/dreams/pkg/dream"
	"tableflip.dev/dreams/pkg/printers"
	"tableflip.dev/dreams/pkg/store"
)

func journalWith(t *testing.T, raw string) (*store.Store, *dream.Dream) {
	t.Helper()
	s := store.New(nil, store.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	d, err := dream.NewDraft(raw, "")
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	if err := s.Add(d); err != nil {
		t.Fatalf("add: %v", err)
	}
	return s, d
}

func TestSharePrintsText(t *testing.T) {
	s, d := journalWith(t, "a staircase into the sea")
	var buf bytes.Buffer
	copied := ""
	sh := Share{ID: d.ID, Store: s, Out: &buf, writeClipboard: func(text string) error {
		copied = text
		return nil
	}}
	if err := sh.Do(context.Background()); err != nil {
		t.Fatalf("share: %v", err)
	}
	want := printers.ShareText(d) + "\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
	if copied != "" {
		t.Fatalf("clipboard written without --copy: %q", copied)
	}
}

func TestShareCopies(t *testing.T) {
	s, d := journalWith(t, "a staircase into the sea")
	copied := ""
	sh := Share{ID: d.ID, Copy: true, Store: s, Out: io.Discard, writeClipboard: func(text string) error {
		copied = text
		return nil
	}}
	if err := sh.Do(context.Background()); err != nil {
		t.Fatalf("share: %v", err)
	}
	if copied != printers.ShareText(d) {
		t.Fatalf("unexpected clipboard text %q", copied)
	}

	sh.writeClipboard = func(string) error { return errors.New("no clipboard utility") }
	if err := sh.Do(context.Background()); err == nil {
		t.Fatal("expected clipboard failure to be returned")
	}
}

func TestShareUnknown(t *testing.T) {
	s, _ := journalWith(t, "a staircase into the sea")
	sh := Share{ID: "missing", Store: s, Out: io.Discard}
	if err := sh.Do(context.Background()); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
