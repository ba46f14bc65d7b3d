package mcp

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"tableflip.dev/dreams/pkg/dream"
	"tableflip.dev/dreams/pkg/enrich"
	"tableflip.dev/dreams/pkg/lifecycle"
	"tableflip.dev/dreams/pkg/store"
)

type cannedClient struct {
	reconstructErr error
}

func (c *cannedClient) GenerateFollowUpQuestions(context.Context, string) ([]string, error) {
	return []string{"Where were you?"}, nil
}

func (c *cannedClient) ReconstructNarrative(_ context.Context, raw, _ string) (enrich.Narrative, error) {
	if c.reconstructErr != nil {
		return enrich.Narrative{}, c.reconstructErr
	}
	return enrich.Narrative{
		Title:                "The Long Corridor",
		ReconstructedContent: "I walked a corridor that never ended. " + raw,
		Characters:           []string{"my sister"},
		Symbols:              []string{"doors"},
		Mood:                 dream.MoodConfusing,
		SurrealLevel:         dream.SurrealHigh,
	}, nil
}

func (c *cannedClient) GenerateImagePrompt(context.Context, string) (string, error) {
	return "a pixel corridor lined with doors", nil
}

func newService(client enrich.Client) *Service {
	return newServiceLogging(client, io.Discard)
}

func newServiceLogging(client enrich.Client, w io.Writer) *Service {
	logger := slog.New(slog.NewTextHandler(w, nil))
	s := store.New(nil, store.WithLogger(logger))
	c := lifecycle.NewController(s, enrich.NewEnricher(client, enrich.WithLogger(logger)), lifecycle.WithLogger(logger))
	return NewService(s, c)
}

func TestServiceRecordWithoutProcessing(t *testing.T) {
	ctx := context.Background()
	svc := newService(&cannedClient{})

	dto, err := svc.Record(ctx, RecordOptions{Text: "a corridor of doors"})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if dto.IsProcessed || dto.Title != dream.UntitledTitle {
		t.Fatalf("expected an unprocessed draft, got %+v", dto)
	}
	if dto.Excerpt != "a corridor of doors" || dto.DisplayDate == "" {
		t.Fatalf("unexpected projection: %+v", dto)
	}

	if _, err := svc.Record(ctx, RecordOptions{}); !errors.Is(err, dream.ErrCapture) {
		t.Fatalf("expected ErrCapture, got %v", err)
	}
}

func TestServiceRecordAndProcess(t *testing.T) {
	ctx := context.Background()
	svc := newService(&cannedClient{})

	dto, err := svc.Record(ctx, RecordOptions{Text: "a corridor of doors", Process: true})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if !dto.IsProcessed || dto.Title != "The Long Corridor" || dto.Mood != dream.MoodConfusing {
		t.Fatalf("expected processed dream, got %+v", dto)
	}
}

func TestServiceProcessFailureKeepsDraft(t *testing.T) {
	ctx := context.Background()
	svc := newService(&cannedClient{reconstructErr: errors.New("timeout")})

	dto, err := svc.Record(ctx, RecordOptions{Text: "a corridor of doors"})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := svc.Process(ctx, dto.ID); !errors.Is(err, enrich.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	got, err := svc.DreamByID(ctx, dto.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.IsProcessed {
		t.Fatal("failed processing must leave the dream unprocessed")
	}
}

func TestServiceRecordAndProcessFailureAbandonsSession(t *testing.T) {
	ctx := context.Background()
	client := &cannedClient{reconstructErr: errors.New("timeout")}
	var logs bytes.Buffer
	svc := newServiceLogging(client, &logs)

	if _, err := svc.Record(ctx, RecordOptions{Text: "a corridor of doors", Process: true}); !errors.Is(err, enrich.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if !strings.Contains(logs.String(), "dream left unprocessed") {
		t.Fatalf("expected the failed session to be abandoned, logs:\n%s", logs.String())
	}

	all, err := svc.ListDreams(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 || all[0].IsProcessed || all[0].RawContent != "a corridor of doors" {
		t.Fatalf("expected the unprocessed draft to be kept, got %+v", all)
	}

	client.reconstructErr = nil
	dto, err := svc.Process(ctx, all[0].ID)
	if err != nil {
		t.Fatalf("process after failed record: %v", err)
	}
	if !dto.IsProcessed {
		t.Fatalf("expected processed dream, got %+v", dto)
	}
}

func TestServiceListFilters(t *testing.T) {
	ctx := context.Background()
	svc := newService(&cannedClient{})

	if _, err := svc.Record(ctx, RecordOptions{Text: "sunny meadow"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	processed, err := svc.Record(ctx, RecordOptions{Text: "endless hallway", Process: true})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	all, err := svc.ListDreams(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 dreams, got %d", len(all))
	}

	confusing, err := svc.ListDreams(ctx, ListOptions{Mood: "confusing"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(confusing) != 1 || confusing[0].ID != processed.ID {
		t.Fatalf("expected only the processed dream, got %+v", confusing)
	}

	if _, err := svc.ListDreams(ctx, ListOptions{Mood: "ecstatic"}); err == nil {
		t.Fatal("expected error for unknown mood")
	}
}

func TestServiceUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newService(&cannedClient{})

	dto, err := svc.Record(ctx, RecordOptions{Text: "falling"})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	updated, err := svc.Update(ctx, dto.ID, dream.Patch{Title: dream.String("Freefall"), Mood: dream.MoodPtr(dream.MoodScary)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Freefall" || updated.Mood != dream.MoodScary || updated.RawContent != "falling" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	if err := svc.Delete(ctx, dto.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, dto.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, " "); !errors.Is(err, ErrMissingID) {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
}

func TestServiceImagePrompt(t *testing.T) {
	ctx := context.Background()
	svc := newService(&cannedClient{})
	dto, err := svc.Record(ctx, RecordOptions{Text: "doors"})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	prompt, err := svc.ImagePrompt(ctx, dto.ID)
	if err != nil || prompt != "a pixel corridor lined with doors" {
		t.Fatalf("unexpected prompt %q (%v)", prompt, err)
	}
}
