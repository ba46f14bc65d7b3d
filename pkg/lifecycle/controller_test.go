package lifecycle

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/dreams/pkg/dream"
	"tableflip.dev/dreams/pkg/enrich"
	"tableflip.dev/dreams/pkg/store"
)

type fakeClient struct {
	questions    []string
	questionsErr error

	narrative      enrich.Narrative
	reconstructErr []error // consumed one per call
	calls          int
	gotRaw         string
	gotDetails     string

	prompt string
}

func (f *fakeClient) GenerateFollowUpQuestions(_ context.Context, _ string) ([]string, error) {
	return f.questions, f.questionsErr
}

func (f *fakeClient) ReconstructNarrative(_ context.Context, raw, details string) (enrich.Narrative, error) {
	f.calls++
	f.gotRaw, f.gotDetails = raw, details
	if len(f.reconstructErr) > 0 {
		err := f.reconstructErr[0]
		f.reconstructErr = f.reconstructErr[1:]
		if err != nil {
			return enrich.Narrative{}, err
		}
	}
	return f.narrative, nil
}

func (f *fakeClient) GenerateImagePrompt(_ context.Context, _ string) (string, error) {
	if f.prompt == "" {
		return "", errors.New("unavailable")
	}
	return f.prompt, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newController(fc *fakeClient) (*Controller, *store.Store) {
	s := store.New(nil, store.WithLogger(quietLogger()))
	e := enrich.NewEnricher(fc, enrich.WithLogger(quietLogger()))
	return NewController(s, e, WithLogger(quietLogger())), s
}

func flightNarrative() enrich.Narrative {
	return enrich.Narrative{
		Title:                "Flight Over the City",
		ReconstructedContent: "I drifted above the rooftops at dusk.",
		Characters:           []string{"a crow"},
		Symbols:              []string{"flight"},
		Mood:                 dream.MoodHappy,
		SurrealLevel:         dream.SurrealHigh,
	}
}

func TestCaptureRejectsEmpty(t *testing.T) {
	c, s := newController(&fakeClient{})
	if _, err := c.Capture(context.Background(), "  ", ""); !errors.Is(err, dream.ErrCapture) {
		t.Fatalf("expected ErrCapture, got %v", err)
	}
	if s.Len() != 0 || s.Draft() != nil {
		t.Fatal("empty capture must not be stored")
	}
}

func TestFullLifecycle(t *testing.T) {
	fc := &fakeClient{
		questions: []string{"Where were you?", "Who was there?", "How did it end?"},
		narrative: flightNarrative(),
	}
	c, s := newController(fc)
	ctx := context.Background()

	sess, err := c.Capture(ctx, "I was flying over a city", "")
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if sess.State() != Answering || sess.Index() != 0 {
		t.Fatalf("expected Answering(0), got %v(%d)", sess.State(), sess.Index())
	}
	stored, err := s.Get(sess.ID())
	if err != nil || stored.IsProcessed {
		t.Fatalf("expected unprocessed record committed before questions: %v %v", stored, err)
	}
	if s.Draft() != nil {
		t.Fatal("committed draft should be cleared")
	}

	if err := c.Answer(ctx, sess, "Over Paris"); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if err := c.Skip(ctx, sess); err != nil {
		t.Fatalf("skip: %v", err)
	}
	if q, ok := sess.Current(); !ok || q != "How did it end?" {
		t.Fatalf("unexpected current question %q %v", q, ok)
	}
	if err := c.Answer(ctx, sess, "I woke up falling"); err != nil {
		t.Fatalf("answer: %v", err)
	}

	if sess.State() != Finalized {
		t.Fatalf("expected Finalized, got %v", sess.State())
	}
	wantDetails := "Where were you?: Over Paris\n\nHow did it end?: I woke up falling"
	if fc.gotDetails != wantDetails {
		t.Fatalf("details mismatch:\n got %q\nwant %q", fc.gotDetails, wantDetails)
	}
	if fc.gotRaw != "I was flying over a city" {
		t.Fatalf("unexpected raw text %q", fc.gotRaw)
	}

	got, err := s.Get(sess.ID())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want := stored.Clone()
	n := flightNarrative()
	want.Title = n.Title
	want.ReconstructedContent = n.ReconstructedContent
	want.Characters = n.Characters
	want.Symbols = n.Symbols
	want.Mood = n.Mood
	want.SurrealLevel = n.SurrealLevel
	want.IsProcessed = true
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("finalized record mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, sess.Result()); diff != "" {
		t.Fatalf("session result mismatch (-want +got):\n%s", diff)
	}
}

func TestQuestionFailureUsesFallback(t *testing.T) {
	fc := &fakeClient{questionsErr: enrich.ErrTransport, narrative: flightNarrative()}
	c, _ := newController(fc)

	sess, err := c.Capture(context.Background(), "I was flying over a city", "")
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if sess.State() != Answering || sess.Index() != 0 {
		t.Fatalf("expected Answering(0), got %v(%d)", sess.State(), sess.Index())
	}
	if diff := cmp.Diff(enrich.FallbackQuestions(), sess.Questions()); diff != "" {
		t.Fatalf("expected fallback questions (-want +got):\n%s", diff)
	}
}

func TestSkipAllSendsNoDetails(t *testing.T) {
	fc := &fakeClient{questions: []string{"a?", "b?"}, narrative: flightNarrative()}
	c, _ := newController(fc)
	ctx := context.Background()

	sess, err := c.Capture(ctx, "dream", "")
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if err := c.SkipAll(ctx, sess); err != nil {
		t.Fatalf("skip all: %v", err)
	}
	if sess.State() != Finalized {
		t.Fatalf("expected Finalized, got %v", sess.State())
	}
	if fc.gotDetails != "" {
		t.Fatalf("expected no details, got %q", fc.gotDetails)
	}
}

func TestReconstructTransportFailureLeavesRecord(t *testing.T) {
	fc := &fakeClient{
		questions:      []string{"only?"},
		narrative:      flightNarrative(),
		reconstructErr: []error{errors.New("connection refused")},
	}
	c, s := newController(fc)
	ctx := context.Background()

	sess, err := c.Capture(ctx, "I was flying over a city", "")
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	before, _ := s.Get(sess.ID())

	err = c.Answer(ctx, sess, "")
	if !errors.Is(err, enrich.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if sess.State() != Error || !errors.Is(sess.Err(), enrich.ErrTransport) {
		t.Fatalf("expected Error state, got %v (%v)", sess.State(), sess.Err())
	}
	after, _ := s.Get(sess.ID())
	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("record changed by failed reconstruction (-before +after):\n%s", diff)
	}

	if err := c.Answer(ctx, sess, "late"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	if err := c.Retry(ctx, sess); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if sess.State() != Finalized {
		t.Fatalf("expected Finalized after retry, got %v", sess.State())
	}
	if got, _ := s.Get(sess.ID()); !got.IsProcessed {
		t.Fatal("expected processed after retry")
	}
}

func TestAbandonAfterError(t *testing.T) {
	fc := &fakeClient{
		questions:      []string{"only?"},
		reconstructErr: []error{enrich.ErrTransport},
	}
	c, s := newController(fc)
	ctx := context.Background()

	sess, err := c.Capture(ctx, "dream", "")
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	_ = c.SkipAll(ctx, sess)
	if err := c.Abandon(sess); err != nil {
		t.Fatalf("abandon: %v", err)
	}
	if sess.State() != Abandoned || !sess.State().Terminal() {
		t.Fatalf("expected Abandoned, got %v", sess.State())
	}
	if err := c.Retry(ctx, sess); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	got, err := s.Get(sess.ID())
	if err != nil || got.IsProcessed {
		t.Fatalf("expected record kept unprocessed, got %v (%v)", got, err)
	}
}

func TestParseFailureStillProcesses(t *testing.T) {
	fc := &fakeClient{
		questions:      []string{"q?"},
		reconstructErr: []error{&enrich.ParseError{Raw: "just some prose", Err: errors.New("no JSON")}},
	}
	c, s := newController(fc)
	ctx := context.Background()

	sess, err := c.Capture(ctx, "dream", "")
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if err := c.SkipAll(ctx, sess); err != nil {
		t.Fatalf("skip all: %v", err)
	}
	got, _ := s.Get(sess.ID())
	if !got.IsProcessed || got.Title != enrich.FallbackTitle || got.ReconstructedContent != "just some prose" {
		t.Fatalf("expected minimal fallback record, got %+v", got)
	}
	if got.Mood != dream.DefaultMood || got.SurrealLevel != dream.DefaultSurrealLevel {
		t.Fatalf("expected default enums, got %s/%s", got.Mood, got.SurrealLevel)
	}
}

func TestAudioOnlyDream(t *testing.T) {
	fc := &fakeClient{
		questions:      []string{"q?"},
		reconstructErr: []error{&enrich.ParseError{Raw: "", Err: errors.New("empty")}},
	}
	c, s := newController(fc)
	ctx := context.Background()

	sess, err := c.Capture(ctx, "", "file:///recordings/1.m4a")
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if err := c.SkipAll(ctx, sess); err != nil {
		t.Fatalf("skip all: %v", err)
	}
	got, _ := s.Get(sess.ID())
	if !got.IsProcessed || got.ReconstructedContent == "" {
		t.Fatalf("audio-only dream should still process, got %+v", got)
	}
	if got.RawContent != "" {
		t.Fatalf("raw content must stay as captured, got %q", got.RawContent)
	}
}

func TestBeginRejectsProcessed(t *testing.T) {
	fc := &fakeClient{questions: []string{"q?"}, narrative: flightNarrative()}
	c, _ := newController(fc)
	ctx := context.Background()

	sess, err := c.Capture(ctx, "dream", "")
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if err := c.SkipAll(ctx, sess); err != nil {
		t.Fatalf("skip all: %v", err)
	}
	if _, err := c.Begin(ctx, sess.ID()); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if _, err := c.Begin(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeletedDuringSessionErrors(t *testing.T) {
	fc := &fakeClient{questions: []string{"q?"}, narrative: flightNarrative()}
	c, s := newController(fc)
	ctx := context.Background()

	sess, err := c.Capture(ctx, "dream", "")
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if err := s.Delete(sess.ID()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := c.SkipAll(ctx, sess); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if sess.State() != Error {
		t.Fatalf("expected Error, got %v", sess.State())
	}
	if fc.calls != 0 {
		t.Fatal("reconstruction must not run for a vanished record")
	}
}

func TestImagePrompt(t *testing.T) {
	fc := &fakeClient{questions: []string{"q?"}, prompt: "a pixel city at night"}
	c, _ := newController(fc)
	ctx := context.Background()
	sess, err := c.Capture(ctx, "dream", "")
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	got, err := c.ImagePrompt(ctx, sess.ID())
	if err != nil || got != "a pixel city at night" {
		t.Fatalf("unexpected prompt %q (%v)", got, err)
	}

	fc.prompt = ""
	if got, _ := c.ImagePrompt(ctx, sess.ID()); got != enrich.FallbackImagePrompt {
		t.Fatalf("expected fallback prompt, got %q", got)
	}
}

func TestStateString(t *testing.T) {
	if Answering.String() != "answering" || State(99).String() != "unknown" {
		t.Fatal("unexpected state names")
	}
}
