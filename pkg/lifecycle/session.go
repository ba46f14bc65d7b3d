package lifecycle

import (
	"strings"
	"sync"

	"tableflip.dev/dreams/pkg/dream"
)

// Session tracks one dream through questions and reconstruction. Sessions are
// independent of each other; calls on the same session are serialized so at
// most one enrichment request is in flight for it.
type Session struct {
	mu sync.Mutex

	id        string
	state     State
	questions []string
	// answers[i] is empty when question i was skipped.
	answers []string
	index   int
	err     error
	result  *dream.Dream
}

func newSession(id string) *Session {
	return &Session{id: id, state: Capturing}
}

// ID is the id of the dream being processed.
func (s *Session) ID() string {
	return s.id
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Index is the position of the question being answered.
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Questions returns the follow-up questions.
func (s *Session) Questions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.questions...)
}

// Current returns the question awaiting an answer, if any.
func (s *Session) Current() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Answering || s.index >= len(s.questions) {
		return "", false
	}
	return s.questions[s.index], true
}

// Answers returns one answer per question, empty when skipped or not yet
// reached.
func (s *Session) Answers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.answers...)
}

// Err is the reconstruction failure that put the session in Error.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Result is the finalized dream, nil until Finalized.
func (s *Session) Result() *dream.Dream {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result.Clone()
}

// Details joins the answered questions as "question: answer" pairs separated
// by a blank line. Skipped questions contribute nothing.
func (s *Session) Details() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.details()
}

func (s *Session) details() string {
	pairs := make([]string, 0, len(s.answers))
	for i, a := range s.answers {
		if a == "" || i >= len(s.questions) {
			continue
		}
		pairs = append(pairs, s.questions[i]+": "+a)
	}
	return strings.Join(pairs, "\n\n")
}
