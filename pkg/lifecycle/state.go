package lifecycle

// State is a step of the processing of one dream.
type State int

const (
	// Capturing is the state before the draft is committed.
	Capturing State = iota
	// QuestionsPending waits on follow-up questions.
	QuestionsPending
	// Answering walks through the questions; see Session.Index.
	Answering
	// Reconstructing waits on the narrative.
	Reconstructing
	// Finalized means the record was updated and marked processed.
	Finalized
	// Error follows a failed reconstruction. Retry or Abandon.
	Error
	// Abandoned ends a session without processing the record.
	Abandoned
)

func (s State) String() string {
	switch s {
	case Capturing:
		return "capturing"
	case QuestionsPending:
		return "questions-pending"
	case Answering:
		return "answering"
	case Reconstructing:
		return "reconstructing"
	case Finalized:
		return "finalized"
	case Error:
		return "error"
	case Abandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == Finalized || s == Abandoned
}
