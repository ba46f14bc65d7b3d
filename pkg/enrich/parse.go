package enrich

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"tableflip.dev/dreams/pkg/dream"
)

var questionMarker = regexp.MustCompile(`(?m)^\s*\d+[.)]\s*`)

// ParseQuestions splits a numbered list completion into questions. Text before
// the first number is treated as preamble. Without any numbering every
// non-blank line is a question.
func ParseQuestions(completion string) []string {
	var parts []string
	if locs := questionMarker.FindAllStringIndex(completion, -1); len(locs) > 0 {
		for i, loc := range locs {
			end := len(completion)
			if i+1 < len(locs) {
				end = locs[i+1][0]
			}
			parts = append(parts, completion[loc[1]:end])
		}
	} else {
		parts = strings.Split(completion, "\n")
	}

	questions := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Join(strings.Fields(p), " ")
		if p != "" {
			questions = append(questions, p)
		}
	}
	return questions
}

type narrativeOutput struct {
	Title                string   `json:"title"`
	ReconstructedContent string   `json:"reconstructedContent"`
	Characters           []string `json:"characters"`
	Symbols              []string `json:"symbols"`
	Mood                 string   `json:"mood"`
	SurrealLevel         string   `json:"surrealLevel"`
}

// ParseNarrative extracts the JSON narrative object from a completion. Unknown
// mood or surreal level labels fall back to the defaults; a missing narrative
// is a parse failure.
func ParseNarrative(completion string) (Narrative, error) {
	clean := strings.TrimSpace(completion)
	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start >= 0 && end > start {
		clean = clean[start : end+1]
	}

	var out narrativeOutput
	if err := json.Unmarshal([]byte(clean), &out); err != nil {
		return Narrative{}, &ParseError{Raw: completion, Err: err}
	}
	content := strings.TrimSpace(out.ReconstructedContent)
	if content == "" {
		return Narrative{}, &ParseError{Raw: completion, Err: errors.New("missing reconstructedContent")}
	}

	mood, err := dream.ParseMood(out.Mood)
	if err != nil {
		mood = dream.DefaultMood
	}
	level, err := dream.ParseSurrealLevel(out.SurrealLevel)
	if err != nil {
		level = dream.DefaultSurrealLevel
	}
	title := strings.TrimSpace(out.Title)
	if title == "" {
		title = FallbackTitle
	}
	return Narrative{
		Title:                title,
		ReconstructedContent: content,
		Characters:           compact(out.Characters),
		Symbols:              compact(out.Symbols),
		Mood:                 mood,
		SurrealLevel:         level,
	}, nil
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
