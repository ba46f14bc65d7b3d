// Package prompt asks the dreamer for answers on the terminal.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
)

// Action is what the dreamer chose to do with a question.
type Action int

const (
	Answer Action = iota
	Skip
	SkipAll
)

// Commands typed instead of an answer.
const (
	SkipCommand    = "/skip"
	SkipAllCommand = "/done"
)

// ErrInterrupted is returned when the dreamer cancels a prompt with ^C or ^D.
var ErrInterrupted = errors.New("prompt: interrupted")

// Asker collects answers and decisions.
type Asker interface {
	// Ask poses question i of n.
	Ask(question string, i, n int) (string, Action, error)
	// Choose returns the index of the selected item.
	Choose(label string, items []string) (int, error)
	// Confirm asks a yes/no question.
	Confirm(label string) (bool, error)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Parse interprets a typed reply.
func Parse(reply string) (string, Action) {
	reply = strings.TrimSpace(reply)
	switch strings.ToLower(reply) {
	case "", SkipCommand:
		return "", Skip
	case SkipAllCommand:
		return "", SkipAll
	default:
		return reply, Answer
	}
}

// Terminal prompts with promptui.
type Terminal struct {
	In  io.Reader
	Out io.Writer
}

func (t *Terminal) stdin() io.ReadCloser {
	if t.In == nil {
		return os.Stdin
	}
	return io.NopCloser(t.In)
}

func (t *Terminal) stdout() io.WriteCloser {
	if t.Out == nil {
		return os.Stdout
	}
	return nopWriteCloser{t.Out}
}

func (t *Terminal) Ask(question string, i, n int) (string, Action, error) {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . | cyan }} ",
		Valid:   "{{ . | cyan }} ",
		Invalid: "{{ . | cyan }} ",
		Success: "{{ . | faint }} ",
	}

	p := promptui.Prompt{
		Label:     fmt.Sprintf("(%d/%d) %s", i+1, n, question),
		Templates: templates,
		Stdin:     t.stdin(),
		Stdout:    t.stdout(),
	}

	result, err := p.Run()
	if err != nil {
		return "", Skip, interrupted(err)
	}
	answer, action := Parse(result)
	return answer, action, nil
}

func (t *Terminal) Choose(label string, items []string) (int, error) {
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ . | bold }}",
		Inactive: "   {{ . }}",
		Selected: "{{ . | bold }}",
	}

	s := promptui.Select{
		HideHelp:  true,
		Label:     label,
		Items:     items,
		Templates: templates,
		Size:      len(items),
		Stdin:     t.stdin(),
		Stdout:    t.stdout(),
	}

	i, _, err := s.Run()
	if err != nil {
		return -1, interrupted(err)
	}
	return i, nil
}

func (t *Terminal) Confirm(label string) (bool, error) {
	p := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     t.stdin(),
		Stdout:    t.stdout(),
	}
	_, err := p.Run()
	if errors.Is(err, promptui.ErrAbort) {
		return false, nil
	}
	if err != nil {
		return false, interrupted(err)
	}
	return true, nil
}

// Unattended answers for a non-interactive session: every question is
// skipped, the last choice is taken and nothing is confirmed. Choices are
// listed with the least committal one last.
type Unattended struct{}

func (Unattended) Ask(string, int, int) (string, Action, error) {
	return "", SkipAll, nil
}

func (Unattended) Choose(_ string, items []string) (int, error) {
	if len(items) == 0 {
		return -1, errors.New("prompt: nothing to choose from")
	}
	return len(items) - 1, nil
}

func (Unattended) Confirm(string) (bool, error) {
	return false, nil
}

func interrupted(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return ErrInterrupted
	}
	return err
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
