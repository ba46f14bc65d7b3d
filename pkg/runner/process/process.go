package process

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/dreams/pkg/lifecycle"
	"tableflip.dev/dreams/pkg/printers"
	"tableflip.dev/dreams/pkg/prompt"
)

const (
	choiceRetry   = "Try again"
	choiceAbandon = "Keep it unprocessed"
)

type Process struct {
	ID         string
	Controller *lifecycle.Controller
	Asker      prompt.Asker
	Out        io.Writer
}

func (n *Process) Do(ctx context.Context) error {
	if n.Controller == nil {
		return errors.New("can not process, no lifecycle controller")
	}
	sess, err := n.Controller.Begin(ctx, n.ID)
	if err != nil {
		return err
	}
	return Drive(ctx, n.Controller, sess, n.Asker, n.Out)
}

// Drive walks a session to a terminal state: it asks every question, runs
// reconstruction and lets the dreamer retry or give up when it fails.
func Drive(ctx context.Context, c *lifecycle.Controller, sess *lifecycle.Session, asker prompt.Asker, out io.Writer) error {
	if asker == nil {
		asker = prompt.Unattended{}
	}
	if out == nil {
		out = color.Output
	}
	pp := printers.PrettyPrint{Out: out}
	questions := sess.Questions()

	for sess.State() == lifecycle.Answering {
		q, ok := sess.Current()
		if !ok {
			break
		}
		answer, action, err := asker.Ask(q, sess.Index(), len(questions))
		if err != nil {
			_ = c.Abandon(sess)
			return err
		}
		switch action {
		case prompt.SkipAll:
			err = c.SkipAll(ctx, sess)
		case prompt.Skip:
			err = c.Skip(ctx, sess)
		default:
			err = c.Answer(ctx, sess, answer)
		}
		if err != nil && sess.State() != lifecycle.Error {
			return err
		}
	}

	for sess.State() == lifecycle.Error {
		_, _ = color.New(color.FgRed).Fprintf(out, "Reconstruction failed: %v\n", sess.Err())
		i, err := asker.Choose("What now", []string{choiceRetry, choiceAbandon})
		if err != nil || i != 0 {
			_ = c.Abandon(sess)
			break
		}
		_ = c.Retry(ctx, sess)
	}

	switch sess.State() {
	case lifecycle.Finalized:
		pp.NewLine()
		pp.Dream(sess.Result())
		return nil
	case lifecycle.Abandoned:
		_, _ = color.New(color.Faint).Fprintf(out, "Saved %s without processing. Run `dreams process %s` later.\n", sess.ID(), sess.ID())
		if err := sess.Err(); err != nil {
			return fmt.Errorf("dream %s left unprocessed: %w", sess.ID(), err)
		}
		return nil
	default:
		return fmt.Errorf("dream %s stopped while %s", sess.ID(), sess.State())
	}
}
