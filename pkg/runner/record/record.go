package record

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/dreams/pkg/dream"
	"tableflip.dev/dreams/pkg/lifecycle"
	"tableflip.dev/dreams/pkg/printers"
	"tableflip.dev/dreams/pkg/prompt"
	"tableflip.dev/dreams/pkg/runner/process"
	"tableflip.dev/dreams/pkg/store"
)

type Record struct {
	Text      string
	AudioURI  string
	NoProcess bool

	Store      *store.Store
	Controller *lifecycle.Controller
	Asker      prompt.Asker
	Out        io.Writer
}

func (n *Record) Do(ctx context.Context) error {
	if n.Store == nil || n.Controller == nil {
		return errors.New("can not record, no store")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if n.NoProcess {
		d, err := dream.NewDraft(n.Text, n.AudioURI)
		if err != nil {
			return err
		}
		if err := n.Store.Add(d); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "Saved %s\n", d.ID)
		pp := printers.PrettyPrint{Out: out}
		pp.List(d)
		return nil
	}

	sess, err := n.Controller.Capture(ctx, n.Text, n.AudioURI)
	if err != nil {
		return err
	}
	_, _ = color.New(color.Faint).Fprintf(out, "Saved %s. A few questions help fill in the details (enter skips, %s skips the rest).\n",
		sess.ID(), prompt.SkipAllCommand)
	return process.Drive(ctx, n.Controller, sess, n.Asker, out)
}
