package remove

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/dreams/pkg/prompt"
	"tableflip.dev/dreams/pkg/store"
)

// ErrCancelled is returned when the dreamer declines the confirmation.
var ErrCancelled = errors.New("remove: cancelled")

// Delete removes one dream.
type Delete struct {
	ID    string
	Store *store.Store
	Out   io.Writer
}

func (n *Delete) Do(_ context.Context) error {
	if n.Store == nil {
		return errors.New("can not delete, no store")
	}
	d, err := n.Store.Get(n.ID)
	if err != nil {
		return err
	}
	if err := n.Store.Delete(n.ID); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(output(n.Out), "Deleted %q (%s)\n", d.DisplayTitle(), d.ID)
	return nil
}

// Clear removes every dream after confirmation.
type Clear struct {
	Yes   bool
	Asker prompt.Asker
	Store *store.Store
	Out   io.Writer
}

func (n *Clear) Do(_ context.Context) error {
	if n.Store == nil {
		return errors.New("can not clear, no store")
	}
	count := n.Store.Len()
	if count == 0 {
		_, _ = fmt.Fprintln(output(n.Out), "No dreams to clear.")
		return nil
	}
	if !n.Yes {
		asker := n.Asker
		if asker == nil {
			asker = prompt.Unattended{}
		}
		ok, err := asker.Confirm(fmt.Sprintf("Delete all %d dreams? This cannot be undone", count))
		if err != nil {
			return err
		}
		if !ok {
			return ErrCancelled
		}
	}
	removed := n.Store.Clear()
	_, _ = fmt.Fprintf(output(n.Out), "Cleared %d dreams.\n", removed)
	return nil
}

func output(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}
