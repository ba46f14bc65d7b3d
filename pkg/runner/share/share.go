package share

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"

	"tableflip.dev/dreams/pkg/printers"
	"tableflip.dev/dreams/pkg/store"
)

type Share struct {
	ID string
	// Copy also places the text on the system clipboard.
	Copy bool

	Store *store.Store
	Out   io.Writer

	// writeClipboard defaults to clipboard.WriteAll.
	writeClipboard func(string) error
}

func (n *Share) Do(_ context.Context) error {
	if n.Store == nil {
		return errors.New("can not share, no store")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	d, err := n.Store.Get(n.ID)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{Out: out}
	pp.Share(d)

	if !n.Copy {
		return nil
	}
	write := n.writeClipboard
	if write == nil {
		write = clipboard.WriteAll
	}
	if err := write(printers.ShareText(d)); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
