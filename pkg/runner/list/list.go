package list

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/dreams/pkg/dream"
	"tableflip.dev/dreams/pkg/filter"
	"tableflip.dev/dreams/pkg/printers"
	"tableflip.dev/dreams/pkg/store"
)

type List struct {
	Filter filter.Filter
	Format printers.Format
	ShowID bool
	// Watch reprints the list whenever the journal changes on disk.
	Watch bool

	Store *store.Store
	Out   io.Writer
}

func (n *List) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not list, no store")
	}
	n.Store.SetFilter(n.Filter)
	if err := n.print(); err != nil {
		return err
	}
	if !n.Watch {
		return nil
	}

	changes, err := n.Store.Watch(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			if err := n.print(); err != nil {
				return err
			}
		}
	}
}

func (n *List) print() error {
	out := n.Out
	if out == nil {
		out = color.Output
	}
	dreams := n.Store.Query()
	if n.Format == printers.FormatJSON || n.Format == printers.FormatYAML {
		if dreams == nil {
			dreams = []*dream.Dream{}
		}
		return printers.Encode(out, n.Format, dreams)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: out}
	title := "Dreams"
	if !n.Filter.IsZero() {
		title = "Matching dreams"
	}
	pp.TitleWithCount(title, len(dreams))
	pp.List(dreams...)
	return nil
}
