package edit

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/dreams/pkg/dream"
	"tableflip.dev/dreams/pkg/printers"
	"tableflip.dev/dreams/pkg/store"
)

var ErrNothingToChange = errors.New("edit: nothing to change, set at least one field")

type Edit struct {
	ID    string
	Patch dream.Patch

	Store *store.Store
	Out   io.Writer
}

func (n *Edit) Do(_ context.Context) error {
	if n.Store == nil {
		return errors.New("can not edit, no store")
	}
	if n.Patch.IsEmpty() {
		return ErrNothingToChange
	}
	d, err := n.Store.Update(n.ID, n.Patch)
	if err != nil {
		return err
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	pp := printers.PrettyPrint{ShowID: true, Out: out}
	pp.Dream(d)
	return nil
}
