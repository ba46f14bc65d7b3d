package show

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/dreams/pkg/lifecycle"
	"tableflip.dev/dreams/pkg/printers"
	"tableflip.dev/dreams/pkg/store"
)

type Show struct {
	ID          string
	ImagePrompt bool
	Format      printers.Format

	Store      *store.Store
	Controller *lifecycle.Controller
	Out        io.Writer
}

func (n *Show) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not show, no store")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	d, err := n.Store.Get(n.ID)
	if err != nil {
		return err
	}

	prompt := ""
	if n.ImagePrompt && n.Controller != nil {
		if prompt, err = n.Controller.ImagePrompt(ctx, n.ID); err != nil {
			return err
		}
	}

	switch n.Format {
	case printers.FormatJSON, printers.FormatYAML:
		if !n.ImagePrompt {
			return printers.Encode(out, n.Format, d)
		}
		return printers.Encode(out, n.Format, map[string]any{"dream": d, "imagePrompt": prompt})
	}

	pp := printers.PrettyPrint{ShowID: true, Out: out}
	pp.Dream(d)
	if n.ImagePrompt {
		pp.ImagePrompt(prompt)
	}
	return nil
}
