package calendar

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/dreams/pkg/printers"
	"tableflip.dev/dreams/pkg/store"
)

type Calendar struct {
	// On picks the month (or year) to show.
	On   time.Time
	Year bool

	Store *store.Store
	Out   io.Writer
}

func (n *Calendar) Do(_ context.Context) error {
	if n.Store == nil {
		return errors.New("can not show calendar, no store")
	}
	on := n.On
	if on.IsZero() {
		on = time.Now()
	}
	pp := printers.PrettyPrint{Out: n.Out}
	all := n.Store.All()
	if n.Year {
		pp.CalendarYear(on, all...)
		return nil
	}
	pp.Calendar(on, all...)
	return nil
}
