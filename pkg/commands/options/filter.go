package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/dreams/pkg/filter"
	"tableflip.dev/dreams/pkg/timeutil"
)

// FilterOptions
type FilterOptions struct {
	Mood    string
	Surreal string
	Search  string
	From    string
	To      string
	Since   string
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Mood, "mood", "m", "",
		"Only dreams with this mood: happy, sad, scary, confusing or neutral.")
	cmd.Flags().StringVar(&o.Surreal, "surreal", "",
		"Only dreams with this surreal level: low, medium or high.")
	cmd.Flags().StringVarP(&o.Search, "search", "s", "",
		"Only dreams whose title or content contains this text.")
	cmd.Flags().StringVar(&o.From, "from", "",
		`Only dreams on or after this date, example: --from="2024-01-31".`)
	cmd.Flags().StringVar(&o.To, "to", "",
		`Only dreams on or before this date, example: --to="2024-02-28".`)
	cmd.Flags().StringVar(&o.Since, "since", "",
		`Only dreams in this look-back window, example: --since=2w.`)
}

// Filter builds the query. --since fills in --from when --from is unset.
func (o *FilterOptions) Filter(now time.Time) (filter.Filter, error) {
	f, err := filter.Parse(o.Mood, o.Surreal, o.Search, o.From, o.To)
	if err != nil {
		return filter.Filter{}, err
	}
	window, _, err := timeutil.ParseWindow(o.Since)
	if err != nil {
		return filter.Filter{}, err
	}
	if window > 0 && f.From == nil {
		from := timeutil.Since(now, window)
		f.From = &from
	}
	return f, nil
}
