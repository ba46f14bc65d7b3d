package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/dreams/pkg/dream"
)

// EditOptions
type EditOptions struct {
	Title   string
	Content string
	Mood    string
	Surreal string
}

func AddEditArgs(cmd *cobra.Command, o *EditOptions) {
	cmd.Flags().StringVar(&o.Title, "title", "",
		"New title.")
	cmd.Flags().StringVar(&o.Content, "content", "",
		"New reconstructed narrative.")
	cmd.Flags().StringVar(&o.Mood, "mood", "",
		"New mood: happy, sad, scary, confusing or neutral.")
	cmd.Flags().StringVar(&o.Surreal, "surreal", "",
		"New surreal level: low, medium or high.")
}

// Patch includes only the flags that were set on cmd.
func (o *EditOptions) Patch(cmd *cobra.Command) (dream.Patch, error) {
	p := dream.Patch{}
	flags := cmd.Flags()
	if flags.Changed("title") {
		p.Title = dream.String(o.Title)
	}
	if flags.Changed("content") {
		p.ReconstructedContent = dream.String(o.Content)
	}
	if flags.Changed("mood") {
		m, err := dream.ParseMood(o.Mood)
		if err != nil {
			return dream.Patch{}, err
		}
		p.Mood = &m
	}
	if flags.Changed("surreal") {
		l, err := dream.ParseSurrealLevel(o.Surreal)
		if err != nil {
			return dream.Patch{}, err
		}
		p.SurrealLevel = &l
	}
	return p, nil
}
