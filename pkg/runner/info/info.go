package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/dreams/pkg/config"
	"tableflip.dev/dreams/pkg/dream"
	"tableflip.dev/dreams/pkg/store"
)

type Info struct {
	Config *config.Config
	Store  *store.Store
	Out    io.Writer
}

func (n *Info) Do(_ context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if n.Config == nil {
		var err error
		n.Config, err = config.Load()
		if err != nil {
			return err
		}
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "

	if override := os.Getenv(config.PathOverrideEnv); override != "" {
		tbl.AddRow(config.PathOverrideEnv, override)
	} else {
		tbl.AddRow(config.PathOverrideEnv, "not set")
	}
	source := n.Config.Source
	if source == "" {
		source = "none found, using defaults"
	}
	tbl.AddRow("Config file", source)
	tbl.AddRow("Storage", n.Config.BasePath())
	tbl.AddRow("Storage key", store.StorageKey)
	tbl.AddRow("Enrichment", n.Config.Provider)
	if n.Config.Model != "" {
		tbl.AddRow("Model", n.Config.Model)
	}
	logFile := n.Config.LogFile
	if logFile == "" {
		logFile = "stderr only"
	}
	tbl.AddRow("Log", fmt.Sprintf("%s (%s)", logFile, n.Config.LogLevel))

	_, _ = bold.Fprintln(out, "Journal")
	_, _ = fmt.Fprintln(out, tbl)

	if n.Store == nil {
		return nil
	}

	all := n.Store.All()
	processed := 0
	moods := map[dream.Mood]int{}
	for _, d := range all {
		if d.IsProcessed {
			processed++
		}
		moods[d.Mood]++
	}

	stats := uitable.New()
	stats.Separator = "  "
	stats.AddRow("Dreams", len(all))
	stats.AddRow("Processed", processed)
	stats.AddRow("Unprocessed", len(all)-processed)
	for _, m := range dream.AllMoods() {
		if moods[m] > 0 {
			stats.AddRow("  "+m.String(), moods[m])
		}
	}
	if err := n.Store.LastError(); err != nil {
		stats.AddRow("Last storage error", err.Error())
	}

	_, _ = bold.Fprintln(out, "\nDreams")
	_, _ = fmt.Fprintln(out, stats)
	return nil
}
