package commands

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"tableflip.dev/dreams/pkg/config"
	"tableflip.dev/dreams/pkg/enrich"
	"tableflip.dev/dreams/pkg/lifecycle"
	"tableflip.dev/dreams/pkg/logging"
	"tableflip.dev/dreams/pkg/prompt"
	"tableflip.dev/dreams/pkg/store"
)

const closeTimeout = 10 * time.Second

// journal is everything a command needs, opened from config.
type journal struct {
	cfg        *config.Config
	logger     *slog.Logger
	store      *store.Store
	controller *lifecycle.Controller

	closeLog func() error
}

func openJournal(ctx context.Context) (*journal, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger, closeLog := logging.Setup(cfg.LogFile, level)
	slog.SetDefault(logger)

	p, err := store.Load(cfg)
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	s := store.New(p, store.WithLogger(logger))
	// Open reports its own failure and leaves an empty, usable journal.
	_ = s.Open(ctx)

	ec, err := cfg.Enrich()
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	client, err := enrich.NewClient(ec)
	if err != nil {
		logger.Warn("enrichment unavailable, using fallbacks", "provider", ec.Provider, "error", err)
		client = nil
	}
	enricher := enrich.NewEnricher(client, enrich.WithLogger(logger))

	return &journal{
		cfg:        cfg,
		logger:     logger,
		store:      s,
		controller: lifecycle.NewController(s, enricher, lifecycle.WithLogger(logger)),
		closeLog:   closeLog,
	}, nil
}

// Close waits for pending writes and reports the last storage failure.
func (j *journal) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	err := j.store.Close(ctx)
	if err == nil {
		err = j.store.LastError()
	}
	return errors.Join(err, j.closeLog())
}

// asker prompts on the terminal when both ends of it are attached.
func asker() prompt.Asker {
	if prompt.IsTerminal(os.Stdin) && prompt.IsTerminal(os.Stdout) {
		return &prompt.Terminal{}
	}
	return prompt.Unattended{}
}

// withJournal opens the journal, runs fn and always closes it.
func withJournal(ctx context.Context, fn func(j *journal) error) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	j, err := openJournal(ctx)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, j.Close())
	}()
	return fn(j)
}
