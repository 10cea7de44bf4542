package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alexanderramin/worktimer/internal/cli"
	"github.com/alexanderramin/worktimer/internal/config"
	"github.com/alexanderramin/worktimer/internal/db"
	"github.com/alexanderramin/worktimer/internal/eventlog"
	"github.com/alexanderramin/worktimer/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := eventlog.NewStore(cfg.Dir)
	if err != nil {
		return err
	}

	// Structured use-case logging is opt-in.
	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogEvents || cfg.LogFile != "" {
		var w io.Writer = os.Stderr
		if cfg.LogFile != "" {
			f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return fmt.Errorf("opening log file: %w", err)
			}
			defer f.Close()
			w = f
		}
		observer = service.NewLogUseCaseObserver(w)
	}

	// The index only caches totals derived from the day logs, so it is
	// opened on demand and a broken one never blocks the timer.
	history, closeIndex := cli.OpenHistoryIndex(store, filepath.Join(cfg.Dir, db.IndexFileName), observer)
	defer closeIndex()

	app := &cli.App{
		Store:       store,
		History:     history,
		Observer:    observer,
		Location:    cfg.Location,
		DailyTarget: cfg.DailyTarget,
	}

	// Detect interactive terminal for the prompt hint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
