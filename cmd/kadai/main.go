package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/kadai/internal/config"
	"github.com/tgienger/kadai/internal/logging"
	"github.com/tgienger/kadai/internal/store"
	"github.com/tgienger/kadai/internal/ui"
	"github.com/tgienger/kadai/internal/ui/styles"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("kadai %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger, closer, err := logging.New(*cfg)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer closer.Close()

	styles.Use(cfg.Theme)

	opts := []store.Option{store.WithLogger(logger)}
	var st *store.Store
	if cfg.Seed {
		st = store.Seeded(opts...)
	} else {
		st = store.New(opts...)
	}
	logger.Info("starting", "version", version, "subjects", len(st.Subjects()))

	var progOpts []tea.ProgramOption
	if cfg.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	app := ui.NewApp(st, logger)
	if _, err := tea.NewProgram(app, progOpts...).Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}
