package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"thoreinstein.com/sessionizer/pkg/config"
	"thoreinstein.com/sessionizer/pkg/discovery"
	serrors "thoreinstein.com/sessionizer/pkg/errors"
	"thoreinstein.com/sessionizer/pkg/launcher"
	"thoreinstein.com/sessionizer/pkg/paths"
	"thoreinstein.com/sessionizer/pkg/tmux"
	"thoreinstein.com/sessionizer/pkg/ui"
)

// isInteractive is swapped in tests.
var isInteractive = ui.IsInteractive

func runLaunchCommand(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if !isInteractive() {
		return serrors.New("the picker needs an interactive terminal; use 'sessionizer list' to print repositories instead")
	}

	l := launcher.New(
		newEngine(cfg),
		ui.NewFzfSelector(cfg.Picker.Command, cfg.Picker.Args),
		tmux.NewManager(cfg.Tmux.Command, cfg.Tmux.SessionPrefix, tmux.EnvFromOS(), logger),
		logger,
	)

	outcome, err := l.Run(cmd.Context())
	if err != nil {
		if serrors.Is(err, ui.ErrNoProjects) {
			return serrors.Wrap(err, "no git repositories found under the configured search_paths; run 'sessionizer doctor'")
		}
		return err
	}

	if outcome.Cancelled {
		return nil
	}

	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Session %s -> %s\n", outcome.Session, outcome.Path)
	}
	return nil
}

// newEngine builds a discovery engine for the loaded configuration.
func newEngine(cfg *config.Config) *discovery.Engine {
	return discovery.NewEngine(discovery.Options{
		SearchPaths: cfg.SearchPaths,
		Nested:      cfg.Nested,
		Concurrency: cfg.Scan.Concurrency,
	}, paths.NewNormalizer(logger), logger)
}
