package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"thoreinstein.com/sessionizer/pkg/bootstrap"
	"thoreinstein.com/sessionizer/pkg/config"
	serrors "thoreinstein.com/sessionizer/pkg/errors"
	"thoreinstein.com/sessionizer/pkg/output"
)

var cfgFile string
var verbose bool
var noColor bool
var logger = newLogger(os.Stderr, false)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sessionizer",
	Short: "Sessionizer - jump to a git repository in tmux",
	Long: `Sessionizer scans the configured search paths for git repositories, lets you
pick one with fzf and opens a tmux session rooted in it.

A session is named after the repository's directory. If tmux is not running a new
server is started attached to the session; otherwise the session is created when
missing and the client is switched to it.`,
	Args: cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(cmd.ErrOrStderr(), verbose)
		output.SetNoColor(noColor || output.ColorDisabled(os.Stdout))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLaunchCommand(cmd)
	},
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Pre-parse global flags so errors raised before cobra runs are logged at
	// the requested level.
	flags := bootstrap.PreParseGlobalFlags(os.Args)
	logger = newLogger(os.Stderr, flags.Verbose)
	slog.SetDefault(logger)
	output.SetNoColor(flags.NoColor || output.ColorDisabled(os.Stderr))

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, output.StyleError.Render("Error:"), serrors.FormatUserError(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "C", "", "config file (default is $HOME/.config/sessionizer/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.Flags().Bool("nested", false, "also offer repositories nested inside other repositories")
}

// newLogger returns a text logger at warn level, or debug when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig reads the configuration selected by --config and applies a
// --nested flag on cmd when it was given explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := bootstrap.InitConfig(cfgFile)
	if err != nil {
		return nil, err
	}

	nested, changed, err := changedBool(cmd.Flags(), "nested")
	if err != nil {
		return nil, err
	}
	if changed {
		// Copy so a cached config is not mutated between commands.
		overridden := *cfg
		overridden.Nested = nested
		cfg = &overridden
	}

	return cfg, nil
}

// changedBool returns the value of a bool flag and whether it was set on the
// command line. Unknown flags report unchanged.
func changedBool(flags *pflag.FlagSet, name string) (bool, bool, error) {
	f := flags.Lookup(name)
	if f == nil || !f.Changed {
		return false, false, nil
	}
	v, err := flags.GetBool(name)
	if err != nil {
		return false, false, serrors.Wrapf(err, "invalid --%s flag", name)
	}
	return v, true, nil
}

// resetConfig clears the cached configuration.
// This is primarily used in tests to ensure each test starts with a fresh config.
func resetConfig() {
	bootstrap.Reset()
	viper.Reset()
}
