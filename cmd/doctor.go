package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"thoreinstein.com/sessionizer/pkg/bootstrap"
	"thoreinstein.com/sessionizer/pkg/config"
	serrors "thoreinstein.com/sessionizer/pkg/errors"
	"thoreinstein.com/sessionizer/pkg/output"
	"thoreinstein.com/sessionizer/pkg/paths"
	"thoreinstein.com/sessionizer/pkg/tmux"
	"thoreinstein.com/sessionizer/pkg/ui"
)

// doctorCmd represents the doctor command
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration, picker and tmux",
	Long: `Verify that sessionizer can run: the configuration file loads, every search
path exists, the picker is on PATH and tmux is installed and recent enough.

Exits non-zero when any check fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDoctorCommand(cmd)
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctorCommand(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	failed := 0

	report := func(c output.Check, label, detail string) {
		if c == output.CheckFail {
			failed++
		}
		fmt.Fprintln(out, output.Status(c, label, detail))
	}

	fmt.Fprintln(out, output.Header("sessionizer doctor"))

	cfg, err := loadConfig(cmd)
	if err != nil {
		report(output.CheckFail, "config", err.Error())
		// Keep checking the external programs with their defaults.
		cfg = &config.Config{
			Picker: config.PickerConfig{Command: "fzf"},
			Tmux:   config.TmuxConfig{Command: "tmux"},
		}
	} else {
		report(output.CheckOK, "config", bootstrap.ConfigFileUsed())
		checkSearchPaths(cfg, report)
	}

	if path, err := ui.LookPath(cfg.Picker.Command); err != nil {
		report(output.CheckFail, "picker", cfg.Picker.Command+" not found in PATH")
	} else {
		report(output.CheckOK, "picker", path)
	}

	if _, err := ui.LookPath(cfg.Tmux.Command); err != nil {
		report(output.CheckFail, "tmux", cfg.Tmux.Command+" not found in PATH")
	} else {
		mgr := tmux.NewManager(cfg.Tmux.Command, cfg.Tmux.SessionPrefix, tmux.EnvFromOS(), logger)
		if v, err := mgr.CheckVersion(cmd.Context()); err != nil {
			report(output.CheckFail, "tmux", err.Error())
		} else {
			report(output.CheckOK, "tmux", "version "+v.String())
		}
	}

	if failed > 0 {
		return serrors.Newf("%d check(s) failed", failed)
	}
	return nil
}

// checkSearchPaths reports each normalized root. Missing roots are only
// warnings since the scan skips them.
func checkSearchPaths(cfg *config.Config, report func(output.Check, string, string)) {
	roots := paths.NewNormalizer(logger).Normalize(cfg.SearchPaths)
	if len(roots) == 0 {
		report(output.CheckFail, "search", "no search_paths configured")
		return
	}
	for _, root := range roots {
		info, err := os.Stat(root)
		switch {
		case err != nil:
			report(output.CheckWarn, "search", root+" does not exist")
		case !info.IsDir():
			report(output.CheckWarn, "search", root+" is not a directory")
		default:
			report(output.CheckOK, "search", root)
		}
	}
}
