package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X thoreinstein.com/sessionizer/cmd.version=...".
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "sessionizer %s (commit %s, built %s)\n", GetVersion(), commit, buildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// GetVersion returns the version string embedded at build time.
func GetVersion() string {
	return version
}
