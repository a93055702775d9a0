package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print discovered repositories",
	Long: `Scan the configured search paths and print every git repository found,
one absolute path per line, in the order the picker would show them.

Useful for scripting and for checking the configuration without a terminal.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runListCommand(cmd)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("nested", false, "also list repositories nested inside other repositories")
}

func runListCommand(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	engine := newEngine(cfg)
	result := engine.Discover()

	out := cmd.OutOrStdout()
	for _, p := range result.Paths() {
		fmt.Fprintln(out, p)
	}

	logger.Debug("scan finished",
		"roots", len(engine.Roots()),
		"repositories", len(result.Projects),
		"scanned", result.Scanned,
		"skipped", len(result.Skipped),
		"duration", result.Duration,
	)
	return nil
}
