package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"thoreinstein.com/sessionizer/pkg/bootstrap"
	"thoreinstein.com/sessionizer/pkg/config"
	serrors "thoreinstein.com/sessionizer/pkg/errors"
)

var configFormat string

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
	Long: `Inspect the configuration sessionizer loads.

Configuration is read from --config, or from config.yaml, config.yml,
config.toml or config.json in $HOME/.config/sessionizer. Any key can be
overridden from the environment with the SESSIONIZER_ prefix, for example
SESSIONIZER_NESTED=true or SESSIONIZER_TMUX_SESSION_PREFIX=dev-.`,
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShowCommand(cmd)
	},
}

// configPathCmd represents the config path command
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the path of the configuration file in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(cmd); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), bootstrap.ConfigFileUsed())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)

	configShowCmd.Flags().StringVar(&configFormat, "format", "yaml", "output format (yaml or toml)")
}

// configView is the printable form of config.Config. Absent search paths are
// dropped since TOML has no null.
type configView struct {
	SearchPaths []string            `yaml:"search_paths" toml:"search_paths"`
	Nested      bool                `yaml:"nested" toml:"nested"`
	Scan        config.ScanConfig   `yaml:"scan" toml:"scan"`
	Picker      config.PickerConfig `yaml:"picker" toml:"picker"`
	Tmux        config.TmuxConfig   `yaml:"tmux" toml:"tmux"`
}

func runConfigShowCommand(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	data, err := renderConfig(cfg, configFormat)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func renderConfig(cfg *config.Config, format string) ([]byte, error) {
	view := configView{
		SearchPaths: cfg.SearchPathStrings(),
		Nested:      cfg.Nested,
		Scan:        cfg.Scan,
		Picker:      cfg.Picker,
		Tmux:        cfg.Tmux,
	}

	switch strings.ToLower(format) {
	case "yaml", "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return nil, serrors.Wrap(err, "failed to encode configuration as YAML")
		}
		if err := enc.Close(); err != nil {
			return nil, serrors.Wrap(err, "failed to encode configuration as YAML")
		}
		return buf.Bytes(), nil
	case "toml":
		data, err := toml.Marshal(view)
		if err != nil {
			return nil, serrors.Wrap(err, "failed to encode configuration as TOML")
		}
		return data, nil
	default:
		return nil, serrors.Newf("unsupported format %q (want yaml or toml)", format)
	}
}
