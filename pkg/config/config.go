package config

import (
	"runtime"

	"github.com/spf13/viper"

	serrors "thoreinstein.com/sessionizer/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	SearchPaths []*string    `mapstructure:"search_paths" yaml:"search_paths" toml:"search_paths"` // Roots to scan; null entries are ignored
	Nested      bool         `mapstructure:"nested" yaml:"nested" toml:"nested"`                   // Also report repositories inside repositories
	Scan        ScanConfig   `mapstructure:"scan" yaml:"scan" toml:"scan"`
	Picker      PickerConfig `mapstructure:"picker" yaml:"picker" toml:"picker"`
	Tmux        TmuxConfig   `mapstructure:"tmux" yaml:"tmux" toml:"tmux"`
}

// ScanConfig holds repository scan tuning
type ScanConfig struct {
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency" toml:"concurrency"` // Max simultaneous directory reads
}

// PickerConfig holds the fuzzy finder invocation
type PickerConfig struct {
	Command string   `mapstructure:"command" yaml:"command" toml:"command"` // Default: fzf
	Args    []string `mapstructure:"args" yaml:"args" toml:"args"`
}

// TmuxConfig holds Tmux session configuration
type TmuxConfig struct {
	Command       string `mapstructure:"command" yaml:"command" toml:"command"` // Default: tmux
	SessionPrefix string `mapstructure:"session_prefix" yaml:"session_prefix" toml:"session_prefix"`
}

// Load loads the configuration from file and environment variables
func Load() (*Config, error) {
	config := &Config{}

	// Set defaults
	setDefaults()

	// Unmarshal the config
	if err := viper.Unmarshal(config); err != nil {
		return nil, serrors.NewConfigErrorWithCause("", "failed to unmarshal config", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration and returns any validation errors.
func (c *Config) Validate() error {
	if c.Scan.Concurrency < 1 {
		return serrors.NewConfigError("scan.concurrency", "must be at least 1")
	}
	if c.Picker.Command == "" {
		return serrors.NewConfigError("picker.command", "must not be empty")
	}
	if c.Tmux.Command == "" {
		return serrors.NewConfigError("tmux.command", "must not be empty")
	}
	return nil
}

// SearchPathStrings returns the configured search paths with absent entries
// dropped, as written in the config file.
func (c *Config) SearchPathStrings() []string {
	out := make([]string, 0, len(c.SearchPaths))
	for _, p := range c.SearchPaths {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("nested", false)

	// Scan defaults
	viper.SetDefault("scan.concurrency", 4*runtime.NumCPU())

	// Picker defaults
	viper.SetDefault("picker.command", "fzf")
	viper.SetDefault("picker.args", []string{"--height=40%", "--layout=reverse", "--cycle"})

	// Tmux defaults
	viper.SetDefault("tmux.command", "tmux")
	viper.SetDefault("tmux.session_prefix", "")
}
