// Package bootstrap resolves global flags and loads configuration before any
// command runs.
package bootstrap

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"thoreinstein.com/sessionizer/pkg/config"
	serrors "thoreinstein.com/sessionizer/pkg/errors"
)

// EnvPrefix prefixes environment overrides, e.g. SESSIONIZER_NESTED=true.
const EnvPrefix = "SESSIONIZER"

// GlobalFlags are the flags that matter before cobra parses the command line.
type GlobalFlags struct {
	ConfigFile string
	Verbose    bool
	NoColor    bool
}

var (
	lastLoadedConfig string
	loadedConfig     *config.Config
)

// PreParseGlobalFlags manually scans os.Args for --config, --verbose and
// --no-color so logging can be set up before the main Cobra execution.
// It stops scanning at the "--" marker.
func PreParseGlobalFlags(args []string) GlobalFlags {
	var flags GlobalFlags

	for i := 1; i < len(args); i++ {
		arg := args[i]

		// Stop parsing at the standard end-of-options marker
		if arg == "--" {
			break
		}

		switch {
		case arg == "--config" || arg == "-C":
			if i+1 < len(args) {
				flags.ConfigFile = args[i+1]
				i++
			}
		case strings.HasPrefix(arg, "--config="):
			flags.ConfigFile = strings.TrimPrefix(arg, "--config=")
		case strings.HasPrefix(arg, "-C="):
			flags.ConfigFile = strings.TrimPrefix(arg, "-C=")
		case strings.HasPrefix(arg, "-C") && len(arg) > 2:
			flags.ConfigFile = arg[2:]
		case arg == "--verbose" || arg == "-v":
			flags.Verbose = true
		case arg == "--no-color":
			flags.NoColor = true
		}
	}

	return flags
}

// DefaultConfigDir returns the directory searched when no config file is given.
func DefaultConfigDir(home string) string {
	return filepath.Join(home, ".config", "sessionizer")
}

// InitConfig reads the config file and SESSIONIZER_* environment variables.
// With an empty cfgFile, config.{yaml,yml,toml,json} is looked up in
// DefaultConfigDir. A missing, unreadable or malformed file is a ConfigError.
func InitConfig(cfgFile string) (*config.Config, error) {
	// Skip if already loaded with same parameters (unless in test)
	if os.Getenv("GO_TEST") != "true" && loadedConfig != nil && cfgFile == lastLoadedConfig {
		return loadedConfig, nil
	}

	// Reset Viper state to avoid carrying over stale settings from previous loads.
	viper.Reset()

	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); err != nil {
			return nil, serrors.NewConfigErrorWithCause("config", "cannot read configuration file "+cfgFile, err)
		}
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, serrors.NewConfigErrorWithCause("config", "failed to get home directory", err)
		}
		viper.AddConfigPath(DefaultConfigDir(home))
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if serrors.As(err, &notFound) {
			return nil, serrors.NewConfigError("config", "configuration file is required")
		}
		return nil, serrors.NewConfigErrorWithCause("config", "failed to parse configuration file", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	// Update state
	lastLoadedConfig = cfgFile
	loadedConfig = cfg

	return cfg, nil
}

// ConfigFileUsed returns the path of the config file that was read.
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}

// Reset clears the cached configuration state.
func Reset() {
	lastLoadedConfig = ""
	loadedConfig = nil
}
