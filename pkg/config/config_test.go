package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serrors "thoreinstein.com/sessionizer/pkg/errors"
)

func loadFrom(t *testing.T, name, content string) (*Config, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())

	return Load()
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadFrom(t, "config.yaml", "search_paths:\n  - ~/src\n")
	require.NoError(t, err)

	assert.False(t, cfg.Nested)
	assert.Equal(t, 4*runtime.NumCPU(), cfg.Scan.Concurrency)
	assert.Equal(t, "fzf", cfg.Picker.Command)
	assert.NotEmpty(t, cfg.Picker.Args)
	assert.Equal(t, "tmux", cfg.Tmux.Command)
	assert.Empty(t, cfg.Tmux.SessionPrefix)
	assert.Equal(t, []string{"~/src"}, cfg.SearchPathStrings())
}

func TestLoadYAML(t *testing.T) {
	content := `search_paths:
  - ~/code
  - null
  - /srv/repos
nested: true
scan:
  concurrency: 3
picker:
  command: sk
  args: ["--ansi"]
tmux:
  command: /usr/local/bin/tmux
  session_prefix: "dev-"
`
	cfg, err := loadFrom(t, "config.yaml", content)
	require.NoError(t, err)

	require.Len(t, cfg.SearchPaths, 3)
	assert.Nil(t, cfg.SearchPaths[1], "null entries stay absent")
	assert.Equal(t, []string{"~/code", "/srv/repos"}, cfg.SearchPathStrings())
	assert.True(t, cfg.Nested)
	assert.Equal(t, 3, cfg.Scan.Concurrency)
	assert.Equal(t, "sk", cfg.Picker.Command)
	assert.Equal(t, []string{"--ansi"}, cfg.Picker.Args)
	assert.Equal(t, "/usr/local/bin/tmux", cfg.Tmux.Command)
	assert.Equal(t, "dev-", cfg.Tmux.SessionPrefix)
}

func TestLoadTOML(t *testing.T) {
	content := `search_paths = ["~/work", "~/oss"]
nested = true

[tmux]
session_prefix = "p_"
`
	cfg, err := loadFrom(t, "config.toml", content)
	require.NoError(t, err)

	assert.Equal(t, []string{"~/work", "~/oss"}, cfg.SearchPathStrings())
	assert.True(t, cfg.Nested)
	assert.Equal(t, "p_", cfg.Tmux.SessionPrefix)
	assert.Equal(t, "tmux", cfg.Tmux.Command)
}

func TestLoadEnvOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("SESSIONIZER_NESTED", "true")
	viper.SetEnvPrefix("SESSIONIZER")
	viper.AutomaticEnv()

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Nested)
	assert.Empty(t, cfg.SearchPathStrings())
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"zero concurrency", "scan:\n  concurrency: 0\n", "scan.concurrency"},
		{"negative concurrency", "scan:\n  concurrency: -2\n", "scan.concurrency"},
		{"empty picker", "picker:\n  command: \"\"\n", "picker.command"},
		{"empty tmux", "tmux:\n  command: \"\"\n", "tmux.command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadFrom(t, "config.yaml", tt.content)
			require.Error(t, err)

			var cfgErr *serrors.ConfigError
			require.True(t, serrors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestSearchPathStringsEmpty(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	got := cfg.SearchPathStrings()
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
