package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

// TestMain disables the configuration cache so every command invocation in
// this package reads its own config file.
func TestMain(m *testing.M) {
	os.Setenv("GO_TEST", "true")
	code := m.Run()
	os.Unsetenv("GO_TEST")
	os.Exit(code)
}

// executeCommand runs rootCmd with args and returns what it wrote to stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetConfig()
	resetFlags(t)
	t.Cleanup(resetConfig)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores flag state that cobra keeps between executions of the
// package-level commands.
func resetFlags(t *testing.T) {
	t.Helper()

	cfgFile = ""
	verbose = false
	noColor = false
	configFormat = "yaml"

	for _, c := range []*cobra.Command{rootCmd, listCmd} {
		f := c.Flags().Lookup("nested")
		if f == nil {
			t.Fatalf("%s has no --nested flag", c.Name())
		}
		if err := f.Value.Set("false"); err != nil {
			t.Fatal(err)
		}
		f.Changed = false
	}
}

// writeConfig writes a YAML config into dir and returns its path.
func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

// makeRepo creates path with a .git directory inside it.
func makeRepo(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(path, ".git"), 0o755); err != nil {
		t.Fatalf("Failed to create repo %s: %v", path, err)
	}
}
