package cmd

import (
	"strings"
	"testing"

	serrors "thoreinstein.com/sessionizer/pkg/errors"
)

func TestLaunchRequiresTerminal(t *testing.T) {
	old := isInteractive
	isInteractive = func() bool { return false }
	t.Cleanup(func() { isInteractive = old })

	dir := t.TempDir()
	cfg := writeConfig(t, dir, "search_paths: ["+dir+"]\n")

	_, err := executeCommand(t, "--config", cfg)
	if err == nil {
		t.Fatal("expected error without a terminal")
	}
	if !strings.Contains(err.Error(), "sessionizer list") {
		t.Errorf("error should point at the list command, got %q", err.Error())
	}
}

func TestLaunchMissingConfig(t *testing.T) {
	_, err := executeCommand(t, "--config", t.TempDir()+"/missing.yaml")
	if err == nil {
		t.Fatal("expected error for missing config")
	}
	if !serrors.IsConfigError(err) {
		t.Errorf("expected ConfigError, got %T: %v", err, err)
	}
}
