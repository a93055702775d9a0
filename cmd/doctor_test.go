package cmd

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestDoctorReportsProblems(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(t.TempDir(), "missing")
	cfg := writeConfig(t, dir, `search_paths: [`+dir+`, `+missing+`]
picker:
  command: /nonexistent/picker
tmux:
  command: /nonexistent/tmux
`)

	out, err := executeCommand(t, "doctor", "--no-color", "--config", cfg)
	if err == nil {
		t.Fatal("doctor should fail when checks fail")
	}

	for _, want := range []string{
		"sessionizer doctor",
		"ok  config",
		"ok  search      " + dir,
		"--  search      " + missing + " does not exist",
		"!!  picker      /nonexistent/picker not found in PATH",
		"!!  tmux        /nonexistent/tmux not found in PATH",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("doctor output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(err.Error(), "2 check(s) failed") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDoctorWithoutConfig(t *testing.T) {
	out, err := executeCommand(t, "doctor", "--no-color", "--config", filepath.Join(t.TempDir(), "none.yaml"))
	if err == nil {
		t.Fatal("doctor should fail without a config")
	}
	if !strings.Contains(out, "!!  config") {
		t.Errorf("doctor should report the config problem:\n%s", out)
	}
	// Program checks still run with their defaults.
	if !strings.Contains(out, "picker") || !strings.Contains(out, "tmux") {
		t.Errorf("doctor should still check programs:\n%s", out)
	}
}
