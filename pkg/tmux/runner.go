package tmux

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// CommandRunner abstracts command execution so session management can be
// tested without a tmux server.
type CommandRunner interface {
	// Output runs a command and returns its stdout. A non-zero exit returns an
	// error wrapping *exec.ExitError with stderr as context.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)

	// Run runs a command attached to the current terminal.
	Run(ctx context.Context, name string, args ...string) error
}

// RealCommandRunner executes commands using os/exec.
type RealCommandRunner struct{}

// Output implements CommandRunner.
func (RealCommandRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return out, errors.Wrapf(err, "%s", msg)
		}
		return out, err
	}
	return out, nil
}

// Run implements CommandRunner.
func (RealCommandRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
