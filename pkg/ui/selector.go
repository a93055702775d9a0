// Package ui hands candidate lists to an external line-oriented fuzzy finder.
package ui

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/xyproto/files"

	serrors "thoreinstein.com/sessionizer/pkg/errors"
)

var (
	// ErrCancelled is returned when the user cancels the selection
	ErrCancelled = errors.New("selection cancelled")
	// ErrNoProjects is returned when there are no projects to select from
	ErrNoProjects = errors.New("no projects found")
)

// Selector picks one line from a list of candidates.
type Selector interface {
	Select(ctx context.Context, candidates []string) (string, error)
}

// FzfSelector runs fzf, or any picker with the same stdin/stdout contract.
type FzfSelector struct {
	Command string   // Program name or path (default: fzf)
	Args    []string // Extra arguments
}

// NewFzfSelector creates a selector for the given picker command.
func NewFzfSelector(command string, args []string) *FzfSelector {
	if command == "" {
		command = "fzf"
	}
	return &FzfSelector{Command: command, Args: args}
}

// Select writes the candidates to the picker's stdin, one per line, and
// returns the line it prints. A cancelled or empty pick returns ErrCancelled.
func (f *FzfSelector) Select(ctx context.Context, candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", ErrNoProjects
	}

	program := f.program()
	path, err := LookPath(program)
	if err != nil {
		return "", serrors.NewProcessErrorWithCause(program, "select", "not found in PATH", err)
	}

	var input bytes.Buffer
	for _, c := range candidates {
		input.WriteString(c)
		input.WriteByte('\n')
	}

	// #nosec G204 - the picker is chosen by the user's own configuration
	cmd := exec.CommandContext(ctx, path, f.Args...)
	cmd.Stdin = &input
	cmd.Stderr = os.Stderr // fzf uses stderr for UI rendering
	var output bytes.Buffer
	cmd.Stdout = &output

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// fzf returns 1 when nothing matched and 130 on cancellation (ESC, Ctrl-C, Ctrl-G)
			if code := exitErr.ExitCode(); code == 1 || code == 130 {
				return "", ErrCancelled
			}
		}
		return "", serrors.NewProcessErrorWithCause(program, "select", "picker failed", err)
	}

	selected := strings.TrimSpace(output.String())
	if selected == "" {
		return "", ErrCancelled
	}

	// Multi-select pickers may print several lines; the first one wins.
	if i := strings.IndexByte(selected, '\n'); i >= 0 {
		selected = strings.TrimSpace(selected[:i])
	}

	return selected, nil
}

func (f *FzfSelector) program() string {
	if f.Command == "" {
		return "fzf"
	}
	return f.Command
}

// LookPath resolves a program name through PATH. Names containing a path
// separator are checked directly.
func LookPath(program string) (string, error) {
	if strings.ContainsRune(program, os.PathSeparator) {
		return exec.LookPath(program)
	}
	if found := files.WhichCached(program); found != "" {
		return found, nil
	}
	return "", serrors.Wrapf(exec.ErrNotFound, "%s", program)
}
