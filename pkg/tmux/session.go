// Package tmux opens and switches tmux sessions rooted at a directory.
package tmux

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	serrors "thoreinstein.com/sessionizer/pkg/errors"
)

// MinVersion is the oldest tmux accepted; new-session -c arrived in 1.9.
const MinVersion = "1.9"

// Env is the process environment relevant to tmux, read once at startup.
type Env struct {
	Inside bool // $TMUX is set: this process runs inside a tmux client
}

// EnvFromOS reads Env from the current process environment.
func EnvFromOS() Env {
	return Env{Inside: os.Getenv("TMUX") != ""}
}

// Manager manages tmux sessions
type Manager struct {
	Command string // tmux binary (default: tmux)
	Prefix  string // Prepended to every derived session name
	Env     Env

	runner CommandRunner
	logger *slog.Logger
}

// NewManager creates a Manager that runs the real tmux binary.
func NewManager(command, prefix string, env Env, logger *slog.Logger) *Manager {
	return NewManagerWithRunner(command, prefix, env, logger, RealCommandRunner{})
}

// NewManagerWithRunner creates a Manager with a custom CommandRunner (for testing)
func NewManagerWithRunner(command, prefix string, env Env, logger *slog.Logger, runner CommandRunner) *Manager {
	if command == "" {
		command = "tmux"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		Command: command,
		Prefix:  prefix,
		Env:     env,
		runner:  runner,
		logger:  logger,
	}
}

// SessionName derives a session name from a directory: the final path
// component with "." replaced by "_", since tmux treats "." as a
// window/pane separator in targets.
func SessionName(path, prefix string) string {
	base := filepath.Base(filepath.Clean(path))
	return prefix + strings.ReplaceAll(base, ".", "_")
}

// SessionName derives the session name for path using the configured prefix.
func (m *Manager) SessionName(path string) string {
	return SessionName(path, m.Prefix)
}

// ServerRunning reports whether a tmux server is active, either because this
// process runs inside tmux or because a tmux process is running.
func (m *Manager) ServerRunning(ctx context.Context) bool {
	if m.Env.Inside {
		return true
	}
	_, err := m.runner.Output(ctx, "pgrep", "tmux")
	return err == nil
}

// HasSession checks if a session with exactly this name exists. A missing
// server counts as a missing session.
func (m *Manager) HasSession(ctx context.Context, name string) (bool, error) {
	_, err := m.runner.Output(ctx, m.Command, "has-session", "-t", exact(name))
	if err == nil {
		return true, nil
	}

	var exitErr *exec.ExitError
	if serrors.As(err, &exitErr) {
		return false, nil
	}
	return false, serrors.NewProcessErrorWithCause(m.Command, "has-session", "could not query sessions", err)
}

// EnsureSession creates a detached session rooted at dir unless one with this
// name already exists.
func (m *Manager) EnsureSession(ctx context.Context, name, dir string) error {
	exists, err := m.HasSession(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		m.logger.Debug("session exists", "session", name)
		return nil
	}

	m.logger.Debug("creating session", "session", name, "dir", dir)
	if _, err := m.runner.Output(ctx, m.Command, "new-session", "-d", "-s", name, "-c", dir); err != nil {
		return serrors.NewProcessErrorWithCause(m.Command, "new-session", "could not create session "+name, err)
	}
	return nil
}

// SwitchTo moves the current client to the session. Inside tmux that is a
// switch-client; outside, the terminal attaches to it.
func (m *Manager) SwitchTo(ctx context.Context, name string) error {
	if m.Env.Inside {
		if _, err := m.runner.Output(ctx, m.Command, "switch-client", "-t", exact(name)); err != nil {
			return serrors.NewProcessErrorWithCause(m.Command, "switch-client", "could not switch to "+name, err)
		}
		return nil
	}

	if err := m.runner.Run(ctx, m.Command, "attach-session", "-t", exact(name)); err != nil {
		return serrors.NewProcessErrorWithCause(m.Command, "attach-session", "could not attach to "+name, err)
	}
	return nil
}

// StartAttached starts a server with a new session rooted at dir and attaches
// the terminal to it, reusing the session if it somehow already exists.
func (m *Manager) StartAttached(ctx context.Context, name, dir string) error {
	m.logger.Debug("starting tmux", "session", name, "dir", dir)
	if err := m.runner.Run(ctx, m.Command, "new-session", "-A", "-s", name, "-c", dir); err != nil {
		return serrors.NewProcessErrorWithCause(m.Command, "new-session", "could not start session "+name, err)
	}
	return nil
}

var versionPattern = regexp.MustCompile(`^(\d+(?:\.\d+){0,2})`)

// Version returns the installed tmux version. Letter suffixes ("3.3a") and
// the "next-" prefix of development builds are ignored.
func (m *Manager) Version(ctx context.Context) (*semver.Version, error) {
	out, err := m.runner.Output(ctx, m.Command, "-V")
	if err != nil {
		return nil, serrors.NewProcessErrorWithCause(m.Command, "version", "could not run "+m.Command+" -V", err)
	}
	return ParseVersion(string(out))
}

// ParseVersion parses the output of `tmux -V`.
func ParseVersion(output string) (*semver.Version, error) {
	fields := strings.Fields(output)
	if len(fields) == 0 {
		return nil, serrors.New("empty tmux version output")
	}

	raw := strings.TrimPrefix(fields[len(fields)-1], "next-")
	match := versionPattern.FindString(raw)
	if match == "" {
		return nil, serrors.Newf("unrecognized tmux version %q", strings.TrimSpace(output))
	}

	v, err := semver.NewVersion(match)
	if err != nil {
		return nil, serrors.Wrapf(err, "invalid tmux version %q", match)
	}
	return v, nil
}

// CheckVersion verifies that the installed tmux is at least MinVersion.
func (m *Manager) CheckVersion(ctx context.Context) (*semver.Version, error) {
	v, err := m.Version(ctx)
	if err != nil {
		return nil, err
	}

	constraint, err := semver.NewConstraint(">= " + MinVersion)
	if err != nil {
		return nil, serrors.Wrap(err, "invalid tmux version constraint")
	}
	if !constraint.Check(v) {
		return v, serrors.NewProcessError(m.Command, "version", "tmux "+v.String()+" is older than "+MinVersion)
	}
	return v, nil
}

// exact forces tmux to match the session name exactly rather than by prefix.
func exact(name string) string {
	return "=" + name
}
