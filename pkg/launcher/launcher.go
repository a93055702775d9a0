// Package launcher ties repository discovery, the picker and tmux together.
package launcher

import (
	"context"
	"log/slog"

	"thoreinstein.com/sessionizer/pkg/discovery"
	serrors "thoreinstein.com/sessionizer/pkg/errors"
	"thoreinstein.com/sessionizer/pkg/tmux"
	"thoreinstein.com/sessionizer/pkg/ui"
)

// Discoverer finds candidate repositories.
type Discoverer interface {
	Discover() *discovery.Result
}

// Sessions is the session manager capability the launcher needs.
type Sessions interface {
	SessionName(path string) string
	ServerRunning(ctx context.Context) bool
	StartAttached(ctx context.Context, name, dir string) error
	EnsureSession(ctx context.Context, name, dir string) error
	SwitchTo(ctx context.Context, name string) error
}

// Outcome describes what a launch did.
type Outcome struct {
	Path      string // Selected repository, empty when cancelled
	Session   string // Session name derived from Path
	Started   bool   // A new tmux server was started attached
	Cancelled bool
}

// Launcher runs discover -> select -> open session.
type Launcher struct {
	discoverer Discoverer
	selector   ui.Selector
	sessions   Sessions
	logger     *slog.Logger
}

// New creates a Launcher.
func New(discoverer Discoverer, selector ui.Selector, sessions Sessions, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		discoverer: discoverer,
		selector:   selector,
		sessions:   sessions,
		logger:     logger,
	}
}

// Run discovers repositories, asks the user to pick one and opens a session
// rooted there. A cancelled pick is not an error.
func (l *Launcher) Run(ctx context.Context) (*Outcome, error) {
	result := l.discoverer.Discover()

	selected, err := l.selector.Select(ctx, result.Paths())
	if err != nil {
		if serrors.Is(err, ui.ErrCancelled) {
			l.logger.Debug("selection cancelled")
			return &Outcome{Cancelled: true}, nil
		}
		return nil, err
	}

	outcome := &Outcome{
		Path:    selected,
		Session: l.sessions.SessionName(selected),
	}
	if outcome.Session == "" {
		return nil, serrors.Newf("cannot derive a session name from %q", selected)
	}

	l.logger.Debug("opening session", "session", outcome.Session, "path", outcome.Path)

	if !l.sessions.ServerRunning(ctx) {
		outcome.Started = true
		if err := l.sessions.StartAttached(ctx, outcome.Session, outcome.Path); err != nil {
			return nil, err
		}
		return outcome, nil
	}

	if err := l.sessions.EnsureSession(ctx, outcome.Session, outcome.Path); err != nil {
		return nil, err
	}
	if err := l.sessions.SwitchTo(ctx, outcome.Session); err != nil {
		return nil, err
	}

	return outcome, nil
}

var _ Sessions = (*tmux.Manager)(nil)
