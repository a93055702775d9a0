package discovery

import (
	"log/slog"
	"slices"
	"strings"

	"thoreinstein.com/sessionizer/pkg/paths"
)

// Options configures an Engine.
type Options struct {
	SearchPaths []*string // As configured; nil entries are ignored
	Nested      bool
	Concurrency int
}

// Engine orchestrates root normalization and repository scanning
type Engine struct {
	Options    Options
	Normalizer paths.Normalizer
	Logger     *slog.Logger
}

// NewEngine creates a new discovery engine
func NewEngine(opts Options, normalizer paths.Normalizer, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		Options:    opts,
		Normalizer: normalizer,
		Logger:     logger,
	}
}

// Roots returns the normalized scan roots for the configured search paths.
func (e *Engine) Roots() []string {
	return e.Normalizer.Normalize(e.Options.SearchPaths)
}

// Discover normalizes the configured search paths, scans them and returns the
// projects sorted by path so the picker shows a stable list.
func (e *Engine) Discover() *Result {
	roots := e.Roots()
	e.Logger.Debug("scanning roots", "roots", strings.Join(roots, ","), "nested", e.Options.Nested)

	scanner := NewScanner(e.Options.Nested, e.Options.Concurrency, e.Logger)
	result := scanner.Scan(roots)

	slices.SortFunc(result.Projects, func(a, b Project) int {
		return strings.Compare(a.Path, b.Path)
	})

	return result
}
