package discovery

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"thoreinstein.com/sessionizer/pkg/git"
)

// DefaultConcurrency bounds simultaneous directory reads when none is configured.
var DefaultConcurrency = 4 * runtime.NumCPU()

// Scanner scans directories for git repositories.
//
// Sibling subtrees are walked in parallel. Each walk returns its own slice of
// projects and the parent concatenates them; the only shared state is the
// set of directories already claimed. Directory reads are bounded by a
// weighted semaphore.
type Scanner struct {
	Nested      bool // Keep descending into directories already identified as repositories
	Concurrency int
	Logger      *slog.Logger

	once sync.Once
	sem  *semaphore.Weighted
}

// NewScanner creates a new scanner
func NewScanner(nested bool, concurrency int, logger *slog.Logger) *Scanner {
	return &Scanner{
		Nested:      nested,
		Concurrency: concurrency,
		Logger:      logger,
	}
}

// walk is the outcome of scanning one subtree.
type walk struct {
	projects []Project
	scanned  int
}

func (w *walk) merge(other walk) {
	w.projects = append(w.projects, other.projects...)
	w.scanned += other.scanned
}

// visited records the resolved path of every directory claimed during one
// scan. A directory reachable through several links is walked once.
type visited struct {
	seen sync.Map
}

// claim reports whether dir had not been claimed before.
func (v *visited) claim(dir string) bool {
	_, loaded := v.seen.LoadOrStore(dir, struct{}{})
	return !loaded
}

// Scan scans every root concurrently. Roots that do not exist are logged and
// reported in Result.Skipped; they never fail the scan.
func (s *Scanner) Scan(roots []string) *Result {
	start := time.Now()
	logger := s.logger()

	walks := make([]walk, len(roots))
	missing := make([]bool, len(roots))
	seen := &visited{}

	var g errgroup.Group
	for i, root := range roots {
		if _, err := os.Stat(root); err != nil {
			logger.Warn("path does not exist", "path", root)
			missing[i] = true
			continue
		}
		g.Go(func() error {
			walks[i] = s.scanRoot(root, seen)
			return nil
		})
	}
	_ = g.Wait()

	result := &Result{}
	for i, w := range walks {
		if missing[i] {
			result.Skipped = append(result.Skipped, roots[i])
			continue
		}
		result.Projects = append(result.Projects, w.projects...)
		result.Scanned += w.scanned
	}
	result.Duration = time.Since(start)

	logger.Debug("scan complete",
		"roots", len(roots),
		"projects", len(result.Projects),
		"scanned", result.Scanned,
		"duration", result.Duration)

	return result
}

// ScanRoot returns the repositories below root. A root that is missing or is
// not a directory yields no projects.
func (s *Scanner) ScanRoot(root string) []Project {
	return s.scanRoot(root, &visited{}).projects
}

func (s *Scanner) scanRoot(root string, seen *visited) walk {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return walk{}
	}

	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		resolved = root
	}
	resolved = filepath.Clean(resolved)

	if !seen.claim(resolved) {
		return walk{}
	}
	return s.scanDir(root, resolved, seen)
}

// scanDir lists dir and visits every child directory in parallel. resolved
// is dir with all links resolved.
func (s *Scanner) scanDir(dir, resolved string, seen *visited) walk {
	entries, err := s.readDir(dir)
	if err != nil {
		s.logger().Debug("skipping unreadable directory", "path", dir, "error", err)
		return walk{}
	}

	children := make([]walk, len(entries))

	var g errgroup.Group
	for i, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		childReal, ok := s.descend(path, resolved, entry)
		if !ok || !seen.claim(childReal) {
			continue
		}

		g.Go(func() error {
			children[i] = s.visit(path, childReal, seen)
			return nil
		})
	}
	_ = g.Wait()

	result := walk{scanned: 1}
	for _, child := range children {
		result.merge(child)
	}
	return result
}

// visit classifies a directory. Repositories are leaves unless nested
// scanning is on, in which case they are descended into exactly once.
// Everything else is always descended into.
func (s *Scanner) visit(path, resolved string, seen *visited) walk {
	if !git.IsGitRepo(path) {
		return s.scanDir(path, resolved, seen)
	}

	result := walk{projects: []Project{{Name: filepath.Base(path), Path: path}}}
	if s.Nested {
		result.merge(s.scanDir(path, resolved, seen))
	}
	return result
}

// descend decides whether entry is a directory worth entering and returns its
// resolved path. The .git entry itself is never entered. Links to directories
// are followed; the caller skips any target already claimed in this scan,
// which covers both link cycles and aliases of sibling directories.
func (s *Scanner) descend(path, parentReal string, entry os.DirEntry) (string, bool) {
	if entry.Name() == git.MarkerName {
		return "", false
	}

	if entry.Type()&os.ModeSymlink == 0 {
		if !entry.IsDir() {
			return "", false
		}
		return filepath.Join(parentReal, entry.Name()), true
	}

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return "", false
	}

	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		s.logger().Debug("skipping unresolvable link", "path", path, "error", err)
		return "", false
	}
	return target, true
}

func (s *Scanner) readDir(dir string) ([]os.DirEntry, error) {
	sem := s.semaphore()
	// Acquire only fails on context cancellation, which never happens here.
	_ = sem.Acquire(context.Background(), 1)
	defer sem.Release(1)

	return os.ReadDir(dir)
}

func (s *Scanner) semaphore() *semaphore.Weighted {
	s.once.Do(func() {
		limit := s.Concurrency
		if limit < 1 {
			limit = DefaultConcurrency
		}
		s.sem = semaphore.NewWeighted(int64(limit))
	})
	return s.sem
}

func (s *Scanner) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
