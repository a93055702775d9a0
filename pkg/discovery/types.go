package discovery

import "time"

// Project represents a discovered git repository
type Project struct {
	Name string // Basename of the directory
	Path string // Path to the repository, under the scan root it was found in
}

// Result represents the result of a discovery scan
type Result struct {
	Projects []Project
	Scanned  int           // Number of directories read
	Skipped  []string      // Configured roots that did not exist
	Duration time.Duration // Time taken to scan
}

// Paths returns the repository paths in result order.
func (r *Result) Paths() []string {
	paths := make([]string, 0, len(r.Projects))
	for _, p := range r.Projects {
		paths = append(paths, p.Path)
	}
	return paths
}
