package fs

import (
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// Glob returns the files under root matching pattern, sorted. Patterns use
// forward slashes and support ** for recursive matching. Returned paths are
// joined with root.
func Glob(root, pattern string) ([]string, error) {
	if pattern == "" {
		return nil, fmt.Errorf("pattern is required")
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("access root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root must be a directory: %s", root)
	}

	fsys := os.DirFS(root)
	var matches []string

	err = doublestar.GlobWalk(fsys, pattern, func(path string, d iofs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		matches = append(matches, filepath.Join(root, filepath.FromSlash(path)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("match pattern: %w", err)
	}

	slices.Sort(matches)
	return matches, nil
}
