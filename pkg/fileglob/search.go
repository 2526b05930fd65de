// SPDX-License-Identifier: MPL-2.0

package fileglob

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

type (
	// Searcher finds files under cwd whose relative path matches a pattern.
	Searcher interface {
		Sync(pattern, cwd string) ([]string, error)
	}

	// Walker is the filesystem-backed Searcher.
	Walker struct {
		ignoreDirs []string
	}

	// Option configures a Walker.
	Option func(*Walker)
)

// DefaultIgnoreDirs lists directory names a Walker never descends into.
var DefaultIgnoreDirs = []string{"node_modules"}

// WithIgnoreDirs replaces the set of directory names skipped during a search.
// Hidden entries (names starting with '.') are always skipped.
func WithIgnoreDirs(names ...string) Option {
	return func(w *Walker) {
		w.ignoreDirs = names
	}
}

// New creates a Walker.
func New(opts ...Option) *Walker {
	w := &Walker{ignoreDirs: slices.Clone(DefaultIgnoreDirs)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Sync returns the sorted, slash-separated paths (relative to cwd) of the
// regular files under cwd that match pat. A missing cwd yields no matches.
func (w *Walker) Sync(pat, cwd string) ([]string, error) {
	re, err := Compile(pat)
	if err != nil {
		return nil, err
	}
	depth := maxDepth(pat)

	if _, err := os.Stat(cwd); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	var matches []string
	err = filepath.WalkDir(cwd, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == cwd {
			return nil
		}
		name := d.Name()
		rel, relErr := filepath.Rel(cwd, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if strings.HasPrefix(name, ".") || slices.Contains(w.ignoreDirs, name) {
				return filepath.SkipDir
			}
			if depth >= 0 && strings.Count(rel, "/") >= depth {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || !d.Type().IsRegular() {
			return nil
		}
		if re.MatchString(rel) {
			matches = append(matches, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(matches)
	return matches, nil
}
