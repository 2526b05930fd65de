// SPDX-License-Identifier: MPL-2.0

// Package fspath provides typed wrappers around path/filepath functions that
// accept and return types.FilesystemPath, so resolver code can stay
// typed-in/typed-out without converting at every call site.
package fspath

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ethantkoenig/nx/pkg/types"
)

// Abs wraps filepath.Abs for FilesystemPath. Returns an error if the
// underlying OS call fails.
func Abs(p types.FilesystemPath) (types.FilesystemPath, error) {
	abs, err := filepath.Abs(string(p))
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	return types.FilesystemPath(abs), nil
}

// Resolve returns rel resolved against base: an absolute rel is cleaned and
// returned as-is, a relative rel is joined onto base. The result is always
// cleaned and never carries a trailing separator.
func Resolve(base types.FilesystemPath, rel string) types.FilesystemPath {
	if filepath.IsAbs(rel) {
		return types.FilesystemPath(filepath.Clean(rel))
	}
	return types.FilesystemPath(filepath.Join(string(base), rel))
}

// HasPrefix reports whether p starts with prefix as a raw string. It does not
// respect segment boundaries: "/ws/libs/ab" has prefix "/ws/libs/a".
func HasPrefix(p, prefix types.FilesystemPath) bool {
	return strings.HasPrefix(string(p), string(prefix))
}
