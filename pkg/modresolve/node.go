// SPDX-License-Identifier: MPL-2.0

package modresolve

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ethantkoenig/nx/pkg/fspath"
	"github.com/ethantkoenig/nx/pkg/types"
	"github.com/ethantkoenig/nx/pkg/workspace"
)

const nodeModules = "node_modules"

// fileExtensions are tried, in order, after the bare request path.
var fileExtensions = []string{".js", ".json"}

// NodeResolver resolves requests the way Node's require.resolve does for
// CommonJS packages: relative requests are resolved against each search path,
// bare requests are looked up in node_modules directories walking up from
// each search path.
type NodeResolver struct {
	store workspace.Store
}

// NewNodeResolver creates a NodeResolver that reads package manifests through store.
// A nil store uses a workspace.FileStore.
func NewNodeResolver(store workspace.Store) *NodeResolver {
	if store == nil {
		store = workspace.NewFileStore()
	}
	return &NodeResolver{store: store}
}

// Resolve implements Resolver.
func (r *NodeResolver) Resolve(request string, searchPaths []string) Result {
	if request == "" {
		return Failure(errors.New("empty module request"))
	}

	for _, base := range searchPaths {
		abs, err := fspath.Abs(types.FilesystemPath(base))
		if err != nil {
			return Failure(err)
		}

		for _, candidate := range r.candidates(request, string(abs)) {
			path, err := r.tryCandidate(candidate)
			if err != nil {
				return Failure(err)
			}
			if path != "" {
				return Found(path)
			}
		}
	}
	return Missing(request, searchPaths)
}

// candidates lists the base paths to try for request from dir.
func (r *NodeResolver) candidates(request, dir string) []string {
	if isPathRequest(request) {
		return []string{string(fspath.Resolve(types.FilesystemPath(dir), filepath.FromSlash(request)))}
	}

	var out []string
	for {
		if filepath.Base(dir) != nodeModules {
			out = append(out, filepath.Join(dir, nodeModules, filepath.FromSlash(request)))
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return out
		}
		dir = parent
	}
}

// tryCandidate resolves candidate as a file, then as a directory.
// It returns "" when nothing exists at candidate.
func (r *NodeResolver) tryCandidate(candidate string) (string, error) {
	if path, err := tryFile(candidate); path != "" || err != nil {
		return path, err
	}
	return r.tryDirectory(candidate)
}

func (r *NodeResolver) tryDirectory(dir string) (string, error) {
	isDir, err := statDir(dir)
	if err != nil || !isDir {
		return "", err
	}

	manifestPath := filepath.Join(dir, workspace.PackageJSONFile)
	if r.store.FileExists(manifestPath) {
		manifest, err := workspace.ReadPackageManifest(r.store, manifestPath)
		if err != nil {
			return "", err
		}
		if manifest.Main != "" {
			main := filepath.Join(dir, filepath.FromSlash(manifest.Main))
			if path, err := tryFile(main); path != "" || err != nil {
				return path, err
			}
			if path, err := tryFile(filepath.Join(main, "index.js")); path != "" || err != nil {
				return path, err
			}
		}
	}
	return tryFile(filepath.Join(dir, "index.js"))
}

// tryFile returns path, or path with a known extension appended, when it
// names a regular file.
func tryFile(path string) (string, error) {
	for _, candidate := range append([]string{path}, withExtensions(path)...) {
		info, err := os.Stat(candidate)
		switch {
		case err == nil && info.Mode().IsRegular():
			return candidate, nil
		case err == nil, isMissing(err):
			continue
		default:
			return "", fmt.Errorf("resolving %s: %w", candidate, err)
		}
	}
	return "", nil
}

func withExtensions(path string) []string {
	out := make([]string, 0, len(fileExtensions))
	for _, ext := range fileExtensions {
		out = append(out, path+ext)
	}
	return out
}

func statDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if isMissing(err) {
			return false, nil
		}
		return false, fmt.Errorf("resolving %s: %w", path, err)
	}
	return info.IsDir(), nil
}

// isMissing treats ENOTDIR like ENOENT: a path component that is a file
// means the candidate does not exist.
func isMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

func isPathRequest(request string) bool {
	return request == "." || request == ".." ||
		strings.HasPrefix(request, "./") || strings.HasPrefix(request, "../") ||
		filepath.IsAbs(request) || strings.HasPrefix(request, "/")
}
