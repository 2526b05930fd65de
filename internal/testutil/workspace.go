// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"testing"
)

// Workspace builds an on-disk monorepo layout inside t.TempDir().
//
//	ws := testutil.NewWorkspace(t).
//	    TSConfigPaths(map[string][]string{"@proj/a": {"libs/a/src/index.ts"}}).
//	    ProjectJSON("libs/a", `{"name": "a"}`)
type Workspace struct {
	t    testing.TB
	Root string
}

// NewWorkspace creates an empty workspace in a fresh temporary directory.
func NewWorkspace(t testing.TB) *Workspace {
	t.Helper()
	return &Workspace{t: t, Root: t.TempDir()}
}

// Path returns the absolute path of a slash-separated workspace-relative path.
func (w *Workspace) Path(rel string) string {
	return filepath.Join(w.Root, filepath.FromSlash(rel))
}

// File writes content to rel.
func (w *Workspace) File(rel, content string) *Workspace {
	w.t.Helper()
	MustWriteFile(w.t, w.Path(rel), content)
	return w
}

// JSON marshals v to rel.
func (w *Workspace) JSON(rel string, v any) *Workspace {
	w.t.Helper()
	MustWriteJSON(w.t, w.Path(rel), v)
	return w
}

// ProjectJSON writes the raw project.json document for the project at root.
// Raw text keeps target declaration order under the caller's control.
func (w *Workspace) ProjectJSON(root, content string) *Workspace {
	w.t.Helper()
	return w.File(root+"/project.json", content)
}

// PackageJSON writes a package.json with the given name at dir.
func (w *Workspace) PackageJSON(dir, name string) *Workspace {
	w.t.Helper()
	return w.JSON(dir+"/package.json", map[string]string{"name": name, "version": "0.0.1"})
}

// TSConfigPaths writes tsconfig.base.json declaring the given path aliases.
func (w *Workspace) TSConfigPaths(paths map[string][]string) *Workspace {
	w.t.Helper()
	return w.JSON("tsconfig.base.json", map[string]any{
		"compilerOptions": map[string]any{"paths": paths},
	})
}

// NxJSON writes nx.json declaring the given plugins.
func (w *Workspace) NxJSON(plugins ...string) *Workspace {
	w.t.Helper()
	if plugins == nil {
		plugins = []string{}
	}
	return w.JSON("nx.json", map[string]any{"plugins": plugins})
}
