// SPDX-License-Identifier: MPL-2.0

package nxplugin

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/ethantkoenig/nx/pkg/fileglob"
	"github.com/ethantkoenig/nx/pkg/workspace"
)

// MergeTargets combines the targets plugins infer for the project at
// projectRoot with the project's explicit targets.
//
// Plugins are consulted in order. Each plugin with file patterns and an
// inference hook is asked for targets once per matching file directly under
// root/projectRoot; later results overwrite earlier ones on name collision.
// Explicit targets always win over inferred ones.
func MergeTargets(searcher fileglob.Searcher, root, projectRoot string, explicit workspace.Targets, plugins []*Plugin) (workspace.Targets, error) {
	var inferred workspace.Targets
	cwd := filepath.Join(root, filepath.FromSlash(projectRoot))

	for _, p := range plugins {
		if !p.InfersTargets() {
			continue
		}

		files, err := searcher.Sync(fileglob.Alternation(p.FilePatterns), cwd)
		if err != nil {
			return workspace.Targets{}, fmt.Errorf("plugin %s: matching project files in %s: %w", p.Name, projectRoot, err)
		}
		for _, f := range files {
			file := path.Join(projectRoot, f)
			targets, err := p.InferTargets(file)
			if err != nil {
				return workspace.Targets{}, &TargetInferenceError{Plugin: p.Name, File: file, Err: err}
			}
			inferred = inferred.Merge(targets)
		}
	}
	return inferred.Merge(explicit), nil
}

// MergeTargets is MergeTargets rooted at the resolver's workspace root.
func (r *Resolver) MergeTargets(projectRoot string, explicit workspace.Targets, plugins []*Plugin) (workspace.Targets, error) {
	return MergeTargets(r.searcher, r.root, projectRoot, explicit, plugins)
}
