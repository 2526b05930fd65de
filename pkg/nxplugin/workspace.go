// SPDX-License-Identifier: MPL-2.0

package nxplugin

import (
	"fmt"

	"github.com/ethantkoenig/nx/pkg/workspace"
)

// ReadWorkspace reads the workspace with plugin target inference: the
// plugins declared in nx.json are loaded and every project's targets are
// merged with what those plugins infer.
func (r *Resolver) ReadWorkspace() (*workspace.Configuration, error) {
	reader := workspace.NewReader(
		workspace.WithStore(r.store),
		workspace.WithSearcher(r.searcher),
		workspace.WithTargetInference(r.inferTargets),
	)
	return reader.Read(r.root, workspace.ReadOptions{})
}

func (r *Resolver) inferTargets(root string, ws *workspace.Configuration) error {
	plugins, err := r.LoadPlugins(ws.Plugins, nil)
	if err != nil {
		return err
	}
	if len(plugins) == 0 {
		return nil
	}

	for _, name := range ws.Projects.Names() {
		project, _ := ws.Projects.Get(name)
		targets, err := MergeTargets(r.searcher, root, project.Root, project.Targets, plugins)
		if err != nil {
			return fmt.Errorf("project %s: %w", name, err)
		}
		project.Targets = targets
		ws.Projects.Set(name, project)
	}
	return nil
}
