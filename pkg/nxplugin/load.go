// SPDX-License-Identifier: MPL-2.0

package nxplugin

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/ethantkoenig/nx/pkg/modresolve"
	"github.com/ethantkoenig/nx/pkg/types"
	"github.com/ethantkoenig/nx/pkg/workspace"
)

// directlyLoadableExts are entry file extensions that never carry a sibling
// package.json to read the plugin name from.
var directlyLoadableExts = []string{".ts", ".js"}

// LoadPlugins resolves and loads the plugins named by ids.
//
// Installed packages are looked up in searchPaths (the resolver's default
// search paths when empty); identifiers that are not installed are resolved
// as local plugins. The first call that loads anything populates the plugin
// cache, and every later call returns that cached result unchanged. The
// returned slice is shared and must not be modified.
//
// Load failures are returned unwrapped. An empty identifier, or one that
// contains whitespace, fails with types.ErrInvalidPluginIdentifier before
// anything is resolved.
func (r *Resolver) LoadPlugins(ids []string, searchPaths []string) ([]*Plugin, error) {
	if len(ids) == 0 {
		return []*Plugin{}, nil
	}
	for _, id := range ids {
		if err := types.PluginIdentifier(id).Validate(); err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pluginsLoaded {
		if !slices.Equal(ids, r.pluginIDs) {
			r.logger.Warn("plugin set differs from the set loaded earlier in this process; returning cached plugins",
				"requested", ids, "cached", r.pluginIDs)
		}
		r.logger.Debug("plugin cache hit", "count", len(r.plugins))
		return r.plugins, nil
	}

	if len(searchPaths) == 0 {
		searchPaths = r.searchPaths
	}

	plugins := make([]*Plugin, 0, len(ids))
	for _, id := range ids {
		p, err := r.loadPlugin(id, searchPaths)
		if err != nil {
			return nil, err
		}
		plugins = append(plugins, p)
	}

	r.plugins = plugins
	r.pluginIDs = slices.Clone(ids)
	r.pluginsLoaded = true
	return plugins, nil
}

func (r *Resolver) loadPlugin(id string, searchPaths []string) (*Plugin, error) {
	var pluginPath string

	res := r.modules.Resolve(id, searchPaths)
	switch res.Status {
	case modresolve.Resolved:
		pluginPath = res.Path
		r.logger.Debug("resolved installed plugin", "identifier", id, "path", pluginPath)
	case modresolve.NotFound:
		ref, err := r.resolveLocalPlugin(id, r.root)
		if err != nil {
			return nil, err
		}
		if ref == nil {
			return nil, &PluginNotFoundError{Identifier: id, Err: res.Err}
		}
		if main, ok := PluginMainFromProject(ref.ProjectConfig); ok {
			pluginPath = filepath.Join(r.root, filepath.FromSlash(main))
		} else {
			pluginPath = ref.Path
		}
		r.logger.Debug("resolved local plugin", "identifier", id, "project", ref.ProjectName, "path", pluginPath)
	default:
		if res.Err == nil {
			return nil, fmt.Errorf("resolving plugin %q: module resolution failed", id)
		}
		return nil, res.Err
	}

	name, err := r.pluginName(pluginPath)
	if err != nil {
		return nil, err
	}

	impl, err := r.loader.Load(pluginPath)
	if err != nil {
		return nil, err
	}

	p := NewPlugin(impl)
	p.Name = name
	p.Identifier = id
	p.Path = pluginPath
	return p, nil
}

// pluginName derives the display name of the plugin at pluginPath.
func (r *Resolver) pluginName(pluginPath string) (string, error) {
	manifestPath := filepath.Join(pluginPath, workspace.PackageJSONFile)
	if !slices.Contains(directlyLoadableExts, filepath.Ext(pluginPath)) && r.store.FileExists(manifestPath) {
		m, err := workspace.ReadPackageManifest(r.store, manifestPath)
		if err != nil {
			return "", err
		}
		if m.Name != "" {
			return m.Name, nil
		}
	}
	return filepath.Base(pluginPath), nil
}
