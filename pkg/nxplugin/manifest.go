// SPDX-License-Identifier: MPL-2.0

package nxplugin

import (
	"fmt"
	"path/filepath"

	"github.com/ethantkoenig/nx/pkg/modresolve"
	"github.com/ethantkoenig/nx/pkg/types"
	"github.com/ethantkoenig/nx/pkg/workspace"
)

// PluginManifest is a plugin's package manifest and where it was read from.
type PluginManifest struct {
	Path     string
	Manifest *workspace.PackageManifest
}

// ReadPluginPackageManifest reads the package.json of the plugin named by
// identifier without loading its implementation. Installed packages are
// preferred; identifiers that are not installed fall back to the local
// plugin's project directory.
func (r *Resolver) ReadPluginPackageManifest(identifier string, searchPaths []string) (*PluginManifest, error) {
	if err := types.PluginIdentifier(identifier).Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(searchPaths) == 0 {
		searchPaths = r.searchPaths
	}

	res := r.modules.Resolve(identifier+"/"+workspace.PackageJSONFile, searchPaths)
	switch res.Status {
	case modresolve.Resolved:
		return r.readManifest(res.Path)
	case modresolve.NotFound:
		ref, err := r.resolveLocalPlugin(identifier, r.root)
		if err != nil {
			return nil, err
		}
		if ref != nil {
			return r.readManifest(filepath.Join(ref.Path, workspace.PackageJSONFile))
		}
		return nil, &PluginNotFoundError{Identifier: identifier, Err: res.Err}
	default:
		if res.Err == nil {
			return nil, fmt.Errorf("resolving manifest of %q: module resolution failed", identifier)
		}
		return nil, res.Err
	}
}

func (r *Resolver) readManifest(path string) (*PluginManifest, error) {
	m, err := workspace.ReadPackageManifest(r.store, path)
	if err != nil {
		return nil, err
	}
	return &PluginManifest{Path: path, Manifest: m}, nil
}
