// SPDX-License-Identifier: MPL-2.0

package nxplugin

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/ethantkoenig/nx/pkg/workspace"

	"golang.org/x/exp/maps"
)

type (
	// Registry maps package names to plugin implementations.
	Registry struct {
		mu    sync.RWMutex
		impls map[string]Implementation
	}

	// Loader loads the implementation found at a resolved plugin path.
	Loader interface {
		Load(path string) (Implementation, error)
	}

	// RegistryLoader loads implementations from a Registry. The package name
	// for a path is the name declared by the nearest enclosing package.json,
	// or the file name without extension when no manifest exists.
	RegistryLoader struct {
		registry *Registry
		store    workspace.Store
	}
)

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{impls: make(map[string]Implementation)}
}

// Register adds impl under its package name. It returns an error if an
// implementation with the same name is already registered.
func (r *Registry) Register(impl Implementation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := impl.PackageName()
	if _, exists := r.impls[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateImplementation, name)
	}
	r.impls[name] = impl
	return nil
}

// Get returns the implementation registered under name.
func (r *Registry) Get(name string) (Implementation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	impl, ok := r.impls[name]
	return impl, ok
}

// Names returns the registered package names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := maps.Keys(r.impls)
	slices.Sort(names)
	return names
}

// NewRegistryLoader creates a RegistryLoader. A nil store uses a workspace.FileStore.
func NewRegistryLoader(registry *Registry, store workspace.Store) *RegistryLoader {
	if store == nil {
		store = workspace.NewFileStore()
	}
	return &RegistryLoader{registry: registry, store: store}
}

// Load implements Loader.
func (l *RegistryLoader) Load(path string) (Implementation, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("loading plugin: %w", err)
	}

	name, err := l.packageName(path)
	if err != nil {
		return nil, err
	}
	impl, ok := l.registry.Get(name)
	if !ok {
		return nil, &ImplementationNotFoundError{Path: path, PackageName: name}
	}
	return impl, nil
}

func (l *RegistryLoader) packageName(path string) (string, error) {
	dir := path
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		dir = filepath.Dir(path)
	}
	for {
		manifestPath := filepath.Join(dir, workspace.PackageJSONFile)
		if l.store.FileExists(manifestPath) {
			m, err := workspace.ReadPackageManifest(l.store, manifestPath)
			if err != nil {
				return "", err
			}
			if m.Name != "" {
				return m.Name, nil
			}
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)), nil
}
