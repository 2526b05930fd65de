// SPDX-License-Identifier: MPL-2.0

package nxplugin

import (
	"path/filepath"
	"slices"

	"github.com/ethantkoenig/nx/pkg/fspath"
	"github.com/ethantkoenig/nx/pkg/pathalias"
	"github.com/ethantkoenig/nx/pkg/types"
	"github.com/ethantkoenig/nx/pkg/workspace"
)

// PackageExecutors are the executors whose options.main names a local
// plugin's entry file.
var PackageExecutors = []string{"@nrwl/js:tsc", "@nrwl/js:swc", "@nrwl/node:package"}

// ResolveLocalPlugin resolves identifier to the workspace project that owns
// its path alias. It returns nil, nil when identifier is not a path alias.
//
// Results, including "not a local plugin", are cached per identifier for the
// lifetime of the Resolver; root does not take part in the cache key. An empty
// root means the resolver's workspace root.
func (r *Resolver) ResolveLocalPlugin(identifier, root string) (*LocalPluginRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if root == "" {
		root = r.root
	}
	return r.resolveLocalPlugin(identifier, root)
}

// resolveLocalPlugin is ResolveLocalPlugin with r.mu held.
func (r *Resolver) resolveLocalPlugin(identifier, root string) (*LocalPluginRef, error) {
	if ref, ok := r.localPlugins[identifier]; ok {
		r.logger.Debug("local plugin cache hit", "identifier", identifier)
		return ref, nil
	}

	ref, err := r.lookupLocalPlugin(identifier, root)
	if err != nil {
		return nil, err
	}
	r.localPlugins[identifier] = ref
	return ref, nil
}

func (r *Resolver) lookupLocalPlugin(identifier, root string) (*LocalPluginRef, error) {
	ws, err := r.reader.Read(root, workspace.ReadOptions{IgnorePluginInference: true})
	if err != nil {
		return nil, err
	}

	name, err := r.findProjectForImportPath(identifier, ws, root)
	if err != nil {
		return nil, err
	}
	if name == "" {
		r.logger.Debug("identifier is not a path alias", "identifier", identifier)
		return nil, nil
	}

	r.registerTranspiler()

	project, _ := ws.Project(name)
	return &LocalPluginRef{
		Path:          filepath.Join(root, filepath.FromSlash(project.Root)),
		ProjectName:   name,
		ProjectConfig: project,
	}, nil
}

// findProjectForImportPath returns the name of the first project, in
// declaration order, whose absolute root is a string prefix of any of the
// alias's target paths. It returns "" when identifier is not an alias.
func (r *Resolver) findProjectForImportPath(identifier string, ws *workspace.Configuration, root string) (string, error) {
	aliases, err := r.aliases.Read(root)
	if err != nil {
		return "", err
	}
	targets, ok := aliases.Lookup(identifier)
	if !ok {
		return "", nil
	}

	base := types.FilesystemPath(root)
	candidates := make([]string, 0, len(targets))
	for _, t := range targets {
		candidates = append(candidates, string(fspath.Resolve(base, filepath.FromSlash(t))))
	}

	var roots workspace.OrderedMap[string]
	for name, project := range ws.Projects.All() {
		roots.Set(string(fspath.Resolve(base, filepath.FromSlash(project.Root))), name)
	}

	for projectRoot, name := range roots.All() {
		for _, c := range candidates {
			if fspath.HasPrefix(types.FilesystemPath(c), types.FilesystemPath(projectRoot)) {
				return name, nil
			}
		}
	}

	projectRoots := make([]ProjectRoot, 0, roots.Len())
	for projectRoot, name := range roots.All() {
		projectRoots = append(projectRoots, ProjectRoot{Root: projectRoot, Name: name})
	}
	if r.verbose {
		r.logger.Warn("unable to find local plugin",
			"identifier", identifier, "candidates", candidates, "projectRoots", projectRoots)
	}
	return "", &UnresolvableLocalIdentifierError{
		Identifier:     identifier,
		CandidatePaths: candidates,
		ProjectRoots:   projectRoots,
	}
}

// registerTranspiler runs the one-time transpiler registration. r.mu must be held.
func (r *Resolver) registerTranspiler() {
	if r.transpilerRegistered {
		return
	}
	r.transpiler.Register(r.root, pathalias.BaseConfigFile)
	r.transpilerRegistered = true
	r.logger.Debug("registered transpiler", "root", r.root, "config", pathalias.BaseConfigFile)
}

// PluginMainFromProject returns the entry file a local plugin project builds:
// options.main of the first target run by one of PackageExecutors, else
// options.main of the build target.
func PluginMainFromProject(project workspace.ProjectConfiguration) (string, bool) {
	for _, target := range project.Targets.All() {
		if !slices.Contains(PackageExecutors, target.Executor) {
			continue
		}
		if target.Options != nil {
			return target.MainOption()
		}
		break
	}
	if build, ok := project.Targets.Get("build"); ok {
		return build.MainOption()
	}
	return "", false
}
