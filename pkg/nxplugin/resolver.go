// SPDX-License-Identifier: MPL-2.0

package nxplugin

import (
	"io"
	"path/filepath"
	"sync"

	"github.com/ethantkoenig/nx/pkg/fileglob"
	"github.com/ethantkoenig/nx/pkg/modresolve"
	"github.com/ethantkoenig/nx/pkg/pathalias"
	"github.com/ethantkoenig/nx/pkg/workspace"

	"github.com/charmbracelet/log"
)

type (
	// Resolver owns every plugin resolution cache of a process.
	//
	// All cache-touching methods serialize on one mutex, so concurrent
	// callers never re-enter local resolution for the same identifier and
	// never observe a partially populated cache.
	Resolver struct {
		root        string
		searchPaths []string
		verbose     bool
		logger      *log.Logger

		store      workspace.Store
		searcher   fileglob.Searcher
		modules    modresolve.Resolver
		loader     Loader
		transpiler Transpiler
		aliases    *pathalias.Reader
		reader     *workspace.Reader

		mu                   sync.Mutex
		pluginsLoaded        bool
		plugins              []*Plugin
		pluginIDs            []string
		localPlugins         map[string]*LocalPluginRef
		transpilerRegistered bool
	}

	// Option configures a Resolver.
	Option func(*Resolver)

	// LocalPluginRef is a plugin provided by a project of the workspace.
	LocalPluginRef struct {
		// Path is the absolute root directory of the owning project.
		Path string
		// ProjectName is the name of the owning project.
		ProjectName string
		// ProjectConfig is the owning project's configuration.
		ProjectConfig workspace.ProjectConfiguration
	}
)

// WithLogger sets the logger. The default discards all output.
func WithLogger(logger *log.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithVerbose enables diagnostic output for unresolvable local identifiers.
func WithVerbose(verbose bool) Option {
	return func(r *Resolver) {
		r.verbose = verbose
	}
}

// WithSearchPaths sets the default search paths for installed packages.
// The default is the workspace root.
func WithSearchPaths(paths ...string) Option {
	return func(r *Resolver) {
		r.searchPaths = paths
	}
}

// WithStore sets the Store used to read workspace files.
func WithStore(store workspace.Store) Option {
	return func(r *Resolver) {
		r.store = store
	}
}

// WithSearcher sets the glob Searcher used for project file matching.
func WithSearcher(s fileglob.Searcher) Option {
	return func(r *Resolver) {
		r.searcher = s
	}
}

// WithModuleResolver sets the installed-package resolver.
func WithModuleResolver(m modresolve.Resolver) Option {
	return func(r *Resolver) {
		r.modules = m
	}
}

// WithLoader sets the implementation loader.
func WithLoader(l Loader) Option {
	return func(r *Resolver) {
		r.loader = l
	}
}

// WithTranspiler sets the transpiler registered before the first local plugin is used.
func WithTranspiler(t Transpiler) Option {
	return func(r *Resolver) {
		r.transpiler = t
	}
}

// NewResolver creates a Resolver for the workspace at root.
func NewResolver(root string, opts ...Option) *Resolver {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	r := &Resolver{
		root:         root,
		localPlugins: make(map[string]*LocalPluginRef),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}
	if len(r.searchPaths) == 0 {
		r.searchPaths = []string{root}
	}
	if r.store == nil {
		r.store = workspace.NewFileStore()
	}
	if r.searcher == nil {
		r.searcher = fileglob.New()
	}
	if r.modules == nil {
		r.modules = modresolve.NewNodeResolver(r.store)
	}
	if r.loader == nil {
		r.loader = NewRegistryLoader(NewRegistry(), r.store)
	}
	if r.transpiler == nil {
		r.transpiler = NoopTranspiler
	}
	if r.aliases == nil {
		r.aliases = pathalias.NewReader(r.store)
	}
	if r.reader == nil {
		r.reader = workspace.NewReader(workspace.WithStore(r.store), workspace.WithSearcher(r.searcher))
	}
	return r
}

// Root returns the workspace root.
func (r *Resolver) Root() string { return r.root }

// Store returns the Store the resolver reads workspace files with.
func (r *Resolver) Store() workspace.Store { return r.store }
