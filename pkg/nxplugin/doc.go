// SPDX-License-Identifier: MPL-2.0

// Package nxplugin resolves plugin identifiers to loaded plugin
// implementations and merges the targets plugins infer with the targets a
// project declares.
//
// An identifier is first looked up as an installed package. When no such
// package exists, it is treated as a workspace path alias and resolved to
// the local project that owns the alias target. All lookups are cached on the
// Resolver, which is constructed once per process and threaded explicitly:
//
//	r := nxplugin.NewResolver(root,
//	    nxplugin.WithLoader(nxplugin.NewRegistryLoader(registry, nil)),
//	    nxplugin.WithLogger(logger),
//	)
//	plugins, err := r.LoadPlugins(ws.Plugins, nil)
//	targets, err := r.MergeTargets(project.Root, project.Targets, plugins)
//
// Plugin implementations are statically-typed Go values registered in a
// Registry. Their optional capabilities (project file patterns, target
// inference, project graph processing) are expressed as optional interfaces
// and captured into a Plugin descriptor at load time.
package nxplugin
