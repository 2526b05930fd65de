// SPDX-License-Identifier: MPL-2.0

package nxplugin

import (
	"context"

	"github.com/ethantkoenig/nx/pkg/workspace"
)

type (
	// Implementation is the code behind a plugin.
	Implementation interface {
		// PackageName is the package the implementation is registered under,
		// e.g. "@nx-dotnet/core".
		PackageName() string
	}

	// ProjectFileMatcher is implemented by plugins that recognize
	// non-standard project files, e.g. ["*.csproj", "pom.xml"].
	ProjectFileMatcher interface {
		ProjectFilePatterns() []string
	}

	// TargetInferrer is implemented by plugins that derive targets from a
	// matched project file. file is relative to the workspace root.
	TargetInferrer interface {
		InferTargets(file string) (workspace.Targets, error)
	}

	// GraphProcessor is implemented by plugins that rewrite the project graph.
	GraphProcessor interface {
		ProcessProjectGraph(ctx context.Context, graph *workspace.ProjectGraph) (*workspace.ProjectGraph, error)
	}

	// TargetInferenceFunc is the captured TargetInferrer capability.
	TargetInferenceFunc func(file string) (workspace.Targets, error)

	// GraphProcessorFunc is the captured GraphProcessor capability.
	GraphProcessorFunc func(ctx context.Context, graph *workspace.ProjectGraph) (*workspace.ProjectGraph, error)

	// Plugin is a loaded plugin. Capability fields are nil when the
	// implementation does not provide them.
	Plugin struct {
		// Name is assigned by the loader: the package manifest name or the
		// final segment of Path.
		Name string
		// Identifier is the identifier the plugin was requested by.
		Identifier string
		// Path is the resolved location the implementation was loaded from.
		Path string

		FilePatterns []string
		InferTargets TargetInferenceFunc
		ProcessGraph GraphProcessorFunc

		Impl Implementation
	}
)

// NewPlugin captures the capabilities of impl into a descriptor.
func NewPlugin(impl Implementation) *Plugin {
	p := &Plugin{Impl: impl}
	if m, ok := impl.(ProjectFileMatcher); ok {
		p.FilePatterns = m.ProjectFilePatterns()
	}
	if ti, ok := impl.(TargetInferrer); ok {
		p.InferTargets = ti.InferTargets
	}
	if gp, ok := impl.(GraphProcessor); ok {
		p.ProcessGraph = gp.ProcessProjectGraph
	}
	return p
}

// InfersTargets reports whether the plugin takes part in target merging.
func (p *Plugin) InfersTargets() bool {
	return len(p.FilePatterns) > 0 && p.InferTargets != nil
}

// Capabilities lists the optional capabilities the plugin provides.
func (p *Plugin) Capabilities() []string {
	var caps []string
	if len(p.FilePatterns) > 0 {
		caps = append(caps, "projectFilePatterns")
	}
	if p.InferTargets != nil {
		caps = append(caps, "inferTargets")
	}
	if p.ProcessGraph != nil {
		caps = append(caps, "processProjectGraph")
	}
	return caps
}
