// SPDX-License-Identifier: MPL-2.0

package workspace

type (
	// Targets maps target names to their configuration in declaration order.
	Targets = OrderedMap[TargetConfiguration]

	// Projects maps project names to their configuration in declaration order.
	Projects = OrderedMap[ProjectConfiguration]

	// TargetConfiguration describes one runnable target of a project.
	TargetConfiguration struct {
		// Executor names the builder that runs the target, e.g. "@nrwl/js:tsc".
		Executor string `json:"executor,omitempty" yaml:"executor,omitempty"`
		// Command is the shorthand for a run-commands target.
		Command string `json:"command,omitempty" yaml:"command,omitempty"`
		// Options are passed to the executor. "main" is consulted when
		// locating a local plugin's entry file.
		Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
		// Outputs lists the paths the target produces.
		Outputs []string `json:"outputs,omitempty" yaml:"outputs,omitempty"`
		// DependsOn lists targets that must run first. Entries are either
		// target names or objects.
		DependsOn []any `json:"dependsOn,omitempty" yaml:"dependsOn,omitempty"`
		// Configurations are named option overlays.
		Configurations map[string]map[string]any `json:"configurations,omitempty" yaml:"configurations,omitempty"`
	}

	// ProjectConfiguration describes one project of the workspace.
	ProjectConfiguration struct {
		Name        string   `json:"name,omitempty" yaml:"name,omitempty"`
		Root        string   `json:"root" yaml:"root"`
		SourceRoot  string   `json:"sourceRoot,omitempty" yaml:"sourceRoot,omitempty"`
		ProjectType string   `json:"projectType,omitempty" yaml:"projectType,omitempty"`
		Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
		Targets     Targets  `json:"targets,omitzero" yaml:"targets,omitempty"`
	}

	// Configuration is the fully read workspace.
	Configuration struct {
		Version  int      `json:"version,omitempty" yaml:"version,omitempty"`
		Projects Projects `json:"projects" yaml:"projects"`
		// Plugins are the plugin identifiers declared in nx.json.
		Plugins []string `json:"plugins,omitempty" yaml:"plugins,omitempty"`
	}

	// NxJSON is the subset of nx.json the reader consumes.
	NxJSON struct {
		NpmScope string   `json:"npmScope,omitempty"`
		Plugins  []string `json:"plugins,omitempty"`
	}

	// PackageManifest is the subset of package.json the reader consumes.
	PackageManifest struct {
		Name    string `json:"name"`
		Version string `json:"version,omitempty"`
		Main    string `json:"main,omitempty"`
	}

	// ProjectGraphNode is a project as seen by the project graph.
	ProjectGraphNode struct {
		Name string               `json:"name"`
		Type string               `json:"type"`
		Data ProjectConfiguration `json:"data"`
	}

	// ProjectGraphDependency is a directed edge between two projects.
	ProjectGraphDependency struct {
		Source string `json:"source"`
		Target string `json:"target"`
		Type   string `json:"type"`
	}

	// ProjectGraph is the dependency graph handed to graph-processing plugins.
	ProjectGraph struct {
		Nodes        map[string]ProjectGraphNode         `json:"nodes"`
		Dependencies map[string][]ProjectGraphDependency `json:"dependencies"`
	}
)

// MainOption returns the string value of options.main, if any.
func (t TargetConfiguration) MainOption() (string, bool) {
	main, ok := t.Options["main"].(string)
	if !ok || main == "" {
		return "", false
	}
	return main, true
}

// Project returns the project with the given name.
func (c *Configuration) Project(name string) (ProjectConfiguration, bool) {
	return c.Projects.Get(name)
}
