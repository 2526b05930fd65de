// SPDX-License-Identifier: MPL-2.0

// Package maven infers targets for Maven projects from their pom.xml.
package maven

import (
	"encoding/xml"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/ethantkoenig/nx/pkg/nxplugin"
	"github.com/ethantkoenig/nx/pkg/workspace"
)

// PackageName is the package the plugin is registered under.
const PackageName = "@nx-maven/core"

// Patterns are the project files the plugin recognizes.
var Patterns = []string{"pom.xml"}

type (
	// Plugin infers Maven lifecycle targets.
	Plugin struct {
		root string
	}

	pom struct {
		XMLName    xml.Name `xml:"project"`
		GroupID    string   `xml:"groupId"`
		ArtifactID string   `xml:"artifactId"`
		Packaging  string   `xml:"packaging"`
		Modules    []string `xml:"modules>module"`
	}
)

// New creates a Plugin that reads pom.xml files relative to the workspace root.
func New(root string) *Plugin {
	return &Plugin{root: root}
}

// Register adds the plugin to reg.
func Register(reg *nxplugin.Registry, root string) error {
	return reg.Register(New(root))
}

// PackageName implements nxplugin.Implementation.
func (p *Plugin) PackageName() string { return PackageName }

// ProjectFilePatterns implements nxplugin.ProjectFileMatcher.
func (p *Plugin) ProjectFilePatterns() []string { return Patterns }

// InferTargets implements nxplugin.TargetInferrer.
func (p *Plugin) InferTargets(file string) (workspace.Targets, error) {
	data, err := os.ReadFile(filepath.Join(p.root, filepath.FromSlash(file)))
	if err != nil {
		return workspace.Targets{}, err
	}
	var project pom
	if err := xml.Unmarshal(data, &project); err != nil {
		return workspace.Targets{}, fmt.Errorf("parsing %s: %w", file, err)
	}
	if project.ArtifactID == "" {
		return workspace.Targets{}, fmt.Errorf("%s: missing artifactId", file)
	}

	// The command runs from the pom's directory, so -f names the pom relative to it.
	phase := func(goal string) workspace.TargetConfiguration {
		return workspace.TargetConfiguration{
			Executor: "nx:run-commands",
			Options: map[string]any{
				"command": fmt.Sprintf("mvn -f %s %s", path.Base(file), goal),
				"cwd":     path.Dir(file),
			},
		}
	}

	var targets workspace.Targets
	build := phase("package")
	build.Outputs = []string{path.Join(path.Dir(file), "target")}
	if project.Packaging == "pom" {
		// Aggregator poms build their modules; there is no artifact of their own.
		build = phase("install")
		build.Options["modules"] = project.Modules
	}
	targets.Set("build", build)

	test := phase("test")
	test.DependsOn = []any{"build"}
	targets.Set("test", test)
	return targets, nil
}
