// SPDX-License-Identifier: MPL-2.0

// Package dotnet infers build, test, and serve targets for .NET projects.
package dotnet

import (
	"encoding/xml"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ethantkoenig/nx/pkg/nxplugin"
	"github.com/ethantkoenig/nx/pkg/workspace"
)

// PackageName is the package the plugin is registered under.
const PackageName = "@nx-dotnet/core"

const webSDK = "Microsoft.NET.Sdk.Web"

// Patterns are the project files the plugin recognizes.
var Patterns = []string{"*.csproj", "*.fsproj", "*.vbproj"}

type (
	// Plugin infers targets from .NET project files.
	Plugin struct {
		root string
	}

	projectFile struct {
		XMLName    xml.Name `xml:"Project"`
		SDK        string   `xml:"Sdk,attr"`
		References []struct {
			Include string `xml:"Include,attr"`
		} `xml:"ItemGroup>PackageReference"`
	}
)

// New creates a Plugin that reads project files relative to the workspace root.
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
	var proj projectFile
	if err := xml.Unmarshal(data, &proj); err != nil {
		return workspace.Targets{}, fmt.Errorf("parsing %s: %w", file, err)
	}

	dir := path.Dir(file)
	options := func(extra map[string]any) map[string]any {
		opts := map[string]any{"project": file}
		for k, v := range extra {
			opts[k] = v
		}
		return opts
	}

	var targets workspace.Targets
	targets.Set("build", workspace.TargetConfiguration{
		Executor: PackageName + ":build",
		Options:  options(map[string]any{"configuration": "Debug"}),
		Outputs:  []string{path.Join("dist", dir)},
		Configurations: map[string]map[string]any{
			"production": {"configuration": "Release"},
		},
	})
	if proj.isTestProject(file) {
		targets.Set("test", workspace.TargetConfiguration{
			Executor:  PackageName + ":test",
			Options:   options(nil),
			DependsOn: []any{"build"},
		})
	}
	if proj.SDK == webSDK {
		targets.Set("serve", workspace.TargetConfiguration{
			Executor: PackageName + ":serve",
			Options:  options(nil),
		})
	}
	targets.Set("lint", workspace.TargetConfiguration{
		Executor: PackageName + ":format",
		Options:  options(nil),
	})
	return targets, nil
}

func (p projectFile) isTestProject(file string) bool {
	base := strings.ToLower(path.Base(file))
	if strings.Contains(base, ".test") || strings.Contains(base, "tests.") {
		return true
	}
	for _, ref := range p.References {
		if ref.Include == "Microsoft.NET.Test.Sdk" {
			return true
		}
	}
	return false
}
