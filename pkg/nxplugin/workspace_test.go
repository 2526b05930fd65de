// SPDX-License-Identifier: MPL-2.0

package nxplugin

import (
	"context"
	"slices"
	"testing"

	"github.com/ethantkoenig/nx/internal/testutil"
	"github.com/ethantkoenig/nx/pkg/workspace"
)

func (graphImpl) ProcessProjectGraph(_ context.Context, g *workspace.ProjectGraph) (*workspace.ProjectGraph, error) {
	return g, nil
}

func TestReadWorkspaceInfersTargets(t *testing.T) {
	t.Parallel()

	ws := testutil.NewWorkspace(t).
		NxJSON("@nx-dotnet/core").
		PackageJSON("node_modules/@nx-dotnet/core", "@nx-dotnet/core").
		File("node_modules/@nx-dotnet/core/index.js", "").
		ProjectJSON("apps/api", `{"name": "api", "targets": {"serve": {"executor": "explicit"}, "build": {"executor": "explicit"}}}`).
		File("apps/api/Api.csproj", "").
		ProjectJSON("libs/util", `{"name": "util"}`)

	reg := NewRegistry()
	impl := &inferringImpl{
		name:     "@nx-dotnet/core",
		patterns: []string{"*.csproj"},
		infer: func(file string) (workspace.Targets, error) {
			return targetsOf("build", "@nx-dotnet/core:build", "test", "@nx-dotnet/core:test"), nil
		},
	}
	if err := reg.Register(impl); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	r := NewResolver(ws.Root, WithLoader(NewRegistryLoader(reg, nil)))
	cfg, err := r.ReadWorkspace()
	if err != nil {
		t.Fatalf("ReadWorkspace() error = %v", err)
	}

	api, _ := cfg.Project("api")
	if got, want := api.Targets.Names(), []string{"build", "test", "serve"}; !slices.Equal(got, want) {
		t.Errorf("api targets = %v, want %v", got, want)
	}
	if build, _ := api.Targets.Get("build"); build.Executor != "explicit" {
		t.Errorf("api build = %q, want explicit", build.Executor)
	}
	util, _ := cfg.Project("util")
	if util.Targets.Len() != 0 {
		t.Errorf("util targets = %v, want none", util.Targets.Names())
	}
}

func TestReadWorkspaceWithoutPlugins(t *testing.T) {
	t.Parallel()

	ws := testutil.NewWorkspace(t).ProjectJSON("libs/a", `{"name": "a", "targets": {"build": {}}}`)

	cfg, err := NewResolver(ws.Root).ReadWorkspace()
	if err != nil {
		t.Fatalf("ReadWorkspace() error = %v", err)
	}
	a, _ := cfg.Project("a")
	if got := a.Targets.Names(); !slices.Equal(got, []string{"build"}) {
		t.Errorf("targets = %v", got)
	}
}

func TestNewPluginCapabilities(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		impl Implementation
		want []string
	}{
		{"bare", basicImpl{name: "bare"}, nil},
		{"inferring", &inferringImpl{name: "i", patterns: []string{"*.csproj"}, infer: func(string) (workspace.Targets, error) {
			return workspace.Targets{}, nil
		}}, []string{"projectFilePatterns", "inferTargets"}},
		{"graph", graphImpl{basicImpl{name: "g"}}, []string{"processProjectGraph"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := NewPlugin(tt.impl)
			if got := p.Capabilities(); !slices.Equal(got, tt.want) {
				t.Errorf("Capabilities() = %v, want %v", got, tt.want)
			}
			if p.InfersTargets() != (len(tt.want) == 2) {
				t.Errorf("InfersTargets() = %v", p.InfersTargets())
			}
		})
	}
}
