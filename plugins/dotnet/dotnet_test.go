// SPDX-License-Identifier: MPL-2.0

package dotnet

import (
	"slices"
	"testing"

	"github.com/ethantkoenig/nx/internal/testutil"
	"github.com/ethantkoenig/nx/pkg/fileglob"
	"github.com/ethantkoenig/nx/pkg/nxplugin"
	"github.com/ethantkoenig/nx/pkg/workspace"
)

const webProject = `<Project Sdk="Microsoft.NET.Sdk.Web">
  <PropertyGroup><TargetFramework>net8.0</TargetFramework></PropertyGroup>
</Project>`

const testProject = `<Project Sdk="Microsoft.NET.Sdk">
  <ItemGroup>
    <PackageReference Include="Microsoft.NET.Test.Sdk" Version="17.8.0" />
    <PackageReference Include="xunit" Version="2.6.1" />
  </ItemGroup>
</Project>`

func TestInferTargets(t *testing.T) {
	t.Parallel()

	ws := testutil.NewWorkspace(t).
		File("apps/api/Api.csproj", webProject).
		File("apps/api-tests/Verify.csproj", testProject).
		File("libs/core/Core.fsproj", `<Project Sdk="Microsoft.NET.Sdk" />`).
		File("libs/broken/Broken.csproj", `<Project`)

	p := New(ws.Root)

	tests := []struct {
		file string
		want []string
	}{
		{"apps/api/Api.csproj", []string{"build", "serve", "lint"}},
		{"apps/api-tests/Verify.csproj", []string{"build", "test", "lint"}},
		{"libs/core/Core.fsproj", []string{"build", "lint"}},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			t.Parallel()

			targets, err := p.InferTargets(tt.file)
			if err != nil {
				t.Fatalf("InferTargets() error = %v", err)
			}
			if got := targets.Names(); !slices.Equal(got, tt.want) {
				t.Errorf("targets = %v, want %v", got, tt.want)
			}
			build, _ := targets.Get("build")
			if build.Options["project"] != tt.file {
				t.Errorf("build project option = %v, want %s", build.Options["project"], tt.file)
			}
		})
	}

	if _, err := p.InferTargets("libs/broken/Broken.csproj"); err == nil {
		t.Error("expected parse error for malformed project file")
	}
	if _, err := p.InferTargets("libs/missing/Missing.csproj"); err == nil {
		t.Error("expected error for missing project file")
	}
}

func TestMergeWithExplicitTargets(t *testing.T) {
	t.Parallel()

	ws := testutil.NewWorkspace(t).
		File("apps/api/Api.csproj", webProject).
		File("apps/api/README.md", "docs")

	reg := nxplugin.NewRegistry()
	if err := Register(reg, ws.Root); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	impl, ok := reg.Get(PackageName)
	if !ok {
		t.Fatal("plugin not registered")
	}
	plugin := nxplugin.NewPlugin(impl)
	plugin.Name = PackageName

	var explicit workspace.Targets
	explicit.Set("serve", workspace.TargetConfiguration{Executor: "nx:run-commands", Command: "dotnet watch"})

	merged, err := nxplugin.MergeTargets(fileglob.New(), ws.Root, "apps/api", explicit, []*nxplugin.Plugin{plugin})
	if err != nil {
		t.Fatalf("MergeTargets() error = %v", err)
	}
	serve, _ := merged.Get("serve")
	if serve.Command != "dotnet watch" {
		t.Errorf("serve = %+v, want the explicit target", serve)
	}
	if got := merged.Names(); !slices.Equal(got, []string{"build", "serve", "lint"}) {
		t.Errorf("targets = %v", got)
	}
}
