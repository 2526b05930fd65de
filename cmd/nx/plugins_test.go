// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/ethantkoenig/nx/internal/testutil"
	"github.com/ethantkoenig/nx/pkg/types"
)

// toolsWorkspace declares a local plugin "@acme/tools" living in libs/tools.
func toolsWorkspace(t *testing.T) *testutil.Workspace {
	t.Helper()
	return testutil.NewWorkspace(t).
		NxJSON().
		TSConfigPaths(map[string][]string{
			"@acme/tools":  {"libs/tools/src/index.ts"},
			"@acme/orphan": {"tools/orphan/index.ts"},
		}).
		PackageJSON("libs/tools", "@acme/tools").
		ProjectJSON("libs/tools", `{
  "name": "tools",
  "targets": {
    "build": {"executor": "@nrwl/js:tsc", "options": {"main": "libs/tools/src/index.ts"}}
  }
}`)
}

func TestPluginsList(t *testing.T) {
	t.Parallel()

	ws := dotnetWorkspace(t)
	stdout, stderr, err := runCLI(t, "--root", ws.Root, "plugins", "list")
	if err != nil {
		t.Fatalf("plugins list failed: %v\n%s", err, stderr)
	}

	for _, want := range []string{
		"@nx-dotnet/core",
		"(index.js)",
		ws.Path("node_modules/@nx-dotnet/core/index.js"),
		"projectFilePatterns, inferTargets",
		"*.csproj *.fsproj *.vbproj",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestPluginsList_NoneDeclared(t *testing.T) {
	t.Parallel()

	ws := testutil.NewWorkspace(t).NxJSON()
	stdout, _, err := runCLI(t, "--root", ws.Root, "plugins", "list")
	if err != nil {
		t.Fatalf("plugins list failed: %v", err)
	}
	if !strings.Contains(stdout, "(none declared in nx.json)") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestPluginsList_Builtin(t *testing.T) {
	t.Parallel()

	ws := testutil.NewWorkspace(t)
	stdout, _, err := runCLI(t, "--root", ws.Root, "plugins", "list", "--builtin")
	if err != nil {
		t.Fatalf("plugins list --builtin failed: %v", err)
	}
	if !strings.Contains(stdout, "@nx-dotnet/core") || !strings.Contains(stdout, "@nx-maven/core") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestPluginsShow(t *testing.T) {
	t.Parallel()

	t.Run("installed", func(t *testing.T) {
		t.Parallel()

		ws := dotnetWorkspace(t)
		stdout, stderr, err := runCLI(t, "--root", ws.Root, "plugins", "show", "@nx-dotnet/core")
		if err != nil {
			t.Fatalf("plugins show failed: %v\n%s", err, stderr)
		}
		if !strings.Contains(stdout, ws.Path("node_modules/@nx-dotnet/core/package.json")) ||
			!strings.Contains(stdout, "0.0.1") {
			t.Errorf("stdout = %q", stdout)
		}
	})

	t.Run("local", func(t *testing.T) {
		t.Parallel()

		ws := toolsWorkspace(t)
		stdout, stderr, err := runCLI(t, "--root", ws.Root, "plugins", "show", "@acme/tools")
		if err != nil {
			t.Fatalf("plugins show failed: %v\n%s", err, stderr)
		}
		if !strings.Contains(stdout, ws.Path("libs/tools/package.json")) {
			t.Errorf("stdout = %q", stdout)
		}
	})
}

func TestPluginsResolve(t *testing.T) {
	t.Parallel()

	ws := toolsWorkspace(t)
	stdout, stderr, err := runCLI(t, "--root", ws.Root, "plugins", "resolve", "@acme/tools")
	if err != nil {
		t.Fatalf("plugins resolve failed: %v\n%s", err, stderr)
	}
	for _, want := range []string{ws.Path("libs/tools"), "project: tools", "root: libs/tools", "main: libs/tools/src/index.ts"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestPluginsResolve_NotLocal(t *testing.T) {
	t.Parallel()

	ws := toolsWorkspace(t)
	stdout, _, err := runCLI(t, "--root", ws.Root, "plugins", "resolve", "@other/thing")
	if err != nil {
		t.Fatalf("plugins resolve failed: %v", err)
	}
	if !strings.Contains(stdout, "not a local plugin") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestPluginsResolve_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		ws       func(t *testing.T) *testutil.Workspace
		code     types.ExitCode
		contains []string
	}{
		{
			name:     "alias configuration missing",
			args:     []string{"plugins", "resolve", "@acme/tools"},
			ws:       func(t *testing.T) *testutil.Workspace { return testutil.NewWorkspace(t).NxJSON() },
			code:     types.ExitConfigurationInvalid,
			contains: []string{"nx issue alias-config-missing", "tsconfig.base.json"},
		},
		{
			name:     "alias outside every project",
			args:     []string{"plugins", "resolve", "@acme/orphan"},
			ws:       toolsWorkspace,
			code:     types.ExitResolutionFailed,
			contains: []string{"unable to resolve local plugin with import path @acme/orphan", "nx issue local-plugin-unresolvable"},
		},
		{
			name: "verbose diagnostics",
			args: []string{"-v", "plugins", "resolve", "@acme/orphan"},
			ws:   toolsWorkspace,
			code: types.ExitResolutionFailed,
			contains: []string{
				"unable to find local plugin",
				"candidate paths:",
				"tools/orphan/index.ts",
				"Error chain:",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ws := tt.ws(t)
			_, stderr, err := runCLI(t, append([]string{"--root", ws.Root}, tt.args...)...)

			var exitErr *ExitError
			if !errors.As(err, &exitErr) {
				t.Fatalf("err = %v, want *ExitError", err)
			}
			if exitErr.Code != tt.code {
				t.Errorf("exit code = %d, want %d", exitErr.Code, tt.code)
			}
			for _, want := range tt.contains {
				if !strings.Contains(stderr, want) {
					t.Errorf("stderr missing %q:\n%s", want, stderr)
				}
			}
		})
	}
}
