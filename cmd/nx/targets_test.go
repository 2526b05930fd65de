// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/ethantkoenig/nx/internal/config"
	"github.com/ethantkoenig/nx/pkg/types"
	"github.com/ethantkoenig/nx/pkg/workspace"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

func TestTargetsCommand_JSON(t *testing.T) {
	t.Parallel()

	ws := dotnetWorkspace(t)
	stdout, stderr, err := runCLI(t, "--root", ws.Root, "targets", "api", "--format", "json")
	if err != nil {
		t.Fatalf("targets failed: %v\n%s", err, stderr)
	}

	var targets workspace.Targets
	if err := json.Unmarshal([]byte(stdout), &targets); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if got, want := targets.Names(), []string{"build", "serve", "lint", "deploy"}; !slices.Equal(got, want) {
		t.Errorf("targets = %v, want %v", got, want)
	}
	if build, _ := targets.Get("build"); build.Executor != "explicit" {
		t.Errorf("explicit build target should win, got %+v", build)
	}
	if serve, _ := targets.Get("serve"); serve.Options["project"] != "apps/api/Api.csproj" {
		t.Errorf("serve options = %v", serve.Options)
	}
}

func TestTargetsCommand_FormatFromConfig(t *testing.T) {
	t.Parallel()

	ws := dotnetWorkspace(t)
	cfg := *config.DefaultConfig()
	cfg.OutputFormat = config.OutputFormatYAML

	stdout, stderr, err := runCLIWith(t, cfg, "--root", ws.Root, "targets", "api")
	if err != nil {
		t.Fatalf("targets failed: %v\n%s", err, stderr)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, stdout)
	}
	mapping := doc.Content[0]
	var keys []string
	for i := 0; i < len(mapping.Content); i += 2 {
		keys = append(keys, mapping.Content[i].Value)
	}
	if want := []string{"build", "serve", "lint", "deploy"}; !slices.Equal(keys, want) {
		t.Errorf("YAML keys = %v, want %v", keys, want)
	}
}

func TestTargetsCommand_WorkspaceRootFromConfig(t *testing.T) {
	t.Parallel()

	ws := dotnetWorkspace(t)
	cfg := *config.DefaultConfig()
	cfg.WorkspaceRoot = types.FilesystemPath(ws.Root)
	cfg.OutputFormat = config.OutputFormatTOML

	stdout, stderr, err := runCLIWith(t, cfg, "targets", "api")
	if err != nil {
		t.Fatalf("targets failed: %v\n%s", err, stderr)
	}

	var doc map[string]any
	if err := toml.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("output is not TOML: %v\n%s", err, stdout)
	}
	for _, name := range []string{"build", "serve", "lint", "deploy"} {
		if _, ok := doc[name]; !ok {
			t.Errorf("TOML output is missing %q:\n%s", name, stdout)
		}
	}
}

func TestTargetsCommand_UnknownProject(t *testing.T) {
	t.Parallel()

	ws := dotnetWorkspace(t)
	_, stderr, err := runCLI(t, "--root", ws.Root, "targets", "nope")

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != types.ExitFailure {
		t.Fatalf("err = %v, want ExitError with code %d", err, types.ExitFailure)
	}
	if !strings.Contains(stderr, `project "nope" not found`) {
		t.Errorf("stderr = %q", stderr)
	}
	if !strings.Contains(stderr, "nx issue workspace-config-invalid") {
		t.Errorf("stderr should point at the issue guide: %q", stderr)
	}
}

func TestTargetsCommand_InvalidFormat(t *testing.T) {
	t.Parallel()

	ws := dotnetWorkspace(t)
	_, stderr, err := runCLI(t, "--root", ws.Root, "targets", "api", "-f", "xml")
	if err == nil {
		t.Fatal("expected an error for format xml")
	}
	if !strings.Contains(stderr, `invalid output format "xml"`) {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestTargetsCommand_PluginNotFound(t *testing.T) {
	t.Parallel()

	ws := dotnetWorkspace(t).
		NxJSON("@acme/missing").
		TSConfigPaths(map[string][]string{})

	_, stderr, err := runCLI(t, "--root", ws.Root, "targets", "api")

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != types.ExitResolutionFailed {
		t.Fatalf("err = %v, want ExitError with code %d", err, types.ExitResolutionFailed)
	}
	if !strings.Contains(stderr, "nx issue plugin-not-found") {
		t.Errorf("stderr should point at the issue guide: %q", stderr)
	}
}

func TestEncodeTargets(t *testing.T) {
	t.Parallel()

	var targets workspace.Targets
	targets.Set("test", workspace.TargetConfiguration{Executor: "x:test", DependsOn: []any{"build"}})
	targets.Set("build", workspace.TargetConfiguration{Executor: "x:build", Outputs: []string{"dist"}})

	tests := []struct {
		format   config.OutputFormat
		contains []string
	}{
		{config.OutputFormatJSON, []string{`"executor": "x:test"`, `"dependsOn": [`}},
		{config.OutputFormatYAML, []string{"test:\n  executor: x:test", "build:\n  executor: x:build"}},
		{config.OutputFormatTOML, []string{"[build]", "executor = 'x:build'", "[test]"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := encodeTargets(&buf, targets, tt.format); err != nil {
				t.Fatalf("encodeTargets() error: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}

	if err := encodeTargets(&bytes.Buffer{}, targets, "xml"); !errors.Is(err, config.ErrInvalidOutputFormat) {
		t.Errorf("encodeTargets(xml) = %v, want ErrInvalidOutputFormat", err)
	}
}
