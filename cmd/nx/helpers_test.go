// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/ethantkoenig/nx/internal/config"
	"github.com/ethantkoenig/nx/internal/testutil"
)

type staticConfig struct {
	cfg config.Config
}

func (s staticConfig) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	cfg := s.cfg
	return &cfg, nil
}

// runCLI executes the command tree with default configuration and returns
// what it wrote to stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return runCLIWith(t, *config.DefaultConfig(), args...)
}

func runCLIWith(t *testing.T, cfg config.Config, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{
		Config: staticConfig{cfg: cfg},
		Stdout: &stdout,
		Stderr: &stderr,
	})
	root := NewRootCommand(app)
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// dotnetWorkspace has the dotnet plugin installed and declared, and an "api"
// project with a web csproj plus two explicit targets.
func dotnetWorkspace(t *testing.T) *testutil.Workspace {
	t.Helper()
	return testutil.NewWorkspace(t).
		NxJSON("@nx-dotnet/core").
		PackageJSON("node_modules/@nx-dotnet/core", "@nx-dotnet/core").
		File("node_modules/@nx-dotnet/core/index.js", "").
		ProjectJSON("apps/api", `{
  "name": "api",
  "targets": {
    "build": {"executor": "explicit"},
    "deploy": {"command": "echo deploy"}
  }
}`).
		File("apps/api/Api.csproj", `<Project Sdk="Microsoft.NET.Sdk.Web"></Project>`)
}
