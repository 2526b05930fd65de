// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nx",
		Short: "Resolve workspace plugins and their inferred targets",
		Long: TitleStyle.Render("nx") + SubtitleStyle.Render(" - workspace plugin resolution") + `

nx loads the plugins declared in nx.json, either as installed packages or
as local plugins living in the workspace, and merges the targets they infer
with the targets configured for each project.

` + SubtitleStyle.Render("Examples:") + `
  nx plugins list              Load and list the declared plugins
  nx plugins resolve @acme/p   Locate a local plugin through tsconfig paths
  nx targets my-app -f yaml    Print the merged targets of a project
  nx issue plugin-not-found    Explain an error`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output and resolution diagnostics")
	rootCmd.PersistentFlags().StringVar(&app.flags.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/nx/config.cue)")
	rootCmd.PersistentFlags().StringVar(&app.flags.root, "root", "", "workspace root (default is the working directory)")

	rootCmd.AddCommand(newPluginsCommand(app))
	rootCmd.AddCommand(newTargetsCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newIssueCommand(app))

	return rootCmd
}

// Execute builds the CLI and runs it. This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})

	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// handleError leaves ExitErrors alone: their message was already rendered
// by App.fail. Everything else (flag and argument errors) goes to fang.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}
