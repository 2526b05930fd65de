// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/ethantkoenig/nx/internal/config"
	"github.com/ethantkoenig/nx/pkg/workspace"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ErrUnknownProject is the sentinel error wrapped by UnknownProjectError.
var ErrUnknownProject = errors.New("unknown project")

// UnknownProjectError is returned when `nx targets` names a project the workspace lacks.
type UnknownProjectError struct {
	Name  string
	Known []string
}

// Error implements the error interface.
func (e *UnknownProjectError) Error() string {
	return fmt.Sprintf("project %q not found (known: %v)", e.Name, e.Known)
}

// Unwrap returns ErrUnknownProject for errors.Is() compatibility.
func (e *UnknownProjectError) Unwrap() error { return ErrUnknownProject }

// newTargetsCommand creates the `nx targets` command.
func newTargetsCommand(app *App) *cobra.Command {
	var format string

	targetsCmd := &cobra.Command{
		Use:   "targets <project>",
		Short: "Print a project's targets merged with plugin-inferred targets",
		Long: `Print a project's targets.

The plugins declared in nx.json are loaded and every plugin that declares
project file patterns and infers targets is run against the matching files
under the project root. Explicitly configured targets win over inferred ones.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.printTargets(cmd, args[0], config.OutputFormat(format))
		},
	}
	targetsCmd.Flags().StringVarP(&format, "format", "f", "", "output format: json, yaml or toml (default from config)")

	return targetsCmd
}

func (a *App) printTargets(cmd *cobra.Command, projectName string, format config.OutputFormat) error {
	s, err := a.newSession(cmd.Context())
	if err != nil {
		return a.fail(cmd, "load configuration", a.flags.configFile, err)
	}
	if format == "" {
		format = s.cfg.OutputFormat
	}
	if valid, errs := format.IsValid(); !valid {
		return a.fail(cmd, "print targets", projectName, errs[0])
	}

	ws, err := s.resolver.ReadWorkspace()
	if err != nil {
		return a.fail(cmd, "read workspace", s.resolver.Root(), err)
	}
	project, ok := ws.Project(projectName)
	if !ok {
		return a.fail(cmd, "print targets", projectName, &UnknownProjectError{Name: projectName, Known: ws.Projects.Names()})
	}

	if err := encodeTargets(a.stdout, project.Targets, format); err != nil {
		return a.fail(cmd, "encode targets", string(format), err)
	}
	return nil
}

// encodeTargets writes targets in the requested format. JSON and YAML keep
// declaration order; TOML tables come out sorted by go-toml.
func encodeTargets(w io.Writer, targets workspace.Targets, format config.OutputFormat) error {
	switch format {
	case config.OutputFormatJSON:
		data, err := json.MarshalIndent(targets, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case config.OutputFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(targets); err != nil {
			return err
		}
		return enc.Close()
	case config.OutputFormatTOML:
		// go-toml has no ordered-map hook; round-trip through plain maps.
		data, err := json.Marshal(targets)
		if err != nil {
			return err
		}
		var plain map[string]any
		if err := json.Unmarshal(data, &plain); err != nil {
			return err
		}
		return toml.NewEncoder(w).Encode(plain)
	default:
		return &config.InvalidOutputFormatError{Value: format}
	}
}
