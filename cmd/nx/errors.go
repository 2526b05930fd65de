// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/ethantkoenig/nx/internal/config"
	"github.com/ethantkoenig/nx/internal/issue"
	"github.com/ethantkoenig/nx/pkg/nxplugin"
	"github.com/ethantkoenig/nx/pkg/pathalias"
	"github.com/ethantkoenig/nx/pkg/types"
	"github.com/ethantkoenig/nx/pkg/workspace"

	"github.com/spf13/cobra"
)

// classification maps a failure to its catalog entry, exit code and hint.
type classification struct {
	issueID    issue.Id
	code       types.ExitCode
	suggestion string
}

// classifyError inspects err for the sentinels of the resolution pipeline.
// Unknown errors get no catalog entry and ExitFailure.
func classifyError(err error) classification {
	switch {
	case errors.Is(err, pathalias.ErrConfigurationMissing):
		return classification{issue.AliasConfigMissingId, types.ExitConfigurationInvalid,
			"Create tsconfig.base.json with compilerOptions.paths at the workspace root"}
	case errors.Is(err, nxplugin.ErrUnresolvableLocalIdentifier):
		return classification{issue.LocalPluginUnresolvableId, types.ExitResolutionFailed,
			"Point the path alias into a directory owned by a workspace project"}
	case errors.Is(err, nxplugin.ErrPluginNotFound):
		return classification{issue.PluginNotFoundId, types.ExitResolutionFailed,
			"Install the plugin package or declare a path alias for it"}
	case errors.Is(err, nxplugin.ErrImplementationNotFound):
		return classification{issue.PluginLoadFailedId, types.ExitResolutionFailed,
			"Check the plugin's package.json name against 'nx plugins list --builtin'"}
	case errors.Is(err, nxplugin.ErrTargetInference):
		return classification{issue.TargetInferenceFailedId, types.ExitFailure,
			"Fix the project file or declare the targets in project.json"}
	case errors.Is(err, workspace.ErrDuplicateProject), errors.Is(err, workspace.ErrInvalidProjectEntry),
		errors.Is(err, types.ErrInvalidPluginIdentifier):
		return classification{issue.WorkspaceConfigInvalidId, types.ExitConfigurationInvalid,
			"Check nx.json, workspace.json and project.json files"}
	case errors.Is(err, ErrUnknownProject):
		return classification{issue.WorkspaceConfigInvalidId, types.ExitFailure,
			"Run 'nx targets' with a project name declared in workspace.json or a project.json file"}
	case errors.Is(err, config.ErrInvalidLoadOptions), errors.Is(err, config.ErrInvalidConfig):
		return classification{issue.ConfigLoadFailedId, types.ExitConfigurationInvalid, ""}
	}

	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.IssueId == issue.ConfigLoadFailedId {
		return classification{issue.ConfigLoadFailedId, types.ExitConfigurationInvalid, ""}
	}
	return classification{code: types.ExitFailure}
}

// fail renders err to stderr as an actionable error and returns the ExitError
// carrying its exit code. Cobra's own error and usage output is silenced.
func (a *App) fail(cmd *cobra.Command, operation, resource string, err error) error {
	c := classifyError(err)

	ae := issue.NewErrorContext().
		WithOperation(operation).
		WithResource(resource).
		WithIssue(c.issueID).
		Wrap(err)
	if c.suggestion != "" {
		ae = ae.WithSuggestion(c.suggestion)
	}
	built := ae.Build()

	msg := built.Format(a.flags.verbose)
	var unresolvable *nxplugin.UnresolvableLocalIdentifierError
	if a.flags.verbose && errors.As(err, &unresolvable) {
		msg += "\n\n" + unresolvable.Details()
	}
	fmt.Fprintln(a.stderr, ErrorStyle.Render("Error: ")+msg)

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return &ExitError{Code: c.code, Err: built}
}
