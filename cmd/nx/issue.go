// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/ethantkoenig/nx/internal/issue"

	"github.com/spf13/cobra"
)

// newIssueCommand creates the `nx issue` command.
func newIssueCommand(app *App) *cobra.Command {
	var style string

	issueCmd := &cobra.Command{
		Use:   "issue [name]",
		Short: "Explain a known problem and how to fix it",
		Long: `Render the guidance for a known problem.

Errors reported by nx end with "Run 'nx issue <name>' for help" when a
guide exists. Without a name, the available guides are listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(app.stdout, TitleStyle.Render("Known issues"))
				for _, iss := range issue.Values() {
					fmt.Fprintf(app.stdout, "  %s\n", CmdStyle.Render(iss.Name()))
				}
				return nil
			}

			iss, ok := issue.Lookup(args[0])
			if !ok {
				return app.fail(cmd, "show issue", args[0], fmt.Errorf("unknown issue %q", args[0]))
			}
			rendered, err := iss.Render(style)
			if err != nil {
				return app.fail(cmd, "render issue", args[0], err)
			}
			fmt.Fprint(app.stdout, rendered)
			return nil
		},
	}
	issueCmd.Flags().StringVar(&style, "style", "dark", "glamour style: dark, light, notty or a style file path")

	return issueCmd
}
