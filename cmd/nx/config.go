// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/ethantkoenig/nx/internal/config"
	"github.com/ethantkoenig/nx/pkg/types"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `nx config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Show nx configuration",
		Long: `Show nx configuration.

Configuration is read from, in order:
  - the file passed with --config
  - $XDG_CONFIG_HOME/nx/config.cue (~/.config/nx/config.cue)
  - ./nx.config.cue

NX_VERBOSE_LOGGING and NX_WORKSPACE_ROOT override the file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := config.Load(cmd.Context(), config.LoadOptions{
				ConfigFilePath: types.FilesystemPath(app.flags.configFile),
			})
			if err != nil {
				return app.fail(cmd, "load configuration", app.flags.configFile, err)
			}

			if path == "" {
				fmt.Fprintln(app.stdout, SubtitleStyle.Render("// (using defaults)"))
			} else {
				fmt.Fprintln(app.stdout, SubtitleStyle.Render("// "+path))
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return app.fail(cmd, "locate configuration", "", err)
			}
			fmt.Fprintf(app.stdout, "Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
			fmt.Fprintf(app.stdout, "Local file: %s\n", config.LocalConfigFile)
			return nil
		},
	})

	return cfgCmd
}
