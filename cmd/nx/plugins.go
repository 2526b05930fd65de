// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/ethantkoenig/nx/pkg/nxplugin"

	"github.com/spf13/cobra"
)

// newPluginsCommand creates the `nx plugins` command tree.
func newPluginsCommand(app *App) *cobra.Command {
	pluginsCmd := &cobra.Command{
		Use:   "plugins",
		Short: "Inspect workspace plugins",
		Long: `Inspect the plugins declared in nx.json.

Plugins are resolved as installed packages first. Identifiers that are not
installed are looked up as local plugins through the path aliases of
tsconfig.base.json (or tsconfig.json).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var builtin bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Load and list the plugins declared in nx.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.listPlugins(cmd, builtin)
		},
	}
	listCmd.Flags().BoolVar(&builtin, "builtin", false, "list the built-in plugin implementations instead")
	pluginsCmd.AddCommand(listCmd)

	pluginsCmd.AddCommand(&cobra.Command{
		Use:   "show <identifier>",
		Short: "Show the package manifest of a plugin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.showPlugin(cmd, args[0])
		},
	})

	pluginsCmd.AddCommand(&cobra.Command{
		Use:   "resolve <identifier>",
		Short: "Resolve an identifier to a local workspace plugin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.resolvePlugin(cmd, args[0])
		},
	})

	return pluginsCmd
}

func (a *App) listPlugins(cmd *cobra.Command, builtin bool) error {
	s, err := a.newSession(cmd.Context())
	if err != nil {
		return a.fail(cmd, "load configuration", a.flags.configFile, err)
	}

	if builtin {
		reg := nxplugin.NewRegistry()
		if err := a.Registrar(reg, s.resolver.Root()); err != nil {
			return a.fail(cmd, "register plugins", "", err)
		}
		fmt.Fprintln(a.stdout, TitleStyle.Render("Built-in plugins"))
		for _, name := range reg.Names() {
			fmt.Fprintf(a.stdout, "  %s\n", CmdStyle.Render(name))
		}
		return nil
	}

	ws, err := s.readWorkspace()
	if err != nil {
		return a.fail(cmd, "read workspace", s.resolver.Root(), err)
	}

	plugins, err := s.resolver.LoadPlugins(ws.Plugins, s.searchPaths)
	if err != nil {
		return a.fail(cmd, "load plugins", strings.Join(ws.Plugins, ", "), err)
	}

	writePluginList(a.stdout, plugins)
	return nil
}

func writePluginList(w io.Writer, plugins []*nxplugin.Plugin) {
	fmt.Fprintln(w, TitleStyle.Render("Plugins"))
	if len(plugins) == 0 {
		fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render("(none declared in nx.json)"))
		return
	}
	for _, p := range plugins {
		fmt.Fprintf(w, "  %s %s\n", CmdStyle.Render(p.Identifier), SubtitleStyle.Render("("+p.Name+")"))
		fmt.Fprintf(w, "    path: %s\n", p.Path)
		if caps := p.Capabilities(); len(caps) > 0 {
			fmt.Fprintf(w, "    capabilities: %s\n", capabilityStyle.Render(strings.Join(caps, ", ")))
		}
		if len(p.FilePatterns) > 0 {
			fmt.Fprintf(w, "    files: %s\n", strings.Join(p.FilePatterns, " "))
		}
	}
}

func (a *App) showPlugin(cmd *cobra.Command, identifier string) error {
	s, err := a.newSession(cmd.Context())
	if err != nil {
		return a.fail(cmd, "load configuration", a.flags.configFile, err)
	}

	pm, err := s.resolver.ReadPluginPackageManifest(identifier, s.searchPaths)
	if err != nil {
		return a.fail(cmd, "read plugin manifest", identifier, err)
	}

	fmt.Fprintln(a.stdout, TitleStyle.Render(identifier))
	fmt.Fprintf(a.stdout, "%s: %s\n", CmdStyle.Render("manifest"), pm.Path)
	fmt.Fprintf(a.stdout, "%s: %s\n", CmdStyle.Render("name"), SuccessStyle.Render(pm.Manifest.Name))
	if pm.Manifest.Version != "" {
		fmt.Fprintf(a.stdout, "%s: %s\n", CmdStyle.Render("version"), pm.Manifest.Version)
	}
	if pm.Manifest.Main != "" {
		fmt.Fprintf(a.stdout, "%s: %s\n", CmdStyle.Render("main"), pm.Manifest.Main)
	}
	return nil
}

func (a *App) resolvePlugin(cmd *cobra.Command, identifier string) error {
	s, err := a.newSession(cmd.Context())
	if err != nil {
		return a.fail(cmd, "load configuration", a.flags.configFile, err)
	}

	ref, err := s.resolver.ResolveLocalPlugin(identifier, "")
	if err != nil {
		return a.fail(cmd, "resolve local plugin", identifier, err)
	}
	if ref == nil {
		fmt.Fprintf(a.stdout, "%s is %s\n", CmdStyle.Render(identifier), WarningStyle.Render("not a local plugin"))
		return nil
	}

	fmt.Fprintln(a.stdout, TitleStyle.Render(identifier))
	fmt.Fprintf(a.stdout, "%s: %s\n", CmdStyle.Render("path"), SuccessStyle.Render(ref.Path))
	fmt.Fprintf(a.stdout, "%s: %s\n", CmdStyle.Render("project"), ref.ProjectName)
	fmt.Fprintf(a.stdout, "%s: %s\n", CmdStyle.Render("root"), ref.ProjectConfig.Root)
	if main, ok := nxplugin.PluginMainFromProject(ref.ProjectConfig); ok {
		fmt.Fprintf(a.stdout, "%s: %s\n", CmdStyle.Render("main"), main)
	}
	return nil
}
