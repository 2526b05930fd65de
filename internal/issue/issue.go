// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	AliasConfigMissingId Id = iota + 1
	LocalPluginUnresolvableId
	PluginNotFoundId
	PluginLoadFailedId
	TargetInferenceFailedId
	WorkspaceConfigInvalidId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	name     string      // kebab-case name accepted by `nx issue`
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) Name() string {
	return i.name
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range append(i.DocLinks(), i.extLinks...) {
			md.WriteString("\n- <" + string(link) + ">")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	aliasConfigMissingIssue = &Issue{
		id:   AliasConfigMissingId,
		name: "alias-config-missing",
		mdMsg: `
# No TypeScript path configuration found

Local plugins are located through the path aliases declared in the
workspace TypeScript configuration. Neither file was found at the
workspace root:

1. tsconfig.base.json
2. tsconfig.json

## Things you can try
- Create tsconfig.base.json at the workspace root and map the plugin import path:
~~~json
{
  "compilerOptions": {
    "paths": {
      "@acme/my-plugin": ["libs/my-plugin/src/index.ts"]
    }
  }
}
~~~
- Run the command from the workspace root, or pass it explicitly:
~~~
$ nx --root /path/to/workspace plugins list
~~~`,
		docLinks: []HttpLink{"https://nx.dev/extending-nx/recipes/local-executors"},
		extLinks: []HttpLink{"https://www.typescriptlang.org/tsconfig#paths"},
	}

	localPluginUnresolvableIssue = &Issue{
		id:   LocalPluginUnresolvableId,
		name: "local-plugin-unresolvable",
		mdMsg: `
# Unable to resolve local plugin

The plugin import path is declared in compilerOptions.paths, but none of
the paths it maps to live inside a workspace project.

## Things you can try
- Check that the alias points into the plugin project's directory.
- Check that the plugin project is declared in workspace.json or has a project.json.
- Inspect the candidate paths and project roots:
~~~
$ NX_VERBOSE_LOGGING=true nx plugins resolve @acme/my-plugin
~~~`,
		docLinks: []HttpLink{"https://nx.dev/extending-nx/recipes/local-executors"},
	}

	pluginNotFoundIssue = &Issue{
		id:   PluginNotFoundId,
		name: "plugin-not-found",
		mdMsg: `
# Plugin not found

The plugin is neither an installed package nor a local workspace plugin.

## Things you can try
- Install the plugin package:
~~~
$ npm install --save-dev @acme/my-plugin
~~~
- For a plugin living in the workspace, add a path alias for it in tsconfig.base.json.
- Add extra module search paths in your config file:
~~~cue
plugin_search_paths: ["/opt/nx/node_modules"]
~~~`,
		docLinks: []HttpLink{"https://nx.dev/extending-nx/intro/getting-started"},
	}

	pluginLoadFailedIssue = &Issue{
		id:   PluginLoadFailedId,
		name: "plugin-load-failed",
		mdMsg: `
# Plugin failed to load

The plugin was located but no implementation is available for it.

## Things you can try
- List the built-in plugin implementations:
~~~
$ nx plugins list
~~~
- Check that the name field of the plugin's package.json matches a built-in implementation.`,
		docLinks: []HttpLink{"https://nx.dev/extending-nx/intro/getting-started"},
	}

	targetInferenceFailedIssue = &Issue{
		id:   TargetInferenceFailedId,
		name: "target-inference-failed",
		mdMsg: `
# Target inference failed

A plugin matched a project file but could not infer targets from it.
This usually means the file is malformed.

## Things you can try
- Validate the project file (for example with dotnet build or mvn validate).
- Declare the targets explicitly in project.json; explicit targets take precedence.`,
		docLinks: []HttpLink{"https://nx.dev/concepts/inferred-tasks"},
	}

	workspaceConfigInvalidIssue = &Issue{
		id:   WorkspaceConfigInvalidId,
		name: "workspace-config-invalid",
		mdMsg: `
# Workspace configuration is invalid

One of nx.json, workspace.json, project.json, package.json or the
tsconfig files could not be parsed or failed schema validation.

## Things you can try
- Check the file named in the error for trailing commas or wrong value types.
- Make sure project names are unique across the workspace.
- Run with verbose output to see the complete error chain:
~~~
$ nx -v targets my-project
~~~`,
		docLinks: []HttpLink{"https://nx.dev/reference/project-configuration"},
	}

	configLoadFailedIssue = &Issue{
		id:   ConfigLoadFailedId,
		name: "config-load-failed",
		mdMsg: `
# Failed to load configuration

The nx configuration file could not be loaded.

## Configuration file locations
1. The path passed with --config
2. $XDG_CONFIG_HOME/nx/config.cue
3. ./nx.config.cue

## Example configuration
~~~cue
verbose_logging: false
log_level: "info"
output_format: "json"
plugin_search_paths: []
~~~`,
		docLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	issues = map[Id]*Issue{
		aliasConfigMissingIssue.Id():      aliasConfigMissingIssue,
		localPluginUnresolvableIssue.Id(): localPluginUnresolvableIssue,
		pluginNotFoundIssue.Id():          pluginNotFoundIssue,
		pluginLoadFailedIssue.Id():        pluginLoadFailedIssue,
		targetInferenceFailedIssue.Id():   targetInferenceFailedIssue,
		workspaceConfigInvalidIssue.Id():  workspaceConfigInvalidIssue,
		configLoadFailedIssue.Id():        configLoadFailedIssue,
	}
)

// Values returns the catalog ordered by Id.
func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}

// Lookup finds an issue by its kebab-case name.
func Lookup(name string) (*Issue, bool) {
	for _, iss := range issues {
		if iss.name == name {
			return iss, true
		}
	}
	return nil, false
}
