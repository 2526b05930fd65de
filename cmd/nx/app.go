// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ethantkoenig/nx/internal/config"
	"github.com/ethantkoenig/nx/internal/issue"
	"github.com/ethantkoenig/nx/pkg/nxplugin"
	"github.com/ethantkoenig/nx/pkg/types"
	"github.com/ethantkoenig/nx/pkg/workspace"
	"github.com/ethantkoenig/nx/plugins/dotnet"
	"github.com/ethantkoenig/nx/plugins/maven"

	"github.com/charmbracelet/log"
)

type (
	// ConfigProvider loads the CLI configuration.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// PluginRegistrar registers plugin implementations for the workspace at root.
	PluginRegistrar func(reg *nxplugin.Registry, root string) error

	// App wires CLI services and shared dependencies. All Cobra command
	// handlers receive an App reference.
	App struct {
		Config    ConfigProvider
		Registrar PluginRegistrar
		stdout    io.Writer
		stderr    io.Writer
		flags     globalFlags
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config    ConfigProvider
		Registrar PluginRegistrar
		Stdout    io.Writer
		Stderr    io.Writer
	}

	globalFlags struct {
		verbose    bool
		configFile string
		root       string
	}

	// session is the per-invocation state: configuration, logger and the
	// resolver that owns every plugin cache for this process.
	session struct {
		cfg         *config.Config
		logger      *log.Logger
		resolver    *nxplugin.Resolver
		searchPaths []string
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Registrar == nil {
		deps.Registrar = registerBuiltinPlugins
	}

	return &App{
		Config:    deps.Config,
		Registrar: deps.Registrar,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
	}
}

func registerBuiltinPlugins(reg *nxplugin.Registry, root string) error {
	if err := dotnet.Register(reg, root); err != nil {
		return err
	}
	return maven.Register(reg, root)
}

// newSession loads configuration and builds the resolver. The workspace root
// is taken from --root, then workspace_root / NX_WORKSPACE_ROOT, then the
// working directory.
func (a *App) newSession(ctx context.Context) (*session, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{
		ConfigFilePath: types.FilesystemPath(a.flags.configFile),
	})
	if err != nil {
		return nil, err
	}
	if a.flags.verbose {
		cfg.VerboseLogging = true
	}

	root := a.flags.root
	if root == "" {
		root = cfg.WorkspaceRoot.String()
	}
	if root == "" {
		if root, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
	}
	if root, err = filepath.Abs(root); err != nil {
		return nil, fmt.Errorf("failed to resolve workspace root: %w", err)
	}

	logger := log.NewWithOptions(a.stderr, log.Options{Prefix: config.AppName})
	level, err := log.ParseLevel(cfg.EffectiveLogLevel().String())
	if err != nil {
		return nil, err
	}
	logger.SetLevel(level)

	store := workspace.NewFileStore()
	reg := nxplugin.NewRegistry()
	if err := a.Registrar(reg, root); err != nil {
		return nil, issue.WrapWithOperation(err, "register built-in plugins")
	}

	searchPaths := append([]string{root}, cfg.SearchPaths()...)
	resolver := nxplugin.NewResolver(root,
		nxplugin.WithLogger(logger),
		nxplugin.WithVerbose(cfg.VerboseLogging),
		nxplugin.WithSearchPaths(searchPaths...),
		nxplugin.WithStore(store),
		nxplugin.WithLoader(nxplugin.NewRegistryLoader(reg, store)),
	)

	logger.Debug("session ready", "root", root, "searchPaths", searchPaths)
	return &session{cfg: cfg, logger: logger, resolver: resolver, searchPaths: searchPaths}, nil
}

// readWorkspace reads the workspace without plugin inference; commands that
// need inferred targets load plugins explicitly.
func (s *session) readWorkspace() (*workspace.Configuration, error) {
	reader := workspace.NewReader(workspace.WithStore(s.resolver.Store()))
	return reader.Read(s.resolver.Root(), workspace.ReadOptions{IgnorePluginInference: true})
}
