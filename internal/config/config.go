// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethantkoenig/nx/internal/issue"
	"github.com/ethantkoenig/nx/pkg/cueutil"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "nx"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// LocalConfigFile is looked up in the base directory when the config
	// directory holds no file.
	LocalConfigFile = "nx.config.cue"

	// EnvVerboseLogging toggles resolution diagnostics.
	EnvVerboseLogging = "NX_VERBOSE_LOGGING"
	// EnvWorkspaceRoot overrides the workspace root.
	EnvWorkspaceRoot = "NX_WORKSPACE_ROOT"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the nx configuration directory: $XDG_CONFIG_HOME/nx,
// or ~/.config/nx when XDG_CONFIG_HOME is unset.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}

	return filepath.Join(configDir, AppName), nil
}

// Load validates opts and reads the configuration, also returning the path of
// the file it came from ("" when only defaults and environment were used).
func Load(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	if err := opts.Validate(); err != nil {
		return nil, "", err
	}
	return loadWithOptions(ctx, opts)
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("verbose_logging", defaults.VerboseLogging)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("workspace_root", defaults.WorkspaceRoot)
	v.SetDefault("plugin_search_paths", defaults.PluginSearchPaths)
	v.SetDefault("output_format", defaults.OutputFormat)

	if err := v.BindEnv("verbose_logging", EnvVerboseLogging); err != nil {
		return nil, "", fmt.Errorf("failed to bind %s: %w", EnvVerboseLogging, err)
	}
	if err := v.BindEnv("workspace_root", EnvWorkspaceRoot); err != nil {
		return nil, "", fmt.Errorf("failed to bind %s: %w", EnvWorkspaceRoot, err)
	}

	resolvedPath, err := findConfigFile(opts)
	if err != nil {
		return nil, "", err
	}
	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// findConfigFile applies the lookup order: explicit path, config directory,
// then the base directory. It returns "" when no file exists.
func findConfigFile(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		path := opts.ConfigFilePath.String()
		if !fileExists(path) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'nx config show' to see the default configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("config file not found: %s", path)).
				BuildError()
		}
		return path, nil
	}

	cfgDir, err := configDirWithOverride(opts.ConfigDirPath.String())
	if err != nil {
		return "", err
	}
	if path := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt); fileExists(path) {
		return path, nil
	}

	if path := filepath.Join(opts.BaseDir.String(), LocalConfigFile); fileExists(path) {
		return path, nil
	}

	return "", nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before the XDG default.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper.
//
// Concrete(false) is used because every config field is optional.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return cueutil.FormatError(userValue.Err(), path)
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return cueutil.FormatError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return cueutil.FormatError(err, path)
	}

	// Merge into Viper (preserves defaults, env bindings still win)
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// GenerateCUE generates a CUE representation of the configuration.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// nx configuration file\n\n")
	fmt.Fprintf(&sb, "verbose_logging: %v\n", cfg.VerboseLogging)
	fmt.Fprintf(&sb, "log_level: %q\n", cfg.LogLevel)
	if cfg.WorkspaceRoot != "" {
		fmt.Fprintf(&sb, "workspace_root: %q\n", cfg.WorkspaceRoot)
	}
	fmt.Fprintf(&sb, "output_format: %q\n", cfg.OutputFormat)

	if len(cfg.PluginSearchPaths) == 0 {
		sb.WriteString("plugin_search_paths: []\n")
	} else {
		sb.WriteString("plugin_search_paths: [\n")
		for _, p := range cfg.PluginSearchPaths {
			fmt.Fprintf(&sb, "\t%q,\n", p)
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
