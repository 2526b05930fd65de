// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"github.com/ethantkoenig/nx/pkg/types"
)

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"

	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatTOML OutputFormat = "toml"
)

var (
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidOutputFormat is returned when an OutputFormat value is not recognized.
	ErrInvalidOutputFormat = errors.New("invalid output format")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LogLevel is the minimum level of log records written to stderr.
	LogLevel string

	// InvalidLogLevelError wraps ErrInvalidLogLevel.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// OutputFormat selects the encoding used for structured command output.
	OutputFormat string

	// InvalidOutputFormatError wraps ErrInvalidOutputFormat.
	InvalidOutputFormatError struct {
		Value OutputFormat
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// VerboseLogging enables diagnostics for local plugin resolution.
		VerboseLogging bool `json:"verbose_logging" mapstructure:"verbose_logging"`
		// LogLevel sets the logger level; verbose logging forces debug.
		LogLevel LogLevel `json:"log_level" mapstructure:"log_level"`
		// WorkspaceRoot overrides the workspace root (default: working directory).
		WorkspaceRoot types.FilesystemPath `json:"workspace_root" mapstructure:"workspace_root"`
		// PluginSearchPaths are extra directories consulted when resolving installed plugins.
		PluginSearchPaths []types.FilesystemPath `json:"plugin_search_paths" mapstructure:"plugin_search_paths"`
		// OutputFormat is the default encoding for `nx targets`.
		OutputFormat OutputFormat `json:"output_format" mapstructure:"output_format"`
	}
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:          LogLevelInfo,
		PluginSearchPaths: []types.FilesystemPath{},
		OutputFormat:      OutputFormatJSON,
	}
}

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is one of the defined levels.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Error implements the error interface.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// String returns the string representation of the OutputFormat.
func (f OutputFormat) String() string { return string(f) }

// IsValid returns whether the OutputFormat is one of the defined formats.
func (f OutputFormat) IsValid() (bool, []error) {
	switch f {
	case OutputFormatJSON, OutputFormatYAML, OutputFormatTOML:
		return true, nil
	default:
		return false, []error{&InvalidOutputFormatError{Value: f}}
	}
}

// Error implements the error interface.
func (e *InvalidOutputFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (valid: json, yaml, toml)", e.Value)
}

// Unwrap returns ErrInvalidOutputFormat for errors.Is() compatibility.
func (e *InvalidOutputFormatError) Unwrap() error { return ErrInvalidOutputFormat }

// IsValid returns whether the Config has valid fields.
// The zero WorkspaceRoot is valid and means "use the working directory".
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.LogLevel.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.OutputFormat.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if c.WorkspaceRoot != "" {
		if err := c.WorkspaceRoot.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, p := range c.PluginSearchPaths {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	if len(e.FieldErrors) == 1 {
		return "invalid config: " + e.FieldErrors[0].Error()
	}
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// EffectiveLogLevel is the level the logger should run at.
func (c Config) EffectiveLogLevel() LogLevel {
	if c.VerboseLogging {
		return LogLevelDebug
	}
	return c.LogLevel
}

// SearchPaths returns PluginSearchPaths as plain strings.
func (c Config) SearchPaths() []string {
	paths := make([]string, 0, len(c.PluginSearchPaths))
	for _, p := range c.PluginSearchPaths {
		paths = append(paths, p.String())
	}
	return paths
}
