// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"

	"github.com/ethantkoenig/nx/pkg/types"
)

func TestLogLevel_IsValid(t *testing.T) {
	t.Parallel()

	for _, l := range []LogLevel{LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError} {
		if valid, errs := l.IsValid(); !valid {
			t.Errorf("LogLevel(%q).IsValid() = false: %v", l, errs)
		}
	}

	valid, errs := LogLevel("trace").IsValid()
	if valid || len(errs) != 1 || !errors.Is(errs[0], ErrInvalidLogLevel) {
		t.Errorf("LogLevel(trace).IsValid() = %v, %v", valid, errs)
	}
}

func TestOutputFormat_IsValid(t *testing.T) {
	t.Parallel()

	for _, f := range []OutputFormat{OutputFormatJSON, OutputFormatYAML, OutputFormatTOML} {
		if valid, errs := f.IsValid(); !valid {
			t.Errorf("OutputFormat(%q).IsValid() = false: %v", f, errs)
		}
	}

	valid, errs := OutputFormat("").IsValid()
	if valid || !errors.Is(errs[0], ErrInvalidOutputFormat) {
		t.Errorf("OutputFormat(\"\").IsValid() = %v, %v", valid, errs)
	}
}

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	cfg := *DefaultConfig()
	cfg.LogLevel = "loud"
	cfg.PluginSearchPaths = []types.FilesystemPath{"/ok", " "}

	valid, errs := cfg.IsValid()
	if valid {
		t.Fatal("expected invalid config")
	}
	if !errors.Is(errs[0], ErrInvalidConfig) {
		t.Fatalf("error should wrap ErrInvalidConfig: %v", errs[0])
	}
	var cfgErr *InvalidConfigError
	if !errors.As(errs[0], &cfgErr) || len(cfgErr.FieldErrors) != 2 {
		t.Fatalf("expected 2 field errors, got %v", errs[0])
	}
	if !errors.Is(cfgErr.FieldErrors[1], types.ErrInvalidFilesystemPath) {
		t.Errorf("second field error should be a path error: %v", cfgErr.FieldErrors[1])
	}
}
