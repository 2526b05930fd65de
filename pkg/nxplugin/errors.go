// SPDX-License-Identifier: MPL-2.0

package nxplugin

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnresolvableLocalIdentifier is returned when an identifier is a known
	// path alias but no project owns any of its target paths.
	ErrUnresolvableLocalIdentifier = errors.New("unresolvable local plugin identifier")

	// ErrPluginNotFound is returned when an identifier is neither an
	// installed package nor a local plugin.
	ErrPluginNotFound = errors.New("plugin not found")

	// ErrImplementationNotFound is returned by RegistryLoader when no
	// implementation is registered for a resolved plugin path.
	ErrImplementationNotFound = errors.New("plugin implementation not found")

	// ErrDuplicateImplementation is returned when registering a package name twice.
	ErrDuplicateImplementation = errors.New("plugin implementation already registered")

	// ErrTargetInference is returned when a plugin fails to infer targets.
	ErrTargetInference = errors.New("target inference failed")
)

type (
	// ProjectRoot pairs an absolute project root with its project name.
	ProjectRoot struct {
		Root string
		Name string
	}

	// UnresolvableLocalIdentifierError carries the diagnostics of a failed
	// alias-to-project match.
	UnresolvableLocalIdentifierError struct {
		Identifier     string
		CandidatePaths []string
		ProjectRoots   []ProjectRoot
	}

	// PluginNotFoundError reports an identifier that resolved nowhere.
	// Err is the installed-package lookup failure.
	PluginNotFoundError struct {
		Identifier string
		Err        error
	}

	// ImplementationNotFoundError reports a resolved path with no registered implementation.
	ImplementationNotFoundError struct {
		Path        string
		PackageName string
	}

	// TargetInferenceError wraps an error returned by a plugin's inference hook.
	TargetInferenceError struct {
		Plugin string
		File   string
		Err    error
	}
)

// Error implements the error interface.
func (e *UnresolvableLocalIdentifierError) Error() string {
	return "unable to resolve local plugin with import path " + e.Identifier
}

// Unwrap returns ErrUnresolvableLocalIdentifier for errors.Is() compatibility.
func (e *UnresolvableLocalIdentifierError) Unwrap() error { return ErrUnresolvableLocalIdentifier }

// Details renders the candidate paths and known project roots.
func (e *UnresolvableLocalIdentifierError) Details() string {
	var sb strings.Builder
	sb.WriteString("candidate paths:\n")
	for _, p := range e.CandidatePaths {
		fmt.Fprintf(&sb, "  - %s\n", p)
	}
	sb.WriteString("project roots:\n")
	for _, pr := range e.ProjectRoots {
		fmt.Fprintf(&sb, "  - %s (%s)\n", pr.Root, pr.Name)
	}
	return sb.String()
}

// Error implements the error interface.
func (e *PluginNotFoundError) Error() string {
	return fmt.Sprintf("plugin %q is neither an installed package nor a local plugin", e.Identifier)
}

// Unwrap returns ErrPluginNotFound and the underlying lookup error.
func (e *PluginNotFoundError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrPluginNotFound}
	}
	return []error{ErrPluginNotFound, e.Err}
}

// Error implements the error interface.
func (e *ImplementationNotFoundError) Error() string {
	return fmt.Sprintf("no plugin implementation registered for %q (resolved from %s)", e.PackageName, e.Path)
}

// Unwrap returns ErrImplementationNotFound for errors.Is() compatibility.
func (e *ImplementationNotFoundError) Unwrap() error { return ErrImplementationNotFound }

// Error implements the error interface.
func (e *TargetInferenceError) Error() string {
	return fmt.Sprintf("plugin %s: inferring targets from %s: %v", e.Plugin, e.File, e.Err)
}

// Unwrap returns ErrTargetInference and the hook's error.
func (e *TargetInferenceError) Unwrap() []error { return []error{ErrTargetInference, e.Err} }
