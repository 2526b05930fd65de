// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidPluginIdentifier is the sentinel error wrapped by InvalidPluginIdentifierError.
var ErrInvalidPluginIdentifier = errors.New("invalid plugin identifier")

type (
	// PluginIdentifier names a plugin. It is resolved either as an installed
	// package name (e.g. "@nx-dotnet/core") or as a workspace path alias
	// (e.g. "@acme/my-plugin" declared in tsconfig.base.json).
	PluginIdentifier string

	// InvalidPluginIdentifierError is returned when a PluginIdentifier is empty
	// or contains whitespace.
	InvalidPluginIdentifierError struct {
		Value PluginIdentifier
	}
)

// String returns the string representation of the PluginIdentifier.
func (id PluginIdentifier) String() string { return string(id) }

// Validate returns nil if the identifier is non-empty and contains no whitespace.
func (id PluginIdentifier) Validate() error {
	if id == "" || strings.IndexFunc(string(id), unicode.IsSpace) >= 0 {
		return &InvalidPluginIdentifierError{Value: id}
	}
	return nil
}

// Error implements the error interface for InvalidPluginIdentifierError.
func (e *InvalidPluginIdentifierError) Error() string {
	return fmt.Sprintf("invalid plugin identifier %q: must be non-empty and contain no whitespace", e.Value)
}

// Unwrap returns ErrInvalidPluginIdentifier for errors.Is() compatibility.
func (e *InvalidPluginIdentifierError) Unwrap() error { return ErrInvalidPluginIdentifier }
