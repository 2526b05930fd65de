// SPDX-License-Identifier: MPL-2.0

package modresolve

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Resolved means Path holds the absolute path of the module entry file.
	Resolved Status = iota
	// NotFound means no installed module matches the request.
	NotFound
	// Failed means the lookup could not complete; Err holds the cause.
	Failed
)

// ErrModuleNotFound is the sentinel error wrapped by ModuleNotFoundError.
var ErrModuleNotFound = errors.New("module not found")

type (
	// Status classifies the outcome of a resolution.
	Status int

	// Result is the outcome of resolving one request.
	Result struct {
		Status Status
		Path   string
		Err    error
	}

	// Resolver resolves installed module requests against search paths.
	Resolver interface {
		Resolve(request string, searchPaths []string) Result
	}

	// ModuleNotFoundError describes a request that matched no installed module.
	ModuleNotFoundError struct {
		Request     string
		SearchPaths []string
	}
)

// String returns the name of the status.
func (s Status) String() string {
	switch s {
	case Resolved:
		return "resolved"
	case NotFound:
		return "not-found"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Error implements the error interface.
func (e *ModuleNotFoundError) Error() string {
	return fmt.Sprintf("cannot find module %q (searched from: %s)", e.Request, strings.Join(e.SearchPaths, ", "))
}

// Unwrap returns ErrModuleNotFound for errors.Is() compatibility.
func (e *ModuleNotFoundError) Unwrap() error { return ErrModuleNotFound }

// Found returns a Resolved result for path.
func Found(path string) Result { return Result{Status: Resolved, Path: path} }

// Missing returns a NotFound result for request.
func Missing(request string, searchPaths []string) Result {
	return Result{Status: NotFound, Err: &ModuleNotFoundError{Request: request, SearchPaths: searchPaths}}
}

// Failure returns a Failed result carrying err.
func Failure(err error) Result { return Result{Status: Failed, Err: err} }
