// SPDX-License-Identifier: MPL-2.0

// Package modresolve locates installed packages in a node_modules layout.
//
// Resolution never panics or raises for a missing module: every lookup
// returns a Result whose Status distinguishes a resolved path, a module that
// is simply not installed, and a lookup that failed for another reason
// (permissions, malformed manifest). Callers fall back to other resolution
// strategies only on NotFound.
package modresolve
