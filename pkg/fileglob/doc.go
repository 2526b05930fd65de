// SPDX-License-Identifier: MPL-2.0

// Package fileglob searches a directory tree for files matching a glob pattern.
//
// Patterns use shell wildcard notation (`*`, `?`, `[...]`, and `**` for any
// number of directories) extended with the pattern-list forms `@(a|b)`,
// `+(a|b)`, `?(a|b)`, and `*(a|b)`. `*` and `?` never cross a `/`.
// Matching is performed against slash-separated paths relative to the
// search directory.
package fileglob
