// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for nx.
//
// This package implements the Cobra command hierarchy: plugin inspection
// (plugins list, show, resolve), target merging (targets), configuration
// display (config) and the issue catalog (issue).
package cmd
