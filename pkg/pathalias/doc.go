// SPDX-License-Identifier: MPL-2.0

// Package pathalias reads the workspace's import path aliases
// (compilerOptions.paths) from its TypeScript configuration.
package pathalias
