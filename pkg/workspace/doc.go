// SPDX-License-Identifier: MPL-2.0

// Package workspace models an Nx-style monorepo and reads it from disk.
//
// A workspace is described by JSON files at well-known locations:
//
//   - nx.json declares the plugins used for target inference.
//   - workspace.json (optional) maps project names to roots or inline configs.
//   - project.json files declare one project each and are discovered
//     recursively when workspace.json is absent.
//   - package.json files carry package manifests (name, version, main).
//
// Declaration order of projects and targets is significant and is preserved
// by OrderedMap.
package workspace
