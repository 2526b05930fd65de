// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE helpers for reading workspace JSON files.
//
// JSON is a subset of CUE, so workspace files (nx.json, workspace.json,
// project.json, package.json, tsconfig*.json) are compiled with the CUE
// compiler. This tolerates the line comments and trailing commas that
// hand-edited tsconfig files routinely carry, and lets callers validate a
// document against an embedded schema definition before decoding it:
//
//	//go:embed workspace_schema.cue
//	var schema []byte
//
//	data, err := cueutil.ParseJSON(raw,
//	    cueutil.WithFilename("libs/a/project.json"),
//	    cueutil.WithSchema(schema, "#Project"),
//	)
//	if err != nil {
//	    return err // includes the JSON path of the offending field
//	}
//	return json.Unmarshal(data, &project)
package cueutil
