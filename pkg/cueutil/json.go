// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"encoding/json"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// ParseJSON compiles a JSON document with the CUE compiler, optionally
// validates it against a schema definition, and returns canonical JSON.
// Comments, trailing commas and duplicate keys are accepted; the last
// duplicate wins.
//
// The returned bytes preserve the field order of the input document, which
// callers rely on when declaration order is significant (workspace projects,
// project targets).
func ParseJSON(data []byte, opts ...Option) ([]byte, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	filename := options.filename
	if filename == "" {
		filename = "<input>"
	}

	if err := CheckFileSize(data, options.maxFileSize, filename); err != nil {
		return nil, err
	}

	std, err := standardizeJSON(data, filename)
	if err != nil {
		return nil, err
	}

	ctx := cuecontext.New()

	doc := ctx.CompileBytes(std, cue.Filename(filename))
	if doc.Err() != nil {
		return nil, FormatError(doc.Err(), filename)
	}

	if options.definition != "" {
		schemaValue := ctx.CompileBytes(options.schema)
		if schemaValue.Err() != nil {
			return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
		}
		def := schemaValue.LookupPath(cue.ParsePath(options.definition))
		if def.Err() != nil {
			return nil, fmt.Errorf("internal error: schema definition %s not found: %w", options.definition, def.Err())
		}
		if err := def.Unify(doc).Validate(cue.Concrete(true)); err != nil {
			return nil, FormatError(err, filename)
		}
	}

	// Marshal the document itself rather than the unified value so that
	// schema field order never leaks into the output.
	out, err := doc.MarshalJSON()
	if err != nil {
		return nil, FormatError(err, filename)
	}
	return out, nil
}

// DecodeJSON is ParseJSON followed by json.Unmarshal into out.
func DecodeJSON(data []byte, out any, opts ...Option) error {
	canonical, err := ParseJSON(data, opts...)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(canonical, out); err != nil {
		options := defaultOptions()
		for _, opt := range opts {
			opt(&options)
		}
		return fmt.Errorf("%s: %w", options.filename, err)
	}
	return nil
}
