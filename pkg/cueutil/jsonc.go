// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"bytes"
	"fmt"

	"github.com/tailscale/hujson"
)

// standardizeJSON turns a JSON-with-comments document into standard JSON.
// Comments and trailing commas are blanked out in place, so line numbers in
// later error messages still point into the original file. Duplicate object
// keys keep the position of their first occurrence and the value of their
// last.
func standardizeJSON(data []byte, filename string) ([]byte, error) {
	v, err := hujson.Parse(bytes.Clone(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	dropDuplicateKeys(&v)
	v.Standardize()
	return v.Pack(), nil
}

func dropDuplicateKeys(v *hujson.Value) {
	switch comp := v.Value.(type) {
	case *hujson.Object:
		index := make(map[string]int, len(comp.Members))
		members := comp.Members[:0]
		for _, m := range comp.Members {
			dropDuplicateKeys(&m.Value)
			name := m.Name.Value.(hujson.Literal).String()
			if i, ok := index[name]; ok {
				members[i].Value = m.Value
				continue
			}
			index[name] = len(members)
			members = append(members, m)
		}
		comp.Members = members
	case *hujson.Array:
		for i := range comp.Elements {
			dropDuplicateKeys(&comp.Elements[i])
		}
	}
}
