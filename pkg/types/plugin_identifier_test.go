// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestPluginIdentifier_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		id      PluginIdentifier
		wantErr bool
	}{
		{"scoped package", "@nx-dotnet/core", false},
		{"unscoped package", "nx-maven", false},
		{"workspace alias", "@acme/local-plugin", false},
		{"relative path", "./tools/plugin", false},
		{"empty", "", true},
		{"contains space", "@acme/local plugin", true},
		{"trailing newline", "nx-maven\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.id.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("PluginIdentifier(%q).Validate() error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidPluginIdentifier) {
				t.Errorf("error should wrap ErrInvalidPluginIdentifier, got: %v", err)
			}
		})
	}
}
