// SPDX-License-Identifier: MPL-2.0

package modresolve

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/ethantkoenig/nx/internal/testutil"
)

func TestNodeResolverResolve(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nm := filepath.Join(root, "node_modules")
	testutil.MustWriteFile(t, filepath.Join(nm, "@nx-dotnet", "core", "package.json"),
		`{"name": "@nx-dotnet/core", "main": "src/index.js"}`)
	testutil.MustWriteFile(t, filepath.Join(nm, "@nx-dotnet", "core", "src", "index.js"), "")
	testutil.MustWriteFile(t, filepath.Join(nm, "plain", "index.js"), "")
	testutil.MustWriteFile(t, filepath.Join(nm, "plain", "package.json"), `{"name": "plain"}`)
	testutil.MustWriteFile(t, filepath.Join(nm, "single.js"), "")
	testutil.MustWriteFile(t, filepath.Join(root, "tools", "local.js"), "")
	nested := filepath.Join(root, "apps", "web")
	testutil.MustMkdirAll(t, nested, 0o755)

	tests := []struct {
		name        string
		request     string
		searchPaths []string
		wantStatus  Status
		wantPath    string
	}{
		{"scoped package main", "@nx-dotnet/core", []string{root}, Resolved, filepath.Join(nm, "@nx-dotnet", "core", "src", "index.js")},
		{"index fallback", "plain", []string{root}, Resolved, filepath.Join(nm, "plain", "index.js")},
		{"manifest request", "@nx-dotnet/core/package.json", []string{root}, Resolved, filepath.Join(nm, "@nx-dotnet", "core", "package.json")},
		{"extension appended", "single", []string{root}, Resolved, filepath.Join(nm, "single.js")},
		{"walks up to ancestor node_modules", "plain", []string{nested}, Resolved, filepath.Join(nm, "plain", "index.js")},
		{"relative request", "./tools/local", []string{root}, Resolved, filepath.Join(root, "tools", "local.js")},
		{"later search path", "plain", []string{t.TempDir(), root}, Resolved, filepath.Join(nm, "plain", "index.js")},
		{"not installed", "@acme/missing", []string{root}, NotFound, ""},
	}

	r := NewNodeResolver(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := r.Resolve(tt.request, tt.searchPaths)
			if got.Status != tt.wantStatus {
				t.Fatalf("Resolve(%q) status = %v (err %v), want %v", tt.request, got.Status, got.Err, tt.wantStatus)
			}
			if got.Path != tt.wantPath {
				t.Errorf("Resolve(%q) path = %q, want %q", tt.request, got.Path, tt.wantPath)
			}
		})
	}
}

func TestNodeResolverNotFoundError(t *testing.T) {
	t.Parallel()

	got := NewNodeResolver(nil).Resolve("@acme/missing", []string{t.TempDir()})
	if got.Status != NotFound {
		t.Fatalf("status = %v, want NotFound", got.Status)
	}
	if !errors.Is(got.Err, ErrModuleNotFound) {
		t.Errorf("err = %v, want ErrModuleNotFound", got.Err)
	}
	var nf *ModuleNotFoundError
	if !errors.As(got.Err, &nf) || nf.Request != "@acme/missing" {
		t.Errorf("err = %#v, want ModuleNotFoundError for request", got.Err)
	}
}

func TestNodeResolverMalformedManifestFails(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(root, "node_modules", "broken", "package.json"), `{"name": `)

	got := NewNodeResolver(nil).Resolve("broken", []string{root})
	if got.Status != Failed {
		t.Fatalf("status = %v, want Failed", got.Status)
	}
	if errors.Is(got.Err, ErrModuleNotFound) {
		t.Errorf("failure must not look like not-found: %v", got.Err)
	}
}

func TestNodeResolverPermissionErrorFails(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for this user")
	}

	root := t.TempDir()
	locked := filepath.Join(root, "node_modules", "locked")
	testutil.MustWriteFile(t, filepath.Join(locked, "index.js"), "")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatalf("Chmod() error = %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	got := NewNodeResolver(nil).Resolve("locked", []string{root})
	if got.Status != Failed {
		t.Fatalf("status = %v, want Failed", got.Status)
	}
}

func TestStatusString(t *testing.T) {
	t.Parallel()

	for status, want := range map[Status]string{Resolved: "resolved", NotFound: "not-found", Failed: "failed", Status(9): "Status(9)"} {
		if got := status.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", int(status), got, want)
		}
	}
}
