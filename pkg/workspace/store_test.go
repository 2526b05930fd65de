// SPDX-License-Identifier: MPL-2.0

package workspace

import (
	"path/filepath"
	"testing"

	"github.com/ethantkoenig/nx/internal/testutil"
)

func TestSchemaDefinition(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"nx.json":                    "#NxJSON",
		"a/workspace.json":           "#Workspace",
		"libs/a/project.json":        "#Project",
		"libs/a/package.json":        "#PackageJSON",
		"tsconfig.base.json":         "#TSConfig",
		"tsconfig.json":              "#TSConfig",
		"apps/web/tsconfig.app.json": "#TSConfig",
		"renovate.json":              "",
	}
	for path, want := range tests {
		if got := schemaDefinition(path); got != want {
			t.Errorf("schemaDefinition(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestFileStore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	manifest := filepath.Join(dir, "package.json")
	testutil.MustWriteFile(t, manifest, `{"name": "@nx-dotnet/core", "version": "1.0.0", "main": "src/index.js",}`)

	store := NewFileStore()
	if !store.FileExists(manifest) {
		t.Fatal("FileExists() = false for existing file")
	}
	if store.FileExists(dir) {
		t.Error("FileExists() = true for a directory")
	}

	m, err := ReadPackageManifest(store, manifest)
	if err != nil {
		t.Fatalf("ReadPackageManifest() error = %v", err)
	}
	if m.Name != "@nx-dotnet/core" || m.Main != "src/index.js" {
		t.Errorf("manifest = %+v", m)
	}

	_, err = ReadPackageManifest(store, filepath.Join(dir, "missing", "package.json"))
	if !IsNotExist(err) {
		t.Errorf("missing manifest error = %v, want not-exist", err)
	}

	small := NewFileStore(WithMaxFileSize(8))
	if _, err := ReadPackageManifest(small, manifest); err == nil {
		t.Error("expected size limit error")
	}
}

func TestFileStoreProjectWithNullTargetFields(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ProjectJSONFile)
	testutil.MustWriteFile(t, path, `{
  /* written by a generator */
  "name": "web",
  "targets": {
    "build": {
      "executor": "@nx/webpack:webpack",
      "outputs": null,
      "options": null,
      "dependsOn": null,
      "configurations": null
    }
  }
}`)

	var p ProjectConfiguration
	if err := NewFileStore().ReadJSON(path, &p); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	build, ok := p.Targets.Get("build")
	if !ok {
		t.Fatalf("targets = %v, want build", p.Targets.Names())
	}
	if build.Executor != "@nx/webpack:webpack" || build.Outputs != nil || build.Options != nil {
		t.Errorf("build = %+v", build)
	}
}

func TestFileStoreDuplicateKeys(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), PackageJSONFile)
	testutil.MustWriteFile(t, path, `{"name": "first", "main": "a.js", "name": "second"}`)

	m, err := ReadPackageManifest(NewFileStore(), path)
	if err != nil {
		t.Fatalf("ReadPackageManifest() error = %v", err)
	}
	if m.Name != "second" || m.Main != "a.js" {
		t.Errorf("manifest = %+v, want name second and main a.js", m)
	}
}
