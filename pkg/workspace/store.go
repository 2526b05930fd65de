// SPDX-License-Identifier: MPL-2.0

package workspace

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethantkoenig/nx/pkg/cueutil"
)

const (
	// NxJSONFile declares workspace-wide settings and plugins.
	NxJSONFile = "nx.json"
	// WorkspaceJSONFile maps project names to roots.
	WorkspaceJSONFile = "workspace.json"
	// ProjectJSONFile declares a single project.
	ProjectJSONFile = "project.json"
	// PackageJSONFile is a package manifest.
	PackageJSONFile = "package.json"
)

//go:embed workspace_schema.cue
var workspaceSchema []byte

type (
	// Store reads workspace JSON files.
	Store interface {
		// ReadJSON parses the JSON file at path into out.
		ReadJSON(path string, out any) error
		// FileExists reports whether a regular file exists at path.
		FileExists(path string) bool
	}

	// FileStore is the filesystem-backed Store. Files with a well-known base
	// name are validated against the embedded workspace schema.
	FileStore struct {
		maxFileSize int64
	}

	// StoreOption configures a FileStore.
	StoreOption func(*FileStore)
)

// WithMaxFileSize limits the size of files a FileStore accepts.
func WithMaxFileSize(size int64) StoreOption {
	return func(s *FileStore) {
		s.maxFileSize = size
	}
}

// NewFileStore creates a FileStore.
func NewFileStore(opts ...StoreOption) *FileStore {
	s := &FileStore{maxFileSize: cueutil.DefaultMaxFileSize}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReadJSON implements Store.
func (s *FileStore) ReadJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	opts := []cueutil.Option{
		cueutil.WithFilename(path),
		cueutil.WithMaxFileSize(s.maxFileSize),
	}
	if def := schemaDefinition(path); def != "" {
		opts = append(opts, cueutil.WithSchema(workspaceSchema, def))
	}
	return cueutil.DecodeJSON(data, out, opts...)
}

// FileExists implements Store.
func (s *FileStore) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// schemaDefinition selects the schema definition for a file by base name.
func schemaDefinition(path string) string {
	base := filepath.Base(path)
	switch base {
	case NxJSONFile:
		return "#NxJSON"
	case WorkspaceJSONFile:
		return "#Workspace"
	case ProjectJSONFile:
		return "#Project"
	case PackageJSONFile:
		return "#PackageJSON"
	}
	if strings.HasPrefix(base, "tsconfig") && strings.HasSuffix(base, ".json") {
		return "#TSConfig"
	}
	return ""
}

// IsNotExist reports whether err came from reading a missing file.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// ReadPackageManifest reads the package.json file at path.
func ReadPackageManifest(store Store, path string) (*PackageManifest, error) {
	var m PackageManifest
	if err := store.ReadJSON(path, &m); err != nil {
		return nil, fmt.Errorf("reading package manifest: %w", err)
	}
	return &m, nil
}
