// SPDX-License-Identifier: MPL-2.0

package pathalias

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ethantkoenig/nx/pkg/workspace"
)

const (
	// BaseConfigFile is the preferred alias configuration file.
	BaseConfigFile = "tsconfig.base.json"
	// ConfigFile is consulted when BaseConfigFile does not exist.
	ConfigFile = "tsconfig.json"
)

// ErrConfigurationMissing is the sentinel error wrapped by ConfigurationMissingError.
var ErrConfigurationMissing = errors.New("path alias configuration missing")

// CandidateFiles lists the alias configuration files in priority order.
var CandidateFiles = []string{BaseConfigFile, ConfigFile}

type (
	// Index maps an import alias to its workspace-relative target paths.
	Index map[string][]string

	// ConfigurationMissingError is returned when none of the candidate
	// configuration files exist under Root.
	ConfigurationMissingError struct {
		Root       string
		Candidates []string
	}

	// Reader reads the alias index once and serves every later call from
	// memory. The first successful read wins regardless of root.
	Reader struct {
		store workspace.Store

		mu     sync.Mutex
		loaded bool
		index  Index
		source string
	}

	tsconfig struct {
		CompilerOptions *struct {
			Paths Index `json:"paths"`
		} `json:"compilerOptions"`
	}
)

// Error implements the error interface.
func (e *ConfigurationMissingError) Error() string {
	return fmt.Sprintf("unable to find %s in %s", strings.Join(e.Candidates, " or "), e.Root)
}

// Unwrap returns ErrConfigurationMissing for errors.Is() compatibility.
func (e *ConfigurationMissingError) Unwrap() error { return ErrConfigurationMissing }

// Lookup returns the target paths declared for alias.
func (idx Index) Lookup(alias string) ([]string, bool) {
	paths, ok := idx[alias]
	return paths, ok
}

// NewReader creates a Reader that reads files through store.
func NewReader(store workspace.Store) *Reader {
	if store == nil {
		store = workspace.NewFileStore()
	}
	return &Reader{store: store}
}

// Read returns the alias index of the workspace at root. Failed reads are
// not memoized.
func (r *Reader) Read(root string) (Index, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loaded {
		return r.index, nil
	}

	path := ""
	for _, name := range CandidateFiles {
		if candidate := filepath.Join(root, name); r.store.FileExists(candidate) {
			path = candidate
			break
		}
	}
	if path == "" {
		return nil, &ConfigurationMissingError{Root: root, Candidates: CandidateFiles}
	}

	var cfg tsconfig
	if err := r.store.ReadJSON(path, &cfg); err != nil {
		return nil, err
	}

	var index Index
	if cfg.CompilerOptions != nil {
		index = cfg.CompilerOptions.Paths
	}
	r.index, r.source, r.loaded = index, path, true
	return index, nil
}

// Source returns the file the index was read from, or "" before the first
// successful Read.
func (r *Reader) Source() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.source
}
