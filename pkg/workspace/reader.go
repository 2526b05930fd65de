// SPDX-License-Identifier: MPL-2.0

package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"path/filepath"

	"github.com/ethantkoenig/nx/pkg/fileglob"
)

var (
	// ErrDuplicateProject is returned when two projects share a name.
	ErrDuplicateProject = errors.New("duplicate project name")

	// ErrInvalidProjectEntry is returned when a workspace.json project entry
	// is neither a root string nor a project object.
	ErrInvalidProjectEntry = errors.New("invalid workspace.json project entry")
)

type (
	// ReadOptions controls a workspace read.
	ReadOptions struct {
		// IgnorePluginInference skips target inference, returning only the
		// explicitly declared targets. Local plugin resolution reads the
		// workspace this way to avoid recursing into plugin loading.
		IgnorePluginInference bool
	}

	// TargetInferenceFunc completes the targets of every project in ws.
	// root is the workspace root directory.
	TargetInferenceFunc func(root string, ws *Configuration) error

	// Reader reads a workspace from its root directory.
	Reader struct {
		store    Store
		searcher fileglob.Searcher
		infer    TargetInferenceFunc
	}

	// ReaderOption configures a Reader.
	ReaderOption func(*Reader)

	// DuplicateProjectError is returned when two project files declare the same name.
	DuplicateProjectError struct {
		Name  string
		Roots []string
	}

	// InvalidProjectEntryError describes a malformed workspace.json entry.
	InvalidProjectEntryError struct {
		Name string
		Err  error
	}
)

// Error implements the error interface.
func (e *DuplicateProjectError) Error() string {
	return fmt.Sprintf("project %q is declared more than once (roots: %v)", e.Name, e.Roots)
}

// Unwrap returns ErrDuplicateProject for errors.Is() compatibility.
func (e *DuplicateProjectError) Unwrap() error { return ErrDuplicateProject }

// Error implements the error interface.
func (e *InvalidProjectEntryError) Error() string {
	return fmt.Sprintf("workspace.json project %q: %v", e.Name, e.Err)
}

// Unwrap returns ErrInvalidProjectEntry for errors.Is() compatibility.
func (e *InvalidProjectEntryError) Unwrap() error { return ErrInvalidProjectEntry }

// WithStore sets the Store used to read files.
func WithStore(store Store) ReaderOption {
	return func(r *Reader) {
		r.store = store
	}
}

// WithSearcher sets the Searcher used to discover project.json files.
func WithSearcher(s fileglob.Searcher) ReaderOption {
	return func(r *Reader) {
		r.searcher = s
	}
}

// WithTargetInference installs the hook that completes project targets
// when ReadOptions.IgnorePluginInference is false.
func WithTargetInference(fn TargetInferenceFunc) ReaderOption {
	return func(r *Reader) {
		r.infer = fn
	}
}

// NewReader creates a Reader backed by the filesystem unless overridden.
func NewReader(opts ...ReaderOption) *Reader {
	r := &Reader{
		store:    NewFileStore(),
		searcher: fileglob.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Store returns the Store the reader reads files with.
func (r *Reader) Store() Store { return r.store }

// Read reads the workspace rooted at root.
func (r *Reader) Read(root string, opts ReadOptions) (*Configuration, error) {
	ws := &Configuration{}

	if nxPath := filepath.Join(root, NxJSONFile); r.store.FileExists(nxPath) {
		var nx NxJSON
		if err := r.store.ReadJSON(nxPath, &nx); err != nil {
			return nil, err
		}
		ws.Plugins = nx.Plugins
	}

	var err error
	if wsPath := filepath.Join(root, WorkspaceJSONFile); r.store.FileExists(wsPath) {
		err = r.readWorkspaceJSON(root, wsPath, ws)
	} else {
		err = r.discoverProjects(root, ws)
	}
	if err != nil {
		return nil, err
	}

	if !opts.IgnorePluginInference && r.infer != nil {
		if err := r.infer(root, ws); err != nil {
			return nil, err
		}
	}
	return ws, nil
}

func (r *Reader) readWorkspaceJSON(root, wsPath string, ws *Configuration) error {
	var raw struct {
		Version  int                         `json:"version"`
		Projects OrderedMap[json.RawMessage] `json:"projects"`
	}
	if err := r.store.ReadJSON(wsPath, &raw); err != nil {
		return err
	}
	ws.Version = raw.Version

	for name, entry := range raw.Projects.All() {
		var projectRoot string
		if err := json.Unmarshal(entry, &projectRoot); err == nil {
			project, err := r.readProjectJSON(root, projectRoot)
			if err != nil {
				return err
			}
			project.Name = name
			ws.Projects.Set(name, project)
			continue
		}

		var project ProjectConfiguration
		if err := json.Unmarshal(entry, &project); err != nil {
			return &InvalidProjectEntryError{Name: name, Err: err}
		}
		project.Name = name
		ws.Projects.Set(name, project)
	}
	return nil
}

func (r *Reader) discoverProjects(root string, ws *Configuration) error {
	files, err := r.searcher.Sync("**/"+ProjectJSONFile, root)
	if err != nil {
		return fmt.Errorf("discovering projects: %w", err)
	}

	roots := make(map[string]string, len(files))
	for _, file := range files {
		projectRoot := path.Dir(file)
		project, err := r.readProjectJSON(root, projectRoot)
		if err != nil {
			return err
		}
		if project.Name == "" {
			project.Name = path.Base(projectRoot)
			if projectRoot == "." {
				project.Name = filepath.Base(root)
			}
		}
		if prev, ok := roots[project.Name]; ok {
			return &DuplicateProjectError{Name: project.Name, Roots: []string{prev, projectRoot}}
		}
		roots[project.Name] = projectRoot
		ws.Projects.Set(project.Name, project)
	}
	return nil
}

// readProjectJSON reads <root>/<projectRoot>/project.json. Root defaults to
// projectRoot when the file does not set it.
func (r *Reader) readProjectJSON(root, projectRoot string) (ProjectConfiguration, error) {
	var project ProjectConfiguration
	file := filepath.Join(root, filepath.FromSlash(projectRoot), ProjectJSONFile)
	if err := r.store.ReadJSON(file, &project); err != nil {
		return ProjectConfiguration{}, err
	}
	if project.Root == "" {
		project.Root = projectRoot
	}
	return project, nil
}
