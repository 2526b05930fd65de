// SPDX-License-Identifier: MPL-2.0

package nxplugin

import (
	"fmt"
	"sync"

	"github.com/ethantkoenig/nx/pkg/modresolve"
	"github.com/ethantkoenig/nx/pkg/workspace"
)

type (
	// fakeModules returns canned results and counts lookups per request.
	fakeModules struct {
		mu      sync.Mutex
		results map[string]modresolve.Result
		calls   map[string]int
	}

	// fakeLoader returns canned implementations and counts loads per path.
	fakeLoader struct {
		mu    sync.Mutex
		impls map[string]Implementation
		err   error
		calls map[string]int
	}

	countingTranspiler struct {
		mu    sync.Mutex
		calls int
		root  string
		file  string
	}

	basicImpl struct {
		name string
	}

	inferringImpl struct {
		name     string
		patterns []string
		infer    func(file string) (workspace.Targets, error)
	}

	graphImpl struct {
		basicImpl
	}
)

func newFakeModules() *fakeModules {
	return &fakeModules{results: map[string]modresolve.Result{}, calls: map[string]int{}}
}

func (f *fakeModules) Resolve(request string, searchPaths []string) modresolve.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[request]++
	if res, ok := f.results[request]; ok {
		return res
	}
	return modresolve.Missing(request, searchPaths)
}

func (f *fakeModules) count(request string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[request]
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{impls: map[string]Implementation{}, calls: map[string]int{}}
}

func (f *fakeLoader) Load(path string) (Implementation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[path]++
	if f.err != nil {
		return nil, f.err
	}
	impl, ok := f.impls[path]
	if !ok {
		return nil, fmt.Errorf("no implementation at %s", path)
	}
	return impl, nil
}

func (f *fakeLoader) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (c *countingTranspiler) Register(root, file string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.root, c.file = root, file
}

func (c *countingTranspiler) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func (b basicImpl) PackageName() string { return b.name }

func (i *inferringImpl) PackageName() string           { return i.name }
func (i *inferringImpl) ProjectFilePatterns() []string { return i.patterns }
func (i *inferringImpl) InferTargets(file string) (workspace.Targets, error) {
	return i.infer(file)
}

// targetsOf builds ordered targets from name/executor pairs.
func targetsOf(pairs ...string) workspace.Targets {
	var t workspace.Targets
	for i := 0; i+1 < len(pairs); i += 2 {
		t.Set(pairs[i], workspace.TargetConfiguration{Executor: pairs[i+1]})
	}
	return t
}
