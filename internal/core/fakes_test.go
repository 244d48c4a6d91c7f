package core

import (
	"context"
	"errors"
	"sync"
)

// fakeFS is an in-memory FileSystemPort that records every call.
type fakeFS struct {
	mu       sync.Mutex
	files    map[string]bool
	json     map[string]map[string]any
	failing  map[string]error
	calls    []string
	jsonRead []string
}

func newFakeFS(files ...string) *fakeFS {
	fs := &fakeFS{
		files:   map[string]bool{},
		json:    map[string]map[string]any{},
		failing: map[string]error{},
	}
	for _, file := range files {
		fs.files[file] = true
	}
	return fs
}

var errTransient = errors.New("transient stat failure")

func (f *fakeFS) FileExists(_ context.Context, path string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, path)
	if err, ok := f.failing[path]; ok {
		return false, err
	}
	return f.files[path], nil
}

func (f *fakeFS) ReadJSON(_ context.Context, path string) (map[string]any, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jsonRead = append(f.jsonRead, path)
	if err, ok := f.failing[path]; ok {
		return nil, false, err
	}
	obj, ok := f.json[path]
	return obj, ok, nil
}

func (f *fakeFS) probeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls) + len(f.jsonRead)
}
