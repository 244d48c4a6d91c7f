package adapters

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"tspaths/internal/ports"
)

// CachedFileSystem memoizes successful lookups, absent files included,
// until Purge. Failures are never cached.
type CachedFileSystem struct {
	next   ports.FileSystemPort
	exists *lru.Cache[string, bool]
	json   *lru.Cache[string, jsonEntry]
}

type jsonEntry struct {
	obj   map[string]any
	found bool
}

func NewCachedFileSystem(next ports.FileSystemPort, size int) (*CachedFileSystem, error) {
	exists, err := lru.New[string, bool](size)
	if err != nil {
		return nil, err
	}
	docs, err := lru.New[string, jsonEntry](size)
	if err != nil {
		return nil, err
	}
	return &CachedFileSystem{next: next, exists: exists, json: docs}, nil
}

func (c *CachedFileSystem) FileExists(ctx context.Context, path string) (bool, error) {
	if ok, hit := c.exists.Get(path); hit {
		return ok, nil
	}
	ok, err := c.next.FileExists(ctx, path)
	if err != nil {
		return false, err
	}
	c.exists.Add(path, ok)
	return ok, nil
}

func (c *CachedFileSystem) ReadJSON(ctx context.Context, path string) (map[string]any, bool, error) {
	if entry, hit := c.json.Get(path); hit {
		return entry.obj, entry.found, nil
	}
	obj, found, err := c.next.ReadJSON(ctx, path)
	if err != nil {
		return nil, false, err
	}
	c.json.Add(path, jsonEntry{obj: obj, found: found})
	return obj, found, nil
}

// Purge drops every cached entry. app.Service purges before each resolve
// or build run.
func (c *CachedFileSystem) Purge() {
	c.exists.Purge()
	c.json.Purge()
}
