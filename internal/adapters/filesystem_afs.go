package adapters

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/viant/afs"
)

// AFSFileSystem implements FileSystemPort on top of an afs service. Paths
// are mapped under root, so a "mem://localhost" root serves an in-memory
// tree and an empty root serves the local disk.
type AFSFileSystem struct {
	fs   afs.Service
	root string
}

func NewAFSFileSystem(service afs.Service, root string) AFSFileSystem {
	return AFSFileSystem{fs: service, root: strings.TrimSuffix(root, "/")}
}

func (a AFSFileSystem) FileExists(ctx context.Context, path string) (bool, error) {
	URL := a.url(path)
	exists, err := a.fs.Exists(ctx, URL)
	if err != nil || !exists {
		return false, err
	}
	object, err := a.fs.Object(ctx, URL)
	if err != nil {
		return false, err
	}
	return !object.IsDir(), nil
}

func (a AFSFileSystem) ReadJSON(ctx context.Context, path string) (map[string]any, bool, error) {
	ok, err := a.FileExists(ctx, path)
	if err != nil || !ok {
		return nil, false, err
	}
	data, err := a.fs.DownloadWithURL(ctx, a.url(path))
	if err != nil {
		return nil, false, err
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse json file: " + path).
			WithCause(err)
	}
	return obj, true, nil
}

// ReadFile returns the raw bytes at path.
func (a AFSFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	return a.fs.DownloadWithURL(ctx, a.url(path))
}

func (a AFSFileSystem) url(path string) string {
	if a.root == "" {
		return path
	}
	return a.root + filepath.ToSlash(path)
}
