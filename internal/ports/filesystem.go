package ports

import "context"

// FileSystemPort is the read-only file-system capability the resolver
// probes through.
type FileSystemPort interface {
	// FileExists reports whether path names a regular file. Directories
	// report false.
	FileExists(ctx context.Context, path string) (bool, error)

	// ReadJSON parses the JSON object stored at path. Returns
	// (obj, true, nil) on hit, (nil, false, nil) when the file is absent,
	// or (nil, false, err) on failure.
	ReadJSON(ctx context.Context, path string) (map[string]any, bool, error)
}
