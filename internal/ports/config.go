package ports

import (
	"context"

	"tspaths/internal/types"
)

// ConfigLoaderPort loads compiler configuration into an alias table.
type ConfigLoaderPort interface {
	// LoadConfig accepts a config file path or a directory to search
	// upward from.
	LoadConfig(ctx context.Context, location string) (types.PathsConfig, error)
}
