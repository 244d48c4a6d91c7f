package app

import (
	"context"
	"io"
	"os"

	"github.com/viant/afs"

	"tspaths/internal/adapters"
	"tspaths/internal/ports"
	"tspaths/internal/shared"
	"tspaths/internal/types"
)

const fileCacheSize = 4096

type Service struct {
	ConfigLoader ports.ConfigLoaderPort
	FileSystem   ports.FileSystemPort
	Reports      ports.ReportWriterPort
	Stdout       io.Writer
	Stderr       io.Writer
}

func NewService() Service {
	files := adapters.NewAFSFileSystem(afs.New(), "")
	var fs ports.FileSystemPort = files
	if cached, err := adapters.NewCachedFileSystem(files, fileCacheSize); err == nil {
		fs = cached
	}
	return Service{
		ConfigLoader: adapters.NewTSConfigLoader(files),
		FileSystem:   fs,
		Reports:      adapters.NewReportWriterAdapter(true),
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
	}
}

func (s Service) newPlugin(ctx context.Context, opts types.Options) (*Plugin, error) {
	opts, err := NormalizeOptions(opts)
	if err != nil {
		return nil, err
	}
	return NewPlugin(ctx, opts, s.ConfigLoader, s.FileSystem, NewLogger(opts, s.stdout(), s.stderr()))
}

// loadStrict loads the root config and every reference, returning the
// first failure instead of degrading to an inert plugin.
func (s Service) loadStrict(ctx context.Context, opts types.Options) (types.PathsConfig, error) {
	dir, err := contextDir(opts)
	if err != nil {
		return types.PathsConfig{}, err
	}
	configFile := opts.ConfigFile
	if configFile == "" {
		configFile = defaultConfigFile
	}
	root, err := s.ConfigLoader.LoadConfig(ctx, shared.JoinBase(dir, configFile))
	if err != nil {
		return types.PathsConfig{}, err
	}
	for _, reference := range opts.References {
		if reference == "" {
			continue
		}
		if _, err := s.ConfigLoader.LoadConfig(ctx, shared.JoinBase(dir, reference)); err != nil {
			return types.PathsConfig{}, err
		}
	}
	return root, nil
}

// purger is implemented by file systems that memoize lookups.
type purger interface {
	Purge()
}

// resetFileCache forgets memoized lookups so each run sees files created
// since the previous one.
func (s Service) resetFileCache() {
	if cache, ok := s.FileSystem.(purger); ok {
		cache.Purge()
	}
}

func (s Service) stdout() io.Writer {
	if s.Stdout == nil {
		return io.Discard
	}
	return s.Stdout
}

func (s Service) stderr() io.Writer {
	if s.Stderr == nil {
		return io.Discard
	}
	return s.Stderr
}
