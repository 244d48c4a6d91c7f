package core

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"tspaths/internal/ports"
)

const (
	packageJSONFile = "package.json"
	indexFile       = "index"
)

var defaultMainFields = []string{"main"}

// Prober checks candidate paths against the file system, strictly in
// declared order.
type Prober struct {
	FS         ports.FileSystemPort
	MainFields []string
}

func NewProber(fs ports.FileSystemPort, mainFields []string) Prober {
	if len(mainFields) == 0 {
		mainFields = defaultMainFields
	}
	return Prober{FS: fs, MainFields: mainFields}
}

// Probe returns the first existing file for candidate. It tries the path
// verbatim, then candidate+ext for each extension, then treats candidate as
// a directory (package.json main fields, then index+ext). Existence check
// failures count as absence; a package.json that cannot be read or parsed
// aborts the probe, as does context cancellation.
func (p Prober) Probe(ctx context.Context, candidate string, extensions []string) (string, bool, error) {
	if found, ok, err := p.probeFile(ctx, candidate, extensions); ok || err != nil {
		return found, ok, err
	}
	return p.probeDirectory(ctx, candidate, extensions)
}

func (p Prober) probeFile(ctx context.Context, candidate string, extensions []string) (string, bool, error) {
	if ok, err := p.exists(ctx, candidate); ok || err != nil {
		return candidate, ok, err
	}
	for _, ext := range extensions {
		path := candidate + ext
		if ok, err := p.exists(ctx, path); ok || err != nil {
			return path, ok, err
		}
	}
	return "", false, nil
}

func (p Prober) probeDirectory(ctx context.Context, dir string, extensions []string) (string, bool, error) {
	manifest, ok, err := p.FS.ReadJSON(ctx, filepath.Join(dir, packageJSONFile))
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", false, ctxErr
	}
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("dir", dir).Msg("failed to read package.json")
		return "", false, err
	}
	if ok {
		for _, field := range p.MainFields {
			main, isString := manifest[field].(string)
			if !isString || strings.TrimSpace(main) == "" {
				continue
			}
			found, hit, err := p.probeFile(ctx, filepath.Join(dir, main), extensions)
			if hit || err != nil {
				return found, hit, err
			}
		}
	}
	for _, ext := range extensions {
		path := filepath.Join(dir, indexFile+ext)
		if ok, err := p.exists(ctx, path); ok || err != nil {
			return path, ok, err
		}
	}
	return "", false, nil
}

func (p Prober) exists(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	ok, err := p.FS.FileExists(ctx, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		log.Ctx(ctx).Debug().Err(err).Str("path", path).Msg("existence check failed, treated as absent")
		return false, nil
	}
	return ok, nil
}
