package adapters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/francoispqt/gojay"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/jsonc"

	"tspaths/internal/shared"
	"tspaths/internal/types"
)

const defaultConfigName = "tsconfig.json"

// TSConfigLoader implements ConfigLoaderPort for tsconfig.json files,
// following "extends" chains. "paths" keys keep their declaration order.
type TSConfigLoader struct {
	files AFSFileSystem
	getwd func() (string, error)
}

func NewTSConfigLoader(files AFSFileSystem) TSConfigLoader {
	return TSConfigLoader{files: files, getwd: os.Getwd}
}

func (l TSConfigLoader) LoadConfig(ctx context.Context, location string) (types.PathsConfig, error) {
	configPath, err := l.locate(ctx, location)
	if err != nil {
		return types.PathsConfig{}, err
	}
	loaded, err := l.load(ctx, configPath, map[string]bool{})
	if err != nil {
		return types.PathsConfig{}, err
	}
	config := types.PathsConfig{
		ConfigFile: configPath,
		Paths:      loaded.paths,
	}
	switch {
	case loaded.baseURL != "":
		config.BaseURL = loaded.baseURL
	case loaded.hasPaths:
		config.BaseURL = loaded.pathsBase
	}
	log.Ctx(ctx).Debug().
		Str("config", configPath).
		Str("base_url", config.BaseURL).
		Int("aliases", len(config.Paths)).
		Msg("tsconfig loaded")
	return config, nil
}

type loadedConfig struct {
	baseURL   string
	paths     types.AliasTable
	hasPaths  bool
	pathsBase string
}

// overlay applies next on top of c; set fields in next win.
func (c loadedConfig) overlay(next loadedConfig) loadedConfig {
	if next.baseURL != "" {
		c.baseURL = next.baseURL
	}
	if next.hasPaths {
		c.paths = next.paths
		c.hasPaths = true
		c.pathsBase = next.pathsBase
	}
	return c
}

func (l TSConfigLoader) locate(ctx context.Context, location string) (string, error) {
	if strings.TrimSpace(location) == "" {
		location = "."
	}
	abs := location
	if !filepath.IsAbs(abs) {
		cwd, err := l.getwd()
		if err != nil {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to determine working directory").
				WithCause(err)
		}
		abs = filepath.Join(cwd, abs)
	}
	if strings.HasSuffix(strings.ToLower(abs), ".json") {
		if l.isFile(ctx, abs) {
			return abs, nil
		}
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("config file not found: " + abs)
	}
	for dir := abs; ; dir = filepath.Dir(dir) {
		candidate := filepath.Join(dir, defaultConfigName)
		if l.isFile(ctx, candidate) {
			return candidate, nil
		}
		if filepath.Dir(dir) == dir {
			break
		}
	}
	return "", errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("no %s found from %s", defaultConfigName, abs))
}

func (l TSConfigLoader) load(ctx context.Context, path string, stack map[string]bool) (loadedConfig, error) {
	if stack[path] {
		return loadedConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("circularity detected while resolving configuration: " + path)
	}
	stack[path] = true
	defer delete(stack, path)

	doc, err := l.parse(ctx, path)
	if err != nil {
		return loadedConfig{}, err
	}
	dir := filepath.Dir(path)

	var result loadedConfig
	for _, name := range doc.extends {
		basePath, err := l.resolveExtends(ctx, dir, name)
		if err != nil {
			return loadedConfig{}, err
		}
		base, err := l.load(ctx, basePath, stack)
		if err != nil {
			return loadedConfig{}, err
		}
		result = result.overlay(base)
	}

	own := loadedConfig{}
	if doc.compilerOptions.baseURL != nil {
		own.baseURL = shared.JoinBase(dir, *doc.compilerOptions.baseURL)
	}
	if doc.compilerOptions.paths != nil {
		own.paths = doc.compilerOptions.paths.table
		own.hasPaths = true
		own.pathsBase = dir
	}
	return result.overlay(own), nil
}

func (l TSConfigLoader) parse(ctx context.Context, path string) (tsconfigDocument, error) {
	data, err := l.files.ReadFile(ctx, path)
	if err != nil {
		return tsconfigDocument{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read config file: " + path).
			WithCause(err)
	}
	var doc tsconfigDocument
	if err := gojay.UnmarshalJSONObject(jsonc.ToJSON(data), &doc); err != nil {
		return tsconfigDocument{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse config file: " + path).
			WithCause(err)
	}
	return doc, nil
}

func (l TSConfigLoader) resolveExtends(ctx context.Context, dir string, name string) (string, error) {
	if shared.IsRelativeSpecifier(name) || shared.IsAbsoluteSpecifier(name) {
		path := shared.JoinBase(dir, name)
		if l.isFile(ctx, path) {
			return path, nil
		}
		if !strings.HasSuffix(path, ".json") && l.isFile(ctx, path+".json") {
			return path + ".json", nil
		}
	} else {
		for current := dir; ; current = filepath.Dir(current) {
			base := filepath.Join(current, "node_modules", name)
			for _, candidate := range []string{base, base + ".json", filepath.Join(base, defaultConfigName)} {
				if l.isFile(ctx, candidate) {
					return candidate, nil
				}
			}
			if filepath.Dir(current) == current {
				break
			}
		}
	}
	return "", errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("extended config %q not found from %s", name, dir))
}

func (l TSConfigLoader) isFile(ctx context.Context, path string) bool {
	ok, err := l.files.FileExists(ctx, path)
	return err == nil && ok
}

type tsconfigDocument struct {
	extends         []string
	compilerOptions compilerOptionsDocument
}

func (d *tsconfigDocument) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "extends":
		var raw interface{}
		if err := dec.Interface(&raw); err != nil {
			return err
		}
		switch value := raw.(type) {
		case string:
			d.extends = []string{value}
		case []interface{}:
			for _, item := range value {
				if name, ok := item.(string); ok {
					d.extends = append(d.extends, name)
				}
			}
		}
	case "compilerOptions":
		return dec.Object(&d.compilerOptions)
	}
	return nil
}

func (d *tsconfigDocument) NKeys() int { return 0 }

type compilerOptionsDocument struct {
	baseURL *string
	paths   *pathsDocument
}

func (d *compilerOptionsDocument) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "baseUrl":
		var value string
		if err := dec.String(&value); err != nil {
			return err
		}
		d.baseURL = &value
	case "paths":
		d.paths = &pathsDocument{}
		return dec.Object(d.paths)
	}
	return nil
}

func (d *compilerOptionsDocument) NKeys() int { return 0 }

// pathsDocument appends entries as the decoder meets them, which keeps
// declaration order and duplicate keys.
type pathsDocument struct {
	table types.AliasTable
}

func (d *pathsDocument) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	var targets stringArray
	if err := dec.Array(&targets); err != nil {
		return err
	}
	d.table = append(d.table, types.AliasEntry{Pattern: key, Targets: targets})
	return nil
}

func (d *pathsDocument) NKeys() int { return 0 }

type stringArray []string

func (a *stringArray) UnmarshalJSONArray(dec *gojay.Decoder) error {
	var value string
	if err := dec.String(&value); err != nil {
		return err
	}
	*a = append(*a, value)
	return nil
}
