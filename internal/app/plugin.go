package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"

	"tspaths/internal/core"
	"tspaths/internal/ports"
	"tspaths/internal/shared"
	"tspaths/internal/types"
)

const PluginName = "tspaths"

// StateObserver is told the terminal state of every request the plugin
// sees, re-entered requests included.
type StateObserver func(req types.HookRequest, state types.HookState)

// Plugin redirects aliased import specifiers to the files their tsconfig
// paths mapping points at, then hands the rewritten request back to the
// host. Without a base URL it stays inert and defers every request.
type Plugin struct {
	opts       types.Options
	logger     zerolog.Logger
	fs         ports.FileSystemPort
	resolver   *core.MatchResolver
	configFile string
	observer   StateObserver
}

// NewPlugin loads the root config and any references. Load failures only
// disable the plugin; malformed alias tables and options are errors.
func NewPlugin(ctx context.Context, opts types.Options, loader ports.ConfigLoaderPort, fs ports.FileSystemPort, logger zerolog.Logger) (*Plugin, error) {
	opts, err := NormalizeOptions(opts)
	if err != nil {
		return nil, err
	}
	plugin := &Plugin{opts: opts, logger: logger, fs: fs}

	cwd, err := workingDir()
	if err != nil {
		return nil, err
	}
	dir := shared.JoinBase(cwd, opts.Context)

	root, ok := plugin.loadScope(ctx, loader, shared.JoinBase(dir, opts.ConfigFile))
	if !ok {
		return plugin, nil
	}
	plugin.configFile = root.ConfigFile
	if opts.BaseURL != "" {
		root.BaseURL = shared.JoinBase(cwd, opts.BaseURL)
	}
	if root.BaseURL == "" {
		logger.Warn().Str("config", root.ConfigFile).Msg("no baseUrl configured, path aliases are disabled")
		return plugin, nil
	}

	var references []types.Scope
	for _, reference := range opts.References {
		if reference == "" {
			continue
		}
		scope, ok := plugin.loadScope(ctx, loader, shared.JoinBase(dir, reference))
		if !ok {
			continue
		}
		if scope.BaseURL == "" {
			logger.Warn().Str("config", scope.ConfigFile).Msg("reference has no baseUrl, skipped")
			continue
		}
		references = append(references, scope)
	}
	if len(root.Table) == 0 && len(references) == 0 {
		logger.Warn().Str("config", root.ConfigFile).Msg("no paths mapping configured, nothing to alias")
	}

	resolver, err := core.NewMatchResolver(logger.WithContext(ctx), root, references, fs, core.MatchOptions{
		Precedence: opts.Precedence,
		MainFields: opts.MainFields,
	})
	if err != nil {
		return nil, err
	}
	plugin.resolver = resolver
	return plugin, nil
}

func (p *Plugin) loadScope(ctx context.Context, loader ports.ConfigLoaderPort, location string) (types.Scope, bool) {
	config, err := loader.LoadConfig(ctx, location)
	if err != nil {
		p.logger.Error().Err(err).Msgf("failed to load %s", location)
		return types.Scope{}, false
	}
	p.logger.Info().Msg("using config file at " + config.ConfigFile)
	return config.Scope(), true
}

// Inert reports whether the plugin defers every request.
func (p *Plugin) Inert() bool {
	return p.resolver == nil
}

func (p *Plugin) ConfigFile() string {
	return p.configFile
}

func (p *Plugin) Options() types.Options {
	return p.opts
}

// Describe reports the compiled scopes; nil when inert.
func (p *Plugin) Describe() []types.ScopeReport {
	if p.resolver == nil {
		return nil
	}
	return p.resolver.Describe()
}

func (p *Plugin) Observe(observer StateObserver) {
	p.observer = observer
}

// Apply binds the plugin to host, picking the hook shape the host offers.
// The tap style with a resolution context wins over the callback style. It
// reports whether a hook was registered.
func (p *Plugin) Apply(host any) bool {
	if host == nil {
		p.logger.Warn().Msg("found no resolver, not applying " + PluginName)
		return false
	}
	fs := p.fs
	if fsHost, ok := host.(ports.FileSystemHost); ok && fsHost.FileSystem() != nil {
		fs = fsHost.FileSystem()
	}
	if fs == nil {
		p.logger.Warn().Msg("no file system found on resolver, make sure the plugin is installed as a resolver plugin")
		return false
	}
	resolver := p.resolver
	if resolver != nil {
		resolver = resolver.WithFileSystem(fs)
	}

	switch h := host.(type) {
	case ports.ContextHookHost:
		h.TapContext(PluginName, func(ctx context.Context, req types.HookRequest, rc *types.ResolveContext, done ports.Completion) {
			p.handle(ctx, resolver, req, func(next types.HookRequest, cb ports.Completion) {
				h.DoResolveContext(ctx, next, rc, cb)
			}, done)
		})
	case ports.HookHost:
		h.Tap(PluginName, func(ctx context.Context, req types.HookRequest, done ports.Completion) {
			p.handle(ctx, resolver, req, func(next types.HookRequest, cb ports.Completion) {
				h.DoResolve(ctx, next, cb)
			}, done)
		})
	default:
		p.logger.Warn().Msgf("resolver %T offers no resolve hook, not applying %s", host, PluginName)
		return false
	}
	return true
}

type reenterFunc func(next types.HookRequest, done ports.Completion)

func (p *Plugin) handle(ctx context.Context, resolver *core.MatchResolver, req types.HookRequest, reenter reenterFunc, done ports.Completion) {
	if resolver == nil || req.Redirected || req.Specifier == "" ||
		shared.IsRelativeSpecifier(req.Specifier) || shared.IsAbsoluteSpecifier(req.Specifier) {
		p.finish(req, types.HookStateBypassed, done, nil, nil)
		return
	}

	ctx = p.logger.WithContext(ctx)
	outcome, err := resolver.ResolveFrom(ctx, req.Specifier, issuerDir(req), p.opts.Extensions)
	if err != nil {
		p.finish(req, types.HookStateFailed, done, err, nil)
		return
	}
	if !outcome.IsMatched() {
		p.finish(req, types.HookStateDeferred, done, nil, nil)
		return
	}

	next := req
	next.Specifier = outcome.Path
	next.ResolveDir = outcome.BaseURL
	next.Redirected = true
	next.Message = fmt.Sprintf("Resolved request '%s' to '%s' using tsconfig.json paths mapping", req.Specifier, outcome.Path)
	p.logger.Debug().Str("specifier", req.Specifier).Str("path", outcome.Path).Msg("re-entering host resolution")

	reenter(next, func(err error, result *types.HookResult) {
		if err != nil {
			p.finish(req, types.HookStateFailed, done, hostProtocolError(req.Specifier, err), nil)
			return
		}
		// A continuation without result still counts as handled, so no
		// other aliasing or raw resolution of the original request happens.
		handled := types.HookResult{}
		if result != nil {
			handled = *result
		}
		handled.State = types.HookStateResolved
		handled.Specifier = outcome.Path
		handled.Base = outcome.BaseURL
		p.finish(req, types.HookStateResolved, done, nil, &handled)
	})
}

func (p *Plugin) finish(req types.HookRequest, state types.HookState, done ports.Completion, err error, result *types.HookResult) {
	if p.observer != nil {
		p.observer(req, state)
	}
	done(err, result)
}

func workingDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to determine working directory").
			WithCause(err)
	}
	return cwd, nil
}

// contextDir is the absolute directory relative options resolve against.
func contextDir(opts types.Options) (string, error) {
	cwd, err := workingDir()
	if err != nil {
		return "", err
	}
	return shared.JoinBase(cwd, opts.Context), nil
}

func issuerDir(req types.HookRequest) string {
	if req.ResolveDir != "" {
		return req.ResolveDir
	}
	if req.Issuer != "" {
		return filepath.Dir(req.Issuer)
	}
	return ""
}

func hostProtocolError(specifier string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("host failed to resolve rewritten request for '%s'", specifier)).
		WithCause(err)
}
