package adapters

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"tspaths/internal/core"
	"tspaths/internal/ports"
	"tspaths/internal/shared"
	"tspaths/internal/types"
)

// ChainHost is a standalone resolver in the tap style. Tapped handlers run
// in registration order; a request none of them claims falls through to
// plain file resolution (relative/absolute paths, then node_modules).
type ChainHost struct {
	fs         ports.FileSystemPort
	extensions []string
	prober     core.Prober
	taps       []chainTap
}

type chainTap struct {
	name    string
	handler ports.ContextHookHandler
}

func NewChainHost(fs ports.FileSystemPort, extensions []string, mainFields []string) *ChainHost {
	return &ChainHost{
		fs:         fs,
		extensions: extensions,
		prober:     core.NewProber(fs, mainFields),
	}
}

func (h *ChainHost) FileSystem() ports.FileSystemPort {
	return h.fs
}

func (h *ChainHost) TapContext(name string, handler ports.ContextHookHandler) {
	h.taps = append(h.taps, chainTap{name: name, handler: handler})
}

// Resolve runs req through the chain and waits for its completion. A nil
// result with a nil error means nothing resolved the request.
func (h *ChainHost) Resolve(ctx context.Context, req types.HookRequest) (*types.HookResult, error) {
	ch := make(chan completion, 1)
	h.DoResolveContext(ctx, req, &types.ResolveContext{}, func(err error, result *types.HookResult) {
		ch <- completion{err: err, result: result}
	})
	select {
	case c := <-ch:
		return c.result, c.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (h *ChainHost) DoResolveContext(ctx context.Context, req types.HookRequest, rc *types.ResolveContext, done ports.Completion) {
	key := req.ResolveDir + "|" + req.Specifier
	if rc != nil {
		for _, entry := range rc.Stack {
			if entry == key {
				done(errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("recursion in resolving '"+req.Specifier+"' from "+req.ResolveDir), nil)
				return
			}
		}
	}
	inner := rc.Inner(req.Message)
	inner.Stack = append(inner.Stack, key)
	h.run(ctx, 0, req, inner, done)
}

func (h *ChainHost) run(ctx context.Context, index int, req types.HookRequest, rc *types.ResolveContext, done ports.Completion) {
	if index >= len(h.taps) {
		result, err := h.finalize(ctx, req)
		done(err, result)
		return
	}
	tap := h.taps[index]
	tap.handler(ctx, req, rc, func(err error, result *types.HookResult) {
		if err != nil || result != nil {
			done(err, result)
			return
		}
		h.run(ctx, index+1, req, rc, done)
	})
}

func (h *ChainHost) finalize(ctx context.Context, req types.HookRequest) (*types.HookResult, error) {
	var candidates []string
	switch {
	case req.Specifier == "":
		return nil, nil
	case shared.IsRelativeSpecifier(req.Specifier) || shared.IsAbsoluteSpecifier(req.Specifier):
		candidates = []string{shared.JoinBase(req.ResolveDir, req.Specifier)}
	default:
		candidates = nodeModulesCandidates(req.ResolveDir, req.Specifier)
	}
	for _, candidate := range candidates {
		found, ok, err := h.prober.Probe(ctx, candidate, h.extensions)
		if err != nil {
			return nil, err
		}
		if ok {
			log.Ctx(ctx).Debug().Str("specifier", req.Specifier).Str("path", found).Msg("request finalized")
			return &types.HookResult{
				State:     types.HookStateResolved,
				Specifier: req.Specifier,
				Base:      req.ResolveDir,
				Path:      found,
				Namespace: "file",
			}, nil
		}
	}
	return nil, nil
}

func nodeModulesCandidates(dir string, specifier string) []string {
	if dir == "" {
		return nil
	}
	var candidates []string
	for current := dir; ; current = filepath.Dir(current) {
		if filepath.Base(current) != "node_modules" {
			candidates = append(candidates, filepath.Join(current, "node_modules", filepath.FromSlash(strings.TrimSuffix(specifier, "/"))))
		}
		if filepath.Dir(current) == current {
			break
		}
	}
	return candidates
}
