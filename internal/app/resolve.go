package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"tspaths/internal/adapters"
	"tspaths/internal/shared"
	"tspaths/internal/types"
)

// Resolve runs each specifier through a standalone resolver chain with the
// plugin installed and reports how it ended.
func (s Service) Resolve(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	if len(req.Specifiers) == 0 {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one specifier is required")
	}
	s.resetFileCache()
	plugin, err := s.newPlugin(ctx, req.Options)
	if err != nil {
		return ResolveResult{}, err
	}
	opts := plugin.Options()
	host := adapters.NewChainHost(s.FileSystem, opts.Extensions, opts.MainFields)

	states := map[string]types.HookState{}
	plugin.Observe(func(r types.HookRequest, state types.HookState) {
		if !r.Redirected {
			states[r.Specifier] = state
		}
	})
	if !plugin.Apply(host) {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("plugin could not be applied to the resolver")
	}

	dir, err := contextDir(opts)
	if err != nil {
		return ResolveResult{}, err
	}
	issuer := ""
	if strings.TrimSpace(req.Issuer) != "" {
		issuer = shared.JoinBase(dir, req.Issuer)
		dir = filepath.Dir(issuer)
	}

	result := ResolveResult{ConfigFile: plugin.ConfigFile()}
	for _, specifier := range req.Specifiers {
		delete(states, specifier)
		hookResult, err := host.Resolve(ctx, types.HookRequest{
			Specifier:  specifier,
			Issuer:     issuer,
			ResolveDir: dir,
		})
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ResolveResult{}, ctxErr
		}
		record := types.ResolveRecord{Specifier: specifier, State: states[specifier]}
		switch {
		case err != nil:
			record.State = types.HookStateFailed
			record.Error = err.Error()
		case hookResult != nil:
			if record.State == types.HookStateResolved {
				record.Rewritten = hookResult.Specifier
			}
			record.Path = hookResult.Path
		}
		if record.State == "" {
			record.State = types.HookStateDeferred
		}
		if record.Path == "" {
			result.Unresolved++
		}
		log.Ctx(ctx).Debug().
			Str("specifier", specifier).
			Str("state", string(record.State)).
			Str("path", record.Path).
			Msg("specifier resolved")
		result.Records = append(result.Records, record)
	}
	return result, nil
}
