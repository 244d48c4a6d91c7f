package adapters

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/evanw/esbuild/pkg/api"

	"tspaths/internal/ports"
	"tspaths/internal/types"
)

// redirectMarker travels in PluginData on requests the plugin re-enters, so
// the hook recognizes its own rewrites and lets them pass.
type redirectMarker struct {
	message string
}

// EsbuildHost binds the callback-style host shape to an esbuild plugin
// build. esbuild callbacks carry no context, so the one given at setup is
// used for every request.
type EsbuildHost struct {
	ctx   context.Context
	name  string
	build api.PluginBuild
	fs    ports.FileSystemPort
}

func NewEsbuildHost(ctx context.Context, name string, build api.PluginBuild, fs ports.FileSystemPort) *EsbuildHost {
	return &EsbuildHost{ctx: ctx, name: name, build: build, fs: fs}
}

// NewEsbuildPlugin wraps apply into an esbuild plugin; apply receives the
// host once esbuild runs the plugin's setup.
func NewEsbuildPlugin(ctx context.Context, name string, fs ports.FileSystemPort, apply func(host any) bool) api.Plugin {
	return api.Plugin{
		Name: name,
		Setup: func(build api.PluginBuild) {
			apply(NewEsbuildHost(ctx, name, build, fs))
		},
	}
}

func (h *EsbuildHost) FileSystem() ports.FileSystemPort {
	return h.fs
}

func (h *EsbuildHost) Tap(name string, handler ports.HookHandler) {
	h.build.OnResolve(api.OnResolveOptions{Filter: ".*", Namespace: "file"}, func(args api.OnResolveArgs) (api.OnResolveResult, error) {
		req := types.HookRequest{
			Specifier:  args.Path,
			Issuer:     args.Importer,
			ResolveDir: args.ResolveDir,
			HostData:   args.Kind,
		}
		if marker, ok := args.PluginData.(redirectMarker); ok {
			req.Redirected = true
			req.Message = marker.message
		}

		outcome := h.await(handler, req)
		if outcome.err != nil {
			return api.OnResolveResult{PluginName: name}, outcome.err
		}
		if outcome.result == nil {
			return api.OnResolveResult{}, nil
		}
		if outcome.result.Path == "" {
			return api.OnResolveResult{PluginName: name}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("rewritten request '" + outcome.result.Specifier + "' resolved to nothing")
		}
		return api.OnResolveResult{
			PluginName: name,
			Path:       outcome.result.Path,
			Namespace:  outcome.result.Namespace,
			External:   outcome.result.External,
		}, nil
	})
}

type completion struct {
	err    error
	result *types.HookResult
}

func (h *EsbuildHost) await(handler ports.HookHandler, req types.HookRequest) completion {
	ch := make(chan completion, 1)
	handler(h.ctx, req, func(err error, result *types.HookResult) {
		ch <- completion{err: err, result: result}
	})
	select {
	case c := <-ch:
		return c
	case <-h.ctx.Done():
		return completion{err: h.ctx.Err()}
	}
}

func (h *EsbuildHost) DoResolve(ctx context.Context, req types.HookRequest, done ports.Completion) {
	kind, _ := req.HostData.(api.ResolveKind)
	if kind == api.ResolveNone {
		kind = api.ResolveJSImportStatement
	}
	res := h.build.Resolve(req.Specifier, api.ResolveOptions{
		PluginName: h.name,
		Importer:   req.Issuer,
		Namespace:  "file",
		ResolveDir: req.ResolveDir,
		Kind:       kind,
		PluginData: redirectMarker{message: req.Message},
	})
	if err := ctx.Err(); err != nil {
		done(err, nil)
		return
	}
	if len(res.Errors) > 0 {
		texts := make([]string, 0, len(res.Errors))
		for _, msg := range res.Errors {
			texts = append(texts, msg.Text)
		}
		done(errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(strings.Join(texts, "; ")), nil)
		return
	}
	done(nil, &types.HookResult{
		Specifier: req.Specifier,
		Base:      req.ResolveDir,
		Path:      res.Path,
		Namespace: res.Namespace,
		External:  res.External,
	})
}
