package app

import (
	"context"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/require"

	"tspaths/internal/ports"
	"tspaths/internal/types"
)

type fakeLoader struct {
	configs map[string]types.PathsConfig
	calls   []string
}

func (f *fakeLoader) LoadConfig(_ context.Context, location string) (types.PathsConfig, error) {
	f.calls = append(f.calls, location)
	config, ok := f.configs[location]
	if !ok {
		return types.PathsConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("config file not found: " + location)
	}
	return config, nil
}

type memFS struct {
	files    map[string]bool
	jsonErrs map[string]error
	probes   int
}

func newMemFS(files ...string) *memFS {
	fs := &memFS{files: map[string]bool{}, jsonErrs: map[string]error{}}
	for _, f := range files {
		fs.files[f] = true
	}
	return fs
}

func (m *memFS) FileExists(_ context.Context, path string) (bool, error) {
	m.probes++
	return m.files[path], nil
}

func (m *memFS) ReadJSON(_ context.Context, path string) (map[string]any, bool, error) {
	m.probes++
	if err, ok := m.jsonErrs[path]; ok {
		return nil, false, err
	}
	return nil, false, nil
}

// callbackHost is a callback-style host that finalizes re-entered requests
// to their own specifier.
type callbackHost struct {
	fs         ports.FileSystemPort
	handler    ports.HookHandler
	tapped     []string
	reentered  []types.HookRequest
	resolveErr error
	noResult   bool
}

func (h *callbackHost) FileSystem() ports.FileSystemPort { return h.fs }

func (h *callbackHost) Tap(name string, handler ports.HookHandler) {
	h.tapped = append(h.tapped, name)
	h.handler = handler
}

func (h *callbackHost) DoResolve(_ context.Context, req types.HookRequest, done ports.Completion) {
	h.reentered = append(h.reentered, req)
	switch {
	case h.resolveErr != nil:
		done(h.resolveErr, nil)
	case h.noResult:
		done(nil, nil)
	default:
		done(nil, &types.HookResult{Path: req.Specifier, Namespace: "file"})
	}
}

func (h *callbackHost) resolve(t *testing.T, ctx context.Context, req types.HookRequest) (*types.HookResult, error) {
	t.Helper()
	require.NotNil(t, h.handler, "no handler tapped")
	var (
		called bool
		result *types.HookResult
		err    error
	)
	h.handler(ctx, req, func(e error, r *types.HookResult) {
		called = true
		result, err = r, e
	})
	require.True(t, called, "completion not invoked")
	return result, err
}

// contextHost offers both hook shapes so tests can check which one wins.
type contextHost struct {
	callbackHost
	contextHandler ports.ContextHookHandler
	contexts       []*types.ResolveContext
}

func (h *contextHost) TapContext(name string, handler ports.ContextHookHandler) {
	h.tapped = append(h.tapped, "context:"+name)
	h.contextHandler = handler
}

func (h *contextHost) DoResolveContext(ctx context.Context, req types.HookRequest, rc *types.ResolveContext, done ports.Completion) {
	h.contexts = append(h.contexts, rc.Inner(req.Message))
	h.DoResolve(ctx, req, done)
}

// hooklessHost has a file system but no resolve hook.
type hooklessHost struct {
	fs ports.FileSystemPort
}

func (h hooklessHost) FileSystem() ports.FileSystemPort { return h.fs }
