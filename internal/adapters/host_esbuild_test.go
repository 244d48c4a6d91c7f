package adapters

import (
	"context"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/evanw/esbuild/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tspaths/internal/ports"
	"tspaths/internal/types"
)

type fakePluginBuild struct {
	onResolve func(api.OnResolveArgs) (api.OnResolveResult, error)
	filter    string
	resolved  []api.ResolveOptions
	result    api.ResolveResult
}

func (f *fakePluginBuild) build() api.PluginBuild {
	return api.PluginBuild{
		OnResolve: func(options api.OnResolveOptions, callback func(api.OnResolveArgs) (api.OnResolveResult, error)) {
			f.filter = options.Filter
			f.onResolve = callback
		},
		Resolve: func(path string, options api.ResolveOptions) api.ResolveResult {
			f.resolved = append(f.resolved, options)
			return f.result
		},
	}
}

func TestEsbuildHost_TapTranslatesRequest(t *testing.T) {
	fake := &fakePluginBuild{}
	host := NewEsbuildHost(t.Context(), "tspaths", fake.build(), nil)

	var seen types.HookRequest
	host.Tap("tspaths", func(ctx context.Context, req types.HookRequest, done ports.Completion) {
		seen = req
		done(nil, nil)
	})
	require.NotNil(t, fake.onResolve)
	assert.Equal(t, ".*", fake.filter)

	result, err := fake.onResolve(api.OnResolveArgs{
		Path:       "@app/utils",
		Importer:   "/proj/src/main.ts",
		ResolveDir: "/proj/src",
		Kind:       api.ResolveJSImportStatement,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Path)
	assert.Equal(t, "@app/utils", seen.Specifier)
	assert.Equal(t, "/proj/src/main.ts", seen.Issuer)
	assert.Equal(t, "/proj/src", seen.ResolveDir)
	assert.Equal(t, api.ResolveJSImportStatement, seen.HostData)
	assert.False(t, seen.Redirected)
}

func TestEsbuildHost_TapReturnsResolvedPath(t *testing.T) {
	fake := &fakePluginBuild{}
	host := NewEsbuildHost(t.Context(), "tspaths", fake.build(), nil)
	host.Tap("tspaths", func(ctx context.Context, req types.HookRequest, done ports.Completion) {
		done(nil, &types.HookResult{State: types.HookStateResolved, Path: "/proj/src/app/utils.ts", Namespace: "file"})
	})

	result, err := fake.onResolve(api.OnResolveArgs{Path: "@app/utils"})
	require.NoError(t, err)
	assert.Equal(t, "/proj/src/app/utils.ts", result.Path)
	assert.Equal(t, "file", result.Namespace)
	assert.Equal(t, "tspaths", result.PluginName)
}

func TestEsbuildHost_TapPropagatesFailure(t *testing.T) {
	fake := &fakePluginBuild{}
	host := NewEsbuildHost(t.Context(), "tspaths", fake.build(), nil)
	host.Tap("tspaths", func(ctx context.Context, req types.HookRequest, done ports.Completion) {
		done(errbuilder.New().WithCode(errbuilder.CodeInternal).WithMsg("boom"), nil)
	})

	_, err := fake.onResolve(api.OnResolveArgs{Path: "@app/utils"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestEsbuildHost_TapRejectsEmptyHandledResult(t *testing.T) {
	fake := &fakePluginBuild{}
	host := NewEsbuildHost(t.Context(), "tspaths", fake.build(), nil)
	host.Tap("tspaths", func(ctx context.Context, req types.HookRequest, done ports.Completion) {
		done(nil, &types.HookResult{State: types.HookStateResolved, Specifier: "/proj/src/app/utils.ts"})
	})

	_, err := fake.onResolve(api.OnResolveArgs{Path: "@app/utils"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestEsbuildHost_DoResolveMarksRedirect(t *testing.T) {
	fake := &fakePluginBuild{result: api.ResolveResult{Path: "/proj/src/app/utils.ts", Namespace: "file"}}
	host := NewEsbuildHost(t.Context(), "tspaths", fake.build(), nil)

	var got *types.HookResult
	host.DoResolve(t.Context(), types.HookRequest{
		Specifier:  "/proj/src/app/utils.ts",
		ResolveDir: "/proj",
		Message:    "rewritten",
	}, func(err error, result *types.HookResult) {
		require.NoError(t, err)
		got = result
	})

	require.NotNil(t, got)
	assert.Equal(t, "/proj/src/app/utils.ts", got.Path)
	assert.Equal(t, "/proj", got.Base)
	require.Len(t, fake.resolved, 1)
	assert.Equal(t, api.ResolveJSImportStatement, fake.resolved[0].Kind)
	assert.Equal(t, "tspaths", fake.resolved[0].PluginName)

	// The re-entered request is recognized as a redirect by the tapped hook.
	var redirected types.HookRequest
	host.Tap("tspaths", func(ctx context.Context, req types.HookRequest, done ports.Completion) {
		redirected = req
		done(nil, nil)
	})
	_, err := fake.onResolve(api.OnResolveArgs{Path: "/proj/src/app/utils.ts", PluginData: fake.resolved[0].PluginData})
	require.NoError(t, err)
	assert.True(t, redirected.Redirected)
	assert.Equal(t, "rewritten", redirected.Message)
}

func TestEsbuildHost_DoResolveKeepsKindAndReportsErrors(t *testing.T) {
	fake := &fakePluginBuild{result: api.ResolveResult{Errors: []api.Message{{Text: "Could not resolve"}}}}
	host := NewEsbuildHost(t.Context(), "tspaths", fake.build(), nil)

	var gotErr error
	host.DoResolve(t.Context(), types.HookRequest{Specifier: "/x", HostData: api.ResolveJSRequireCall}, func(err error, result *types.HookResult) {
		gotErr = err
		assert.Nil(t, result)
	})

	require.Error(t, gotErr)
	assert.Contains(t, gotErr.Error(), "Could not resolve")
	assert.Equal(t, api.ResolveJSRequireCall, fake.resolved[0].Kind)
}

func TestNewEsbuildPlugin_AppliesHost(t *testing.T) {
	fs := &countingFS{}
	var applied any
	plugin := NewEsbuildPlugin(t.Context(), "tspaths", fs, func(host any) bool {
		applied = host
		return true
	})
	assert.Equal(t, "tspaths", plugin.Name)

	fake := &fakePluginBuild{}
	plugin.Setup(fake.build())

	host, ok := applied.(*EsbuildHost)
	require.True(t, ok)
	assert.Same(t, fs, host.FileSystem())
}
