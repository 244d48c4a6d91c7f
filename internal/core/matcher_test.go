package core

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tspaths/internal/types"
)

func newTestResolver(t *testing.T, fs *fakeFS, table types.AliasTable, opts MatchOptions) *MatchResolver {
	t.Helper()
	resolver, err := NewMatchResolver(t.Context(), types.Scope{BaseURL: "/proj", Table: table}, nil, fs, opts)
	require.NoError(t, err)
	return resolver
}

func TestResolveScenarioMatched(t *testing.T) {
	fs := newFakeFS("/proj/src/app/utils.ts")
	resolver := newTestResolver(t, fs, types.AliasTable{
		{Pattern: "@app/*", Targets: []string{"./src/app/*"}},
	}, MatchOptions{})

	outcome, err := resolver.Resolve(t.Context(), "@app/utils", []string{".ts"})
	require.NoError(t, err)
	assert.True(t, outcome.IsMatched())
	assert.Equal(t, "/proj/src/app/utils.ts", outcome.Path)
	assert.Equal(t, "@app/*", outcome.Alias)
	assert.Equal(t, "/proj", outcome.BaseURL)
}

func TestResolveScenarioMissing(t *testing.T) {
	fs := newFakeFS()
	resolver := newTestResolver(t, fs, types.AliasTable{
		{Pattern: "@app/*", Targets: []string{"./src/app/*"}},
	}, MatchOptions{})

	outcome, err := resolver.Resolve(t.Context(), "@app/missing", []string{".ts"})
	require.NoError(t, err)
	assert.False(t, outcome.IsMatched())
	assert.Equal(t, "@app/*", outcome.Alias)
}

func TestResolveRequiresFileSystem(t *testing.T) {
	resolver, err := NewMatchResolver(t.Context(), types.Scope{
		BaseURL: "/proj",
		Table:   types.AliasTable{{Pattern: "@app/*", Targets: []string{"./src/app/*"}}},
	}, nil, nil, MatchOptions{})
	require.NoError(t, err)

	outcome, err := resolver.Resolve(t.Context(), "@app/utils", []string{".ts"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	assert.False(t, outcome.IsMatched())

	outcome, err = resolver.WithFileSystem(newFakeFS("/proj/src/app/utils.ts")).Resolve(t.Context(), "@app/utils", []string{".ts"})
	require.NoError(t, err)
	assert.True(t, outcome.IsMatched())
}

func TestResolveRelativeNeverProbes(t *testing.T) {
	fs := newFakeFS("/proj/local/file.ts")
	resolver := newTestResolver(t, fs, types.AliasTable{
		{Pattern: "*", Targets: []string{"./*"}},
		{Pattern: "./local/file", Targets: []string{"./local/file"}},
	}, MatchOptions{})

	for _, specifier := range []string{"./local/file", "../up", ".", "..", ""} {
		outcome, err := resolver.Resolve(t.Context(), specifier, []string{".ts"})
		require.NoError(t, err)
		assert.False(t, outcome.IsMatched(), specifier)
	}
	assert.Zero(t, fs.probeCount())
}

func TestResolveWildcardSubstitutedBeforeFallback(t *testing.T) {
	fs := newFakeFS("/proj/src/mapped/lib/foo.ts", "/proj/fallback/foo.ts")
	resolver := newTestResolver(t, fs, types.AliasTable{
		{Pattern: "lib/*", Targets: []string{"./src/mapped/lib/*", "./fallback/*"}},
	}, MatchOptions{})

	outcome, err := resolver.Resolve(t.Context(), "lib/foo", []string{".ts"})
	require.NoError(t, err)
	assert.Equal(t, "/proj/src/mapped/lib/foo.ts", outcome.Path)
	require.NotEmpty(t, fs.calls)
	assert.Equal(t, "/proj/src/mapped/lib/foo", fs.calls[0])
}

func TestResolveExactProbesDeclaredTargetsInOrder(t *testing.T) {
	fs := newFakeFS("/proj/config/b.ts")
	resolver := newTestResolver(t, fs, types.AliasTable{
		{Pattern: "config", Targets: []string{"./config/a", "./config/b"}},
	}, MatchOptions{})

	outcome, err := resolver.Resolve(t.Context(), "config", []string{".ts"})
	require.NoError(t, err)
	assert.Equal(t, "/proj/config/b.ts", outcome.Path)

	want := []string{"/proj/config/a", "/proj/config/a.ts", "/proj/config/a/index.ts", "/proj/config/b", "/proj/config/b.ts"}
	if diff := cmp.Diff(want, fs.calls); diff != "" {
		t.Fatalf("unexpected probe order (-want +got):\n%s", diff)
	}
}

func TestResolveFirstMatchingAliasWins(t *testing.T) {
	fs := newFakeFS("/proj/second/utils.ts")
	resolver := newTestResolver(t, fs, types.AliasTable{
		{Pattern: "@app/*", Targets: []string{"./first/*"}},
		{Pattern: "@app/*", Targets: []string{"./second/*"}},
	}, MatchOptions{})

	outcome, err := resolver.Resolve(t.Context(), "@app/utils", []string{".ts"})
	require.NoError(t, err)
	assert.False(t, outcome.IsMatched())
	for _, call := range fs.calls {
		assert.NotContains(t, call, "/proj/second")
	}
}

func TestResolveSpecificityPrecedence(t *testing.T) {
	fs := newFakeFS("/proj/core/utils.ts", "/proj/app/core/utils.ts")
	resolver := newTestResolver(t, fs, types.AliasTable{
		{Pattern: "@app/*", Targets: []string{"./app/*"}},
		{Pattern: "@app/core/*", Targets: []string{"./core/*"}},
	}, MatchOptions{Precedence: types.PrecedenceSpecificity})

	outcome, err := resolver.Resolve(t.Context(), "@app/core/utils", []string{".ts"})
	require.NoError(t, err)
	assert.Equal(t, "/proj/core/utils.ts", outcome.Path)
}

func TestResolveTransientFailureTriesNextCandidate(t *testing.T) {
	fs := newFakeFS("/proj/b/x.ts")
	fs.failing["/proj/a/x"] = errTransient
	fs.failing["/proj/a/x.ts"] = errTransient
	resolver := newTestResolver(t, fs, types.AliasTable{
		{Pattern: "~/*", Targets: []string{"./a/*", "./b/*"}},
	}, MatchOptions{})

	outcome, err := resolver.Resolve(t.Context(), "~/x", []string{".ts"})
	require.NoError(t, err)
	assert.Equal(t, "/proj/b/x.ts", outcome.Path)
}

func TestResolveSkipsDeclarationOnlyAlias(t *testing.T) {
	fs := newFakeFS("/proj/src/shared/index.ts")
	resolver := newTestResolver(t, fs, types.AliasTable{
		{Pattern: "shared", Targets: []string{"./types/shared.d.ts"}},
		{Pattern: "*", Targets: []string{"./src/*"}},
	}, MatchOptions{})

	outcome, err := resolver.Resolve(t.Context(), "shared", []string{".ts"})
	require.NoError(t, err)
	assert.Equal(t, "/proj/src/shared/index.ts", outcome.Path)
}

func TestResolveAbsoluteTarget(t *testing.T) {
	fs := newFakeFS("/opt/vendor/lib.ts")
	resolver := newTestResolver(t, fs, types.AliasTable{
		{Pattern: "vendor", Targets: []string{"/opt/vendor/lib"}},
	}, MatchOptions{})

	outcome, err := resolver.Resolve(t.Context(), "vendor", []string{".ts"})
	require.NoError(t, err)
	assert.Equal(t, "/opt/vendor/lib.ts", outcome.Path)
}

func TestNewMatchResolverConfigurationErrors(t *testing.T) {
	tests := []struct {
		name  string
		table types.AliasTable
	}{
		{name: "multiple wildcards", table: types.AliasTable{{Pattern: "@a/*/*", Targets: []string{"./a/*"}}}},
		{name: "placeholder on exact alias", table: types.AliasTable{{Pattern: "config", Targets: []string{"./config/*"}}}},
		{name: "empty targets", table: types.AliasTable{{Pattern: "config"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMatchResolver(t.Context(), types.Scope{BaseURL: "/proj", Table: tt.table}, nil, newFakeFS(), MatchOptions{})
			require.Error(t, err)
			assert.True(t, IsConfigurationError(err))
		})
	}
}

func TestResolveFromReferenceScope(t *testing.T) {
	fs := newFakeFS("/proj/src/shared.ts", "/proj/packages/api/src/shared.ts")
	resolver, err := NewMatchResolver(t.Context(),
		types.Scope{BaseURL: "/proj", Table: types.AliasTable{{Pattern: "~/*", Targets: []string{"./src/*"}}}},
		[]types.Scope{{BaseURL: "/proj/packages/api", Table: types.AliasTable{{Pattern: "~/*", Targets: []string{"./src/*"}}}}},
		fs, MatchOptions{})
	require.NoError(t, err)

	tests := []struct {
		name      string
		issuerDir string
		want      string
	}{
		{name: "no issuer uses root", issuerDir: "", want: "/proj/src/shared.ts"},
		{name: "root base uses root", issuerDir: "/proj", want: "/proj/src/shared.ts"},
		{name: "reference base exact", issuerDir: "/proj/packages/api", want: "/proj/packages/api/src/shared.ts"},
		{name: "inside reference", issuerDir: "/proj/packages/api/src/routes", want: "/proj/packages/api/src/shared.ts"},
		{name: "outside reference", issuerDir: "/proj/packages/web/src", want: "/proj/src/shared.ts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := resolver.ResolveFrom(t.Context(), "~/shared", tt.issuerDir, []string{".ts"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, outcome.Path)
		})
	}
}

func TestDescribe(t *testing.T) {
	resolver := newTestResolver(t, newFakeFS(), types.AliasTable{
		{Pattern: "@app/*", Targets: []string{"./src/app/*", "./types/app/*.d.ts"}},
	}, MatchOptions{})

	reports := resolver.Describe()
	require.Len(t, reports, 1)
	assert.True(t, reports[0].Root)
	want := []types.AliasReport{{
		Pattern:  "@app/*",
		Wildcard: true,
		Targets:  []string{"./src/app/*"},
		Skipped:  []string{"./types/app/*.d.ts"},
	}}
	if diff := cmp.Diff(want, reports[0].Aliases); diff != "" {
		t.Fatalf("unexpected aliases (-want +got):\n%s", diff)
	}
}
