package core

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeVerbatimFirst(t *testing.T) {
	fs := newFakeFS("/proj/src/app/utils.js")
	prober := NewProber(fs, nil)

	found, ok, err := prober.Probe(t.Context(), "/proj/src/app/utils.js", []string{".ts"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/proj/src/app/utils.js", found)
	if diff := cmp.Diff([]string{"/proj/src/app/utils.js"}, fs.calls); diff != "" {
		t.Fatalf("unexpected probes (-want +got):\n%s", diff)
	}
}

func TestProbeExtensionOrder(t *testing.T) {
	fs := newFakeFS("/proj/x.ts", "/proj/x.js")
	prober := NewProber(fs, nil)

	found, ok, err := prober.Probe(t.Context(), "/proj/x", []string{".ts", ".js"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/proj/x.ts", found)

	found, ok, err = prober.Probe(t.Context(), "/proj/x", []string{".js", ".ts"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/proj/x.js", found)
}

func TestProbeTransientFailureContinues(t *testing.T) {
	fs := newFakeFS("/proj/x.tsx")
	fs.failing["/proj/x.ts"] = errTransient
	prober := NewProber(fs, nil)

	found, ok, err := prober.Probe(t.Context(), "/proj/x", []string{".ts", ".tsx"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/proj/x.tsx", found)
}

func TestProbeDirectoryMainField(t *testing.T) {
	fs := newFakeFS("/proj/libs/ui/dist/ui.ts", "/proj/libs/ui/index.ts")
	fs.json["/proj/libs/ui/package.json"] = map[string]any{
		"browser": "./dist/ui",
		"main":    "./lib/ui.js",
	}
	prober := NewProber(fs, []string{"browser", "main"})

	found, ok, err := prober.Probe(t.Context(), "/proj/libs/ui", []string{".ts"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/proj/libs/ui/dist/ui.ts", found)
}

func TestProbeDirectoryIndexFallback(t *testing.T) {
	fs := newFakeFS("/proj/libs/ui/index.tsx")
	prober := NewProber(fs, nil)

	found, ok, err := prober.Probe(t.Context(), "/proj/libs/ui", []string{".ts", ".tsx"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/proj/libs/ui/index.tsx", found)
}

func TestProbeDirectoryPackageJSONErrorAborts(t *testing.T) {
	fs := newFakeFS("/proj/libs/ui/index.ts")
	fs.failing["/proj/libs/ui/package.json"] = errTransient
	prober := NewProber(fs, nil)

	found, ok, err := prober.Probe(t.Context(), "/proj/libs/ui", []string{".ts"})
	require.ErrorIs(t, err, errTransient)
	assert.False(t, ok)
	assert.Empty(t, found)
	assert.NotContains(t, fs.calls, "/proj/libs/ui/index.ts")
}

func TestProbeMissing(t *testing.T) {
	fs := newFakeFS()
	prober := NewProber(fs, nil)

	_, ok, err := prober.Probe(t.Context(), "/proj/missing", []string{".ts"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProbeCancelledContext(t *testing.T) {
	fs := newFakeFS("/proj/x.ts")
	prober := NewProber(fs, nil)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, ok, err := prober.Probe(ctx, "/proj/x", []string{".ts"})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
	assert.Zero(t, fs.probeCount())
}
