package ports

import (
	"context"

	"tspaths/internal/types"
)

// Completion delivers the outcome of one request. A nil result with a nil
// error means "not handled".
type Completion func(err error, result *types.HookResult)

type HookHandler func(ctx context.Context, req types.HookRequest, done Completion)

type ContextHookHandler func(ctx context.Context, req types.HookRequest, rc *types.ResolveContext, done Completion)

// HookHost is the callback-style host shape: handlers are tapped by name
// and DoResolve re-enters the host's own resolution chain.
type HookHost interface {
	Tap(name string, handler HookHandler)
	DoResolve(ctx context.Context, req types.HookRequest, done Completion)
}

// ContextHookHost is the tap-style host shape that threads a resolution
// context through nested resolutions.
type ContextHookHost interface {
	TapContext(name string, handler ContextHookHandler)
	DoResolveContext(ctx context.Context, req types.HookRequest, rc *types.ResolveContext, done Completion)
}

// FileSystemHost is implemented by hosts that expose their own file system.
type FileSystemHost interface {
	FileSystem() FileSystemPort
}
