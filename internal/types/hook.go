package types

// HookRequest is one in-flight resolution request as handed over by a host.
// Values are copied, never mutated in place.
type HookRequest struct {
	Specifier string
	// Issuer is the absolute path of the importing file, when known.
	Issuer string
	// ResolveDir is the directory the host resolves Specifier from.
	ResolveDir string
	// Redirected is set on requests re-entered after an alias rewrite.
	Redirected bool
	// Message describes why the request was issued.
	Message string
	// HostData is opaque to the plugin and round-trips back to the host.
	HostData any
}

type HookState string

const (
	HookStateBypassed HookState = "bypassed"
	HookStateDeferred HookState = "deferred"
	HookStateResolved HookState = "resolved"
	HookStateFailed   HookState = "failed"
)

// HookResult is delivered through a completion callback. A nil result
// means the request was not handled.
type HookResult struct {
	State     HookState
	Specifier string
	Base      string
	// Path is what the host finalized the rewritten request to. Empty when
	// the host continuation produced no result.
	Path      string
	Namespace string
	External  bool
}

// ResolveContext is the diagnostic trail a tap-style host threads through
// nested resolutions.
type ResolveContext struct {
	Stack    []string
	Messages []string
}

// Inner returns a child context carrying message, leaving rc untouched.
func (rc *ResolveContext) Inner(message string) *ResolveContext {
	child := &ResolveContext{}
	if rc != nil {
		child.Stack = append(child.Stack, rc.Stack...)
		child.Messages = append(child.Messages, rc.Messages...)
	}
	if message != "" {
		child.Messages = append(child.Messages, message)
	}
	return child
}
