package core

import (
	"path/filepath"

	"tspaths/internal/shared"
)

// selectScope picks the reference scope whose base URL equals issuerDir or
// contains it, in declaration order. Everything else uses the root scope.
func (r *MatchResolver) selectScope(issuerDir string) compiledScope {
	if issuerDir == "" || len(r.references) == 0 {
		return r.root
	}
	dir := filepath.Clean(issuerDir)
	if dir == r.root.baseURL {
		return r.root
	}
	for _, scope := range r.references {
		if scope.baseURL == dir {
			return scope
		}
	}
	for _, scope := range r.references {
		if shared.IsWithin(scope.baseURL, dir) {
			return scope
		}
	}
	return r.root
}
