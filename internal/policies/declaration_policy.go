package policies

import (
	"tspaths/internal/shared"
)

const declarationSuffix = ".d.ts"

// IsDeclarationTarget reports whether a target only exists for type
// checking and has no runtime artifact.
func IsDeclarationTarget(target string) bool {
	return shared.HasCaseInsensitiveSuffix(target, declarationSuffix)
}

// SplitRuntimeTargets separates runtime targets from declaration-only ones,
// preserving order within each group.
func SplitRuntimeTargets(targets []string) (runtime []string, declarations []string) {
	for _, target := range targets {
		if IsDeclarationTarget(target) {
			declarations = append(declarations, target)
			continue
		}
		runtime = append(runtime, target)
	}
	return runtime, declarations
}
