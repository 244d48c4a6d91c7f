// Package shared provides common utility functions used across multiple
// packages in the tspaths codebase.
package shared

import (
	"path/filepath"
	"strings"
)

// IsRelativeSpecifier reports whether an import specifier starts with "."
// (which also covers ".." and "./").
func IsRelativeSpecifier(specifier string) bool {
	return strings.HasPrefix(specifier, ".")
}

// IsAbsoluteSpecifier reports whether an import specifier is an absolute
// file-system path. Both native and slash-separated forms are accepted.
func IsAbsoluteSpecifier(specifier string) bool {
	return filepath.IsAbs(specifier) || strings.HasPrefix(specifier, "/")
}

// HasCaseInsensitiveSuffix is strings.HasSuffix with ASCII case folding.
func HasCaseInsensitiveSuffix(value string, suffix string) bool {
	return len(value) >= len(suffix) && strings.EqualFold(value[len(value)-len(suffix):], suffix)
}

// IsWithin reports whether target lies strictly below base.
func IsWithin(base string, target string) bool {
	if base == "" || target == "" {
		return false
	}
	rel, err := filepath.Rel(base, target)
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// JoinBase resolves target against base unless target is already absolute.
func JoinBase(base string, target string) string {
	if IsAbsoluteSpecifier(target) {
		return filepath.Clean(target)
	}
	return filepath.Join(base, target)
}
