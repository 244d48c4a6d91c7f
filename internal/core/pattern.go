package core

import (
	"fmt"
	"strings"
)

const wildcard = "*"

type PatternKind uint8

const (
	PatternExact PatternKind = iota
	PatternWildcard
)

// CompiledPattern is an immutable matcher built from one alias string.
type CompiledPattern struct {
	kind    PatternKind
	source  string
	literal string
	prefix  string
	suffix  string
}

// CompilePattern turns an alias into a matcher. Aliases with more than one
// "*" are rejected.
func CompilePattern(alias string) (CompiledPattern, error) {
	switch strings.Count(alias, wildcard) {
	case 0:
		return CompiledPattern{kind: PatternExact, source: alias, literal: alias}, nil
	case 1:
		star := strings.Index(alias, wildcard)
		return CompiledPattern{
			kind:   PatternWildcard,
			source: alias,
			prefix: alias[:star],
			suffix: alias[star+1:],
		}, nil
	default:
		return CompiledPattern{}, configurationError(fmt.Sprintf("invalid alias pattern %q: must have at most one %q character", alias, wildcard))
	}
}

// Match reports whether specifier matches and returns the wildcard capture.
// The capture is always empty for exact patterns.
func (p CompiledPattern) Match(specifier string) (string, bool) {
	if p.kind == PatternExact {
		return "", specifier == p.literal
	}
	if len(specifier) < len(p.prefix)+len(p.suffix) {
		return "", false
	}
	if !strings.HasPrefix(specifier, p.prefix) || !strings.HasSuffix(specifier, p.suffix) {
		return "", false
	}
	return specifier[len(p.prefix) : len(specifier)-len(p.suffix)], true
}

func (p CompiledPattern) Kind() PatternKind { return p.kind }

func (p CompiledPattern) Source() string { return p.source }

func (p CompiledPattern) IsWildcard() bool { return p.kind == PatternWildcard }
