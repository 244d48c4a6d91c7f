package policies

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"tspaths/internal/types"
)

// PrecedencePolicy decides the order in which aliases are tried.
type PrecedencePolicy struct {
	Mode types.Precedence
}

func NewPrecedencePolicy(mode types.Precedence) (PrecedencePolicy, error) {
	switch types.Precedence(strings.ToLower(strings.TrimSpace(string(mode)))) {
	case "", types.PrecedenceDeclaration:
		return PrecedencePolicy{Mode: types.PrecedenceDeclaration}, nil
	case types.PrecedenceSpecificity:
		return PrecedencePolicy{Mode: types.PrecedenceSpecificity}, nil
	default:
		return PrecedencePolicy{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown precedence: %s (valid: %s, %s)", mode, types.PrecedenceDeclaration, types.PrecedenceSpecificity))
	}
}

// Order returns the table in the order aliases must be tried. The input is
// never modified.
func (p PrecedencePolicy) Order(table types.AliasTable) types.AliasTable {
	ordered := make(types.AliasTable, len(table))
	copy(ordered, table)
	if p.Mode != types.PrecedenceSpecificity {
		return ordered
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return moreSpecific(parseAlias(ordered[i].Pattern), parseAlias(ordered[j].Pattern))
	})
	return ordered
}

type aliasKind int

const (
	aliasExact aliasKind = iota
	aliasWildcard
)

type parsedAlias struct {
	kind   aliasKind
	prefix string
	suffix string
}

func parseAlias(pattern string) parsedAlias {
	star := strings.IndexByte(pattern, '*')
	if star < 0 {
		return parsedAlias{kind: aliasExact, prefix: pattern}
	}
	return parsedAlias{kind: aliasWildcard, prefix: pattern[:star], suffix: pattern[star+1:]}
}

func moreSpecific(a parsedAlias, b parsedAlias) bool {
	if a.kind != b.kind {
		return a.kind == aliasExact
	}
	if a.kind == aliasExact {
		return false
	}
	if len(a.prefix) != len(b.prefix) {
		return len(a.prefix) > len(b.prefix)
	}
	return len(a.suffix) > len(b.suffix)
}
