package core

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"tspaths/internal/policies"
	"tspaths/internal/ports"
	"tspaths/internal/shared"
	"tspaths/internal/types"
)

type MatchOptions struct {
	Precedence types.Precedence
	MainFields []string
}

type compiledAlias struct {
	pattern CompiledPattern
	targets []string
	// skipped holds declaration-only targets. An alias with no runtime
	// targets left is never matched.
	skipped []string
}

func (a compiledAlias) matchable() bool {
	return len(a.targets) > 0
}

type compiledScope struct {
	baseURL    string
	configFile string
	aliases    []compiledAlias
}

// MatchResolver maps import specifiers to existing files through one root
// alias scope and any number of reference scopes. It is read-only after
// construction and safe for concurrent use.
type MatchResolver struct {
	root       compiledScope
	references []compiledScope
	prober     Prober
}

func NewMatchResolver(ctx context.Context, root types.Scope, references []types.Scope, fs ports.FileSystemPort, opts MatchOptions) (*MatchResolver, error) {
	policy, err := policies.NewPrecedencePolicy(opts.Precedence)
	if err != nil {
		return nil, err
	}
	compiledRoot, err := compileScope(ctx, root, policy)
	if err != nil {
		return nil, err
	}
	resolver := &MatchResolver{
		root:   compiledRoot,
		prober: NewProber(fs, opts.MainFields),
	}
	for _, reference := range references {
		compiled, err := compileScope(ctx, reference, policy)
		if err != nil {
			return nil, err
		}
		resolver.references = append(resolver.references, compiled)
	}
	return resolver, nil
}

// WithFileSystem returns a copy of r that probes through fs.
func (r *MatchResolver) WithFileSystem(fs ports.FileSystemPort) *MatchResolver {
	clone := *r
	clone.prober = NewProber(fs, r.prober.MainFields)
	return &clone
}

// Resolve matches specifier against the root scope.
func (r *MatchResolver) Resolve(ctx context.Context, specifier string, extensions []string) (types.Outcome, error) {
	return r.ResolveFrom(ctx, specifier, "", extensions)
}

// ResolveFrom matches specifier against the scope governing issuerDir. The
// first alias that matches decides the outcome: when none of its candidates
// exist the result is NoMatch, later aliases are not consulted.
func (r *MatchResolver) ResolveFrom(ctx context.Context, specifier string, issuerDir string, extensions []string) (types.Outcome, error) {
	if specifier == "" || shared.IsRelativeSpecifier(specifier) {
		return types.NoMatch(), nil
	}
	if r.prober.FS == nil {
		return types.NoMatch(), errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("match resolver requires a file system port")
	}
	scope := r.selectScope(issuerDir)
	for _, alias := range scope.aliases {
		if !alias.matchable() {
			continue
		}
		capture, ok := alias.pattern.Match(specifier)
		if !ok {
			continue
		}
		return r.resolveAlias(ctx, scope, alias, specifier, capture, extensions)
	}
	return types.NoMatch(), nil
}

func (r *MatchResolver) resolveAlias(ctx context.Context, scope compiledScope, alias compiledAlias, specifier string, capture string, extensions []string) (types.Outcome, error) {
	logger := log.Ctx(ctx)
	candidates, err := ExpandCandidates(alias.targets, capture, alias.pattern.IsWildcard())
	if err != nil {
		return types.NoMatch(), err
	}
	noMatch := types.Outcome{Kind: types.OutcomeNoMatch, Alias: alias.pattern.Source(), BaseURL: scope.baseURL}
	for _, candidate := range candidates {
		if policies.IsDeclarationTarget(candidate) {
			continue
		}
		path := shared.JoinBase(scope.baseURL, candidate)
		found, ok, err := r.prober.Probe(ctx, path, extensions)
		if err != nil {
			return noMatch, err
		}
		if ok {
			logger.Debug().
				Str("specifier", specifier).
				Str("alias", alias.pattern.Source()).
				Str("path", found).
				Msg("alias matched")
			return types.Matched(found, alias.pattern.Source(), scope.baseURL), nil
		}
	}
	logger.Debug().
		Str("specifier", specifier).
		Str("alias", alias.pattern.Source()).
		Int("candidates", len(candidates)).
		Msg("alias matched but no candidate exists")
	return noMatch, nil
}

// Describe reports every compiled scope, root first.
func (r *MatchResolver) Describe() []types.ScopeReport {
	reports := []types.ScopeReport{describeScope(r.root, true)}
	for _, scope := range r.references {
		reports = append(reports, describeScope(scope, false))
	}
	return reports
}

func describeScope(scope compiledScope, root bool) types.ScopeReport {
	report := types.ScopeReport{
		BaseURL:    scope.baseURL,
		ConfigFile: scope.configFile,
		Root:       root,
		Aliases:    []types.AliasReport{},
	}
	for _, alias := range scope.aliases {
		report.Aliases = append(report.Aliases, types.AliasReport{
			Pattern:  alias.pattern.Source(),
			Wildcard: alias.pattern.IsWildcard(),
			Targets:  alias.targets,
			Skipped:  alias.skipped,
		})
	}
	return report
}

func compileScope(ctx context.Context, scope types.Scope, policy policies.PrecedencePolicy) (compiledScope, error) {
	assert.NotEmpty(ctx, scope.BaseURL, "scope base url must be set")
	compiled := compiledScope{
		baseURL:    scope.BaseURL,
		configFile: scope.ConfigFile,
	}
	for _, entry := range policy.Order(scope.Table) {
		pattern, err := CompilePattern(entry.Pattern)
		if err != nil {
			return compiledScope{}, err
		}
		if len(entry.Targets) == 0 {
			return compiledScope{}, configurationError(fmt.Sprintf("targets for alias %q must not be empty", entry.Pattern))
		}
		for _, target := range entry.Targets {
			if err := validateTarget(target, pattern.IsWildcard()); err != nil {
				return compiledScope{}, err
			}
		}
		runtime, declarations := policies.SplitRuntimeTargets(entry.Targets)
		compiled.aliases = append(compiled.aliases, compiledAlias{
			pattern: pattern,
			targets: runtime,
			skipped: declarations,
		})
	}
	return compiled, nil
}
