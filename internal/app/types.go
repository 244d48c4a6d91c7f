package app

import "tspaths/internal/types"

type ResolveRequest struct {
	Options    types.Options
	Specifiers []string
	// Issuer is the importing file; requests resolve from its directory.
	// Empty means the context directory.
	Issuer string
}

type ResolveResult struct {
	ConfigFile string
	Records    []types.ResolveRecord
	Unresolved int
}

type ValidateRequest struct {
	Options types.Options
}

type ValidateResult struct {
	ConfigFile string
	BaseURL    string
	Scopes     int
	Aliases    int
	Inert      bool
}

type InspectRequest struct {
	Options types.Options
}

type InspectResult struct {
	ConfigFile string
	Scopes     []types.ScopeReport
}

type BuildRequest struct {
	Options     types.Options
	EntryPoints []string
	Outfile     string
	Outdir      string
	Bundle      bool
	Format      string
	Platform    string
	Write       bool
}

type BuildResult struct {
	Outputs  []string
	Warnings []string
	// Contents holds output files by path when the build does not write.
	Contents map[string]string
}
