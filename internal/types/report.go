package types

// ResolveRecord is one line of a resolve report.
type ResolveRecord struct {
	Specifier string    `yaml:"specifier" json:"specifier"`
	State     HookState `yaml:"state" json:"state"`
	Rewritten string    `yaml:"rewritten,omitempty" json:"rewritten,omitempty"`
	Path      string    `yaml:"path,omitempty" json:"path,omitempty"`
	Error     string    `yaml:"error,omitempty" json:"error,omitempty"`
}

type AliasReport struct {
	Pattern  string   `yaml:"pattern" json:"pattern"`
	Wildcard bool     `yaml:"wildcard" json:"wildcard"`
	Targets  []string `yaml:"targets" json:"targets"`
	// Skipped lists declaration-only targets excluded from matching.
	Skipped []string `yaml:"skipped,omitempty" json:"skipped,omitempty"`
}

type ScopeReport struct {
	BaseURL    string        `yaml:"base_url" json:"base_url"`
	ConfigFile string        `yaml:"config_file,omitempty" json:"config_file,omitempty"`
	Root       bool          `yaml:"root" json:"root"`
	Aliases    []AliasReport `yaml:"aliases" json:"aliases"`
}
