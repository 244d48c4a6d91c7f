package types

// AliasEntry is one "paths" entry: an alias pattern and its ordered
// target templates.
type AliasEntry struct {
	Pattern string   `yaml:"pattern" json:"pattern"`
	Targets []string `yaml:"targets" json:"targets"`
}

// AliasTable keeps entries in declaration order. Duplicate patterns are
// kept and tried in order.
type AliasTable []AliasEntry

// PathsConfig is the parsed result of loading a tsconfig.json file.
type PathsConfig struct {
	ConfigFile string
	// BaseURL is absolute, or empty when neither baseUrl nor paths is set.
	BaseURL string
	Paths   AliasTable
}

// Scope binds an alias table to the base URL its targets resolve against.
type Scope struct {
	BaseURL    string
	ConfigFile string
	Table      AliasTable
}

func (c PathsConfig) Scope() Scope {
	return Scope{
		BaseURL:    c.BaseURL,
		ConfigFile: c.ConfigFile,
		Table:      c.Paths,
	}
}
