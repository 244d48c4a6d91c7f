package types

type LogLevel string

const (
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
)

type Precedence string

const (
	// PrecedenceDeclaration tries aliases in declaration order.
	PrecedenceDeclaration Precedence = "declaration"
	// PrecedenceSpecificity tries exact aliases first, then wildcards by
	// longest prefix and longest suffix.
	PrecedenceSpecificity Precedence = "specificity"
)

// Options configures one plugin instance.
type Options struct {
	ConfigFile      string     `mapstructure:"configFile" yaml:"configFile" json:"configFile"`
	Extensions      []string   `mapstructure:"extensions" yaml:"extensions" json:"extensions"`
	Silent          bool       `mapstructure:"silent" yaml:"silent" json:"silent"`
	LogLevel        LogLevel   `mapstructure:"logLevel" yaml:"logLevel" json:"logLevel"`
	LogInfoToStdOut bool       `mapstructure:"logInfoToStdOut" yaml:"logInfoToStdOut" json:"logInfoToStdOut"`
	Context         string     `mapstructure:"context" yaml:"context" json:"context"`
	Colors          bool       `mapstructure:"colors" yaml:"colors" json:"colors"`
	BaseURL         string     `mapstructure:"baseUrl" yaml:"baseUrl,omitempty" json:"baseUrl,omitempty"`
	References      []string   `mapstructure:"references" yaml:"references,omitempty" json:"references,omitempty"`
	MainFields      []string   `mapstructure:"mainFields" yaml:"mainFields" json:"mainFields"`
	Precedence      Precedence `mapstructure:"precedence" yaml:"precedence" json:"precedence"`
}
