package types

type OutcomeKind uint8

const (
	OutcomeNoMatch OutcomeKind = iota
	OutcomeMatched
)

// Outcome is the result of one match attempt. NoMatch is not an error.
type Outcome struct {
	Kind OutcomeKind
	// Path is the absolute path of the existing file when Kind is
	// OutcomeMatched.
	Path string
	// Alias is the pattern that governed the attempt, if any alias matched.
	Alias string
	// BaseURL is the base of the scope the specifier was matched in.
	BaseURL string
}

func Matched(path string, alias string, baseURL string) Outcome {
	return Outcome{Kind: OutcomeMatched, Path: path, Alias: alias, BaseURL: baseURL}
}

func NoMatch() Outcome {
	return Outcome{Kind: OutcomeNoMatch}
}

func (o Outcome) IsMatched() bool {
	return o.Kind == OutcomeMatched
}
