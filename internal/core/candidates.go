package core

import (
	"fmt"
	"strings"
)

// ExpandCandidates substitutes capture into every target template, keeping
// the declared order. hasCapture is false for exact aliases; a template
// that needs a capture then fails with a configuration error.
func ExpandCandidates(targets []string, capture string, hasCapture bool) ([]string, error) {
	out := make([]string, 0, len(targets))
	for _, target := range targets {
		if err := validateTarget(target, hasCapture); err != nil {
			return nil, err
		}
		if hasCapture {
			target = strings.Replace(target, wildcard, capture, 1)
		}
		out = append(out, target)
	}
	return out, nil
}

func validateTarget(target string, hasCapture bool) error {
	switch count := strings.Count(target, wildcard); {
	case count > 1:
		return configurationError(fmt.Sprintf("invalid target %q: must have at most one %q character", target, wildcard))
	case count == 1 && !hasCapture:
		return configurationError(fmt.Sprintf("target %q has a %q placeholder but its alias has no wildcard", target, wildcard))
	}
	return nil
}
