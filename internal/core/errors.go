package core

import (
	"github.com/ZanzyTHEbar/errbuilder-go"
)

func configurationError(msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(msg)
}

// IsConfigurationError reports whether err was raised for an alias table
// that can never be matched correctly.
func IsConfigurationError(err error) bool {
	return err != nil && errbuilder.CodeOf(err) == errbuilder.CodeInvalidArgument
}
