package app

import (
	"context"
)

// Validate loads the config and its references and compiles every alias
// table. Unlike plugin construction, load failures are reported as errors.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	root, err := s.loadStrict(ctx, req.Options)
	if err != nil {
		return ValidateResult{}, err
	}
	plugin, err := s.newPlugin(ctx, req.Options)
	if err != nil {
		return ValidateResult{}, err
	}
	result := ValidateResult{
		ConfigFile: root.ConfigFile,
		Inert:      plugin.Inert(),
	}
	for _, scope := range plugin.Describe() {
		if scope.Root {
			result.BaseURL = scope.BaseURL
		}
		result.Scopes++
		result.Aliases += len(scope.Aliases)
	}
	return result, nil
}
