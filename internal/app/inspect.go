package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

func (s Service) Inspect(ctx context.Context, req InspectRequest) (InspectResult, error) {
	root, err := s.loadStrict(ctx, req.Options)
	if err != nil {
		return InspectResult{}, err
	}
	plugin, err := s.newPlugin(ctx, req.Options)
	if err != nil {
		return InspectResult{}, err
	}
	if plugin.Inert() {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("no baseUrl configured in " + root.ConfigFile)
	}
	return InspectResult{ConfigFile: root.ConfigFile, Scopes: plugin.Describe()}, nil
}
