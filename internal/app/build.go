package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/evanw/esbuild/pkg/api"
	"github.com/rs/zerolog/log"

	"tspaths/internal/adapters"
)

// Build bundles the entry points with esbuild, the plugin installed as an
// OnResolve hook.
func (s Service) Build(ctx context.Context, req BuildRequest) (BuildResult, error) {
	if len(req.EntryPoints) == 0 {
		return BuildResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one entry point is required")
	}
	if req.Outfile != "" && req.Outdir != "" {
		return BuildResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("outfile and outdir are mutually exclusive")
	}
	format, err := parseFormat(req.Format)
	if err != nil {
		return BuildResult{}, err
	}
	platform, err := parsePlatform(req.Platform)
	if err != nil {
		return BuildResult{}, err
	}
	s.resetFileCache()
	plugin, err := s.newPlugin(ctx, req.Options)
	if err != nil {
		return BuildResult{}, err
	}
	dir, err := contextDir(plugin.Options())
	if err != nil {
		return BuildResult{}, err
	}

	result := api.Build(api.BuildOptions{
		EntryPoints:   req.EntryPoints,
		AbsWorkingDir: dir,
		Bundle:        req.Bundle,
		Outfile:       req.Outfile,
		Outdir:        req.Outdir,
		Write:         req.Write,
		Format:        format,
		Platform:      platform,
		LogLevel:      api.LogLevelSilent,
		// Paths mapping is owned by the plugin, not by esbuild's own
		// tsconfig handling.
		TsconfigRaw:       "{}",
		ResolveExtensions: resolveExtensions(plugin.Options().Extensions),
		Plugins: []api.Plugin{
			adapters.NewEsbuildPlugin(ctx, PluginName, s.FileSystem, plugin.Apply),
		},
	})

	out := BuildResult{}
	for _, warning := range result.Warnings {
		out.Warnings = append(out.Warnings, formatMessage(warning))
	}
	if len(result.Errors) > 0 {
		texts := make([]string, 0, len(result.Errors))
		for _, msg := range result.Errors {
			texts = append(texts, formatMessage(msg))
		}
		return out, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("build failed: " + strings.Join(texts, "; "))
	}
	for _, file := range result.OutputFiles {
		out.Outputs = append(out.Outputs, file.Path)
		if !req.Write {
			if out.Contents == nil {
				out.Contents = map[string]string{}
			}
			out.Contents[file.Path] = string(file.Contents)
		}
	}
	log.Ctx(ctx).Info().
		Int("outputs", len(out.Outputs)).
		Int("warnings", len(out.Warnings)).
		Msg("build completed")
	return out, nil
}

// resolveExtensions puts the plugin's extensions ahead of esbuild's own
// defaults so both agree on probe order.
func resolveExtensions(extensions []string) []string {
	ordered := append([]string(nil), extensions...)
	for _, ext := range []string{".tsx", ".ts", ".jsx", ".js", ".css", ".json"} {
		found := false
		for _, existing := range ordered {
			if existing == ext {
				found = true
				break
			}
		}
		if !found {
			ordered = append(ordered, ext)
		}
	}
	return ordered
}

func formatMessage(msg api.Message) string {
	if msg.Location == nil {
		return msg.Text
	}
	return fmt.Sprintf("%s:%d:%d: %s", msg.Location.File, msg.Location.Line, msg.Location.Column, msg.Text)
}

func parseFormat(value string) (api.Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return api.FormatDefault, nil
	case "esm":
		return api.FormatESModule, nil
	case "cjs":
		return api.FormatCommonJS, nil
	case "iife":
		return api.FormatIIFE, nil
	default:
		return api.FormatDefault, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown output format %q (expected esm, cjs or iife)", value))
	}
}

func parsePlatform(value string) (api.Platform, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "browser":
		return api.PlatformBrowser, nil
	case "node":
		return api.PlatformNode, nil
	case "neutral":
		return api.PlatformNeutral, nil
	default:
		return api.PlatformBrowser, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown platform %q (expected browser, node or neutral)", value))
	}
}
