package app

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/viper"

	"tspaths/internal/policies"
	"tspaths/internal/types"
)

const (
	defaultConfigFile = "tsconfig.json"
	defaultLogLevel   = types.LogLevelWarn
)

var (
	defaultExtensions = []string{".ts", ".tsx"}
	defaultMainFields = []string{"main"}
	optionKeys        = []string{
		"configFile", "extensions", "silent", "logLevel", "logInfoToStdOut",
		"context", "colors", "baseUrl", "references", "mainFields", "precedence",
	}
)

func DefaultOptions() types.Options {
	return types.Options{
		ConfigFile: defaultConfigFile,
		Extensions: slices.Clone(defaultExtensions),
		LogLevel:   defaultLogLevel,
		Colors:     true,
		MainFields: slices.Clone(defaultMainFields),
		Precedence: types.PrecedenceDeclaration,
	}
}

// ParseOptions decodes raw plugin options, as found in a config file,
// over the defaults. Keys are case-sensitive and unknown keys are rejected.
func ParseOptions(raw map[string]any) (types.Options, error) {
	for key := range raw {
		if !slices.Contains(optionKeys, key) {
			valid := slices.Clone(optionKeys)
			sort.Strings(valid)
			return types.Options{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("unexpected plugin option %q; valid options are: %s", key, strings.Join(valid, ", ")))
		}
	}

	v := viper.New()
	defaults := DefaultOptions()
	v.SetDefault("configFile", defaults.ConfigFile)
	v.SetDefault("extensions", defaults.Extensions)
	v.SetDefault("logLevel", string(defaults.LogLevel))
	v.SetDefault("colors", defaults.Colors)
	v.SetDefault("mainFields", defaults.MainFields)
	v.SetDefault("precedence", string(defaults.Precedence))
	if err := v.MergeConfigMap(raw); err != nil {
		return types.Options{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to read plugin options").
			WithCause(err)
	}

	var opts types.Options
	if err := v.UnmarshalExact(&opts); err != nil {
		return types.Options{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid plugin options").
			WithCause(err)
	}
	return NormalizeOptions(opts)
}

// NormalizeOptions fills unset fields with defaults and validates the rest.
func NormalizeOptions(opts types.Options) (types.Options, error) {
	if strings.TrimSpace(opts.ConfigFile) == "" {
		opts.ConfigFile = defaultConfigFile
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = slices.Clone(defaultExtensions)
	}
	if len(opts.MainFields) == 0 {
		opts.MainFields = slices.Clone(defaultMainFields)
	}
	level, err := parseLogLevel(string(opts.LogLevel))
	if err != nil {
		return types.Options{}, err
	}
	opts.LogLevel = level
	if _, err := policies.NewPrecedencePolicy(opts.Precedence); err != nil {
		return types.Options{}, err
	}
	if opts.Precedence == "" {
		opts.Precedence = types.PrecedenceDeclaration
	}
	return opts, nil
}

func parseLogLevel(value string) (types.LogLevel, error) {
	level := types.LogLevel(strings.ToUpper(strings.TrimSpace(value)))
	switch level {
	case "":
		return defaultLogLevel, nil
	case types.LogLevelDebug, types.LogLevelInfo, types.LogLevelWarn, types.LogLevelError:
		return level, nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown log level %q (expected INFO, WARN or ERROR)", value))
	}
}
