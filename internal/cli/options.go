package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"tspaths/internal/app"
	"tspaths/internal/types"
)

// pluginFlags are the global flags that map onto plugin options.
type pluginFlags struct {
	OptionsFile     string
	TSConfig        string
	Context         string
	Extensions      []string
	BaseURL         string
	References      []string
	MainFields      []string
	Precedence      string
	Silent          bool
	LogInfoToStdOut bool
	Colors          bool
}

func bindPluginFlags(cmd *cobra.Command, flags *pluginFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.OptionsFile, "options", "", "Plugin options file (JSON or YAML, camelCase keys)")
	pf.StringVar(&flags.TSConfig, "tsconfig", "", "tsconfig file name or path, relative to --context")
	pf.StringVar(&flags.Context, "context", "", "Directory the tsconfig is located from (default: working directory)")
	pf.StringSliceVar(&flags.Extensions, "extensions", nil, "Extensions probed for alias targets (default .ts,.tsx)")
	pf.StringVar(&flags.BaseURL, "base-url", "", "Override the configured baseUrl")
	pf.StringSliceVar(&flags.References, "reference", nil, "Additional tsconfig files with their own paths scope")
	pf.StringSliceVar(&flags.MainFields, "main-field", nil, "package.json fields consulted for directory targets (default main)")
	pf.StringVar(&flags.Precedence, "precedence", "", "Alias precedence: declaration or specificity")
	pf.BoolVar(&flags.Silent, "silent", false, "Disable plugin logging")
	pf.BoolVar(&flags.LogInfoToStdOut, "log-info-to-stdout", false, "Send debug and info plugin logs to stdout")
	pf.BoolVar(&flags.Colors, "colors", true, "Colorize logs and text reports")

	_ = viper.BindPFlag("options", pf.Lookup("options"))
	_ = viper.BindPFlag("tsconfig", pf.Lookup("tsconfig"))
	_ = viper.BindPFlag("context", pf.Lookup("context"))
	_ = viper.BindPFlag("extensions", pf.Lookup("extensions"))
	_ = viper.BindPFlag("base_url", pf.Lookup("base-url"))
	_ = viper.BindPFlag("references", pf.Lookup("reference"))
	_ = viper.BindPFlag("main_fields", pf.Lookup("main-field"))
	_ = viper.BindPFlag("precedence", pf.Lookup("precedence"))
	_ = viper.BindPFlag("silent", pf.Lookup("silent"))
	_ = viper.BindPFlag("log_info_to_stdout", pf.Lookup("log-info-to-stdout"))
	_ = viper.BindPFlag("colors", pf.Lookup("colors"))
}

// pluginOptions layers defaults, the options file, the config file or
// environment, and explicit flags, in that order.
func pluginOptions(cmd *cobra.Command, cfg *RootConfig) (types.Options, error) {
	flags := cfg.Plugin
	opts := app.DefaultOptions()
	if path := resolveString(cmd, flags.OptionsFile, "options", "options"); path != "" {
		raw, err := readOptionsFile(path)
		if err != nil {
			return types.Options{}, err
		}
		if opts, err = app.ParseOptions(raw); err != nil {
			return types.Options{}, err
		}
	}

	if value := resolveString(cmd, flags.TSConfig, "tsconfig", "tsconfig"); value != "" {
		opts.ConfigFile = value
	}
	if value := resolveString(cmd, flags.Context, "context", "context"); value != "" {
		opts.Context = value
	}
	if values := resolveStrings(cmd, flags.Extensions, "extensions", "extensions"); len(values) > 0 {
		opts.Extensions = values
	}
	if value := resolveString(cmd, flags.BaseURL, "base_url", "base-url"); value != "" {
		opts.BaseURL = value
	}
	if values := resolveStrings(cmd, flags.References, "references", "reference"); len(values) > 0 {
		opts.References = values
	}
	if values := resolveStrings(cmd, flags.MainFields, "main_fields", "main-field"); len(values) > 0 {
		opts.MainFields = values
	}
	if value := resolveString(cmd, flags.Precedence, "precedence", "precedence"); value != "" {
		opts.Precedence = types.Precedence(value)
	}
	if explicitlySet(cmd, "log_level", "log-level") {
		opts.LogLevel = types.LogLevel(resolveString(cmd, cfg.LogLevel, "log_level", "log-level"))
	}
	if explicitlySet(cmd, "silent", "silent") {
		opts.Silent = resolveBool(cmd, flags.Silent, "silent", "silent")
	}
	if explicitlySet(cmd, "log_info_to_stdout", "log-info-to-stdout") {
		opts.LogInfoToStdOut = resolveBool(cmd, flags.LogInfoToStdOut, "log_info_to_stdout", "log-info-to-stdout")
	}
	if explicitlySet(cmd, "colors", "colors") {
		opts.Colors = resolveBool(cmd, flags.Colors, "colors", "colors")
	}
	return app.NormalizeOptions(opts)
}

// readOptionsFile reads plugin options keyed exactly as the plugin expects
// them. Viper folds key case, so the file is decoded directly.
func readOptionsFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read options file " + path).
			WithCause(err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse options file " + path).
			WithCause(err)
	}
	return raw, nil
}

// explicitlySet reports whether a value came from a flag, the config file or
// the environment rather than a flag default.
func explicitlySet(cmd *cobra.Command, key string, flagName string) bool {
	return flagChanged(cmd, flagName) || viper.IsSet(key)
}
