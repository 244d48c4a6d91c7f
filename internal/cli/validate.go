package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tspaths/internal/app"
)

func newValidateCommand(cfg *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the tsconfig chain and check every paths alias",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, cfg)
		},
	}
}

func runValidate(ctx context.Context, cmd *cobra.Command, cfg *RootConfig) error {
	opts, err := pluginOptions(cmd, cfg)
	if err != nil {
		return err
	}
	service := newAppService(cmd, opts.Colors)
	result, err := service.Validate(ctx, app.ValidateRequest{Options: opts})
	if err != nil {
		return err
	}
	style := newStyles(opts.Colors)
	out := cmd.OutOrStdout()
	if result.Inert {
		log.Ctx(ctx).Warn().Str("config", result.ConfigFile).Msg("no baseUrl configured")
		fmt.Fprintf(out, "%s %s: no baseUrl configured, aliases disabled\n", style.warn.Render("inert"), result.ConfigFile)
		return nil
	}
	fmt.Fprintf(out, "%s %s\n", style.ok.Render("valid"), result.ConfigFile)
	fmt.Fprintf(out, "%s %s\n", style.label.Render("baseUrl:"), result.BaseURL)
	fmt.Fprintf(out, "%s %d\n", style.label.Render("scopes:"), result.Scopes)
	fmt.Fprintf(out, "%s %d\n", style.label.Render("aliases:"), result.Aliases)
	return nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
