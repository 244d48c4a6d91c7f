package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tspaths/internal/app"
	"tspaths/internal/types"
)

type resolveOptions struct {
	Issuer string
	Format string
	Strict bool
}

func newResolveCommand(cfg *RootConfig) *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve <specifier>...",
		Short: "Resolve import specifiers through the tsconfig paths aliases",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd.Context(), cmd, cfg, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.Issuer, "issuer", "", "Importing file, relative to --context")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "Report format (text, json, yaml)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail when a specifier stays unresolved")

	_ = viper.BindPFlag("issuer", cmd.Flags().Lookup("issuer"))
	_ = viper.BindPFlag("report_format", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("strict", cmd.Flags().Lookup("strict"))

	return cmd
}

func runResolve(ctx context.Context, cmd *cobra.Command, cfg *RootConfig, opts resolveOptions, specifiers []string) error {
	pluginOpts, err := pluginOptions(cmd, cfg)
	if err != nil {
		return err
	}
	service := newAppService(cmd, pluginOpts.Colors)
	result, err := service.Resolve(ctx, app.ResolveRequest{
		Options:    pluginOpts,
		Specifiers: specifiers,
		Issuer:     resolveString(cmd, opts.Issuer, "issuer", "issuer"),
	})
	if err != nil {
		return err
	}
	format := resolveString(cmd, opts.Format, "report_format", "format")
	if err := service.Reports.WriteResolution(cmd.OutOrStdout(), format, result.Records); err != nil {
		return err
	}
	if resolveBool(cmd, opts.Strict, "strict", "strict") && result.Unresolved > 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("%s: %s", unresolvedPrefix, strings.Join(unresolved(result.Records), ", ")))
	}
	return nil
}

func unresolved(records []types.ResolveRecord) []string {
	var names []string
	for _, record := range records {
		if record.Path == "" {
			names = append(names, record.Specifier)
		}
	}
	return names
}
