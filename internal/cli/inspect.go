package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tspaths/internal/app"
)

type inspectOptions struct {
	Format string
}

func newInspectCommand(cfg *RootConfig) *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the compiled alias tables for the root config and references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd.Context(), cmd, cfg, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Format, "format", "text", "Report format (text, json, yaml)")
	_ = viper.BindPFlag("report_format", cmd.Flags().Lookup("format"))
	return cmd
}

func runInspect(ctx context.Context, cmd *cobra.Command, cfg *RootConfig, opts inspectOptions) error {
	pluginOpts, err := pluginOptions(cmd, cfg)
	if err != nil {
		return err
	}
	service := newAppService(cmd, pluginOpts.Colors)
	result, err := service.Inspect(ctx, app.InspectRequest{Options: pluginOpts})
	if err != nil {
		return err
	}
	format := resolveString(cmd, opts.Format, "report_format", "format")
	return service.Reports.WriteInspection(cmd.OutOrStdout(), format, result.Scopes)
}
