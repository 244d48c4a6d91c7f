package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tspaths/internal/app"
)

type buildOptions struct {
	EntryPoints []string
	Outfile     string
	Outdir      string
	Bundle      bool
	Format      string
	Platform    string
	Write       bool
}

func newBuildCommand(cfg *RootConfig) *cobra.Command {
	opts := buildOptions{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Bundle entry points with esbuild, resolving tsconfig paths aliases",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), cmd, cfg, opts, args)
		},
	}

	cmd.Flags().StringSliceVar(&opts.EntryPoints, "entry", nil, "Entry point(s), relative to --context")
	cmd.Flags().StringVar(&opts.Outfile, "outfile", "", "Output file (single entry point)")
	cmd.Flags().StringVar(&opts.Outdir, "outdir", "", "Output directory")
	cmd.Flags().BoolVar(&opts.Bundle, "bundle", true, "Bundle imports into the output")
	cmd.Flags().StringVar(&opts.Format, "format", "", "Output format (esm, cjs, iife)")
	cmd.Flags().StringVar(&opts.Platform, "platform", "browser", "Target platform (browser, node, neutral)")
	cmd.Flags().BoolVar(&opts.Write, "write", true, "Write outputs to disk")

	_ = viper.BindPFlag("entry", cmd.Flags().Lookup("entry"))
	_ = viper.BindPFlag("outfile", cmd.Flags().Lookup("outfile"))
	_ = viper.BindPFlag("outdir", cmd.Flags().Lookup("outdir"))
	_ = viper.BindPFlag("bundle", cmd.Flags().Lookup("bundle"))
	_ = viper.BindPFlag("build_format", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("platform", cmd.Flags().Lookup("platform"))
	_ = viper.BindPFlag("write", cmd.Flags().Lookup("write"))

	return cmd
}

func runBuild(ctx context.Context, cmd *cobra.Command, cfg *RootConfig, opts buildOptions, args []string) error {
	pluginOpts, err := pluginOptions(cmd, cfg)
	if err != nil {
		return err
	}
	entries := append(resolveStrings(cmd, opts.EntryPoints, "entry", "entry"), args...)
	service := newAppService(cmd, pluginOpts.Colors)
	write := resolveBool(cmd, opts.Write, "write", "write")
	result, err := service.Build(ctx, app.BuildRequest{
		Options:     pluginOpts,
		EntryPoints: entries,
		Outfile:     resolveString(cmd, opts.Outfile, "outfile", "outfile"),
		Outdir:      resolveString(cmd, opts.Outdir, "outdir", "outdir"),
		Bundle:      resolveBool(cmd, opts.Bundle, "bundle", "bundle"),
		Format:      resolveString(cmd, opts.Format, "build_format", "format"),
		Platform:    resolveString(cmd, opts.Platform, "platform", "platform"),
		Write:       write,
	})
	if err != nil {
		return err
	}
	style := newStyles(pluginOpts.Colors)
	out := cmd.OutOrStdout()
	for _, warning := range result.Warnings {
		fmt.Fprintf(out, "%s %s\n", style.warn.Render("warning"), warning)
	}
	label := "wrote"
	if !write {
		label = "built"
	}
	for _, output := range result.Outputs {
		fmt.Fprintf(out, "%s %s\n", style.ok.Render(label), output)
	}
	return nil
}
