package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/solardome/stratum/internal/catalog"
	"github.com/solardome/stratum/internal/dashboard"
)

func newRenderCmd(g *globalFlags) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the dashboard as a static site with snapshot and checksums",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := resolve(cmd, g)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("out") {
				cfg.Render.OutDir = out
			}
			if err := cfg.Validate(); err != nil {
				return exitError(exitUsage, "%v", err)
			}
			ds, err := catalog.Load(cfg.Data.Path)
			if err != nil {
				return exitError(exitData, "%v", err)
			}
			res, err := dashboard.Publish(cfg.Render.OutDir, ds, version, time.Now())
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}
			logger.Debug("site rendered", "out_dir", res.OutDir, "pages", len(res.Pages), "source", ds.Source)
			fmt.Fprintf(cmd.OutOrStdout(), "pages=%d out=%s checksums=%s run_log=%s\n", len(res.Pages), res.OutDir, res.Checksums, res.RunLog)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Output directory (overrides render.out_dir)")
	return cmd
}
