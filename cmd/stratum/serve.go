package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/solardome/stratum/internal/catalog"
	"github.com/solardome/stratum/internal/server"
)

type serveFlags struct {
	listen string
	watch  bool
}

func newServeCmd(g *globalFlags) *cobra.Command {
	f := &serveFlags{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard, gauge image and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := resolve(cmd, g)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("listen") {
				cfg.Server.Listen = f.listen
			}
			if cmd.Flags().Changed("watch") {
				cfg.Data.Watch = f.watch
			}
			if err := cfg.Validate(); err != nil {
				return exitError(exitUsage, "%v", err)
			}

			store, err := catalog.NewStore(cfg.Data.Path, logger)
			if err != nil {
				return exitError(exitData, "%v", err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cfg.Data.Watch {
				w, err := catalog.NewWatcher(store, catalog.DefaultDebounce, logger)
				if err != nil {
					return err
				}
				if err := w.Start(ctx); err != nil {
					return err
				}
				defer func() { _ = w.Stop() }()
			}

			ds := store.Current()
			logger.Info("dataset loaded",
				"source", ds.Source,
				"sha256", ds.Digest,
				"instances", len(ds.Instances),
				"non_compliant", len(ds.NonCompliant()))

			srv := server.New(store, server.Options{
				Listen:          cfg.Server.Listen,
				ReadTimeout:     cfg.Server.ReadTimeout(),
				WriteTimeout:    cfg.Server.WriteTimeout(),
				ShutdownTimeout: cfg.Server.ShutdownTimeout(),
				Version:         version,
			}, logger)
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&f.listen, "listen", "", "Listen address (overrides server.listen)")
	cmd.Flags().BoolVar(&f.watch, "watch", false, "Reload the dataset file when it changes")
	return cmd
}
