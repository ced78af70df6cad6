package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solardome/stratum/internal/catalog"
	"github.com/solardome/stratum/internal/termview"
)

func newStatusCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the fleet compliance summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := resolve(cmd, g)
			if err != nil {
				return err
			}
			ds, err := catalog.Load(cfg.Data.Path)
			if err != nil {
				return exitError(exitData, "%v", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), termview.New().Summary(ds))
			return nil
		},
	}
}
