package main

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solardome/stratum/internal/gauge"
	"github.com/solardome/stratum/internal/termview"
)

type gaugeFlags struct {
	score    float64
	progress float64
	size     string
	format   string
}

func newGaugeCmd() *cobra.Command {
	f := &gaugeFlags{}
	cmd := &cobra.Command{
		Use:   "gauge",
		Short: "Compute a compliance gauge and print it as text, JSON or SVG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("score") {
				return exitError(exitUsage, "--score is required")
			}
			size, err := gauge.ParseSize(f.size)
			if err != nil {
				return exitError(exitUsage, "%v", err)
			}
			in := gauge.Input{Score: f.score, Size: size}
			if cmd.Flags().Changed("progress") {
				p := f.progress
				in.VisualProgress = &p
			}
			return writeGauge(cmd, gauge.Compute(in), f.format)
		},
	}
	flags := cmd.Flags()
	flags.Float64Var(&f.score, "score", 0, "Compliance score (percent)")
	flags.Float64Var(&f.progress, "progress", 0, "Visual arc progress (default: score)")
	flags.StringVar(&f.size, "size", "lg", "Gauge size: sm, md or lg")
	flags.StringVar(&f.format, "format", "text", "Output format: text, json or svg")
	return cmd
}

func writeGauge(cmd *cobra.Command, g gauge.Gauge, format string) error {
	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "text":
		fmt.Fprintln(out, termview.New().Gauge(g))
	case "svg":
		fmt.Fprintln(out, gauge.SVG(g))
	case "json":
		if !finite(g.Score) || !finite(g.Progress) {
			return exitError(exitUsage, "json output requires finite --score and --progress")
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(g)
	default:
		return exitError(exitUsage, "unknown --format %q (want text, json or svg)", format)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
