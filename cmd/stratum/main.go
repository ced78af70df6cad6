package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solardome/stratum/internal/config"
)

var version = "2.4.1"

const (
	exitUsage = 2
	exitData  = 3
)

type globalFlags struct {
	configPath string
	dataPath   string
	logLevel   string
	logFormat  string
}

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func exitError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "stratum",
		Short:         "Platform compliance dashboard for EC2 fleets",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "Path to stratum config (YAML or JSONC)")
	pf.StringVar(&g.dataPath, "data", "", "Dataset file (default: built-in demo data)")
	pf.StringVar(&g.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	pf.StringVar(&g.logFormat, "log-format", "text", "Log format: text or json")

	root.AddCommand(
		newServeCmd(g),
		newGaugeCmd(),
		newStatusCmd(g),
		newRenderCmd(g),
		newVersionCmd(),
	)
	return root
}

// resolve loads the config file and applies any persistent flags set on the command line.
func resolve(cmd *cobra.Command, g *globalFlags) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return config.Config{}, nil, exitError(exitUsage, "%v", err)
	}
	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.Data.Path = g.dataPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = g.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = g.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, exitError(exitUsage, "%v", err)
	}
	return cfg, newLogger(cmd.ErrOrStderr(), cfg.Log), nil
}

func newLogger(w io.Writer, lc config.LogConfig) *slog.Logger {
	level, _ := config.ParseLevel(lc.Level)
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(lc.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the stratum version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "stratum v%s\n", version)
			return nil
		},
	}
}
