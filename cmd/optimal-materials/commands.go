package main

import (
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/netscript-tools/material-optimizer/internal/config"
	"github.com/netscript-tools/material-optimizer/internal/logging"
	"github.com/netscript-tools/material-optimizer/internal/metrics"
)

// app carries the state shared by every command of one invocation.
type app struct {
	v        *viper.Viper
	cfg      config.Config
	logger   logr.Logger
	recorder *metrics.Recorder
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	config.SetDefaults(a.v)

	rootCmd := &cobra.Command{
		Use:   "optimal-materials [industry] [size]",
		Short: "Compute the material storage that maximizes a division's production",
		Long: `Computes how much Hardware, Real Estate, Robots and AI Cores a division
should keep in its warehouse to maximize its production factor.

The industry is a catalog name such as "Software" or "Real Estate"; common
spellings like real-estate are accepted. Size is the storage budget.`,
		Example:           "  optimal-materials Software 200\n  optimal-materials -o json \"Real Estate\" 5000",
		Args:              cobra.ExactArgs(2),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.finish(a.runSolve(cmd, args[0], args[1]))
		},
	}

	d := config.Default()
	flags := rootCmd.PersistentFlags()
	flags.String(config.KeyConfigFile, "", "Path to a YAML config file")
	flags.String(config.KeyLogLevel, d.LogLevel, "Log level: error, info, debug or trace")
	flags.Bool(config.KeyDevelopment, d.Development, "Use human readable development logging")
	flags.StringP(config.KeyOutput, "o", d.Output, "Output format: text, json or yaml")
	flags.Int(config.KeyWorkers, d.Workers, "Number of plan entries solved concurrently")
	flags.Bool(config.KeyFailFast, d.FailFast, "Stop planning at the first failed entry")
	flags.String(config.KeyMetricsFile, d.MetricsFile, "Write solve metrics to this file in Prometheus text format")
	// Only fails for a nil flag set.
	_ = a.v.BindPFlags(flags)

	rootCmd.AddCommand(a.industriesCmd())
	rootCmd.AddCommand(a.planCmd())
	rootCmd.AddCommand(a.scriptCmd())
	return rootCmd
}

func (a *app) industriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "industries",
		Short: "List the industries and their production factors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.finish(a.runIndustries(cmd))
		},
	}
}

func (a *app) planCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan [file]",
		Short: "Solve every division listed in a YAML plan file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.finish(a.runPlan(cmd, args[0]))
		},
	}
}

func (a *app) scriptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "script [file]",
		Short: "Run a Lua script with the corp bindings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.finish(a.runScript(cmd, args[0]))
		},
	}
}

// setup loads the configuration and installs the logger on the command context.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	logger, err := logging.NewLogger(cfg.LogLevel, cfg.Development)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	if cfg.MetricsFile != "" {
		a.recorder = metrics.NewRecorder()
	}
	cmd.SetContext(logging.IntoContext(cmd.Context(), logger))
	logger.V(logging.DEBUG).Info("Configuration loaded",
		"output", cfg.Output,
		"workers", cfg.Workers,
		"failFast", cfg.FailFast)
	return nil
}

// finish writes the metrics textfile, if one is configured, whatever the
// outcome of the command.
func (a *app) finish(err error) error {
	if a.recorder == nil {
		return err
	}
	if werr := a.recorder.WriteTextfile(a.cfg.MetricsFile); werr != nil {
		return utilerrors.NewAggregate([]error{err, werr})
	}
	a.logger.V(logging.DEBUG).Info("Metrics written", "path", a.cfg.MetricsFile)
	return err
}
