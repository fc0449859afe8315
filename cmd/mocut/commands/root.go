package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/mocut/config"
	"github.com/katalvlaran/mocut/telemetry"
)

// app carries what every subcommand needs once the root has loaded config.
type app struct {
	configPath string
	logLevel   string
	workers    int

	cfg *config.Config
	log zerolog.Logger
	out io.Writer
}

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	return newRootCommand(version, commit, buildDate).ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "mocut",
		Short: "mocut - motion capture cost matrices",
		Long: `mocut scores every contiguous window [s, e] of an animation with an
operation and stores the results as a cost matrix.

Operations:
  - interp: deviation from linear interpolation between the window ends
  - dtw:    dynamic time warping distance to a reference clip`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file path (YAML)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override logging.level")
	rootCmd.PersistentFlags().IntVarP(&a.workers, "workers", "w", 0, "override workers")

	rootCmd.AddCommand(newComputeCommand(a))
	rootCmd.AddCommand(newInspectCommand(a))
	rootCmd.AddCommand(newShowCommand(a))
	rootCmd.AddCommand(newRunsCommand(a))
	rootCmd.AddCommand(newWatchCommand(a))
	rootCmd.AddCommand(newConfigCommand(a))

	return rootCmd
}

// load reads config, applies flag overrides and builds the logger.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.workers != 0 {
		cfg.Workers = a.workers
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	logger, err := telemetry.NewLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	log.Logger = logger

	a.cfg = cfg
	a.log = logger
	a.out = cmd.OutOrStdout()

	return nil
}

func newConfigCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			out, err := a.cfg.YAML()
			if err != nil {
				return err
			}
			_, err = a.out.Write(out)

			return err
		},
	}
}
