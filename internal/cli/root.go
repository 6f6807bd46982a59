// Package cli provides the command-line interface for DataInspect.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/datainspect/datainspect/internal/cli/commands"
	"github.com/datainspect/datainspect/internal/config"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "datainspect",
		Short: "DataInspect - tabular data workbench",
		Long: `DataInspect imports tabular data, infers column types and statistics,
and manages projects of data sources and chart configurations.

Projects are stored as .dinsp files and can be inspected, extended and
validated from this CLI without the desktop interface.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			flags := cmd.Root().PersistentFlags()
			cfg, err := config.Load(cfgFile, flags)
			if err != nil {
				return err
			}

			verbose, _ := flags.GetBool("verbose")
			setupLogging(cfg.LogLevel, verbose)

			cmd.SetContext(commands.WithConfig(cmd.Context(), cfg))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.datainspect/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		commands.NewNewCommand(),
		commands.NewInfoCommand(),
		commands.NewImportCommand(),
		commands.NewSourcesCommand(),
		commands.NewVizCommand(),
		commands.NewPreviewCommand(),
		commands.NewStatsCommand(),
		commands.NewRecentCommand(),
		commands.NewVersionCommand(Version, BuildDate, GitCommit),
	)
	return rootCmd
}

func setupLogging(level string, verbose bool) {
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
