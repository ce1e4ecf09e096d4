// Command parksim runs the theme park simulation headless.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "parksim",
		Short:         "Theme park guest and staff simulation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return setupLogging(logLevel)
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(inspectCmd())
	rootCmd.AddCommand(savesCmd())
	rootCmd.AddCommand(assetsCmd())

	if err := rootCmd.Execute(); err != nil {
		slog.Error("parksim failed", "error", err)
		os.Exit(1)
	}
}

func setupLogging(level string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: l,
	}))
	slog.SetDefault(logger)
	return nil
}

func runCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the park and run the simulation",
		Long: "Run the park for a number of days, or in real time until interrupted.\n" +
			"The game is saved on exit and the ledger records messages, money and daily reports.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPark(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "scenario file (default: built-in demo park)")
	cmd.Flags().StringVar(&opts.save, "save", "data/park.sav", "save file")
	cmd.Flags().StringVar(&opts.db, "db", "data/park.db", "ledger database")
	cmd.Flags().IntVarP(&opts.days, "days", "d", 0, "days to simulate; 0 runs in real time until interrupted")
	cmd.Flags().BoolVar(&opts.resume, "resume", false, "continue from the save file when it exists")
	cmd.Flags().Float64Var(&opts.speed, "speed", 0, "real time speed multiplier (default from the scenario)")
	return cmd
}

func inspectCmd() *cobra.Command {
	var configPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect [save-file]",
		Short: "Load a save file and summarise the park",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runInspect(args[0], configPath, asJSON)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "scenario file the save belongs to")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

func savesCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "saves",
		Short: "List the saves recorded in the ledger",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSaves(dbPath)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "data/park.db", "ledger database")
	return cmd
}

func assetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assets [directory]",
		Short: "List the RCD data files of a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runAssets(args[0])
		},
	}
}
