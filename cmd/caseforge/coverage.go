package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/caseforge/internal/config"
	"github.com/jonathan/caseforge/internal/observability"
	"github.com/jonathan/caseforge/internal/state"
)

var coverageCommand = &cobra.Command{
	Use:   "coverage",
	Short: "Print the campaign coverage summary",
	Long:  "Reads summary.json from the state directory and prints campaign counters and per-dimension coverage gaps.",
	RunE:  runCoverageCmd,
}

var coverageConfigPath string

func init() {
	coverageCommand.Flags().StringVar(&coverageConfigPath, "config", "", "Path to config.json file")
	rootCmd.AddCommand(coverageCommand)
}

func runCoverageCmd(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(coverageConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	store, err := state.Open(cfg.StateDir)
	if err != nil {
		return err
	}
	summary, err := store.ReadSummary()
	if err != nil {
		return err
	}
	if summary == nil {
		return fmt.Errorf("no summary found in %s, run the server first", cfg.StateDir)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintCampaign(summary)
	printer.PrintCoverage(summary)
	return nil
}
