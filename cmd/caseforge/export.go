package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/caseforge/internal/config"
	"github.com/jonathan/caseforge/internal/state"
)

var exportCommand = &cobra.Command{
	Use:   "export",
	Short: "Rebuild the training export files",
	Long:  "Replays the submission log and regenerates the chat-format training JSONL files.",
	RunE:  runExportCmd,
}

var exportConfigPath string

func init() {
	exportCommand.Flags().StringVar(&exportConfigPath, "config", "", "Path to config.json file")
	rootCmd.AddCommand(exportCommand)
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(exportConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	store, err := state.Open(cfg.StateDir)
	if err != nil {
		return err
	}
	_, submitted, err := store.Replay()
	if err != nil {
		return err
	}
	if err := store.WriteTrainingExports(submitted); err != nil {
		return err
	}
	cmd.Printf("exported %d training pairs to %s\n", len(submitted), cfg.StateDir)
	return nil
}
