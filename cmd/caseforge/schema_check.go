package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/caseforge/internal/config"
	"github.com/jonathan/caseforge/internal/schema"
)

var schemaCheckCommand = &cobra.Command{
	Use:   "schema-check",
	Short: "Validate the master schema file",
	Long:  "Meta-validates the master schema and reports its indexed leaf count.",
	RunE:  runSchemaCheckCmd,
}

var (
	schemaCheckConfigPath string
	schemaCheckFile       string
)

func init() {
	schemaCheckCommand.Flags().StringVar(&schemaCheckConfigPath, "config", "", "Path to config.json file")
	schemaCheckCommand.Flags().StringVar(&schemaCheckFile, "master-schema-file", "", "Master schema JSON file (overrides config)")
	rootCmd.AddCommand(schemaCheckCommand)
}

func runSchemaCheckCmd(cmd *cobra.Command, _ []string) error {
	path := schemaCheckFile
	if path == "" {
		cfg, err := config.Load(schemaCheckConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		path = cfg.MasterSchemaFile
	}

	index, err := schema.Load(path)
	if err != nil {
		return err
	}
	cmd.Printf("schema OK: %s (%d leaf paths)\n", path, index.LeafCount())
	return nil
}
