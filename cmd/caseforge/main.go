// Package main provides the entry point for the case instruction server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "caseforge",
	Short: "Case instruction server for succession-law training pairs",
	Long: "Caseforge issues coverage-balanced authoring instructions for French succession-law " +
		"case narratives, validates submissions against their structured targets and maintains " +
		"the campaign's training exports.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
