// Package cmd defines and implements the CLI commands for the harvester executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "harvester",
		Short: "Ingestion pipeline for the Thai flora encyclopedia",
		Long: `harvester discovers article pages on the source reference site, fetches
them under a bounded-concurrency rate-limited schedule while respecting the
site's robots directives, extracts structured fields from the page HTML, and
emits the content corpus and species classification datasets consumed by the
database loader.`,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./harvester.yaml)")
	cmd.AddCommand(newHarvestCmd())

	return cmd
}

// Execute is the main entry point. It exits non-zero on any fatal error.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
