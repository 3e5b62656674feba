package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/florathai/harvester/internal/app"
	"github.com/florathai/harvester/internal/config"
	"github.com/florathai/harvester/internal/logging"
)

// newHarvestCmd creates and configures the 'harvest' subcommand, which runs
// the whole pipeline once and exits.
func newHarvestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "harvest",
		Short: "Runs one harvest of the configured letters",
		Long: `Fetches the index page, discovers article links whose anchor text starts
with one of the configured letters, extracts every allowed page, and writes
the corpus and taxa datasets to their configured destinations.`,
		RunE: runHarvestCommand,
	}
	cmd.Flags().StringSlice("letters", nil, "override the configured accepted letters")
	return cmd
}

func runHarvestCommand(cmd *cobra.Command, _ []string) error {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("harvester.yaml"); err == nil {
			path = "harvester.yaml"
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if letters, err := cmd.Flags().GetStringSlice("letters"); err == nil && len(letters) > 0 {
		cfg.Harvest.Letters = letters
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg, logger); err != nil {
		logger.Error("harvest failed", zap.Error(err))
		return err
	}
	return nil
}
