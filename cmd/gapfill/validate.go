package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/icos-etc/gapfill-mds/internal/config"
	"github.com/icos-etc/gapfill-mds/internal/ingest"
	"github.com/icos-etc/gapfill-mds/internal/telemetry"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a run configuration and its input table without running the engine",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	if cfgFile == "" {
		return fmt.Errorf("--config is required")
	}

	logger := telemetry.NewLogger(telemetry.LoggerConfig{Output: os.Stdout})

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	logger.Info("config valid", "path", cfgFile)

	if _, err := cfg.EngineTimeRes(); err != nil {
		return fmt.Errorf("invalid run.time_res: %w", err)
	}

	table, err := ingest.LoadCSV(cfg.Input.Path)
	if err != nil {
		return err
	}
	logger.Info("table loaded", "rows", table.Matrix.RowsCount, "cols", table.Matrix.ColsCount)

	if _, err := ingest.ResolveColumns(table.Columns, cfg.Columns.Target, cfg.Columns.Drivers, cfg.Columns.DriverQC); err != nil {
		return fmt.Errorf("column resolution failed: %w", err)
	}

	if cfg.Run.StartRow > 0 && cfg.Run.EndRow > 0 && cfg.Run.StartRow >= cfg.Run.EndRow {
		return fmt.Errorf("run.start_row (%d) must be less than run.end_row (%d)", cfg.Run.StartRow, cfg.Run.EndRow)
	}

	fmt.Println("✓ configuration and input table are valid")
	return nil
}
