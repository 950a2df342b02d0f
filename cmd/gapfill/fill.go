package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/icos-etc/gapfill-mds/internal/config"
	"github.com/icos-etc/gapfill-mds/internal/ingest"
	"github.com/icos-etc/gapfill-mds/internal/telemetry"
	"github.com/icos-etc/gapfill-mds/mds"
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Run the gap-fill engine over a configured CSV table",
	Args:  cobra.NoArgs,
	RunE:  runFill,
}

var metricsAddr string

func init() {
	fillCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics here after the run completes (e.g. :9090); empty disables")
}

func runFill(cmd *cobra.Command, args []string) error {
	if cfgFile == "" {
		return fmt.Errorf("--config is required")
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logLevel := telemetry.LogLevel(cfg.Logging.Level)
	if verbose {
		logLevel = telemetry.LogLevelDebug
	}
	logger := telemetry.NewLogger(telemetry.LoggerConfig{
		Level:  logLevel,
		Format: telemetry.LogFormat(cfg.Logging.Format),
		Output: os.Stdout,
	})
	metrics := telemetry.NewMetrics(telemetry.MetricsConfig{Namespace: "gapfill"})

	logger.Info("loading table", "path", cfg.Input.Path)
	table, err := ingest.LoadCSV(cfg.Input.Path)
	if err != nil {
		return err
	}

	cols, err := ingest.ResolveColumns(table.Columns, cfg.Columns.Target, cfg.Columns.Drivers, cfg.Columns.DriverQC)
	if err != nil {
		return err
	}
	cols.QCThrs = cfg.Columns.QCThrs

	timeres, err := cfg.EngineTimeRes()
	if err != nil {
		return err
	}

	opts := mds.Options{
		TimeRes:    timeres,
		Tolerances: cfg.EngineTolerances(),
		ValuesMin:  cfg.Run.ValuesMin,
		ComputeHat: cfg.Run.ComputeHat,
		StartRow:   cfg.Run.StartRow,
		EndRow:     cfg.Run.EndRow,
		Parallel:   cfg.Run.Parallel,
	}

	logger.Info("running gap-fill", "rows", table.Matrix.RowsCount, "time_res", cfg.Run.TimeRes)
	start := time.Now()
	result, err := mds.GapFillWithBounds(table.Matrix, cols, opts)
	elapsed := time.Since(start)
	metrics.FillDuration.Observe(elapsed.Seconds())
	if err != nil {
		return fmt.Errorf("gap-fill failed: %w", err)
	}

	for _, row := range result.Rows {
		if row.Method == mds.MethodNone {
			continue
		}
		metrics.RowsFilled.WithLabelValues(methodLabel(row.Method)).Inc()
	}
	metrics.RowsUnfilled.Add(float64(result.NoGapsFilledCount))

	logger.Info("gap-fill complete",
		"duration", elapsed.String(),
		"rows", len(result.Rows),
		"unfilled", strconv.Itoa(result.NoGapsFilledCount))

	if cfg.Input.OutputPath != "" {
		if err := ingest.WriteResultCSV(cfg.Input.OutputPath, result); err != nil {
			return err
		}
		logger.Info("wrote results", "path", cfg.Input.OutputPath)
	}

	if metricsAddr != "" {
		serveMetricsUntilInterrupt(metricsAddr, metrics, logger)
	}
	return nil
}

func methodLabel(m mds.Method) string {
	switch m {
	case mds.MethodAll:
		return "all"
	case mds.MethodD1:
		return "d1"
	case mds.MethodTarget:
		return "target"
	default:
		return "none"
	}
}

func serveMetricsUntilInterrupt(addr string, metrics *telemetry.Metrics, logger *telemetry.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server stopped", "error", err.Error())
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	<-sigChan
	srv.Close()
}
