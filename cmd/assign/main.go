// Command assign joins every farmland parcel to its nearest tide gauge and
// writes the parcel table augmented with the gauge's time series.
//
// Usage:
//
//	go run ./cmd/assign \
//	  -targets data/farmland.csv \
//	  -reference data/high_tides.csv \
//	  -out data/farmland_high_tides.csv
//
// The search strategy is selected with INDEX_TYPE (brute or grid); grid cells
// are sized with GRID_CELL_DEGREES. With METRICS_ENABLED=true an HTTP server
// on HTTP_ADDR serves /metrics, /healthz, and /readyz while the scan runs.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/tidal-exposure-etl/internal/adapter/csvfile"
	httpadapter "github.com/couchcryptid/tidal-exposure-etl/internal/adapter/http"
	"github.com/couchcryptid/tidal-exposure-etl/internal/config"
	"github.com/couchcryptid/tidal-exposure-etl/internal/observability"
	"github.com/couchcryptid/tidal-exposure-etl/internal/pipeline"
	"github.com/couchcryptid/tidal-exposure-etl/internal/spatial"
)

func main() {
	targets := flag.String("targets", "", "CSV of parcels to augment")
	reference := flag.String("reference", "", "CSV of tide gauge series")
	out := flag.String("out", "", "output CSV path")
	flag.Parse()

	if *targets == "" || *reference == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	refTable, err := csvfile.NewSource(*reference).ReadTable(ctx)
	if err != nil {
		logger.Error("failed to read reference table", "error", err)
		os.Exit(1)
	}

	index, err := newIndex(cfg)
	if err != nil {
		logger.Error("failed to build index", "error", err)
		os.Exit(1)
	}
	logger.Info("index selected", "type", cfg.IndexType, "reference_rows", len(refTable.Records))

	progress := pipeline.NewProgressLogger(logger, clock, cfg.ProgressInterval)
	step := pipeline.NewAssignStep(refTable, index, progress, metrics)
	job := pipeline.New(csvfile.NewSource(*targets), step, csvfile.NewSink(*out), logger, metrics, clock)

	var srv *httpadapter.Server
	if cfg.MetricsEnabled {
		srv = httpadapter.NewServer(cfg.HTTPAddr, job, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
	}

	runErr := job.Run(ctx)

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
	}

	if runErr != nil {
		logger.Error("assignment failed", "error", runErr)
		os.Exit(1)
	}
}

func newIndex(cfg *config.Config) (spatial.Index, error) {
	switch cfg.IndexType {
	case "grid":
		return spatial.NewCellGrid(cfg.GridCellDegrees)
	case "brute":
		return spatial.NewBruteForce(nil), nil
	default:
		return nil, fmt.Errorf("unknown index type %q", cfg.IndexType)
	}
}
