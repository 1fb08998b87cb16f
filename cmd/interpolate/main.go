// Command interpolate fills missing samples in a per-parcel series table by
// linear interpolation within each season-length block, extrapolating at the
// block edges.
//
// Usage:
//
//	SEASON_LENGTH=19 go run ./cmd/interpolate \
//	  -in data/high_tides_raw.csv \
//	  -out data/high_tides.csv
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/tidal-exposure-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/tidal-exposure-etl/internal/config"
	"github.com/couchcryptid/tidal-exposure-etl/internal/observability"
	"github.com/couchcryptid/tidal-exposure-etl/internal/pipeline"
)

func main() {
	in := flag.String("in", "", "input CSV with gaps")
	out := flag.String("out", "", "output CSV path")
	flag.Parse()

	if *in == "" || *out == "" {
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	step := pipeline.NewInterpolateStep(cfg.SeasonLength)
	job := pipeline.New(csvfile.NewSource(*in), step, csvfile.NewSink(*out), logger, metrics, nil)
	if err := job.Run(ctx); err != nil {
		logger.Error("interpolation failed", "error", err)
		os.Exit(1)
	}
}
