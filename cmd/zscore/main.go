// Command zscore standardizes a per-parcel series table. In chunked mode the
// samples are pooled in fixed-size groups across all rows, matching how the
// seasonal tide records were collected; in columns mode each sample column
// is standardized independently.
//
// Usage:
//
//	ZSCORE_CHUNK=19 go run ./cmd/zscore \
//	  -in data/overwash_mean.csv \
//	  -out data/overwash_mean_std.csv \
//	  -mode chunked
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
	in := flag.String("in", "", "input CSV of per-parcel series")
	out := flag.String("out", "", "output CSV path")
	mode := flag.String("mode", "chunked", "standardization mode: chunked or columns")
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

	var step pipeline.Step
	switch *mode {
	case "chunked":
		step = pipeline.NewChunkedZScoreStep(cfg.ZScoreChunk)
	case "columns":
		step = pipeline.ColumnZScoreStep{}
	default:
		logger.Error("unknown mode", "mode", *mode)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	job := pipeline.New(csvfile.NewSource(*in), step, csvfile.NewSink(*out), logger, metrics, nil)
	if err := job.Run(ctx); err != nil {
		logger.Error("standardization failed", "error", err)
		os.Exit(1)
	}
}
