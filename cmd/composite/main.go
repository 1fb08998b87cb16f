// Command composite collapses fixed windows of tide samples into composite
// products. Each aggregation with a non-empty output flag runs as its own
// job; the jobs run concurrently since they share nothing but the input
// file.
//
// Usage:
//
//	COMPOSITE_WINDOW=5 go run ./cmd/composite \
//	  -in data/overwash.csv \
//	  -mean-out data/overwash_mean.csv \
//	  -max-out data/overwash_max.csv
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/tidal-exposure-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/tidal-exposure-etl/internal/config"
	"github.com/couchcryptid/tidal-exposure-etl/internal/domain"
	"github.com/couchcryptid/tidal-exposure-etl/internal/observability"
	"github.com/couchcryptid/tidal-exposure-etl/internal/pipeline"
)

func main() {
	in := flag.String("in", "", "input CSV of per-parcel series")
	meanOut := flag.String("mean-out", "", "output CSV for window means")
	sumOut := flag.String("sum-out", "", "output CSV for window sums")
	maxOut := flag.String("max-out", "", "output CSV for window maxima")
	flag.Parse()

	outs := map[domain.Aggregation]string{
		domain.AggregationMean: *meanOut,
		domain.AggregationSum:  *sumOut,
		domain.AggregationMax:  *maxOut,
	}

	requested := false
	for _, path := range outs {
		if path != "" {
			requested = true
		}
	}
	if *in == "" || !requested {
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

	g, gctx := errgroup.WithContext(ctx)
	for agg, path := range outs {
		if path == "" {
			continue
		}
		step := pipeline.NewCompositeStep(cfg.CompositeWindow, agg)
		job := pipeline.New(csvfile.NewSource(*in), step, csvfile.NewSink(path), logger, metrics, nil)
		g.Go(func() error { return job.Run(gctx) })
	}

	if err := g.Wait(); err != nil {
		logger.Error("composite failed", "error", err)
		os.Exit(1)
	}
}
