// Command surgeevent derives storm event series from assigned tide tables.
// It computes tidal amplitude (high minus low tide) and relative overwash
// (parcel elevation minus high tide); either output may be skipped by
// leaving its flag empty.
//
// Usage:
//
//	go run ./cmd/surgeevent \
//	  -high data/farmland_high_tides.csv \
//	  -low data/farmland_low_tides.csv \
//	  -dem data/farmland.csv \
//	  -elevation-column elev \
//	  -amplitude-out data/amplitude.csv \
//	  -overwash-out data/overwash.csv
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
	high := flag.String("high", "", "CSV of per-parcel high tide series")
	low := flag.String("low", "", "CSV of per-parcel low tide series")
	dem := flag.String("dem", "", "CSV holding parcel elevations")
	elevColumn := flag.String("elevation-column", "", "elevation series name in the DEM table (first series if empty)")
	amplitudeOut := flag.String("amplitude-out", "", "output CSV for the amplitude series")
	overwashOut := flag.String("overwash-out", "", "output CSV for the overwash series")
	flag.Parse()

	if *high == "" || (*amplitudeOut == "" && *overwashOut == "") {
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

	if *amplitudeOut != "" {
		if *low == "" {
			logger.Error("amplitude output requires -low")
			os.Exit(2)
		}
		lowTable, err := csvfile.NewSource(*low).ReadTable(ctx)
		if err != nil {
			logger.Error("failed to read low tide table", "error", err)
			os.Exit(1)
		}
		step := pipeline.NewAmplitudeStep(lowTable)
		job := pipeline.New(csvfile.NewSource(*high), step, csvfile.NewSink(*amplitudeOut), logger, metrics, nil)
		if err := job.Run(ctx); err != nil {
			logger.Error("amplitude job failed", "error", err)
			os.Exit(1)
		}
	}

	if *overwashOut != "" {
		if *dem == "" {
			logger.Error("overwash output requires -dem")
			os.Exit(2)
		}
		demTable, err := csvfile.NewSource(*dem).ReadTable(ctx)
		if err != nil {
			logger.Error("failed to read elevation table", "error", err)
			os.Exit(1)
		}
		step, err := pipeline.NewOverwashStep(demTable, *elevColumn)
		if err != nil {
			logger.Error("failed to prepare overwash step", "error", err)
			os.Exit(1)
		}
		job := pipeline.New(csvfile.NewSource(*high), step, csvfile.NewSink(*overwashOut), logger, metrics, nil)
		if err := job.Run(ctx); err != nil {
			logger.Error("overwash job failed", "error", err)
			os.Exit(1)
		}
	}
}
