// Command export publishes a finished exposure table to the configured
// Kafka topic, one message per parcel row, keyed by coordinate.
//
// Usage:
//
//	KAFKA_BROKERS=localhost:9092 KAFKA_SINK_TOPIC=tidal-exposure-records \
//	  go run ./cmd/export -in data/overwash_mean_std.csv
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/couchcryptid/tidal-exposure-etl/internal/adapter/csvfile"
	kafkaadapter "github.com/couchcryptid/tidal-exposure-etl/internal/adapter/kafka"
	"github.com/couchcryptid/tidal-exposure-etl/internal/config"
	"github.com/couchcryptid/tidal-exposure-etl/internal/domain"
	"github.com/couchcryptid/tidal-exposure-etl/internal/observability"
	"github.com/couchcryptid/tidal-exposure-etl/internal/pipeline"
)

// passthrough hands the input table to the sink unchanged.
type passthrough struct{}

func (passthrough) Name() string { return "export" }

func (passthrough) Apply(_ context.Context, t domain.Table) (domain.Table, error) {
	return t, nil
}

func main() {
	in := flag.String("in", "", "CSV table to publish")
	flag.Parse()

	if *in == "" {
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

	writer := kafkaadapter.NewWriter(cfg, filepath.Base(*in), logger, nil)
	defer func() {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}()

	job := pipeline.New(csvfile.NewSource(*in), passthrough{}, writer, logger, metrics, nil)
	if err := job.Run(ctx); err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}
}
