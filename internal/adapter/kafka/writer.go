// Package kafka publishes exposure tables to a Kafka topic, one message per
// parcel row, for downstream consumers that want the assigned series without
// re-parsing CSV exports.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/tidal-exposure-etl/internal/config"
	"github.com/couchcryptid/tidal-exposure-etl/internal/domain"
	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
)

// rowMessage is the JSON payload published for each parcel row.
type rowMessage struct {
	Lat    float64            `json:"lat"`
	Lon    float64            `json:"lon"`
	Series map[string]float64 `json:"series"`
}

// Writer publishes table rows to a Kafka topic.
// It implements pipeline.TableSink.
type Writer struct {
	writer *kafkago.Writer
	source string
	logger *slog.Logger
	clock  clockwork.Clock
}

// NewWriter creates a Kafka producer for the configured sink topic. source
// names the dataset being exported and is attached to every message as a
// header. A nil clock defaults to the real clock.
func NewWriter(cfg *config.Config, source string, logger *slog.Logger, clock clockwork.Clock) *Writer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, source: source, logger: logger, clock: clock}
}

func (w *Writer) Name() string { return w.writer.Topic }

// WriteTable serializes and publishes every row of the table in a single
// WriteMessages call so the batch is acknowledged as one unit.
func (w *Writer) WriteTable(ctx context.Context, t domain.Table) error {
	if len(t.Records) == 0 {
		w.logger.Warn("nothing to export", "topic", w.writer.Topic)
		return nil
	}
	width, err := t.Width()
	if err != nil {
		return err
	}
	if width != len(t.Series) {
		return &domain.ShapeMismatchError{Expected: len(t.Series), Actual: width, Row: -1}
	}

	exportedAt := w.clock.Now().UTC().Format(time.RFC3339)
	msgs := make([]kafkago.Message, len(t.Records))
	for i, rec := range t.Records {
		msg, err := w.serializeToMessage(t.Series, rec, exportedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish to %s: %w", w.writer.Topic, err)
	}
	w.logger.Info("exported table", "topic", w.writer.Topic, "rows", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals one parcel row into a Kafka message keyed by
// its coordinate, so all exports of one parcel land in the same partition.
func (w *Writer) serializeToMessage(series []string, rec domain.Record, exportedAt string) (kafkago.Message, error) {
	row := rowMessage{
		Lat:    rec.Coord.Lat,
		Lon:    rec.Coord.Lon,
		Series: make(map[string]float64, len(series)),
	}
	for i, name := range series {
		row.Series[name] = rec.Values[i]
	}
	data, err := json.Marshal(row)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize parcel row: %w", err)
	}
	key := strconv.FormatFloat(rec.Coord.Lat, 'g', -1, 64) + "," + strconv.FormatFloat(rec.Coord.Lon, 'g', -1, 64)
	return kafkago.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "source_file", Value: []byte(w.source)},
			{Key: "exported_at", Value: []byte(exportedAt)},
		},
	}, nil
}
