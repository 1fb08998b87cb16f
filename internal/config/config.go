package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all pipeline settings, populated from environment variables.
// File paths are deliberately absent: every command takes its input and
// output paths as flags, so a run is reproducible from its command line.
type Config struct {
	LogLevel  string
	LogFormat string

	// Metrics server, opt-in for long-running scans.
	MetricsEnabled  bool
	HTTPAddr        string
	ShutdownTimeout time.Duration

	// Nearest-neighbor strategy.
	IndexType       string // "brute" or "grid"
	GridCellDegrees float64

	// Transform parameters.
	CompositeWindow int
	ZScoreChunk     int
	SeasonLength    int

	// Progress logging cadence, in processed rows.
	ProgressInterval int

	// Kafka export.
	KafkaBrokers   []string
	KafkaSinkTopic string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	gridCell, err := parsePositiveFloat("GRID_CELL_DEGREES", 0.5)
	if err != nil {
		return nil, err
	}

	window, err := parsePositiveInt("COMPOSITE_WINDOW", 5)
	if err != nil {
		return nil, err
	}
	chunk, err := parsePositiveInt("ZSCORE_CHUNK", 19)
	if err != nil {
		return nil, err
	}
	season, err := parsePositiveInt("SEASON_LENGTH", 19)
	if err != nil {
		return nil, err
	}
	progress, err := parsePositiveInt("PROGRESS_INTERVAL", 500)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "json"),

		MetricsEnabled:  os.Getenv("METRICS_ENABLED") == "true",
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		ShutdownTimeout: shutdownTimeout,

		IndexType:       envOrDefault("INDEX_TYPE", "brute"),
		GridCellDegrees: gridCell,

		CompositeWindow: window,
		ZScoreChunk:     chunk,
		SeasonLength:    season,

		ProgressInterval: progress,

		KafkaBrokers:   parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic: envOrDefault("KAFKA_SINK_TOPIC", "tidal-exposure-records"),
	}

	if cfg.IndexType != "brute" && cfg.IndexType != "grid" {
		return nil, fmt.Errorf("INDEX_TYPE must be %q or %q, got %q", "brute", "grid", cfg.IndexType)
	}
	if cfg.GridCellDegrees > 90 {
		return nil, errors.New("GRID_CELL_DEGREES must not exceed 90")
	}
	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parsePositiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

func parsePositiveFloat(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return f, nil
}
