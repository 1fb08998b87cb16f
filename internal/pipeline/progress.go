package pipeline

import (
	"log/slog"

	"github.com/couchcryptid/tidal-exposure-etl/internal/spatial"
	"github.com/jonboulle/clockwork"
)

// NewProgressLogger returns a ProgressFunc that logs every `interval`
// processed rows and once more at completion, with a rows-per-second rate
// computed from the injected clock.
func NewProgressLogger(logger *slog.Logger, clock clockwork.Clock, interval int) spatial.ProgressFunc {
	start := clock.Now()
	return func(done, total int) {
		if interval <= 0 {
			return
		}
		if done%interval != 0 && done != total {
			return
		}
		elapsed := clock.Since(start).Seconds()
		rate := 0.0
		if elapsed > 0 {
			rate = float64(done) / elapsed
		}
		logger.Info("assignment progress",
			"done", done,
			"total", total,
			"rows_per_sec", rate,
		)
	}
}
