package pipeline

import (
	"context"
	"fmt"

	"github.com/couchcryptid/tidal-exposure-etl/internal/domain"
	"github.com/couchcryptid/tidal-exposure-etl/internal/observability"
	"github.com/couchcryptid/tidal-exposure-etl/internal/spatial"
)

// AssignStep augments every input row with the series of its nearest
// reference row.
type AssignStep struct {
	reference domain.Table
	assigner  *spatial.Assigner
	metrics   *observability.Metrics
}

// NewAssignStep creates the nearest-neighbor assignment step. index selects
// the search strategy (nil for brute force); progress may be nil.
func NewAssignStep(reference domain.Table, index spatial.Index, progress spatial.ProgressFunc, metrics *observability.Metrics) *AssignStep {
	return &AssignStep{
		reference: reference,
		assigner:  &spatial.Assigner{Index: index, Progress: progress},
		metrics:   metrics,
	}
}

func (s *AssignStep) Name() string { return "assign" }

func (s *AssignStep) Apply(ctx context.Context, t domain.Table) (domain.Table, error) {
	s.metrics.RowsRead.WithLabelValues("reference").Add(float64(len(s.reference.Records)))
	s.metrics.ReferenceSize.Set(float64(len(s.reference.Records)))

	out, err := s.assigner.Assign(ctx, t, s.reference)
	if err != nil {
		return domain.Table{}, err
	}
	s.metrics.AssignQueries.Add(float64(len(t.Records)))
	return out, nil
}

// AmplitudeStep subtracts a low-tide table from the input high-tide table.
type AmplitudeStep struct {
	low domain.Table
}

func NewAmplitudeStep(low domain.Table) *AmplitudeStep { return &AmplitudeStep{low: low} }

func (s *AmplitudeStep) Name() string { return "amplitude" }

func (s *AmplitudeStep) Apply(_ context.Context, t domain.Table) (domain.Table, error) {
	return domain.Amplitude(t, s.low)
}

// OverwashStep subtracts the input high-tide table from per-row parcel
// elevations taken from a DEM table's named column.
type OverwashStep struct {
	elevation []float64
}

// NewOverwashStep extracts the elevation column from dem. column is the
// series name; an empty column name selects the first series.
func NewOverwashStep(dem domain.Table, column string) (*OverwashStep, error) {
	width, err := dem.Width()
	if err != nil {
		return nil, err
	}
	if width == 0 {
		return nil, fmt.Errorf("elevation table has no value columns")
	}

	idx := 0
	if column != "" {
		idx = -1
		for i, name := range dem.Series {
			if name == column {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("elevation column %q not found", column)
		}
	}

	elevation := make([]float64, len(dem.Records))
	for i, rec := range dem.Records {
		elevation[i] = rec.Values[idx]
	}
	return &OverwashStep{elevation: elevation}, nil
}

func (s *OverwashStep) Name() string { return "overwash" }

func (s *OverwashStep) Apply(_ context.Context, t domain.Table) (domain.Table, error) {
	return domain.Overwash(s.elevation, t)
}

// CompositeStep collapses fixed windows of samples to their aggregate.
type CompositeStep struct {
	window int
	agg    domain.Aggregation
}

func NewCompositeStep(window int, agg domain.Aggregation) *CompositeStep {
	return &CompositeStep{window: window, agg: agg}
}

func (s *CompositeStep) Name() string { return "composite_" + s.agg.String() }

func (s *CompositeStep) Apply(_ context.Context, t domain.Table) (domain.Table, error) {
	return domain.Composite(t, s.window, s.agg)
}

// ChunkedZScoreStep standardizes the series in pooled chunks.
type ChunkedZScoreStep struct {
	chunk int
}

func NewChunkedZScoreStep(chunk int) *ChunkedZScoreStep { return &ChunkedZScoreStep{chunk: chunk} }

func (s *ChunkedZScoreStep) Name() string { return "zscore_chunked" }

func (s *ChunkedZScoreStep) Apply(_ context.Context, t domain.Table) (domain.Table, error) {
	return domain.StandardizeChunked(t, s.chunk)
}

// ColumnZScoreStep standardizes each column independently.
type ColumnZScoreStep struct{}

func (ColumnZScoreStep) Name() string { return "zscore_columns" }

func (ColumnZScoreStep) Apply(_ context.Context, t domain.Table) (domain.Table, error) {
	return domain.StandardizeColumns(t)
}

// InterpolateStep fills missing samples season by season.
type InterpolateStep struct {
	season int
}

func NewInterpolateStep(season int) *InterpolateStep { return &InterpolateStep{season: season} }

func (s *InterpolateStep) Name() string { return "interpolate" }

func (s *InterpolateStep) Apply(_ context.Context, t domain.Table) (domain.Table, error) {
	return domain.Interpolate(t, s.season)
}
