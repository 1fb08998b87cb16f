package pipeline_test

import (
	"context"
	"testing"

	"github.com/couchcryptid/tidal-exposure-etl/internal/domain"
	"github.com/couchcryptid/tidal-exposure-etl/internal/observability"
	"github.com/couchcryptid/tidal-exposure-etl/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignStep(t *testing.T) {
	ctx := context.Background()
	reference := domain.Table{
		Series: []string{"h0", "h1"},
		Records: []domain.Record{
			{Coord: domain.Coordinate{Lat: 22.2, Lon: 91.8}, Values: []float64{1.1, 1.2}},
			{Coord: domain.Coordinate{Lat: 23.0, Lon: 91.0}, Values: []float64{2.1, 2.2}},
		},
	}
	targets := domain.Table{
		Series: []string{"elev"},
		Records: []domain.Record{
			{Coord: domain.Coordinate{Lat: 22.21, Lon: 91.81}, Values: []float64{4.5}},
		},
	}

	step := pipeline.NewAssignStep(reference, nil, nil, observability.NewMetricsForTesting())
	assert.Equal(t, "assign", step.Name())

	out, err := step.Apply(ctx, targets)
	require.NoError(t, err)
	assert.Equal(t, []string{"elev", "h0", "h1"}, out.Series)
	require.Len(t, out.Records, 1)
	assert.Equal(t, []float64{4.5, 1.1, 1.2}, out.Records[0].Values)
}

func TestNewOverwashStep(t *testing.T) {
	dem := domain.Table{
		Series: []string{"elev_m", "slope"},
		Records: []domain.Record{
			{Coord: domain.Coordinate{Lat: 22.2, Lon: 91.8}, Values: []float64{3.0, 0.1}},
			{Coord: domain.Coordinate{Lat: 22.3, Lon: 91.9}, Values: []float64{5.0, 0.2}},
		},
	}
	high := domain.Table{
		Series: []string{"t0"},
		Records: []domain.Record{
			{Coord: domain.Coordinate{Lat: 22.2, Lon: 91.8}, Values: []float64{2.0}},
			{Coord: domain.Coordinate{Lat: 22.3, Lon: 91.9}, Values: []float64{6.0}},
		},
	}

	t.Run("named column", func(t *testing.T) {
		step, err := pipeline.NewOverwashStep(dem, "elev_m")
		require.NoError(t, err)

		out, err := step.Apply(context.Background(), high)
		require.NoError(t, err)
		assert.Equal(t, []float64{1.0}, out.Records[0].Values)
		assert.Equal(t, []float64{-1.0}, out.Records[1].Values)
	})

	t.Run("empty column name selects the first series", func(t *testing.T) {
		step, err := pipeline.NewOverwashStep(dem, "")
		require.NoError(t, err)

		out, err := step.Apply(context.Background(), high)
		require.NoError(t, err)
		assert.Equal(t, []float64{1.0}, out.Records[0].Values)
	})

	t.Run("unknown column", func(t *testing.T) {
		_, err := pipeline.NewOverwashStep(dem, "aspect")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "aspect")
	})
}

func TestStepNames(t *testing.T) {
	assert.Equal(t, "amplitude", pipeline.NewAmplitudeStep(domain.Table{}).Name())
	assert.Equal(t, "composite_mean", pipeline.NewCompositeStep(5, domain.AggregationMean).Name())
	assert.Equal(t, "composite_max", pipeline.NewCompositeStep(5, domain.AggregationMax).Name())
	assert.Equal(t, "zscore_chunked", pipeline.NewChunkedZScoreStep(19).Name())
	assert.Equal(t, "zscore_columns", pipeline.ColumnZScoreStep{}.Name())
	assert.Equal(t, "interpolate", pipeline.NewInterpolateStep(19).Name())
}
