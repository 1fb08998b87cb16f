package csvfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/tidal-exposure-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/tidal-exposure-etl/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceAndSink(t *testing.T) {
	ctx := context.Background()
	want := domain.Table{
		Series: []string{"t0", "t1"},
		Records: []domain.Record{
			{Coord: domain.Coordinate{Lat: 22.3, Lon: 91.8}, Values: []float64{1.5, -0.25}},
			{Coord: domain.Coordinate{Lat: 22.4, Lon: 91.9}, Values: []float64{2, 3}},
		},
	}

	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tides.csv")
		sink := csvfile.NewSink(path)
		require.NoError(t, sink.WriteTable(ctx, want))
		assert.Equal(t, path, sink.Name())

		source := csvfile.NewSource(path)
		got, err := source.ReadTable(ctx)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(want, got))
	})

	t.Run("missing input file", func(t *testing.T) {
		_, err := csvfile.NewSource(filepath.Join(t.TempDir(), "absent.csv")).ReadTable(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "open")
	})

	t.Run("malformed input names the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.csv")
		require.NoError(t, os.WriteFile(path, []byte("lat,lon\n1,2\n"), 0o644))

		_, err := csvfile.NewSource(path).ReadTable(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("failed write leaves no partial file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.csv")
		bad := domain.Table{
			Series: []string{"t0"},
			Records: []domain.Record{
				{Coord: domain.Coordinate{Lat: 1, Lon: 2}, Values: []float64{1, 2}},
			},
		}
		require.Error(t, csvfile.NewSink(path).WriteTable(ctx, bad))
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})
}
