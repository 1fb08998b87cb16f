package spatial

import (
	"math/rand"
	"testing"

	"github.com/couchcryptid/tidal-exposure-etl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCellGrid(t *testing.T) {
	tests := []struct {
		name    string
		cellDeg float64
		wantErr bool
	}{
		{"half degree", 0.5, false},
		{"coarse", 90, false},
		{"zero", 0, true},
		{"negative", -1, true},
		{"too coarse", 91, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCellGrid(tt.cellDeg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCellGridNearest(t *testing.T) {
	t.Run("empty reference", func(t *testing.T) {
		grid, err := NewCellGrid(0.5)
		require.NoError(t, err)
		require.NoError(t, grid.Build(nil))

		_, ok := grid.Nearest(domain.Coordinate{Lat: 5, Lon: 5})
		assert.False(t, ok)
	})

	t.Run("duplicate coordinates resolve to the lower ordinal", func(t *testing.T) {
		dup := []domain.Record{
			{Coord: domain.Coordinate{Lat: 22.0, Lon: 91.0}, Values: []float64{1}},
			{Coord: domain.Coordinate{Lat: 22.0, Lon: 91.0}, Values: []float64{2}},
		}
		grid, err := NewCellGrid(0.5)
		require.NoError(t, err)
		require.NoError(t, grid.Build(dup))

		m, ok := grid.Nearest(domain.Coordinate{Lat: 22.0, Lon: 91.0})
		require.True(t, ok)
		assert.Equal(t, 0, m.Ordinal)
	})

	t.Run("build validation matches brute force", func(t *testing.T) {
		recs := []domain.Record{
			{Coord: domain.Coordinate{Lat: 0, Lon: 181}, Values: []float64{1}},
		}
		grid, err := NewCellGrid(0.5)
		require.NoError(t, err)
		var invalidErr *domain.InvalidCoordinateError
		require.ErrorAs(t, grid.Build(recs), &invalidErr)
	})
}

// TestCellGridMatchesBruteForce cross-checks the grid against the reference
// implementation on seeded random data, including clustered points,
// antimeridian neighbors, and high latitudes where longitude converges.
func TestCellGridMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	randomRecords := func(n int, latSpread, lonSpread, latOff, lonOff float64) []domain.Record {
		recs := make([]domain.Record, n)
		for i := range recs {
			recs[i] = domain.Record{
				Coord: domain.Coordinate{
					Lat: latOff + (rng.Float64()-0.5)*latSpread,
					Lon: lonOff + (rng.Float64()-0.5)*lonSpread,
				},
				Values: []float64{float64(i)},
			}
		}
		return recs
	}

	cases := []struct {
		name      string
		cellDeg   float64
		reference []domain.Record
		queries   []domain.Record
	}{
		{
			name:      "coastal cluster",
			cellDeg:   0.5,
			reference: randomRecords(200, 3, 3, 22, 91),
			queries:   randomRecords(100, 4, 4, 22, 91),
		},
		{
			name:      "global scatter",
			cellDeg:   10,
			reference: randomRecords(150, 170, 350, 0, 0),
			queries:   randomRecords(80, 178, 358, 0, 0),
		},
		{
			name:      "antimeridian neighbors",
			cellDeg:   1,
			reference: randomRecords(60, 10, 4, -18, 179),
			queries:   randomRecords(60, 10, 4, -18, -179),
		},
		{
			name:      "high latitude convergence",
			cellDeg:   2,
			reference: randomRecords(80, 6, 300, 86, 0),
			queries:   randomRecords(40, 7, 340, 86, 0),
		},
		// Cell sizes that do not divide 360 evenly; the effective cell
		// width must shrink so the longitude ring still closes at the
		// antimeridian instead of leaving a misaligned seam.
		{
			name:      "non-divisor cell width at the seam",
			cellDeg:   17,
			reference: randomRecords(254, 160, 6, 0, 179),
			queries:   randomRecords(200, 170, 8, 0, -179),
		},
		{
			name:      "non-divisor cell width global scatter",
			cellDeg:   7,
			reference: randomRecords(150, 170, 350, 0, 0),
			queries:   randomRecords(120, 178, 358, 0, 0),
		},
		{
			name:      "non-divisor fractional cell width",
			cellDeg:   0.7,
			reference: randomRecords(100, 8, 3, 50, 179.6),
			queries:   randomRecords(100, 8, 3, 50, -179.6),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Clamp generated coordinates into valid ranges.
			for _, set := range [][]domain.Record{tc.reference, tc.queries} {
				for i := range set {
					if set[i].Coord.Lon > 180 {
						set[i].Coord.Lon -= 360
					}
					if set[i].Coord.Lon < -180 {
						set[i].Coord.Lon += 360
					}
				}
			}

			brute := NewBruteForce(nil)
			require.NoError(t, brute.Build(tc.reference))
			grid, err := NewCellGrid(tc.cellDeg)
			require.NoError(t, err)
			require.NoError(t, grid.Build(tc.reference))

			for _, q := range tc.queries {
				want, wantOK := brute.Nearest(q.Coord)
				got, gotOK := grid.Nearest(q.Coord)
				require.Equal(t, wantOK, gotOK)
				assert.Equal(t, want.Ordinal, got.Ordinal, "query (%g, %g)", q.Coord.Lat, q.Coord.Lon)
				assert.Equal(t, want.Distance, got.Distance, "query (%g, %g)", q.Coord.Lat, q.Coord.Lon)
			}
		})
	}
}
