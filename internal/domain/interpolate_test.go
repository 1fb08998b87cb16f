package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpolate(t *testing.T) {
	nan := math.NaN()

	t.Run("interior gap", func(t *testing.T) {
		in := Table{Records: []Record{{Values: []float64{1, nan, 3}}}}
		out, err := Interpolate(in, 3)
		require.NoError(t, err)
		assert.InDelta(t, 2, out.Records[0].Values[1], 1e-12)
	})

	t.Run("leading gap extrapolates", func(t *testing.T) {
		in := Table{Records: []Record{{Values: []float64{nan, 2, 3}}}}
		out, err := Interpolate(in, 3)
		require.NoError(t, err)
		assert.InDelta(t, 1, out.Records[0].Values[0], 1e-12)
	})

	t.Run("trailing gap extrapolates", func(t *testing.T) {
		in := Table{Records: []Record{{Values: []float64{1, 2, nan}}}}
		out, err := Interpolate(in, 3)
		require.NoError(t, err)
		assert.InDelta(t, 3, out.Records[0].Values[2], 1e-12)
	})

	t.Run("consecutive gaps", func(t *testing.T) {
		in := Table{Records: []Record{{Values: []float64{0, nan, nan, 6}}}}
		out, err := Interpolate(in, 4)
		require.NoError(t, err)
		assert.InDelta(t, 2, out.Records[0].Values[1], 1e-12)
		assert.InDelta(t, 4, out.Records[0].Values[2], 1e-12)
	})

	t.Run("single known sample fills the season", func(t *testing.T) {
		in := Table{Records: []Record{{Values: []float64{nan, 7, nan}}}}
		out, err := Interpolate(in, 3)
		require.NoError(t, err)
		assert.Equal(t, []float64{7, 7, 7}, out.Records[0].Values)
	})

	t.Run("seasons filled independently", func(t *testing.T) {
		in := Table{Records: []Record{{Values: []float64{1, nan, 3, 10, nan, 30}}}}
		out, err := Interpolate(in, 3)
		require.NoError(t, err)
		assert.InDelta(t, 2, out.Records[0].Values[1], 1e-12)
		assert.InDelta(t, 20, out.Records[0].Values[4], 1e-12)
	})

	t.Run("complete series unchanged", func(t *testing.T) {
		in := Table{Records: []Record{{Values: []float64{1, 2, 3}}}}
		out, err := Interpolate(in, 3)
		require.NoError(t, err)
		assert.Equal(t, in.Records[0].Values, out.Records[0].Values)
	})

	t.Run("season with no known samples", func(t *testing.T) {
		in := Table{Records: []Record{
			{Values: []float64{1, 2, 3}},
			{Values: []float64{nan, nan, nan}},
		}}
		_, err := Interpolate(in, 3)
		var missingErr *MissingValueError
		require.ErrorAs(t, err, &missingErr)
		assert.Equal(t, 1, missingErr.Row)
		assert.Equal(t, 0, missingErr.Column)
	})

	t.Run("width not divisible by season", func(t *testing.T) {
		in := Table{Records: []Record{{Values: []float64{1, 2, 3, 4}}}}
		_, err := Interpolate(in, 3)
		var shapeErr *ShapeMismatchError
		require.ErrorAs(t, err, &shapeErr)
	})

	t.Run("input not mutated", func(t *testing.T) {
		in := Table{Records: []Record{{Values: []float64{1, nan, 3}}}}
		_, err := Interpolate(in, 3)
		require.NoError(t, err)
		assert.True(t, math.IsNaN(in.Records[0].Values[1]))
	})
}
