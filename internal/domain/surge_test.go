package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmplitude(t *testing.T) {
	high := Table{
		Series: []string{"t0", "t1"},
		Records: []Record{
			{Coord: Coordinate{Lat: 22.3, Lon: 91.8}, Values: []float64{2.4, 3.1}},
			{Coord: Coordinate{Lat: 22.4, Lon: 91.9}, Values: []float64{1.9, 2.2}},
		},
	}
	low := Table{
		Series: []string{"t0", "t1"},
		Records: []Record{
			{Coord: Coordinate{Lat: 22.3, Lon: 91.8}, Values: []float64{0.4, 1.1}},
			{Coord: Coordinate{Lat: 22.4, Lon: 91.9}, Values: []float64{0.9, 0.2}},
		},
	}

	t.Run("high minus low", func(t *testing.T) {
		out, err := Amplitude(high, low)
		require.NoError(t, err)
		assert.InDelta(t, 2.0, out.Records[0].Values[0], 1e-12)
		assert.InDelta(t, 2.0, out.Records[0].Values[1], 1e-12)
		assert.InDelta(t, 1.0, out.Records[1].Values[0], 1e-12)
		assert.InDelta(t, 2.0, out.Records[1].Values[1], 1e-12)
		assert.Equal(t, high.Series, out.Series)
		assert.Equal(t, high.Records[0].Coord, out.Records[0].Coord)
	})

	t.Run("row count mismatch", func(t *testing.T) {
		short := Table{Records: low.Records[:1]}
		_, err := Amplitude(high, short)
		var shapeErr *ShapeMismatchError
		require.ErrorAs(t, err, &shapeErr)
	})

	t.Run("width mismatch", func(t *testing.T) {
		narrow := Table{Records: []Record{
			{Values: []float64{0.4}},
			{Values: []float64{0.9}},
		}}
		_, err := Amplitude(high, narrow)
		var shapeErr *ShapeMismatchError
		require.ErrorAs(t, err, &shapeErr)
		assert.Equal(t, 2, shapeErr.Expected)
		assert.Equal(t, 1, shapeErr.Actual)
	})
}

func TestOverwash(t *testing.T) {
	high := Table{
		Series: []string{"t0", "t1"},
		Records: []Record{
			{Coord: Coordinate{Lat: 22.3, Lon: 91.8}, Values: []float64{2.5, 3.5}},
			{Coord: Coordinate{Lat: 22.4, Lon: 91.9}, Values: []float64{1.0, 4.0}},
		},
	}

	t.Run("elevation broadcast over the series", func(t *testing.T) {
		out, err := Overwash([]float64{3.0, 2.0}, high)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, out.Records[0].Values[0], 1e-12)
		assert.InDelta(t, -0.5, out.Records[0].Values[1], 1e-12)
		assert.InDelta(t, 1.0, out.Records[1].Values[0], 1e-12)
		assert.InDelta(t, -2.0, out.Records[1].Values[1], 1e-12)
	})

	t.Run("elevation count mismatch", func(t *testing.T) {
		_, err := Overwash([]float64{3.0}, high)
		var shapeErr *ShapeMismatchError
		require.ErrorAs(t, err, &shapeErr)
	})
}
