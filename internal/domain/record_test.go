package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableWidth(t *testing.T) {
	t.Run("uniform", func(t *testing.T) {
		tbl := Table{Records: []Record{
			{Values: []float64{1, 2, 3}},
			{Values: []float64{4, 5, 6}},
		}}
		width, err := tbl.Width()
		require.NoError(t, err)
		assert.Equal(t, 3, width)
	})

	t.Run("empty table", func(t *testing.T) {
		width, err := Table{}.Width()
		require.NoError(t, err)
		assert.Equal(t, 0, width)
	})

	t.Run("ragged rows", func(t *testing.T) {
		tbl := Table{Records: []Record{
			{Values: []float64{1, 2, 3}},
			{Values: []float64{4, 5}},
		}}
		_, err := tbl.Width()
		var shapeErr *ShapeMismatchError
		require.ErrorAs(t, err, &shapeErr)
		assert.Equal(t, 3, shapeErr.Expected)
		assert.Equal(t, 2, shapeErr.Actual)
		assert.Equal(t, 1, shapeErr.Row)
	})
}

func TestRecordCloneValues(t *testing.T) {
	t.Run("independent copy", func(t *testing.T) {
		rec := Record{Values: []float64{1, 2, 3}}
		clone := rec.CloneValues()
		clone[0] = 99
		assert.Equal(t, 1.0, rec.Values[0])
	})

	t.Run("empty series stays non-nil", func(t *testing.T) {
		clone := Record{}.CloneValues()
		assert.NotNil(t, clone)
		assert.Len(t, clone, 0)
	})
}

func TestTableValidateCoordinates(t *testing.T) {
	tbl := Table{Records: []Record{
		{Coord: Coordinate{Lat: 22.3, Lon: 91.8}},
		{Coord: Coordinate{Lat: 95, Lon: 0}},
	}}
	err := tbl.ValidateCoordinates()
	var invalidErr *InvalidCoordinateError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, 1, invalidErr.Row)
}
