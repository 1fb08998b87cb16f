package domain

import "fmt"

// ShapeMismatchError indicates that two series (or a series and a window)
// disagree in length where the pipeline requires them to match.
type ShapeMismatchError struct {
	Expected int
	Actual   int
	Row      int // offending row ordinal, -1 when the mismatch is not row-local
}

func (e *ShapeMismatchError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("shape mismatch: expected width %d, got %d", e.Expected, e.Actual)
	}
	return fmt.Sprintf("shape mismatch: row %d has width %d, expected %d", e.Row, e.Actual, e.Expected)
}

// InvalidCoordinateError indicates a latitude outside [-90, 90] or a
// longitude outside [-180, 180]. Row is -1 for coordinates that did not come
// from a table row (e.g. an ad-hoc query point).
type InvalidCoordinateError struct {
	Coord Coordinate
	Row   int
}

func (e *InvalidCoordinateError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("invalid coordinate (%g, %g)", e.Coord.Lat, e.Coord.Lon)
	}
	return fmt.Sprintf("invalid coordinate (%g, %g) at row %d", e.Coord.Lat, e.Coord.Lon, e.Row)
}

// MissingValueError indicates a NaN sample in a context that requires a
// complete series, such as building a nearest-neighbor index or a season
// with no known samples to interpolate from.
type MissingValueError struct {
	Row    int
	Column int
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("missing value at row %d, series column %d", e.Row, e.Column)
}

// ZeroVarianceError indicates a standardization pool whose standard
// deviation is zero. Pool is "chunk" or "column"; Index is the chunk or
// column ordinal within the series.
type ZeroVarianceError struct {
	Pool  string
	Index int
}

func (e *ZeroVarianceError) Error() string {
	return fmt.Sprintf("zero variance in %s %d: cannot standardize a constant pool", e.Pool, e.Index)
}
