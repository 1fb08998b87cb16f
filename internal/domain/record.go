package domain

import "math"

// Coordinate is a WGS-84 latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate checks that the coordinate lies inside the valid WGS-84 ranges.
// NaN components are rejected because they compare false against every bound
// and would otherwise slip through as degenerate distances.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || c.Lat < -90 || c.Lat > 90 ||
		math.IsNaN(c.Lon) || c.Lon < -180 || c.Lon > 180 {
		return &InvalidCoordinateError{Coord: c, Row: -1}
	}
	return nil
}

// Record is one table row: a coordinate plus its ordered numeric series.
// A NaN sample marks a missing value.
type Record struct {
	Coord  Coordinate
	Values []float64
}

// CloneValues returns an independent copy of the record's series. The copy is
// allocated (non-nil) even when the series is empty, so callers can tell
// "assigned an empty series" apart from "never assigned".
func (r Record) CloneValues() []float64 {
	out := make([]float64, len(r.Values))
	copy(out, r.Values)
	return out
}

// Table is an in-memory row-oriented table keyed by coordinate. Series names
// the value columns; the lat/lon columns are implicit and always leading.
type Table struct {
	Series  []string
	Records []Record
}

// Width returns the uniform series length shared by all records, or a
// ShapeMismatchError naming the first offending row. An empty table has
// width 0.
func (t Table) Width() (int, error) {
	if len(t.Records) == 0 {
		return 0, nil
	}
	width := len(t.Records[0].Values)
	for i, rec := range t.Records[1:] {
		if len(rec.Values) != width {
			return 0, &ShapeMismatchError{Expected: width, Actual: len(rec.Values), Row: i + 1}
		}
	}
	return width, nil
}

// ValidateCoordinates checks every record's coordinate, returning an
// InvalidCoordinateError that names the offending row.
func (t Table) ValidateCoordinates() error {
	for i, rec := range t.Records {
		if err := rec.Coord.Validate(); err != nil {
			return &InvalidCoordinateError{Coord: rec.Coord, Row: i}
		}
	}
	return nil
}
