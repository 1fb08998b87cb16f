package domain

import (
	"fmt"
	"math"
)

// Interpolate fills NaN gaps in each record's series by linear interpolation
// over the sample ordinal. The series is treated as consecutive seasons of
// `season` samples each (one growing season of observations per year), and
// gaps are filled using only the known samples of their own season, with
// linear extrapolation past the first and last known samples. A season with
// a single known sample is filled with that constant; a season with no known
// samples at all is a MissingValueError naming the row and the season's
// first column.
func Interpolate(t Table, season int) (Table, error) {
	if season <= 0 {
		return Table{}, fmt.Errorf("season length must be positive, got %d", season)
	}
	width, err := t.Width()
	if err != nil {
		return Table{}, err
	}
	if width%season != 0 {
		return Table{}, &ShapeMismatchError{Expected: season, Actual: width, Row: -1}
	}

	out := Table{
		Series:  append([]string(nil), t.Series...),
		Records: make([]Record, len(t.Records)),
	}
	for i, rec := range t.Records {
		values := rec.CloneValues()
		for start := 0; start < width; start += season {
			if err := fillSeason(values[start:start+season]); err != nil {
				return Table{}, &MissingValueError{Row: i, Column: start}
			}
		}
		out.Records[i] = Record{Coord: rec.Coord, Values: values}
	}
	return out, nil
}

// fillSeason replaces NaN entries of one season in place.
func fillSeason(s []float64) error {
	known := make([]int, 0, len(s))
	for i, v := range s {
		if !math.IsNaN(v) {
			known = append(known, i)
		}
	}
	switch len(known) {
	case len(s):
		return nil
	case 0:
		return fmt.Errorf("season has no known samples")
	case 1:
		for i := range s {
			s[i] = s[known[0]]
		}
		return nil
	}

	for i, v := range s {
		if !math.IsNaN(v) {
			continue
		}
		lo, hi := bracket(known, i)
		x0, x1 := float64(lo), float64(hi)
		y0, y1 := s[lo], s[hi]
		s[i] = y0 + (y1-y0)*(float64(i)-x0)/(x1-x0)
	}
	return nil
}

// bracket returns the pair of known sample ordinals to interpolate ordinal i
// from: the surrounding pair inside the known range, or the two nearest
// known samples when i lies before the first or after the last (linear
// extrapolation).
func bracket(known []int, i int) (lo, hi int) {
	if i < known[0] {
		return known[0], known[1]
	}
	if i > known[len(known)-1] {
		return known[len(known)-2], known[len(known)-1]
	}
	for k := 1; k < len(known); k++ {
		if known[k] > i {
			return known[k-1], known[k]
		}
	}
	// Unreachable: i is inside the known range, so some known[k] exceeds it.
	return known[len(known)-2], known[len(known)-1]
}
