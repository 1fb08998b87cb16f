package spatial

import (
	"math"

	"github.com/couchcryptid/tidal-exposure-etl/internal/domain"
)

// DistanceFunc measures the separation between two coordinates. Selection of
// the nearest row is invariant under positive monotone transforms of a
// consistent metric, so the function only has to be the same for every
// comparison within one run.
type DistanceFunc func(a, b domain.Coordinate) float64

// Match identifies the reference row selected for a query.
type Match struct {
	Ordinal  int     // row ordinal in the reference table
	Distance float64 // separation under the index's metric
}

// Index is a nearest-neighbor search strategy over an immutable reference
// set. Build is called exactly once before any Nearest call; the reference
// slice must not be mutated afterwards.
type Index interface {
	// Build validates and indexes the reference rows. It rejects ragged
	// series widths, missing (NaN) samples, and out-of-range coordinates.
	Build(reference []domain.Record) error

	// Nearest returns the reference row closest to c. ok is false only when
	// the index holds no rows. Exact distance ties resolve to the lowest
	// ordinal.
	Nearest(c domain.Coordinate) (m Match, ok bool)
}

// validateReference is the shared Build-time check: uniform series width,
// no missing samples, coordinates inside WGS-84 ranges.
func validateReference(reference []domain.Record) error {
	width := -1
	for i, rec := range reference {
		if err := rec.Coord.Validate(); err != nil {
			return &domain.InvalidCoordinateError{Coord: rec.Coord, Row: i}
		}
		if width == -1 {
			width = len(rec.Values)
		} else if len(rec.Values) != width {
			return &domain.ShapeMismatchError{Expected: width, Actual: len(rec.Values), Row: i}
		}
		for j, v := range rec.Values {
			if math.IsNaN(v) {
				return &domain.MissingValueError{Row: i, Column: j}
			}
		}
	}
	return nil
}

// BruteForce is the reference Index implementation: a full linear scan per
// query with strict less-than comparison, so the first-scanned row wins on
// exact ties.
type BruteForce struct {
	distance DistanceFunc
	records  []domain.Record
}

// NewBruteForce creates a brute-force index. A nil distance defaults to
// great-circle kilometers.
func NewBruteForce(distance DistanceFunc) *BruteForce {
	if distance == nil {
		distance = domain.Haversine
	}
	return &BruteForce{distance: distance}
}

// Build validates the reference rows and retains them for scanning.
func (b *BruteForce) Build(reference []domain.Record) error {
	if err := validateReference(reference); err != nil {
		return err
	}
	b.records = reference
	return nil
}

// Nearest scans every reference row once, keeping the minimum.
func (b *BruteForce) Nearest(c domain.Coordinate) (Match, bool) {
	best := Match{Ordinal: -1, Distance: math.Inf(1)}
	for i, rec := range b.records {
		if d := b.distance(c, rec.Coord); d < best.Distance {
			best = Match{Ordinal: i, Distance: d}
		}
	}
	if best.Ordinal < 0 {
		return Match{}, false
	}
	return best, true
}
