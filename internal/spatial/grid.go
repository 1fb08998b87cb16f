package spatial

import (
	"fmt"
	"math"

	"github.com/couchcryptid/tidal-exposure-etl/internal/domain"
)

// kmPerDegLat is the meridian length of one degree of latitude on the mean
// sphere. One degree of latitude is never shorter than this, which makes it
// a safe lower-bound factor for pruning.
const kmPerDegLat = domain.EarthRadiusKm * math.Pi / 180

// CellGrid is an Index that buckets reference rows into fixed-degree
// latitude/longitude cells and answers queries by expanding-ring search with
// geodesic lower-bound pruning. Output is identical to BruteForce, including
// the lowest-ordinal tie-break.
//
// The grid always measures great-circle kilometers; its pruning bounds are
// derived from the haversine formula and would be unsound under an arbitrary
// caller-supplied metric.
type CellGrid struct {
	// latDeg and lonDeg are the effective cell widths. They are derived
	// from the cell counts so that the longitude ring covers exactly 360
	// degrees; a requested size that does not divide evenly is shrunk
	// rather than leaving a misaligned seam at the antimeridian.
	latDeg   float64
	lonDeg   float64
	lonCells int
	latCells int
	records  []domain.Record
	cells    map[cellKey][]int
}

type cellKey struct {
	lat int
	lon int
}

// NewCellGrid creates a grid index with cells of at most cellDeg degrees on
// each side. Typical tide-gauge densities work well around 0.5 degrees.
func NewCellGrid(cellDeg float64) (*CellGrid, error) {
	if cellDeg <= 0 || cellDeg > 90 {
		return nil, fmt.Errorf("grid cell size must be in (0, 90] degrees, got %g", cellDeg)
	}
	latCells := int(math.Ceil(180 / cellDeg))
	lonCells := int(math.Ceil(360 / cellDeg))
	return &CellGrid{
		latDeg:   180 / float64(latCells),
		lonDeg:   360 / float64(lonCells),
		latCells: latCells,
		lonCells: lonCells,
	}, nil
}

// Build validates the reference rows and buckets them by cell, preserving
// row order within each bucket.
func (g *CellGrid) Build(reference []domain.Record) error {
	if err := validateReference(reference); err != nil {
		return err
	}
	g.records = reference
	g.cells = make(map[cellKey][]int)
	for i, rec := range reference {
		key := g.cellOf(rec.Coord)
		g.cells[key] = append(g.cells[key], i)
	}
	return nil
}

// Nearest finds the closest reference row in two phases: ring expansion from
// the query's cell until any candidate is found, then a sweep of every cell
// that could still hold a closer row given that candidate's distance.
func (g *CellGrid) Nearest(q domain.Coordinate) (Match, bool) {
	if len(g.records) == 0 {
		return Match{}, false
	}

	best := Match{Ordinal: -1, Distance: math.Inf(1)}
	origin := g.cellOf(q)
	maxRing := g.latCells + g.lonCells
	for k := 0; k <= maxRing && best.Ordinal < 0; k++ {
		g.scanRing(q, origin, k, &best)
	}

	// The seed candidate bounds the search: anything closer must lie within
	// best.Distance of q, so only cells intersecting that radius remain.
	g.scanBounded(q, &best)

	return best, true
}

// scanRing evaluates all cells at Chebyshev ring distance k from the origin
// cell. Latitude rows outside the grid are skipped; longitude wraps.
func (g *CellGrid) scanRing(q domain.Coordinate, origin cellKey, k int, best *Match) {
	for dLat := -k; dLat <= k; dLat++ {
		latIdx := origin.lat + dLat
		if latIdx < 0 || latIdx >= g.latCells {
			continue
		}
		if dLat == -k || dLat == k {
			for dLon := -k; dLon <= k; dLon++ {
				g.scanCell(q, cellKey{latIdx, g.wrapLon(origin.lon + dLon)}, best)
			}
			continue
		}
		g.scanCell(q, cellKey{latIdx, g.wrapLon(origin.lon - k)}, best)
		if k > 0 {
			g.scanCell(q, cellKey{latIdx, g.wrapLon(origin.lon + k)}, best)
		}
	}
}

// scanBounded sweeps every cell whose geodesic lower bound does not exceed
// the current best distance. The sweep window is derived from the haversine
// inequality: a point within r km differs by at most r/kmPerDegLat degrees
// of latitude, and by a longitude span that widens with the band's maximum
// absolute latitude (all longitudes near the poles).
func (g *CellGrid) scanBounded(q domain.Coordinate, best *Match) {
	r := best.Distance
	rDeg := r / kmPerDegLat

	latLo := math.Max(-90, q.Lat-rDeg)
	latHi := math.Min(90, q.Lat+rDeg)
	latIdxLo := g.latIndex(latLo)
	latIdxHi := g.latIndex(latHi)

	lonIdxLo, lonSpan := g.lonWindow(q, r, latLo, latHi)

	for latIdx := latIdxLo; latIdx <= latIdxHi; latIdx++ {
		for s := 0; s < lonSpan; s++ {
			key := cellKey{latIdx, g.wrapLon(lonIdxLo + s)}
			// Strictly-greater pruning keeps equal-distance cells in play so
			// ordinal tie-breaks match BruteForce.
			if g.cellLowerBound(q, key) > best.Distance {
				continue
			}
			g.scanCell(q, key, best)
		}
	}
}

// lonWindow returns the first longitude cell index and the cell count of the
// sweep window for radius r around q, given the latitude band under search.
func (g *CellGrid) lonWindow(q domain.Coordinate, r float64, latLo, latHi float64) (start, span int) {
	bandMaxAbsLat := math.Max(math.Abs(latLo), math.Abs(latHi))
	denom := math.Sqrt(math.Cos(q.Lat*math.Pi/180) * math.Cos(bandMaxAbsLat*math.Pi/180))
	if denom <= 0 {
		return 0, g.lonCells
	}
	sinHalf := math.Sin(r/(2*domain.EarthRadiusKm)) / denom
	if sinHalf >= 1 {
		return 0, g.lonCells
	}
	dLonDeg := 2 * math.Asin(sinHalf) * 180 / math.Pi
	span = int(math.Ceil(2*dLonDeg/g.lonDeg)) + 2
	if span >= g.lonCells {
		return 0, g.lonCells
	}
	return g.wrapLon(g.lonIndex(q.Lon - dLonDeg)), span
}

// scanCell evaluates every reference row bucketed in key, breaking exact
// distance ties toward the lower ordinal.
func (g *CellGrid) scanCell(q domain.Coordinate, key cellKey, best *Match) {
	for _, i := range g.cells[key] {
		d := domain.Haversine(q, g.records[i].Coord)
		if d < best.Distance || (d == best.Distance && i < best.Ordinal) {
			*best = Match{Ordinal: i, Distance: d}
		}
	}
}

// cellLowerBound returns a distance no greater than the distance from q to
// any point of the cell. Latitude separation bounds via the meridian arc;
// longitude separation bounds via the haversine term scaled by the smallest
// cosine of latitude inside the cell.
func (g *CellGrid) cellLowerBound(q domain.Coordinate, key cellKey) float64 {
	latLo := -90 + float64(key.lat)*g.latDeg
	latHi := math.Min(90, latLo+g.latDeg)
	lonLo := -180 + float64(key.lon)*g.lonDeg
	lonHi := lonLo + g.lonDeg

	dLatDeg := 0.0
	if q.Lat < latLo {
		dLatDeg = latLo - q.Lat
	} else if q.Lat > latHi {
		dLatDeg = q.Lat - latHi
	}
	latBound := dLatDeg * kmPerDegLat

	dLonDeg := lonSeparation(q.Lon, lonLo, lonHi)
	if dLonDeg == 0 {
		return latBound
	}
	cellMinCos := math.Min(math.Cos(latLo*math.Pi/180), math.Cos(latHi*math.Pi/180))
	prod := math.Cos(q.Lat*math.Pi/180) * cellMinCos
	if prod <= 0 {
		return latBound
	}
	lonBound := 2 * domain.EarthRadiusKm * math.Asin(math.Sqrt(prod)*math.Sin(dLonDeg*math.Pi/360))
	return math.Max(latBound, lonBound)
}

// lonSeparation returns the angular degrees between lon and the interval
// [lonLo, lonHi], accounting for antimeridian wrap. Zero when inside.
func lonSeparation(lon, lonLo, lonHi float64) float64 {
	if lon >= lonLo && lon <= lonHi {
		return 0
	}
	return math.Min(wrapDeg(lon-lonHi), wrapDeg(lonLo-lon))
}

// wrapDeg maps an arbitrary degree difference to [0, 360) and folds it onto
// the short way around, [0, 180].
func wrapDeg(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	if d > 180 {
		d = 360 - d
	}
	return d
}

func (g *CellGrid) cellOf(c domain.Coordinate) cellKey {
	return cellKey{lat: g.latIndex(c.Lat), lon: g.wrapLon(g.lonIndex(c.Lon))}
}

func (g *CellGrid) latIndex(lat float64) int {
	idx := int(math.Floor((lat + 90) / g.latDeg))
	if idx < 0 {
		return 0
	}
	if idx >= g.latCells {
		return g.latCells - 1
	}
	return idx
}

func (g *CellGrid) lonIndex(lon float64) int {
	return int(math.Floor((lon + 180) / g.lonDeg))
}

func (g *CellGrid) wrapLon(idx int) int {
	idx %= g.lonCells
	if idx < 0 {
		idx += g.lonCells
	}
	return idx
}
