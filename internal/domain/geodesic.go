package domain

import "math"

// EarthRadiusKm is the IUGG mean Earth radius. Nearest-neighbor selection
// only needs a consistent metric, so a spherical model is sufficient: any
// monotone rescaling of a consistent distance preserves the argmin.
const EarthRadiusKm = 6371.0088

// Haversine returns the great-circle distance between two coordinates in
// kilometers on a spherical Earth model.
func Haversine(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}
