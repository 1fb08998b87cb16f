// Package domain models the tables of the storm-surge farmland exposure
// study and the pure transforms applied to them.
//
// # Table layout
//
// Every table in the study is a flat CSV with two leading numeric columns,
// latitude and longitude in WGS-84 decimal degrees, followed by a
// fixed-width numeric series per row:
//
//	lat,lon,s0,s1,...,sN
//
// Row identity is positional: a farmland parcel is "row 17" across every
// file derived from the same parcel table, and no deduplication or hashing
// is performed. A blank cell is a missing sample and parses to NaN.
//
// # Series conventions
//
// Tide gauge series (high tide, low tide) are water levels in meters at a
// fixed observation cadence. NDVI series are packed as consecutive growing
// seasons of equal length (19 observations per season in the source data),
// so both interpolation and chunked standardization operate season by
// season rather than across year boundaries.
//
// Derived series:
//
//	Amplitude: high − low, per sample. Tidal intensity.
//	Overwash:  parcel elevation − high, per sample. Negative means the
//	           parcel is below the tide level (submerged).
//	Composite: mean/sum/max over fixed windows of consecutive samples
//	           (5-sample windows in the source data).
//	Z-score:   (x − mean) / population stddev, pooled per chunk for time
//	           series or per column for spatial properties.
//
// # Error policy
//
// Transforms are pure functions from tables to tables. Shape violations
// (ragged series, widths not divisible by a window or chunk, row-count
// mismatches between paired tables) surface as *ShapeMismatchError rather
// than being padded or truncated. Coordinates outside WGS-84 ranges surface
// as *InvalidCoordinateError at the first operation that inspects them.
// Constant standardization pools surface as *ZeroVarianceError because a
// silently produced NaN column would poison every downstream table.
package domain
