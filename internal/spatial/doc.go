// Package spatial assigns reference time series to target coordinates by
// nearest-neighbor search under geodesic distance.
//
// The search strategy is pluggable through the [Index] interface. BruteForce
// scans the whole reference set per query, which is O(N*M) over N targets
// and M reference rows and is the behavior the rest of the pipeline was
// validated against. CellGrid buckets the reference rows into fixed-degree
// cells and prunes by a geodesic lower bound, producing byte-identical
// output (including tie-breaks) at a fraction of the scan cost for large
// reference sets.
//
// Determinism contract: when two reference rows are exactly equidistant from
// a target, the row with the lower ordinal wins, for every Index
// implementation. BruteForce gets this for free from its strict less-than
// scan; CellGrid enforces it explicitly when merging candidates across
// cells.
package spatial
