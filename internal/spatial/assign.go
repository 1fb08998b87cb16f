package spatial

import (
	"context"
	"fmt"

	"github.com/couchcryptid/tidal-exposure-etl/internal/domain"
)

// ProgressFunc is invoked after each target row is assigned, with the number
// of rows completed so far and the total row count.
type ProgressFunc func(done, total int)

// Assigner copies the series of the geodesically nearest reference row onto
// every target row. It is a pure function of its inputs: the reference table
// is never mutated, assigned series are copied by value, and re-running with
// identical inputs yields identical output.
type Assigner struct {
	// Index is the nearest-neighbor strategy. Nil defaults to BruteForce
	// over great-circle kilometers.
	Index Index

	// Progress, when set, is called once per assigned row.
	Progress ProgressFunc
}

// cancelCheckInterval bounds how often Assign polls for context
// cancellation during the scan.
const cancelCheckInterval = 256

// Assign returns a copy of targets with each row's series extended by the
// series of its nearest reference row. Output series names are the target's
// followed by the reference's.
//
// An empty reference set is not an error: every target keeps its own series
// and gains an allocated empty assignment, distinguishing "no reference
// available" from "assigned a zero-width series" downstream.
func (a *Assigner) Assign(ctx context.Context, targets, reference domain.Table) (domain.Table, error) {
	if err := targets.ValidateCoordinates(); err != nil {
		return domain.Table{}, fmt.Errorf("validate targets: %w", err)
	}

	index := a.Index
	if index == nil {
		index = NewBruteForce(nil)
	}
	if err := index.Build(reference.Records); err != nil {
		return domain.Table{}, fmt.Errorf("build reference index: %w", err)
	}

	out := domain.Table{
		Series:  append([]string(nil), targets.Series...),
		Records: make([]domain.Record, len(targets.Records)),
	}
	if len(reference.Records) > 0 {
		out.Series = append(out.Series, reference.Series...)
	}

	total := len(targets.Records)
	for i, target := range targets.Records {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return domain.Table{}, err
			}
		}

		values := target.CloneValues()
		if m, ok := index.Nearest(target.Coord); ok {
			values = append(values, reference.Records[m.Ordinal].Values...)
		}
		out.Records[i] = domain.Record{Coord: target.Coord, Values: values}

		if a.Progress != nil {
			a.Progress(i+1, total)
		}
	}
	return out, nil
}
