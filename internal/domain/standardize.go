package domain

import (
	"fmt"
	"math"
)

// StandardizeChunked z-scores the table in chunks of `chunk` consecutive
// series columns. Each chunk is pooled across every row and column it spans,
// then rescaled by the pooled mean and population standard deviation, so one
// year of samples shares a single scale. The series width must be a positive
// multiple of chunk.
func StandardizeChunked(t Table, chunk int) (Table, error) {
	if chunk <= 0 {
		return Table{}, fmt.Errorf("standardization chunk must be positive, got %d", chunk)
	}
	width, err := t.Width()
	if err != nil {
		return Table{}, err
	}
	if width%chunk != 0 {
		return Table{}, &ShapeMismatchError{Expected: chunk, Actual: width, Row: -1}
	}

	out := cloneForStandardize(t)
	for c := 0; c*chunk < width; c++ {
		start := c * chunk
		mean, std := poolStats(t.Records, start, start+chunk)
		if std == 0 {
			return Table{}, &ZeroVarianceError{Pool: "chunk", Index: c}
		}
		for i := range out.Records {
			values := out.Records[i].Values
			for j := start; j < start+chunk; j++ {
				values[j] = (values[j] - mean) / std
			}
		}
	}
	return out, nil
}

// StandardizeColumns z-scores each series column independently against its
// own mean and population standard deviation. Used for spatial properties,
// where every column is a distinct physical quantity.
func StandardizeColumns(t Table) (Table, error) {
	width, err := t.Width()
	if err != nil {
		return Table{}, err
	}

	out := cloneForStandardize(t)
	for j := 0; j < width; j++ {
		mean, std := poolStats(t.Records, j, j+1)
		if std == 0 {
			return Table{}, &ZeroVarianceError{Pool: "column", Index: j}
		}
		for i := range out.Records {
			out.Records[i].Values[j] = (out.Records[i].Values[j] - mean) / std
		}
	}
	return out, nil
}

// poolStats returns the mean and population standard deviation (ddof=0) of
// all samples in series columns [start, end) across every record.
func poolStats(records []Record, start, end int) (mean, std float64) {
	n := 0
	sum := 0.0
	for _, rec := range records {
		for _, v := range rec.Values[start:end] {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	mean = sum / float64(n)

	sumSq := 0.0
	for _, rec := range records {
		for _, v := range rec.Values[start:end] {
			d := v - mean
			sumSq += d * d
		}
	}
	return mean, math.Sqrt(sumSq / float64(n))
}

func cloneForStandardize(t Table) Table {
	out := Table{
		Series:  append([]string(nil), t.Series...),
		Records: make([]Record, len(t.Records)),
	}
	for i, rec := range t.Records {
		out.Records[i] = Record{Coord: rec.Coord, Values: rec.CloneValues()}
	}
	return out
}
