package domain

import (
	"fmt"
	"math"
	"strconv"
)

// Aggregation selects how a composite window is collapsed into one sample.
type Aggregation int

const (
	AggregationMean Aggregation = iota
	AggregationSum
	AggregationMax
)

// ParseAggregation maps the user-facing aggregation name to its constant.
func ParseAggregation(s string) (Aggregation, error) {
	switch s {
	case "mean":
		return AggregationMean, nil
	case "sum":
		return AggregationSum, nil
	case "max":
		return AggregationMax, nil
	default:
		return 0, fmt.Errorf("unknown aggregation %q (want mean, sum, or max)", s)
	}
}

// String returns the user-facing name of the aggregation.
func (a Aggregation) String() string {
	switch a {
	case AggregationMean:
		return "mean"
	case AggregationSum:
		return "sum"
	case AggregationMax:
		return "max"
	default:
		return "unknown"
	}
}

// Composite collapses every window of `window` consecutive samples into one
// aggregated sample, producing a table of width/window columns named by
// window ordinal. The series width must be a positive multiple of window;
// anything else is a ShapeMismatchError. NaN samples propagate into their
// window's aggregate.
func Composite(t Table, window int, agg Aggregation) (Table, error) {
	if window <= 0 {
		return Table{}, fmt.Errorf("composite window must be positive, got %d", window)
	}
	width, err := t.Width()
	if err != nil {
		return Table{}, err
	}
	if width%window != 0 {
		return Table{}, &ShapeMismatchError{Expected: window, Actual: width, Row: -1}
	}

	outWidth := width / window
	out := Table{
		Series:  make([]string, outWidth),
		Records: make([]Record, len(t.Records)),
	}
	for i := range out.Series {
		out.Series[i] = strconv.Itoa(i)
	}

	for i, rec := range t.Records {
		values := make([]float64, outWidth)
		for w := 0; w < outWidth; w++ {
			values[w] = aggregate(rec.Values[w*window:(w+1)*window], agg)
		}
		out.Records[i] = Record{Coord: rec.Coord, Values: values}
	}
	return out, nil
}

func aggregate(window []float64, agg Aggregation) float64 {
	switch agg {
	case AggregationSum, AggregationMean:
		sum := 0.0
		for _, v := range window {
			sum += v
		}
		if agg == AggregationSum {
			return sum
		}
		return sum / float64(len(window))
	case AggregationMax:
		maxVal := window[0]
		for _, v := range window[1:] {
			if v > maxVal || math.IsNaN(v) {
				maxVal = v
			}
		}
		return maxVal
	default:
		return math.NaN()
	}
}
