package domain

// Amplitude computes the tidal amplitude series: element-wise high tide
// minus low tide. Both tables must have the same row count and series width;
// coordinates and series names are echoed from the high-tide table.
func Amplitude(high, low Table) (Table, error) {
	highWidth, err := high.Width()
	if err != nil {
		return Table{}, err
	}
	lowWidth, err := low.Width()
	if err != nil {
		return Table{}, err
	}
	if len(high.Records) != len(low.Records) {
		return Table{}, &ShapeMismatchError{Expected: len(high.Records), Actual: len(low.Records), Row: -1}
	}
	if highWidth != lowWidth {
		return Table{}, &ShapeMismatchError{Expected: highWidth, Actual: lowWidth, Row: -1}
	}

	out := Table{
		Series:  append([]string(nil), high.Series...),
		Records: make([]Record, len(high.Records)),
	}
	for i, rec := range high.Records {
		values := make([]float64, highWidth)
		for j, v := range rec.Values {
			values[j] = v - low.Records[i].Values[j]
		}
		out.Records[i] = Record{Coord: rec.Coord, Values: values}
	}
	return out, nil
}

// Overwash computes the relative storm event series: per-parcel elevation
// minus the high-tide level at each sample. A negative sample means the
// parcel sits below the tide level and is submerged. elevation must have one
// entry per high-tide row.
func Overwash(elevation []float64, high Table) (Table, error) {
	width, err := high.Width()
	if err != nil {
		return Table{}, err
	}
	if len(elevation) != len(high.Records) {
		return Table{}, &ShapeMismatchError{Expected: len(high.Records), Actual: len(elevation), Row: -1}
	}

	out := Table{
		Series:  append([]string(nil), high.Series...),
		Records: make([]Record, len(high.Records)),
	}
	for i, rec := range high.Records {
		values := make([]float64, width)
		for j, v := range rec.Values {
			values[j] = elevation[i] - v
		}
		out.Records[i] = Record{Coord: rec.Coord, Values: values}
	}
	return out, nil
}
