// Package table reads and writes the study's flat CSV tables: a header row,
// two leading latitude/longitude columns, then a fixed-width numeric series.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/couchcryptid/tidal-exposure-etl/internal/domain"
)

// Read parses a CSV table. The first two columns are taken as latitude and
// longitude by position regardless of their header names, and at least one
// value column must follow them. Blank cells and the literal "NaN" parse to
// NaN missing-sample markers; any other non-numeric cell is an error naming
// its row and column.
func Read(r io.Reader) (domain.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return domain.Table{}, fmt.Errorf("read header: empty input")
	}
	if err != nil {
		return domain.Table{}, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 3 {
		return domain.Table{}, fmt.Errorf("read header: need lat, lon, and at least one value column, got %d columns", len(header))
	}

	t := domain.Table{Series: append([]string(nil), header[2:]...)}
	for row := 0; ; row++ {
		fields, err := cr.Read()
		if err == io.EOF {
			return t, nil
		}
		if err != nil {
			return domain.Table{}, fmt.Errorf("read row %d: %w", row, err)
		}

		lat, err := parseCell(fields[0])
		if err != nil || math.IsNaN(lat) {
			return domain.Table{}, fmt.Errorf("row %d: invalid latitude %q", row, fields[0])
		}
		lon, err := parseCell(fields[1])
		if err != nil || math.IsNaN(lon) {
			return domain.Table{}, fmt.Errorf("row %d: invalid longitude %q", row, fields[1])
		}

		values := make([]float64, len(fields)-2)
		for j, cell := range fields[2:] {
			v, err := parseCell(cell)
			if err != nil {
				return domain.Table{}, fmt.Errorf("row %d, column %q: %w", row, header[j+2], err)
			}
			values[j] = v
		}
		t.Records = append(t.Records, domain.Record{
			Coord:  domain.Coordinate{Lat: lat, Lon: lon},
			Values: values,
		})
	}
}

// Write serializes a table with a "lat,lon,<series...>" header. NaN samples
// are written as blank cells so a round trip preserves missing markers.
func Write(w io.Writer, t domain.Table) error {
	cw := csv.NewWriter(w)

	header := append([]string{"lat", "lon"}, t.Series...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	fields := make([]string, len(header))
	for i, rec := range t.Records {
		if len(rec.Values) != len(t.Series) {
			return &domain.ShapeMismatchError{Expected: len(t.Series), Actual: len(rec.Values), Row: i}
		}
		fields = fields[:2]
		fields[0] = formatCell(rec.Coord.Lat)
		fields[1] = formatCell(rec.Coord.Lon)
		for _, v := range rec.Values {
			fields = append(fields, formatCell(v))
		}
		if err := cw.Write(fields); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
