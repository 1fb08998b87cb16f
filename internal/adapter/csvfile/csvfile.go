// Package csvfile adapts CSV files on disk to the pipeline's table source
// and sink interfaces. Output files are written atomically: the sink writes
// to a temporary file in the destination directory and renames it into place
// only after the whole table has been flushed.
package csvfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/couchcryptid/tidal-exposure-etl/internal/domain"
	"github.com/couchcryptid/tidal-exposure-etl/internal/table"
)

// Source reads a table from a CSV file.
// It implements pipeline.TableSource.
type Source struct {
	path string
}

func NewSource(path string) *Source { return &Source{path: path} }

func (s *Source) Name() string { return s.path }

func (s *Source) ReadTable(_ context.Context) (domain.Table, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return domain.Table{}, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	t, err := table.Read(f)
	if err != nil {
		return domain.Table{}, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return t, nil
}

// Sink writes a table to a CSV file.
// It implements pipeline.TableSink.
type Sink struct {
	path string
}

func NewSink(path string) *Sink { return &Sink{path: path} }

func (s *Sink) Name() string { return s.path }

func (s *Sink) WriteTable(_ context.Context, t domain.Table) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	defer os.Remove(tmp.Name())

	if err := table.Write(tmp, t); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("rename into %s: %w", s.path, err)
	}
	return nil
}
