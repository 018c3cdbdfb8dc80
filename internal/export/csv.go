package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/piwi3910/packt/internal/model"
)

// WriteCSV writes a header row and one row per record.
func WriteCSV(w io.Writer, records []model.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(model.RecordHeader); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(r.Fields()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes records to a CSV file at path.
func ExportCSV(path string, records []model.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// CSVStream appends records to a CSV file as they arrive, so a long sweep
// leaves partial results behind if interrupted.
type CSVStream struct {
	f  *os.File
	cw *csv.Writer
}

// NewCSVStream creates path and writes the header.
func NewCSVStream(path string) (*CSVStream, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	s := &CSVStream{f: f, cw: csv.NewWriter(f)}
	if err := s.write(model.RecordHeader); err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

// Add writes one record and flushes it.
func (s *CSVStream) Add(r model.Record) error {
	return s.write(r.Fields())
}

func (s *CSVStream) write(row []string) error {
	if err := s.cw.Write(row); err != nil {
		return err
	}
	s.cw.Flush()
	return s.cw.Error()
}

// Close closes the underlying file.
func (s *CSVStream) Close() error {
	return s.f.Close()
}
