package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Record is one data row with header-driven access by column name.
type Record struct {
	index  map[string]int
	fields []string
}

// Get returns the trimmed value of the named column. Missing columns and
// short rows read as the empty string.
func (r Record) Get(name string) string {
	i, ok := r.index[name]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

// Source produces rows one at a time; Next returns io.EOF when exhausted.
type Source interface {
	Next() (Record, error)
}

// CSVSource reads rows from a ShootProof CSV export. The first row is the
// header; all access is by column name, never by position.
type CSVSource struct {
	reader *csv.Reader
	index  map[string]int
	file   *os.File
}

// OpenCSV opens path as a header-driven row source, tolerating a leading
// UTF-8 byte-order marker (ShootProof exports carry one).
func OpenCSV(path string) (*CSVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	r := csv.NewReader(transform.NewReader(f, unicode.UTF8BOM.NewDecoder()))
	r.FieldsPerRecord = -1

	index := make(map[string]int)
	header, err := r.Read()
	if err != nil && !errors.Is(err, io.EOF) {
		f.Close()
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	return &CSVSource{reader: r, index: index, file: f}, nil
}

// Next returns the next data row, or io.EOF once the file is exhausted.
func (s *CSVSource) Next() (Record, error) {
	fields, err := s.reader.Read()
	if err != nil {
		return Record{}, err
	}
	return Record{index: s.index, fields: fields}, nil
}

// Close releases the underlying file.
func (s *CSVSource) Close() error {
	return s.file.Close()
}
