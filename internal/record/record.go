// Package record reads crash-prediction CSV files one data row at a time.
package record

import (
	"encoding/csv"
	"io"

	"github.com/vacrashmap/crashcheck/internal/errors"
)

// Record is a single data row keyed by header column name.
type Record struct {
	// Row is the 1-based line position in the file; the header is row 1,
	// so the first data row is row 2.
	Row int

	fields map[string]string
}

// Field returns the raw text for the named column and whether the column
// exists in the header. Values are returned exactly as they appear in the
// file, including surrounding whitespace.
func (r *Record) Field(name string) (string, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// Columns returns the number of fields carried by the record.
func (r *Record) Columns() int {
	return len(r.fields)
}

// Reader iterates the data rows of a crash-prediction CSV stream.
//
// The underlying csv.Reader keeps its default field-count enforcement, so a
// row with more or fewer fields than the header surfaces as a read error
// rather than a partially populated record.
type Reader struct {
	csv    *csv.Reader
	header []string
	row    int
}

// NewReader creates a Reader over r. The header row is not consumed until
// Header or Next is called.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		csv: csv.NewReader(r),
		row: 1,
	}
}

// Header reads the header row on first call and returns it. An empty stream
// returns errors.ErrNoHeader.
func (r *Reader) Header() ([]string, error) {
	if r.header != nil {
		return r.header, nil
	}

	fields, err := r.csv.Read()
	if err == io.EOF {
		return nil, errors.ErrNoHeader
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading header row")
	}

	r.header = fields
	return r.header, nil
}

// Next returns the next data row, or io.EOF when the stream is exhausted.
// Any other error means the row could not be decoded and the stream should
// be abandoned. If a column name repeats in the header, the rightmost value
// wins.
func (r *Reader) Next() (*Record, error) {
	if r.header == nil {
		if _, err := r.Header(); err != nil {
			return nil, err
		}
	}

	fields, err := r.csv.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading row")
	}

	r.row++
	byName := make(map[string]string, len(r.header))
	for i, name := range r.header {
		if i < len(fields) {
			byName[name] = fields[i]
		}
	}

	return &Record{Row: r.row, fields: byName}, nil
}
