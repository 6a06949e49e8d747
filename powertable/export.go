package powertable

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/carbocation/gwaspower"
	"github.com/gocarina/gocsv"
)

// Write emits the table with a header row, separated by delim.
func Write(w io.Writer, rows []FormattedRow, delim rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = delim

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(cw)); err != nil {
		return fmt.Errorf("Write: %w", err)
	}

	return nil
}

// Read parses a table produced by Write. Comma and tab delimited tables are
// both accepted.
func Read(r io.Reader) ([]FormattedRow, error) {
	contents, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("Read: %w", err)
	}

	delim := gwaspower.DetermineDelimiterAmong(bytes.NewReader(contents), ',', '\t')

	cr := csv.NewReader(bytes.NewReader(contents))
	cr.Comma = delim

	out := []FormattedRow{}
	if err := gocsv.UnmarshalCSV(cr, &out); err != nil {
		return nil, fmt.Errorf("Read: %w", err)
	}

	return out, nil
}

// Render writes an aligned, human-readable version of the table, with the
// same values as the file and no row indices.
func Render(w io.Writer, rows []FormattedRow) error {
	tr := &tabRenderer{tw: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}

	if err := gocsv.MarshalCSV(rows, tr); err != nil {
		return fmt.Errorf("Render: %w", err)
	}

	return nil
}

// tabRenderer satisfies gocsv.CSVWriter by sending each record to a
// tabwriter.
type tabRenderer struct {
	tw  *tabwriter.Writer
	err error
}

func (t *tabRenderer) Write(row []string) error {
	if t.err != nil {
		return t.err
	}

	_, t.err = io.WriteString(t.tw, strings.Join(row, "\t")+"\n")

	return t.err
}

func (t *tabRenderer) Flush() {
	if err := t.tw.Flush(); err != nil && t.err == nil {
		t.err = err
	}
}

func (t *tabRenderer) Error() error {
	return t.err
}
