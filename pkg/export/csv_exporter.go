package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
)

// UTF8BOM lets spreadsheet software detect the encoding of accented names.
var UTF8BOM = []byte("\ufeff")

// Dataset defines tabular export content. Row values are looked up by header.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// Record returns row i in header order; missing cells are empty.
func (d Dataset) Record(i int) []string {
	record := make([]string, len(d.Headers))
	for j, header := range d.Headers {
		record[j] = d.Rows[i][header]
	}
	return record
}

var errNoHeaders = errors.New("dataset has no headers")

// CSVExporter renders a Dataset as CSV.
type CSVExporter struct {
	comma rune
	bom   bool
}

// CSVOption customises a CSVExporter.
type CSVOption func(*CSVExporter)

// WithComma switches the field separator, e.g. ';' for locales using decimal commas.
func WithComma(r rune) CSVOption {
	return func(e *CSVExporter) { e.comma = r }
}

// WithoutBOM omits the leading byte order mark.
func WithoutBOM() CSVOption {
	return func(e *CSVExporter) { e.bom = false }
}

// NewCSVExporter builds a comma separated exporter that prefixes UTF8BOM.
func NewCSVExporter(opts ...CSVOption) *CSVExporter {
	e := &CSVExporter{comma: ',', bom: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render writes the header line followed by one record per row.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, errNoHeaders
	}

	var buf bytes.Buffer
	if e.bom {
		buf.Write(UTF8BOM)
	}
	w := csv.NewWriter(&buf)
	w.Comma = e.comma

	if err := w.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	for i := range data.Rows {
		if err := w.Write(data.Record(i)); err != nil {
			return nil, fmt.Errorf("csv row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv flush: %w", err)
	}
	return buf.Bytes(), nil
}
