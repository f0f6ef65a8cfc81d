// Package export serializes record lists into the download formats offered
// by the dashboard: a delimited table and a printable PDF report. Both
// adapters are pure functions over already-normalized records; they produce
// bytes on demand and persist nothing.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/couchcryptid/sdoh-dashboard/internal/domain"
)

// ToCSV flattens records into an RFC 4180 table. Absent values serialize as
// empty cells. An empty record list yields a nil byte slice and no error.
func ToCSV(records []domain.Record) ([]byte, error) {
	if len(records) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header, err := csvHeader(records[0])
	if err != nil {
		return nil, err
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range records {
		row, err := csvRow(r)
		if err != nil {
			return nil, err
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func csvHeader(first domain.Record) ([]string, error) {
	switch first.(type) {
	case domain.StateRecord:
		return []string{"name", "fips", "value"}, nil
	case domain.CountyRecord:
		return []string{"name", "state_fips", "county_fips", "value"}, nil
	default:
		return nil, fmt.Errorf("unsupported record type %T", first)
	}
}

func csvRow(r domain.Record) ([]string, error) {
	switch rec := r.(type) {
	case domain.StateRecord:
		return []string{rec.Name, rec.FIPS, formatValue(rec.Value)}, nil
	case domain.CountyRecord:
		return []string{rec.Name, rec.StateFIPS, rec.CountyFIPS, formatValue(rec.Value)}, nil
	default:
		return nil, fmt.Errorf("unsupported record type %T", r)
	}
}

func formatValue(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
