package pipeline

import (
	"strconv"
	"strings"

	"github.com/couchcryptid/sdoh-dashboard/internal/domain"
)

// Column order mirrors the request's get parameter: value, NAME, then the
// geography columns the API appends for the for/in clauses.
const (
	stateRowWidth  = 3 // value, NAME, state
	countyRowWidth = 4 // value, NAME, state, county
)

// normalizeStateRows converts a raw state-level table into records,
// skipping the header row. Rows with the wrong width or a non-numeric FIPS
// are dropped, as are territories without a renderable map region. Returns
// the records and the number of dropped rows.
func normalizeStateRows(table [][]string) ([]domain.Record, int) {
	if len(table) < 2 {
		return nil, 0
	}

	records := make([]domain.Record, 0, len(table)-1)
	skipped := 0
	for _, row := range table[1:] {
		if len(row) != stateRowWidth || !isNumericCode(row[2]) {
			skipped++
			continue
		}
		fips := domain.NormalizeStateFIPS(row[2])
		if !domain.IsMappableState(fips) {
			skipped++
			continue
		}
		records = append(records, domain.StateRecord{
			Name:  row[1],
			FIPS:  fips,
			Value: parseValue(row[0]),
		})
	}
	return records, skipped
}

// normalizeCountyRows converts a raw county-level table into records.
// Counties are never jurisdiction-filtered; only structurally broken rows
// are dropped.
func normalizeCountyRows(table [][]string) ([]domain.Record, int) {
	if len(table) < 2 {
		return nil, 0
	}

	records := make([]domain.Record, 0, len(table)-1)
	skipped := 0
	for _, row := range table[1:] {
		if len(row) != countyRowWidth || !isNumericCode(row[2]) || !isNumericCode(row[3]) {
			skipped++
			continue
		}
		records = append(records, domain.CountyRecord{
			Name:       row[1],
			StateFIPS:  domain.NormalizeStateFIPS(row[2]),
			CountyFIPS: domain.NormalizeCountyFIPS(row[3]),
			Value:      parseValue(row[0]),
		})
	}
	return records, skipped
}

// parseValue parses the estimate column. The API encodes a missing or
// suppressed estimate as an empty string or a single dash; anything else
// that fails to parse is likewise treated as absent rather than dropping
// the row, since the row still identifies a real jurisdiction.
func parseValue(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// isNumericCode reports whether s is a plausible FIPS code: non-empty and
// all digits.
func isNumericCode(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	_, err := strconv.Atoi(s)
	return err == nil && !strings.HasPrefix(s, "-") && !strings.HasPrefix(s, "+")
}
