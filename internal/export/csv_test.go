package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/sdoh-dashboard/internal/domain"
)

func fv(v float64) *float64 { return &v }

func TestToCSV_StateRecords(t *testing.T) {
	records := []domain.Record{
		domain.StateRecord{Name: "California", FIPS: "06", Value: fv(91905)},
		domain.StateRecord{Name: "Vermont", FIPS: "50", Value: nil},
	}

	out, err := ToCSV(records)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"name", "fips", "value"}, rows[0])
	assert.Equal(t, []string{"California", "06", "91905"}, rows[1])
	assert.Equal(t, []string{"Vermont", "50", ""}, rows[2], "absent values serialize as empty cells")
}

func TestToCSV_CountyRecords(t *testing.T) {
	records := []domain.Record{
		domain.CountyRecord{Name: "Travis County, Texas", StateFIPS: "48", CountyFIPS: "453", Value: fv(86556.5)},
	}

	out, err := ToCSV(records)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"name", "state_fips", "county_fips", "value"}, rows[0])
	assert.Equal(t, []string{"Travis County, Texas", "48", "453", "86556.5"}, rows[1])
}

func TestToCSV_QuotesCommasInNames(t *testing.T) {
	records := []domain.Record{
		domain.CountyRecord{Name: "Travis County, Texas", StateFIPS: "48", CountyFIPS: "453", Value: fv(1)},
	}

	out, err := ToCSV(records)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"Travis County, Texas"`)
}

func TestToCSV_Empty(t *testing.T) {
	out, err := ToCSV(nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}
