package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/sdoh-dashboard/internal/domain"
)

func testMetric() domain.MetricDefinition {
	return domain.MetricDefinition{
		Name:        "Median Household Income",
		Description: "Median household income in the past 12 months",
	}
}

func TestToPDF(t *testing.T) {
	records := []domain.Record{
		domain.StateRecord{Name: "California", FIPS: "06", Value: fv(91905)},
		domain.StateRecord{Name: "Texas", FIPS: "48", Value: fv(73035)},
	}
	generatedAt := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	out, err := ToPDF(records, testMetric(), "SDOH Report: Median Household Income by State", generatedAt)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestToPDF_NoPresentValues(t *testing.T) {
	records := []domain.Record{
		domain.StateRecord{Name: "California", FIPS: "06", Value: nil},
	}

	out, err := ToPDF(records, testMetric(), "SDOH Report", time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, out, "report renders without the summary block")
}

func TestToPDF_Empty(t *testing.T) {
	out, err := ToPDF(nil, testMetric(), "SDOH Report", time.Now())
	require.NoError(t, err)
	assert.Nil(t, out)
}
