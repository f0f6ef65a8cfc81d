package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fv(v float64) *float64 { return &v }

func TestSummarize(t *testing.T) {
	records := []Record{
		StateRecord{Name: "California", FIPS: "06", Value: fv(91905)},
		StateRecord{Name: "Texas", FIPS: "48", Value: fv(73035)},
		StateRecord{Name: "Vermont", FIPS: "50", Value: nil},
		StateRecord{Name: "Maine", FIPS: "23", Value: fv(68251)},
	}

	s, ok := Summarize(records)
	require.True(t, ok)
	assert.Equal(t, 3, s.Count, "nil values excluded from the count")
	assert.InEpsilon(t, 77730.333, s.Mean, 0.001)
	assert.InEpsilon(t, 68251.0, s.Min, 0.0001)
	assert.InEpsilon(t, 91905.0, s.Max, 0.0001)
}

func TestSummarize_NoPresentValues(t *testing.T) {
	records := []Record{
		StateRecord{Name: "California", FIPS: "06"},
		CountyRecord{Name: "Travis County, Texas", StateFIPS: "48", CountyFIPS: "453"},
	}

	_, ok := Summarize(records)
	assert.False(t, ok)
}

func TestSummarize_Empty(t *testing.T) {
	_, ok := Summarize(nil)
	assert.False(t, ok)
}

func TestCountyRecord_FullFIPS(t *testing.T) {
	r := CountyRecord{Name: "Travis County, Texas", StateFIPS: "48", CountyFIPS: "453"}
	assert.Equal(t, "48453", r.FullFIPS())
}
