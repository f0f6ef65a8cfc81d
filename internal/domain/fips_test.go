package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStateFIPS(t *testing.T) {
	assert.Equal(t, "06", NormalizeStateFIPS("6"))
	assert.Equal(t, "06", NormalizeStateFIPS("06"))
	assert.Equal(t, "48", NormalizeStateFIPS("48"))
	assert.Equal(t, "06", NormalizeStateFIPS(" 6 "))
	assert.Empty(t, NormalizeStateFIPS(""))
}

func TestNormalizeStateFIPS_Idempotent(t *testing.T) {
	once := NormalizeStateFIPS("6")
	assert.Equal(t, once, NormalizeStateFIPS(once))
}

func TestNormalizeCountyFIPS(t *testing.T) {
	assert.Equal(t, "001", NormalizeCountyFIPS("1"))
	assert.Equal(t, "013", NormalizeCountyFIPS("13"))
	assert.Equal(t, "453", NormalizeCountyFIPS("453"))
	assert.Empty(t, NormalizeCountyFIPS(""))
}

func TestCombineFIPS(t *testing.T) {
	assert.Equal(t, "48453", CombineFIPS("48", "453"))
	assert.Equal(t, "06001", CombineFIPS("6", "1"))
	assert.Empty(t, CombineFIPS("", "453"))
	assert.Empty(t, CombineFIPS("48", ""))
}

func TestStateAbbrev_PaddedAndUnpaddedAgree(t *testing.T) {
	padded, ok := StateAbbrev("06")
	assert.True(t, ok)
	unpadded, ok2 := StateAbbrev("6")
	assert.True(t, ok2)
	assert.Equal(t, "CA", padded)
	assert.Equal(t, padded, unpadded)
}

func TestIsMappableState_RejectsTerritories(t *testing.T) {
	assert.True(t, IsMappableState("48"))
	assert.True(t, IsMappableState("11"), "DC is mappable")
	assert.False(t, IsMappableState("72"), "Puerto Rico has no USA-states region")
	assert.False(t, IsMappableState("66"), "Guam has no USA-states region")
	assert.False(t, IsMappableState(""))
}
