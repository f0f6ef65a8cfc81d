package domain

import "strings"

// stateAbbrevs maps canonical 2-digit state FIPS codes to USPS abbreviations.
// Covers the 50 states plus DC; territories (e.g. 72 = Puerto Rico) are
// deliberately absent so they fail the mappability check.
var stateAbbrevs = map[string]string{
	"01": "AL", "02": "AK", "04": "AZ", "05": "AR", "06": "CA", "08": "CO", "09": "CT",
	"10": "DE", "11": "DC", "12": "FL", "13": "GA", "15": "HI", "16": "ID", "17": "IL",
	"18": "IN", "19": "IA", "20": "KS", "21": "KY", "22": "LA", "23": "ME", "24": "MD",
	"25": "MA", "26": "MI", "27": "MN", "28": "MS", "29": "MO", "30": "MT", "31": "NE",
	"32": "NV", "33": "NH", "34": "NJ", "35": "NM", "36": "NY", "37": "NC", "38": "ND",
	"39": "OH", "40": "OK", "41": "OR", "42": "PA", "44": "RI", "45": "SC", "46": "SD",
	"47": "TN", "48": "TX", "49": "UT", "50": "VT", "51": "VA", "53": "WA", "54": "WV",
	"55": "WI", "56": "WY",
}

// NormalizeStateFIPS normalizes a state FIPS code to 2 digits with
// zero-padding. Already-canonical input is returned unchanged.
func NormalizeStateFIPS(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	if len(code) == 1 {
		return "0" + code
	}
	return code
}

// NormalizeCountyFIPS normalizes a county FIPS code to 3 digits with
// zero-padding.
func NormalizeCountyFIPS(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	for len(code) < 3 {
		code = "0" + code
	}
	return code
}

// CombineFIPS combines state and county FIPS codes into a 5-digit code.
func CombineFIPS(state, county string) string {
	s := NormalizeStateFIPS(state)
	c := NormalizeCountyFIPS(county)
	if s == "" || c == "" {
		return ""
	}
	return s + c
}

// StateAbbrev translates a state FIPS code to its USPS abbreviation.
// Accepts padded and unpadded input ("6" and "06" both resolve to CA).
func StateAbbrev(code string) (string, bool) {
	abbrev, ok := stateAbbrevs[NormalizeStateFIPS(code)]
	return abbrev, ok
}

// IsMappableState reports whether the FIPS code identifies a jurisdiction
// with a renderable region on a USA-states map.
func IsMappableState(code string) bool {
	_, ok := StateAbbrev(code)
	return ok
}
