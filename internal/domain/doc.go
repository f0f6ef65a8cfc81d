// Package domain models Social Determinants of Health (SDOH) indicator data
// sourced from the U.S. Census Bureau American Community Survey (ACS).
//
// # Data Source
//
// Indicators come from the ACS 1-year data profile tables, served by the
// Census data API at https://api.census.gov/data/2022/acs/acs1. A request
// names a variable (e.g. "DP03_0062E" for median household income) and a
// geography clause, and the API answers with a JSON array of string arrays:
// the first row is the column headers, every following row is one
// jurisdiction in the same column order as requested.
//
// # Census API Conventions
//
// Geography clauses:
//
//	for=state:*                     → one row per state and territory
//	for=county:*&in=state:<fips>    → one row per county of that state
//
// FIPS codes:
//
//	States are identified by a 2-digit FIPS code, counties by a 3-digit
//	suffix within their state (5 digits combined). The API is inconsistent
//	about leading zeros, so "6" and "06" both mean California and must
//	normalize to the same canonical zero-padded value. See [NormalizeStateFIPS].
//
// Missing values:
//
//	A suppressed or unavailable estimate appears as an empty string or a
//	single dash ("-") in the value column. Such rows still identify a real
//	jurisdiction and are kept with a nil value rather than dropped.
//
// Territories:
//
//	State-level responses include Puerto Rico and other territories, which
//	have no region on a USA-states choropleth. Rows whose FIPS code is not
//	in the jurisdiction table are dropped at state level only; county rows
//	are never jurisdiction-filtered.
//
// # Metric Polarity
//
// Each metric carries a HigherIsBetter flag: median income up is good,
// poverty rate up is bad. The presentation layer uses the flag to pick the
// coloring direction of the map; the pipeline passes it through untouched.
package domain
