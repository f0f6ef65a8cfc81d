package domain

import (
	"fmt"
	"sort"
)

// ErrUnknownMetric is returned when a metric name is not in the catalog.
// It signals a programmer or configuration error, not a data problem.
var ErrUnknownMetric = fmt.Errorf("unknown metric")

// MetricDefinition describes one SDOH indicator and how to request it from
// the Census API. Definitions are immutable after catalog construction.
type MetricDefinition struct {
	Name           string `json:"name"`
	Variable       string `json:"variable"` // ACS variable ID, e.g. "DP03_0062E"
	Endpoint       string `json:"endpoint"` // API endpoint path segment, e.g. "profile"
	HigherIsBetter bool   `json:"higher_is_better"`
	Description    string `json:"description"`
}

// Catalog maps metric display names to their definitions.
type Catalog map[string]MetricDefinition

// Lookup resolves a metric name, returning ErrUnknownMetric when the name
// is not registered.
func (c Catalog) Lookup(name string) (MetricDefinition, error) {
	def, ok := c[name]
	if !ok {
		return MetricDefinition{}, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
	return def, nil
}

// Names returns the catalog's metric names in sorted order for stable
// presentation.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultCatalog returns the SDOH metrics served by the dashboard, all from
// the ACS data profile tables.
func DefaultCatalog() Catalog {
	return Catalog{
		"Median Household Income": {
			Name:           "Median Household Income",
			Variable:       "DP03_0062E",
			Endpoint:       "profile",
			HigherIsBetter: true,
			Description:    "Median household income in the past 12 months (in 2022 inflation-adjusted dollars)",
		},
		"Poverty Rate": {
			Name:           "Poverty Rate",
			Variable:       "DP03_0119PE",
			Endpoint:       "profile",
			HigherIsBetter: false,
			Description:    "Percentage of population below poverty level",
		},
		"Educational Attainment (Bachelor's+)": {
			Name:           "Educational Attainment (Bachelor's+)",
			Variable:       "DP02_0065PE",
			Endpoint:       "profile",
			HigherIsBetter: true,
			Description:    "Percentage of population 25+ with bachelor's degree or higher",
		},
		"Unemployment Rate": {
			Name:           "Unemployment Rate",
			Variable:       "DP03_0005PE",
			Endpoint:       "profile",
			HigherIsBetter: false,
			Description:    "Unemployment rate for population 16 years and over",
		},
		"Health Insurance Coverage": {
			Name:           "Health Insurance Coverage",
			Variable:       "DP03_0096PE",
			Endpoint:       "profile",
			HigherIsBetter: true,
			Description:    "Percentage of population with health insurance coverage",
		},
	}
}
