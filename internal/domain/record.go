package domain

// Scope identifies the geographic level of a request: the literal
// ScopeStates for all states, or a normalized 2-digit state FIPS code
// meaning "the counties of this state".
type Scope string

// ScopeStates requests one record per state.
const ScopeStates Scope = "state"

// IsStates reports whether the scope is the all-states level.
func (s Scope) IsStates() bool {
	return s == ScopeStates
}

// Normalize zero-pads a county-level scope's state FIPS code. The states
// literal passes through unchanged.
func (s Scope) Normalize() Scope {
	if s.IsStates() {
		return s
	}
	return Scope(NormalizeStateFIPS(string(s)))
}

// Record is one normalized observation. It is a tagged variant over
// StateRecord and CountyRecord; exporters and the presentation layer switch
// on the concrete type for the geography columns.
type Record interface {
	// Label is the jurisdiction's display name, e.g. "California" or
	// "Travis County, Texas".
	Label() string

	// Datum is the metric value, nil when the source reported the estimate
	// as missing or suppressed.
	Datum() *float64
}

// StateRecord is one state-level observation with a canonical 2-digit FIPS.
type StateRecord struct {
	Name  string   `json:"name"`
	FIPS  string   `json:"fips"`
	Value *float64 `json:"value"`
}

func (r StateRecord) Label() string   { return r.Name }
func (r StateRecord) Datum() *float64 { return r.Value }

// CountyRecord is one county-level observation. StateFIPS is 2 digits,
// CountyFIPS the 3-digit suffix within the state.
type CountyRecord struct {
	Name       string   `json:"name"`
	StateFIPS  string   `json:"state_fips"`
	CountyFIPS string   `json:"county_fips"`
	Value      *float64 `json:"value"`
}

func (r CountyRecord) Label() string   { return r.Name }
func (r CountyRecord) Datum() *float64 { return r.Value }

// FullFIPS is the combined 5-digit code used by county choropleth layers.
func (r CountyRecord) FullFIPS() string {
	return CombineFIPS(r.StateFIPS, r.CountyFIPS)
}
