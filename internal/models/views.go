package models

// Facets are the filter options derived from the catalog.
type Facets struct {
	Industries []string `json:"industries"`
	Locations  []string `json:"locations"`
}

// Stats summarise the whole catalog for the landing page.
type Stats struct {
	CompaniesListed      int     `json:"companiesListed"`
	ActiveRoles          int     `json:"activeRoles"`
	AveragePackage       float64 `json:"averagePackage"`       // LPA, one decimal
	AveragePlacementRate float64 `json:"averagePlacementRate"` // percent, rounded
}

// SalaryPoint is one bar of the compensation chart.
type SalaryPoint struct {
	Name string  `json:"name"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Avg  float64 `json:"avg"`
}

// TrendPoint is one month of the hiring curve.
type TrendPoint struct {
	Month string  `json:"month"`
	Roles float64 `json:"roles"`
}

// Hiring trend modes.
const (
	TrendModeSynthetic = "synthetic"
	TrendModeNone      = "none"
)

// HiringTrendSeries is the monthly hiring chart. Synthetic is set when the
// points are derived from the active role count rather than history.
type HiringTrendSeries struct {
	Mode      string       `json:"mode"`
	Synthetic bool         `json:"synthetic"`
	Points    []TrendPoint `json:"points"`
	Message   string       `json:"message,omitempty"`
}
