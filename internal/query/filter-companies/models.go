// internal/query/filter-companies/models.go
package filtercompanies

import "placement-directory/internal/models"

type Input struct {
	Criteria models.Criteria `json:"criteria"`
}

// Output.Companies may be shared with the memo and with other callers; treat
// it as read-only.
type Output struct {
	Companies []models.Company `json:"companies"`
	Matched   int              `json:"matched"`
	Total     int              `json:"total"`
	Memoized  bool             `json:"-"`
}
