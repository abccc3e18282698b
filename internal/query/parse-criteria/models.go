// internal/query/parse-criteria/models.go
package parsecriteria

import "placement-directory/internal/models"

// Input carries the raw listing query parameters.
type Input struct {
	Search     string `json:"search"`
	Industry   string `json:"industry"`
	Location   string `json:"location"`
	MinPackage string `json:"minPackage"`
	SortBy     string `json:"sortBy"`
}

type Output struct {
	Criteria models.Criteria   `json:"criteria"`
	SortBy   models.SortOption `json:"sortBy"`
}
