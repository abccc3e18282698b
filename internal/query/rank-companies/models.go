// internal/query/rank-companies/models.go
package rankcompanies

import "placement-directory/internal/models"

type Input struct {
	Companies []models.Company  `json:"companies"`
	SortBy    models.SortOption `json:"sortBy"`
}

type Output struct {
	Companies []models.Company  `json:"companies"`
	SortBy    models.SortOption `json:"sortBy"`
}
