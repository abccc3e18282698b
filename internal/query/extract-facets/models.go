// internal/query/extract-facets/models.go
package extractfacets

import "placement-directory/internal/models"

type Input struct {
	Companies []models.Company `json:"companies"`
}

type Output struct {
	Facets models.Facets `json:"facets"`
}
