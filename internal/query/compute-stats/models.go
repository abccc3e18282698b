// internal/query/compute-stats/models.go
package computestats

import "placement-directory/internal/models"

type Input struct {
	Companies []models.Company `json:"companies"`
}

type Output struct {
	Stats models.Stats `json:"stats"`
}
