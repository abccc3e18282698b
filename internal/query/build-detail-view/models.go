// internal/query/build-detail-view/models.go
package builddetailview

import "placement-directory/internal/models"

type Input struct {
	Company models.Company `json:"company"`
}

type Output struct {
	Salary []models.SalaryPoint     `json:"salary"`
	Trend  models.HiringTrendSeries `json:"trend"`
}
