// internal/query/resolve-company/models.go
package resolvecompany

import "placement-directory/internal/models"

type Input struct {
	CompanyID string `json:"companyId"`
}

type Output struct {
	Company models.Company `json:"company"`
}
