// Package datasource defines where the company catalog comes from. Providers
// only list records in source order; filtering always happens in-process.
package datasource

import (
	"context"

	"placement-directory/internal/models"
)

// Provider lists every company record of one backing store.
type Provider interface {
	// Name labels the source in logs and metrics.
	Name() string
	ListAll(ctx context.Context) ([]models.Company, error)
}

// Static serves a fixed slice. Used by tests and by tools that already hold
// the records in memory.
type Static struct {
	name      string
	companies []models.Company
}

func NewStatic(name string, companies []models.Company) *Static {
	return &Static{name: name, companies: companies}
}

func (s *Static) Name() string { return s.name }

func (s *Static) ListAll(ctx context.Context) ([]models.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]models.Company, len(s.companies))
	copy(out, s.companies)
	return out, nil
}
