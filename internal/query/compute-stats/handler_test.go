package computestats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"placement-directory/internal/common/logger"
	"placement-directory/internal/models"
)

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name      string
		companies []models.Company
		want      models.Stats
	}{
		{
			name:      "empty catalog",
			companies: nil,
			want:      models.Stats{},
		},
		{
			name: "two companies",
			companies: []models.Company{
				{ActiveRoles: []string{"SDE", "QA"}, AveragePackage: 12, PlacementRate: 90},
				{ActiveRoles: []string{"Analyst"}, AveragePackage: 8, PlacementRate: 75},
			},
			want: models.Stats{CompaniesListed: 2, ActiveRoles: 3, AveragePackage: 10, AveragePlacementRate: 83},
		},
		{
			name: "package rounded to one decimal",
			companies: []models.Company{
				{AveragePackage: 4.5, PlacementRate: 80},
				{AveragePackage: 4.6, PlacementRate: 81},
				{AveragePackage: 4.6, PlacementRate: 81},
			},
			want: models.Stats{CompaniesListed: 3, AveragePackage: 4.6, AveragePlacementRate: 81},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.companies)
			assert.Equal(t, tt.want.CompaniesListed, got.CompaniesListed)
			assert.Equal(t, tt.want.ActiveRoles, got.ActiveRoles)
			assert.InDelta(t, tt.want.AveragePackage, got.AveragePackage, 1e-9)
			assert.InDelta(t, tt.want.AveragePlacementRate, got.AveragePlacementRate, 1e-9)
		})
	}
}

func TestHandler_Execute(t *testing.T) {
	h := NewHandler(LoadConfig(), createTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Companies: []models.Company{{ActiveRoles: []string{"SDE"}, AveragePackage: 7}}})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Stats.CompaniesListed)
	assert.Equal(t, 1, out.Stats.ActiveRoles)

	_, err = h.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilInput)
}
