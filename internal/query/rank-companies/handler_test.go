package rankcompanies

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"placement-directory/internal/common/logger"
	"placement-directory/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{DefaultSort: models.SortNone}
}

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

func sample() []models.Company {
	return []models.Company{
		{ID: "a", Name: "beta", HiringTrend: models.HiringTrendStable, PlacementRate: 80, AveragePackage: 10},
		{ID: "b", Name: "Alpha", HiringTrend: models.HiringTrendDecreasing, PlacementRate: 95, AveragePackage: 10},
		{ID: "c", Name: "gamma", HiringTrend: models.HiringTrendIncreasing, PlacementRate: 80, AveragePackage: 22},
		{ID: "d", Name: "Delta", HiringTrend: models.HiringTrendIncreasing, PlacementRate: 60, AveragePackage: 4},
	}
}

func ids(companies []models.Company) []string {
	out := make([]string, 0, len(companies))
	for _, c := range companies {
		out = append(out, c.ID)
	}
	return out
}

// ==========================
// Rank
// ==========================

func TestRank(t *testing.T) {
	tests := []struct {
		name string
		by   models.SortOption
		want []string
	}{
		{name: "none keeps source order", by: models.SortNone, want: []string{"a", "b", "c", "d"}},
		{name: "hiring trend increasing first, ties stable", by: models.SortHiringTrend, want: []string{"c", "d", "a", "b"}},
		{name: "placement rate descending, ties stable", by: models.SortPlacementRate, want: []string{"b", "a", "c", "d"}},
		{name: "package descending, ties stable", by: models.SortPackage, want: []string{"c", "a", "b", "d"}},
		{name: "name case insensitive", by: models.SortName, want: []string{"b", "a", "d", "c"}},
		{name: "unknown option keeps source order", by: models.SortOption("rating"), want: []string{"a", "b", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Rank(sample(), tt.by)))
		})
	}
}

func TestRank_DoesNotModifyInput(t *testing.T) {
	in := sample()
	_ = Rank(in, models.SortPackage)
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(in))
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(nil, models.SortName))
}

// ==========================
// Handler
// ==========================

func TestHandler_Execute(t *testing.T) {
	h := NewHandler(createTestConfig(), createTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Companies: sample(), SortBy: models.SortPlacementRate})
	require.NoError(t, err)
	assert.Equal(t, models.SortPlacementRate, out.SortBy)
	assert.Equal(t, "b", out.Companies[0].ID)
}

func TestHandler_Execute_DefaultSort(t *testing.T) {
	cfg := createTestConfig()
	cfg.DefaultSort = models.SortName
	h := NewHandler(cfg, createTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Companies: sample()})
	require.NoError(t, err)
	assert.Equal(t, models.SortName, out.SortBy)
	assert.Equal(t, []string{"b", "a", "d", "c"}, ids(out.Companies))
}

func TestHandler_Execute_Errors(t *testing.T) {
	h := NewHandler(createTestConfig(), createTestLogger(t))

	_, err := h.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilInput)

	_, err = h.Execute(context.Background(), &Input{SortBy: "rating"})
	assert.ErrorIs(t, err, ErrUnknownSortOption)
}
