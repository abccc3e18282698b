package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"placement-directory/internal/common/logger"
	"placement-directory/internal/datasource"
	"placement-directory/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

func sampleCompanies() []models.Company {
	return []models.Company{
		{ID: "a", Name: "Acme", Industry: "Tech", Headquarters: "Pune, Maharashtra", AveragePackage: 12, PlacementRate: 90, ActiveRoles: []string{"SDE", "QA"}},
		{ID: "b", Name: "Zenith", Industry: "Finance", Headquarters: "Mumbai, Maharashtra", AveragePackage: 8, PlacementRate: 75, ActiveRoles: []string{"Analyst"}},
		{ID: "a", Name: "Acme Again", Industry: "Tech", Headquarters: "Delhi", AveragePackage: 10, PlacementRate: 80},
	}
}

type failingProvider struct{ err error }

func (f failingProvider) Name() string { return "broken" }

func (f failingProvider) ListAll(context.Context) ([]models.Company, error) { return nil, f.err }

// ==========================
// Build
// ==========================

func TestNew(t *testing.T) {
	c := New("static", sampleCompanies())

	assert.Equal(t, "static", c.Source())
	assert.Equal(t, 3, c.Len())
	assert.False(t, c.LoadedAt().IsZero())

	assert.Equal(t, []string{"Finance", "Tech"}, c.Facets().Industries)
	assert.Equal(t, []string{"Maharashtra"}, c.Facets().Locations)

	stats := c.Stats()
	assert.Equal(t, 3, stats.CompaniesListed)
	assert.Equal(t, 3, stats.ActiveRoles)
	assert.InDelta(t, 10.0, stats.AveragePackage, 1e-9)
	assert.InDelta(t, 82.0, stats.AveragePlacementRate, 1e-9)
}

func TestCatalog_Company(t *testing.T) {
	c := New("static", sampleCompanies())

	tests := []struct {
		id       string
		wantName string
		wantOK   bool
	}{
		{id: "a", wantName: "Acme", wantOK: true},
		{id: "b", wantName: "Zenith", wantOK: true},
		{id: "z", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, ok := c.Company(tt.id)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, got.Name)
		})
	}
}

func TestNew_Empty(t *testing.T) {
	c := New("static", nil)
	assert.Equal(t, 0, c.Len())
	assert.NotNil(t, c.Companies())
	assert.Empty(t, c.Facets().Industries)
	assert.Equal(t, models.Stats{}, c.Stats())
}

func TestBuild_ParallelFacetsMatchSequential(t *testing.T) {
	companies := make([]models.Company, 0, 300)
	for i := 0; i < 300; i++ {
		companies = append(companies, models.Company{
			ID:           fmt.Sprintf("c%d", i),
			Industry:     fmt.Sprintf("Industry %d", i%7),
			Headquarters: fmt.Sprintf("City, Region %d", i%11),
		})
	}

	parallel, err := Build(context.Background(), "static", companies, Options{FacetParallelism: 4, ParallelThreshold: 10})
	require.NoError(t, err)
	assert.Equal(t, New("static", companies).Facets(), parallel.Facets())
}

// ==========================
// Loader
// ==========================

func TestLoader_Load(t *testing.T) {
	provider := datasource.NewStatic("static", sampleCompanies())
	loader := NewLoader(provider, Options{}, createTestLogger(t), nil)

	c, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "static", c.Source())
	assert.Equal(t, 3, c.Len())
}

func TestLoader_Load_ProviderError(t *testing.T) {
	boom := errors.New("boom")
	loader := NewLoader(failingProvider{err: boom}, Options{}, createTestLogger(t), nil)

	c, err := loader.Load(context.Background())
	assert.Nil(t, c)
	assert.ErrorIs(t, err, boom)
}

func TestLoader_Reload(t *testing.T) {
	var holder Holder
	assert.False(t, holder.Ready())
	assert.Nil(t, holder.Get())

	ok := NewLoader(datasource.NewStatic("static", sampleCompanies()), Options{}, createTestLogger(t), nil)
	require.NoError(t, ok.Reload(context.Background(), &holder))
	require.True(t, holder.Ready())
	first := holder.Get()

	broken := NewLoader(failingProvider{err: errors.New("down")}, Options{}, createTestLogger(t), nil)
	require.Error(t, broken.Reload(context.Background(), &holder))
	assert.Same(t, first, holder.Get())
}

func TestHolder_ConcurrentAccess(t *testing.T) {
	var holder Holder
	holder.Set(New("static", sampleCompanies()))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			holder.Set(New("static", sampleCompanies()))
		}()
		go func() {
			defer wg.Done()
			_, _ = holder.Get().Company("a")
		}()
	}
	wg.Wait()
	assert.True(t, holder.Ready())
}
