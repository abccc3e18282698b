package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"placement-directory/internal/catalog"
	"placement-directory/internal/common/config"
	"placement-directory/internal/common/logger"
	"placement-directory/internal/models"
	"placement-directory/internal/presentation"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() Options {
	opts := Options{
		App:   config.AppConfig{Name: "placement-directory", Version: "test"},
		Query: config.QueryConfig{MemoizeSize: 16, HiringTrendMode: models.TrendModeSynthetic},
	}
	opts.Server.AllowedOrigin = "*"
	opts.Server.WriteTimeout = 5000
	opts.Server.RateLimit.RequestsPerMinute = 6000
	opts.Server.RateLimit.Burst = 100
	return opts
}

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

func sampleCompanies() []models.Company {
	return []models.Company{
		{
			ID: "a", Name: "Acme", Industry: "Tech", Headquarters: "Pune, Maharashtra", Size: "Large",
			AveragePackage: 12, PlacementRate: 90, HiringTrend: models.HiringTrendStable,
			ActiveRoles:  []string{"SDE", "QA"},
			SalaryRanges: []models.SalaryRange{{Level: "Junior", Min: 6, Max: 10, Location: "Pune"}},
			InterviewProcess: []models.InterviewRound{
				{RoundNumber: 1, Name: "OA", Difficulty: models.DifficultyMedium},
			},
		},
		{
			ID: "b", Name: "Zenith", Industry: "Finance", Headquarters: "Mumbai, Maharashtra", Size: "Medium",
			AveragePackage: 8, PlacementRate: 95, HiringTrend: models.HiringTrendIncreasing,
			ActiveRoles: []string{"Analyst"},
		},
	}
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func newTestServer(t *testing.T, mutate func(*Options)) (*Server, http.Handler) {
	t.Helper()
	holder := &catalog.Holder{}
	holder.Set(catalog.New("static", sampleCompanies()))

	opts := createTestConfig()
	opts.Catalog = holder
	opts.Logger = createTestLogger(t)
	if mutate != nil {
		mutate(&opts)
	}
	s := New(opts)
	return s, s.Routes()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var env errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env.Error
}

// ==========================
// Listing
// ==========================

func TestListCompanies(t *testing.T) {
	_, h := newTestServer(t, nil)

	tests := []struct {
		name        string
		query       string
		wantIDs     []string
		wantSummary string
	}{
		{name: "no filters", query: "", wantIDs: []string{"a", "b"}, wantSummary: "Showing 2 of 2 companies"},
		{name: "industry", query: "?industry=Tech", wantIDs: []string{"a"}, wantSummary: "Showing 1 of 2 companies"},
		{name: "min package", query: "?minPackage=10", wantIDs: []string{"a"}, wantSummary: "Showing 1 of 2 companies"},
		{name: "location", query: "?location=Maharashtra", wantIDs: []string{"a", "b"}, wantSummary: "Showing 2 of 2 companies"},
		{name: "search", query: "?search=zen", wantIDs: []string{"b"}, wantSummary: "Showing 1 of 2 companies"},
		{name: "sorted by placement rate", query: "?sortBy=placement_rate", wantIDs: []string{"b", "a"}, wantSummary: "Showing 2 of 2 companies"},
		{name: "unknown industry is empty", query: "?industry=Aerospace", wantIDs: []string{}, wantSummary: "Showing 0 of 2 companies"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, "/api/companies"+tt.query, "")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var view presentation.ListingView
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))

			ids := make([]string, 0, len(view.Cards))
			for _, c := range view.Cards {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantSummary, view.Summary)
			if len(tt.wantIDs) == 0 {
				require.NotNil(t, view.Empty)
				assert.Equal(t, presentation.EmptyTitle, view.Empty.Title)
			}
		})
	}
}

func TestListCompanies_InvalidParameters(t *testing.T) {
	_, h := newTestServer(t, nil)

	for _, q := range []string{"?minPackage=abc", "?sortBy=rating", "?minPackage=-1"} {
		t.Run(q, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, "/api/companies"+q, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			body := decodeError(t, rec)
			assert.Equal(t, "INVALID_FILTER_FORMAT", string(body.Code))
			assert.NotEmpty(t, body.RequestID)
			assert.Equal(t, rec.Header().Get(RequestIDHeader), body.RequestID)
		})
	}
}

func TestListingEvent(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/api/listing/events",
		`{"state": {"criteria": {"industry": "all", "location": "all"}, "sortBy": "none"}, "event": {"type": "industry_selected", "value": "Finance"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp listingEventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Finance", resp.State.Criteria.Industry)
	require.Len(t, resp.View.Cards, 1)
	assert.Equal(t, "b", resp.View.Cards[0].ID)
}

func TestListingEvent_WithoutState(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/api/listing/events", `{"event": {"type": "package_tier_selected", "value": "10"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp listingEventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.State.Criteria.MinPackage)
	assert.Equal(t, 10.0, *resp.State.Criteria.MinPackage)
	assert.Equal(t, "Showing 1 of 2 companies", resp.View.Summary)
}

func TestListingEvent_Invalid(t *testing.T) {
	_, h := newTestServer(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"event": `},
		{name: "unknown field", body: `{"event": {"type": "filters_cleared"}, "page": 2}`},
		{name: "unknown event", body: `{"event": {"type": "page_changed"}}`},
		{name: "bad tier", body: `{"event": {"type": "package_tier_selected", "value": "lots"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/listing/events", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "INVALID_LISTING_EVENT", string(decodeError(t, rec).Code))
		})
	}
}

// ==========================
// Company pages
// ==========================

func TestCompanyPage(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := do(t, h, http.MethodGet, "/company/a", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view presentation.DetailView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.True(t, view.Found)
	assert.Equal(t, "Acme", view.Header.Name)
	assert.Equal(t, "MEDIUM", view.Interview.Rounds[0].Difficulty)
	assert.Len(t, view.Tabs, 5)
}

func TestCompanyPage_NotFound(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := do(t, h, http.MethodGet, "/company/z", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var view presentation.DetailView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.False(t, view.Found)
	require.NotNil(t, view.NotFound)
	assert.Equal(t, presentation.NotFoundTitle, view.NotFound.Title)
}

func TestGetCompany(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := do(t, h, http.MethodGet, "/api/companies/b", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var c models.Company
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	assert.Equal(t, "Zenith", c.Name)

	rec = do(t, h, http.MethodGet, "/api/companies/z", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "COMPANY_NOT_FOUND", string(decodeError(t, rec).Code))
}

func TestCompanyCharts(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := do(t, h, http.MethodGet, "/api/companies/a/charts", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Salary []models.SalaryPoint     `json:"salary"`
		Trend  models.HiringTrendSeries `json:"trend"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Salary, 1)
	assert.Equal(t, 8.0, body.Salary[0].Avg)
	assert.True(t, body.Trend.Synthetic)
	assert.Len(t, body.Trend.Points, 12)
}

// ==========================
// Facets / Stats
// ==========================

func TestFacetsAndStats(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := do(t, h, http.MethodGet, "/api/facets", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var facets models.Facets
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &facets))
	assert.Equal(t, []string{"Finance", "Tech"}, facets.Industries)
	assert.Equal(t, []string{"Maharashtra"}, facets.Locations)

	rec = do(t, h, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats models.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.CompaniesListed)
	assert.Equal(t, 3, stats.ActiveRoles)
	assert.InDelta(t, 10.0, stats.AveragePackage, 1e-9)
	assert.InDelta(t, 93.0, stats.AveragePlacementRate, 1e-9)
}

// ==========================
// Operational endpoints
// ==========================

func TestHealthAndReady(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")

	rec = do(t, h, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"companies":2`)
}

func TestReady_DependencyDown(t *testing.T) {
	_, h := newTestServer(t, func(o *Options) { o.Pinger = stubPinger{err: errors.New("redis down")} })

	rec := do(t, h, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "redis down")
}

func TestCatalogNotReady(t *testing.T) {
	opts := createTestConfig()
	opts.Catalog = &catalog.Holder{}
	opts.Logger = createTestLogger(t)
	h := New(opts).Routes()

	for _, path := range []string{"/ready", "/api/companies", "/api/facets", "/company/a"} {
		t.Run(path, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, path, "")
			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
			assert.Equal(t, "CATALOG_NOT_READY", string(decodeError(t, rec).Code))
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	_, h := newTestServer(t, nil)

	_ = do(t, h, http.MethodGet, "/api/companies", "")
	rec := do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "directory_http_requests_total")
}

func TestUnknownRoute(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := do(t, h, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ROUTE_NOT_FOUND", string(decodeError(t, rec).Code))
}

// ==========================
// Catalog reload
// ==========================

func TestServer_FollowsCatalogReload(t *testing.T) {
	s, h := newTestServer(t, nil)

	rec := do(t, h, http.MethodGet, "/api/companies?industry=Finance", "")
	require.Equal(t, http.StatusOK, rec.Code)
	first := s.current()

	s.holder.Set(catalog.New("static", sampleCompanies()[:1]))

	rec = do(t, h, http.MethodGet, "/api/companies?industry=Finance", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Showing 0 of 1 companies")
	assert.NotSame(t, first, s.current())
}
