package filtercompanies

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"placement-directory/internal/common/logger"
	"placement-directory/internal/common/metrics"
	"placement-directory/internal/models"
)

const (
	TaskType = "filter-companies"
)

var (
	ErrNilInput = errors.New("input cannot be nil")
)

// Handler filters one immutable company list. Results are memoized per
// Criteria key; the memo is dropped wholesale when it reaches MemoizeSize.
type Handler struct {
	config    *Config
	companies []models.Company
	logger    logger.Logger

	mu   sync.RWMutex
	memo map[string][]models.Company
}

func NewHandler(config *Config, companies []models.Company, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		companies: companies,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
		memo:      make(map[string][]models.Company),
	}
}

func (h *Handler) execute(_ context.Context, input *Input) (out *Output, err error) {
	start := time.Now()
	defer func() { metrics.ObserveQuery(TaskType, start, err) }()

	if input == nil {
		return nil, ErrNilInput
	}

	key := input.Criteria.Key()
	if matched, ok := h.lookup(key); ok {
		metrics.FilterMemoLookups.WithLabelValues("hit").Inc()
		return &Output{Companies: matched, Matched: len(matched), Total: len(h.companies), Memoized: true}, nil
	}
	if h.config.MemoizeSize > 0 {
		metrics.FilterMemoLookups.WithLabelValues("miss").Inc()
	}

	matched := Filter(h.companies, input.Criteria)
	h.store(key, matched)

	h.logger.Debug("companies filtered", map[string]interface{}{
		"criteria": key,
		"matched":  len(matched),
		"total":    len(h.companies),
	})

	return &Output{Companies: matched, Matched: len(matched), Total: len(h.companies)}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) lookup(key string) ([]models.Company, bool) {
	if h.config.MemoizeSize <= 0 {
		return nil, false
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	matched, ok := h.memo[key]
	return matched, ok
}

func (h *Handler) store(key string, matched []models.Company) {
	if h.config.MemoizeSize <= 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.memo) >= h.config.MemoizeSize {
		h.memo = make(map[string][]models.Company, h.config.MemoizeSize)
	}
	h.memo[key] = matched
}

// Filter returns the companies satisfying every active rule of c, in source
// order. Rules are evaluated cheapest first: industry, package, location,
// then the case-insensitive name search.
func Filter(companies []models.Company, c models.Criteria) []models.Company {
	m := newMatcher(c)
	out := make([]models.Company, 0, len(companies))
	for i := range companies {
		if m.matches(&companies[i]) {
			out = append(out, companies[i])
		}
	}
	return out
}

// Matches reports whether a single company satisfies c.
func Matches(company models.Company, c models.Criteria) bool {
	return newMatcher(c).matches(&company)
}

type matcher struct {
	industry   string
	location   string
	minPackage float64
	search     string

	byIndustry bool
	byLocation bool
	byPackage  bool
	bySearch   bool
}

func newMatcher(c models.Criteria) matcher {
	m := matcher{
		industry:   c.Industry,
		location:   c.Location,
		byIndustry: c.IndustryActive(),
		byLocation: c.LocationActive(),
		byPackage:  c.PackageActive(),
		bySearch:   c.SearchText != "",
		search:     strings.ToLower(c.SearchText),
	}
	if m.byPackage {
		m.minPackage = *c.MinPackage
	}
	return m
}

func (m matcher) matches(c *models.Company) bool {
	if m.byIndustry && c.Industry != m.industry {
		return false
	}
	if m.byPackage && c.AveragePackage < m.minPackage {
		return false
	}
	if m.byLocation && !strings.Contains(c.Headquarters, m.location) {
		return false
	}
	if m.bySearch && !strings.Contains(strings.ToLower(c.Name), m.search) {
		return false
	}
	return true
}
