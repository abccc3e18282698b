package rankcompanies

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"placement-directory/internal/common/logger"
	"placement-directory/internal/common/metrics"
	"placement-directory/internal/models"
)

const (
	TaskType = "rank-companies"
)

var (
	ErrNilInput          = errors.New("input cannot be nil")
	ErrUnknownSortOption = errors.New("UNKNOWN_SORT_OPTION")
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) execute(_ context.Context, input *Input) (out *Output, err error) {
	start := time.Now()
	defer func() { metrics.ObserveQuery(TaskType, start, err) }()

	if input == nil {
		return nil, ErrNilInput
	}

	by := input.SortBy
	if by == "" {
		by = h.config.DefaultSort
	}
	if !by.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSortOption, by)
	}

	return &Output{Companies: Rank(input.Companies, by), SortBy: by}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// trendRank puts increasing hiring first and decreasing last.
var trendRank = map[models.HiringTrend]int{
	models.HiringTrendIncreasing: 0,
	models.HiringTrendStable:     1,
	models.HiringTrendDecreasing: 2,
}

// Rank returns a sorted copy of companies. Every ordering is stable, so ties
// keep their source order. SortNone and unknown options return the copy
// unchanged.
func Rank(companies []models.Company, by models.SortOption) []models.Company {
	out := make([]models.Company, len(companies))
	copy(out, companies)

	var less func(a, b *models.Company) bool
	switch by {
	case models.SortHiringTrend:
		less = func(a, b *models.Company) bool { return trendOrder(a.HiringTrend) < trendOrder(b.HiringTrend) }
	case models.SortPlacementRate:
		less = func(a, b *models.Company) bool { return a.PlacementRate > b.PlacementRate }
	case models.SortPackage:
		less = func(a, b *models.Company) bool { return a.AveragePackage > b.AveragePackage }
	case models.SortName:
		less = func(a, b *models.Company) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(&out[i], &out[j]) })
	return out
}

func trendOrder(t models.HiringTrend) int {
	if r, ok := trendRank[t]; ok {
		return r
	}
	return len(trendRank)
}
