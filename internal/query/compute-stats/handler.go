package computestats

import (
	"context"
	"errors"
	"math"
	"time"

	"placement-directory/internal/common/logger"
	"placement-directory/internal/common/metrics"
	"placement-directory/internal/models"
)

const (
	TaskType = "compute-stats"
)

var (
	ErrNilInput = errors.New("input cannot be nil")
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

	stats := Compute(input.Companies)
	h.logger.Debug("stats computed", map[string]interface{}{
		"companies":   stats.CompaniesListed,
		"activeRoles": stats.ActiveRoles,
	})

	return &Output{Stats: stats}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// Compute summarises the catalog for the landing page: the average package
// is rounded to one decimal, the placement rate to a whole percent. An empty
// catalog yields zeros.
func Compute(companies []models.Company) models.Stats {
	stats := models.Stats{CompaniesListed: len(companies)}
	if len(companies) == 0 {
		return stats
	}

	var pkg, rate float64
	for _, c := range companies {
		stats.ActiveRoles += len(c.ActiveRoles)
		pkg += c.AveragePackage
		rate += c.PlacementRate
	}

	n := float64(len(companies))
	stats.AveragePackage = math.Round(pkg/n*10) / 10
	stats.AveragePlacementRate = math.Round(rate / n)
	return stats
}
