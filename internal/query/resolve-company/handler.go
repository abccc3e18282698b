package resolvecompany

import (
	"context"
	"errors"
	"time"

	apperrors "placement-directory/internal/common/errors"
	"placement-directory/internal/common/logger"
	"placement-directory/internal/common/metrics"
	"placement-directory/internal/models"
)

const (
	TaskType = "resolve-company"
)

var (
	ErrNilInput = errors.New("input cannot be nil")
)

// Lookup finds a company by id. Implementations return the first record in
// source order when ids repeat.
type Lookup interface {
	Company(id string) (models.Company, bool)
}

// SliceLookup scans a company list. Fine for small lists and tests; the
// catalog keeps an index instead.
type SliceLookup []models.Company

func (s SliceLookup) Company(id string) (models.Company, bool) {
	return Resolve(s, id)
}

type Handler struct {
	config *Config
	lookup Lookup
	logger logger.Logger
}

func NewHandler(config *Config, lookup Lookup, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		lookup: lookup,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) execute(_ context.Context, input *Input) (out *Output, err error) {
	start := time.Now()
	defer func() { metrics.ObserveQuery(TaskType, start, err) }()

	if input == nil {
		return nil, ErrNilInput
	}

	company, ok := h.lookup.Company(input.CompanyID)
	if !ok {
		h.logger.Debug("company not found", map[string]interface{}{"companyId": input.CompanyID})
		return nil, apperrors.NewCompanyNotFoundError(input.CompanyID)
	}

	return &Output{Company: company}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// Resolve returns the first company whose id equals id.
func Resolve(companies []models.Company, id string) (models.Company, bool) {
	for i := range companies {
		if companies[i].ID == id {
			return companies[i], true
		}
	}
	return models.Company{}, false
}
