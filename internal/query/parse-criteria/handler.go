package parsecriteria

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "placement-directory/internal/common/errors"
	"placement-directory/internal/common/logger"
	"placement-directory/internal/common/metrics"
	"placement-directory/internal/models"
)

const (
	TaskType = "parse-criteria"
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

	if h.config.MaxSearchLength > 0 && len(input.Search) > h.config.MaxSearchLength {
		return nil, apperrors.NewInvalidFilterFormatError(
			fmt.Sprintf("search must be at most %d characters", h.config.MaxSearchLength))
	}

	criteria, sortBy, err := Parse(*input)
	if err != nil {
		h.logger.Debug("rejected listing parameters", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	return &Output{Criteria: criteria, SortBy: sortBy}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// FromValues reads the listing parameters from a URL query.
func FromValues(values url.Values) Input {
	return Input{
		Search:     values.Get("search"),
		Industry:   values.Get("industry"),
		Location:   values.Get("location"),
		MinPackage: values.Get("minPackage"),
		SortBy:     values.Get("sortBy"),
	}
}

// Parse turns raw parameters into Criteria and a sort option. Empty
// industry and location mean "all"; empty or "any" minPackage means no
// threshold. Unknown industries or locations are accepted and simply match
// nothing.
func Parse(in Input) (models.Criteria, models.SortOption, error) {
	criteria := models.Criteria{
		SearchText: in.Search,
		Industry:   orAll(in.Industry),
		Location:   orAll(in.Location),
	}

	minPackage, err := ParseMinPackage(in.MinPackage)
	if err != nil {
		return models.Criteria{}, "", err
	}
	criteria.MinPackage = minPackage

	sortBy, err := ParseSortOption(in.SortBy)
	if err != nil {
		return models.Criteria{}, "", err
	}

	return criteria, sortBy, nil
}

// ParseMinPackage accepts any non-negative finite number, not only the
// listing tiers. Empty, "any" and "all" yield nil.
func ParseMinPackage(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	switch strings.ToLower(raw) {
	case "", "any", models.AllOption:
		return nil, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, apperrors.NewInvalidFilterFormatError(fmt.Sprintf("minPackage %q is not a number", raw))
	}
	if v < 0 {
		return nil, apperrors.NewInvalidFilterFormatError(fmt.Sprintf("minPackage %q must not be negative", raw))
	}
	return &v, nil
}

// ParseSortOption maps an empty value to SortNone and rejects unknown names.
func ParseSortOption(raw string) (models.SortOption, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.SortNone, nil
	}
	s := models.SortOption(strings.ToLower(raw))
	if !s.Valid() {
		return "", apperrors.NewInvalidFilterFormatError(fmt.Sprintf("sortBy %q is not supported", raw))
	}
	return s, nil
}

func orAll(v string) string {
	if v == "" {
		return models.AllOption
	}
	return v
}
