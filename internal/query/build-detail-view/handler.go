package builddetailview

import (
	"context"
	"errors"
	"time"

	"placement-directory/internal/common/logger"
	"placement-directory/internal/common/metrics"
	"placement-directory/internal/models"
)

const (
	TaskType = "build-detail-view"

	NoHistoryMessage = "No historical hiring data is available for this company."
)

var (
	ErrNilInput = errors.New("input cannot be nil")
)

// MonthNames and MonthWeights define the synthetic hiring curve: a campus
// season peaking in September and October.
var (
	MonthNames   = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	MonthWeights = [12]float64{0.6, 0.7, 0.8, 0.7, 0.6, 0.5, 0.5, 0.8, 1.0, 1.0, 0.9, 0.7}
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

	return &Output{
		Salary: SalarySeries(input.Company.SalaryRanges),
		Trend:  MonthlyTrend(len(input.Company.ActiveRoles), h.config.TrendMode),
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// SalarySeries maps each range to a chart point with avg = (min+max)/2,
// keeping input order.
func SalarySeries(ranges []models.SalaryRange) []models.SalaryPoint {
	out := make([]models.SalaryPoint, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, models.SalaryPoint{
			Name: r.Level,
			Min:  r.Min,
			Max:  r.Max,
			Avg:  (r.Min + r.Max) / 2,
		})
	}
	return out
}

// MonthlyTrend builds the twelve month hiring curve. Values are not rounded.
// Mode none returns no points and NoHistoryMessage; any other mode is
// treated as synthetic.
func MonthlyTrend(activeRoles int, mode string) models.HiringTrendSeries {
	if mode == models.TrendModeNone {
		return models.HiringTrendSeries{
			Mode:    models.TrendModeNone,
			Points:  []models.TrendPoint{},
			Message: NoHistoryMessage,
		}
	}

	points := make([]models.TrendPoint, len(MonthNames))
	for i := range MonthNames {
		points[i] = models.TrendPoint{
			Month: MonthNames[i],
			Roles: float64(activeRoles) * MonthWeights[i],
		}
	}
	return models.HiringTrendSeries{
		Mode:      models.TrendModeSynthetic,
		Synthetic: true,
		Points:    points,
	}
}
