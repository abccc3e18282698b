package extractfacets

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"placement-directory/internal/common/logger"
	"placement-directory/internal/common/metrics"
	"placement-directory/internal/models"
)

const (
	TaskType = "extract-facets"
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

func (h *Handler) execute(ctx context.Context, input *Input) (out *Output, err error) {
	start := time.Now()
	defer func() { metrics.ObserveQuery(TaskType, start, err) }()

	if input == nil {
		return nil, ErrNilInput
	}

	var facets models.Facets
	if h.config.Parallelism > 1 && len(input.Companies) >= h.config.ParallelThreshold {
		facets, err = ExtractParallel(ctx, input.Companies, h.config.Parallelism)
		if err != nil {
			return nil, err
		}
	} else {
		facets = Extract(input.Companies)
	}

	h.logger.Debug("facets extracted", map[string]interface{}{
		"companies":  len(input.Companies),
		"industries": len(facets.Industries),
		"locations":  len(facets.Locations),
	})

	return &Output{Facets: facets}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// Extract returns the distinct industries and locations of companies, each
// sorted lexicographically. Industry values are compared case-sensitively.
func Extract(companies []models.Company) models.Facets {
	return collect(companies).sorted()
}

// ExtractParallel splits companies into contiguous chunks, collects each chunk
// on its own goroutine and merges the sets. The result equals Extract.
func ExtractParallel(ctx context.Context, companies []models.Company, workers int) (models.Facets, error) {
	if workers <= 1 || len(companies) < 2 {
		return Extract(companies), nil
	}

	chunk := (len(companies) + workers - 1) / workers
	parts := make([]facetSet, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		if lo >= len(companies) {
			break
		}
		hi := min(lo+chunk, len(companies))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			parts[w] = collect(companies[lo:hi])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.Facets{}, err
	}

	merged := newFacetSet()
	for _, p := range parts {
		for v := range p.industries {
			merged.industries[v] = struct{}{}
		}
		for v := range p.locations {
			merged.locations[v] = struct{}{}
		}
	}
	return merged.sorted(), nil
}

// LocationOf returns the trimmed second comma-separated segment of a
// "City, Region" headquarters string. Headquarters without a comma, or with
// an empty second segment, have no location.
func LocationOf(headquarters string) (string, bool) {
	parts := strings.Split(headquarters, ",")
	if len(parts) < 2 {
		return "", false
	}
	loc := strings.TrimSpace(parts[1])
	return loc, loc != ""
}

type facetSet struct {
	industries map[string]struct{}
	locations  map[string]struct{}
}

func newFacetSet() facetSet {
	return facetSet{
		industries: make(map[string]struct{}),
		locations:  make(map[string]struct{}),
	}
}

func collect(companies []models.Company) facetSet {
	s := newFacetSet()
	for i := range companies {
		s.industries[companies[i].Industry] = struct{}{}
		if loc, ok := LocationOf(companies[i].Headquarters); ok {
			s.locations[loc] = struct{}{}
		}
	}
	return s
}

func (s facetSet) sorted() models.Facets {
	return models.Facets{
		Industries: sortedKeys(s.industries),
		Locations:  sortedKeys(s.locations),
	}
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
