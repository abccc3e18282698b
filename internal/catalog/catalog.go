// Package catalog holds the immutable, fully indexed company list the HTTP
// layer serves from. A Catalog is built once per load and never mutated.
package catalog

import (
	"context"
	"sync/atomic"
	"time"

	"placement-directory/internal/models"
	computestats "placement-directory/internal/query/compute-stats"
	extractfacets "placement-directory/internal/query/extract-facets"
)

// Options tune how derived data is computed at build time.
type Options struct {
	FacetParallelism  int
	ParallelThreshold int
}

type Catalog struct {
	source    string
	loadedAt  time.Time
	companies []models.Company
	index     map[string]int
	facets    models.Facets
	stats     models.Stats
}

// New builds a catalog sequentially. Use Build for parallel facet extraction.
func New(source string, companies []models.Company) *Catalog {
	c, _ := Build(context.Background(), source, companies, Options{})
	return c
}

// Build indexes companies by id (first occurrence wins) and precomputes the
// facets and landing stats. The slice is owned by the catalog afterwards.
func Build(ctx context.Context, source string, companies []models.Company, opts Options) (*Catalog, error) {
	if companies == nil {
		companies = []models.Company{}
	}

	index := make(map[string]int, len(companies))
	for i := range companies {
		if _, dup := index[companies[i].ID]; !dup {
			index[companies[i].ID] = i
		}
	}

	var facets models.Facets
	if opts.FacetParallelism > 1 && len(companies) >= opts.ParallelThreshold {
		var err error
		facets, err = extractfacets.ExtractParallel(ctx, companies, opts.FacetParallelism)
		if err != nil {
			return nil, err
		}
	} else {
		facets = extractfacets.Extract(companies)
	}

	return &Catalog{
		source:    source,
		loadedAt:  time.Now().UTC(),
		companies: companies,
		index:     index,
		facets:    facets,
		stats:     computestats.Compute(companies),
	}, nil
}

// Companies returns the records in source order. The slice is shared.
func (c *Catalog) Companies() []models.Company { return c.companies }

// Company looks up an id in O(1).
func (c *Catalog) Company(id string) (models.Company, bool) {
	i, ok := c.index[id]
	if !ok {
		return models.Company{}, false
	}
	return c.companies[i], true
}

func (c *Catalog) Facets() models.Facets { return c.facets }
func (c *Catalog) Stats() models.Stats   { return c.stats }
func (c *Catalog) Len() int              { return len(c.companies) }
func (c *Catalog) Source() string        { return c.source }
func (c *Catalog) LoadedAt() time.Time   { return c.loadedAt }

// Holder publishes the current catalog to concurrent readers. Reloads swap
// the pointer; readers keep whichever catalog they already fetched.
type Holder struct {
	current atomic.Pointer[Catalog]
}

// Get returns the current catalog or nil before the first load.
func (h *Holder) Get() *Catalog { return h.current.Load() }

func (h *Holder) Set(c *Catalog) { h.current.Store(c) }

func (h *Holder) Ready() bool { return h.current.Load() != nil }
