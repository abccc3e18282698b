package catalog

import (
	"context"
	"time"

	"placement-directory/internal/common/logger"
	"placement-directory/internal/common/metrics"
	"placement-directory/internal/common/observability"
	"placement-directory/internal/common/validation"
	"placement-directory/internal/datasource"
)

// Loader pulls every record from a provider and builds a Catalog.
type Loader struct {
	provider datasource.Provider
	opts     Options
	logger   logger.Logger
	obs      *observability.Observability
}

func NewLoader(provider datasource.Provider, opts Options, log logger.Logger, obs *observability.Observability) *Loader {
	return &Loader{
		provider: provider,
		opts:     opts,
		logger:   log.WithFields(map[string]interface{}{"component": "catalog", "source": provider.Name()}),
		obs:      obs,
	}
}

// Load lists the provider and builds a catalog. Record level problems found
// by validation.CheckCompanies are logged; they do not fail the load.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	source := l.provider.Name()
	start := time.Now()

	companies, err := l.provider.ListAll(ctx)
	if err != nil {
		metrics.CatalogLoadFailures.WithLabelValues(source).Inc()
		l.obs.RecordCatalogLoad(ctx, source, "error")
		l.logger.WithError(err).Error("catalog load failed", nil)
		return nil, err
	}

	checks := validation.CheckCompanies(companies)
	for _, e := range checks.Errors {
		l.logger.Warn("invalid company record", map[string]interface{}{"field": e.Field, "code": e.Code, "message": e.Message})
	}
	for _, w := range checks.Warnings {
		l.logger.Warn("company record warning", map[string]interface{}{"field": w.Field, "code": w.Code, "message": w.Message})
	}

	c, err := Build(ctx, source, companies, l.opts)
	if err != nil {
		metrics.CatalogLoadFailures.WithLabelValues(source).Inc()
		l.obs.RecordCatalogLoad(ctx, source, "error")
		return nil, err
	}

	metrics.CatalogLoadDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	metrics.CatalogCompanies.Set(float64(c.Len()))
	l.obs.RecordCatalogLoad(ctx, source, "success")

	l.logger.Info("catalog loaded", map[string]interface{}{
		"companies":  c.Len(),
		"industries": len(c.Facets().Industries),
		"locations":  len(c.Facets().Locations),
		"duration":   time.Since(start).String(),
	})
	return c, nil
}

// Reload loads a fresh catalog and publishes it on success. The previous
// catalog stays in place when the load fails.
func (l *Loader) Reload(ctx context.Context, holder *Holder) error {
	c, err := l.Load(ctx)
	if err != nil {
		return err
	}
	holder.Set(c)
	return nil
}
