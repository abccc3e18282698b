package fixturefile

import (
	"context"
	"errors"

	apperrors "placement-directory/internal/common/errors"
	"placement-directory/internal/common/logger"
	"placement-directory/internal/models"
	"placement-directory/pkg/fixture"
)

const SourceName = "fixture"

// Provider reads companies from a JSON or YAML fixture document.
type Provider struct {
	path   string
	logger logger.Logger
}

func NewProvider(path string, log logger.Logger) *Provider {
	return &Provider{
		path:   path,
		logger: log.WithFields(map[string]interface{}{"source": SourceName, "path": path}),
	}
}

func (p *Provider) Name() string { return SourceName }

func (p *Provider) ListAll(ctx context.Context) ([]models.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := fixture.Load(p.path)
	if err != nil {
		var stdErr *apperrors.StandardError
		if errors.As(err, &stdErr) {
			return nil, stdErr
		}
		return nil, apperrors.NewDataSourceLoadFailedError(SourceName, err)
	}

	p.logger.Info("fixture loaded", map[string]interface{}{
		"version":   doc.Version,
		"companies": len(doc.Companies),
	})
	return doc.Companies, nil
}
