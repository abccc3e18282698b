// Package searchindex loads the company catalog from an Elasticsearch index
// and maintains that index.
package searchindex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"

	"placement-directory/internal/common/config"
	apperrors "placement-directory/internal/common/errors"
	"placement-directory/internal/common/logger"
	"placement-directory/internal/models"
)

const (
	SourceName = "elasticsearch"
	queryType  = "company_list"
)

type Provider struct {
	client     *elasticsearch.Client
	index      string
	maxResults int
	logger     logger.Logger
}

func NewProvider(client *elasticsearch.Client, cfg config.ElasticsearchConfig, log logger.Logger) *Provider {
	return &Provider{
		client:     client,
		index:      cfg.Index,
		maxResults: cfg.MaxResults,
		logger:     log.WithFields(map[string]interface{}{"source": SourceName, "index": cfg.Index}),
	}
}

func (p *Provider) Name() string { return SourceName }

func (p *Provider) ListAll(ctx context.Context) ([]models.Company, error) {
	req, err := BuildListAllRequest(p.index, p.maxResults)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	res, err := req.Do(ctx, p.client)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, apperrors.NewQueryTimeoutError(queryType)
		}
		return nil, apperrors.NewElasticsearchConnectionFailedError(err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, apperrors.NewIndexNotFoundError(p.index)
	}
	if res.IsError() {
		return nil, apperrors.NewSearchQueryFailedError(queryType, fmt.Errorf("search query failed: %s", res.String()))
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, apperrors.NewSearchQueryFailedError(queryType, err)
	}

	companies := make([]models.Company, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		companies = append(companies, hit.Source.Company)
	}

	if r.Hits.Total.Value > int64(len(companies)) {
		p.logger.Warn("index holds more companies than max_results", map[string]interface{}{
			"total":    r.Hits.Total.Value,
			"returned": len(companies),
		})
	}

	return companies, nil
}
