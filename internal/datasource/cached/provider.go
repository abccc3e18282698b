// Package cached puts a redis cache-aside layer in front of a remote
// datasource.Provider.
package cached

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "placement-directory/internal/common/errors"
	"placement-directory/internal/common/logger"
	"placement-directory/internal/common/metrics"
	"placement-directory/internal/datasource"
	"placement-directory/internal/models"
)

type Provider struct {
	inner  datasource.Provider
	redis  *redis.Client
	ttl    time.Duration
	key    string
	logger logger.Logger
}

func NewProvider(inner datasource.Provider, client *redis.Client, ttl time.Duration, keyPrefix string, log logger.Logger) *Provider {
	return &Provider{
		inner:  inner,
		redis:  client,
		ttl:    ttl,
		key:    BuildCacheKey(keyPrefix, inner.Name()),
		logger: log.WithFields(map[string]interface{}{"source": inner.Name(), "cache": "redis"}),
	}
}

// BuildCacheKey returns the key holding the cached company list of source.
func BuildCacheKey(prefix, source string) string {
	if prefix == "" {
		prefix = "directory"
	}
	return prefix + ":companies:" + source
}

func (p *Provider) Name() string { return p.inner.Name() }

// ListAll serves from redis when possible. Redis failures never fail the
// load; they fall through to the wrapped provider.
func (p *Provider) ListAll(ctx context.Context) ([]models.Company, error) {
	val, err := p.redis.Get(ctx, p.key).Bytes()
	switch {
	case err == nil:
		var companies []models.Company
		if jsonErr := json.Unmarshal(val, &companies); jsonErr == nil {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			p.logger.Debug("cache hit", map[string]interface{}{"companies": len(companies)})
			return companies, nil
		}
		metrics.CacheLookups.WithLabelValues("error").Inc()
		p.logger.Warn("discarding undecodable cache entry", map[string]interface{}{"key": p.key})
	case errors.Is(err, redis.Nil):
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	default:
		metrics.CacheLookups.WithLabelValues("error").Inc()
		p.logger.WithError(apperrors.NewCacheUnavailableError(err)).
			Warn("cache read failed", map[string]interface{}{"key": p.key})
	}

	companies, err := p.inner.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(companies)
	if err != nil {
		p.logger.Warn("cache encode failed", map[string]interface{}{"error": err})
		return companies, nil
	}
	if err := p.redis.Set(ctx, p.key, data, p.ttl).Err(); err != nil {
		p.logger.Warn("cache write failed", map[string]interface{}{"key": p.key, "error": err})
	}
	return companies, nil
}

// Invalidate drops the cached list so the next ListAll reads the source.
func (p *Provider) Invalidate(ctx context.Context) error {
	if err := p.redis.Del(ctx, p.key).Err(); err != nil {
		return apperrors.NewCacheUnavailableError(err)
	}
	return nil
}
