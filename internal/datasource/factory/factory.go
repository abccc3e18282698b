// Package factory builds the configured datasource.Provider together with the
// clients it owns.
package factory

import (
	"context"
	"errors"

	"placement-directory/internal/common/config"
	"placement-directory/internal/common/database"
	apperrors "placement-directory/internal/common/errors"
	"placement-directory/internal/common/logger"
	"placement-directory/internal/datasource"
	"placement-directory/internal/datasource/cached"
	fixturefile "placement-directory/internal/datasource/fixture-file"
	"placement-directory/internal/datasource/postgres"
	searchindex "placement-directory/internal/datasource/search-index"
)

// Source is a ready-to-use provider plus the connections behind it.
type Source struct {
	Provider datasource.Provider

	Postgres      *database.PostgresClient
	Elasticsearch *database.ElasticsearchClient
	Redis         *database.RedisClient
	Cache         *cached.Provider
}

// New wires the provider selected by cfg.DataSource.Kind. Remote sources get
// the redis cache when cache.enabled is set. No network calls are made here.
func New(cfg *config.Config, log logger.Logger) (*Source, error) {
	src := &Source{}

	switch cfg.DataSource.Kind {
	case config.DataSourceFixture:
		src.Provider = fixturefile.NewProvider(cfg.DataSource.FixturePath, log)
		if cfg.Cache.Enabled {
			log.Info("cache disabled for fixture data source", nil)
		}
		return src, nil

	case config.DataSourcePostgres:
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, apperrors.NewDatabaseConnectionFailedError(err)
		}
		src.Postgres = pg
		src.Provider = postgres.NewProvider(pg.DB, log)

	case config.DataSourceElasticsearch:
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return nil, apperrors.NewElasticsearchConnectionFailedError(err)
		}
		src.Elasticsearch = es
		src.Provider = searchindex.NewProvider(es.Client, cfg.Database.Elasticsearch, log)

	default:
		return nil, apperrors.NewUnsupportedDataSourceError(cfg.DataSource.Kind)
	}

	if cfg.Cache.Enabled {
		src.Redis = database.NewRedis(cfg.Database.Redis)
		src.Cache = cached.NewProvider(src.Provider, src.Redis.Client,
			config.GetDuration(cfg.Cache.TTL), cfg.Cache.KeyPrefix, log)
		src.Provider = src.Cache
	}

	return src, nil
}

// Ping checks every connection the source holds.
func (s *Source) Ping(ctx context.Context) error {
	var errs []error
	if s.Postgres != nil {
		errs = append(errs, s.Postgres.Ping(ctx))
	}
	if s.Elasticsearch != nil {
		errs = append(errs, s.Elasticsearch.Ping(ctx))
	}
	if s.Redis != nil {
		errs = append(errs, s.Redis.Ping(ctx))
	}
	return errors.Join(errs...)
}

func (s *Source) Close() error {
	var errs []error
	if s.Postgres != nil {
		errs = append(errs, s.Postgres.Close())
	}
	if s.Redis != nil {
		errs = append(errs, s.Redis.Close())
	}
	return errors.Join(errs...)
}
