package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"placement-directory/internal/common/config"
	"placement-directory/internal/common/database"
	"placement-directory/internal/common/logger"
	"placement-directory/internal/datasource"
	"placement-directory/internal/datasource/cached"
	"placement-directory/internal/datasource/postgres"
	searchindex "placement-directory/internal/datasource/search-index"
	"placement-directory/pkg/fixture"
)

const storeTimeout = 2 * time.Minute

func newSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the postgres catalog with the records of a fixture",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := newLogger()

			doc, err := fixture.Load(file)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
			defer cancel()

			pg, err := database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			defer pg.Close()

			if err := postgres.EnsureSchema(ctx, pg.DB); err != nil {
				return fmt.Errorf("ensure schema: %w", err)
			}
			if err := postgres.Seed(ctx, pg.DB, doc.Companies); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d companies into postgres\n", len(doc.Companies))

			return invalidateCache(ctx, cfg, postgres.NewProvider(pg.DB, log), log)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "configs/companies.json", "Fixture to seed from")
	return cmd
}

func newIndexCmd() *cobra.Command {
	var (
		file  string
		reset bool
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Load the records of a fixture into the elasticsearch index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := newLogger()

			doc, err := fixture.Load(file)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
			defer cancel()

			es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			if err := es.Ping(ctx); err != nil {
				return err
			}

			ix := searchindex.NewIndexer(es.Client, cfg.Database.Elasticsearch.Index, log)
			if reset {
				if err := ix.Reset(ctx); err != nil {
					return fmt.Errorf("reset index: %w", err)
				}
			}
			created, err := ix.EnsureIndex(ctx)
			if err != nil {
				return fmt.Errorf("ensure index: %w", err)
			}
			n, err := ix.Index(ctx, doc.Companies)
			if err != nil {
				return fmt.Errorf("bulk index: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d companies into %s (created=%t)\n",
				n, cfg.Database.Elasticsearch.Index, created)

			return invalidateCache(ctx, cfg, searchindex.NewProvider(es.Client, cfg.Database.Elasticsearch, log), log)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "configs/companies.json", "Fixture to index")
	cmd.Flags().BoolVar(&reset, "reset", false, "Delete the index before loading")
	return cmd
}

// invalidateCache drops the cached listing of the source that was just
// rewritten, so running servers pick the new data up on their next reload.
func invalidateCache(ctx context.Context, cfg *config.Config, inner datasource.Provider, log logger.Logger) error {
	if !cfg.Cache.Enabled {
		return nil
	}
	rdb := database.NewRedis(cfg.Database.Redis)
	defer rdb.Close()

	cache := cached.NewProvider(inner, rdb.Client, config.GetDuration(cfg.Cache.TTL), cfg.Cache.KeyPrefix, log)
	if err := cache.Invalidate(ctx); err != nil {
		return fmt.Errorf("invalidate cache: %w", err)
	}
	log.Info("cache invalidated", map[string]interface{}{"source": inner.Name()})
	return nil
}
