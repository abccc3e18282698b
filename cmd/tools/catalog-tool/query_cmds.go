package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"placement-directory/internal/catalog"
	"placement-directory/internal/common/logger"
	"placement-directory/internal/datasource/factory"
	"placement-directory/internal/presentation"
	computestats "placement-directory/internal/query/compute-stats"
	extractfacets "placement-directory/internal/query/extract-facets"
	filtercompanies "placement-directory/internal/query/filter-companies"
	parsecriteria "placement-directory/internal/query/parse-criteria"
	rankcompanies "placement-directory/internal/query/rank-companies"
)

// loadCatalog reads the configured data source once, the way the server does
// at startup.
func loadCatalog(ctx context.Context, log logger.Logger) (*catalog.Catalog, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	src, err := factory.New(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = src.Close() }

	loader := catalog.NewLoader(src.Provider, catalog.Options{}, log, nil)
	c, err := loader.Load(ctx)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return c, cleanup, nil
}

func newQueryCmd() *cobra.Command {
	var (
		input  parsecriteria.Input
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Filter and sort the catalog the way the listing page does",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := newLogger()
			ctx := cmd.Context()

			c, cleanup, err := loadCatalog(ctx, log)
			if err != nil {
				return err
			}
			defer cleanup()

			parsed, err := parsecriteria.NewHandler(parsecriteria.LoadConfig(), log).Execute(ctx, &input)
			if err != nil {
				return err
			}
			filtered, err := filtercompanies.NewHandler(&filtercompanies.Config{}, c.Companies(), log).
				Execute(ctx, &filtercompanies.Input{Criteria: parsed.Criteria})
			if err != nil {
				return err
			}
			ranked, err := rankcompanies.NewHandler(rankcompanies.LoadConfig(), log).
				Execute(ctx, &rankcompanies.Input{Companies: filtered.Companies, SortBy: parsed.SortBy})
			if err != nil {
				return err
			}

			state := presentation.ListingState{Criteria: parsed.Criteria, SortBy: ranked.SortBy}
			view := presentation.Listing(c.Facets(), state, ranked.Companies, filtered.Total)

			if asJSON {
				return printJSON(cmd.OutOrStdout(), view)
			}
			return printListing(cmd.OutOrStdout(), view)
		},
	}

	f := cmd.Flags()
	f.StringVar(&input.Search, "search", "", "Case-insensitive name search")
	f.StringVar(&input.Industry, "industry", "", "Exact industry")
	f.StringVar(&input.Location, "location", "", "Headquarters substring")
	f.StringVar(&input.MinPackage, "min-package", "", "Minimum average package in LPA")
	f.StringVar(&input.SortBy, "sort-by", "", "none, hiring_trend, placement_rate, package or name")
	f.BoolVar(&asJSON, "json", false, "Print the listing render tree as JSON")
	return cmd
}

func newFacetsCmd() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "facets",
		Short: "Print the industries and locations offered as filters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := newLogger()
			c, cleanup, err := loadCatalog(cmd.Context(), log)
			if err != nil {
				return err
			}
			defer cleanup()

			hcfg := extractfacets.LoadConfig()
			hcfg.Parallelism = workers
			out, err := extractfacets.NewHandler(hcfg, log).Execute(cmd.Context(), &extractfacets.Input{Companies: c.Companies()})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out.Facets)
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 1, "Goroutines used for extraction on large catalogs")
	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the landing page statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := newLogger()
			c, cleanup, err := loadCatalog(cmd.Context(), log)
			if err != nil {
				return err
			}
			defer cleanup()

			out, err := computestats.NewHandler(computestats.LoadConfig(), log).Execute(cmd.Context(), &computestats.Input{Companies: c.Companies()})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out.Stats)
		},
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printListing(w io.Writer, view presentation.ListingView) error {
	fmt.Fprintln(w, view.Summary)
	if view.Empty != nil {
		fmt.Fprintln(w, view.Empty.Title)
		fmt.Fprintln(w, view.Empty.Hint)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tINDUSTRY\tHEADQUARTERS\tPACKAGE\tPLACEMENT\tTREND")
	for _, c := range view.Cards {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Name, c.Industry, c.Headquarters, c.Package, c.PlacementRate, c.Trend.Label)
	}
	return tw.Flush()
}
