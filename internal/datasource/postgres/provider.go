// Package postgres loads the company catalog from PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	apperrors "placement-directory/internal/common/errors"
	"placement-directory/internal/common/logger"
	"placement-directory/internal/datasource/postgres/queries"
	"placement-directory/internal/models"
)

const SourceName = "postgres"

type Provider struct {
	db     *sql.DB
	logger logger.Logger
}

func NewProvider(db *sql.DB, log logger.Logger) *Provider {
	return &Provider{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"source": SourceName}),
	}
}

func (p *Provider) Name() string { return SourceName }

// ListAll reads the company rows, then the salary ranges and interview rounds
// concurrently, and stitches them together in position order.
func (p *Provider) ListAll(ctx context.Context) ([]models.Company, error) {
	data, err := p.run(ctx, models.QueryTypeCompanyList)
	if err != nil {
		return nil, err
	}
	rows, _ := data.([]queries.CompanyRow)

	var salaries map[int][]models.SalaryRange
	var rounds map[int][]models.InterviewRound

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := p.run(gctx, models.QueryTypeCompanySalaryRanges)
		if err != nil {
			return err
		}
		salaries, _ = data.(map[int][]models.SalaryRange)
		return nil
	})
	g.Go(func() error {
		data, err := p.run(gctx, models.QueryTypeCompanyInterviewRounds)
		if err != nil {
			return err
		}
		rounds, _ = data.(map[int][]models.InterviewRound)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	companies := make([]models.Company, 0, len(rows))
	for _, r := range rows {
		c := r.Company
		c.SalaryRanges = salaries[r.Position]
		if c.SalaryRanges == nil {
			c.SalaryRanges = []models.SalaryRange{}
		}
		c.InterviewProcess = rounds[r.Position]
		if c.InterviewProcess == nil {
			c.InterviewProcess = []models.InterviewRound{}
		}
		companies = append(companies, c)
	}
	return companies, nil
}

func (p *Provider) run(ctx context.Context, queryType models.QueryType) (interface{}, error) {
	data, rowCount, execTime, err := queries.Execute(ctx, p.db, queryType, nil)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, apperrors.NewQueryTimeoutError(string(queryType))
		}
		if errors.Is(err, queries.ErrUnknownQueryType) {
			return nil, apperrors.NewInternalError(err)
		}
		return nil, apperrors.NewQueryExecutionFailedError(string(queryType), fmt.Errorf("%s: %w", SourceName, err))
	}

	p.logger.Debug("query executed", map[string]interface{}{
		"queryType": queryType,
		"rowCount":  rowCount,
		"execMs":    execTime,
	})
	return data, nil
}
