package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"placement-directory/internal/models"
)

// Schema creates the catalog tables. Rows are keyed by load position, not by
// company id.
const Schema = `
CREATE TABLE IF NOT EXISTS companies (
	position            INTEGER PRIMARY KEY,
	id                  TEXT NOT NULL,
	name                TEXT NOT NULL,
	industry            TEXT NOT NULL,
	headquarters        TEXT NOT NULL,
	size                TEXT NOT NULL DEFAULT '',
	description         TEXT NOT NULL DEFAULT '',
	logo                TEXT NOT NULL DEFAULT '',
	website             TEXT,
	founded             INTEGER NOT NULL DEFAULT 0,
	average_package     NUMERIC NOT NULL,
	placement_rate      NUMERIC NOT NULL,
	hiring_trend        TEXT NOT NULL,
	active_roles        TEXT[] NOT NULL DEFAULT '{}',
	min_cgpa            NUMERIC NOT NULL DEFAULT 0,
	degree_requirements TEXT[] NOT NULL DEFAULT '{}',
	branches_accepted   TEXT[] NOT NULL DEFAULT '{}',
	last_hiring_cycle   TEXT NOT NULL DEFAULT '',
	seasonal_pattern    TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS companies_id_idx ON companies (id);

CREATE TABLE IF NOT EXISTS company_salary_ranges (
	company_position INTEGER NOT NULL REFERENCES companies (position) ON DELETE CASCADE,
	position         INTEGER NOT NULL,
	level            TEXT NOT NULL,
	min_lpa          NUMERIC NOT NULL,
	max_lpa          NUMERIC NOT NULL,
	location         TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (company_position, position)
);

CREATE TABLE IF NOT EXISTS company_interview_rounds (
	company_position INTEGER NOT NULL REFERENCES companies (position) ON DELETE CASCADE,
	position         INTEGER NOT NULL,
	round_number     INTEGER NOT NULL,
	name             TEXT NOT NULL,
	description      TEXT NOT NULL DEFAULT '',
	difficulty       TEXT NOT NULL,
	topics           TEXT[] NOT NULL DEFAULT '{}',
	PRIMARY KEY (company_position, position)
);`

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Seed replaces the catalog tables with companies inside one transaction.
func Seed(ctx context.Context, db *sql.DB, companies []models.Company) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM companies`); err != nil {
		return fmt.Errorf("clear companies: %w", err)
	}

	for i, c := range companies {
		pos := i + 1
		_, err = tx.ExecContext(ctx, `
			INSERT INTO companies (
				position, id, name, industry, headquarters, size, description, logo, website,
				founded, average_package, placement_rate, hiring_trend, active_roles, min_cgpa,
				degree_requirements, branches_accepted, last_hiring_cycle, seasonal_pattern
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
			pos, c.ID, c.Name, c.Industry, c.Headquarters, c.Size, c.Description, c.Logo,
			sql.NullString{String: c.Website, Valid: c.Website != ""},
			c.Founded, c.AveragePackage, c.PlacementRate, string(c.HiringTrend),
			pq.Array(nonNil(c.ActiveRoles)), c.MinCGPA,
			pq.Array(nonNil(c.DegreeRequirements)), pq.Array(nonNil(c.BranchesAccepted)),
			c.LastHiringCycle, c.SeasonalPattern,
		)
		if err != nil {
			return fmt.Errorf("insert company %s: %w", c.ID, err)
		}

		for j, s := range c.SalaryRanges {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO company_salary_ranges (company_position, position, level, min_lpa, max_lpa, location)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				pos, j+1, s.Level, s.Min, s.Max, s.Location)
			if err != nil {
				return fmt.Errorf("insert salary range %s/%d: %w", c.ID, j, err)
			}
		}

		for j, r := range c.InterviewProcess {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO company_interview_rounds (company_position, position, round_number, name, description, difficulty, topics)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				pos, j+1, r.RoundNumber, r.Name, r.Description, string(r.Difficulty), pq.Array(nonNil(r.Topics)))
			if err != nil {
				return fmt.Errorf("insert interview round %s/%d: %w", c.ID, j, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
