// internal/datasource/postgres/queries/company.go
package queries

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"placement-directory/internal/models"
)

// CompanyRow is a company record plus its load position. Position is the
// table key so duplicate ids survive a round trip, like in a fixture file.
type CompanyRow struct {
	Position int
	Company  models.Company
}

// CompanyList returns []CompanyRow without salary ranges or interview rounds.
func CompanyList(ctx context.Context, db *sql.DB, _ map[string]interface{}) (interface{}, int, int64, error) {
	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT position, id, name, industry, headquarters, size, description, logo, website,
		       founded, average_package, placement_rate, hiring_trend, active_roles, min_cgpa,
		       degree_requirements, branches_accepted, last_hiring_cycle, seasonal_pattern
		FROM companies
		ORDER BY position`)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []CompanyRow
	for rows.Next() {
		var r CompanyRow
		var website sql.NullString
		var trend string
		c := &r.Company
		err := rows.Scan(
			&r.Position, &c.ID, &c.Name, &c.Industry, &c.Headquarters, &c.Size,
			&c.Description, &c.Logo, &website,
			&c.Founded, &c.AveragePackage, &c.PlacementRate, &trend,
			pq.Array(&c.ActiveRoles), &c.MinCGPA,
			pq.Array(&c.DegreeRequirements), pq.Array(&c.BranchesAccepted),
			&c.LastHiringCycle, &c.SeasonalPattern,
		)
		if err != nil {
			return nil, 0, 0, err
		}
		c.Website = website.String
		c.HiringTrend = models.HiringTrend(trend)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	return results, len(results), time.Since(start).Milliseconds(), nil
}

// CompanySalaryRanges returns map[position][]models.SalaryRange in table order.
func CompanySalaryRanges(ctx context.Context, db *sql.DB, _ map[string]interface{}) (interface{}, int, int64, error) {
	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT company_position, level, min_lpa, max_lpa, location
		FROM company_salary_ranges
		ORDER BY company_position, position`)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	results := make(map[int][]models.SalaryRange)
	count := 0
	for rows.Next() {
		var pos int
		var s models.SalaryRange
		if err := rows.Scan(&pos, &s.Level, &s.Min, &s.Max, &s.Location); err != nil {
			return nil, 0, 0, err
		}
		results[pos] = append(results[pos], s)
		count++
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	return results, count, time.Since(start).Milliseconds(), nil
}

// CompanyInterviewRounds returns map[position][]models.InterviewRound.
func CompanyInterviewRounds(ctx context.Context, db *sql.DB, _ map[string]interface{}) (interface{}, int, int64, error) {
	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT company_position, round_number, name, description, difficulty, topics
		FROM company_interview_rounds
		ORDER BY company_position, position`)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	results := make(map[int][]models.InterviewRound)
	count := 0
	for rows.Next() {
		var pos int
		var r models.InterviewRound
		var difficulty string
		if err := rows.Scan(&pos, &r.RoundNumber, &r.Name, &r.Description, &difficulty, pq.Array(&r.Topics)); err != nil {
			return nil, 0, 0, err
		}
		r.Difficulty = models.Difficulty(difficulty)
		results[pos] = append(results[pos], r)
		count++
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	return results, count, time.Since(start).Milliseconds(), nil
}
