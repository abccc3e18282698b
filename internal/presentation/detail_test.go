package presentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placement-directory/internal/models"
)

func detailCompany() models.Company {
	return models.Company{
		ID: "a", Name: "Acme", Industry: "Tech", Headquarters: "Pune, Maharashtra", Size: "Large",
		Description: "Builds things.", Logo: "🏢", Website: "acme.example", Founded: 1999,
		AveragePackage: 12, PlacementRate: 90, HiringTrend: models.HiringTrendStable,
		ActiveRoles: []string{"SDE", "QA"}, MinCGPA: 7.5,
		DegreeRequirements: []string{"B.Tech"}, BranchesAccepted: []string{"CSE"},
		SalaryRanges: []models.SalaryRange{{Level: "Junior", Min: 6, Max: 10, Location: "Pune"}},
		InterviewProcess: []models.InterviewRound{
			{RoundNumber: 1, Name: "Online Assessment", Difficulty: models.DifficultyEasy, Topics: []string{"DSA"}},
			{RoundNumber: 2, Name: "Technical", Difficulty: models.DifficultyHard},
		},
		LastHiringCycle: "Aug 2024",
		SeasonalPattern: "Peaks in autumn",
	}
}

func TestRenderDetail(t *testing.T) {
	view := RenderDetail(detailCompany(), true, models.TrendModeSynthetic)

	require.True(t, view.Found)
	assert.Nil(t, view.NotFound)
	assert.Equal(t, BackHref, view.BackHref)
	assert.Equal(t, BackLabel, view.BackLabel)

	require.NotNil(t, view.Header)
	assert.Equal(t, []string{"Tech", "Large Company", "90% Placement Rate"}, view.Header.Badges)
	assert.Equal(t, []Fact{
		{Label: "Location", Value: "Pune, Maharashtra"},
		{Label: "Founded", Value: "1999"},
		{Label: "Avg Package", Value: "12 LPA"},
		{Label: "Min CGPA", Value: "7.5"},
	}, view.Header.Facts)
	assert.Equal(t, "https://acme.example", view.Header.WebsiteHref)

	ids := make([]string, 0, len(view.Tabs))
	for _, tab := range view.Tabs {
		ids = append(ids, tab.ID)
	}
	assert.Equal(t, []string{TabOverview, TabHiring, TabCompensation, TabEligibility, TabInterview}, ids)

	assert.Equal(t, "Stable Hiring", view.Overview.Trend.Label)
	assert.Equal(t, []string{"SDE", "QA"}, view.Overview.ActiveRoles)
	assert.Equal(t, "Aug 2024", view.Overview.LastHiringCycle)

	assert.True(t, view.Hiring.Chart.Synthetic)
	assert.Len(t, view.Hiring.Chart.Points, 12)

	require.Len(t, view.Compensation.Chart, 1)
	assert.Equal(t, 8.0, view.Compensation.Chart[0].Avg)
	assert.Equal(t, SalaryCard{Level: "Junior", Min: "6 LPA", Max: "10 LPA", Location: "Pune"}, view.Compensation.Ranges[0])

	assert.Equal(t, "7.5", view.Eligibility.MinCGPA)
	assert.Equal(t, []string{"B.Tech"}, view.Eligibility.Degrees)

	require.Len(t, view.Interview.Rounds, 2)
	assert.Equal(t, "Round 1: Online Assessment", view.Interview.Rounds[0].Title)
	assert.Equal(t, "EASY", view.Interview.Rounds[0].Difficulty)
	assert.Equal(t, TonePositive, view.Interview.Rounds[0].Tone)
	assert.Equal(t, "HARD", view.Interview.Rounds[1].Difficulty)
	assert.NotNil(t, view.Interview.Rounds[1].Topics)
}

func TestRenderDetail_TrendModeNone(t *testing.T) {
	view := RenderDetail(detailCompany(), true, models.TrendModeNone)
	assert.False(t, view.Hiring.Chart.Synthetic)
	assert.Empty(t, view.Hiring.Chart.Points)
	assert.NotEmpty(t, view.Hiring.Chart.Message)
}

func TestRenderDetail_NotFound(t *testing.T) {
	view := RenderDetail(models.Company{}, false, models.TrendModeSynthetic)

	assert.False(t, view.Found)
	require.NotNil(t, view.NotFound)
	assert.Equal(t, NotFoundTitle, view.NotFound.Title)
	assert.Equal(t, "/", view.NotFound.BackHref)
	assert.Nil(t, view.Header)
	assert.Empty(t, view.Tabs)
	assert.Equal(t, NotFound(), view)
}
