package presentation

import (
	"fmt"
	"strconv"
	"strings"

	"placement-directory/internal/models"
	builddetailview "placement-directory/internal/query/build-detail-view"
)

const (
	NotFoundTitle = "Company not found"
	BackHref      = "/"
	BackLabel     = "Back to Companies"
)

// Tab ids in display order.
const (
	TabOverview     = "overview"
	TabHiring       = "hiring"
	TabCompensation = "salary"
	TabEligibility  = "eligibility"
	TabInterview    = "interview"
)

type Tab struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var detailTabs = []Tab{
	{ID: TabOverview, Label: "Overview"},
	{ID: TabHiring, Label: "Hiring"},
	{ID: TabCompensation, Label: "Compensation"},
	{ID: TabEligibility, Label: "Eligibility"},
	{ID: TabInterview, Label: "Interview"},
}

type Fact struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type DetailHeader struct {
	Name        string   `json:"name"`
	Logo        string   `json:"logo"`
	Description string   `json:"description"`
	Badges      []string `json:"badges"`
	Facts       []Fact   `json:"facts"`
	WebsiteHref string   `json:"websiteHref,omitempty"`
}

type OverviewTab struct {
	About           string   `json:"about"`
	ActiveRoles     []string `json:"activeRoles"`
	Trend           Badge    `json:"trend"`
	LastHiringCycle string   `json:"lastHiringCycle"`
	SeasonalPattern string   `json:"seasonalPattern"`
}

type HiringTab struct {
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Chart       models.HiringTrendSeries `json:"chart"`
}

type SalaryCard struct {
	Level    string `json:"level"`
	Min      string `json:"min"`
	Max      string `json:"max"`
	Location string `json:"location"`
}

type CompensationTab struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Chart       []models.SalaryPoint `json:"chart"`
	Ranges      []SalaryCard         `json:"ranges"`
}

type EligibilityTab struct {
	MinCGPA  string   `json:"minCGPA"`
	Degrees  []string `json:"degrees"`
	Branches []string `json:"branches"`
}

type RoundCard struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Difficulty  string   `json:"difficulty"`
	Tone        Tone     `json:"tone"`
	Topics      []string `json:"topics"`
}

type InterviewTab struct {
	Rounds []RoundCard `json:"rounds"`
}

type NotFoundView struct {
	Title     string `json:"title"`
	BackHref  string `json:"backHref"`
	BackLabel string `json:"backLabel"`
}

// DetailView is the company page. Exactly one of the tab content fields or
// NotFound is meaningful, depending on Found.
type DetailView struct {
	Found     bool   `json:"found"`
	BackHref  string `json:"backHref"`
	BackLabel string `json:"backLabel"`

	NotFound *NotFoundView `json:"notFound,omitempty"`

	Header       *DetailHeader    `json:"header,omitempty"`
	Tabs         []Tab            `json:"tabs,omitempty"`
	Overview     *OverviewTab     `json:"overview,omitempty"`
	Hiring       *HiringTab       `json:"hiring,omitempty"`
	Compensation *CompensationTab `json:"compensation,omitempty"`
	Eligibility  *EligibilityTab  `json:"eligibility,omitempty"`
	Interview    *InterviewTab    `json:"interview,omitempty"`
}

// RenderDetail builds the company page, or the not-found state when found is
// false. trendMode selects the hiring chart, see builddetailview.MonthlyTrend.
func RenderDetail(c models.Company, found bool, trendMode string) DetailView {
	if !found {
		return NotFound()
	}

	view := DetailView{
		Found:     true,
		BackHref:  BackHref,
		BackLabel: BackLabel,
		Header: &DetailHeader{
			Name:        c.Name,
			Logo:        c.Logo,
			Description: c.Description,
			Badges: []string{
				c.Industry,
				c.Size + " Company",
				percent(c.PlacementRate) + " Placement Rate",
			},
			Facts: []Fact{
				{Label: "Location", Value: c.Headquarters},
				{Label: "Founded", Value: founded(c.Founded)},
				{Label: "Avg Package", Value: lpa(c.AveragePackage)},
				{Label: "Min CGPA", Value: number(c.MinCGPA)},
			},
			WebsiteHref: WebsiteHref(c.Website),
		},
		Tabs: append([]Tab{}, detailTabs...),
		Overview: &OverviewTab{
			About:           c.Description,
			ActiveRoles:     nonNil(c.ActiveRoles),
			Trend:           Badge{Label: TrendLabel(c.HiringTrend), Tone: trendTone(c.HiringTrend)},
			LastHiringCycle: c.LastHiringCycle,
			SeasonalPattern: c.SeasonalPattern,
		},
		Hiring: &HiringTab{
			Title:       "Hiring Patterns",
			Description: "Monthly hiring trends throughout the year",
			Chart:       builddetailview.MonthlyTrend(len(c.ActiveRoles), trendMode),
		},
		Compensation: &CompensationTab{
			Title:       "Compensation by Level",
			Description: "Salary ranges for different positions",
			Chart:       builddetailview.SalarySeries(c.SalaryRanges),
			Ranges:      salaryCards(c.SalaryRanges),
		},
		Eligibility: &EligibilityTab{
			MinCGPA:  number(c.MinCGPA),
			Degrees:  nonNil(c.DegreeRequirements),
			Branches: nonNil(c.BranchesAccepted),
		},
		Interview: &InterviewTab{Rounds: roundCards(c.InterviewProcess)},
	}
	return view
}

func NotFound() DetailView {
	return DetailView{
		BackHref:  BackHref,
		BackLabel: BackLabel,
		NotFound:  &NotFoundView{Title: NotFoundTitle, BackHref: BackHref, BackLabel: BackLabel},
	}
}

func founded(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}

func salaryCards(ranges []models.SalaryRange) []SalaryCard {
	out := make([]SalaryCard, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, SalaryCard{Level: r.Level, Min: lpa(r.Min), Max: lpa(r.Max), Location: r.Location})
	}
	return out
}

func roundCards(rounds []models.InterviewRound) []RoundCard {
	out := make([]RoundCard, 0, len(rounds))
	for _, r := range rounds {
		out = append(out, RoundCard{
			Title:       fmt.Sprintf("Round %d: %s", r.RoundNumber, r.Name),
			Description: r.Description,
			Difficulty:  strings.ToUpper(string(r.Difficulty)),
			Tone:        difficultyTone(r.Difficulty),
			Topics:      nonNil(r.Topics),
		})
	}
	return out
}

func difficultyTone(d models.Difficulty) Tone {
	switch d {
	case models.DifficultyEasy:
		return TonePositive
	case models.DifficultyHard:
		return ToneNegative
	default:
		return ToneNeutral
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
