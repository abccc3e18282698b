package models

// HiringTrend is the direction a company's campus hiring is moving in.
type HiringTrend string

const (
	HiringTrendIncreasing HiringTrend = "increasing"
	HiringTrendDecreasing HiringTrend = "decreasing"
	HiringTrendStable     HiringTrend = "stable"
)

// Valid reports whether t is one of the known trends.
func (t HiringTrend) Valid() bool {
	switch t {
	case HiringTrendIncreasing, HiringTrendDecreasing, HiringTrendStable:
		return true
	}
	return false
}

// Difficulty of an interview round.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Company is one immutable directory record. Packages and salaries are in LPA.
type Company struct {
	ID                 string           `json:"id" yaml:"id"`
	Name               string           `json:"name" yaml:"name"`
	Industry           string           `json:"industry" yaml:"industry"`
	Headquarters       string           `json:"headquarters" yaml:"headquarters"`
	Size               string           `json:"size" yaml:"size"`
	Description        string           `json:"description" yaml:"description"`
	Logo               string           `json:"logo" yaml:"logo"`
	Website            string           `json:"website,omitempty" yaml:"website,omitempty"`
	Founded            int              `json:"founded,omitempty" yaml:"founded,omitempty"`
	AveragePackage     float64          `json:"averagePackage" yaml:"averagePackage"`
	PlacementRate      float64          `json:"placementRate" yaml:"placementRate"`
	HiringTrend        HiringTrend      `json:"hiringTrend" yaml:"hiringTrend"`
	ActiveRoles        []string         `json:"activeRoles" yaml:"activeRoles"`
	MinCGPA            float64          `json:"minCGPA" yaml:"minCGPA"`
	DegreeRequirements []string         `json:"degreeRequirements" yaml:"degreeRequirements"`
	BranchesAccepted   []string         `json:"branchesAccepted" yaml:"branchesAccepted"`
	SalaryRanges       []SalaryRange    `json:"salaryRanges" yaml:"salaryRanges"`
	InterviewProcess   []InterviewRound `json:"interviewProcess" yaml:"interviewProcess"`
	LastHiringCycle    string           `json:"lastHiringCycle" yaml:"lastHiringCycle"`
	SeasonalPattern    string           `json:"seasonalPattern" yaml:"seasonalPattern"`
}

type SalaryRange struct {
	Level    string  `json:"level" yaml:"level"`
	Min      float64 `json:"min" yaml:"min"`
	Max      float64 `json:"max" yaml:"max"`
	Location string  `json:"location" yaml:"location"`
}

type InterviewRound struct {
	RoundNumber int        `json:"roundNumber" yaml:"roundNumber"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Difficulty  Difficulty `json:"difficulty" yaml:"difficulty"`
	Topics      []string   `json:"topics" yaml:"topics"`
}
