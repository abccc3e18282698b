package models

// SortOption orders a filtered listing. SortNone keeps source order.
type SortOption string

const (
	SortNone          SortOption = "none"
	SortHiringTrend   SortOption = "hiring_trend"
	SortPlacementRate SortOption = "placement_rate"
	SortPackage       SortOption = "package"
	SortName          SortOption = "name"
)

// SortOptions lists the options in the order the listing control shows them.
var SortOptions = []SortOption{SortNone, SortHiringTrend, SortPlacementRate, SortPackage, SortName}

func (s SortOption) Valid() bool {
	for _, o := range SortOptions {
		if s == o {
			return true
		}
	}
	return false
}

// PackageTiers are the minimum package choices offered by the listing, in LPA.
var PackageTiers = []float64{5, 10, 15, 20, 25, 30}
