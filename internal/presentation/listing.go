package presentation

import (
	"fmt"

	"placement-directory/internal/models"
	filtercompanies "placement-directory/internal/query/filter-companies"
	rankcompanies "placement-directory/internal/query/rank-companies"
)

const (
	SearchPlaceholder = "Search by name..."
	EmptyTitle        = "No companies found matching your filters."
	EmptyHint         = "Try adjusting your search criteria."

	cardRoleLimit = 3
)

var sortLabels = map[models.SortOption]string{
	models.SortNone:          "Default",
	models.SortHiringTrend:   "Hiring Trend",
	models.SortPlacementRate: "Placement Rate",
	models.SortPackage:       "Average Package",
	models.SortName:          "Name",
}

// ListingState is everything the listing page remembers between events.
type ListingState struct {
	Criteria models.Criteria   `json:"criteria"`
	SortBy   models.SortOption `json:"sortBy"`
}

func InitialState() ListingState {
	return ListingState{Criteria: models.DefaultCriteria(), SortBy: models.SortNone}
}

type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type SearchControl struct {
	Name        string `json:"name"`
	Placeholder string `json:"placeholder"`
	Value       string `json:"value"`
}

type SelectControl struct {
	Name    string   `json:"name"`
	Options []Option `json:"options"`
}

type Controls struct {
	Search   SearchControl `json:"search"`
	Industry SelectControl `json:"industry"`
	Location SelectControl `json:"location"`
	Package  SelectControl `json:"package"`
	Sort     SelectControl `json:"sort"`
}

type Badge struct {
	Label string `json:"label"`
	Tone  Tone   `json:"tone"`
}

type Card struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Logo             string   `json:"logo"`
	Industry         string   `json:"industry"`
	Size             string   `json:"size"`
	Headquarters     string   `json:"headquarters"`
	ActiveRolesLabel string   `json:"activeRolesLabel"`
	Roles            []string `json:"roles"`
	Trend            Badge    `json:"trend"`
	Package          string   `json:"package"`
	PlacementRate    string   `json:"placementRate"`
	DetailHref       string   `json:"detailHref"`
	WebsiteHref      string   `json:"websiteHref,omitempty"`
}

type EmptyState struct {
	Title string `json:"title"`
	Hint  string `json:"hint"`
}

type ListingView struct {
	State    ListingState `json:"state"`
	Summary  string       `json:"summary"`
	Shown    int          `json:"shown"`
	Total    int          `json:"total"`
	Controls Controls     `json:"controls"`
	Cards    []Card       `json:"cards"`
	Empty    *EmptyState  `json:"empty,omitempty"`
}

// Source is what the listing needs from a catalog.
type Source interface {
	Companies() []models.Company
	Facets() models.Facets
}

// RenderListing filters and sorts the catalog for state and builds the view.
func RenderListing(src Source, state ListingState) ListingView {
	all := src.Companies()
	matched := rankcompanies.Rank(filtercompanies.Filter(all, state.Criteria), state.SortBy)
	return Listing(src.Facets(), state, matched, len(all))
}

// Listing builds the view from an already filtered and ordered result.
func Listing(facets models.Facets, state ListingState, matched []models.Company, total int) ListingView {
	view := ListingView{
		State:    state,
		Summary:  fmt.Sprintf("Showing %d of %d companies", len(matched), total),
		Shown:    len(matched),
		Total:    total,
		Controls: controls(facets, state),
		Cards:    make([]Card, 0, len(matched)),
	}
	for i := range matched {
		view.Cards = append(view.Cards, card(&matched[i]))
	}
	if len(matched) == 0 {
		view.Empty = &EmptyState{Title: EmptyTitle, Hint: EmptyHint}
	}
	return view
}

func card(c *models.Company) Card {
	roles := c.ActiveRoles
	if len(roles) > cardRoleLimit {
		roles = roles[:cardRoleLimit]
	}
	return Card{
		ID:               c.ID,
		Name:             c.Name,
		Logo:             c.Logo,
		Industry:         c.Industry,
		Size:             c.Size,
		Headquarters:     c.Headquarters,
		ActiveRolesLabel: fmt.Sprintf("%d Active Roles", len(c.ActiveRoles)),
		Roles:            append([]string{}, roles...),
		Trend:            Badge{Label: TrendLabel(c.HiringTrend), Tone: trendTone(c.HiringTrend)},
		Package:          lpa(c.AveragePackage),
		PlacementRate:    percent(c.PlacementRate),
		DetailHref:       DetailHref(c.ID),
		WebsiteHref:      WebsiteHref(c.Website),
	}
}

func controls(facets models.Facets, state ListingState) Controls {
	c := state.Criteria
	return Controls{
		Search: SearchControl{Name: "search", Placeholder: SearchPlaceholder, Value: c.SearchText},
		Industry: SelectControl{
			Name:    "industry",
			Options: selectOptions("All Industries", facets.Industries, c.Industry, c.IndustryActive()),
		},
		Location: SelectControl{
			Name:    "location",
			Options: selectOptions("All Locations", facets.Locations, c.Location, c.LocationActive()),
		},
		Package: SelectControl{Name: "minPackage", Options: packageOptions(c)},
		Sort:    SelectControl{Name: "sortBy", Options: sortOptions(state.SortBy)},
	}
}

func selectOptions(allLabel string, values []string, current string, active bool) []Option {
	out := make([]Option, 0, len(values)+1)
	out = append(out, Option{Value: models.AllOption, Label: allLabel, Selected: !active})
	for _, v := range values {
		out = append(out, Option{Value: v, Label: v, Selected: active && v == current})
	}
	return out
}

// packageOptions lists "Any" and the tiers. A threshold that is not a tier
// gets its own selected option so the control reflects the state.
func packageOptions(c models.Criteria) []Option {
	out := make([]Option, 0, len(models.PackageTiers)+2)
	out = append(out, Option{Value: "any", Label: "Any", Selected: !c.PackageActive()})

	matchedTier := false
	for _, tier := range models.PackageTiers {
		selected := c.PackageActive() && *c.MinPackage == tier
		matchedTier = matchedTier || selected
		out = append(out, Option{Value: number(tier), Label: number(tier) + "+ LPA", Selected: selected})
	}
	if c.PackageActive() && !matchedTier {
		out = append(out, Option{Value: number(*c.MinPackage), Label: number(*c.MinPackage) + "+ LPA", Selected: true})
	}
	return out
}

func sortOptions(current models.SortOption) []Option {
	if current == "" {
		current = models.SortNone
	}
	out := make([]Option, 0, len(models.SortOptions))
	for _, s := range models.SortOptions {
		out = append(out, Option{Value: string(s), Label: sortLabels[s], Selected: s == current})
	}
	return out
}
