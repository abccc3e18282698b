package models

import (
	"strconv"
	"strings"
)

// AllOption is the selector value that disables the industry or location rule.
const AllOption = "all"

// Criteria is the transient filter selection driving the query engine.
// MinPackage nil (or zero) means no package threshold.
type Criteria struct {
	SearchText string   `json:"searchText"`
	Industry   string   `json:"industry"`
	Location   string   `json:"location"`
	MinPackage *float64 `json:"minPackage"`
}

// DefaultCriteria matches every company.
func DefaultCriteria() Criteria {
	return Criteria{Industry: AllOption, Location: AllOption}
}

// IndustryActive reports whether the industry rule constrains results.
func (c Criteria) IndustryActive() bool {
	return c.Industry != "" && c.Industry != AllOption
}

// LocationActive reports whether the location rule constrains results.
func (c Criteria) LocationActive() bool {
	return c.Location != "" && c.Location != AllOption
}

// PackageActive reports whether a package threshold is set. Zero counts as unset.
func (c Criteria) PackageActive() bool {
	return c.MinPackage != nil && *c.MinPackage != 0
}

// IsZero reports whether c matches every company.
func (c Criteria) IsZero() bool {
	return c.SearchText == "" && !c.IndustryActive() && !c.LocationActive() && !c.PackageActive()
}

// Key is a stable string form of c, used for memoization and cache keys.
// Text fields are quoted so separators inside values cannot collide.
func (c Criteria) Key() string {
	pkg := "any"
	if c.PackageActive() {
		pkg = strconv.FormatFloat(*c.MinPackage, 'f', -1, 64)
	}
	industry, location := AllOption, AllOption
	if c.IndustryActive() {
		industry = c.Industry
	}
	if c.LocationActive() {
		location = c.Location
	}
	return strings.Join([]string{
		"q=" + strconv.Quote(c.SearchText),
		"i=" + strconv.Quote(industry),
		"l=" + strconv.Quote(location),
		"p=" + pkg,
	}, "|")
}

// Float64 returns a pointer to v; handy for building Criteria literals.
func Float64(v float64) *float64 {
	return &v
}
