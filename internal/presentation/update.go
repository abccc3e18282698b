package presentation

import (
	"errors"
	"strings"

	apperrors "placement-directory/internal/common/errors"
	"placement-directory/internal/models"
	parsecriteria "placement-directory/internal/query/parse-criteria"
)

// Msg is a user interaction on the listing page.
type Msg interface {
	apply(s ListingState) ListingState
}

type SearchChanged struct{ Text string }

type IndustrySelected struct{ Industry string }

type LocationSelected struct{ Location string }

// PackageTierSelected sets the minimum package; nil means "Any".
type PackageTierSelected struct{ MinPackage *float64 }

type SortSelected struct{ SortBy models.SortOption }

type FiltersCleared struct{}

func (m SearchChanged) apply(s ListingState) ListingState {
	s.Criteria.SearchText = m.Text
	return s
}

func (m IndustrySelected) apply(s ListingState) ListingState {
	s.Criteria.Industry = orAll(m.Industry)
	return s
}

func (m LocationSelected) apply(s ListingState) ListingState {
	s.Criteria.Location = orAll(m.Location)
	return s
}

func (m PackageTierSelected) apply(s ListingState) ListingState {
	if m.MinPackage == nil {
		s.Criteria.MinPackage = nil
		return s
	}
	v := *m.MinPackage
	s.Criteria.MinPackage = &v
	return s
}

func (m SortSelected) apply(s ListingState) ListingState {
	s.SortBy = m.SortBy
	return s
}

// FiltersCleared resets the criteria and keeps the chosen sort.
func (FiltersCleared) apply(s ListingState) ListingState {
	s.Criteria = models.DefaultCriteria()
	return s
}

// Update returns the state after msg. state itself is never modified.
func Update(state ListingState, msg Msg) ListingState {
	if msg == nil {
		return state
	}
	return msg.apply(state)
}

// Event names accepted by DecodeEvent.
const (
	EventSearchChanged       = "search_changed"
	EventIndustrySelected    = "industry_selected"
	EventLocationSelected    = "location_selected"
	EventPackageTierSelected = "package_tier_selected"
	EventSortSelected        = "sort_selected"
	EventFiltersCleared      = "filters_cleared"
)

// Event is the wire form of a Msg.
type Event struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// DecodeEvent validates an Event and turns it into a Msg.
func DecodeEvent(e Event) (Msg, error) {
	switch strings.ToLower(strings.TrimSpace(e.Type)) {
	case EventSearchChanged:
		return SearchChanged{Text: e.Value}, nil
	case EventIndustrySelected:
		return IndustrySelected{Industry: e.Value}, nil
	case EventLocationSelected:
		return LocationSelected{Location: e.Value}, nil
	case EventPackageTierSelected:
		v, err := parsecriteria.ParseMinPackage(e.Value)
		if err != nil {
			return nil, apperrors.NewInvalidEventError(detailsOf(err))
		}
		return PackageTierSelected{MinPackage: v}, nil
	case EventSortSelected:
		s, err := parsecriteria.ParseSortOption(e.Value)
		if err != nil {
			return nil, apperrors.NewInvalidEventError(detailsOf(err))
		}
		return SortSelected{SortBy: s}, nil
	case EventFiltersCleared:
		return FiltersCleared{}, nil
	default:
		return nil, apperrors.NewInvalidEventError("unknown event type " + e.Type)
	}
}

func orAll(v string) string {
	if v == "" {
		return models.AllOption
	}
	return v
}

func detailsOf(err error) string {
	var stdErr *apperrors.StandardError
	if errors.As(err, &stdErr) && stdErr.Details != "" {
		return stdErr.Details
	}
	return err.Error()
}
