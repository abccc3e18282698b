package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	apperrors "placement-directory/internal/common/errors"
	"placement-directory/internal/presentation"
	builddetailview "placement-directory/internal/query/build-detail-view"
	filtercompanies "placement-directory/internal/query/filter-companies"
	parsecriteria "placement-directory/internal/query/parse-criteria"
	rankcompanies "placement-directory/internal/query/rank-companies"
	resolvecompany "placement-directory/internal/query/resolve-company"
)

const maxEventBody = 64 << 10

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": s.app.Name,
		"version": s.app.Version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	cat := s.holder.Get()
	if cat == nil {
		s.writeError(w, r, apperrors.NewCatalogNotReadyError())
		return
	}

	if s.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.pinger.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ready",
		"source":    cat.Source(),
		"companies": cat.Len(),
		"loadedAt":  cat.LoadedAt().Format(time.RFC3339),
	})
}

// listing runs parse (done by the caller), filter and rank, then renders.
func (s *Server) listing(ctx context.Context, e *engine, state presentation.ListingState) (presentation.ListingView, error) {
	filtered, err := e.filter.Execute(ctx, &filtercompanies.Input{Criteria: state.Criteria})
	if err != nil {
		return presentation.ListingView{}, err
	}
	ranked, err := s.rank.Execute(ctx, &rankcompanies.Input{Companies: filtered.Companies, SortBy: state.SortBy})
	if err != nil {
		return presentation.ListingView{}, apperrors.NewInvalidFilterFormatError(err.Error())
	}
	state.SortBy = ranked.SortBy
	return presentation.Listing(e.catalog.Facets(), state, ranked.Companies, filtered.Total), nil
}

func (s *Server) listCompanies(w http.ResponseWriter, r *http.Request) {
	e := s.current()
	if e == nil {
		s.writeError(w, r, apperrors.NewCatalogNotReadyError())
		return
	}

	input := parsecriteria.FromValues(r.URL.Query())
	parsed, err := s.parse.Execute(r.Context(), &input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	view, err := s.listing(r.Context(), e, presentation.ListingState{Criteria: parsed.Criteria, SortBy: parsed.SortBy})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type listingEventRequest struct {
	State *presentation.ListingState `json:"state"`
	Event presentation.Event         `json:"event"`
}

type listingEventResponse struct {
	State presentation.ListingState `json:"state"`
	View  presentation.ListingView  `json:"view"`
}

// listingEvent applies one interaction to the posted state and returns the
// new state with its listing. A missing state starts from the initial one.
func (s *Server) listingEvent(w http.ResponseWriter, r *http.Request) {
	e := s.current()
	if e == nil {
		s.writeError(w, r, apperrors.NewCatalogNotReadyError())
		return
	}

	var req listingEventRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, apperrors.NewInvalidEventError("malformed request body: "+err.Error()))
		return
	}

	state := presentation.InitialState()
	if req.State != nil {
		state = *req.State
	}

	msg, err := presentation.DecodeEvent(req.Event)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	next := presentation.Update(state, msg)

	view, err := s.listing(r.Context(), e, next)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listingEventResponse{State: view.State, View: view})
}

// companyPage serves the detail render tree. Unknown ids get the not-found
// tree with a 404.
func (s *Server) companyPage(w http.ResponseWriter, r *http.Request) {
	e := s.current()
	if e == nil {
		s.writeError(w, r, apperrors.NewCatalogNotReadyError())
		return
	}

	out, err := e.resolve.Execute(r.Context(), &resolvecompany.Input{CompanyID: chi.URLParam(r, "id")})
	if err != nil {
		if apperrors.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, presentation.NotFound())
			return
		}
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, presentation.RenderDetail(out.Company, true, s.trendMode))
}

func (s *Server) getCompany(w http.ResponseWriter, r *http.Request) {
	e := s.current()
	if e == nil {
		s.writeError(w, r, apperrors.NewCatalogNotReadyError())
		return
	}

	out, err := e.resolve.Execute(r.Context(), &resolvecompany.Input{CompanyID: chi.URLParam(r, "id")})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out.Company)
}

func (s *Server) companyCharts(w http.ResponseWriter, r *http.Request) {
	e := s.current()
	if e == nil {
		s.writeError(w, r, apperrors.NewCatalogNotReadyError())
		return
	}

	resolved, err := e.resolve.Execute(r.Context(), &resolvecompany.Input{CompanyID: chi.URLParam(r, "id")})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	charts, err := s.detail.Execute(r.Context(), &builddetailview.Input{Company: resolved.Company})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, charts)
}

func (s *Server) facets(w http.ResponseWriter, r *http.Request) {
	cat := s.holder.Get()
	if cat == nil {
		s.writeError(w, r, apperrors.NewCatalogNotReadyError())
		return
	}
	writeJSON(w, http.StatusOK, cat.Facets())
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	cat := s.holder.Get()
	if cat == nil {
		s.writeError(w, r, apperrors.NewCatalogNotReadyError())
		return
	}
	writeJSON(w, http.StatusOK, cat.Stats())
}
