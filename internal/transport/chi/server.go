// Package chi implements the HTTP API on the chi router.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mevaro/searchd/internal/domain"
	"github.com/mevaro/searchd/internal/domain/material/category"
	"github.com/mevaro/searchd/internal/domain/search/order"
	"github.com/mevaro/searchd/internal/domain/search/query"
	"github.com/mevaro/searchd/internal/logger"
	healthuc "github.com/mevaro/searchd/internal/usecase/health"
	materialuc "github.com/mevaro/searchd/internal/usecase/material"
	searchuc "github.com/mevaro/searchd/internal/usecase/search"
)

// backendErrMessage is the client-facing text for any backend failure.
// Details stay in the logs.
const backendErrMessage = "failed to fetch materials, please try again"

// Server exposes the search API over HTTP.
type Server struct {
	search    *searchuc.Service
	materials *materialuc.Service
	health    *healthuc.Service
	logger    *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	materials *materialuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{search: search, materials: materials, health: health, logger: logger}
}

// Routes mounts all API handlers on the router.
func (s *Server) Routes(r chirouter.Router) {
	r.Get("/health", s.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1/materials", func(r chirouter.Router) {
		r.Get("/search", s.SearchMaterials)
		r.Get("/{id}", s.GetMaterial)
		r.Put("/{id}/content", s.UpdateMaterialContent)
		r.Post("/{id}/views", s.RecordView)
		r.Post("/{id}/downloads", s.RecordDownload)
	})
}

// searchParams are the query parameters of GET /v1/materials/search.
type searchParams struct {
	Query      string
	Categories []string
	Sort       string
	Limit      int
	Offset     int
}

func bindSearchParams(r *http.Request) (searchParams, error) {
	var p searchParams
	qv := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, false, "q", qv, &p.Query); err != nil {
		return p, err
	}
	if err := runtime.BindQueryParameter("form", false, false, "categories", qv, &p.Categories); err != nil {
		return p, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "sort", qv, &p.Sort); err != nil {
		return p, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", qv, &p.Limit); err != nil {
		return p, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "offset", qv, &p.Offset); err != nil {
		return p, err
	}
	return p, nil
}

// SearchMaterials handles GET /v1/materials/search.
func (s *Server) SearchMaterials(w http.ResponseWriter, r *http.Request) {
	params, err := bindSearchParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid query parameters: "+err.Error())
		return
	}

	categories := make([]category.Category, 0, len(params.Categories))
	for _, raw := range params.Categories {
		c, err := category.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		categories = append(categories, c)
	}

	q, err := query.New(params.Query, categories, order.Parse(params.Sort), params.Limit, params.Offset)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.search.Search(r.Context(), &q)
	if err != nil {
		s.log(r).Error("Search failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, backendErrMessage)
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Items:      hitsToDTO(res.Hits()),
		Total:      res.Total(),
		SearchType: string(res.Source()),
	})
}

// GetMaterial handles GET /v1/materials/{id}.
func (s *Server) GetMaterial(w http.ResponseWriter, r *http.Request) {
	id := chirouter.URLParam(r, "id")

	m, err := s.materials.Get(r.Context(), id)
	if err != nil {
		s.handleMaterialError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, materialToDTO(&m))
}

// UpdateMaterialContent handles PUT /v1/materials/{id}/content.
func (s *Server) UpdateMaterialContent(w http.ResponseWriter, r *http.Request) {
	id := chirouter.URLParam(r, "id")

	var req UpdateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	err := s.materials.UpdateContent(r.Context(), id, req.Title, req.Description, req.Keywords)
	if err != nil {
		s.handleMaterialError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RecordView handles POST /v1/materials/{id}/views.
func (s *Server) RecordView(w http.ResponseWriter, r *http.Request) {
	id := chirouter.URLParam(r, "id")

	n, err := s.materials.RecordView(r.Context(), id)
	if err != nil {
		s.handleMaterialError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, CounterResponse{ID: id, Count: n})
}

// RecordDownload handles POST /v1/materials/{id}/downloads.
func (s *Server) RecordDownload(w http.ResponseWriter, r *http.Request) {
	id := chirouter.URLParam(r, "id")

	n, err := s.materials.RecordDownload(r.Context(), id)
	if err != nil {
		s.handleMaterialError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, CounterResponse{ID: id, Count: n})
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// log prefers the request-scoped logger so failures carry the request ID.
func (s *Server) log(r *http.Request) *zap.Logger {
	return logger.FromContextOr(r.Context(), s.logger)
}

func (s *Server) handleMaterialError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrMaterialNotFound):
		writeError(w, http.StatusNotFound, "material not found")
	case errors.Is(err, domain.ErrInvalidQuery):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.log(r).Error("Material request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, backendErrMessage)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Success: false, Error: message})
}
