package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/career-pathway/internal/analysis"
	"github.com/jonathan/career-pathway/internal/charts"
	"github.com/jonathan/career-pathway/internal/db"
	"github.com/jonathan/career-pathway/internal/ranking"
	"github.com/jonathan/career-pathway/internal/report"
	"github.com/jonathan/career-pathway/internal/skills"
	"github.com/jonathan/career-pathway/internal/types"
)

// NormalizeResponse is returned by POST /reports/normalize
type NormalizeResponse struct {
	Report  types.NormalizedReport `json:"report"`
	Defects report.Diagnostics     `json:"defects"`
}

// BatchNormalizeRequest is the body of POST /reports/normalize/batch
type BatchNormalizeRequest struct {
	Documents []json.RawMessage `json:"documents" validate:"required,max=100"`
}

// ReconcileResponse is returned by POST /skills/reconcile
type ReconcileResponse struct {
	Skills     []types.UnifiedSkillEntry `json:"skills"`
	Frameworks []string                  `json:"frameworks"`
	Warnings   skills.Diagnostics        `json:"warnings"`
}

// RankRequest is the body of POST /skills/rank
type RankRequest struct {
	Inputs    types.SkillInputs `json:"inputs"`
	Framework string            `json:"framework" validate:"required"`
	N         int               `json:"n" validate:"gte=0,lte=1000"`
}

// ChartsRequest is the body of POST /charts. Without a framework every framework is projected.
type ChartsRequest struct {
	Inputs    types.SkillInputs `json:"inputs"`
	Framework string            `json:"framework"`
	RadarSize int               `json:"radar_size" validate:"gte=0,lte=32"`
}

// ChartsResponse is returned by POST /charts. Unscaled lists frameworks found in the inputs
// that have no configured scale and were therefore not projected.
type ChartsResponse struct {
	Charts   []types.ChartProjection `json:"charts"`
	Unscaled []string                `json:"unscaled_frameworks"`
}

// AnalysisChartsResponse is returned by GET /analyses/{id}/charts
type AnalysisChartsResponse struct {
	ID       uuid.UUID               `json:"id"`
	Charts   []types.ChartProjection `json:"charts"`
	Rankings []types.RankedSkills    `json:"rankings"`
	Unscaled []string                `json:"unscaled_frameworks"`
}

// CatalogResponse is returned by GET /catalog/roles
type CatalogResponse struct {
	Roles  []string       `json:"roles"`
	Scales map[string]int `json:"scales"`
}

func (s *Server) handleCatalogRoles(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, CatalogResponse{
		Roles:  s.svc.Catalog().RoleTitles(),
		Scales: s.svc.Scales(),
	})
}

// handleNormalizeReport accepts any body. Invalid JSON is a defect, not a request error.
func (s *Server) handleNormalizeReport(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}

	rep, defects := report.NormalizeJSONWithDiagnostics(body)
	s.metrics.ObserveReport(defects)
	if defects == nil {
		defects = report.Diagnostics{}
	}
	s.jsonResponse(w, http.StatusOK, NormalizeResponse{Report: rep, Defects: defects})
}

func (s *Server) handleNormalizeBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchNormalizeRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	docs := make([][]byte, len(req.Documents))
	for i, d := range req.Documents {
		docs[i] = d
	}
	out, err := s.svc.NormalizeBatch(r.Context(), docs)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, out)
}

func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	var req analysis.GenerateRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	res, err := s.svc.GenerateReport(r.Context(), req)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, createdStatus(res), res)
}

func (s *Server) handleReconcile(w http.ResponseWriter, r *http.Request) {
	var in types.SkillInputs
	if !s.decodeAndValidate(w, r, &in) {
		return
	}

	reg, warnings := skills.ReconcileInputs(in)
	s.metrics.ObserveReconcile(reg, warnings)
	if warnings == nil {
		warnings = skills.Diagnostics{}
	}
	s.jsonResponse(w, http.StatusOK, ReconcileResponse{
		Skills:     reg.Entries(),
		Frameworks: reg.Frameworks(),
		Warnings:   warnings,
	})
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var req RankRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	n := req.N
	if n == 0 {
		n = s.svc.TopN()
	}

	reg, _ := skills.ReconcileInputs(req.Inputs)
	s.jsonResponse(w, http.StatusOK, ranking.TopN(reg, req.Framework, n))
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	var req ChartsRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	radarSize := req.RadarSize
	if radarSize == 0 {
		radarSize = s.svc.RadarSize()
	}

	reg, _ := skills.ReconcileInputs(req.Inputs)
	if req.Framework != "" {
		proj, err := charts.BuildWithRadarSize(reg.Scope(req.Framework), req.Framework, s.svc.Scales(), radarSize)
		if err != nil {
			s.serviceError(w, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, ChartsResponse{Charts: []types.ChartProjection{proj}, Unscaled: []string{}})
		return
	}

	projections, unscaled, err := charts.BuildForRegistry(reg, s.svc.Scales(), radarSize)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ChartsResponse{Charts: projections, Unscaled: unscaled})
}

func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	var req analysis.Request
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	res, err := s.svc.Analyze(r.Context(), req)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, createdStatus(res), res)
}

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	filters := db.ListFilters{TargetRole: r.URL.Query().Get("target_role")}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > 500 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be an integer between 1 and 500")
			return
		}
		filters.Limit = limit
	}

	list, err := s.svc.List(r.Context(), filters)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"analyses": list, "count": len(list)})
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	stored, err := s.svc.Get(r.Context(), id)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, stored)
}

func (s *Server) handleAnalysisCharts(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	res, err := s.svc.Recompute(r.Context(), id)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, AnalysisChartsResponse{
		ID:       res.ID,
		Charts:   res.Charts,
		Rankings: res.Rankings,
		Unscaled: res.Unscaled,
	})
}

func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.svc.Delete(r.Context(), id); err != nil {
		s.serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// readBody reads at most maxBodyBytes of the request body.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("request body too large or unreadable: %w", err)
	}
	return body, nil
}

// decodeAndValidate decodes a JSON body into dst and runs struct validation. On failure it
// writes a 400 response and returns false.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, newValidationError(err).Error())
		return false
	}
	return true
}

func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid analysis ID")
		return uuid.Nil, false
	}
	return id, true
}

// serviceError maps err to a status and logs server-side failures.
func (s *Server) serviceError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "status", status, "error", err)
	}
	s.errorResponse(w, status, err.Error())
}

func createdStatus(res *analysis.Result) int {
	if res.Stored {
		return http.StatusCreated
	}
	return http.StatusOK
}
