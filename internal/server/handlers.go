package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/metalpath/metalpath/internal/engine"
	"github.com/metalpath/metalpath/internal/factors"
	"github.com/metalpath/metalpath/internal/logging"
	"github.com/metalpath/metalpath/internal/report"
	"github.com/metalpath/metalpath/internal/store"
)

// anonymousUser is the fallback owner for assessments submitted without a
// user id.
const anonymousUser = "anonymous"

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service":   serviceName,
		"status":    "healthy",
		"version":   s.cfg.Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListMetals(w http.ResponseWriter, r *http.Request) {
	rows, err := s.store.ListMetalProperties(r.Context())
	if err != nil {
		s.serverError(w, r, "list metals", err)
		return
	}

	metals := make([]factors.MetalProperties, 0, len(rows))
	for i := range rows {
		props, err := rows[i].Properties()
		if err != nil {
			s.serverError(w, r, "decode metal catalog", err)
			return
		}
		metals = append(metals, props)
	}

	writeJSON(w, http.StatusOK, map[string]any{"metals": metals})
}

func (s *Server) handleGetMetal(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "metal")

	row, err := s.store.GetMetalProperties(r.Context(), strings.ToLower(name))
	if err != nil {
		if errors.Is(err, store.ErrMetalNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("metal %q not found", name))
			return
		}
		s.serverError(w, r, "load metal", err)
		return
	}

	props, err := row.Properties()
	if err != nil {
		s.serverError(w, r, "decode metal catalog", err)
		return
	}
	writeJSON(w, http.StatusOK, props)
}

// assessResponse is the API response for a completed assessment.
type assessResponse struct {
	AssessmentID string                  `json:"assessment_id"`
	Results      engine.AssessmentResult `json:"results"`
	Summary      report.Summary          `json:"summary"`
	Quality      report.QualitySection   `json:"data_quality"`
	Status       string                  `json:"status"`
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := engine.ValidateRequest(raw); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.engine.EstimateAll(r.Context(), raw)
	if err != nil {
		s.serverError(w, r, "run assessment", err)
		return
	}

	userID := stringOr(raw, "user_id", anonymousUser)
	record, err := s.store.SaveAssessment(r.Context(), result, userID)
	if err != nil {
		s.serverError(w, r, "save assessment", err)
		return
	}

	rep := report.Build(result, time.Now())
	writeJSON(w, http.StatusOK, assessResponse{
		AssessmentID: record.ID,
		Results:      result,
		Summary:      rep.Summary,
		Quality:      rep.Quality,
		Status:       "success",
	})
}

// compareRequest carries the pathway list to analyze.
type compareRequest struct {
	Pathways []map[string]any `json:"pathways"`
}

// comparisonInsights is the best-performer block of a compare response.
type comparisonInsights struct {
	BestCarbon         engine.BestEntry `json:"lowest_carbon"`
	BestSustainability engine.BestEntry `json:"highest_sustainability"`
}

// compareResponse is the API response for a pathway comparison.
type compareResponse struct {
	Results  []engine.PathwayResult    `json:"comparison_results"`
	Insights comparisonInsights        `json:"insights"`
	Analysis report.ComparisonAnalysis `json:"analysis"`
	Status   string                    `json:"status"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	insights, err := s.engine.Compare(r.Context(), req.Pathways)
	if err != nil {
		if errors.Is(err, engine.ErrTooFewPathways) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.serverError(w, r, "compare pathways", err)
		return
	}

	rep := report.BuildComparison(insights, time.Now())
	writeJSON(w, http.StatusOK, compareResponse{
		Results: insights.Pathways,
		Insights: comparisonInsights{
			BestCarbon:         insights.BestCarbon,
			BestSustainability: insights.BestSustainability,
		},
		Analysis: rep.Analysis,
		Status:   "success",
	})
}

// assessmentItem is one entry in a user's assessment history.
type assessmentItem struct {
	ID        string          `json:"id"`
	Metal     string          `json:"metal_type"`
	Route     string          `json:"production_route"`
	Input     json.RawMessage `json:"assessment_data"`
	Results   json.RawMessage `json:"results"`
	CreatedAt string          `json:"created_at"`
}

func (s *Server) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}

	records, err := s.store.ListAssessments(r.Context(), userID, limit)
	if err != nil {
		s.serverError(w, r, "list assessments", err)
		return
	}

	items := make([]assessmentItem, 0, len(records))
	for i := range records {
		items = append(items, assessmentItem{
			ID:        records[i].ID,
			Metal:     records[i].Metal,
			Route:     records[i].Route,
			Input:     json.RawMessage(records[i].InputJSON),
			Results:   json.RawMessage(records[i].ResultJSON),
			CreatedAt: records[i].CreatedAt.Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"assessments": items})
}

// dashboardStatistics is the aggregate block of a dashboard response.
type dashboardStatistics struct {
	Total             int64   `json:"total_assessments"`
	AvgCarbonKg       float64 `json:"average_carbon_footprint"`
	AvgSustainability float64 `json:"average_sustainability_score"`
	AvgCircularity    float64 `json:"average_circularity_index"`
}

// recentAssessment is one row of the dashboard's recent list.
type recentAssessment struct {
	ID             string  `json:"id"`
	Metal          string  `json:"metal_type"`
	CarbonKg       float64 `json:"carbon_footprint"`
	Sustainability float64 `json:"sustainability_score"`
	CreatedAt      string  `json:"created_at"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	stats, err := s.store.Stats(r.Context(), userID)
	if err != nil {
		s.serverError(w, r, "aggregate dashboard", err)
		return
	}

	recent := make([]recentAssessment, 0, len(stats.Recent))
	for i := range stats.Recent {
		recent = append(recent, recentAssessment{
			ID:             stats.Recent[i].ID,
			Metal:          stats.Recent[i].Metal,
			CarbonKg:       stats.Recent[i].CarbonKg,
			Sustainability: stats.Recent[i].Sustainability,
			CreatedAt:      stats.Recent[i].CreatedAt.Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"statistics": dashboardStatistics{
			Total:             stats.TotalAssessments,
			AvgCarbonKg:       stats.AvgCarbonKg,
			AvgSustainability: stats.AvgSustainability,
			AvgCircularity:    stats.AvgCircularity,
		},
		"recent_assessments": recent,
	})
}

// serverError logs the failure with its request-scoped logger and answers
// with a 500 envelope.
func (s *Server) serverError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	logging.FromContext(r.Context()).Error().
		Str("component", "server").
		Str("operation", operation).
		Err(err).
		Msg("Request failed")
	writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to %s: %v", operation, err))
}

func stringOr(raw map[string]any, key, fallback string) string {
	if v, ok := raw[key].(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
