package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kalambet/tizhi/internal/assessment"
	"github.com/kalambet/tizhi/internal/metrics"
	"github.com/kalambet/tizhi/internal/questionnaire"
)

const maxRequestBodySize = 1 << 20 // 1MB

type AppDeps struct {
	Registry *assessment.Registry
	Metrics  *metrics.Metrics // optional; nil serves the default Prometheus registry
	Token    string
}

// NewAppHandler returns the HTTP API. Everything except /health requires
// the bearer token.
func NewAppHandler(deps AppDeps) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(deps.Token))

		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
		r.Get("/categories", handleCategories)
		r.Get("/questions", handleQuestions(deps))
		r.Get("/questions/{id}", handleQuestion(deps))

		r.Post("/assessments", handleStartAssessment(deps))
		r.Get("/assessments/{id}", handleGetAssessment(deps))
		r.Delete("/assessments/{id}", handleAbandonAssessment(deps))
		r.Post("/assessments/{id}/answers", handleAnswer(deps))
		r.Post("/assessments/{id}/back", handleBack(deps))
		r.Get("/assessments/{id}/result", handleResult(deps))
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}

// assessmentError maps registry and engine errors onto HTTP statuses.
func assessmentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, assessment.ErrNotFound):
		httpError(w, http.StatusNotFound, "not_found_error", "%v", err)
	case errors.Is(err, questionnaire.ErrInvalidAnswerValue),
		errors.Is(err, assessment.ErrInvalidRespondent):
		httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
	case errors.Is(err, questionnaire.ErrSessionCompleted),
		errors.Is(err, assessment.ErrNotCompleted):
		httpError(w, http.StatusConflict, "conflict_error", "%v", err)
	default:
		httpError(w, http.StatusInternalServerError, "api_error", "%v", err)
	}
}
