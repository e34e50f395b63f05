package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kalambet/tizhi/internal/profile"
	"github.com/kalambet/tizhi/internal/questionnaire"
)

// StartRequest is the optional body of POST /assessments.
type StartRequest struct {
	Respondent *profile.Respondent `json:"respondent,omitempty"`
}

// AnswerRequest is the body of POST /assessments/{id}/answers.
type AnswerRequest struct {
	Value *int `json:"value"`
}

// CategoryInfo describes one constitution category.
type CategoryInfo struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Neutral bool   `json:"neutral"`
}

func categoryCatalog() []CategoryInfo {
	cats := questionnaire.Categories()
	out := make([]CategoryInfo, len(cats))
	for i, c := range cats {
		out[i] = CategoryInfo{Name: c.String(), Label: c.Label(), Neutral: c.IsNeutral()}
	}
	return out
}

func handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, categoryCatalog())
}

func handleQuestions(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		qs, err := deps.Registry.Bank().Filter(q.Get("tier"), q.Get("category"))
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		}
		writeJSON(w, http.StatusOK, qs)
	}
}

func handleQuestion(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		q, ok := deps.Registry.Bank().Lookup(id)
		if !ok {
			httpError(w, http.StatusNotFound, "not_found_error", "question not found: %s", id)
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

func handleStartAssessment(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req StartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		snap, err := deps.Registry.Start(req.Respondent)
		if err != nil {
			assessmentError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, snap)
	}
}

func handleGetAssessment(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := deps.Registry.Get(chi.URLParam(r, "id"))
		if err != nil {
			assessmentError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

func handleAnswer(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req AnswerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.Value == nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "value is required")
			return
		}

		snap, err := deps.Registry.Answer(chi.URLParam(r, "id"), *req.Value)
		if err != nil {
			assessmentError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

func handleBack(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := deps.Registry.Back(chi.URLParam(r, "id"))
		if err != nil {
			assessmentError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

func handleResult(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, err := deps.Registry.Result(chi.URLParam(r, "id"))
		if err != nil {
			assessmentError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rep)
	}
}

func handleAbandonAssessment(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Registry.Abandon(chi.URLParam(r, "id")); err != nil {
			assessmentError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "abandoned"})
	}
}
