// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"

	"github.com/vibescout/matchaudit/internal/adapters/repository"
)

// ResultsHandler serves stored validation results and scouted records.
type ResultsHandler struct {
	deps Dependencies
}

// NewResultsHandler creates a new results handler.
func NewResultsHandler(deps Dependencies) *ResultsHandler {
	return &ResultsHandler{deps: deps}
}

// HandleResults handles GET /results?event=K[&match=N] requests.
func (h *ResultsHandler) HandleResults(w http.ResponseWriter, r *http.Request) {
	const op = "api.results"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	eventKey := r.URL.Query().Get("event")
	if eventKey == "" {
		writeError(w, http.StatusBadRequest, "missing_event", NewKind(op, ErrBadRequest))
		return
	}

	if matchNumber := r.URL.Query().Get("match"); matchNumber != "" {
		result, err := h.deps.Result(r.Context(), eventKey, matchNumber)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, result)
		return
	}

	results, err := h.deps.Results(r.Context(), eventKey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// HandleSummary handles GET /results/summary?event=K requests.
func (h *ResultsHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	const op = "api.results_summary"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	eventKey := r.URL.Query().Get("event")
	if eventKey == "" {
		writeError(w, http.StatusBadRequest, "missing_event", NewKind(op, ErrBadRequest))
		return
	}
	summary, err := h.deps.Summary(r.Context(), eventKey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// HandleRecords handles GET /records?event=K&match=N requests.
func (h *ResultsHandler) HandleRecords(w http.ResponseWriter, r *http.Request) {
	const op = "api.records"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	eventKey := r.URL.Query().Get("event")
	matchNumber := r.URL.Query().Get("match")
	if eventKey == "" || matchNumber == "" {
		writeError(w, http.StatusBadRequest, "missing_key", NewKind(op, ErrBadRequest))
		return
	}
	records, err := h.deps.Records(r.Context(), eventKey, matchNumber)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, records)
}
