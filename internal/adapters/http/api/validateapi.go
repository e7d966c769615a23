// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// ValidateHandler triggers validation runs.
type ValidateHandler struct {
	deps Dependencies
}

// NewValidateHandler creates a new validate handler.
func NewValidateHandler(deps Dependencies) *ValidateHandler {
	return &ValidateHandler{deps: deps}
}

// HandleValidate handles POST /validate?event=K[&match=K] requests.
// With a match key only that match is validated; otherwise the whole
// event runs and the report is returned once finished.
func (h *ValidateHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	const op = "api.validate"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	eventKey := r.URL.Query().Get("event")
	if eventKey == "" {
		writeError(w, http.StatusBadRequest, "missing_event", NewKind(op, ErrBadRequest))
		return
	}

	if matchKey := r.URL.Query().Get("match"); matchKey != "" {
		result, skipped, err := h.deps.ValidateMatch(r.Context(), eventKey, matchKey)
		if err != nil {
			writeError(w, http.StatusBadGateway, "feed_error", Wrap(op, err))
			return
		}
		if skipped != "" {
			writeJSON(w, http.StatusOK, map[string]string{"status": "skipped", "reason": skipped})
			return
		}
		writeJSON(w, http.StatusOK, result)
		return
	}

	report, err := h.deps.ValidateEvent(r.Context(), eventKey, nil)
	if err != nil {
		writeError(w, http.StatusBadGateway, "feed_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}
