// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/vibescout/matchaudit/internal/domain/compare"
)

// ConfigHandler serves and updates the validation threshold
// configuration.
type ConfigHandler struct {
	deps Dependencies
}

// NewConfigHandler creates a new config handler.
func NewConfigHandler(deps Dependencies) *ConfigHandler {
	return &ConfigHandler{deps: deps}
}

// HandleValidationConfig handles GET and PUT /config/validation.
func (h *ConfigHandler) HandleValidationConfig(w http.ResponseWriter, r *http.Request) {
	const op = "api.config_validation"
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.ValidationConfig(r.Context()))
	case http.MethodPut:
		var cfg compare.Config
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if err := h.deps.SaveValidationConfig(r.Context(), cfg); err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, ackResponse{Status: "saved"})
	default:
		http.NotFound(w, r)
	}
}
