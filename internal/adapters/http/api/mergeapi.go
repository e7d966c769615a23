// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vibescout/matchaudit/internal/merge"
)

// MergeHandler exposes the interactive conflict-resolution session.
type MergeHandler struct {
	deps Dependencies
}

// NewMergeHandler creates a new merge handler.
func NewMergeHandler(deps Dependencies) *MergeHandler {
	return &MergeHandler{deps: deps}
}

// HandleState handles GET /merge/state requests.
func (h *MergeHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"state": string(h.deps.MergeState())})
}

// HandleConflicts handles GET /merge/conflicts requests.
func (h *MergeHandler) HandleConflicts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.PendingConflicts())
}

// HandleCurrent handles GET /merge/current requests.
func (h *MergeHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	current, ok := h.deps.CurrentConflict()
	if !ok {
		writeError(w, http.StatusNotFound, "no_conflict", merge.ErrNoConflictPending)
		return
	}
	writeJSON(w, http.StatusOK, current)
}

// HandleSummary handles GET /merge/summary requests.
func (h *MergeHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.ImportSummary())
}

type resolveRequest struct {
	Action string `json:"action"`
}

// HandleResolve handles POST /merge/resolve requests.
func (h *MergeHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	const op = "api.merge_resolve"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.deps.ResolveConflict(r.Context(), merge.Action(req.Action)); err != nil {
		writeMergeError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "resolved"})
}

// HandleResolveBatch handles POST /merge/resolve-batch requests.
func (h *MergeHandler) HandleResolveBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.merge_resolve_batch"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.deps.ResolveBatch(r.Context(), merge.BatchAction(req.Action)); err != nil {
		writeMergeError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "resolved"})
}

// HandleUndo handles POST /merge/undo requests.
func (h *MergeHandler) HandleUndo(w http.ResponseWriter, r *http.Request) {
	const op = "api.merge_undo"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.UndoResolution(r.Context()); err != nil {
		writeMergeError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "undone"})
}

func writeMergeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, merge.ErrUnknownAction):
		writeError(w, http.StatusBadRequest, "unknown_action", Wrap(op, err))
	case errors.Is(err, merge.ErrNoConflictPending), errors.Is(err, merge.ErrNoBatchPending):
		writeError(w, http.StatusConflict, "wrong_state", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
