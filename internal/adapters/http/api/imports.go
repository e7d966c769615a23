// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/vibescout/matchaudit/internal/adapters/importer"
	"github.com/vibescout/matchaudit/internal/adapters/mq/queue"
)

// maxImportBody caps uploads at 16 MiB. A full-event export from one
// device is well under 1 MiB.
const maxImportBody = 16 << 20

// ImportHandler handles batch upload requests.
type ImportHandler struct {
	deps Dependencies
}

// NewImportHandler creates a new import handler.
func NewImportHandler(deps Dependencies) *ImportHandler {
	return &ImportHandler{deps: deps}
}

// HandleImport handles POST /import requests. The body is a batch in
// either JSON or msgpack form; ?mode=direct runs the merge on the
// request goroutine and returns the full summary, otherwise the batch
// is queued and the request acknowledged.
func (h *ImportHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	const op = "api.import"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	source := r.Header.Get("X-Device-Name")
	if source == "" {
		source = r.RemoteAddr
	}

	if r.URL.Query().Get("mode") == "direct" {
		summary, err := h.deps.ImportDirect(r.Context(), body, source)
		if err != nil && !isDecodeError(err) {
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
			return
		}
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_batch", WrapKind(op, ErrBadRequest, err))
			return
		}
		writeJSON(w, http.StatusOK, summary)
		return
	}

	count, err := h.deps.SubmitBatch(r.Context(), body, source)
	if err != nil {
		if errors.Is(err, queue.ErrQueueClosed) {
			writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
			return
		}
		writeError(w, http.StatusBadRequest, "bad_batch", WrapKind(op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", Records: count})
}

func isDecodeError(err error) bool {
	return errors.Is(err, importer.ErrUnrecognizedShape) ||
		errors.Is(err, importer.ErrSchemaViolation)
}
