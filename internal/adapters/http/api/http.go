// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vibescout/matchaudit/internal/domain/compare"
	"github.com/vibescout/matchaudit/internal/domain/model"
	"github.com/vibescout/matchaudit/internal/merge"
	"github.com/vibescout/matchaudit/internal/validate"
	"github.com/vibescout/matchaudit/pkg/metrics"
)

// Dependencies required by HTTP handlers. Using an interface bundle
// keeps the handler layer loosely coupled to the service wiring.
type Dependencies interface {
	// Import pipeline.
	SubmitBatch(ctx context.Context, payload []byte, source string) (int, error)
	ImportDirect(ctx context.Context, payload []byte, source string) (model.ImportSummary, error)

	// Merge session.
	MergeState() merge.State
	CurrentConflict() (model.ConflictInfo, bool)
	PendingConflicts() []model.ConflictInfo
	ImportSummary() model.ImportSummary
	ResolveConflict(ctx context.Context, action merge.Action) error
	UndoResolution(ctx context.Context) error
	ResolveBatch(ctx context.Context, action merge.BatchAction) error

	// Validation.
	ValidateEvent(ctx context.Context, eventKey string, progress func(validate.Progress)) (validate.EventReport, error)
	ValidateMatch(ctx context.Context, eventKey, matchKey string) (model.MatchValidationResult, string, error)
	Result(ctx context.Context, eventKey, matchNumber string) (model.MatchValidationResult, error)
	Results(ctx context.Context, eventKey string) ([]model.MatchValidationResult, error)
	Summary(ctx context.Context, eventKey string) (model.ValidationSummary, error)

	// Threshold configuration.
	ValidationConfig(ctx context.Context) compare.Config
	SaveValidationConfig(ctx context.Context, cfg compare.Config) error

	// Records.
	Records(ctx context.Context, eventKey, matchNumber string) ([]model.ScoutingRecord, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	importHandler   *ImportHandler
	mergeHandler    *MergeHandler
	validateHandler *ValidateHandler
	resultsHandler  *ResultsHandler
	configHandler   *ConfigHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		importHandler:   NewImportHandler(deps),
		mergeHandler:    NewMergeHandler(deps),
		validateHandler: NewValidateHandler(deps),
		resultsHandler:  NewResultsHandler(deps),
		configHandler:   NewConfigHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("/import", MetricsMiddleware(s.importHandler.HandleImport, "import"))

	mux.HandleFunc("/merge/state", MetricsMiddleware(s.mergeHandler.HandleState, "merge_state"))
	mux.HandleFunc("/merge/conflicts", MetricsMiddleware(s.mergeHandler.HandleConflicts, "merge_conflicts"))
	mux.HandleFunc("/merge/current", MetricsMiddleware(s.mergeHandler.HandleCurrent, "merge_current"))
	mux.HandleFunc("/merge/resolve", MetricsMiddleware(s.mergeHandler.HandleResolve, "merge_resolve"))
	mux.HandleFunc("/merge/resolve-batch", MetricsMiddleware(s.mergeHandler.HandleResolveBatch, "merge_resolve_batch"))
	mux.HandleFunc("/merge/undo", MetricsMiddleware(s.mergeHandler.HandleUndo, "merge_undo"))
	mux.HandleFunc("/merge/summary", MetricsMiddleware(s.mergeHandler.HandleSummary, "merge_summary"))

	mux.HandleFunc("/validate", MetricsMiddleware(s.validateHandler.HandleValidate, "validate"))
	mux.HandleFunc("/results", MetricsMiddleware(s.resultsHandler.HandleResults, "results"))
	mux.HandleFunc("/results/summary", MetricsMiddleware(s.resultsHandler.HandleSummary, "results_summary"))
	mux.HandleFunc("/records", MetricsMiddleware(s.resultsHandler.HandleRecords, "records"))

	mux.HandleFunc("/config/validation", MetricsMiddleware(s.configHandler.HandleValidationConfig, "config_validation"))
}

type ackResponse struct {
	Status  string `json:"status"`
	Records int    `json:"records,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
