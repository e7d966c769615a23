// Package service wires the stores, the official-data client, the
// import pipeline and the validation runner into the surface the HTTP
// API depends on.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/vibescout/matchaudit/internal/adapters/importer"
	importqueue "github.com/vibescout/matchaudit/internal/adapters/mq/queue"
	workerpool "github.com/vibescout/matchaudit/internal/adapters/mq/worker"
	"github.com/vibescout/matchaudit/internal/adapters/repository"
	"github.com/vibescout/matchaudit/internal/adapters/tba"
	"github.com/vibescout/matchaudit/internal/config"
	"github.com/vibescout/matchaudit/internal/domain/compare"
	"github.com/vibescout/matchaudit/internal/domain/model"
	"github.com/vibescout/matchaudit/internal/merge"
	"github.com/vibescout/matchaudit/internal/validate"
	"github.com/vibescout/matchaudit/pkg/logger"
)

// Service implements the API dependencies for the scouting audit system.
type Service struct {
	mu sync.RWMutex

	// Core components
	records    repository.RecordStore
	results    repository.ResultStore
	provider   tba.Provider
	queue      importqueue.Queue
	pool       *workerpool.Pool
	merger     *merge.Orchestrator
	runner     *validate.Runner
	validation *config.ValidationStore

	// Configuration
	workerCount          int
	validateWorkers      int
	queueSize            int
	batchReviewThreshold int
	tbaBaseURL           string
	tbaAuthKey           string
	validationConfigPath string

	// State
	started bool
	stopCh  chan struct{}

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of merge worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithValidateWorkerCount sets the validation runner's concurrency.
func WithValidateWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.validateWorkers = count
		}
	}
}

// WithQueueSize sets the maximum size of the import queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithBatchReviewThreshold sets how many pending conflicts trigger the
// batch-review stage instead of one-by-one review.
func WithBatchReviewThreshold(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchReviewThreshold = n
		}
	}
}

// WithFeed sets the official-data endpoint and credential.
func WithFeed(baseURL, authKey string) Option {
	return func(s *Service) {
		if baseURL != "" {
			s.tbaBaseURL = baseURL
		}
		s.tbaAuthKey = authKey
	}
}

// WithProvider injects an official-data provider, replacing the HTTP
// client. Used by tests and the simulator.
func WithProvider(p tba.Provider) Option {
	return func(s *Service) {
		if p != nil {
			s.provider = p
		}
	}
}

// WithValidationConfigPath sets where the validation thresholds file
// lives.
func WithValidationConfigPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.validationConfigPath = path
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	cfg := config.New()
	s := &Service{
		workerCount:          cfg.MergeWorkerCount,
		validateWorkers:      cfg.ValidateWorkerCount,
		queueSize:            cfg.ImportQueueSize,
		batchReviewThreshold: cfg.BatchReviewThreshold,
		tbaBaseURL:           cfg.TBABaseURL,
		validationConfigPath: cfg.ValidationConfigPath,
		stopCh:               make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting match audit service...")

	s.records = repository.NewMemStore()
	s.results = repository.NewMemResultStore()
	if s.provider == nil {
		s.provider = tba.NewClient(
			tba.WithBaseURL(s.tbaBaseURL),
			tba.WithAuthKey(s.tbaAuthKey),
		)
	}
	s.validation = config.NewValidationStore(s.validationConfigPath)

	s.queue = importqueue.NewInMemoryQueue(
		importqueue.WithCapacity(s.queueSize),
		importqueue.WithBufferSize(s.queueSize),
	)
	s.merger = merge.New(s.records,
		merge.WithBatchReviewThreshold(s.batchReviewThreshold),
		merge.WithLogger(s.logger.Named("merge")),
	)
	s.pool = workerpool.NewPool(s.workerCount, s.queue, s.merger)
	s.pool.Start(ctx)

	s.runner = validate.NewRunner(s.provider, s.records, s.results,
		validate.WithWorkerCount(s.validateWorkers),
		validate.WithRunnerLogger(s.logger.Named("validate")),
	)

	s.started = true
	s.logger.Info(ctx, "match audit service started",
		logger.Int("merge_workers", s.workerCount),
		logger.Int("validate_workers", s.validateWorkers),
		logger.Int("queue_size", s.queueSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping match audit service...")

	if s.pool != nil {
		_ = s.pool.Shutdown(ctx)
	}

	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(ctx, "match audit service stopped")
}

// SubmitBatch decodes an uploaded batch and enqueues it for merging.
// Decoding happens synchronously so the device gets schema errors back;
// the merge itself is asynchronous.
func (s *Service) SubmitBatch(ctx context.Context, payload []byte, source string) (int, error) {
	records, err := importer.Decode(payload)
	if err != nil {
		return 0, err
	}

	batch := importqueue.Batch{
		Source:     source,
		Records:    records,
		ReceivedAt: time.Now().UTC(),
	}
	if !s.queue.Enqueue(ctx, batch) {
		return 0, importqueue.ErrQueueClosed
	}
	return len(records), nil
}

// ImportDirect runs a decoded batch through the merge engine on the
// caller's goroutine. The interactive conflict flow needs the summary
// before it can prompt, so the queue is bypassed.
func (s *Service) ImportDirect(ctx context.Context, payload []byte, source string) (model.ImportSummary, error) {
	records, err := importer.Decode(payload)
	if err != nil {
		return model.ImportSummary{}, err
	}
	s.logger.Info(ctx, "direct import",
		logger.String("source", source),
		logger.Int("records", len(records)),
	)
	return s.merger.Import(ctx, records)
}

// Merge session surface.

func (s *Service) MergeState() merge.State                     { return s.merger.State() }
func (s *Service) CurrentConflict() (model.ConflictInfo, bool) { return s.merger.Current() }
func (s *Service) PendingConflicts() []model.ConflictInfo      { return s.merger.Pending() }
func (s *Service) ImportSummary() model.ImportSummary          { return s.merger.Summary() }

func (s *Service) ResolveConflict(ctx context.Context, action merge.Action) error {
	return s.merger.Resolve(ctx, action)
}

func (s *Service) UndoResolution(ctx context.Context) error {
	return s.merger.Undo(ctx)
}

func (s *Service) ResolveBatch(ctx context.Context, action merge.BatchAction) error {
	return s.merger.ResolveBatch(ctx, action)
}

// Validation surface.

func (s *Service) ValidateEvent(ctx context.Context, eventKey string, progress func(validate.Progress)) (validate.EventReport, error) {
	cfg := s.validation.Load(ctx)
	return s.runner.RunEvent(ctx, eventKey, &cfg, progress)
}

func (s *Service) ValidateMatch(ctx context.Context, eventKey, matchKey string) (model.MatchValidationResult, string, error) {
	cfg := s.validation.Load(ctx)
	return s.runner.RunMatch(ctx, eventKey, matchKey, &cfg)
}

func (s *Service) Result(ctx context.Context, eventKey, matchNumber string) (model.MatchValidationResult, error) {
	return s.results.Get(ctx, eventKey, matchNumber)
}

func (s *Service) Results(ctx context.Context, eventKey string) ([]model.MatchValidationResult, error) {
	return s.results.ListByEvent(ctx, eventKey)
}

func (s *Service) Summary(ctx context.Context, eventKey string) (model.ValidationSummary, error) {
	return s.results.Summary(ctx, eventKey)
}

// Threshold configuration surface.

func (s *Service) ValidationConfig(ctx context.Context) compare.Config {
	return s.validation.Load(ctx)
}

func (s *Service) SaveValidationConfig(ctx context.Context, cfg compare.Config) error {
	return s.validation.Save(ctx, cfg)
}

// Record surface.

func (s *Service) Records(ctx context.Context, eventKey, matchNumber string) ([]model.ScoutingRecord, error) {
	return s.records.QueryByFields(ctx, eventKey, matchNumber)
}

func (s *Service) RecordCount(ctx context.Context) int {
	return s.records.Count(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
	}

	if s.started {
		stats["queueLength"] = s.queue.Len(ctx)
		stats["recordCount"] = s.records.Count(ctx)
		stats["mergeState"] = string(s.merger.State())
		stats["pendingConflicts"] = len(s.merger.Pending())
	}

	return stats
}
