package workermanager

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/goto/salt/log"
	"github.com/goto/ticketsearch/core/search"
	"github.com/goto/ticketsearch/core/ticket"
	"github.com/goto/ticketsearch/pkg/worker"
	"github.com/goto/ticketsearch/pkg/worker/pgq"
	"github.com/goto/ticketsearch/pkg/worker/workermw"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Manager keeps the derived indexes in sync with the live records through
// the job queue. It implements search.Worker for the queue index mode.
type Manager struct {
	processor       *pgq.Processor
	initDone        atomic.Bool
	worker          Worker
	indexers        []search.Indexer
	records         ticket.Repository
	cache           ResultCache
	rebuildInterval time.Duration
	logger          log.Logger
}

//go:generate mockery --name=Worker -r --case underscore --with-expecter --structname Worker --filename worker_mock.go --output=./mocks

type Worker interface {
	Register(typ string, h worker.JobHandler) error
	Run(ctx context.Context) error
	Enqueue(ctx context.Context, jobs ...worker.JobSpec) error
}

// ResultCache is the cached result pages the manager invalidates once an
// index write has landed.
type ResultCache interface {
	InvalidateMailboxes(ids ...int64)
	Flush()
}

type Config struct {
	Enabled      bool          `mapstructure:"enabled" yaml:"enabled"`
	WorkerCount  int           `mapstructure:"worker_count" yaml:"worker_count" default:"3"`
	PollInterval time.Duration `mapstructure:"poll_interval" yaml:"poll_interval" default:"500ms"`
	PGQ          pgq.Config    `mapstructure:"pgq" yaml:"pgq"`
}

type Deps struct {
	Config   Config
	Indexers []search.Indexer
	Records  ticket.Repository
	Cache    ResultCache
	// RebuildInterval enqueues a full rebuild periodically while Run is
	// active. Zero disables the schedule.
	RebuildInterval time.Duration
	Logger          log.Logger
}

func New(ctx context.Context, deps Deps) (*Manager, error) {
	cfg := deps.Config
	processor, err := pgq.NewProcessor(ctx, cfg.PGQ)
	if err != nil {
		return nil, fmt.Errorf("new worker manager: %w", err)
	}

	w, err := worker.New(
		workermw.WithJobProcessorInstrumentation()(processor),
		worker.WithRunConfig(cfg.WorkerCount, cfg.PollInterval),
		worker.WithLogger(deps.Logger),
	)
	if err != nil {
		_ = processor.Close()
		return nil, fmt.Errorf("new worker manager: %w", err)
	}

	mgr := NewWithWorker(w, deps)
	mgr.processor = processor
	return mgr, nil
}

func NewWithWorker(w Worker, deps Deps) *Manager {
	logger := deps.Logger
	if logger == nil {
		logger = log.NewNoop()
	}
	return &Manager{
		worker:          w,
		indexers:        deps.Indexers,
		records:         deps.Records,
		cache:           deps.Cache,
		rebuildInterval: deps.RebuildInterval,
		logger:          logger,
	}
}

// Run registers the job handlers and processes jobs until ctx is done.
func (m *Manager) Run(ctx context.Context) error {
	if err := m.init(); err != nil {
		return fmt.Errorf("run async worker: init: %w", err)
	}

	if m.rebuildInterval > 0 {
		go m.scheduleRebuilds(ctx)
	}

	return m.worker.Run(ctx)
}

func (m *Manager) init() error {
	if m.initDone.Load() {
		return nil
	}
	m.initDone.Store(true)

	jobHandlers := map[string]worker.JobHandler{
		jobIndexRecord:  m.indexRecordHandler(),
		jobDeleteRecord: m.deleteRecordHandler(),
		jobRebuildIndex: m.rebuildIndexHandler(),
	}
	for _, typ := range keys(jobHandlers) {
		if err := m.worker.Register(typ, jobHandlers[typ]); err != nil {
			return err
		}
	}

	if m.processor == nil {
		return nil
	}
	return m.registerStatsCallback(keys(jobHandlers))
}

func (m *Manager) scheduleRebuilds(ctx context.Context) {
	ticker := time.NewTicker(m.rebuildInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			if err := m.EnqueueRebuildIndexJob(ctx); err != nil {
				m.logger.Error("schedule index rebuild", "err", err)
			}
		}
	}
}

// Stats lists the queued and dead jobs per job type.
func (m *Manager) Stats(ctx context.Context) ([]worker.JobTypeStats, error) {
	if m.processor == nil {
		return nil, nil
	}
	return m.processor.Stats(ctx)
}

func (m *Manager) DeadJobs(ctx context.Context, size, offset int) ([]worker.Job, error) {
	if m.processor == nil {
		return nil, nil
	}
	return m.processor.DeadJobs(ctx, size, offset)
}

func (m *Manager) Resurrect(ctx context.Context, jobIDs []string) error {
	if m.processor == nil {
		return nil
	}
	return m.processor.Resurrect(ctx, jobIDs)
}

func (m *Manager) ClearDeadJobs(ctx context.Context, jobIDs []string) error {
	if m.processor == nil {
		return nil
	}
	return m.processor.ClearDeadJobs(ctx, jobIDs)
}

func (m *Manager) Close() error {
	if m.processor == nil {
		return nil
	}
	return m.processor.Close()
}

func (m *Manager) registerStatsCallback(jobTypes []string) error {
	const attrJobType = attribute.Key("job.type")

	meter := otel.Meter("github.com/goto/ticketsearch/internal/workermanager")
	activeJobs, err := meter.Int64ObservableGauge("ticketsearch.worker.active_jobs")
	handleOtelErr(err)

	deadJobs, err := meter.Int64ObservableGauge("ticketsearch.worker.dead_jobs")
	handleOtelErr(err)

	_, err = meter.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			stats, err := m.processor.Stats(ctx)
			if err != nil {
				return err
			}

			seen := make(map[string]struct{}, len(jobTypes))
			for _, st := range stats {
				seen[st.Type] = struct{}{}
				attr := metric.WithAttributes(attrJobType.String(st.Type))
				o.ObserveInt64(activeJobs, int64(st.Active), attr)
				o.ObserveInt64(deadJobs, int64(st.Dead), attr)
			}

			for _, typ := range jobTypes {
				if _, ok := seen[typ]; ok {
					continue
				}
				attr := metric.WithAttributes(attrJobType.String(typ))
				o.ObserveInt64(activeJobs, 0, attr)
				o.ObserveInt64(deadJobs, 0, attr)
			}

			return nil
		},
		activeJobs,
		deadJobs,
	)

	return err
}

func handleOtelErr(err error) {
	if err != nil {
		otel.Handle(err)
	}
}
