package worker

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/goto/salt/log"
)

var (
	ErrTypeExists  = errors.New("handler for given job type exists")
	ErrUnknownType = errors.New("job type is invalid")
	ErrJobExists   = errors.New("job with id exists")
	ErrNoJob       = errors.New("no job found")
)

const (
	minPollInterval = 100 * time.Millisecond
	maxIdleDelay    = 5 * time.Second
	// unknownTypeDelay parks a job nobody can handle.
	unknownTypeDelay = 5 * time.Minute
)

// Worker polls a JobProcessor with a fixed number of goroutines and runs
// the registered handler of every ready job.
type Worker struct {
	processor    JobProcessor
	logger       log.Logger
	workers      int
	pollInterval time.Duration

	mu       sync.RWMutex
	handlers map[string]JobHandler
}

type Option func(*Worker) error

func WithJobHandler(typ string, h JobHandler) Option {
	return func(w *Worker) error {
		return w.Register(typ, h)
	}
}

func WithLogger(l log.Logger) Option {
	return func(w *Worker) error {
		if l != nil {
			w.logger = l
		}
		return nil
	}
}

// WithRunConfig sets the number of polling goroutines and the delay between
// polls while jobs keep coming.
func WithRunConfig(workers int, pollInterval time.Duration) Option {
	return func(w *Worker) error {
		if workers <= 0 {
			workers = 1
		}
		if pollInterval < minPollInterval {
			pollInterval = minPollInterval
		}
		w.workers = workers
		w.pollInterval = pollInterval
		return nil
	}
}

func New(processor JobProcessor, opts ...Option) (*Worker, error) {
	w := &Worker{
		processor:    processor,
		logger:       log.NewNoop(),
		workers:      1,
		pollInterval: time.Second,
		handlers:     make(map[string]JobHandler),
	}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, fmt.Errorf("new worker: %w", err)
		}
	}
	return w, nil
}

// Register binds a handler to a job type. Each type takes one handler.
func (w *Worker) Register(typ string, h JobHandler) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.handlers[typ]; ok {
		return fmt.Errorf("register handler: %w: type '%s'", ErrTypeExists, typ)
	}
	if err := h.sanitize(); err != nil {
		return fmt.Errorf("register handler: %w: type '%s'", err, typ)
	}
	w.handlers[typ] = h
	return nil
}

func (w *Worker) Enqueue(ctx context.Context, specs ...JobSpec) error {
	jobs := make([]Job, 0, len(specs))
	for _, spec := range specs {
		job, err := NewJob(spec)
		if err != nil {
			return fmt.Errorf("worker enqueue: %w", err)
		}
		jobs = append(jobs, job)
	}
	return w.processor.Enqueue(ctx, jobs...)
}

func (w *Worker) Stats(ctx context.Context) ([]JobTypeStats, error) {
	return w.processor.Stats(ctx)
}

// Run polls until ctx is done and returns once every goroutine has
// finished its current job.
func (w *Worker) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	for i := 0; i < w.workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			w.poll(ctx)
			w.logger.Info("worker exited", "worker_id", id)
		}(i)
	}
	wg.Wait()

	w.logger.Info("all workers exited")
	if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func (w *Worker) poll(ctx context.Context) {
	idle := &ExponentialBackoff{
		Multiplier:   1.6,
		InitialDelay: w.pollInterval,
		MaxDelay:     maxIdleDelay,
		Jitter:       0.5,
	}

	timer := time.NewTimer(w.pollInterval)
	defer timer.Stop()

	misses := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		types := w.types()
		if len(types) == 0 {
			w.logger.Warn("no job handler registered, skipping poll")
			timer.Reset(maxIdleDelay)
			continue
		}

		err := w.processor.Process(ctx, types, w.processJob)
		switch {
		case errors.Is(err, ErrNoJob):
			misses++
			timer.Reset(idle.Backoff(misses))
		case err != nil:
			w.logger.Error("process job", "err", err)
			misses = 0
			timer.Reset(w.pollInterval)
		default:
			misses = 0
			timer.Reset(w.pollInterval)
		}
	}
}

func (w *Worker) processJob(ctx context.Context, job Job) Job {
	start := time.Now()

	h, ok := w.handler(job.Type)
	if !ok {
		job.LastError = ErrUnknownType.Error()
		job.RunAt = start.Add(unknownTypeDelay)
		return job
	}

	job.Attempt(ctx, start, h)
	w.logger.Info("job attempted",
		"job_id", job.ID.String(),
		"job_type", job.Type,
		"attempts_done", job.AttemptsDone,
		"job_status", string(job.Status),
		"last_error", job.LastError,
		"time_ms", time.Since(start).Milliseconds(),
	)
	return job
}

func (w *Worker) handler(typ string) (JobHandler, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	h, ok := w.handlers[typ]
	return h, ok
}

func (w *Worker) types() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	types := make([]string, 0, len(w.handlers))
	for typ := range w.handlers {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}
