package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

type JobStatus string

const (
	StatusPending JobStatus = ""
	StatusDone    JobStatus = "done"
	StatusDead    JobStatus = "dead"
)

// cancelledRetryDelay postpones a job picked up while the worker shuts down.
const cancelledRetryDelay = 5 * time.Second

var (
	ErrInvalidJob        = errors.New("job is not valid")
	ErrInvalidJobHandler = errors.New("job handler is not valid")
)

// JobSpec is what callers hand to Enqueue.
type JobSpec struct {
	Type    string    `json:"type"`
	Payload []byte    `json:"payload"`
	RunAt   time.Time `json:"run_at"`
}

// Job is a queued JobSpec together with its execution history.
type Job struct {
	ID ulid.ULID `json:"id"`
	JobSpec

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	AttemptsDone  int       `json:"attempts_done"`
	Status        JobStatus `json:"-"`
	LastAttemptAt time.Time `json:"last_attempt_at,omitempty"`
	LastError     string    `json:"last_error,omitempty"`
}

// NewJob normalizes the job type and schedules the job for now unless a
// run time is given.
func NewJob(spec JobSpec) (Job, error) {
	spec.Type = strings.ToLower(strings.TrimSpace(spec.Type))
	if spec.Type == "" {
		return Job{}, fmt.Errorf("%w: job type must be set", ErrInvalidJob)
	}

	now := time.Now()
	if spec.RunAt.IsZero() {
		spec.RunAt = now
	}
	return Job{
		ID:        ulid.Make(),
		JobSpec:   spec,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Attempt runs h for the job and records the outcome on j. A panic or a
// non retryable error kills the job, a RetryableError reschedules it until
// the handler runs out of attempts.
func (j *Job) Attempt(ctx context.Context, now time.Time, h JobHandler) {
	defer func() {
		if v := recover(); v != nil {
			j.Status = StatusDead
			j.LastError = fmt.Sprintf("panic: %v", v)
		}
		j.AttemptsDone++
		j.LastAttemptAt = now
		j.UpdatedAt = now
	}()

	if err := ctx.Err(); err != nil {
		j.RunAt = now.Add(cancelledRetryDelay)
		j.LastError = fmt.Sprintf("canceled: %v", err)
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, h.Opts.Timeout)
	defer cancel()

	err := h.Handle(runCtx, j.JobSpec)
	if err == nil {
		j.Status = StatusDone
		return
	}

	j.LastError = err.Error()
	var re *RetryableError
	if errors.As(err, &re) && j.AttemptsDone+1 < h.Opts.MaxAttempts {
		j.RunAt = now.Add(h.Opts.Backoff.Backoff(j.AttemptsDone + 1))
		return
	}
	j.Status = StatusDead
}

// JobFunc executes one job. Returning a RetryableError asks for another
// attempt, any other error or a panic makes the job dead.
type JobFunc func(context.Context, JobSpec) error

type JobHandler struct {
	Handle JobFunc
	Opts   JobOptions
}

type JobOptions struct {
	MaxAttempts int
	Timeout     time.Duration
	Backoff     BackoffStrategy
}

const (
	DefaultMaxAttempts = 3
	DefaultTimeout     = 5 * time.Second
)

func (h *JobHandler) sanitize() error {
	if h.Handle == nil {
		return fmt.Errorf("%w: handle function must be set", ErrInvalidJobHandler)
	}
	if h.Opts.MaxAttempts <= 0 {
		h.Opts.MaxAttempts = DefaultMaxAttempts
	}
	if h.Opts.Timeout <= 0 {
		h.Opts.Timeout = DefaultTimeout
	}
	if h.Opts.Backoff == nil {
		h.Opts.Backoff = DefaultExponentialBackoff
	}
	return nil
}

// RetryableError marks a failure worth another attempt.
type RetryableError struct {
	Cause error
}

func (re *RetryableError) Error() string {
	return fmt.Sprintf("retryable-error: %v", re.Cause)
}

func (re *RetryableError) Unwrap() error { return re.Cause }
