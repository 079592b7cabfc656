package worker

import "context"

//go:generate mockery --name=JobProcessor -r --case underscore --with-expecter --structname JobProcessor --filename job_processor_mock.go --output=./mocks

// JobProcessor stores jobs and hands out the ready ones.
type JobProcessor interface {
	// Enqueue stores all jobs or none of them.
	Enqueue(ctx context.Context, jobs ...Job) error

	// Process locks one ready job of the given types, invokes fn and then
	// clears, buries or reschedules the job depending on the returned
	// status. It returns ErrNoJob when nothing is ready.
	Process(ctx context.Context, types []string, fn JobExecutorFunc) error

	Stats(ctx context.Context) ([]JobTypeStats, error)
}

// JobExecutorFunc attempts a job and returns it with the attempt recorded.
type JobExecutorFunc func(context.Context, Job) Job

type JobTypeStats struct {
	Type   string `json:"type"`
	Active int    `json:"active"`
	Dead   int    `json:"dead"`
}

// DeadJobManager gives access to jobs that ran out of attempts.
type DeadJobManager interface {
	DeadJobs(ctx context.Context, size, offset int) ([]Job, error)
	Resurrect(ctx context.Context, jobIDs []string) error
	ClearDeadJobs(ctx context.Context, jobIDs []string) error
}
