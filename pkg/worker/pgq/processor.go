package pgq

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/goto/ticketsearch/pkg/worker"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	_ "github.com/newrelic/go-agent/v3/integrations/nrpgx" // register instrumented DB driver
	"go.nhat.io/otelsql"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
)

const (
	pgDriverName  = "nrpgx"
	jobsTable     = "jobs_queue"
	deadJobsTable = "dead_jobs"
	instanceName  = "pgq"
)

const statsQuery = `SELECT type, SUM(active), SUM(dead)
FROM (
	SELECT type, 1 AS active, 0 AS dead FROM jobs_queue
	UNION ALL
	SELECT type, 0, 1 FROM dead_jobs
) AS j
GROUP BY type
ORDER BY type`

var jobColumns = []string{
	"id", "type", "run_at", "payload", "created_at",
	"updated_at", "attempts_done", "last_attempt_at", "last_error",
}

var deadJobColumns = []string{
	"id", "type", "payload", "created_at",
	"updated_at", "attempts_done", "last_attempt_at", "last_error",
}

// Processor is a worker.JobProcessor and worker.DeadJobManager backed by
// the jobs_queue and dead_jobs tables.
type Processor struct {
	db *sql.DB
}

func NewProcessor(ctx context.Context, cfg Config) (*Processor, error) {
	db, err := openInstrumented(ctx, cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("new pgq processor: %w", err)
	}

	applyPoolLimits(db, cfg)
	return &Processor{db: db}, nil
}

// NewProcessorWithDB uses an already opened handle, typically the one of
// the search database.
func NewProcessorWithDB(db *sql.DB) *Processor {
	return &Processor{db: db}
}

// openInstrumented opens dsn through the New Relic pgx driver wrapped with
// otel spans and connection pool stats.
func openInstrumented(ctx context.Context, dsn string) (*sql.DB, error) {
	driverName, err := otelsql.Register(pgDriverName,
		otelsql.TraceQueryWithoutArgs(),
		otelsql.TraceRowsClose(),
		otelsql.TraceRowsAffected(),
		otelsql.WithSystem(semconv.DBSystemPostgreSQL),
		otelsql.WithInstanceName(instanceName),
	)
	if err != nil {
		return nil, fmt.Errorf("register driver: %w", err)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := otelsql.RecordStats(db,
		otelsql.WithSystem(semconv.DBSystemPostgreSQL),
		otelsql.WithInstanceName(instanceName),
	); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("record stats: %w", err)
	}

	return db, nil
}

func applyPoolLimits(db *sql.DB, cfg Config) {
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if lifetime := cfg.ConnMaxLifetimeWithJitter(); lifetime > 0 {
		db.SetConnMaxLifetime(lifetime)
	}
}

// Enqueue inserts all jobs in a single statement. A duplicate job id
// rejects the whole batch with worker.ErrJobExists.
func (p *Processor) Enqueue(ctx context.Context, jobs ...worker.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	insert := sq.Insert(jobsTable).
		Columns("id", "type", "run_at", "payload", "created_at", "updated_at").
		PlaceholderFormat(sq.Dollar)
	for _, j := range jobs {
		insert = insert.Values(j.ID.String(), j.Type, j.RunAt.UTC(), j.Payload, j.CreatedAt.UTC(), j.UpdatedAt.UTC())
	}

	if _, err := insert.RunWith(p.db).ExecContext(ctx); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("enqueue jobs: %w: %s", worker.ErrJobExists, err.Error())
		}
		return fmt.Errorf("enqueue jobs: %w", err)
	}
	return nil
}

// Process locks one due job of the given types, runs fn on it and settles
// the outcome in the same transaction.
func (p *Processor) Process(ctx context.Context, types []string, fn worker.JobExecutorFunc) error {
	if err := p.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		job, err := p.pickupJob(ctx, tx, types)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("pickup job: %w", worker.ErrNoJob)
		}
		if err != nil {
			return fmt.Errorf("pickup job: %w", err)
		}

		return p.settle(ctx, tx, fn(ctx, job))
	}); err != nil {
		return fmt.Errorf("pgq process: %w", err)
	}
	return nil
}

func (p *Processor) settle(ctx context.Context, tx *sql.Tx, job worker.Job) error {
	switch job.Status {
	case worker.StatusDone:
		return p.clearJob(ctx, tx, job)
	case worker.StatusDead:
		return p.markJobDead(ctx, tx, job)
	default:
		return p.setupRetry(ctx, tx, job)
	}
}

// Stats counts active and dead jobs per type, ordered by type.
func (p *Processor) Stats(ctx context.Context) ([]worker.JobTypeStats, error) {
	rows, err := p.db.QueryContext(ctx, statsQuery)
	if err != nil {
		return nil, fmt.Errorf("pgq stats: run query: %w", err)
	}
	defer rows.Close()

	var stats []worker.JobTypeStats
	for rows.Next() {
		var st worker.JobTypeStats
		if err := rows.Scan(&st.Type, &st.Active, &st.Dead); err != nil {
			return nil, fmt.Errorf("pgq stats: scan row: %w", err)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgq stats: scan rows: %w", err)
	}

	return stats, nil
}

func (p *Processor) DeadJobs(ctx context.Context, size, offset int) ([]worker.Job, error) {
	query := sq.Select(deadJobColumns...).
		From(deadJobsTable).
		OrderBy("id ASC").
		Limit(uint64(size)).
		Offset(uint64(offset))

	rows, err := query.PlaceholderFormat(sq.Dollar).
		RunWith(p.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list dead jobs: run query: %w", err)
	}
	defer rows.Close()

	var deadJobs []worker.Job
	for rows.Next() {
		job, err := scanDeadJob(rows)
		if err != nil {
			return nil, fmt.Errorf("list dead jobs: %w", err)
		}
		deadJobs = append(deadJobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list dead jobs: scan rows: %w", err)
	}

	return deadJobs, nil
}

// Resurrect moves dead jobs back into the queue, ready to run right away
// with a fresh attempt budget.
func (p *Processor) Resurrect(ctx context.Context, jobIDs []string) error {
	if len(jobIDs) == 0 {
		return nil
	}

	err := p.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := resurrectDeadJobs(ctx, tx, jobIDs); err != nil {
			return err
		}
		return clearDeadJobs(ctx, tx, jobIDs)
	})
	if err != nil {
		return fmt.Errorf("resurrect dead jobs: %w", err)
	}
	return nil
}

func (p *Processor) ClearDeadJobs(ctx context.Context, jobIDs []string) error {
	if len(jobIDs) == 0 {
		return nil
	}

	if err := clearDeadJobs(ctx, p.db, jobIDs); err != nil {
		return fmt.Errorf("clear dead jobs: %w", err)
	}
	return nil
}

func (p *Processor) Close() error { return p.db.Close() }

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
