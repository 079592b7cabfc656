package pgq

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/goto/ticketsearch/pkg/worker"
	"github.com/oklog/ulid/v2"
)

func (p *Processor) withTx(ctx context.Context, fn func(context.Context, *sql.Tx) error) (err error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("run with tx: %w", err)
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row rowScanner) (worker.Job, error) {
	var (
		job           worker.Job
		id            string
		lastErr       sql.NullString
		lastAttemptAt sql.NullTime
	)
	if err := row.Scan(
		&id, &job.Type, &job.RunAt, &job.Payload, &job.CreatedAt,
		&job.UpdatedAt, &job.AttemptsDone, &lastAttemptAt, &lastErr,
	); err != nil {
		return worker.Job{}, fmt.Errorf("scan row: %w", err)
	}
	return finishScan(job, id, lastAttemptAt, lastErr)
}

func scanDeadJob(row rowScanner) (worker.Job, error) {
	var (
		job           worker.Job
		id            string
		lastErr       sql.NullString
		lastAttemptAt sql.NullTime
	)
	if err := row.Scan(
		&id, &job.Type, &job.Payload, &job.CreatedAt,
		&job.UpdatedAt, &job.AttemptsDone, &lastAttemptAt, &lastErr,
	); err != nil {
		return worker.Job{}, fmt.Errorf("scan row: %w", err)
	}
	return finishScan(job, id, lastAttemptAt, lastErr)
}

func finishScan(job worker.Job, id string, lastAttemptAt sql.NullTime, lastErr sql.NullString) (worker.Job, error) {
	uid, err := ulid.ParseStrict(id)
	if err != nil {
		return worker.Job{}, fmt.Errorf("scan row: parse ULID: %w", err)
	}

	job.ID = uid
	job.LastAttemptAt = lastAttemptAt.Time
	job.LastError = lastErr.String
	return job, nil
}

func (*Processor) pickupJob(ctx context.Context, r sq.BaseRunner, types []string) (worker.Job, error) {
	row := sq.Select(jobColumns...).
		From(jobsTable).
		Where(sq.Eq{"type": types}).
		Where(sq.Expr("run_at <= current_timestamp")).
		OrderBy("id ASC").
		Limit(1).
		Suffix("FOR UPDATE SKIP LOCKED").
		PlaceholderFormat(sq.Dollar).
		RunWith(r).
		QueryRowContext(ctx)

	return scanJob(row)
}

func (*Processor) clearJob(ctx context.Context, r sq.BaseRunner, job worker.Job) error {
	res, err := sq.Delete(jobsTable).
		Where(sq.Eq{"id": job.ID.String()}).
		PlaceholderFormat(sq.Dollar).
		RunWith(r).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("clear job: %w", err)
	}

	return expectOneRow(res, "clear job")
}

func (p *Processor) markJobDead(ctx context.Context, r sq.BaseRunner, job worker.Job) error {
	_, err := sq.Insert(deadJobsTable).
		Columns(deadJobColumns...).
		Values(
			job.ID.String(), job.Type, job.Payload, job.CreatedAt.UTC(),
			job.UpdatedAt.UTC(), job.AttemptsDone, job.LastAttemptAt.UTC(), job.LastError,
		).
		PlaceholderFormat(sq.Dollar).
		RunWith(r).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("mark job as dead: %w", err)
	}

	if err := p.clearJob(ctx, r, job); err != nil {
		return fmt.Errorf("mark job as dead: %w", err)
	}
	return nil
}

func (*Processor) setupRetry(ctx context.Context, r sq.BaseRunner, job worker.Job) error {
	res, err := sq.Update(jobsTable).
		Where(sq.Eq{"id": job.ID.String()}).
		Set("run_at", job.RunAt.UTC()).
		Set("updated_at", job.UpdatedAt.UTC()).
		Set("attempts_done", job.AttemptsDone).
		Set("last_error", job.LastError).
		Set("last_attempt_at", job.LastAttemptAt.UTC()).
		PlaceholderFormat(sq.Dollar).
		RunWith(r).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("setup job retry: %w", err)
	}

	return expectOneRow(res, "setup job retry")
}

func resurrectDeadJobs(ctx context.Context, r sq.BaseRunner, jobIDs []string) error {
	selectDead := sq.Select(
		"id", "type", "current_timestamp", "payload", "created_at",
		"current_timestamp", "0", "last_attempt_at", "last_error",
	).
		From(deadJobsTable).
		Where(sq.Eq{"id": jobIDs})

	_, err := sq.Insert(jobsTable).
		Columns(jobColumns...).
		Select(selectDead).
		PlaceholderFormat(sq.Dollar).
		RunWith(r).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("requeue dead jobs: %w", err)
	}
	return nil
}

func clearDeadJobs(ctx context.Context, r sq.BaseRunner, jobIDs []string) error {
	_, err := sq.Delete(deadJobsTable).
		Where(sq.Eq{"id": jobIDs}).
		PlaceholderFormat(sq.Dollar).
		RunWith(r).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("delete dead jobs: %w", err)
	}
	return nil
}

func expectOneRow(res sql.Result, op string) error {
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: check rows affected: %w", op, err)
	}
	if rowsAffected != 1 {
		return fmt.Errorf("%s: rows affected: %d", op, rowsAffected)
	}
	return nil
}
