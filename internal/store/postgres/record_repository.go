package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/goto/ticketsearch/core/ticket"
	"github.com/lib/pq"
)

// RecordRepository reads helpdesk records from the host's live tables.
// It never writes to them.
type RecordRepository struct {
	client *Client
}

func NewRecordRepository(c *Client) (*RecordRepository, error) {
	if c == nil {
		return nil, errNilPostgresClient
	}
	return &RecordRepository{client: c}, nil
}

func (r *RecordRepository) GetByID(ctx context.Context, id int64) (ticket.Record, error) {
	if id == 0 {
		return ticket.Record{}, ticket.ErrEmptyID
	}

	query, args, err := buildSQL(r.selectRecords().Where(sq.Eq{"c.id": id}))
	if err != nil {
		return ticket.Record{}, fmt.Errorf("build get record query: %w", err)
	}

	var rm RecordModel
	if err := r.client.GetContext(ctx, &rm, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ticket.Record{}, ticket.NotFoundError{RecordID: id}
		}
		return ticket.Record{}, fmt.Errorf("get record %d: %w", id, checkPostgresError(err))
	}

	recs, err := r.withThreads(ctx, []RecordModel{rm})
	if err != nil {
		return ticket.Record{}, err
	}
	return recs[0], nil
}

func (r *RecordRepository) GetByIDs(ctx context.Context, ids []int64) ([]ticket.Record, error) {
	if len(ids) == 0 {
		return []ticket.Record{}, nil
	}

	query, args, err := buildSQL(r.selectRecords().Where(sq.Expr("c.id = ANY(?)", pq.Array(ids))))
	if err != nil {
		return nil, fmt.Errorf("build get records query: %w", err)
	}

	var models []RecordModel
	if err := r.client.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("get records: %w", checkPostgresError(err))
	}

	recs, err := r.withThreads(ctx, models)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]ticket.Record, len(recs))
	for _, rec := range recs {
		byID[rec.ID] = rec
	}
	ordered := make([]ticket.Record, 0, len(recs))
	for _, id := range ids {
		if rec, ok := byID[id]; ok {
			ordered = append(ordered, rec)
			delete(byID, id)
		}
	}
	return ordered, nil
}

func (r *RecordRepository) ListBatch(ctx context.Context, afterID int64, limit int) ([]ticket.Record, error) {
	if limit <= 0 {
		limit = DefaultMaxResultSize
	}

	builder := r.selectRecords().
		Where(sq.Gt{"c.id": afterID}).
		OrderBy("c.id ASC").
		Limit(uint64(limit))
	query, args, err := buildSQL(builder)
	if err != nil {
		return nil, fmt.Errorf("build list records query: %w", err)
	}

	var models []RecordModel
	if err := r.client.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("list records after %d: %w", afterID, checkPostgresError(err))
	}
	return r.withThreads(ctx, models)
}

func (r *RecordRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.client.GetContext(ctx, &total, "SELECT COUNT(*) FROM conversations"); err != nil {
		return 0, fmt.Errorf("count records: %w", checkPostgresError(err))
	}
	return total, nil
}

func (r *RecordRepository) selectRecords() sq.SelectBuilder {
	return sq.Select(
		"c.id", "c.number", "c.mailbox_id", "c.subject", "c.preview",
		"c.status", "c.state", "c.type", "c.customer_id", "c.customer_email",
		"c.user_id", "c.has_attachments", "c.threads_count", "c.created_at", "c.updated_at",
		"cu.first_name AS customer_first_name", "cu.last_name AS customer_last_name",
	).
		From("conversations c").
		LeftJoin("customers cu ON cu.id = c.customer_id")
}

func (r *RecordRepository) withThreads(ctx context.Context, models []RecordModel) ([]ticket.Record, error) {
	recs := make([]ticket.Record, 0, len(models))
	if len(models) == 0 {
		return recs, nil
	}

	ids := make([]int64, 0, len(models))
	for _, m := range models {
		ids = append(ids, m.ID)
	}

	builder := sq.Select(
		"id", "conversation_id", "type", "body", `"from"`, `"to"`, "cc", "bcc", "has_attachments", "created_at",
	).
		From("threads").
		Where(sq.Expr("conversation_id = ANY(?)", pq.Array(ids))).
		OrderBy("conversation_id", "created_at", "id")
	query, args, err := buildSQL(builder)
	if err != nil {
		return nil, fmt.Errorf("build list threads query: %w", err)
	}

	var threads []ThreadModel
	if err := r.client.SelectContext(ctx, &threads, query, args...); err != nil {
		return nil, fmt.Errorf("list threads: %w", checkPostgresError(err))
	}

	byRecord := map[int64][]ticket.Thread{}
	for _, t := range threads {
		byRecord[t.ConversationID] = append(byRecord[t.ConversationID], t.toThread())
	}
	for _, m := range models {
		rec := m.toRecord()
		rec.Threads = byRecord[m.ID]
		recs = append(recs, rec)
	}
	return recs, nil
}
