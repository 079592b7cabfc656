package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/goto/ticketsearch/core/history"
)

const historyTable = "search_history"

// HistoryRepository is a type that manages search history operation to
// the primary database
type HistoryRepository struct {
	client *Client
}

func NewHistoryRepository(c *Client) (*HistoryRepository, error) {
	if c == nil {
		return nil, errNilPostgresClient
	}
	return &HistoryRepository{client: c}, nil
}

func (r *HistoryRepository) Insert(ctx context.Context, e history.Entry) error {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query, args, err := buildSQL(sq.Insert(historyTable).
		Columns("user_id", "query", "results_count", "created_at").
		Values(e.UserID, e.Query, e.ResultCount, createdAt.UTC()))
	if err != nil {
		return fmt.Errorf("build insert history query: %w", err)
	}
	if _, err := r.client.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert history entry: %w", checkPostgresError(err))
	}
	return nil
}

func (r *HistoryRepository) TrimUser(ctx context.Context, userID int64, keep int) error {
	const query = `DELETE FROM search_history
		WHERE user_id = $1 AND id NOT IN (
			SELECT id FROM search_history WHERE user_id = $1
			ORDER BY created_at DESC, id DESC LIMIT $2
		)`
	if _, err := r.client.ExecContext(ctx, query, userID, keep); err != nil {
		return fmt.Errorf("trim history of user %d: %w", userID, checkPostgresError(err))
	}
	return nil
}

func (r *HistoryRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]history.Entry, error) {
	query, args, err := buildSQL(sq.Select("id", "user_id", "query", "results_count", "created_at").
		From(historyTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)))
	if err != nil {
		return nil, fmt.Errorf("build list history query: %w", err)
	}

	entries := []history.Entry{}
	if err := r.client.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list history of user %d: %w", userID, checkPostgresError(err))
	}
	return entries, nil
}

func (r *HistoryRepository) DeleteByUser(ctx context.Context, userID int64) error {
	query, args, err := buildSQL(sq.Delete(historyTable).Where(sq.Eq{"user_id": userID}))
	if err != nil {
		return fmt.Errorf("build delete history query: %w", err)
	}
	if _, err := r.client.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete history of user %d: %w", userID, checkPostgresError(err))
	}
	return nil
}

func (r *HistoryRepository) Stats(ctx context.Context, since time.Time, topN int) (history.Statistics, error) {
	const totalsQuery = `SELECT
			COUNT(*) AS total_searches,
			COUNT(DISTINCT query) AS unique_queries,
			COUNT(*) FILTER (WHERE created_at >= $1) AS searches_today
		FROM search_history`

	var totals struct {
		TotalSearches int64 `db:"total_searches"`
		UniqueQueries int64 `db:"unique_queries"`
		SearchesToday int64 `db:"searches_today"`
	}
	if err := r.client.GetContext(ctx, &totals, totalsQuery, since.UTC()); err != nil {
		return history.Statistics{}, fmt.Errorf("count history: %w", checkPostgresError(err))
	}

	query, args, err := buildSQL(sq.Select("query", "COUNT(*) AS count").
		From(historyTable).
		GroupBy("query").
		OrderBy("count DESC", "query ASC").
		Limit(uint64(topN)))
	if err != nil {
		return history.Statistics{}, fmt.Errorf("build top queries query: %w", err)
	}

	top := []history.QueryCount{}
	if err := r.client.SelectContext(ctx, &top, query, args...); err != nil {
		return history.Statistics{}, fmt.Errorf("top queries: %w", checkPostgresError(err))
	}

	return history.Statistics{
		TotalSearches: totals.TotalSearches,
		UniqueQueries: totals.UniqueQueries,
		SearchesToday: totals.SearchesToday,
		TopQueries:    top,
	}, nil
}

func (r *HistoryRepository) FrequentQueries(ctx context.Context, flt history.QueryFilter) ([]string, error) {
	builder := sq.Select("query").
		From(historyTable).
		Where(sq.Gt{"results_count": 0}).
		GroupBy("query").
		OrderBy("COUNT(*) DESC", "MAX(created_at) DESC").
		Limit(uint64(flt.Limit))
	if flt.UserID != 0 {
		builder = builder.Where(sq.Eq{"user_id": flt.UserID})
	}
	if flt.Prefix != "" {
		builder = builder.Where(sq.ILike{"query": prefixPattern(flt.Prefix)})
	}

	query, args, err := buildSQL(builder)
	if err != nil {
		return nil, fmt.Errorf("build frequent queries query: %w", err)
	}

	queries := []string{}
	if err := r.client.SelectContext(ctx, &queries, query, args...); err != nil {
		return nil, fmt.Errorf("frequent queries: %w", checkPostgresError(err))
	}
	return queries, nil
}
