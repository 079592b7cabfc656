package postgres

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/goto/ticketsearch/core/ticket"
	"github.com/lib/pq"
)

// SuggestionRepository answers autocomplete lookups against the live
// tables, restricted to a set of mailboxes.
type SuggestionRepository struct {
	client *Client
}

func NewSuggestionRepository(c *Client) (*SuggestionRepository, error) {
	if c == nil {
		return nil, errNilPostgresClient
	}
	return &SuggestionRepository{client: c}, nil
}

func (r *SuggestionRepository) Customers(ctx context.Context, mailboxIDs []int64, prefix string, limit int) ([]ticket.Customer, error) {
	pattern := prefixPattern(prefix)
	builder := sq.Select("cu.id", "cu.first_name", "cu.last_name", "MIN(c.customer_email) AS email").
		From("customers cu").
		Join("conversations c ON c.customer_id = cu.id").
		Where(sq.Expr("c.mailbox_id = ANY(?)", pq.Array(mailboxIDs))).
		Where(sq.Or{
			sq.ILike{"cu.first_name": pattern},
			sq.ILike{"cu.last_name": pattern},
			sq.Expr("(COALESCE(cu.first_name, '') || ' ' || COALESCE(cu.last_name, '')) ILIKE ?", pattern),
			sq.ILike{"c.customer_email": pattern},
		}).
		GroupBy("cu.id", "cu.first_name", "cu.last_name").
		OrderBy("MAX(c.updated_at) DESC", "cu.id ASC").
		Limit(uint64(limit))

	query, args, err := buildSQL(builder)
	if err != nil {
		return nil, fmt.Errorf("build customer suggestions query: %w", err)
	}

	var rows []struct {
		ID        int64          `db:"id"`
		FirstName sql.NullString `db:"first_name"`
		LastName  sql.NullString `db:"last_name"`
		Email     sql.NullString `db:"email"`
	}
	if err := r.client.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("customer suggestions: %w", checkPostgresError(err))
	}

	customers := make([]ticket.Customer, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, ticket.Customer{
			ID:        row.ID,
			FirstName: row.FirstName.String,
			LastName:  row.LastName.String,
			Email:     row.Email.String,
		})
	}
	return customers, nil
}

func (r *SuggestionRepository) RecordNumbers(ctx context.Context, mailboxIDs []int64, prefix string, limit int) ([]int64, error) {
	query, args, err := buildSQL(sq.Select("c.number").
		From("conversations c").
		Where(sq.Expr("c.mailbox_id = ANY(?)", pq.Array(mailboxIDs))).
		Where(sq.Like{"CAST(c.number AS TEXT)": prefixPattern(prefix)}).
		OrderBy("c.number ASC").
		Limit(uint64(limit)))
	if err != nil {
		return nil, fmt.Errorf("build number suggestions query: %w", err)
	}

	numbers := []int64{}
	if err := r.client.SelectContext(ctx, &numbers, query, args...); err != nil {
		return nil, fmt.Errorf("number suggestions: %w", checkPostgresError(err))
	}
	return numbers, nil
}

func (r *SuggestionRepository) Subjects(ctx context.Context, mailboxIDs []int64, prefix string, limit int) ([]string, error) {
	query, args, err := buildSQL(sq.Select("c.subject").
		From("conversations c").
		Where(sq.Expr("c.mailbox_id = ANY(?)", pq.Array(mailboxIDs))).
		Where(sq.ILike{"c.subject": containsPattern(prefix)}).
		GroupBy("c.subject").
		OrderBy("MAX(c.updated_at) DESC").
		Limit(uint64(limit)))
	if err != nil {
		return nil, fmt.Errorf("build subject suggestions query: %w", err)
	}

	subjects := []string{}
	if err := r.client.SelectContext(ctx, &subjects, query, args...); err != nil {
		return nil, fmt.Errorf("subject suggestions: %w", checkPostgresError(err))
	}
	return subjects, nil
}
