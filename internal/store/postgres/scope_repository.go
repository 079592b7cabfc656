package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goto/ticketsearch/core/search"
)

// RoleAdmin is the host users.role value of administrators. Administrators
// see every mailbox.
const RoleAdmin = 2

// ScopeRepository reads mailbox visibility from the host's users and
// mailbox_user tables.
type ScopeRepository struct {
	client *Client
}

func NewScopeRepository(c *Client) (*ScopeRepository, error) {
	if c == nil {
		return nil, errNilPostgresClient
	}
	return &ScopeRepository{client: c}, nil
}

func (r *ScopeRepository) VisibleMailboxes(ctx context.Context, userID int64) (search.ScopeSet, error) {
	if userID <= 0 {
		return search.NewScopeSet(), nil
	}

	var role int
	if err := r.client.GetContext(ctx, &role, "SELECT role FROM users WHERE id = $1", userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return search.NewScopeSet(), nil
		}
		return search.ScopeSet{}, fmt.Errorf("get role of user %d: %w", userID, checkPostgresError(err))
	}

	query := "SELECT mailbox_id FROM mailbox_user WHERE user_id = $1"
	args := []interface{}{userID}
	if role == RoleAdmin {
		query, args = "SELECT id FROM mailboxes", nil
	}

	var ids []int64
	if err := r.client.SelectContext(ctx, &ids, query, args...); err != nil {
		return search.ScopeSet{}, fmt.Errorf("list mailboxes of user %d: %w", userID, checkPostgresError(err))
	}
	return search.NewScopeSet(ids...), nil
}
