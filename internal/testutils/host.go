package testutils

import (
	"context"
	"fmt"

	"github.com/goto/ticketsearch/core/ticket"
	"github.com/goto/ticketsearch/internal/store/postgres"
)

// hostSchema mirrors the subset of the helpdesk tables read by the search
// module.
var hostSchema = []string{
	`CREATE TABLE users (
		id   BIGINT PRIMARY KEY,
		role SMALLINT NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE mailboxes (
		id   BIGINT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE mailbox_user (
		mailbox_id BIGINT NOT NULL,
		user_id    BIGINT NOT NULL,
		PRIMARY KEY (mailbox_id, user_id)
	)`,
	`CREATE TABLE customers (
		id         BIGINT PRIMARY KEY,
		first_name TEXT,
		last_name  TEXT
	)`,
	`CREATE TABLE conversations (
		id              BIGINT PRIMARY KEY,
		number          BIGINT NOT NULL,
		mailbox_id      BIGINT NOT NULL,
		subject         TEXT,
		preview         TEXT,
		status          SMALLINT NOT NULL DEFAULT 1,
		state           SMALLINT NOT NULL DEFAULT 2,
		type            SMALLINT NOT NULL DEFAULT 1,
		customer_id     BIGINT,
		customer_email  TEXT,
		user_id         BIGINT,
		has_attachments BOOLEAN NOT NULL DEFAULT FALSE,
		threads_count   INTEGER NOT NULL DEFAULT 0,
		created_at      TIMESTAMPTZ NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE threads (
		id              BIGINT PRIMARY KEY,
		conversation_id BIGINT NOT NULL,
		type            SMALLINT NOT NULL,
		body            TEXT,
		"from"          TEXT,
		"to"            TEXT,
		cc              TEXT,
		bcc             TEXT,
		has_attachments BOOLEAN NOT NULL DEFAULT FALSE,
		created_at      TIMESTAMPTZ NOT NULL
	)`,
}

// InsertUser adds a host user that belongs to the given mailboxes.
func InsertUser(ctx context.Context, c *postgres.Client, userID int64, role int, mailboxIDs ...int64) error {
	if _, err := c.ExecContext(ctx, "INSERT INTO users (id, role) VALUES ($1, $2)", userID, role); err != nil {
		return fmt.Errorf("insert user %d: %w", userID, err)
	}
	for _, id := range mailboxIDs {
		if _, err := c.ExecContext(ctx,
			"INSERT INTO mailboxes (id) VALUES ($1) ON CONFLICT DO NOTHING", id,
		); err != nil {
			return fmt.Errorf("insert mailbox %d: %w", id, err)
		}
		if _, err := c.ExecContext(ctx,
			"INSERT INTO mailbox_user (mailbox_id, user_id) VALUES ($1, $2)", id, userID,
		); err != nil {
			return fmt.Errorf("insert mailbox user %d/%d: %w", id, userID, err)
		}
	}
	return nil
}

// InsertRecord writes rec with its customer and threads into the host
// tables. Thread ids are derived from the record id.
func InsertRecord(ctx context.Context, c *postgres.Client, rec ticket.Record) error {
	if rec.CustomerID != 0 {
		if _, err := c.ExecContext(ctx,
			`INSERT INTO customers (id, first_name, last_name) VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name`,
			rec.CustomerID, rec.Customer.FirstName, rec.Customer.LastName,
		); err != nil {
			return fmt.Errorf("insert customer %d: %w", rec.CustomerID, err)
		}
	}
	if _, err := c.ExecContext(ctx,
		"INSERT INTO mailboxes (id) VALUES ($1) ON CONFLICT DO NOTHING", rec.MailboxID,
	); err != nil {
		return fmt.Errorf("insert mailbox %d: %w", rec.MailboxID, err)
	}

	var (
		customerID interface{}
		assigneeID interface{}
	)
	if rec.CustomerID != 0 {
		customerID = rec.CustomerID
	}
	if rec.AssigneeID != 0 {
		assigneeID = rec.AssigneeID
	}

	status := rec.Status
	if status == ticket.StatusUnknown {
		status = ticket.StatusActive
	}
	recType := rec.Type
	if recType == 0 {
		recType = ticket.TypeEmail
	}

	if _, err := c.ExecContext(ctx,
		`INSERT INTO conversations (
			id, number, mailbox_id, subject, preview, status, state, type, customer_id,
			customer_email, user_id, has_attachments, threads_count, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		rec.ID, rec.Number, rec.MailboxID, rec.Subject, rec.Preview, int(status), rec.State, int(recType),
		customerID, rec.CustomerEmail, assigneeID, rec.HasAttachments, len(rec.Threads),
		rec.CreatedAt, rec.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert conversation %d: %w", rec.ID, err)
	}

	for i, t := range rec.Threads {
		id := t.ID
		if id == 0 {
			id = rec.ID*1000 + int64(i) + 1
		}
		createdAt := t.CreatedAt
		if createdAt.IsZero() {
			createdAt = rec.CreatedAt
		}
		if _, err := c.ExecContext(ctx,
			`INSERT INTO threads (id, conversation_id, type, body, "from", "to", cc, bcc, has_attachments, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			id, rec.ID, int(t.Type), t.Body, t.From, t.To, t.Cc, t.Bcc, t.HasAttachments, createdAt,
		); err != nil {
			return fmt.Errorf("insert thread %d: %w", id, err)
		}
	}
	return nil
}

// TruncateHost empties every host table.
func TruncateHost(ctx context.Context, c *postgres.Client) error {
	return c.ExecQueries(ctx, []string{
		"TRUNCATE threads, conversations, customers, mailbox_user, mailboxes, users",
	})
}
