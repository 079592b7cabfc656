package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/goto/salt/log"
	"github.com/goto/ticketsearch/core/search"
	"github.com/goto/ticketsearch/core/ticket"
	"github.com/goto/ticketsearch/internal/store/postgres"
	"github.com/goto/ticketsearch/internal/testutils"
	_ "github.com/jackc/pgx/v4/stdlib"
)

func newTestClient(t *testing.T, logger log.Logger) (*postgres.Client, error) {
	t.Helper()

	port, err := testutils.RunTestPG(t, logger)
	if err != nil {
		return nil, err
	}

	pgClient, err := postgres.NewClient(postgres.Config{
		Host:     testutils.PGHost,
		Port:     port,
		Name:     testutils.PGName,
		User:     testutils.PGUsername,
		Password: testutils.PGPassword,
	})
	if err != nil {
		return nil, err
	}

	if err := testutils.RunMigrationsWithClient(t, pgClient); err != nil {
		return nil, err
	}

	t.Cleanup(func() {
		if err := pgClient.Close(); err != nil {
			t.Fatal(err)
		}
	})

	return pgClient, nil
}

func day(month time.Month, d int) time.Time {
	return time.Date(2024, month, d, 9, 0, 0, 0, time.UTC)
}

// fixtureRecords are spread over three mailboxes. Record 2 mentions
// "invoice" only in an internal note.
func fixtureRecords() []ticket.Record {
	return []ticket.Record{
		{
			ID: 1, Number: 101, MailboxID: 1,
			Subject: "Invoice overdue for March", Preview: "My invoice is late",
			Status: ticket.StatusActive, CustomerID: 11, CustomerEmail: "john.smith@acme.io",
			Customer:   ticket.Customer{ID: 11, FirstName: "John", LastName: "Smith", Email: "john.smith@acme.io"},
			AssigneeID: 5, HasAttachments: true,
			Threads: []ticket.Thread{
				{Type: ticket.ThreadTypeCustomer, Body: "<p>My invoice is late</p>", From: "john.smith@acme.io", To: "support@desk.io"},
			},
			CreatedAt: day(time.March, 1), UpdatedAt: day(time.March, 2),
		},
		{
			ID: 2, Number: 102, MailboxID: 1,
			Subject: "Password reset", Preview: "I cannot login",
			Status: ticket.StatusClosed, CustomerID: 12, CustomerEmail: "jane@example.com",
			Customer: ticket.Customer{ID: 12, FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"},
			Threads: []ticket.Thread{
				{Type: ticket.ThreadTypeCustomer, Body: "I cannot login", From: "jane@example.com", To: "support@desk.io"},
				{Type: ticket.ThreadTypeMessage, Body: "Try resetting", From: "support@desk.io", To: "jane@example.com"},
				{Type: ticket.ThreadTypeNote, Body: "invoice question in a note"},
			},
			CreatedAt: day(time.April, 1), UpdatedAt: day(time.April, 5),
		},
		{
			ID: 3, Number: 103, MailboxID: 2,
			Subject: "Invoice copy request", Preview: "please send invoice copy",
			Status: ticket.StatusPending, CustomerID: 13, CustomerEmail: "jon@smyth.org",
			Customer: ticket.Customer{ID: 13, FirstName: "Jon", LastName: "Smyth", Email: "jon@smyth.org"},
			Threads: []ticket.Thread{
				{Type: ticket.ThreadTypeCustomer, Body: "please send invoice copy", From: "jon@smyth.org", To: "billing@desk.io"},
			},
			CreatedAt: day(time.May, 1), UpdatedAt: day(time.May, 10),
		},
		{
			ID: 4, Number: 104, MailboxID: 3,
			Subject: "Invoice in another mailbox", Preview: "hidden",
			Status: ticket.StatusActive, CustomerID: 14, CustomerEmail: "eve@other.net",
			Customer: ticket.Customer{ID: 14, FirstName: "Eve", LastName: "Other", Email: "eve@other.net"},
			Threads: []ticket.Thread{
				{Type: ticket.ThreadTypeCustomer, Body: "invoice", From: "eve@other.net"},
			},
			CreatedAt: day(time.May, 2), UpdatedAt: day(time.May, 3),
		},
	}
}

func seedRecords(ctx context.Context, c *postgres.Client) error {
	if err := testutils.TruncateHost(ctx, c); err != nil {
		return err
	}
	for _, rec := range fixtureRecords() {
		if err := testutils.InsertRecord(ctx, c, rec); err != nil {
			return err
		}
	}
	return nil
}

func itemIDs(page search.ResultPage) []int64 {
	ids := make([]int64, 0, len(page.Items))
	for _, it := range page.Items {
		ids = append(ids, it.RecordID)
	}
	return ids
}
