package postgres

import (
	"database/sql"
	"strings"
	"time"

	"github.com/goto/ticketsearch/core/ticket"
)

type RecordModel struct {
	ID                int64          `db:"id"`
	Number            int64          `db:"number"`
	MailboxID         int64          `db:"mailbox_id"`
	Subject           sql.NullString `db:"subject"`
	Preview           sql.NullString `db:"preview"`
	Status            int            `db:"status"`
	State             int            `db:"state"`
	Type              int            `db:"type"`
	CustomerID        sql.NullInt64  `db:"customer_id"`
	CustomerEmail     sql.NullString `db:"customer_email"`
	AssigneeID        sql.NullInt64  `db:"user_id"`
	HasAttachments    bool           `db:"has_attachments"`
	ThreadsCount      int            `db:"threads_count"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
	CustomerFirstName sql.NullString `db:"customer_first_name"`
	CustomerLastName  sql.NullString `db:"customer_last_name"`
}

func (m RecordModel) toRecord() ticket.Record {
	return ticket.Record{
		ID:            m.ID,
		Number:        m.Number,
		MailboxID:     m.MailboxID,
		Subject:       m.Subject.String,
		Preview:       m.Preview.String,
		Status:        ticket.Status(m.Status),
		State:         m.State,
		Type:          ticket.Type(m.Type),
		CustomerID:    m.CustomerID.Int64,
		CustomerEmail: m.CustomerEmail.String,
		Customer: ticket.Customer{
			ID:        m.CustomerID.Int64,
			FirstName: m.CustomerFirstName.String,
			LastName:  m.CustomerLastName.String,
			Email:     m.CustomerEmail.String,
		},
		AssigneeID:     m.AssigneeID.Int64,
		HasAttachments: m.HasAttachments,
		ThreadsCount:   m.ThreadsCount,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

type ThreadModel struct {
	ID             int64          `db:"id"`
	ConversationID int64          `db:"conversation_id"`
	Type           int            `db:"type"`
	Body           sql.NullString `db:"body"`
	From           sql.NullString `db:"from"`
	To             sql.NullString `db:"to"`
	Cc             sql.NullString `db:"cc"`
	Bcc            sql.NullString `db:"bcc"`
	HasAttachments bool           `db:"has_attachments"`
	CreatedAt      time.Time      `db:"created_at"`
}

func (m ThreadModel) toThread() ticket.Thread {
	return ticket.Thread{
		ID:             m.ID,
		Type:           ticket.ThreadType(m.Type),
		Body:           m.Body.String,
		From:           m.From.String,
		To:             m.To.String,
		Cc:             m.Cc.String,
		Bcc:            m.Bcc.String,
		HasAttachments: m.HasAttachments,
		CreatedAt:      m.CreatedAt,
	}
}

// IndexModel is a row of the search_index projection.
type IndexModel struct {
	ConversationID  int64     `db:"conversation_id"`
	MailboxID       int64     `db:"mailbox_id"`
	Number          int64     `db:"number"`
	CustomerID      int64     `db:"customer_id"`
	Subject         string    `db:"subject"`
	CustomerEmail   string    `db:"customer_email"`
	CustomerName    string    `db:"customer_name"`
	Preview         string    `db:"preview"`
	BodyText        string    `db:"body_text"`
	ThreadFrom      string    `db:"thread_from"`
	ThreadTo        string    `db:"thread_to"`
	Status          int       `db:"status"`
	State           int       `db:"state"`
	RecordCreatedAt time.Time `db:"record_created_at"`
	RecordUpdatedAt time.Time `db:"record_updated_at"`
}

func newIndexModel(rec ticket.Record) IndexModel {
	var from, to []string
	for _, t := range rec.Threads {
		if t.From != "" {
			from = append(from, t.From)
		}
		if t.To != "" {
			to = append(to, t.To)
		}
	}

	email := rec.CustomerEmail
	if email == "" {
		email = rec.Customer.Email
	}

	return IndexModel{
		ConversationID:  rec.ID,
		MailboxID:       rec.MailboxID,
		Number:          rec.Number,
		CustomerID:      rec.CustomerID,
		Subject:         rec.Subject,
		CustomerEmail:   email,
		CustomerName:    rec.Customer.FullName(),
		Preview:         rec.Preview,
		BodyText:        rec.BodyText(),
		ThreadFrom:      strings.Join(from, " "),
		ThreadTo:        strings.Join(to, " "),
		Status:          int(rec.Status),
		State:           rec.State,
		RecordCreatedAt: rec.CreatedAt,
		RecordUpdatedAt: rec.UpdatedAt,
	}
}
