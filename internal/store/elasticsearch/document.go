package elasticsearch

import (
	"strings"
	"time"

	"github.com/goto/ticketsearch/core/ticket"
)

// recordDocument is the indexed form of a ticket.Record.
type recordDocument struct {
	ID             int64     `json:"id"`
	Number         int64     `json:"number"`
	MailboxID      int64     `json:"mailbox_id"`
	CustomerID     int64     `json:"customer_id,omitempty"`
	AssigneeID     *int64    `json:"assignee_id"`
	Status         int       `json:"status"`
	State          int       `json:"state"`
	Type           int       `json:"type"`
	ThreadsCount   int       `json:"threads_count"`
	HasAttachments bool      `json:"has_attachments"`
	Subject        string    `json:"subject"`
	Preview        string    `json:"preview"`
	BodyText       string    `json:"body_text"`
	CustomerName   string    `json:"customer_name"`
	CustomerEmail  string    `json:"customer_email"`
	ThreadFrom     string    `json:"thread_from"`
	ThreadTo       string    `json:"thread_to"`
	ThreadCc       string    `json:"thread_cc"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func newRecordDocument(rec ticket.Record) recordDocument {
	var from, to, cc []string
	for _, t := range rec.Threads {
		if t.From != "" {
			from = append(from, t.From)
		}
		if t.To != "" {
			to = append(to, t.To)
		}
		if t.Cc != "" {
			cc = append(cc, t.Cc)
		}
	}

	email := rec.CustomerEmail
	if email == "" {
		email = rec.Customer.Email
	}

	doc := recordDocument{
		ID:             rec.ID,
		Number:         rec.Number,
		MailboxID:      rec.MailboxID,
		CustomerID:     rec.CustomerID,
		Status:         int(rec.Status),
		State:          rec.State,
		Type:           int(rec.Type),
		ThreadsCount:   rec.ThreadsCount,
		HasAttachments: rec.HasAttachments,
		Subject:        rec.Subject,
		Preview:        rec.Preview,
		BodyText:       rec.BodyText(),
		CustomerName:   rec.Customer.FullName(),
		CustomerEmail:  email,
		ThreadFrom:     strings.Join(from, " "),
		ThreadTo:       strings.Join(to, " "),
		ThreadCc:       strings.Join(cc, " "),
		CreatedAt:      rec.CreatedAt.UTC(),
		UpdatedAt:      rec.UpdatedAt.UTC(),
	}
	if !rec.Unassigned() {
		id := rec.AssigneeID
		doc.AssigneeID = &id
	}
	if doc.ThreadsCount == 0 {
		doc.ThreadsCount = len(rec.Threads)
	}
	return doc
}
