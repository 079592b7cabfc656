package ticket

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"
)

//go:generate mockery --name=Repository -r --case underscore --with-expecter --structname RecordRepository --filename record_repository.go --output=./mocks

type Repository interface {
	GetByID(ctx context.Context, id int64) (Record, error)
	// GetByIDs returns the records in the order of ids. Unknown ids are
	// skipped.
	GetByIDs(ctx context.Context, ids []int64) ([]Record, error)
	// ListBatch returns up to limit records with an id greater than afterID,
	// ordered by id.
	ListBatch(ctx context.Context, afterID int64, limit int) ([]Record, error)
	Count(ctx context.Context) (int64, error)
}

// Record is a helpdesk conversation together with the customer and
// thread data used for matching.
type Record struct {
	ID             int64     `json:"id"`
	Number         int64     `json:"number"`
	MailboxID      int64     `json:"mailbox_id"`
	Subject        string    `json:"subject"`
	Preview        string    `json:"preview"`
	Status         Status    `json:"status"`
	State          int       `json:"state"`
	Type           Type      `json:"type"`
	CustomerID     int64     `json:"customer_id"`
	CustomerEmail  string    `json:"customer_email"`
	Customer       Customer  `json:"customer"`
	AssigneeID     int64     `json:"assignee_id,omitempty"`
	HasAttachments bool      `json:"has_attachments"`
	ThreadsCount   int       `json:"threads_count"`
	Threads        []Thread  `json:"threads,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Unassigned reports whether nobody owns the record.
func (r Record) Unassigned() bool { return r.AssigneeID == 0 }

// BodyText joins the plain text of all customer and agent messages,
// truncated to MaxBodyTextLength bytes.
func (r Record) BodyText() string {
	var parts []string
	for _, t := range r.Threads {
		if !t.Type.Searchable() {
			continue
		}
		if txt := PlainText(t.Body); txt != "" {
			parts = append(parts, txt)
		}
	}
	return truncate(strings.Join(parts, " "), MaxBodyTextLength)
}

type Customer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Display renders the customer the way autocomplete shows it, e.g.
// "Jane Doe <jane@example.com>".
func (c Customer) Display() string {
	name := c.FullName()
	switch {
	case name == "":
		return c.Email
	case c.Email == "":
		return name
	default:
		return name + " <" + c.Email + ">"
	}
}

type Thread struct {
	ID             int64      `json:"id"`
	Type           ThreadType `json:"type"`
	Body           string     `json:"body"`
	From           string     `json:"from"`
	To             string     `json:"to"`
	Cc             string     `json:"cc"`
	Bcc            string     `json:"bcc"`
	HasAttachments bool       `json:"has_attachments"`
	CreatedAt      time.Time  `json:"created_at"`
}

type ThreadType int

const (
	ThreadTypeCustomer ThreadType = 1
	ThreadTypeMessage  ThreadType = 2
	ThreadTypeNote     ThreadType = 3
)

// Searchable reports whether the thread body takes part in body matching.
// Internal notes are excluded.
func (t ThreadType) Searchable() bool {
	return t == ThreadTypeCustomer || t == ThreadTypeMessage
}

type Type int

const (
	TypeEmail Type = 1
	TypePhone Type = 2
	TypeChat  Type = 3
)

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	// drop a trailing partial rune
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}
