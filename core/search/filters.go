package search

import (
	"time"

	"github.com/goto/ticketsearch/core/query"
	"github.com/goto/ticketsearch/core/ticket"
)

const (
	SortRelevance = "relevance"
	SortDateDesc  = "date_desc"
	SortDateAsc   = "date_asc"
)

const (
	RangeToday   = "today"
	RangeWeek    = "week"
	RangeMonth   = "month"
	RangeQuarter = "quarter"
	RangeYear    = "year"
)

const (
	FlagYes = "yes"
	FlagNo  = "no"
)

// Filters are the structured constraints applied next to the free text.
// Zero values mean "no constraint".
type Filters struct {
	Status      ticket.Status  `json:"status,omitempty"`
	State       int            `json:"state,omitempty"`
	DateRange   string         `json:"date_range,omitempty"`
	After       *time.Time     `json:"after,omitempty"`
	Before      *time.Time     `json:"before,omitempty"`
	Assignee    query.Assignee `json:"assignee"`
	MailboxID   int64          `json:"mailbox_id,omitempty"`
	Attachments string         `json:"attachments,omitempty"`
	HasReplies  string         `json:"has_replies,omitempty"`
	Type        ticket.Type    `json:"type,omitempty"`
	CustomerID  int64          `json:"customer_id,omitempty"`
	Subject     string         `json:"subject,omitempty"`
	Body        string         `json:"body,omitempty"`
	From        string         `json:"from,omitempty"`
	To          string         `json:"to,omitempty"`
	Sort        string         `json:"sort,omitempty"`
	Page        int            `json:"page,omitempty"`
}

// WithOperators overlays the operators found in the query. An operator
// wins over the caller supplied value for the same filter and last:
// replaces any other date constraint.
func (f Filters) WithOperators(p query.Parsed) Filters {
	if p.Status.IsValid() {
		f.Status = p.Status
	}
	if p.From != "" {
		f.From = p.From
	}
	if p.To != "" {
		f.To = p.To
	}
	if p.HasAttachment {
		f.Attachments = FlagYes
	}
	if p.Assignee.Kind != query.AssigneeAny {
		f.Assignee = p.Assignee
	}

	if p.LastApplied {
		f.DateRange = ""
		f.After, f.Before = p.After, p.Before
		return f
	}
	if p.After != nil {
		f.After = p.After
	}
	if p.Before != nil {
		f.Before = p.Before
	}
	return f
}

// Normalize resolves relative values against the acting user and now so
// that two equivalent requests produce identical filters.
func (f Filters) Normalize(userID int64, now time.Time) Filters {
	if start, ok := rangeStart(f.DateRange, now); ok {
		if f.After == nil || start.After(*f.After) {
			f.After = &start
		}
	}
	f.DateRange = ""

	if f.Assignee.Kind == query.AssigneeMe {
		f.Assignee = query.Assignee{Kind: query.AssigneeUser, UserID: userID}
	}
	if f.Attachments != FlagYes && f.Attachments != FlagNo {
		f.Attachments = ""
	}
	if f.HasReplies != FlagYes && f.HasReplies != FlagNo {
		f.HasReplies = ""
	}
	switch f.Sort {
	case SortDateAsc, SortDateDesc:
	default:
		f.Sort = SortRelevance
	}
	if f.Page < 1 {
		f.Page = 1
	}
	return f
}

func rangeStart(name string, now time.Time) (time.Time, bool) {
	switch name {
	case RangeToday:
		return query.ResolveDate("today", now)
	case RangeWeek:
		return query.ResolveDate("thisweek", now)
	case RangeMonth:
		return query.ResolveDate("thismonth", now)
	case RangeQuarter:
		return query.StartOfQuarter(now), true
	case RangeYear:
		return query.ResolveDate("thisyear", now)
	}
	return time.Time{}, false
}
