package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/goto/ticketsearch/core/query"
	"github.com/goto/ticketsearch/core/search"
	"github.com/goto/ticketsearch/core/ticket"
	"github.com/spf13/cobra"
)

func prettyPrint(i interface{}) string {
	s, _ := json.MarshalIndent(i, "", "\t")
	return string(s)
}

var typeByName = map[string]ticket.Type{
	"email": ticket.TypeEmail,
	"phone": ticket.TypePhone,
	"chat":  ticket.TypeChat,
}

// filterFlags holds the raw values of the search filter flags.
type filterFlags struct {
	status      string
	state       int
	dateRange   string
	after       string
	before      string
	assignee    string
	mailboxID   int64
	attachments string
	hasReplies  string
	recordType  string
	customerID  int64
	subject     string
	body        string
	from        string
	to          string
	sort        string
	page        int
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.status, "status", "", "record status: active, pending, closed or spam")
	flags.IntVar(&f.state, "state", 0, "record state code")
	flags.StringVar(&f.dateRange, "date-range", "", "today, week, month, quarter or year")
	flags.StringVar(&f.after, "after", "", "created on or after a date expression, e.g. 2024-03-01 or yesterday")
	flags.StringVar(&f.before, "before", "", "created on or before a date expression")
	flags.StringVar(&f.assignee, "assignee", "", "me, unassigned or a user id")
	flags.Int64Var(&f.mailboxID, "mailbox", 0, "restrict to one mailbox")
	flags.StringVar(&f.attachments, "attachments", "", "yes or no")
	flags.StringVar(&f.hasReplies, "has-replies", "", "yes or no")
	flags.StringVar(&f.recordType, "type", "", "email, phone or chat")
	flags.Int64Var(&f.customerID, "customer", 0, "customer id")
	flags.StringVar(&f.subject, "subject", "", "subject contains")
	flags.StringVar(&f.body, "body", "", "body contains")
	flags.StringVar(&f.from, "from", "", "sender email fragment")
	flags.StringVar(&f.to, "to", "", "recipient email fragment")
	flags.StringVar(&f.sort, "sort", search.SortRelevance, "relevance, date_desc or date_asc")
	flags.IntVarP(&f.page, "page", "p", 1, "page number")
}

// filters validates the flag values and converts them. Date expressions
// are resolved against now.
func (f filterFlags) filters(now time.Time) (search.Filters, error) {
	flt := search.Filters{
		State:      f.state,
		MailboxID:  f.mailboxID,
		CustomerID: f.customerID,
		Subject:    f.subject,
		Body:       f.body,
		From:       f.from,
		To:         f.to,
		Page:       f.page,
	}

	if f.status != "" {
		status, ok := ticket.ParseStatus(f.status)
		if !ok {
			return search.Filters{}, fmt.Errorf("invalid status %q", f.status)
		}
		flt.Status = status
	}

	switch r := strings.ToLower(f.dateRange); r {
	case "", search.RangeToday, search.RangeWeek, search.RangeMonth, search.RangeQuarter, search.RangeYear:
		flt.DateRange = r
	default:
		return search.Filters{}, fmt.Errorf("invalid date range %q", f.dateRange)
	}

	for _, d := range []struct {
		name, value string
		dst         **time.Time
	}{
		{name: "after", value: f.after, dst: &flt.After},
		{name: "before", value: f.before, dst: &flt.Before},
	} {
		if d.value == "" {
			continue
		}
		t, ok := query.ResolveDate(d.value, now)
		if !ok {
			return search.Filters{}, fmt.Errorf("invalid %s date %q", d.name, d.value)
		}
		*d.dst = &t
	}

	if f.assignee != "" {
		a, ok := query.ParseAssignee(f.assignee)
		if !ok {
			return search.Filters{}, fmt.Errorf("invalid assignee %q", f.assignee)
		}
		flt.Assignee = a
	}

	var err error
	if flt.Attachments, err = parseFlag("attachments", f.attachments); err != nil {
		return search.Filters{}, err
	}
	if flt.HasReplies, err = parseFlag("has-replies", f.hasReplies); err != nil {
		return search.Filters{}, err
	}

	if f.recordType != "" {
		typ, ok := typeByName[strings.ToLower(f.recordType)]
		if !ok {
			return search.Filters{}, fmt.Errorf("invalid type %q", f.recordType)
		}
		flt.Type = typ
	}

	switch f.sort {
	case search.SortRelevance, search.SortDateDesc, search.SortDateAsc:
		flt.Sort = f.sort
	default:
		return search.Filters{}, fmt.Errorf("invalid sort %q", f.sort)
	}

	return flt, nil
}

func parseFlag(name, v string) (string, error) {
	switch v = strings.ToLower(v); v {
	case "", search.FlagYes, search.FlagNo:
		return v, nil
	}
	return "", fmt.Errorf("invalid %s value %q, expected yes or no", name, v)
}
