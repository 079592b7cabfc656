package query_test

import (
	"testing"
	"time"

	"github.com/goto/ticketsearch/core/query"
	"github.com/goto/ticketsearch/core/ticket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday
var now = time.Date(2024, time.March, 13, 15, 4, 5, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func endOf(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 23, 59, 59, 999999999, time.UTC)
}

func TestParse(t *testing.T) {
	cases := []struct {
		description string
		raw         string
		validate    func(t *testing.T, p query.Parsed)
	}{
		{
			description: "empty query",
			raw:         "   ",
			validate: func(t *testing.T, p query.Parsed) {
				assert.True(t, p.IsEmpty())
				assert.Empty(t, p.CleanedText)
				assert.Empty(t, p.Operators)
			},
		},
		{
			description: "terms and phrases",
			raw:         `refund "late   payment" invoice`,
			validate: func(t *testing.T, p query.Parsed) {
				assert.Equal(t, []string{"late payment"}, p.Phrases)
				assert.Equal(t, []string{"refund", "invoice"}, p.Terms)
				assert.Equal(t, []string{"late payment", "refund", "invoice"}, p.Needles())
			},
		},
		{
			description: "operators are removed from cleaned text",
			raw:         "invoice from:Bob@Example.com status:closed   to:support",
			validate: func(t *testing.T, p query.Parsed) {
				assert.Equal(t, "invoice", p.CleanedText)
				assert.Equal(t, []string{"invoice"}, p.Terms)
				assert.Equal(t, "bob@example.com", p.From)
				assert.Equal(t, "support", p.To)
				assert.Equal(t, ticket.StatusClosed, p.Status)
				assert.Equal(t, map[string]string{
					"from":   "Bob@Example.com",
					"status": "closed",
					"to":     "support",
				}, p.Operators)
			},
		},
		{
			description: "operator names are case insensitive",
			raw:         "AFTER:2024-01-15 Status:Open",
			validate: func(t *testing.T, p query.Parsed) {
				require.NotNil(t, p.After)
				assert.True(t, date(2024, time.January, 15).Equal(*p.After))
				assert.Equal(t, ticket.StatusActive, p.Status)
				assert.True(t, p.IsEmpty())
			},
		},
		{
			description: "unresolvable operator is dropped without becoming a term",
			raw:         "status:archived printer after:someday assigned:abc",
			validate: func(t *testing.T, p query.Parsed) {
				assert.Equal(t, ticket.StatusUnknown, p.Status)
				assert.Nil(t, p.After)
				assert.Equal(t, query.AssigneeAny, p.Assignee.Kind)
				assert.Empty(t, p.Operators)
				assert.Equal(t, "printer", p.CleanedText)
				assert.Equal(t, []string{"printer"}, p.Terms)
			},
		},
		{
			description: "unknown operator stays a term",
			raw:         "http://example.com ticket:12",
			validate: func(t *testing.T, p query.Parsed) {
				assert.Equal(t, []string{"http://example.com", "ticket:12"}, p.Terms)
				assert.Empty(t, p.Operators)
			},
		},
		{
			description: "before resolves to end of day",
			raw:         "before:2024-02-01",
			validate: func(t *testing.T, p query.Parsed) {
				require.NotNil(t, p.Before)
				assert.True(t, endOf(2024, time.February, 1).Equal(*p.Before))
			},
		},
		{
			description: "last overrides after and before",
			raw:         "after:2024-01-01 last:week before:2024-03-12",
			validate: func(t *testing.T, p query.Parsed) {
				require.NotNil(t, p.After)
				require.NotNil(t, p.Before)
				assert.True(t, p.LastApplied)
				assert.True(t, date(2024, time.March, 4).Equal(*p.After))
				assert.True(t, endOf(2024, time.March, 10).Equal(*p.Before))
				assert.Equal(t, map[string]string{"last": "week"}, p.Operators)
			},
		},
		{
			description: "repeated operator keeps the last occurrence",
			raw:         "status:closed status:pending",
			validate: func(t *testing.T, p query.Parsed) {
				assert.Equal(t, ticket.StatusPending, p.Status)
				assert.Equal(t, "pending", p.Operators["status"])
			},
		},
		{
			description: "attachment and assignee",
			raw:         "has:attachment assigned:me",
			validate: func(t *testing.T, p query.Parsed) {
				assert.True(t, p.HasAttachment)
				assert.Equal(t, query.Assignee{Kind: query.AssigneeMe}, p.Assignee)
			},
		},
		{
			description: "numeric assignee",
			raw:         "assigned:42 has:pictures",
			validate: func(t *testing.T, p query.Parsed) {
				assert.False(t, p.HasAttachment)
				assert.Equal(t, query.Assignee{Kind: query.AssigneeUser, UserID: 42}, p.Assignee)
			},
		},
		{
			description: "unterminated quote becomes terms",
			raw:         `"broken printer`,
			validate: func(t *testing.T, p query.Parsed) {
				assert.Empty(t, p.Phrases)
				assert.Equal(t, []string{"broken", "printer"}, p.Terms)
			},
		},
		{
			description: "empty quotes are discarded",
			raw:         `"" printer`,
			validate: func(t *testing.T, p query.Parsed) {
				assert.Empty(t, p.Phrases)
				assert.Equal(t, []string{"printer"}, p.Terms)
			},
		},
		{
			description: "operator text inside a phrase stays in the phrase",
			raw:         `"hello from:x" world`,
			validate: func(t *testing.T, p query.Parsed) {
				assert.Empty(t, p.From)
				assert.Empty(t, p.Operators)
				assert.Equal(t, `"hello from:x" world`, p.CleanedText)
				assert.Equal(t, []string{"hello from:x"}, p.Phrases)
				assert.Equal(t, []string{"world"}, p.Terms)
			},
		},
		{
			description: "operator after an unterminated quote still applies",
			raw:         `"hello from:bob world`,
			validate: func(t *testing.T, p query.Parsed) {
				assert.Equal(t, "bob", p.From)
				assert.Equal(t, `"hello world`, p.CleanedText)
				assert.Equal(t, []string{"hello", "world"}, p.Terms)
			},
		},
		{
			description: "quotes are stripped from operator values",
			raw:         `from:"bob" printer`,
			validate: func(t *testing.T, p query.Parsed) {
				assert.Equal(t, "bob", p.From)
				assert.Equal(t, "bob", p.Operators["from"])
				assert.Equal(t, "printer", p.CleanedText)
			},
		},
		{
			description: "operator without value is dropped",
			raw:         "from: printer",
			validate: func(t *testing.T, p query.Parsed) {
				assert.Empty(t, p.From)
				assert.Equal(t, "printer", p.CleanedText)
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.description, func(t *testing.T) {
			tc.validate(t, query.Parse(tc.raw, now))
		})
	}
}

func TestParseIsTotal(t *testing.T) {
	inputs := []string{
		`"`, `""""`, `:`, `from:`, `last:`, `status::`, "\t\n", `a"b"c`, `last:99999999999999999999days`,
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { query.Parse(in, now) }, in)
	}
}

func TestParseAssignee(t *testing.T) {
	a, ok := query.ParseAssignee("Unassigned")
	assert.True(t, ok)
	assert.Equal(t, query.AssigneeUnassigned, a.Kind)

	_, ok = query.ParseAssignee("-3")
	assert.False(t, ok)
}
