package postgres

import (
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/goto/ticketsearch/core/query"
	"github.com/goto/ticketsearch/core/relevance"
	"github.com/goto/ticketsearch/core/search"
	"github.com/goto/ticketsearch/core/ticket"
	"github.com/lib/pq"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

func containsPattern(s string) string { return "%" + escapeLike(s) + "%" }

func prefixPattern(s string) string { return escapeLike(s) + "%" }

// searchableThreadTypes are the thread types whose body takes part in
// matching. Notes are excluded.
var searchableThreadTypes = []int64{int64(ticket.ThreadTypeCustomer), int64(ticket.ThreadTypeMessage)}

// threadExists renders an EXISTS sub query over the threads of the
// conversation aliased c.
func threadExists(cond string, args ...interface{}) sq.Sqlizer {
	return sq.Expr("EXISTS (SELECT 1 FROM threads t WHERE t.conversation_id = c.id AND "+cond+")", args...)
}

// applyScope restricts b to the mailboxes of the scope. The conversations
// table must be aliased c.
func applyScope(b sq.SelectBuilder, scope search.ScopeSet) sq.SelectBuilder {
	return b.Where(sq.Expr("c.mailbox_id = ANY(?)", pq.Array(scope.IDs())))
}

// applyFilters translates the structured filters to predicates over the
// conversations table aliased c.
func applyFilters(b sq.SelectBuilder, flt search.Filters) sq.SelectBuilder {
	if flt.Status != ticket.StatusUnknown {
		b = b.Where(sq.Eq{"c.status": int(flt.Status)})
	}
	if flt.State != 0 {
		b = b.Where(sq.Eq{"c.state": flt.State})
	}
	if flt.Type != 0 {
		b = b.Where(sq.Eq{"c.type": int(flt.Type)})
	}
	if flt.CustomerID != 0 {
		b = b.Where(sq.Eq{"c.customer_id": flt.CustomerID})
	}

	switch flt.Assignee.Kind {
	case query.AssigneeUser:
		b = b.Where(sq.Eq{"c.user_id": flt.Assignee.UserID})
	case query.AssigneeUnassigned:
		b = b.Where(sq.Eq{"c.user_id": nil})
	}

	if flt.After != nil {
		b = b.Where(sq.GtOrEq{"c.created_at": *flt.After})
	}
	if flt.Before != nil {
		b = b.Where(sq.LtOrEq{"c.created_at": *flt.Before})
	}

	switch flt.Attachments {
	case search.FlagYes:
		b = b.Where(sq.Eq{"c.has_attachments": true})
	case search.FlagNo:
		b = b.Where(sq.Eq{"c.has_attachments": false})
	}
	switch flt.HasReplies {
	case search.FlagYes:
		b = b.Where(sq.Gt{"c.threads_count": 1})
	case search.FlagNo:
		b = b.Where(sq.LtOrEq{"c.threads_count": 1})
	}

	if flt.Subject != "" {
		b = b.Where(sq.ILike{"c.subject": containsPattern(flt.Subject)})
	}
	if flt.Body != "" {
		b = b.Where(threadExists("t.type = ANY(?) AND t.body ILIKE ?", pq.Array(searchableThreadTypes), containsPattern(flt.Body)))
	}
	if flt.From != "" {
		pattern := containsPattern(flt.From)
		b = b.Where(sq.Or{
			sq.ILike{"c.customer_email": pattern},
			threadExists(`t."from" ILIKE ?`, pattern),
		})
	}
	if flt.To != "" {
		pattern := containsPattern(flt.To)
		b = b.Where(threadExists(`(t."to" ILIKE ? OR t.cc ILIKE ?)`, pattern, pattern))
	}
	return b
}

// matchPredicate ORs the per field ILIKE predicates of every needle. The
// customers table must be joined as cu.
func matchPredicate(p query.Parsed, fuzzy, soundex bool) sq.Or {
	var or sq.Or
	for _, phrase := range p.Phrases {
		or = append(or, needlePredicates(strings.ToLower(phrase))...)
	}
	for _, term := range p.Terms {
		term = strings.ToLower(term)
		or = append(or, needlePredicates(term)...)
		if !fuzzy || len([]rune(term)) < relevance.MinFuzzyTermLength {
			continue
		}
		for _, v := range relevance.Variants(term) {
			pattern := "%" + v.LikePattern(escapeLike) + "%"
			or = append(or,
				sq.ILike{"c.subject": pattern},
				sq.ILike{"c.customer_email": pattern},
				sq.Expr("(COALESCE(cu.first_name, '') || ' ' || COALESCE(cu.last_name, '')) ILIKE ?", pattern),
			)
		}
		if soundex {
			or = append(or, sq.Expr("(soundex(cu.first_name) = soundex(?) OR soundex(cu.last_name) = soundex(?))", term, term))
		}
	}
	return or
}

func needlePredicates(needle string) []sq.Sqlizer {
	pattern := containsPattern(needle)
	preds := []sq.Sqlizer{
		sq.ILike{"c.subject": pattern},
		sq.ILike{"c.customer_email": pattern},
		sq.Expr("(COALESCE(cu.first_name, '') || ' ' || COALESCE(cu.last_name, '')) ILIKE ?", pattern),
		threadExists("t.type = ANY(?) AND t.body ILIKE ?", pq.Array(searchableThreadTypes), pattern),
		threadExists(`(t."from" ILIKE ? OR t."to" ILIKE ? OR t.cc ILIKE ? OR t.bcc ILIKE ?)`, pattern, pattern, pattern, pattern),
	}
	if n, ok := recordNumber(needle); ok {
		preds = append(preds, sq.Or{sq.Eq{"c.number": n}, sq.Eq{"c.id": n}})
	}
	return preds
}

// recordNumber parses needles such as "1234" or "#1234".
func recordNumber(needle string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimPrefix(needle, "#"), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// dateOrder returns the ORDER BY clauses for a filter-only listing.
func dateOrder(sort string) []string {
	if sort == search.SortDateAsc {
		return []string{"c.updated_at ASC", "c.id ASC"}
	}
	return []string{"c.updated_at DESC", "c.id DESC"}
}
