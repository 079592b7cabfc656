package elasticsearch

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goto/ticketsearch/core/query"
	"github.com/goto/ticketsearch/core/relevance"
	"github.com/goto/ticketsearch/core/search"
	"github.com/goto/ticketsearch/core/ticket"
	"github.com/olivere/elastic/v7"
)

const (
	highlightPreTag  = "<mark>"
	highlightPostTag = "</mark>"
)

var highlightFields = []string{"subject", "body_text", "customer_email"}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

type queryOptions struct {
	weights   relevance.Weights
	fuzzy     bool
	fuzziness string
}

// buildSearchSource translates a backend request into a search body: bool
// filters for every structured constraint, weighted multi match clauses for
// the needles and the ordering selected by the filters.
func buildSearchSource(req search.Request, opts queryOptions) *elastic.SearchSource {
	boolQuery := elastic.NewBoolQuery()
	buildFilterQueries(boolQuery, req.Scope, req.Filters)
	buildTextQueries(boolQuery, req.Query, opts)

	src := elastic.NewSearchSource().
		Query(boolQuery).
		From(req.Offset()).
		Size(req.PerPage).
		TrackTotalHits(true).
		SortBy(sorters(req.Filters.Sort)...)

	if !req.Query.IsEmpty() {
		src = src.Highlight(buildHighlight())
	}
	return src
}

func buildFilterQueries(q *elastic.BoolQuery, scope search.ScopeSet, flt search.Filters) {
	ids := scope.IDs()
	mailboxes := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		mailboxes = append(mailboxes, id)
	}
	q.Filter(elastic.NewTermsQuery("mailbox_id", mailboxes...))

	if flt.Status != ticket.StatusUnknown {
		q.Filter(elastic.NewTermQuery("status", int(flt.Status)))
	}
	if flt.State != 0 {
		q.Filter(elastic.NewTermQuery("state", flt.State))
	}
	if flt.Type != 0 {
		q.Filter(elastic.NewTermQuery("type", int(flt.Type)))
	}
	if flt.CustomerID != 0 {
		q.Filter(elastic.NewTermQuery("customer_id", flt.CustomerID))
	}

	switch flt.Assignee.Kind {
	case query.AssigneeUser:
		q.Filter(elastic.NewTermQuery("assignee_id", flt.Assignee.UserID))
	case query.AssigneeUnassigned:
		q.MustNot(elastic.NewExistsQuery("assignee_id"))
	}

	if flt.After != nil || flt.Before != nil {
		rq := elastic.NewRangeQuery("created_at")
		if flt.After != nil {
			rq = rq.Gte(flt.After.UTC().Format(time.RFC3339))
		}
		if flt.Before != nil {
			rq = rq.Lte(flt.Before.UTC().Format(time.RFC3339))
		}
		q.Filter(rq)
	}

	switch flt.Attachments {
	case search.FlagYes:
		q.Filter(elastic.NewTermQuery("has_attachments", true))
	case search.FlagNo:
		q.Filter(elastic.NewTermQuery("has_attachments", false))
	}
	switch flt.HasReplies {
	case search.FlagYes:
		q.Filter(elastic.NewRangeQuery("threads_count").Gt(1))
	case search.FlagNo:
		q.Filter(elastic.NewRangeQuery("threads_count").Lte(1))
	}

	if flt.Subject != "" {
		q.Filter(elastic.NewMatchPhraseQuery("subject", flt.Subject))
	}
	if flt.Body != "" {
		q.Filter(elastic.NewMatchPhraseQuery("body_text", flt.Body))
	}
	if flt.From != "" {
		pattern := wildcardPattern(flt.From)
		q.Filter(elastic.NewBoolQuery().
			Should(
				elastic.NewWildcardQuery("customer_email.keyword", pattern),
				elastic.NewWildcardQuery("thread_from.keyword", pattern),
			).
			MinimumNumberShouldMatch(1))
	}
	if flt.To != "" {
		pattern := wildcardPattern(flt.To)
		q.Filter(elastic.NewBoolQuery().
			Should(
				elastic.NewWildcardQuery("thread_to.keyword", pattern),
				elastic.NewWildcardQuery("thread_cc.keyword", pattern),
			).
			MinimumNumberShouldMatch(1))
	}
}

func buildTextQueries(q *elastic.BoolQuery, p query.Parsed, opts queryOptions) {
	if p.IsEmpty() {
		return
	}
	fields := weightedFields(opts.weights)

	var should []elastic.Query
	if len(p.Terms) > 0 {
		mq := elastic.NewMultiMatchQuery(strings.Join(p.Terms, " "), fields...).
			Type("best_fields")
		if opts.fuzzy {
			mq.Fuzziness(opts.fuzziness)
		}
		should = append(should, mq)
	}
	for _, term := range p.Terms {
		n, err := strconv.ParseInt(strings.TrimPrefix(term, "#"), 10, 64)
		if err != nil || n <= 0 {
			continue
		}
		should = append(should,
			elastic.NewTermQuery("number", n).Boost(relevance.NumberMatchBonus),
			elastic.NewTermQuery("id", n).Boost(relevance.NumberMatchBonus),
		)
	}
	if len(should) > 0 {
		q.Must(elastic.NewBoolQuery().Should(should...).MinimumNumberShouldMatch(1))
	}

	// phrases cannot have fuzziness
	for _, phrase := range p.Phrases {
		q.Must(elastic.NewMultiMatchQuery(phrase, fields...).Type("phrase"))
	}
}

// weightedFields renders the boosted field list, skipping fields with a
// zero weight.
func weightedFields(w relevance.Weights) []string {
	candidates := []struct {
		field  string
		weight float64
	}{
		{"subject", w.Subject},
		{"customer_email", w.CustomerEmail},
		{"customer_name", w.CustomerName},
		{"body_text", w.Body},
		{"thread_from", w.ThreadFrom},
		{"thread_to", w.ThreadTo},
		{"thread_cc", w.ThreadCc},
	}

	fields := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c.weight <= 0 {
			continue
		}
		fields = append(fields, fmt.Sprintf("%s^%s", c.field, strconv.FormatFloat(c.weight, 'f', -1, 64)))
	}
	return fields
}

func buildHighlight() *elastic.Highlight {
	hl := elastic.NewHighlight().
		PreTags(highlightPreTag).
		PostTags(highlightPostTag)
	for _, f := range highlightFields {
		hl = hl.Fields(elastic.NewHighlighterField(f))
	}
	return hl
}

func sorters(order string) []elastic.Sorter {
	switch order {
	case search.SortDateAsc:
		return []elastic.Sorter{
			elastic.NewFieldSort("updated_at").Asc(),
			elastic.NewFieldSort("id").Asc(),
		}
	case search.SortDateDesc:
		return []elastic.Sorter{
			elastic.NewFieldSort("updated_at").Desc(),
			elastic.NewFieldSort("id").Desc(),
		}
	}
	return []elastic.Sorter{
		elastic.NewScoreSort(),
		elastic.NewFieldSort("updated_at").Desc(),
		elastic.NewFieldSort("id").Desc(),
	}
}

func wildcardPattern(s string) string {
	return "*" + wildcardEscaper.Replace(strings.ToLower(strings.TrimSpace(s))) + "*"
}
