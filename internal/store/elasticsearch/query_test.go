package elasticsearch

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/goto/ticketsearch/core/query"
	"github.com/goto/ticketsearch/core/relevance"
	"github.com/goto/ticketsearch/core/search"
	"github.com/goto/ticketsearch/core/ticket"
	"github.com/olivere/elastic/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toJSON(t *testing.T, v interface{}) string {
	t.Helper()

	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func querySource(t *testing.T, q elastic.Query) map[string]interface{} {
	t.Helper()

	src, err := q.Source()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(toJSON(t, src)), &decoded))
	return decoded
}

// boolClauses returns the clauses of one occurrence type of a bool query
// rendered as JSON, whether the query holds one clause or several.
func boolClauses(t *testing.T, q *elastic.BoolQuery, occur string) []string {
	t.Helper()

	src := querySource(t, q)
	body, ok := src["bool"].(map[string]interface{})
	require.True(t, ok)

	var clauses []string
	switch v := body[occur].(type) {
	case nil:
	case []interface{}:
		for _, c := range v {
			clauses = append(clauses, toJSON(t, c))
		}
	default:
		clauses = append(clauses, toJSON(t, v))
	}
	return clauses
}

func clauseJSON(t *testing.T, q elastic.Query) string {
	t.Helper()
	return toJSON(t, querySource(t, q))
}

func TestBuildFilterQueries(t *testing.T) {
	after := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	before := time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC)

	cases := []struct {
		name        string
		scope       search.ScopeSet
		filters     search.Filters
		wantFilter  []elastic.Query
		wantMustNot []elastic.Query
	}{
		{
			name:  "scope only",
			scope: search.NewScopeSet(2, 1),
			wantFilter: []elastic.Query{
				elastic.NewTermsQuery("mailbox_id", int64(1), int64(2)),
			},
		},
		{
			name:  "structured equality filters",
			scope: search.NewScopeSet(1),
			filters: search.Filters{
				Status:     ticket.StatusClosed,
				Type:       ticket.TypePhone,
				CustomerID: 7,
				Assignee:   query.Assignee{Kind: query.AssigneeUser, UserID: 5},
			},
			wantFilter: []elastic.Query{
				elastic.NewTermsQuery("mailbox_id", int64(1)),
				elastic.NewTermQuery("status", int(ticket.StatusClosed)),
				elastic.NewTermQuery("type", int(ticket.TypePhone)),
				elastic.NewTermQuery("customer_id", int64(7)),
				elastic.NewTermQuery("assignee_id", int64(5)),
			},
		},
		{
			name:    "unassigned records",
			scope:   search.NewScopeSet(1),
			filters: search.Filters{Assignee: query.Assignee{Kind: query.AssigneeUnassigned}},
			wantFilter: []elastic.Query{
				elastic.NewTermsQuery("mailbox_id", int64(1)),
			},
			wantMustNot: []elastic.Query{
				elastic.NewExistsQuery("assignee_id"),
			},
		},
		{
			name:  "date range and flags",
			scope: search.NewScopeSet(1),
			filters: search.Filters{
				After:       &after,
				Before:      &before,
				Attachments: search.FlagNo,
				HasReplies:  search.FlagYes,
			},
			wantFilter: []elastic.Query{
				elastic.NewTermsQuery("mailbox_id", int64(1)),
				elastic.NewRangeQuery("created_at").Gte("2024-03-01T00:00:00Z").Lte("2024-03-31T23:59:59Z"),
				elastic.NewTermQuery("has_attachments", false),
				elastic.NewRangeQuery("threads_count").Gt(1),
			},
		},
		{
			name:  "text filters",
			scope: search.NewScopeSet(1),
			filters: search.Filters{
				Subject: "refund",
				Body:    "credit note",
				From:    " John@Acme.io ",
				To:      "ops*",
			},
			wantFilter: []elastic.Query{
				elastic.NewTermsQuery("mailbox_id", int64(1)),
				elastic.NewMatchPhraseQuery("subject", "refund"),
				elastic.NewMatchPhraseQuery("body_text", "credit note"),
				elastic.NewBoolQuery().
					Should(
						elastic.NewWildcardQuery("customer_email.keyword", "*john@acme.io*"),
						elastic.NewWildcardQuery("thread_from.keyword", "*john@acme.io*"),
					).
					MinimumNumberShouldMatch(1),
				elastic.NewBoolQuery().
					Should(
						elastic.NewWildcardQuery("thread_to.keyword", `*ops\**`),
						elastic.NewWildcardQuery("thread_cc.keyword", `*ops\**`),
					).
					MinimumNumberShouldMatch(1),
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := elastic.NewBoolQuery()
			buildFilterQueries(q, tc.scope, tc.filters)

			var want []string
			for _, f := range tc.wantFilter {
				want = append(want, clauseJSON(t, f))
			}
			assert.Equal(t, want, boolClauses(t, q, "filter"))

			var wantMustNot []string
			for _, f := range tc.wantMustNot {
				wantMustNot = append(wantMustNot, clauseJSON(t, f))
			}
			assert.Equal(t, wantMustNot, boolClauses(t, q, "must_not"))
		})
	}
}

func TestRecordIndexRecipientKeywords(t *testing.T) {
	var settings struct {
		Mappings struct {
			Properties map[string]struct {
				Fields map[string]struct {
					Type       string `json:"type"`
					Normalizer string `json:"normalizer"`
				} `json:"fields"`
			} `json:"properties"`
		} `json:"mappings"`
	}
	require.NoError(t, json.Unmarshal([]byte(recordIndexSettings), &settings))

	for _, field := range []string{"customer_email", "thread_from", "thread_to", "thread_cc"} {
		kw, ok := settings.Mappings.Properties[field].Fields["keyword"]
		if assert.True(t, ok, field) {
			assert.Equal(t, "keyword", kw.Type, field)
			assert.Equal(t, "lowercase_normalizer", kw.Normalizer, field)
		}
	}
}

func TestBuildTextQueries(t *testing.T) {
	now := time.Date(2024, time.June, 12, 10, 0, 0, 0, time.UTC)
	opts := queryOptions{
		weights:   relevance.Weights{Subject: 10, Body: 4},
		fuzziness: "AUTO:4,8",
	}

	t.Run("empty query adds no clause", func(t *testing.T) {
		q := elastic.NewBoolQuery()
		buildTextQueries(q, query.Parse("status:closed", now), opts)
		assert.Empty(t, boolClauses(t, q, "must"))
	})

	t.Run("terms are matched across weighted fields", func(t *testing.T) {
		q := elastic.NewBoolQuery()
		buildTextQueries(q, query.Parse("invoice march", now), opts)

		expected := elastic.NewBoolQuery().
			Should(elastic.NewMultiMatchQuery("invoice march", "subject^10", "body_text^4").Type("best_fields")).
			MinimumNumberShouldMatch(1)
		assert.Equal(t, []string{clauseJSON(t, expected)}, boolClauses(t, q, "must"))
	})

	t.Run("fuzzy matching sets fuzziness", func(t *testing.T) {
		q := elastic.NewBoolQuery()
		fuzzy := opts
		fuzzy.fuzzy = true
		buildTextQueries(q, query.Parse("invoce", now), fuzzy)

		expected := elastic.NewBoolQuery().
			Should(elastic.NewMultiMatchQuery("invoce", "subject^10", "body_text^4").Type("best_fields").Fuzziness("AUTO:4,8")).
			MinimumNumberShouldMatch(1)
		assert.Equal(t, []string{clauseJSON(t, expected)}, boolClauses(t, q, "must"))
	})

	t.Run("numeric terms also match record numbers", func(t *testing.T) {
		q := elastic.NewBoolQuery()
		buildTextQueries(q, query.Parse("1042", now), opts)

		expected := elastic.NewBoolQuery().
			Should(
				elastic.NewMultiMatchQuery("1042", "subject^10", "body_text^4").Type("best_fields"),
				elastic.NewTermQuery("number", int64(1042)).Boost(relevance.NumberMatchBonus),
				elastic.NewTermQuery("id", int64(1042)).Boost(relevance.NumberMatchBonus),
			).
			MinimumNumberShouldMatch(1)
		assert.Equal(t, []string{clauseJSON(t, expected)}, boolClauses(t, q, "must"))
	})

	t.Run("phrases must all match", func(t *testing.T) {
		q := elastic.NewBoolQuery()
		buildTextQueries(q, query.Parse(`"payment failed"`, now), opts)

		expected := elastic.NewMultiMatchQuery("payment failed", "subject^10", "body_text^4").Type("phrase")
		assert.Equal(t, []string{clauseJSON(t, expected)}, boolClauses(t, q, "must"))
	})
}

func TestWeightedFields(t *testing.T) {
	assert.Equal(t, []string{
		"subject^10", "customer_email^8", "customer_name^6", "body_text^4",
		"thread_from^3", "thread_to^2", "thread_cc^1",
	}, weightedFields(relevance.DefaultWeights()))

	assert.Equal(t, []string{"subject^2.5"}, weightedFields(relevance.Weights{Subject: 2.5}))
}

func TestBuildSearchSource(t *testing.T) {
	now := time.Date(2024, time.June, 12, 10, 0, 0, 0, time.UTC)
	req := search.Request{
		Query:   query.Parse("invoice", now),
		Filters: search.Filters{Sort: search.SortRelevance},
		Scope:   search.NewScopeSet(1),
		Page:    3,
		PerPage: 20,
	}

	src, err := buildSearchSource(req, queryOptions{weights: relevance.DefaultWeights()}).Source()
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(toJSON(t, src)), &body))

	assert.EqualValues(t, 40, body["from"])
	assert.EqualValues(t, 20, body["size"])
	assert.Equal(t, true, body["track_total_hits"])
	assert.Contains(t, body, "highlight")

	sorts, ok := body["sort"].([]interface{})
	require.True(t, ok)
	require.Len(t, sorts, 3)
	assert.JSONEq(t, `{"_score":{"order":"desc"}}`, toJSON(t, sorts[0]))

	t.Run("date sort without highlight for empty query", func(t *testing.T) {
		req := req
		req.Query = query.Parse("", now)
		req.Filters.Sort = search.SortDateAsc

		src, err := buildSearchSource(req, queryOptions{}).Source()
		require.NoError(t, err)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(toJSON(t, src)), &body))
		assert.NotContains(t, body, "highlight")

		sorts, ok := body["sort"].([]interface{})
		require.True(t, ok)
		assert.JSONEq(t, `{"updated_at":{"order":"asc"}}`, toJSON(t, sorts[0]))
	})
}

func TestConfigFuzziness(t *testing.T) {
	assert.Equal(t, "AUTO:4,8", Config{}.fuzziness())
	assert.Equal(t, "AUTO:3,6", Config{TypoOne: 3, TypoTwo: 6}.fuzziness())
	assert.Equal(t, "AUTO:5,9", Config{TypoOne: 5, TypoTwo: 2}.fuzziness())
	assert.Equal(t, "helpdesk_records", Config{}.index())
}
