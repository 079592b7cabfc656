package postgres_test

import (
	"context"
	"testing"

	"github.com/goto/salt/log"
	"github.com/goto/ticketsearch/core/query"
	"github.com/goto/ticketsearch/core/relevance"
	"github.com/goto/ticketsearch/core/search"
	"github.com/goto/ticketsearch/core/ticket"
	"github.com/goto/ticketsearch/internal/store/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type FullTextBackendTestSuite struct {
	suite.Suite
	ctx     context.Context
	client  *postgres.Client
	backend *postgres.FullTextBackend
}

func (r *FullTextBackendTestSuite) SetupSuite() {
	var err error

	logger := log.NewNoop()
	r.client, err = newTestClient(r.T(), logger)
	if err != nil {
		r.T().Fatal(err)
	}

	r.ctx = context.TODO()
	r.backend, err = postgres.NewFullTextBackend(r.client, postgres.NewFullTextProbe(r.client),
		relevance.NewModel(relevance.DefaultWeights(), false),
		postgres.FullTextWithBatchSize(2),
		postgres.FullTextWithLogger(logger),
	)
	if err != nil {
		r.T().Fatal(err)
	}
}

func (r *FullTextBackendTestSuite) SetupTest() {
	if err := seedRecords(r.ctx, r.client); err != nil {
		r.T().Fatal(err)
	}
	if err := r.client.ExecQueries(r.ctx, []string{"TRUNCATE search_index"}); err != nil {
		r.T().Fatal(err)
	}
}

func (r *FullTextBackendTestSuite) request(raw string, mailboxes ...int64) search.Request {
	p := query.Parse(raw, parseNow)
	return search.Request{
		Query:   p,
		Filters: search.Filters{}.WithOperators(p).Normalize(5, parseNow),
		Scope:   search.NewScopeSet(mailboxes...),
		Page:    1,
		PerPage: 10,
	}
}

func (r *FullTextBackendTestSuite) TestReindex() {
	r.Run("should project every record and report progress", func() {
		var calls [][2]int
		n, err := r.backend.Reindex(r.ctx, func(current, total int) {
			calls = append(calls, [2]int{current, total})
		})
		r.Require().NoError(err)
		r.Equal(4, n)
		r.Equal([][2]int{{2, 4}, {4, 4}}, calls)

		count, err := r.backend.IndexedCount(r.ctx)
		r.NoError(err)
		r.EqualValues(4, count)
	})

	r.Run("should sweep rows of deleted records", func() {
		r.Require().NoError(r.client.ExecQueries(r.ctx, []string{"DELETE FROM conversations WHERE id = 4"}))

		n, err := r.backend.Reindex(r.ctx, nil)
		r.Require().NoError(err)
		r.Equal(3, n)

		count, err := r.backend.IndexedCount(r.ctx)
		r.NoError(err)
		r.EqualValues(3, count)
	})
}

func (r *FullTextBackendTestSuite) TestClear() {
	_, err := r.backend.Reindex(r.ctx, nil)
	r.Require().NoError(err)

	r.Require().NoError(r.backend.Clear(r.ctx))

	count, err := r.backend.IndexedCount(r.ctx)
	r.NoError(err)
	r.Zero(count)
}

func (r *FullTextBackendTestSuite) TestIndexRecord() {
	r.Run("return error if record has no id", func() {
		err := r.backend.IndexRecord(r.ctx, ticket.Record{})
		r.ErrorIs(err, ticket.ErrEmptyID)
	})

	r.Run("should upsert and delete a single record", func() {
		rec := fixtureRecords()[1]
		r.Require().NoError(r.backend.IndexRecord(r.ctx, rec))

		rec.Subject = "Password reset again"
		r.Require().NoError(r.backend.IndexRecord(r.ctx, rec))

		count, err := r.backend.IndexedCount(r.ctx)
		r.NoError(err)
		r.EqualValues(1, count)

		r.Require().NoError(r.backend.DeleteRecord(r.ctx, rec.ID))
		count, err = r.backend.IndexedCount(r.ctx)
		r.NoError(err)
		r.Zero(count)
	})
}

func (r *FullTextBackendTestSuite) TestSearch() {
	_, err := r.backend.Reindex(r.ctx, nil)
	r.Require().NoError(err)

	r.Run("should match term prefixes outside notes", func() {
		page, err := r.backend.Search(r.ctx, r.request("invoic", 1, 2))
		r.Require().NoError(err)
		r.ElementsMatch([]int64{1, 3}, itemIDs(page))
		r.EqualValues(2, page.TotalCount)
		r.Equal(search.BackendIndexedFullText, r.backend.Name())
	})

	r.Run("should match phrases in order", func() {
		page, err := r.backend.Search(r.ctx, r.request(`"invoice copy"`, 1, 2))
		r.Require().NoError(err)
		r.Equal([]int64{3}, itemIDs(page))
	})

	r.Run("should match emails and numbers through short fields", func() {
		page, err := r.backend.Search(r.ctx, r.request("jane@example.com", 1, 2))
		r.Require().NoError(err)
		r.Equal([]int64{2}, itemIDs(page))

		page, err = r.backend.Search(r.ctx, r.request("103", 1, 2))
		r.Require().NoError(err)
		r.Equal([]int64{3}, itemIDs(page))
	})

	r.Run("should respect filters", func() {
		page, err := r.backend.Search(r.ctx, r.request("invoice status:active", 1, 2, 3))
		r.Require().NoError(err)
		r.ElementsMatch([]int64{1, 4}, itemIDs(page))
	})

	r.Run("should report unavailable when the index is missing", func() {
		r.Require().NoError(r.client.ExecQueries(r.ctx, []string{"DROP INDEX search_index_document_idx"}))
		defer func() {
			r.Require().NoError(r.client.ExecQueries(r.ctx, []string{
				"CREATE INDEX search_index_document_idx ON search_index USING GIN (document)",
			}))
		}()

		backend, err := postgres.NewFullTextBackend(r.client, nil, relevance.NewModel(relevance.DefaultWeights(), false))
		r.Require().NoError(err)
		_, err = backend.Search(r.ctx, r.request("invoice", 1))
		r.ErrorIs(err, search.ErrBackendUnavailable)
	})
}

func (r *FullTextBackendTestSuite) TestSearchUnbuiltProjection() {
	backend, err := postgres.NewFullTextBackend(r.client, nil, relevance.NewModel(relevance.DefaultWeights(), false))
	r.Require().NoError(err)

	_, err = backend.Search(r.ctx, r.request("invoice", 1, 2))
	r.ErrorIs(err, search.ErrBackendUnavailable)

	_, err = backend.Reindex(r.ctx, nil)
	r.Require().NoError(err)
	page, err := backend.Search(r.ctx, r.request("invoice", 1, 2))
	r.Require().NoError(err)
	r.ElementsMatch([]int64{1, 3}, itemIDs(page))

	r.Require().NoError(backend.Clear(r.ctx))
	_, err = backend.Search(r.ctx, r.request("invoice", 1, 2))
	r.ErrorIs(err, search.ErrBackendUnavailable)
}

func (r *FullTextBackendTestSuite) TestSearchBeyondCandidateWindow() {
	backend, err := postgres.NewFullTextBackend(r.client, nil,
		relevance.NewModel(relevance.DefaultWeights(), false),
		postgres.FullTextWithMaxCandidates(1),
	)
	r.Require().NoError(err)
	_, err = backend.Reindex(r.ctx, nil)
	r.Require().NoError(err)

	var seen []int64
	for p := 1; p <= 3; p++ {
		req := r.request("invoice", 1, 2, 3)
		req.Page, req.PerPage = p, 1

		page, err := backend.Search(r.ctx, req)
		r.Require().NoError(err)
		r.EqualValues(3, page.TotalCount)
		r.Require().Len(page.Items, 1, "page %d", p)
		seen = append(seen, page.Items[0].RecordID)
	}
	r.ElementsMatch([]int64{1, 3, 4}, seen)
}

func TestFullTextBackend(t *testing.T) {
	suite.Run(t, &FullTextBackendTestSuite{})
}

func TestBuildTSQuery(t *testing.T) {
	cases := []struct {
		raw      string
		expected string
	}{
		{raw: "invoice", expected: "invoice:*"},
		{raw: "Invoice late", expected: "invoice:* & late:*"},
		{raw: "is it late", expected: "late:*"},
		{raw: `"late payment" march`, expected: "(late <-> payment) & march:*"},
		{raw: `"refund"`, expected: "refund"},
		{raw: "o'brien!", expected: "obrien:*"},
		{raw: "a b", expected: ""},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.expected, postgres.BuildTSQuery(query.Parse(tc.raw, parseNow)))
		})
	}
}
