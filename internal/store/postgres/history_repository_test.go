package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/goto/salt/log"
	"github.com/goto/ticketsearch/core/history"
	"github.com/goto/ticketsearch/internal/store/postgres"
	"github.com/stretchr/testify/suite"
)

type HistoryRepositoryTestSuite struct {
	suite.Suite
	ctx        context.Context
	client     *postgres.Client
	repository *postgres.HistoryRepository
}

func (r *HistoryRepositoryTestSuite) SetupSuite() {
	var err error

	logger := log.NewNoop()
	r.client, err = newTestClient(r.T(), logger)
	if err != nil {
		r.T().Fatal(err)
	}

	r.ctx = context.TODO()
	r.repository, err = postgres.NewHistoryRepository(r.client)
	if err != nil {
		r.T().Fatal(err)
	}
}

func (r *HistoryRepositoryTestSuite) SetupTest() {
	if err := r.client.ExecQueries(r.ctx, []string{"TRUNCATE search_history RESTART IDENTITY"}); err != nil {
		r.T().Fatal(err)
	}
}

func (r *HistoryRepositoryTestSuite) insert(userID int64, q string, results int, at time.Time) {
	r.Require().NoError(r.repository.Insert(r.ctx, history.Entry{
		UserID: userID, Query: q, ResultCount: results, CreatedAt: at,
	}))
}

func (r *HistoryRepositoryTestSuite) TestNewHistoryRepository() {
	r.Run("return error if client is nil", func() {
		_, err := postgres.NewHistoryRepository(nil)
		r.Error(err)
	})
}

func (r *HistoryRepositoryTestSuite) TestListAndTrim() {
	base := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	for i, q := range []string{"first", "second", "third", "fourth"} {
		r.insert(7, q, 1, base.Add(time.Duration(i)*time.Minute))
	}
	r.insert(8, "other user", 1, base)

	r.Run("should list newest first", func() {
		entries, err := r.repository.ListByUser(r.ctx, 7, 2)
		r.Require().NoError(err)
		r.Require().Len(entries, 2)
		r.Equal("fourth", entries[0].Query)
		r.Equal("third", entries[1].Query)
		r.True(entries[0].CreatedAt.Equal(base.Add(3 * time.Minute)))
	})

	r.Run("should keep only the newest entries of the user", func() {
		r.Require().NoError(r.repository.TrimUser(r.ctx, 7, 2))

		entries, err := r.repository.ListByUser(r.ctx, 7, 10)
		r.Require().NoError(err)
		r.Len(entries, 2)

		others, err := r.repository.ListByUser(r.ctx, 8, 10)
		r.Require().NoError(err)
		r.Len(others, 1)
	})

	r.Run("should delete every entry of the user", func() {
		r.Require().NoError(r.repository.DeleteByUser(r.ctx, 7))

		entries, err := r.repository.ListByUser(r.ctx, 7, 10)
		r.Require().NoError(err)
		r.Empty(entries)
	})
}

func (r *HistoryRepositoryTestSuite) TestStats() {
	yesterday := time.Date(2024, time.March, 12, 10, 0, 0, 0, time.UTC)
	today := time.Date(2024, time.March, 13, 8, 0, 0, 0, time.UTC)

	r.insert(1, "invoice", 3, yesterday)
	r.insert(2, "invoice", 3, today)
	r.insert(2, "refund", 0, today)
	r.insert(3, "invoice", 1, today)
	r.insert(3, "login", 2, yesterday)
	r.insert(3, "login", 2, yesterday)

	stats, err := r.repository.Stats(r.ctx, time.Date(2024, time.March, 13, 0, 0, 0, 0, time.UTC), 2)
	r.Require().NoError(err)
	r.EqualValues(6, stats.TotalSearches)
	r.EqualValues(3, stats.UniqueQueries)
	r.EqualValues(3, stats.SearchesToday)
	r.Equal([]history.QueryCount{
		{Query: "invoice", Count: 3},
		{Query: "login", Count: 2},
	}, stats.TopQueries)
}

func (r *HistoryRepositoryTestSuite) TestFrequentQueries() {
	at := time.Date(2024, time.March, 13, 8, 0, 0, 0, time.UTC)
	r.insert(1, "refund policy", 4, at)
	r.insert(1, "refund policy", 4, at.Add(time.Minute))
	r.insert(1, "refunds", 2, at.Add(2*time.Minute))
	r.insert(1, "refund 100%", 0, at)
	r.insert(2, "referral", 1, at)
	r.insert(2, "referral", 1, at)
	r.insert(2, "referral", 1, at)

	r.Run("should rank the user's queries with results", func() {
		got, err := r.repository.FrequentQueries(r.ctx, history.QueryFilter{UserID: 1, Prefix: "REF", Limit: 5})
		r.Require().NoError(err)
		r.Equal([]string{"refund policy", "refunds"}, got)
	})

	r.Run("should rank every user's queries", func() {
		got, err := r.repository.FrequentQueries(r.ctx, history.QueryFilter{Prefix: "ref", Limit: 2})
		r.Require().NoError(err)
		r.Equal([]string{"referral", "refund policy"}, got)
	})

	r.Run("should treat like wildcards literally", func() {
		got, err := r.repository.FrequentQueries(r.ctx, history.QueryFilter{Prefix: "refund_", Limit: 5})
		r.Require().NoError(err)
		r.Empty(got)
	})
}

func TestHistoryRepository(t *testing.T) {
	suite.Run(t, &HistoryRepositoryTestSuite{})
}
