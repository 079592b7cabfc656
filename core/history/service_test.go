package history_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goto/salt/log"
	"github.com/goto/ticketsearch/core/history"
	"github.com/goto/ticketsearch/core/history/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var fixedNow = time.Date(2024, 3, 13, 15, 4, 5, 0, time.UTC)

func clock() time.Time { return fixedNow }

func TestServiceRecord(t *testing.T) {
	type testCase struct {
		Description string
		Query       string
		MaxEntries  int
		MinLength   int
		Setup       func(ctx context.Context, repo *mocks.HistoryRepository)
		ExpectErr   string
	}

	testCases := []testCase{
		{
			Description: "should ignore queries shorter than two characters",
			Query:       "  a ",
		},
		{
			Description: "should insert the trimmed query then evict old entries",
			Query:       "  refund  ",
			MaxEntries:  3,
			Setup: func(ctx context.Context, repo *mocks.HistoryRepository) {
				repo.EXPECT().Insert(ctx, history.Entry{UserID: 9, Query: "refund", ResultCount: 4, CreatedAt: fixedNow}).Return(nil)
				repo.EXPECT().TrimUser(ctx, int64(9), 3).Return(nil)
			},
		},
		{
			Description: "should truncate long queries",
			Query:       strings.Repeat("é", 300),
			Setup: func(ctx context.Context, repo *mocks.HistoryRepository) {
				repo.EXPECT().Insert(ctx, mock.MatchedBy(func(e history.Entry) bool {
					return e.Query == strings.Repeat("é", history.MaxQueryLength)
				})).Return(nil)
				repo.EXPECT().TrimUser(ctx, int64(9), history.DefaultMaxItems).Return(nil)
			},
		},
		{
			Description: "should ignore queries shorter than the configured minimum",
			Query:       "vpn",
			MinLength:   4,
		},
		{
			Description: "should record queries at the configured minimum",
			Query:       "smtp",
			MinLength:   4,
			Setup: func(ctx context.Context, repo *mocks.HistoryRepository) {
				repo.EXPECT().Insert(ctx, history.Entry{UserID: 9, Query: "smtp", ResultCount: 4, CreatedAt: fixedNow}).Return(nil)
				repo.EXPECT().TrimUser(ctx, int64(9), history.DefaultMaxItems).Return(nil)
			},
		},
		{
			Description: "should return error when insert fails",
			Query:       "refund",
			Setup: func(ctx context.Context, repo *mocks.HistoryRepository) {
				repo.EXPECT().Insert(ctx, mock.Anything).Return(errors.New("connection refused"))
			},
			ExpectErr: "record search history: connection refused",
		},
		{
			Description: "should return error when trimming fails",
			Query:       "refund",
			Setup: func(ctx context.Context, repo *mocks.HistoryRepository) {
				repo.EXPECT().Insert(ctx, mock.Anything).Return(nil)
				repo.EXPECT().TrimUser(ctx, int64(9), history.DefaultMaxItems).Return(errors.New("deadlock"))
			},
			ExpectErr: "trim search history: deadlock",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Description, func(t *testing.T) {
			ctx := context.Background()
			repo := mocks.NewHistoryRepository(t)
			if tc.Setup != nil {
				tc.Setup(ctx, repo)
			}

			svc := history.NewService(log.NewNoop(), repo,
				history.ServiceWithClock(clock),
				history.ServiceWithMaxEntries(tc.MaxEntries),
				history.ServiceWithMinQueryLength(tc.MinLength),
			)
			err := svc.Record(ctx, 9, tc.Query, 4)
			if tc.ExpectErr != "" {
				assert.EqualError(t, err, tc.ExpectErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestServiceList(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewHistoryRepository(t)
	entries := []history.Entry{{ID: 2, Query: "refund"}, {ID: 1, Query: "invoice"}}
	repo.EXPECT().ListByUser(ctx, int64(5), history.DefaultListSize).Return(entries, nil)
	repo.EXPECT().ListByUser(ctx, int64(5), 1).Return(entries[:1], nil)

	svc := history.NewService(log.NewNoop(), repo)

	got, err := svc.List(ctx, 5, 0)
	assert.NoError(t, err)
	assert.Equal(t, entries, got)

	got, err = svc.List(ctx, 5, 1)
	assert.NoError(t, err)
	assert.Equal(t, entries[:1], got)
}

func TestServiceClear(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewHistoryRepository(t)
	repo.EXPECT().DeleteByUser(ctx, int64(5)).Return(nil).Once()
	repo.EXPECT().DeleteByUser(ctx, int64(6)).Return(errors.New("boom")).Once()

	svc := history.NewService(log.NewNoop(), repo)
	assert.NoError(t, svc.Clear(ctx, 5))
	assert.EqualError(t, svc.Clear(ctx, 6), "clear search history: boom")
}

func TestServiceStatistics(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewHistoryRepository(t)
	expected := history.Statistics{
		TotalSearches: 12,
		UniqueQueries: 4,
		SearchesToday: 3,
		TopQueries:    []history.QueryCount{{Query: "refund", Count: 6}},
	}
	startOfDay := time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC)
	repo.EXPECT().Stats(ctx, mock.MatchedBy(func(since time.Time) bool {
		return since.Equal(startOfDay)
	}), history.TopQueriesSize).Return(expected, nil)

	svc := history.NewService(log.NewNoop(), repo, history.ServiceWithClock(clock))
	got, err := svc.Statistics(ctx)
	assert.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestServiceStatisticsInClockZone(t *testing.T) {
	ctx := context.Background()
	tokyo := time.FixedZone("JST", 9*60*60)
	// 2024-03-13 02:00 in Tokyo is still the 12th in UTC
	now := time.Date(2024, 3, 13, 2, 0, 0, 0, tokyo)

	repo := mocks.NewHistoryRepository(t)
	repo.EXPECT().Stats(ctx, time.Date(2024, 3, 13, 0, 0, 0, 0, tokyo), history.TopQueriesSize).
		Return(history.Statistics{}, nil)

	svc := history.NewService(log.NewNoop(), repo, history.ServiceWithClock(func() time.Time { return now }))
	_, err := svc.Statistics(ctx)
	assert.NoError(t, err)
}

func TestServiceQueries(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewHistoryRepository(t)
	repo.EXPECT().FrequentQueries(ctx, history.QueryFilter{UserID: 5, Prefix: "ref", Limit: 5}).Return([]string{"refund"}, nil)
	repo.EXPECT().FrequentQueries(ctx, history.QueryFilter{Prefix: "ref", Limit: 5}).Return([]string{"refund", "referral"}, nil)

	svc := history.NewService(log.NewNoop(), repo)

	mine, err := svc.MatchingQueries(ctx, 5, "ref", 5)
	assert.NoError(t, err)
	assert.Equal(t, []string{"refund"}, mine)

	anonymous, err := svc.MatchingQueries(ctx, 0, "ref", 5)
	assert.NoError(t, err)
	assert.Empty(t, anonymous)

	popular, err := svc.PopularQueries(ctx, "ref", 5)
	assert.NoError(t, err)
	assert.Equal(t, []string{"refund", "referral"}, popular)
}
