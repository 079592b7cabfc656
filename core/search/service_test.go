package search_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/goto/salt/log"
	"github.com/goto/ticketsearch/core/history"
	"github.com/goto/ticketsearch/core/search"
	"github.com/goto/ticketsearch/core/search/mocks"
	"github.com/goto/ticketsearch/core/ticket"
	ticketmocks "github.com/goto/ticketsearch/core/ticket/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type memoryCache struct {
	pages       map[string]search.ResultPage
	invalidated []int64
	flushed     int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{pages: map[string]search.ResultPage{}}
}

func (c *memoryCache) GetOrCompute(ctx context.Context, key search.CacheKey, ttl time.Duration, compute func(context.Context) (search.ResultPage, error)) (search.ResultPage, error) {
	raw, _ := json.Marshal(key)
	if page, ok := c.pages[string(raw)]; ok && ttl > 0 {
		return page, nil
	}
	page, err := compute(ctx)
	if err != nil {
		return search.ResultPage{}, err
	}
	if ttl > 0 {
		c.pages[string(raw)] = page
	}
	return page, nil
}

func (c *memoryCache) InvalidateMailboxes(ids ...int64) {
	c.invalidated = append(c.invalidated, ids...)
}

func (c *memoryCache) Flush() {
	c.flushed++
	c.pages = map[string]search.ResultPage{}
}

type ServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	cfg       search.Config
	direct    *mocks.Backend
	fulltext  *mocks.Backend
	external  *mocks.Backend
	indexer   *mocks.Indexer
	scopes    *mocks.ScopeProvider
	history   *mocks.HistoryStore
	suggester *mocks.Suggester
	worker    *mocks.Worker
	records   *ticketmocks.RecordRepository
	cache     *memoryCache
}

func (r *ServiceTestSuite) SetupTest() {
	r.ctx = context.Background()
	r.cfg = search.DefaultConfig()
	r.cfg.ResultsPerPage = 20

	t := r.T()
	r.direct = backendMock(t, search.BackendDirectScan)
	r.fulltext = backendMock(t, search.BackendIndexedFullText)
	r.external = backendMock(t, search.BackendExternalIndex)
	r.indexer = mocks.NewIndexer(t)
	r.indexer.EXPECT().Name().Return(search.BackendIndexedFullText).Maybe()
	r.scopes = mocks.NewScopeProvider(t)
	r.history = mocks.NewHistoryStore(t)
	r.suggester = mocks.NewSuggester(t)
	r.worker = mocks.NewWorker(t)
	r.records = ticketmocks.NewRecordRepository(t)
	r.cache = newMemoryCache()
}

func backendMock(t *testing.T, name string) *mocks.Backend {
	b := mocks.NewBackend(t)
	b.EXPECT().Name().Return(name).Maybe()
	return b
}

func (r *ServiceTestSuite) newService() *search.Service {
	return search.NewService(search.ServiceDeps{
		Config:    r.cfg,
		Backends:  []search.Backend{r.direct, r.fulltext, r.external},
		Indexers:  []search.Indexer{r.indexer},
		Records:   r.records,
		Scopes:    r.scopes,
		Cache:     r.cache,
		History:   r.history,
		Suggester: r.suggester,
		Worker:    r.worker,
		Logger:    log.NewNoop(),
		Now:       func() time.Time { return now },
	})
}

func samplePage(ids ...int64) search.ResultPage {
	page := search.ResultPage{Page: 1, PerPage: 20, TotalCount: int64(len(ids))}
	for _, id := range ids {
		page.Items = append(page.Items, search.RankedRecord{RecordID: id, Record: ticket.Record{ID: id}})
	}
	return page
}

func (r *ServiceTestSuite) TestPerformSearch() {
	user := search.User{ID: 7}

	r.Run("should return no override for short queries without touching backends", func() {
		r.SetupTest()
		page, ok := r.newService().PerformSearch(r.ctx, " a ", search.Filters{}, user)
		r.False(ok)
		r.Empty(page.Items)
	})

	r.Run("should return an empty page when the user sees no mailbox", func() {
		r.SetupTest()
		r.scopes.EXPECT().VisibleMailboxes(r.ctx, int64(7)).Return(search.NewScopeSet(), nil)

		page, ok := r.newService().PerformSearch(r.ctx, "printer", search.Filters{}, user)
		r.True(ok)
		r.Empty(page.Items)
		r.Equal(1, page.Page)
		r.Equal(20, page.PerPage)
	})

	r.Run("should return an empty page when filtering on an invisible mailbox", func() {
		r.SetupTest()
		r.scopes.EXPECT().VisibleMailboxes(r.ctx, int64(7)).Return(search.NewScopeSet(1, 2), nil)

		page, ok := r.newService().PerformSearch(r.ctx, "printer", search.Filters{MailboxID: 9}, user)
		r.True(ok)
		r.Zero(page.TotalCount)
	})

	r.Run("should pass the merged request to the preferred backend", func() {
		r.SetupTest()
		r.scopes.EXPECT().VisibleMailboxes(r.ctx, int64(7)).Return(search.NewScopeSet(1, 2, 3), nil)
		r.fulltext.EXPECT().Search(r.ctx, mock.Anything).
			Run(func(ctx context.Context, req search.Request) {
				r.Equal([]string{"printer"}, req.Query.Terms)
				r.Equal(ticket.StatusClosed, req.Filters.Status)
				r.Equal([]int64{2}, req.Scope.IDs())
				r.Equal(2, req.Page)
				r.Equal(20, req.PerPage)
			}).
			Return(samplePage(4), nil).Once()

		page, ok := r.newService().PerformSearch(r.ctx, "printer status:closed", search.Filters{MailboxID: 2, Page: 2}, user)
		r.True(ok)
		r.Equal(search.BackendIndexedFullText, page.Backend)
		r.Equal([]int64{4}, ids(page.Items))
	})

	r.Run("should serve the second identical search from cache", func() {
		r.SetupTest()
		r.scopes.EXPECT().VisibleMailboxes(r.ctx, int64(7)).Return(search.NewScopeSet(1), nil)
		r.fulltext.EXPECT().Search(r.ctx, mock.Anything).Return(samplePage(1, 2), nil).Once()

		svc := r.newService()
		first, ok := svc.PerformSearch(r.ctx, "printer jam", search.Filters{}, user)
		r.True(ok)
		second, ok := svc.PerformSearch(r.ctx, "printer jam", search.Filters{}, user)
		r.True(ok)
		r.Equal(first, second)
	})

	r.Run("should fall back along the chain", func() {
		r.SetupTest()
		r.cfg.Engine = search.BackendExternalIndex
		r.scopes.EXPECT().VisibleMailboxes(r.ctx, int64(7)).Return(search.NewScopeSet(1), nil)
		r.external.EXPECT().Search(r.ctx, mock.Anything).Return(search.ResultPage{}, search.ErrBackendUnavailable).Once()
		r.fulltext.EXPECT().Search(r.ctx, mock.Anything).
			Return(search.ResultPage{}, search.BackendError{Backend: search.BackendIndexedFullText, Op: "search", Err: errors.New("boom")}).Once()
		r.direct.EXPECT().Search(r.ctx, mock.Anything).Return(samplePage(3), nil).Once()

		page, ok := r.newService().PerformSearch(r.ctx, "printer", search.Filters{}, user)
		r.True(ok)
		r.Equal(search.BackendDirectScan, page.Backend)
	})

	r.Run("should skip fulltext when disabled", func() {
		r.SetupTest()
		r.cfg.EnableFullText = false
		r.scopes.EXPECT().VisibleMailboxes(r.ctx, int64(7)).Return(search.NewScopeSet(1), nil)
		r.direct.EXPECT().Search(r.ctx, mock.Anything).Return(samplePage(3), nil).Once()

		page, ok := r.newService().PerformSearch(r.ctx, "printer", search.Filters{}, user)
		r.True(ok)
		r.Equal(search.BackendDirectScan, page.Backend)
	})

	r.Run("should return no override when every backend fails", func() {
		r.SetupTest()
		r.scopes.EXPECT().VisibleMailboxes(r.ctx, int64(7)).Return(search.NewScopeSet(1), nil)
		r.fulltext.EXPECT().Search(r.ctx, mock.Anything).Return(search.ResultPage{}, search.ErrBackendUnavailable).Once()
		r.direct.EXPECT().Search(r.ctx, mock.Anything).Return(search.ResultPage{}, errors.New("connection reset")).Once()

		svc := r.newService()
		_, ok := svc.PerformSearch(r.ctx, "printer", search.Filters{}, user)
		r.False(ok)
		r.Empty(r.cache.pages, "failures must not be cached")
	})

	r.Run("should return no override when scope lookup fails", func() {
		r.SetupTest()
		r.scopes.EXPECT().VisibleMailboxes(r.ctx, int64(7)).Return(search.ScopeSet{}, errors.New("db down"))

		_, ok := r.newService().PerformSearch(r.ctx, "printer", search.Filters{}, user)
		r.False(ok)
	})
}

func (r *ServiceTestSuite) TestGetSuggestions() {
	user := search.User{ID: 7}

	r.Run("should pass the scope to the suggester", func() {
		r.SetupTest()
		scope := search.NewScopeSet(1, 2)
		r.scopes.EXPECT().VisibleMailboxes(r.ctx, int64(7)).Return(scope, nil)
		r.suggester.EXPECT().Suggest(r.ctx, int64(7), scope, "jo", 5).Return([]string{"John Doe <john@x.com>", "john smith"}, nil)

		got := r.newService().GetSuggestions(r.ctx, "jo", user, 5)
		r.Equal([]string{"John Doe <john@x.com>", "john smith"}, got)
	})

	r.Run("should still suggest with an empty scope when scope lookup fails", func() {
		r.SetupTest()
		r.scopes.EXPECT().VisibleMailboxes(r.ctx, int64(7)).Return(search.ScopeSet{}, errors.New("db down"))
		r.suggester.EXPECT().Suggest(r.ctx, int64(7), search.ScopeSet{}, "jo", 5).Return([]string{"john smith"}, nil)

		r.Equal([]string{"john smith"}, r.newService().GetSuggestions(r.ctx, "jo", user, 5))
	})

	r.Run("should return nil on suggester error", func() {
		r.SetupTest()
		r.scopes.EXPECT().VisibleMailboxes(r.ctx, int64(7)).Return(search.NewScopeSet(1), nil)
		r.suggester.EXPECT().Suggest(r.ctx, int64(7), mock.Anything, "jo", 5).Return(nil, errors.New("boom"))

		r.Nil(r.newService().GetSuggestions(r.ctx, "jo", user, 5))
	})

	r.Run("should return nil when disabled", func() {
		r.SetupTest()
		r.cfg.EnableSuggestions = false
		r.Nil(r.newService().GetSuggestions(r.ctx, "jo", user, 5))
	})
}

func (r *ServiceTestSuite) TestHistory() {
	user := search.User{ID: 7}

	r.Run("should record and swallow storage errors", func() {
		r.SetupTest()
		r.history.EXPECT().Record(r.ctx, int64(7), "printer", 3).Return(errors.New("disk full")).Once()
		r.NotPanics(func() { r.newService().TrackHistory(r.ctx, "printer", user, 3) })
	})

	r.Run("should not record when tracking is disabled or anonymous", func() {
		r.SetupTest()
		r.cfg.TrackHistory = false
		r.newService().TrackHistory(r.ctx, "printer", user, 3)

		r.cfg.TrackHistory = true
		r.newService().TrackHistory(r.ctx, "printer", search.User{}, 3)
	})

	r.Run("should list and clear", func() {
		r.SetupTest()
		entries := []history.Entry{{ID: 1, UserID: 7, Query: "printer"}}
		r.history.EXPECT().List(r.ctx, int64(7), 10).Return(entries, nil).Once()
		r.history.EXPECT().Clear(r.ctx, int64(7)).Return(nil).Once()

		svc := r.newService()
		r.Equal(entries, svc.History(r.ctx, user, 10))
		svc.ClearHistory(r.ctx, user)
	})
}

func (r *ServiceTestSuite) TestClearCache() {
	r.SetupTest()
	svc := r.newService()

	svc.ClearCache(r.ctx, 3, 4)
	r.Equal([]int64{3, 4}, r.cache.invalidated)
	r.Zero(r.cache.flushed)

	svc.ClearCache(r.ctx)
	r.Equal(1, r.cache.flushed)
}

func (r *ServiceTestSuite) TestRebuildIndex() {
	r.Run("should report progress, return the count and flush the cache", func() {
		r.SetupTest()
		other := mocks.NewIndexer(r.T())
		other.EXPECT().Name().Return(search.BackendExternalIndex).Maybe()

		r.indexer.EXPECT().Reindex(r.ctx, mock.Anything).
			RunAndReturn(func(ctx context.Context, progress search.ProgressFunc) (int, error) {
				progress(1, 2)
				progress(2, 2)
				return 2, nil
			}).Once()
		other.EXPECT().Reindex(r.ctx, mock.Anything).Return(1, errors.New("cluster red")).Once()

		svc := search.NewService(search.ServiceDeps{
			Config:   r.cfg,
			Indexers: []search.Indexer{r.indexer, other},
			Scopes:   r.scopes,
			Cache:    r.cache,
			Logger:   log.NewNoop(),
		})

		var calls []string
		n := svc.RebuildIndex(r.ctx, func(current, total int) {
			calls = append(calls, fmt.Sprintf("%d/%d", current, total))
		})
		r.Equal(2, n)
		r.Equal([]string{"1/2", "2/2"}, calls)
		r.Equal(1, r.cache.flushed)
	})
}

func (r *ServiceTestSuite) TestGetStatistics() {
	r.SetupTest()
	hs := history.Statistics{TotalSearches: 10, UniqueQueries: 4, SearchesToday: 2}
	r.history.EXPECT().Statistics(r.ctx).Return(hs, nil)
	r.indexer.EXPECT().IndexedCount(r.ctx).Return(int64(120), nil)

	stats := r.newService().GetStatistics(r.ctx)
	r.Equal(hs, stats.Statistics)
	r.Equal(int64(120), stats.IndexedCount)
}

func (r *ServiceTestSuite) TestRecordHooks() {
	r.Run("saved record invalidates its mailbox and enqueues indexing", func() {
		r.SetupTest()
		r.records.EXPECT().GetByID(r.ctx, int64(11)).Return(ticket.Record{ID: 11, MailboxID: 3}, nil)
		r.worker.EXPECT().EnqueueIndexRecordJob(r.ctx, int64(11)).
			Run(func(context.Context, int64) { r.Empty(r.cache.invalidated) }).
			Return(nil).Once()

		r.newService().RecordSaved(r.ctx, 11)
		r.Equal([]int64{3}, r.cache.invalidated)
	})

	r.Run("unknown saved record flushes the cache", func() {
		r.SetupTest()
		r.records.EXPECT().GetByID(r.ctx, int64(11)).Return(ticket.Record{}, ticket.NotFoundError{RecordID: 11})
		r.worker.EXPECT().EnqueueIndexRecordJob(r.ctx, int64(11)).Return(errors.New("queue down")).Once()

		r.newService().RecordSaved(r.ctx, 11)
		r.Equal(1, r.cache.flushed)
	})

	r.Run("deleted record enqueues removal", func() {
		r.SetupTest()
		r.worker.EXPECT().EnqueueDeleteRecordJob(r.ctx, int64(11), int64(5)).
			Run(func(context.Context, int64, int64) { r.Empty(r.cache.invalidated) }).
			Return(nil).Once()

		r.newService().RecordDeleted(r.ctx, 11, 5)
		r.Equal([]int64{5}, r.cache.invalidated)
	})

	r.Run("scheduled mode only invalidates", func() {
		r.SetupTest()
		r.cfg.IndexMode = search.IndexModeScheduled

		r.newService().RecordDeleted(r.ctx, 11, 0)
		r.Equal(1, r.cache.flushed)
	})
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func TestPerformSearchWithoutCache(t *testing.T) {
	ctx := context.Background()
	scopes := mocks.NewScopeProvider(t)
	scopes.EXPECT().VisibleMailboxes(ctx, int64(1)).Return(search.NewScopeSet(1), nil)
	direct := backendMock(t, search.BackendDirectScan)
	direct.EXPECT().Search(ctx, mock.Anything).Return(samplePage(8), nil).Once()

	cfg := search.DefaultConfig()
	cfg.Engine = search.BackendDirectScan
	svc := search.NewService(search.ServiceDeps{
		Config:   cfg,
		Backends: []search.Backend{direct},
		Scopes:   scopes,
	})

	page, ok := svc.PerformSearch(ctx, "refund", search.Filters{}, search.User{ID: 1})
	require.True(t, ok)
	assert.Equal(t, []int64{8}, ids(page.Items))
}
