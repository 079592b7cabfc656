package search

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/goto/salt/log"
	"github.com/goto/ticketsearch/core/history"
	"github.com/goto/ticketsearch/core/query"
	"github.com/goto/ticketsearch/core/ticket"
	"github.com/goto/ticketsearch/pkg/statsd"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

//go:generate mockery --name=ResultCache -r --case underscore --with-expecter --structname ResultCache --filename result_cache.go --output=./mocks

type ResultCache interface {
	// GetOrCompute returns the page stored under key or computes and
	// stores it for ttl. A ttl of zero or less bypasses the cache.
	GetOrCompute(ctx context.Context, key CacheKey, ttl time.Duration, compute func(context.Context) (ResultPage, error)) (ResultPage, error)
	// InvalidateMailboxes drops every entry whose scope contains one of ids.
	InvalidateMailboxes(ids ...int64)
	Flush()
}

//go:generate mockery --name=HistoryStore -r --case underscore --with-expecter --structname HistoryStore --filename history_store.go --output=./mocks

type HistoryStore interface {
	Record(ctx context.Context, userID int64, query string, resultCount int) error
	List(ctx context.Context, userID int64, limit int) ([]history.Entry, error)
	Clear(ctx context.Context, userID int64) error
	Statistics(ctx context.Context) (history.Statistics, error)
}

//go:generate mockery --name=Suggester -r --case underscore --with-expecter --structname Suggester --filename suggester.go --output=./mocks

type Suggester interface {
	Suggest(ctx context.Context, userID int64, scope ScopeSet, prefix string, limit int) ([]string, error)
}

//go:generate mockery --name=Worker -r --case underscore --with-expecter --structname Worker --filename worker_mock.go --output=./mocks

type Worker interface {
	EnqueueIndexRecordJob(ctx context.Context, recordID int64) error
	EnqueueDeleteRecordJob(ctx context.Context, recordID, mailboxID int64) error
	Close() error
}

// CacheKey identifies a result page. Two requests with equal keys return
// the same page.
type CacheKey struct {
	Text    string   `json:"text"`
	Terms   []string `json:"terms"`
	Phrases []string `json:"phrases"`
	Filters Filters  `json:"filters"`
	Scope   ScopeSet `json:"scope"`
	Page    int      `json:"page"`
	PerPage int      `json:"per_page"`
}

func NewCacheKey(req Request) CacheKey {
	return CacheKey{
		Text:    strings.ToLower(strings.Join(strings.Fields(req.Query.CleanedText), " ")),
		Terms:   req.Query.Terms,
		Phrases: req.Query.Phrases,
		Filters: req.Filters,
		Scope:   req.Scope,
		Page:    req.Page,
		PerPage: req.PerPage,
	}
}

type ServiceDeps struct {
	Config    Config
	Backends  []Backend
	Indexers  []Indexer
	Records   ticket.Repository
	Scopes    ScopeProvider
	Cache     ResultCache
	History   HistoryStore
	Suggester Suggester
	Worker    Worker
	Logger    log.Logger
	StatsD    *statsd.Reporter
	Now       func() time.Time
}

// Service composes parsing, scope resolution, caching and the backend
// fallback chain. None of its exported methods fail: errors are logged
// and turned into the documented fallback values.
type Service struct {
	config    Config
	backends  map[string]Backend
	indexers  []Indexer
	records   ticket.Repository
	scopes    ScopeProvider
	cache     ResultCache
	history   HistoryStore
	suggester Suggester
	worker    Worker
	logger    log.Logger
	statsd    *statsd.Reporter
	now       func() time.Time

	searchCounter metric.Int64Counter
}

func NewService(deps ServiceDeps) *Service {
	searchCounter, err := otel.Meter("github.com/goto/ticketsearch/core/search").
		Int64Counter("ticketsearch.search.request")
	if err != nil {
		otel.Handle(err)
	}

	backends := make(map[string]Backend, len(deps.Backends))
	for _, b := range deps.Backends {
		backends[b.Name()] = b
	}

	logger := deps.Logger
	if logger == nil {
		logger = log.NewNoop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		config:    deps.Config,
		backends:  backends,
		indexers:  deps.Indexers,
		records:   deps.Records,
		scopes:    deps.Scopes,
		cache:     deps.Cache,
		history:   deps.History,
		suggester: deps.Suggester,
		worker:    deps.Worker,
		logger:    logger,
		statsd:    deps.StatsD,
		now:       now,

		searchCounter: searchCounter,
	}
}

// PerformSearch runs raw against the configured backend chain. The boolean
// is false when the caller should fall back to its own search: the query is
// too short or every backend failed.
func (s *Service) PerformSearch(ctx context.Context, raw string, flt Filters, user User) (ResultPage, bool) {
	if utf8.RuneCountInString(strings.TrimSpace(raw)) < s.config.MinQueryLength {
		return ResultPage{}, false
	}

	reqID := uuid.NewString()
	logger := s.logger

	now := s.now()
	parsed := query.Parse(raw, now)
	flt = flt.WithOperators(parsed).Normalize(user.ID, now)

	scope, err := s.scopes.VisibleMailboxes(ctx, user.ID)
	if err != nil {
		logger.Error("resolve search scope", "request_id", reqID, "user_id", user.ID, "err", err)
		s.instrumentSearch(ctx, "", err)
		return ResultPage{}, false
	}
	scope = scope.Narrow(flt.MailboxID)

	req := Request{
		Query:   parsed,
		Filters: flt,
		Scope:   scope,
		Page:    flt.Page,
		PerPage: s.config.ResultsPerPage,
	}
	if scope.IsEmpty() {
		return ResultPage{Items: []RankedRecord{}, Page: req.Page, PerPage: req.PerPage}, true
	}

	compute := func(ctx context.Context) (ResultPage, error) {
		return s.searchChain(ctx, reqID, req)
	}

	var page ResultPage
	if s.cache != nil {
		page, err = s.cache.GetOrCompute(ctx, NewCacheKey(req), s.config.CacheDuration, compute)
	} else {
		page, err = compute(ctx)
	}
	s.instrumentSearch(ctx, page.Backend, err)
	if err != nil {
		logger.Warn("search fell back to host", "request_id", reqID, "query", raw, "err", err)
		return ResultPage{}, false
	}

	logger.Debug("search completed",
		"request_id", reqID,
		"backend", page.Backend,
		"total", page.TotalCount,
	)
	return page, true
}

func (s *Service) searchChain(ctx context.Context, reqID string, req Request) (ResultPage, error) {
	var errs []error
	for _, name := range s.config.Chain() {
		backend, ok := s.backends[name]
		if !ok {
			continue
		}

		start := s.now()
		page, err := backend.Search(ctx, req)
		s.statsd.Timing("search.backend", s.now().Sub(start)).
			Tag("backend", name).
			SuccessIf(err).
			Publish()
		if err == nil {
			page.Backend = name
			return page, nil
		}
		if ctx.Err() != nil {
			return ResultPage{}, ctx.Err()
		}

		if errors.Is(err, ErrBackendUnavailable) {
			s.logger.Info("search backend unavailable", "request_id", reqID, "backend", name, "err", err)
		} else {
			s.logger.Error("search backend failed", "request_id", reqID, "backend", name, "err", err)
		}
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return ResultPage{}, ErrNoBackend
	}
	return ResultPage{}, errors.Join(errs...)
}

// GetSuggestions returns autocomplete entries for prefix, or nil when
// suggestions are disabled or unavailable.
func (s *Service) GetSuggestions(ctx context.Context, prefix string, user User, limit int) []string {
	if !s.config.EnableSuggestions || s.suggester == nil {
		return nil
	}

	scope, err := s.scopes.VisibleMailboxes(ctx, user.ID)
	if err != nil {
		s.logger.Warn("resolve suggestion scope", "user_id", user.ID, "err", err)
		scope = ScopeSet{}
	}

	suggestions, err := s.suggester.Suggest(ctx, user.ID, scope, prefix, limit)
	if err != nil {
		s.logger.Warn("suggest", "prefix", prefix, "err", err)
		return nil
	}
	return suggestions
}

func (s *Service) TrackHistory(ctx context.Context, raw string, user User, resultCount int) {
	if !s.config.TrackHistory || s.history == nil || user.ID == 0 {
		return
	}
	if err := s.history.Record(ctx, user.ID, raw, resultCount); err != nil {
		s.logger.Warn("track search history", "user_id", user.ID, "err", err)
	}
}

func (s *Service) History(ctx context.Context, user User, limit int) []history.Entry {
	if s.history == nil || user.ID == 0 {
		return nil
	}
	entries, err := s.history.List(ctx, user.ID, limit)
	if err != nil {
		s.logger.Warn("list search history", "user_id", user.ID, "err", err)
		return nil
	}
	return entries
}

func (s *Service) ClearHistory(ctx context.Context, user User) {
	if s.history == nil || user.ID == 0 {
		return
	}
	if err := s.history.Clear(ctx, user.ID); err != nil {
		s.logger.Warn("clear search history", "user_id", user.ID, "err", err)
	}
}

// ClearCache drops cached pages scoped to any of mailboxIDs, or every page
// when none is given.
func (s *Service) ClearCache(ctx context.Context, mailboxIDs ...int64) {
	if s.cache == nil {
		return
	}
	if len(mailboxIDs) == 0 {
		s.cache.Flush()
		return
	}
	s.cache.InvalidateMailboxes(mailboxIDs...)
}

// RebuildIndex rebuilds every derived index and returns the largest number
// of records indexed by one of them. The result cache is flushed afterwards.
func (s *Service) RebuildIndex(ctx context.Context, progress ProgressFunc) int {
	if progress == nil {
		progress = func(int, int) {}
	}

	var indexed int
	for _, idx := range s.indexers {
		start := s.now()
		n, err := idx.Reindex(ctx, progress)
		if err != nil {
			s.logger.Error("rebuild index", "indexer", idx.Name(), "indexed", n, "err", err)
		} else {
			s.logger.Info("rebuilt index", "indexer", idx.Name(), "indexed", n, "took", s.now().Sub(start).String())
		}
		if n > indexed {
			indexed = n
		}
	}

	s.ClearCache(ctx)
	return indexed
}

func (s *Service) GetStatistics(ctx context.Context) Statistics {
	var stats Statistics
	if s.history != nil {
		hs, err := s.history.Statistics(ctx)
		if err != nil {
			s.logger.Warn("search history statistics", "err", err)
		}
		stats.Statistics = hs
	}

	for _, idx := range s.indexers {
		n, err := idx.IndexedCount(ctx)
		if err != nil {
			s.logger.Warn("indexed count", "indexer", idx.Name(), "err", err)
			continue
		}
		if n > stats.IndexedCount {
			stats.IndexedCount = n
		}
	}
	return stats
}

// RecordSaved is called by the host after a record is created or updated.
// Cached pages of the record's mailbox are dropped once indexing has been
// dispatched, so a search racing the hook cannot cache the old version
// past the index write in realtime mode. In queue mode the job handler
// invalidates again after writing.
func (s *Service) RecordSaved(ctx context.Context, recordID int64) {
	rec, loadErr := s.records.GetByID(ctx, recordID)
	if loadErr != nil {
		s.logger.Warn("load saved record", "record_id", recordID, "err", loadErr)
	}

	if s.dispatchIndexing() {
		if err := s.worker.EnqueueIndexRecordJob(ctx, recordID); err != nil {
			s.logger.Warn("enqueue index record", "record_id", recordID, "err", err)
		}
	}

	if loadErr != nil {
		s.ClearCache(ctx)
		return
	}
	s.ClearCache(ctx, rec.MailboxID)
}

// RecordDeleted is called by the host after a record is removed. Like
// RecordSaved it invalidates after dispatching the index change.
func (s *Service) RecordDeleted(ctx context.Context, recordID, mailboxID int64) {
	if s.dispatchIndexing() {
		if err := s.worker.EnqueueDeleteRecordJob(ctx, recordID, mailboxID); err != nil {
			s.logger.Warn("enqueue delete record", "record_id", recordID, "err", err)
		}
	}

	if mailboxID > 0 {
		s.ClearCache(ctx, mailboxID)
		return
	}
	s.ClearCache(ctx)
}

func (s *Service) dispatchIndexing() bool {
	return s.worker != nil && s.config.IndexMode != IndexModeScheduled
}

func (s *Service) instrumentSearch(ctx context.Context, backend string, err error) {
	if s.searchCounter == nil {
		return
	}
	s.searchCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("ticketsearch.backend", backend),
		attribute.Bool("operation.success", err == nil),
	))
}
