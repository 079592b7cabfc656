package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/goto/salt/log"
	"github.com/goto/ticketsearch/core/history"
	"github.com/goto/ticketsearch/core/search"
	"github.com/goto/ticketsearch/core/suggestion"
	"github.com/goto/ticketsearch/internal/cache"
	esStore "github.com/goto/ticketsearch/internal/store/elasticsearch"
	"github.com/goto/ticketsearch/internal/store/postgres"
	"github.com/goto/ticketsearch/internal/workermanager"
	"github.com/goto/ticketsearch/pkg/statsd"
	"github.com/goto/ticketsearch/pkg/telemetry"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// clearer is implemented by indexes that can drop their projection.
type clearer interface {
	Clear(ctx context.Context) error
}

// app holds the dependencies shared by the commands of one invocation.
type app struct {
	cfg    *Config
	logger log.Logger
	nrApp  *newrelic.Application

	pgClient *postgres.Client
	esClient *esStore.Client
	reporter *statsd.Reporter
	cache    *cache.ResultCache
	indexers []search.Indexer
	manager  *workermanager.Manager
	service  *search.Service

	closers []func()
}

func initLogger(logLevel string) *log.Logrus {
	logger := log.NewLogrus(
		log.LogrusWithLevel(logLevel),
		log.LogrusWithWriter(os.Stderr),
	)
	return logger
}

func newApp(ctx context.Context, cfg *Config) (_ *app, err error) {
	if err := cfg.Search.Validate(); err != nil {
		return nil, fmt.Errorf("invalid search config: %w", err)
	}

	logger := initLogger(cfg.LogLevel)
	a := &app{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	cfg.Telemetry.AppVersion = Version
	nrApp, cleanUp, err := telemetry.Init(ctx, cfg.Telemetry, logger)
	if err != nil {
		return nil, err
	}
	a.nrApp = nrApp
	a.closers = append(a.closers, cleanUp)

	reporter, err := statsd.Init(logger, cfg.StatsD)
	if err != nil {
		return nil, err
	}
	a.reporter = reporter
	a.closers = append(a.closers, reporter.Close)

	pgClient, err := initPostgres(logger, cfg.DB)
	if err != nil {
		return nil, err
	}
	a.pgClient = pgClient
	a.closers = append(a.closers, func() {
		if err := pgClient.Close(); err != nil {
			logger.Warn("close postgres client", "err", err)
		}
	})

	records, err := postgres.NewRecordRepository(pgClient)
	if err != nil {
		return nil, fmt.Errorf("create record repository: %w", err)
	}
	scopes, err := postgres.NewScopeRepository(pgClient)
	if err != nil {
		return nil, fmt.Errorf("create scope repository: %w", err)
	}
	historyRepo, err := postgres.NewHistoryRepository(pgClient)
	if err != nil {
		return nil, fmt.Errorf("create history repository: %w", err)
	}
	suggestionRepo, err := postgres.NewSuggestionRepository(pgClient)
	if err != nil {
		return nil, fmt.Errorf("create suggestion repository: %w", err)
	}

	backends, err := a.initBackends(records)
	if err != nil {
		return nil, err
	}

	a.cache = cache.New(cfg.Cache, cache.WithLogger(logger), cache.WithStatsD(reporter))

	historyService := history.NewService(logger, historyRepo,
		history.ServiceWithMaxEntries(cfg.Search.MaxHistory),
		history.ServiceWithMinQueryLength(cfg.Search.MinQueryLength),
	)

	var suggester search.Suggester
	if cfg.Search.EnableSuggestions {
		suggester = suggestion.NewEngine(logger, suggestionRepo, historyService)
	}

	w, err := a.initWorker(ctx, records)
	if err != nil {
		return nil, err
	}

	a.service = search.NewService(search.ServiceDeps{
		Config:    cfg.Search,
		Backends:  backends,
		Indexers:  a.indexers,
		Records:   records,
		Scopes:    scopes,
		Cache:     a.cache,
		History:   historyService,
		Suggester: suggester,
		Worker:    w,
		Logger:    logger,
		StatsD:    reporter,
	})
	return a, nil
}

// initBackends creates the backends of the configured chain. Backends
// keeping a projection are also collected as indexers.
func (a *app) initBackends(records *postgres.RecordRepository) ([]search.Backend, error) {
	cfg := a.cfg.Search
	model := cfg.Model()

	var backends []search.Backend
	for _, name := range cfg.Chain() {
		switch name {
		case search.BackendDirectScan:
			b, err := postgres.NewDirectScanBackend(a.pgClient, model,
				postgres.DirectScanWithMaxCandidates(cfg.MaxCandidates),
				postgres.DirectScanWithSoundex(postgres.NewSoundexProbe(a.pgClient)),
				postgres.DirectScanWithLogger(a.logger),
			)
			if err != nil {
				return nil, fmt.Errorf("create direct scan backend: %w", err)
			}
			backends = append(backends, b)

		case search.BackendIndexedFullText:
			b, err := postgres.NewFullTextBackend(a.pgClient, postgres.NewFullTextProbe(a.pgClient), model,
				postgres.FullTextWithMaxCandidates(cfg.MaxCandidates),
				postgres.FullTextWithLogger(a.logger),
			)
			if err != nil {
				return nil, fmt.Errorf("create full text backend: %w", err)
			}
			backends = append(backends, b)
			a.indexers = append(a.indexers, b)

		case search.BackendExternalIndex:
			esClient, err := initElasticsearch(a.logger, a.cfg.Elasticsearch)
			if err != nil {
				return nil, err
			}
			a.esClient = esClient
			b := esStore.NewSearchBackend(esClient, records, model)
			backends = append(backends, b)
			a.indexers = append(a.indexers, b)
		}
	}
	return backends, nil
}

// initWorker picks how record changes reach the indexes. Realtime mode
// indexes in the calling process, the other modes go through the job
// queue.
func (a *app) initWorker(ctx context.Context, records *postgres.RecordRepository) (search.Worker, error) {
	deps := workermanager.Deps{
		Config:   a.cfg.Worker,
		Indexers: a.indexers,
		Records:  records,
		Cache:    a.cache,
		Logger:   a.logger,
	}
	if a.cfg.Search.IndexMode == search.IndexModeScheduled {
		deps.RebuildInterval = a.cfg.Search.RebuildInterval
	}

	if a.cfg.Search.IndexMode == search.IndexModeRealtime {
		return workermanager.NewInSituWorker(deps), nil
	}

	mgr, err := workermanager.New(ctx, deps)
	if err != nil {
		return nil, err
	}
	a.manager = mgr
	a.closers = append(a.closers, func() {
		if err := mgr.Close(); err != nil {
			a.logger.Warn("close worker manager", "err", err)
		}
	})
	return mgr, nil
}

// clearIndexes drops the projection of every index.
func (a *app) clearIndexes(ctx context.Context) error {
	var errs []error
	for _, idx := range a.indexers {
		c, ok := idx.(clearer)
		if !ok {
			continue
		}
		if err := c.Clear(ctx); err != nil {
			errs = append(errs, fmt.Errorf("clear %s: %w", idx.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// run executes fn inside a New Relic transaction named after the command.
func (a *app) run(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, end := telemetry.StartTransaction(ctx, a.nrApp, name)
	err := fn(ctx)
	end(err)
	return err
}

func initPostgres(logger log.Logger, cfg postgres.Config) (*postgres.Client, error) {
	pgClient, err := postgres.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create postgres client: %w", err)
	}
	logger.Debug("connected to postgres server", "host", cfg.Host, "port", cfg.Port)

	return pgClient, nil
}

func initElasticsearch(logger log.Logger, cfg esStore.Config) (*esStore.Client, error) {
	esClient, err := esStore.NewClient(logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}
	info, err := esClient.Init()
	if err != nil {
		// the chain falls back to postgres when the cluster is down
		logger.Warn("elasticsearch cluster is not reachable", "err", err)
		return esClient, nil
	}
	logger.Debug("connected to elasticsearch cluster", "config", info)

	return esClient, nil
}
