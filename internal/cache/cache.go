package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash"
	"github.com/goto/salt/log"
	"github.com/goto/ticketsearch/core/search"
	"github.com/goto/ticketsearch/pkg/statsd"
	gocache "github.com/patrickmn/go-cache"
)

const keyPrefix = "search:"

type Config struct {
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" yaml:"cleanup_interval" default:"10m"`
}

type entry struct {
	page  search.ResultPage
	scope search.ScopeSet
}

// ResultCache keeps result pages in memory for a bounded time. Every entry
// remembers the mailboxes it was scoped to so that a change in one mailbox
// only drops the pages that could contain it.
type ResultCache struct {
	store  *gocache.Cache
	logger log.Logger
	statsd *statsd.Reporter
}

type Option func(*ResultCache)

func WithLogger(logger log.Logger) Option {
	return func(c *ResultCache) {
		c.logger = logger
	}
}

func WithStatsD(reporter *statsd.Reporter) Option {
	return func(c *ResultCache) {
		c.statsd = reporter
	}
}

func New(cfg Config, opts ...Option) *ResultCache {
	cleanup := cfg.CleanupInterval
	if cleanup <= 0 {
		cleanup = 10 * time.Minute
	}

	c := &ResultCache{
		store:  gocache.New(gocache.NoExpiration, cleanup),
		logger: log.NewNoop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key hashes the canonical JSON form of key.
func Key(key search.CacheKey) (string, error) {
	raw, err := json.Marshal(key)
	if err != nil {
		return "", fmt.Errorf("encode cache key: %w", err)
	}
	return keyPrefix + strconv.FormatUint(xxhash.Sum64(raw), 16), nil
}

func (c *ResultCache) GetOrCompute(ctx context.Context, key search.CacheKey, ttl time.Duration, compute func(context.Context) (search.ResultPage, error)) (search.ResultPage, error) {
	if ttl <= 0 {
		return compute(ctx)
	}

	k, err := Key(key)
	if err != nil {
		c.logger.Warn("bypassing result cache", "err", err)
		return compute(ctx)
	}

	if v, ok := c.store.Get(k); ok {
		c.statsd.Incr("cache.lookup").Tag("result", "hit").Publish()
		return v.(entry).page, nil
	}
	c.statsd.Incr("cache.lookup").Tag("result", "miss").Publish()

	page, err := compute(ctx)
	if err != nil {
		return search.ResultPage{}, err
	}
	c.store.Set(k, entry{page: page, scope: key.Scope}, ttl)
	return page, nil
}

// InvalidateMailboxes drops every page whose scope contains one of ids.
func (c *ResultCache) InvalidateMailboxes(ids ...int64) {
	if len(ids) == 0 {
		return
	}

	var dropped int
	for k, item := range c.store.Items() {
		e, ok := item.Object.(entry)
		if !ok || e.scope.Intersects(ids...) {
			c.store.Delete(k)
			dropped++
		}
	}
	c.logger.Debug("invalidated cached results", "mailboxes", ids, "dropped", dropped)
}

func (c *ResultCache) Flush() {
	c.store.Flush()
	c.logger.Debug("flushed result cache")
}

// Len returns the number of unexpired pages.
func (c *ResultCache) Len() int {
	return len(c.store.Items())
}
