package history

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goto/salt/log"
	"github.com/goto/ticketsearch/core/query"
)

const (
	MinQueryLength  = 2
	MaxQueryLength  = 255
	DefaultMaxItems = 50
	DefaultListSize = 10
	TopQueriesSize  = 10
)

type Service struct {
	repo           Repository
	logger         log.Logger
	maxEntries     int
	minQueryLength int
	now            func() time.Time
}

type ServiceOption func(*Service)

func ServiceWithMaxEntries(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.maxEntries = n
		}
	}
}

// ServiceWithMinQueryLength sets the shortest query, in characters, that is
// recorded.
func ServiceWithMinQueryLength(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.minQueryLength = n
		}
	}
}

func ServiceWithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(logger log.Logger, repo Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:           repo,
		logger:         logger,
		maxEntries:     DefaultMaxItems,
		minQueryLength: MinQueryLength,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record appends a search to the user's history and evicts the oldest
// entries beyond the configured maximum. Queries shorter than the
// configured minimum length are ignored. Two concurrent writers for the same user may briefly leave
// one entry over the limit.
func (s *Service) Record(ctx context.Context, userID int64, query string, resultCount int) error {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < s.minQueryLength {
		return nil
	}
	query = truncateRunes(query, MaxQueryLength)

	if err := s.repo.Insert(ctx, Entry{
		UserID:      userID,
		Query:       query,
		ResultCount: resultCount,
		CreatedAt:   s.now(),
	}); err != nil {
		return fmt.Errorf("record search history: %w", err)
	}

	if err := s.repo.TrimUser(ctx, userID, s.maxEntries); err != nil {
		return fmt.Errorf("trim search history: %w", err)
	}
	return nil
}

// List returns the newest entries of the user, newest first.
func (s *Service) List(ctx context.Context, userID int64, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultListSize
	}
	return s.repo.ListByUser(ctx, userID, limit)
}

func (s *Service) Clear(ctx context.Context, userID int64) error {
	if err := s.repo.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("clear search history: %w", err)
	}
	return nil
}

func (s *Service) Statistics(ctx context.Context) (Statistics, error) {
	startOfToday := query.StartOfDay(s.now())
	stats, err := s.repo.Stats(ctx, startOfToday, TopQueriesSize)
	if err != nil {
		return Statistics{}, fmt.Errorf("search history statistics: %w", err)
	}
	return stats, nil
}

// MatchingQueries returns the user's own queries starting with prefix that
// found something, most frequent first.
func (s *Service) MatchingQueries(ctx context.Context, userID int64, prefix string, limit int) ([]string, error) {
	if userID == 0 {
		return nil, nil
	}
	return s.repo.FrequentQueries(ctx, QueryFilter{UserID: userID, Prefix: prefix, Limit: limit})
}

// PopularQueries is MatchingQueries across every user.
func (s *Service) PopularQueries(ctx context.Context, prefix string, limit int) ([]string, error) {
	return s.repo.FrequentQueries(ctx, QueryFilter{Prefix: prefix, Limit: limit})
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
