package suggestion

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goto/salt/log"
	"github.com/goto/ticketsearch/core/search"
	"github.com/goto/ticketsearch/core/ticket"
)

const (
	MinPrefixLength = 2
	DefaultLimit    = 5
)

//go:generate mockery --name=Lookup -r --case underscore --with-expecter --structname Lookup --filename lookup.go --output=./mocks

// Lookup queries live records restricted to a set of mailboxes.
type Lookup interface {
	Customers(ctx context.Context, mailboxIDs []int64, prefix string, limit int) ([]ticket.Customer, error)
	RecordNumbers(ctx context.Context, mailboxIDs []int64, prefix string, limit int) ([]int64, error)
	Subjects(ctx context.Context, mailboxIDs []int64, prefix string, limit int) ([]string, error)
}

//go:generate mockery --name=HistorySource -r --case underscore --with-expecter --structname HistorySource --filename history_source.go --output=./mocks

type HistorySource interface {
	MatchingQueries(ctx context.Context, userID int64, prefix string, limit int) ([]string, error)
	PopularQueries(ctx context.Context, prefix string, limit int) ([]string, error)
}

type Engine struct {
	lookup  Lookup
	history HistorySource
	logger  log.Logger
}

func NewEngine(logger log.Logger, lookup Lookup, history HistorySource) *Engine {
	return &Engine{lookup: lookup, history: history, logger: logger}
}

// Suggest merges suggestions from every source in priority order: matching
// customers, record numbers, subjects, the user's own successful queries
// and finally popular queries. Entries are deduplicated case and
// whitespace insensitively. A failing source is skipped.
func (e *Engine) Suggest(ctx context.Context, userID int64, scope search.ScopeSet, prefix string, limit int) ([]string, error) {
	prefix = strings.TrimSpace(prefix)
	if utf8.RuneCountInString(prefix) < MinPrefixLength {
		return []string{}, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	m := newMerger(limit)
	for _, src := range e.sources(userID, scope, prefix) {
		if m.full() {
			break
		}
		if err := ctx.Err(); err != nil {
			return m.items, err
		}

		items, err := src.fetch(ctx, limit)
		if err != nil {
			e.logger.Warn("suggestion source failed", "source", src.name, "prefix", prefix, "err", err)
			continue
		}
		m.add(items...)
	}
	return m.items, nil
}

type source struct {
	name  string
	fetch func(ctx context.Context, limit int) ([]string, error)
}

func (e *Engine) sources(userID int64, scope search.ScopeSet, prefix string) []source {
	var srcs []source
	if e.lookup != nil && !scope.IsEmpty() {
		mailboxIDs := scope.IDs()
		srcs = append(srcs, source{name: "customers", fetch: func(ctx context.Context, limit int) ([]string, error) {
			customers, err := e.lookup.Customers(ctx, mailboxIDs, prefix, limit)
			if err != nil {
				return nil, err
			}
			out := make([]string, 0, len(customers))
			for _, c := range customers {
				out = append(out, c.Display())
			}
			return out, nil
		}})

		if number := strings.TrimPrefix(prefix, "#"); isDigits(number) {
			srcs = append(srcs, source{name: "numbers", fetch: func(ctx context.Context, limit int) ([]string, error) {
				numbers, err := e.lookup.RecordNumbers(ctx, mailboxIDs, number, limit)
				if err != nil {
					return nil, err
				}
				out := make([]string, 0, len(numbers))
				for _, n := range numbers {
					out = append(out, "#"+strconv.FormatInt(n, 10))
				}
				return out, nil
			}})
		}

		srcs = append(srcs, source{name: "subjects", fetch: func(ctx context.Context, limit int) ([]string, error) {
			return e.lookup.Subjects(ctx, mailboxIDs, prefix, limit)
		}})
	}

	if e.history != nil {
		if userID != 0 {
			srcs = append(srcs, source{name: "history", fetch: func(ctx context.Context, limit int) ([]string, error) {
				return e.history.MatchingQueries(ctx, userID, prefix, limit)
			}})
		}
		srcs = append(srcs, source{name: "popular", fetch: func(ctx context.Context, limit int) ([]string, error) {
			return e.history.PopularQueries(ctx, prefix, limit)
		}})
	}
	return srcs
}

type merger struct {
	limit int
	seen  map[string]struct{}
	items []string
}

func newMerger(limit int) *merger {
	return &merger{limit: limit, seen: map[string]struct{}{}, items: []string{}}
}

func (m *merger) full() bool { return len(m.items) >= m.limit }

func (m *merger) add(items ...string) {
	for _, it := range items {
		if m.full() {
			return
		}
		key := Normalize(it)
		if key == "" {
			continue
		}
		if _, dup := m.seen[key]; dup {
			continue
		}
		m.seen[key] = struct{}{}
		m.items = append(m.items, strings.TrimSpace(it))
	}
}

// Normalize lower-cases s and collapses its whitespace.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
