package history

import (
	"context"
	"time"
)

//go:generate mockery --name=Repository -r --case underscore --with-expecter --structname HistoryRepository --filename history_repository.go --output=./mocks

type Repository interface {
	Insert(ctx context.Context, e Entry) error
	// TrimUser deletes all but the newest keep entries of the user.
	TrimUser(ctx context.Context, userID int64, keep int) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]Entry, error)
	DeleteByUser(ctx context.Context, userID int64) error
	Stats(ctx context.Context, since time.Time, topN int) (Statistics, error)
	// FrequentQueries lists queries that produced results, most searched
	// first.
	FrequentQueries(ctx context.Context, flt QueryFilter) ([]string, error)
}

// Entry is a single search performed by a user.
type Entry struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	Query       string    `json:"query" db:"query"`
	ResultCount int       `json:"results_count" db:"results_count"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type QueryFilter struct {
	// UserID restricts the lookup to one user, zero means every user.
	UserID int64
	Prefix string
	Limit  int
}

type QueryCount struct {
	Query string `json:"query" db:"query"`
	Count int64  `json:"count" db:"count"`
}

type Statistics struct {
	TotalSearches int64        `json:"total_searches"`
	UniqueQueries int64        `json:"unique_queries"`
	SearchesToday int64        `json:"searches_today"`
	TopQueries    []QueryCount `json:"top_queries"`
}
