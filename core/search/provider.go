package search

import (
	"context"

	"github.com/goto/ticketsearch/core/history"
)

// SearchProvider is the surface offered to the host application. Every
// method has a fallback value instead of an error.
type SearchProvider interface {
	PerformSearch(ctx context.Context, query string, flt Filters, user User) (ResultPage, bool)
	GetSuggestions(ctx context.Context, prefix string, user User, limit int) []string
	TrackHistory(ctx context.Context, query string, user User, resultCount int)
	History(ctx context.Context, user User, limit int) []history.Entry
	ClearHistory(ctx context.Context, user User)
	ClearCache(ctx context.Context, mailboxIDs ...int64)
	RebuildIndex(ctx context.Context, progress ProgressFunc) int
	GetStatistics(ctx context.Context) Statistics
	RecordSaved(ctx context.Context, recordID int64)
	RecordDeleted(ctx context.Context, recordID, mailboxID int64)
}

var _ SearchProvider = (*Service)(nil)
