package search

import (
	"context"

	"github.com/goto/ticketsearch/core/ticket"
)

const (
	BackendDirectScan      = "direct-scan"
	BackendIndexedFullText = "indexed-fulltext"
	BackendExternalIndex   = "external-index"
)

//go:generate mockery --name=Backend -r --case underscore --with-expecter --structname Backend --filename backend.go --output=./mocks

type Backend interface {
	Name() string
	// Search returns the requested page. It returns ErrBackendUnavailable
	// (possibly wrapped) when the backend cannot serve at all.
	Search(ctx context.Context, req Request) (ResultPage, error)
}

// ProgressFunc receives the number of processed records and the total.
type ProgressFunc func(current, total int)

//go:generate mockery --name=Indexer -r --case underscore --with-expecter --structname Indexer --filename indexer.go --output=./mocks

// Indexer is implemented by backends maintaining a derived projection of
// the live records.
type Indexer interface {
	Name() string
	// Reindex rebuilds the whole projection and returns the number of
	// records indexed. Running it again yields the same projection.
	Reindex(ctx context.Context, progress ProgressFunc) (int, error)
	IndexRecord(ctx context.Context, rec ticket.Record) error
	DeleteRecord(ctx context.Context, recordID int64) error
	IndexedCount(ctx context.Context) (int64, error)
}

// chain lists the backends to try for an engine, most preferred first.
func chain(engine string, fulltext bool) []string {
	var names []string
	switch engine {
	case BackendExternalIndex:
		names = append(names, BackendExternalIndex)
		fallthrough
	case BackendIndexedFullText:
		if fulltext {
			names = append(names, BackendIndexedFullText)
		}
	}
	return append(names, BackendDirectScan)
}
