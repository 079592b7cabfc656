package search

import (
	"sort"

	"github.com/goto/ticketsearch/core/history"
	"github.com/goto/ticketsearch/core/query"
	"github.com/goto/ticketsearch/core/relevance"
	"github.com/goto/ticketsearch/core/ticket"
)

// User is the acting user of a request. ID zero is an anonymous caller.
type User struct {
	ID int64 `json:"id"`
}

type RankedRecord struct {
	RecordID   int64               `json:"record_id"`
	Score      float64             `json:"score"`
	Record     ticket.Record       `json:"record"`
	Highlights map[string][]string `json:"highlights,omitempty"`
}

func (r RankedRecord) key() relevance.Key {
	return relevance.Key{Score: r.Score, UpdatedAt: r.Record.UpdatedAt, ID: r.RecordID}
}

// ResultPage is one page of ranked records. It is never modified once
// returned by a backend.
type ResultPage struct {
	Items      []RankedRecord `json:"items"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
	Backend    string         `json:"backend,omitempty"`
}

// Request is what the orchestrator hands to a backend.
type Request struct {
	Query   query.Parsed
	Filters Filters
	Scope   ScopeSet
	Page    int
	PerPage int
}

func (r Request) Offset() int {
	if r.Page < 1 {
		return 0
	}
	return (r.Page - 1) * r.PerPage
}

type Statistics struct {
	history.Statistics
	IndexedCount int64 `json:"indexed_count"`
}

// SortRanked orders items in place according to a Filters.Sort value.
func SortRanked(items []RankedRecord, order string) {
	switch order {
	case SortDateDesc:
		sort.SliceStable(items, func(i, j int) bool {
			a, b := items[i], items[j]
			if !a.Record.UpdatedAt.Equal(b.Record.UpdatedAt) {
				return a.Record.UpdatedAt.After(b.Record.UpdatedAt)
			}
			return a.RecordID > b.RecordID
		})
	case SortDateAsc:
		sort.SliceStable(items, func(i, j int) bool {
			a, b := items[i], items[j]
			if !a.Record.UpdatedAt.Equal(b.Record.UpdatedAt) {
				return a.Record.UpdatedAt.Before(b.Record.UpdatedAt)
			}
			return a.RecordID < b.RecordID
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return relevance.Before(items[i].key(), items[j].key())
		})
	}
}

// Paginate slices an already ordered result set.
func Paginate(items []RankedRecord, page, perPage int) []RankedRecord {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		return []RankedRecord{}
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return []RankedRecord{}
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
