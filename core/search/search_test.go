package search_test

import (
	"testing"
	"time"

	"github.com/goto/ticketsearch/core/query"
	"github.com/goto/ticketsearch/core/search"
	"github.com/goto/ticketsearch/core/ticket"
	"github.com/stretchr/testify/assert"
)

func ranked(id int64, score float64, updated time.Time) search.RankedRecord {
	return search.RankedRecord{
		RecordID: id,
		Score:    score,
		Record:   ticket.Record{ID: id, UpdatedAt: updated},
	}
}

func ids(items []search.RankedRecord) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.RecordID)
	}
	return out
}

func TestSortRanked(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	build := func() []search.RankedRecord {
		return []search.RankedRecord{
			ranked(1, 10, t0),
			ranked(2, 30, t0.Add(-time.Hour)),
			ranked(3, 10, t0.Add(time.Hour)),
			ranked(4, 10, t0),
		}
	}

	items := build()
	search.SortRanked(items, search.SortRelevance)
	assert.Equal(t, []int64{2, 3, 4, 1}, ids(items))

	items = build()
	search.SortRanked(items, search.SortDateDesc)
	assert.Equal(t, []int64{3, 4, 1, 2}, ids(items))

	items = build()
	search.SortRanked(items, search.SortDateAsc)
	assert.Equal(t, []int64{2, 1, 4, 3}, ids(items))
}

func TestPaginate(t *testing.T) {
	var items []search.RankedRecord
	for i := int64(1); i <= 5; i++ {
		items = append(items, ranked(i, 0, time.Time{}))
	}

	assert.Equal(t, []int64{1, 2}, ids(search.Paginate(items, 1, 2)))
	assert.Equal(t, []int64{5}, ids(search.Paginate(items, 3, 2)))
	assert.Empty(t, search.Paginate(items, 4, 2))
	assert.Equal(t, []int64{1, 2}, ids(search.Paginate(items, 0, 2)))
	assert.Empty(t, search.Paginate(items, 1, 0))
}

func TestRequestOffset(t *testing.T) {
	assert.Equal(t, 0, search.Request{Page: 1, PerPage: 20}.Offset())
	assert.Equal(t, 40, search.Request{Page: 3, PerPage: 20}.Offset())
	assert.Equal(t, 0, search.Request{PerPage: 20}.Offset())
}

func TestConfigChain(t *testing.T) {
	cfg := search.DefaultConfig()

	cfg.Engine = search.BackendExternalIndex
	assert.Equal(t, []string{search.BackendExternalIndex, search.BackendIndexedFullText, search.BackendDirectScan}, cfg.Chain())

	cfg.EnableFullText = false
	assert.Equal(t, []string{search.BackendExternalIndex, search.BackendDirectScan}, cfg.Chain())

	cfg.EnableFullText = true
	cfg.Engine = search.BackendIndexedFullText
	assert.Equal(t, []string{search.BackendIndexedFullText, search.BackendDirectScan}, cfg.Chain())

	cfg.Engine = search.BackendDirectScan
	assert.Equal(t, []string{search.BackendDirectScan}, cfg.Chain())
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, search.DefaultConfig().Validate())

	cfg := search.DefaultConfig()
	cfg.Engine = "solr"
	assert.EqualError(t, cfg.Validate(),
		`error value "solr" for key "engine" not recognized, only support "direct-scan indexed-fulltext external-index"`)

	cfg = search.DefaultConfig()
	cfg.FieldWeights.Body = -1
	assert.EqualError(t, cfg.Validate(), "search_field_weights.body cannot be less than 0")
}

func TestNewCacheKey(t *testing.T) {
	scope := search.NewScopeSet(1, 2)
	a := search.NewCacheKey(search.Request{
		Query: query.Parse("Printer   JAM", now), Scope: scope, Page: 1, PerPage: 50,
	})
	b := search.NewCacheKey(search.Request{
		Query: query.Parse("printer jam", now), Scope: scope, Page: 1, PerPage: 50,
	})
	assert.Equal(t, "printer jam", a.Text)
	assert.Equal(t, a.Text, b.Text)
}
