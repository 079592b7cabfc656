package postgres

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/goto/ticketsearch/core/query"
	"github.com/goto/ticketsearch/core/relevance"
	"github.com/goto/ticketsearch/core/search"
	"github.com/goto/ticketsearch/core/ticket"
	"github.com/lib/pq"
)

type rankedHit struct {
	ID    int64   `db:"id"`
	Rank  float64 `db:"rank"`
	Score float64 `db:"score"`
}

// rankedPage assembles a result page from a match query ordered by its SQL
// pre-score. The first maxCandidates rows form a window that is re-scored
// with the relevance model and re-sorted in memory. Rows past the window
// keep the SQL order, so every page up to TotalCount is filled and no row
// shows up on two pages.
type rankedPage struct {
	backend       string
	records       *RecordRepository
	maxCandidates int
	// fetch returns limit rows from offset in SQL pre-score order.
	fetch func(ctx context.Context, limit, offset int) ([]rankedHit, error)
	// score computes the final relevance of a loaded record.
	score func(rec ticket.Record, hit rankedHit) float64
}

func (rp rankedPage) build(ctx context.Context, req search.Request, total int64) (search.ResultPage, error) {
	offset := req.Offset()
	items := []search.RankedRecord{}

	windowFull := true
	if offset < rp.maxCandidates {
		hits, err := rp.fetch(ctx, rp.maxCandidates, 0)
		if err != nil {
			return search.ResultPage{}, backendError(rp.backend, "candidates", err)
		}
		window, err := rp.load(ctx, hits)
		if err != nil {
			return search.ResultPage{}, err
		}
		search.SortRanked(window, req.Filters.Sort)

		items = append(items, search.Paginate(window, req.Page, req.PerPage)...)
		windowFull = len(hits) == rp.maxCandidates
	}

	missing := req.PerPage - len(items)
	from := offset + len(items)
	if missing > 0 && windowFull && int64(from) < total {
		hits, err := rp.fetch(ctx, missing, from)
		if err != nil {
			return search.ResultPage{}, backendError(rp.backend, "page", err)
		}
		rest, err := rp.load(ctx, hits)
		if err != nil {
			return search.ResultPage{}, err
		}
		items = append(items, rest...)
	}

	return search.ResultPage{
		Items:      items,
		TotalCount: total,
		Page:       req.Page,
		PerPage:    req.PerPage,
	}, nil
}

// load resolves hits to scored records, keeping the hit order.
func (rp rankedPage) load(ctx context.Context, hits []rankedHit) ([]search.RankedRecord, error) {
	ids := make([]int64, 0, len(hits))
	byID := make(map[int64]rankedHit, len(hits))
	for _, h := range hits {
		ids = append(ids, h.ID)
		byID[h.ID] = h
	}

	recs, err := rp.records.GetByIDs(ctx, ids)
	if err != nil {
		return nil, backendError(rp.backend, "load", err)
	}

	items := make([]search.RankedRecord, 0, len(recs))
	for _, rec := range recs {
		items = append(items, search.RankedRecord{
			RecordID: rec.ID,
			Score:    rp.score(rec, byID[rec.ID]),
			Record:   rec,
		})
	}
	return items, nil
}

// rankOrder is the SQL order matching the requested sort. Relevance
// ordering relies on a selected column aliased score.
func rankOrder(sort string) []string {
	if sort == search.SortRelevance || sort == "" {
		return []string{"score DESC", "c.updated_at DESC", "c.id DESC"}
	}
	return dateOrder(sort)
}

const (
	subjectExpr       = "LOWER(COALESCE(c.subject, ''))"
	customerEmailExpr = "LOWER(COALESCE(c.customer_email, ''))"
	customerNameExpr  = "LOWER(TRIM(COALESCE(cu.first_name, '') || ' ' || COALESCE(cu.last_name, '')))"
)

// scoreSQL renders the field weighting of the relevance model as a sum of
// CASE expressions: exact field match, containment and prefix for the
// conversation fields, containment for thread fields, and the record number
// bonus. Exact thread field matches and fuzzy bonuses are left to the in
// memory re-score.
func scoreSQL(p query.Parsed, w relevance.Weights) (string, []interface{}) {
	var (
		parts []string
		args  []interface{}
	)
	add := func(cond string, points float64, a ...interface{}) {
		if points <= 0 {
			return
		}
		parts = append(parts, fmt.Sprintf("(CASE WHEN %s THEN %g ELSE 0 END)", cond, points))
		args = append(args, a...)
	}
	exists := func(cond string) string {
		return "EXISTS (SELECT 1 FROM threads t WHERE t.conversation_id = c.id AND " + cond + ")"
	}

	for _, needle := range p.Needles() {
		needle = strings.ToLower(strings.TrimSpace(needle))
		if needle == "" {
			continue
		}
		contains, prefix := containsPattern(needle), prefixPattern(needle)

		for _, f := range []struct {
			expr   string
			weight float64
		}{
			{subjectExpr, w.Subject},
			{customerEmailExpr, w.CustomerEmail},
			{customerNameExpr, w.CustomerName},
		} {
			if f.weight <= 0 {
				continue
			}
			add("TRIM("+f.expr+") = ?", relevance.ExactMatchBonus, needle)
			add(f.expr+" LIKE ?", f.weight, contains)
			add(f.expr+" LIKE ?", 2*f.weight, prefix)
		}

		add(exists("t.type = ANY(?) AND t.body ILIKE ?"), w.Body, pq.Array(searchableThreadTypes), contains)
		add(exists(`t."from" ILIKE ?`), w.ThreadFrom, contains)
		add(exists(`t."to" ILIKE ?`), w.ThreadTo, contains)
		add(exists("(t.cc ILIKE ? OR t.bcc ILIKE ?)"), w.ThreadCc, contains, contains)

		if n, ok := recordNumber(needle); ok {
			add("(c.number = ? OR c.id = ?)", relevance.NumberMatchBonus, n, n)
		}
	}

	if len(parts) == 0 {
		return "0", nil
	}
	return "(" + strings.Join(parts, " + ") + ")", args
}

func scoreColumn(p query.Parsed, w relevance.Weights) sq.Sqlizer {
	expr, args := scoreSQL(p, w)
	return sq.Expr(expr+" AS score", args...)
}
