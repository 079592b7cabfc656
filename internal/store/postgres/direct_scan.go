package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/goto/salt/log"
	"github.com/goto/ticketsearch/core/relevance"
	"github.com/goto/ticketsearch/core/search"
	"github.com/goto/ticketsearch/core/ticket"
)

const DefaultMaxCandidates = 1000

// DirectScanBackend matches needles straight against the live tables. SQL
// pre-ranks the matches by field weight and the best maxCandidates are
// re-ranked in memory with the full relevance model.
type DirectScanBackend struct {
	client        *Client
	records       *RecordRepository
	model         relevance.Model
	soundex       *Probe
	maxCandidates int
	logger        log.Logger
}

type DirectScanOption func(*DirectScanBackend)

func DirectScanWithMaxCandidates(n int) DirectScanOption {
	return func(b *DirectScanBackend) {
		if n > 0 {
			b.maxCandidates = n
		}
	}
}

// DirectScanWithSoundex enables phonetic customer name matching when the
// probe reports fuzzystrmatch as installed.
func DirectScanWithSoundex(p *Probe) DirectScanOption {
	return func(b *DirectScanBackend) {
		b.soundex = p
	}
}

func DirectScanWithLogger(logger log.Logger) DirectScanOption {
	return func(b *DirectScanBackend) {
		b.logger = logger
	}
}

func NewDirectScanBackend(c *Client, model relevance.Model, opts ...DirectScanOption) (*DirectScanBackend, error) {
	records, err := NewRecordRepository(c)
	if err != nil {
		return nil, err
	}

	b := &DirectScanBackend{
		client:        c,
		records:       records,
		model:         model,
		maxCandidates: DefaultMaxCandidates,
		logger:        log.NewNoop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

func (*DirectScanBackend) Name() string { return search.BackendDirectScan }

func (b *DirectScanBackend) Search(ctx context.Context, req search.Request) (search.ResultPage, error) {
	base := applyFilters(applyScope(sq.Select().
		From("conversations c").
		LeftJoin("customers cu ON cu.id = c.customer_id"), req.Scope), req.Filters)

	if req.Query.IsEmpty() {
		return listByDate(ctx, b.client, b.records, search.BackendDirectScan, base, req)
	}

	base = base.Where(matchPredicate(req.Query, b.model.Fuzzy(), b.soundexAvailable(ctx)))

	total, err := countDistinct(ctx, b.client, base)
	if err != nil {
		return search.ResultPage{}, backendError(search.BackendDirectScan, "count", err)
	}

	score := scoreColumn(req.Query, b.model.Weights())
	order := rankOrder(req.Filters.Sort)
	return rankedPage{
		backend:       search.BackendDirectScan,
		records:       b.records,
		maxCandidates: b.maxCandidates,
		fetch: func(ctx context.Context, limit, offset int) ([]rankedHit, error) {
			query, args, err := buildSQL(base.Columns("c.id").
				Column(score).
				OrderBy(order...).
				Limit(uint64(limit)).
				Offset(uint64(offset)))
			if err != nil {
				return nil, fmt.Errorf("build candidates query: %w", err)
			}

			var hits []rankedHit
			if err := b.client.SelectContext(ctx, &hits, query, args...); err != nil {
				return nil, err
			}
			return hits, nil
		},
		score: func(rec ticket.Record, _ rankedHit) float64 {
			return b.model.Score(rec, req.Query)
		},
	}.build(ctx, req, total)
}

func (b *DirectScanBackend) soundexAvailable(ctx context.Context) bool {
	if b.soundex == nil || !b.model.Fuzzy() {
		return false
	}
	ok, err := b.soundex.Available(ctx)
	if err != nil {
		b.logger.Warn("soundex matching disabled", "err", err)
		return false
	}
	return ok
}

func countDistinct(ctx context.Context, c *Client, base sq.SelectBuilder) (int64, error) {
	query, args, err := buildSQL(base.Columns("COUNT(DISTINCT c.id)"))
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var total int64
	if err := c.GetContext(ctx, &total, query, args...); err != nil {
		return 0, err
	}
	return total, nil
}

// listByDate pages through every record matching the filters, newest first
// unless the filters ask for ascending order. Scores are zero.
func listByDate(
	ctx context.Context, c *Client, records *RecordRepository,
	backend string, base sq.SelectBuilder, req search.Request,
) (search.ResultPage, error) {
	total, err := countDistinct(ctx, c, base)
	if err != nil {
		return search.ResultPage{}, backendError(backend, "count", err)
	}

	query, args, err := buildSQL(base.Columns("c.id").
		OrderBy(dateOrder(req.Filters.Sort)...).
		Limit(uint64(req.PerPage)).
		Offset(uint64(req.Offset())))
	if err != nil {
		return search.ResultPage{}, fmt.Errorf("build listing query: %w", err)
	}

	var ids []int64
	if err := c.SelectContext(ctx, &ids, query, args...); err != nil {
		return search.ResultPage{}, backendError(backend, "list", err)
	}

	recs, err := records.GetByIDs(ctx, ids)
	if err != nil {
		return search.ResultPage{}, backendError(backend, "load", err)
	}

	items := make([]search.RankedRecord, 0, len(recs))
	for _, rec := range recs {
		items = append(items, search.RankedRecord{RecordID: rec.ID, Record: rec})
	}
	return search.ResultPage{
		Items:      items,
		TotalCount: total,
		Page:       req.Page,
		PerPage:    req.PerPage,
	}, nil
}
