package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	sq "github.com/Masterminds/squirrel"
	"github.com/goto/salt/log"
	"github.com/goto/ticketsearch/core/query"
	"github.com/goto/ticketsearch/core/relevance"
	"github.com/goto/ticketsearch/core/search"
	"github.com/goto/ticketsearch/core/ticket"
	"github.com/jmoiron/sqlx"
)

const (
	indexTable = "search_index"

	// DefaultReindexBatchSize is the number of records projected per
	// transaction during a rebuild.
	DefaultReindexBatchSize = 100

	// minPrefixTermLength is the shortest term sent to the text search
	// parser as a prefix query.
	minPrefixTermLength = 3

	rankWeight = 10
)

var indexColumns = []string{
	"conversation_id", "mailbox_id", "number", "customer_id", "subject",
	"customer_email", "customer_name", "preview", "body_text", "thread_from",
	"thread_to", "status", "state", "record_created_at", "record_updated_at",
}

// FullTextBackend searches the search_index projection through its
// weighted tsvector column and maintains that projection.
type FullTextBackend struct {
	client        *Client
	records       *RecordRepository
	probe         *Probe
	populated     *Probe
	model         relevance.Model
	maxCandidates int
	batchSize     int
	logger        log.Logger
}

type FullTextOption func(*FullTextBackend)

func FullTextWithMaxCandidates(n int) FullTextOption {
	return func(b *FullTextBackend) {
		if n > 0 {
			b.maxCandidates = n
		}
	}
}

func FullTextWithBatchSize(n int) FullTextOption {
	return func(b *FullTextBackend) {
		if n > 0 {
			b.batchSize = n
		}
	}
}

func FullTextWithLogger(logger log.Logger) FullTextOption {
	return func(b *FullTextBackend) {
		b.logger = logger
	}
}

func NewFullTextBackend(c *Client, probe *Probe, model relevance.Model, opts ...FullTextOption) (*FullTextBackend, error) {
	records, err := NewRecordRepository(c)
	if err != nil {
		return nil, err
	}
	if probe == nil {
		probe = NewFullTextProbe(c)
	}

	b := &FullTextBackend{
		client:        c,
		records:       records,
		probe:         probe,
		populated:     NewPopulatedProbe(c),
		model:         model,
		maxCandidates: DefaultMaxCandidates,
		batchSize:     DefaultReindexBatchSize,
		logger:        log.NewNoop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

func (*FullTextBackend) Name() string { return search.BackendIndexedFullText }

func (b *FullTextBackend) Search(ctx context.Context, req search.Request) (search.ResultPage, error) {
	if err := b.ensureAvailable(ctx); err != nil {
		return search.ResultPage{}, err
	}

	base := applyFilters(applyScope(sq.Select().
		From(indexTable+" si").
		Join("conversations c ON c.id = si.conversation_id").
		LeftJoin("customers cu ON cu.id = c.customer_id"), req.Scope), req.Filters)

	if req.Query.IsEmpty() {
		return listByDate(ctx, b.client, b.records, search.BackendIndexedFullText, base, req)
	}

	tsQuery := BuildTSQuery(req.Query)
	match := shortFieldPredicates(req.Query)
	scoreExpr, scoreArgs := scoreSQL(req.Query, b.model.Weights())
	rank := sq.Expr("0::real AS rank")
	score := sq.Expr(scoreExpr+" AS score", scoreArgs...)
	if tsQuery != "" {
		match = append(match, sq.Expr("si.document @@ to_tsquery('simple', ?)", tsQuery))
		rank = sq.Expr("ts_rank(si.document, to_tsquery('simple', ?)) AS rank", tsQuery)
		score = sq.Expr(
			fmt.Sprintf("(ts_rank(si.document, to_tsquery('simple', ?)) * %d + %s) AS score", rankWeight, scoreExpr),
			append([]interface{}{tsQuery}, scoreArgs...)...,
		)
	}
	if len(match) == 0 {
		return search.ResultPage{Items: []search.RankedRecord{}, Page: req.Page, PerPage: req.PerPage}, nil
	}
	base = base.Where(match)

	total, err := countDistinct(ctx, b.client, base)
	if err != nil {
		return search.ResultPage{}, backendError(search.BackendIndexedFullText, "count", err)
	}

	order := rankOrder(req.Filters.Sort)
	return rankedPage{
		backend:       search.BackendIndexedFullText,
		records:       b.records,
		maxCandidates: b.maxCandidates,
		fetch: func(ctx context.Context, limit, offset int) ([]rankedHit, error) {
			query, args, err := buildSQL(base.Columns("si.conversation_id AS id").
				Column(rank).
				Column(score).
				OrderBy(order...).
				Limit(uint64(limit)).
				Offset(uint64(offset)))
			if err != nil {
				return nil, fmt.Errorf("build full text query: %w", err)
			}

			var hits []rankedHit
			if err := b.client.SelectContext(ctx, &hits, query, args...); err != nil {
				return nil, err
			}
			return hits, nil
		},
		score: func(rec ticket.Record, hit rankedHit) float64 {
			return hit.Rank*rankWeight + b.model.Score(rec, req.Query)
		},
	}.build(ctx, req, total)
}

// ensureAvailable reports search.ErrBackendUnavailable until the
// projection is installed and has been built.
func (b *FullTextBackend) ensureAvailable(ctx context.Context) error {
	if err := b.ensureInstalled(ctx); err != nil {
		return err
	}

	built, err := b.populated.Available(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s", search.ErrBackendUnavailable, err)
	}
	if !built {
		return fmt.Errorf("%w: search_index has not been built", search.ErrBackendUnavailable)
	}
	return nil
}

func (b *FullTextBackend) ensureInstalled(ctx context.Context) error {
	ok, err := b.probe.Available(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s", search.ErrBackendUnavailable, err)
	}
	if !ok {
		return fmt.Errorf("%w: search_index is not installed", search.ErrBackendUnavailable)
	}
	return nil
}

// BuildTSQuery renders the needles as a prefix boolean query, e.g.
// "invoice:* & (late <-> payment)". Terms shorter than three characters
// after stripping non word characters are left to the short field pass.
func BuildTSQuery(p query.Parsed) string {
	var parts []string
	for _, phrase := range p.Phrases {
		var words []string
		for _, w := range strings.Fields(phrase) {
			if w = stripNonWord(w); w != "" {
				words = append(words, strings.ToLower(w))
			}
		}
		switch len(words) {
		case 0:
		case 1:
			parts = append(parts, words[0])
		default:
			parts = append(parts, "("+strings.Join(words, " <-> ")+")")
		}
	}
	for _, term := range p.Terms {
		term = stripNonWord(term)
		if len([]rune(term)) < minPrefixTermLength {
			continue
		}
		parts = append(parts, strings.ToLower(term)+":*")
	}
	return strings.Join(parts, " & ")
}

func stripNonWord(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return -1
	}, s)
}

// shortFieldPredicates catches needles the tokenizer splits badly, such as
// email addresses and record numbers.
func shortFieldPredicates(p query.Parsed) sq.Or {
	var or sq.Or
	for _, needle := range p.Needles() {
		needle = strings.ToLower(strings.TrimSpace(needle))
		if needle == "" {
			continue
		}
		if n, ok := recordNumber(needle); ok {
			or = append(or, sq.Eq{"si.number": n})
			continue
		}
		if !strings.ContainsAny(needle, "@.") && len([]rune(needle)) >= minPrefixTermLength {
			continue
		}
		pattern := containsPattern(needle)
		or = append(or,
			sq.ILike{"si.customer_email": pattern},
			sq.ILike{"si.customer_name": pattern},
			sq.ILike{"si.thread_from": pattern},
		)
	}
	return or
}

func (b *FullTextBackend) IndexRecord(ctx context.Context, rec ticket.Record) error {
	if rec.ID == 0 {
		return ticket.ErrEmptyID
	}
	if err := upsertIndexRows(ctx, b.client.db, newIndexModel(rec)); err != nil {
		return fmt.Errorf("index record %d: %w", rec.ID, checkPostgresError(err))
	}
	return nil
}

func (b *FullTextBackend) DeleteRecord(ctx context.Context, recordID int64) error {
	query, args, err := buildSQL(sq.Delete(indexTable).Where(sq.Eq{"conversation_id": recordID}))
	if err != nil {
		return fmt.Errorf("build delete index row query: %w", err)
	}
	if _, err := b.client.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete index row %d: %w", recordID, checkPostgresError(err))
	}
	return nil
}

func (b *FullTextBackend) IndexedCount(ctx context.Context) (int64, error) {
	var n int64
	if err := b.client.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+indexTable); err != nil {
		return 0, fmt.Errorf("count index rows: %w", checkPostgresError(err))
	}
	return n, nil
}

// Clear empties the projection. Searches report the backend as empty, not
// unavailable, until the next rebuild.
func (b *FullTextBackend) Clear(ctx context.Context) error {
	if _, err := b.client.ExecContext(ctx, "TRUNCATE "+indexTable); err != nil {
		return fmt.Errorf("clear index: %w", checkPostgresError(err))
	}
	b.populated.Reset()
	return nil
}

// Reindex projects every live record into search_index in batches and
// finally removes rows whose record no longer exists.
func (b *FullTextBackend) Reindex(ctx context.Context, progress search.ProgressFunc) (int, error) {
	if err := b.ensureInstalled(ctx); err != nil {
		return 0, err
	}

	total, err := b.records.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("reindex: %w", err)
	}

	var startedAt time.Time
	if err := b.client.GetContext(ctx, &startedAt, "SELECT NOW()"); err != nil {
		return 0, fmt.Errorf("reindex: read clock: %w", err)
	}

	var (
		done    int
		afterID int64
	)
	for {
		batch, err := b.records.ListBatch(ctx, afterID, b.batchSize)
		if err != nil {
			return done, fmt.Errorf("reindex: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		rows := make([]IndexModel, 0, len(batch))
		for _, rec := range batch {
			rows = append(rows, newIndexModel(rec))
		}
		if err := b.client.RunWithinTx(ctx, func(tx *sqlx.Tx) error {
			return upsertIndexRows(ctx, tx, rows...)
		}); err != nil {
			return done, fmt.Errorf("reindex batch after %d: %w", afterID, checkPostgresError(err))
		}

		done += len(batch)
		afterID = batch[len(batch)-1].ID
		if progress != nil {
			progress(done, int(total))
		}
	}

	query, args, err := buildSQL(sq.Delete(indexTable).Where(sq.Lt{"indexed_at": startedAt}))
	if err != nil {
		return done, fmt.Errorf("build stale sweep query: %w", err)
	}
	res, err := b.client.ExecContext(ctx, query, args...)
	if err != nil {
		return done, fmt.Errorf("reindex: sweep stale rows: %w", checkPostgresError(err))
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		b.logger.Info("removed stale index rows", "count", n)
	}

	return done, nil
}

func upsertIndexRows(ctx context.Context, execer sqlx.ExecerContext, rows ...IndexModel) error {
	if len(rows) == 0 {
		return nil
	}

	builder := sq.Insert(indexTable).Columns(indexColumns...).Columns("indexed_at")
	for _, r := range rows {
		builder = builder.Values(
			r.ConversationID, r.MailboxID, r.Number, r.CustomerID, r.Subject,
			r.CustomerEmail, r.CustomerName, r.Preview, r.BodyText, r.ThreadFrom,
			r.ThreadTo, r.Status, r.State, r.RecordCreatedAt, r.RecordUpdatedAt,
			sq.Expr("NOW()"),
		)
	}

	updates := make([]string, 0, len(indexColumns))
	for _, col := range indexColumns[1:] {
		updates = append(updates, col+" = EXCLUDED."+col)
	}
	updates = append(updates, "indexed_at = EXCLUDED.indexed_at")
	builder = builder.Suffix("ON CONFLICT (conversation_id) DO UPDATE SET " + strings.Join(updates, ", "))

	query, args, err := buildSQL(builder)
	if err != nil {
		return fmt.Errorf("build upsert index rows query: %w", err)
	}
	_, err = execer.ExecContext(ctx, query, args...)
	return err
}
