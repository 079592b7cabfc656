package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/goto/ticketsearch/core/relevance"
	"github.com/goto/ticketsearch/core/search"
	"github.com/goto/ticketsearch/core/ticket"
	"github.com/olivere/elastic/v7"
)

type searchHit struct {
	ID        string              `json:"_id"`
	Score     *float64            `json:"_score"`
	HighLight map[string][]string `json:"highlight"`
}

type searchResponse struct {
	Hits struct {
		Total elastic.TotalHits `json:"total"`
		Hits  []searchHit       `json:"hits"`
	} `json:"hits"`
}

// SearchBackend runs searches against the external index and resolves the
// hits back to live records.
type SearchBackend struct {
	cli     *Client
	records ticket.Repository
	model   relevance.Model
}

func NewSearchBackend(cli *Client, records ticket.Repository, model relevance.Model) *SearchBackend {
	return &SearchBackend{
		cli:     cli,
		records: records,
		model:   model,
	}
}

func (*SearchBackend) Name() string { return search.BackendExternalIndex }

func (b *SearchBackend) Search(ctx context.Context, req search.Request) (page search.ResultPage, err error) {
	if err := b.ensureSearchable(ctx); err != nil {
		return search.ResultPage{}, err
	}

	defer func(start time.Time) {
		b.cli.instrumentOp(ctx, instrumentParams{op: "search", start: start, err: err})
	}(time.Now())

	src, err := buildSearchSource(req, queryOptions{
		weights:   b.model.Weights(),
		fuzzy:     b.model.Fuzzy(),
		fuzziness: b.cli.config.fuzziness(),
	}).Source()
	if err != nil {
		return search.ResultPage{}, fmt.Errorf("build search source: %w", err)
	}

	body := new(bytes.Buffer)
	if err := json.NewEncoder(body).Encode(src); err != nil {
		return search.ResultPage{}, fmt.Errorf("encode search source: %w", err)
	}

	ctx, cancel := b.cli.withTimeout(ctx)
	defer cancel()

	es := b.cli.client.Search
	res, err := es(
		es.WithBody(body),
		es.WithIndex(b.cli.config.index()),
		es.WithContext(ctx),
	)
	if err != nil {
		return search.ResultPage{}, search.BackendError{
			Backend: search.BackendExternalIndex, Op: "search", Err: elasticSearchError(err),
		}
	}
	defer drainBody(res)
	if res.IsError() {
		code, reason := errorCodeAndReason(res)
		return search.ResultPage{}, search.BackendError{
			Backend: search.BackendExternalIndex,
			Op:      "search",
			Code:    code,
			Err:     fmt.Errorf("execute search: %s", reason),
		}
	}

	var response searchResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return search.ResultPage{}, search.BackendError{
			Backend: search.BackendExternalIndex, Op: "search", Err: fmt.Errorf("decode search response: %w", err),
		}
	}

	items, err := b.toRankedRecords(ctx, response.Hits.Hits)
	if err != nil {
		return search.ResultPage{}, err
	}

	return search.ResultPage{
		Items:      items,
		TotalCount: response.Hits.Total.Value,
		Page:       req.Page,
		PerPage:    req.PerPage,
	}, nil
}

// toRankedRecords loads the records of hits, keeping the hit order. Hits
// whose record no longer exists are dropped.
func (b *SearchBackend) toRankedRecords(ctx context.Context, hits []searchHit) ([]search.RankedRecord, error) {
	ids := make([]int64, 0, len(hits))
	for _, h := range hits {
		id, err := strconv.ParseInt(h.ID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	recs, err := b.records.GetByIDs(ctx, ids)
	if err != nil {
		return nil, search.BackendError{Backend: search.BackendExternalIndex, Op: "load", Err: err}
	}
	byID := make(map[int64]ticket.Record, len(recs))
	for _, rec := range recs {
		byID[rec.ID] = rec
	}

	items := make([]search.RankedRecord, 0, len(hits))
	for _, h := range hits {
		id, err := strconv.ParseInt(h.ID, 10, 64)
		if err != nil {
			continue
		}
		rec, ok := byID[id]
		if !ok {
			continue
		}
		item := search.RankedRecord{RecordID: id, Record: rec, Highlights: h.HighLight}
		if h.Score != nil {
			item.Score = *h.Score
		}
		items = append(items, item)
	}
	return items, nil
}

func (b *SearchBackend) ensureAvailable(ctx context.Context) error {
	if err := b.cli.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %s", search.ErrBackendUnavailable, err)
	}
	return nil
}

// ensureSearchable also reports a missing index as unavailable, so that a
// cluster which was never populated falls through to the next backend.
func (b *SearchBackend) ensureSearchable(ctx context.Context) error {
	if err := b.ensureAvailable(ctx); err != nil {
		return err
	}
	exists, err := b.cli.indexExists(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s", search.ErrBackendUnavailable, err)
	}
	if !exists {
		return fmt.Errorf("%w: index %q does not exist", search.ErrBackendUnavailable, b.cli.config.index())
	}
	return nil
}
