package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/goto/ticketsearch/core/search"
	"github.com/goto/ticketsearch/core/ticket"
)

const DefaultReindexBatchSize = 100

type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		ID     string `json:"_id"`
		Status int    `json:"status"`
		Error  struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	} `json:"items"`
}

func (b *SearchBackend) IndexRecord(ctx context.Context, rec ticket.Record) (err error) {
	if err := b.ensureAvailable(ctx); err != nil {
		return err
	}
	defer func(start time.Time) {
		b.cli.instrumentOp(ctx, instrumentParams{op: "index_record", start: start, err: err})
	}(time.Now())

	body, err := json.Marshal(newRecordDocument(rec))
	if err != nil {
		return fmt.Errorf("encode record document: %w", err)
	}

	ctx, cancel := b.cli.withTimeout(ctx)
	defer cancel()

	es := b.cli.client.Index
	res, err := es(
		b.cli.config.index(),
		bytes.NewReader(body),
		es.WithDocumentID(strconv.FormatInt(rec.ID, 10)),
		es.WithContext(ctx),
	)
	if err != nil {
		return elasticSearchError(err)
	}
	defer drainBody(res)
	if res.IsError() {
		code, reason := errorCodeAndReason(res)
		return search.BackendError{
			Backend: search.BackendExternalIndex,
			Op:      "index_record",
			Code:    code,
			Err:     fmt.Errorf("index record %d: %s", rec.ID, reason),
		}
	}
	return nil
}

// DeleteRecord removes the document of recordID. A document that is not
// indexed is not an error.
func (b *SearchBackend) DeleteRecord(ctx context.Context, recordID int64) (err error) {
	if err := b.ensureAvailable(ctx); err != nil {
		return err
	}
	defer func(start time.Time) {
		b.cli.instrumentOp(ctx, instrumentParams{op: "delete_record", start: start, err: err})
	}(time.Now())

	ctx, cancel := b.cli.withTimeout(ctx)
	defer cancel()

	es := b.cli.client.Delete
	res, err := es(
		b.cli.config.index(),
		strconv.FormatInt(recordID, 10),
		es.WithContext(ctx),
	)
	if err != nil {
		return elasticSearchError(err)
	}
	defer drainBody(res)
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		code, reason := errorCodeAndReason(res)
		return search.BackendError{
			Backend: search.BackendExternalIndex,
			Op:      "delete_record",
			Code:    code,
			Err:     fmt.Errorf("delete record %d: %s", recordID, reason),
		}
	}
	return nil
}

func (b *SearchBackend) IndexedCount(ctx context.Context) (int64, error) {
	if err := b.ensureAvailable(ctx); err != nil {
		return 0, err
	}

	ctx, cancel := b.cli.withTimeout(ctx)
	defer cancel()

	es := b.cli.client.Count
	res, err := es(
		es.WithIndex(b.cli.config.index()),
		es.WithContext(ctx),
	)
	if err != nil {
		return 0, elasticSearchError(err)
	}
	defer drainBody(res)
	if res.StatusCode == http.StatusNotFound {
		return 0, nil
	}
	if res.IsError() {
		return 0, fmt.Errorf("count documents: %s", errorReasonFromResponse(res))
	}

	var response struct {
		Count int64 `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return 0, fmt.Errorf("decode count response: %w", err)
	}
	return response.Count, nil
}

// Clear drops the index. Searches fall through to the next backend until
// the index is rebuilt.
func (b *SearchBackend) Clear(ctx context.Context) error {
	if err := b.ensureAvailable(ctx); err != nil {
		return err
	}
	return b.cli.DeleteIdx(ctx)
}

// Reindex drops and recreates the index, then bulk loads every live record
// in id order.
func (b *SearchBackend) Reindex(ctx context.Context, progress search.ProgressFunc) (indexed int, err error) {
	if err := b.ensureAvailable(ctx); err != nil {
		return 0, err
	}
	defer func(start time.Time) {
		b.cli.instrumentOp(ctx, instrumentParams{op: "reindex", start: start, err: err})
	}(time.Now())

	if progress == nil {
		progress = func(int, int) {}
	}

	total, err := b.records.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}

	if err := b.cli.DeleteIdx(ctx); err != nil {
		return 0, err
	}
	if err := b.cli.CreateIdx(ctx); err != nil {
		return 0, err
	}

	var afterID int64
	for {
		batch, err := b.records.ListBatch(ctx, afterID, DefaultReindexBatchSize)
		if err != nil {
			return indexed, fmt.Errorf("list records after %d: %w", afterID, err)
		}
		if len(batch) == 0 {
			break
		}

		if err := b.bulkIndex(ctx, batch); err != nil {
			return indexed, err
		}
		indexed += len(batch)
		afterID = batch[len(batch)-1].ID
		progress(indexed, int(total))

		if len(batch) < DefaultReindexBatchSize {
			break
		}
	}

	if err := b.refresh(ctx); err != nil {
		return indexed, err
	}
	b.cli.logger.Info("external index rebuilt", "index", b.cli.config.index(), "indexed", indexed)
	return indexed, nil
}

func (b *SearchBackend) bulkIndex(ctx context.Context, recs []ticket.Record) error {
	body := new(bytes.Buffer)
	enc := json.NewEncoder(body)
	for _, rec := range recs {
		action := map[string]interface{}{
			"index": map[string]interface{}{"_id": strconv.FormatInt(rec.ID, 10)},
		}
		if err := enc.Encode(action); err != nil {
			return fmt.Errorf("encode bulk action: %w", err)
		}
		if err := enc.Encode(newRecordDocument(rec)); err != nil {
			return fmt.Errorf("encode record document: %w", err)
		}
	}

	es := b.cli.client.Bulk
	res, err := es(
		body,
		es.WithIndex(b.cli.config.index()),
		es.WithContext(ctx),
	)
	if err != nil {
		return elasticSearchError(err)
	}
	defer drainBody(res)
	if res.IsError() {
		return fmt.Errorf("bulk index: %s", errorReasonFromResponse(res))
	}

	var response bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return fmt.Errorf("decode bulk response: %w", err)
	}
	if !response.Errors {
		return nil
	}
	for _, item := range response.Items {
		for _, result := range item {
			if result.Status >= http.StatusBadRequest {
				return fmt.Errorf("bulk index document %s: %s: %s", result.ID, result.Error.Type, result.Error.Reason)
			}
		}
	}
	return nil
}

func (b *SearchBackend) refresh(ctx context.Context) error {
	es := b.cli.client.Indices.Refresh
	res, err := es(
		es.WithIndex(b.cli.config.index()),
		es.WithContext(ctx),
	)
	if err != nil {
		return elasticSearchError(err)
	}
	defer drainBody(res)
	if res.IsError() {
		return fmt.Errorf("refresh index: %s", errorReasonFromResponse(res))
	}
	return nil
}
