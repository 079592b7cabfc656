package workermanager

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/goto/ticketsearch/core/ticket"
	"github.com/goto/ticketsearch/pkg/worker"
)

const (
	jobIndexRecord  = "index-record"
	jobDeleteRecord = "delete-record"
	jobRebuildIndex = "rebuild-index"
)

type recordPayload struct {
	RecordID  int64 `json:"record_id"`
	MailboxID int64 `json:"mailbox_id,omitempty"`
}

func (m *Manager) indexRecordHandler() worker.JobHandler {
	return worker.JobHandler{
		Handle: m.IndexRecord,
		Opts: worker.JobOptions{
			MaxAttempts: 3,
			Timeout:     5 * time.Second,
			Backoff:     worker.DefaultExponentialBackoff,
		},
	}
}

func (m *Manager) EnqueueIndexRecordJob(ctx context.Context, recordID int64) error {
	if err := m.enqueueRecordJob(ctx, jobIndexRecord, recordPayload{RecordID: recordID}); err != nil {
		return fmt.Errorf("enqueue index record job: %w: record %d", err, recordID)
	}
	return nil
}

// IndexRecord loads the current version of the record and writes it to
// every index, then drops the cached pages of the record's mailbox. A
// record deleted since the job was queued is removed from the indexes
// instead.
func (m *Manager) IndexRecord(ctx context.Context, job worker.JobSpec) error {
	p, err := decodeRecordPayload(job.Payload)
	if err != nil {
		return err
	}
	recordID := p.RecordID

	rec, err := m.records.GetByID(ctx, recordID)
	if err != nil {
		var nf ticket.NotFoundError
		if errors.As(err, &nf) {
			return m.deleteFromIndexes(ctx, recordID, p.MailboxID)
		}
		return &worker.RetryableError{Cause: fmt.Errorf("load record %d: %w", recordID, err)}
	}

	var errs []error
	for _, idx := range m.indexers {
		if err := idx.IndexRecord(ctx, rec); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", idx.Name(), err))
		}
	}
	if len(errs) > 0 {
		return &worker.RetryableError{Cause: fmt.Errorf("index record %d: %w", recordID, errors.Join(errs...))}
	}
	m.invalidate(rec.MailboxID)
	return nil
}

func (m *Manager) deleteRecordHandler() worker.JobHandler {
	return worker.JobHandler{
		Handle: m.DeleteRecord,
		Opts: worker.JobOptions{
			MaxAttempts: 3,
			Timeout:     5 * time.Second,
			Backoff:     worker.DefaultExponentialBackoff,
		},
	}
}

func (m *Manager) EnqueueDeleteRecordJob(ctx context.Context, recordID, mailboxID int64) error {
	payload := recordPayload{RecordID: recordID, MailboxID: mailboxID}
	if err := m.enqueueRecordJob(ctx, jobDeleteRecord, payload); err != nil {
		return fmt.Errorf("enqueue delete record job: %w: record %d", err, recordID)
	}
	return nil
}

func (m *Manager) DeleteRecord(ctx context.Context, job worker.JobSpec) error {
	p, err := decodeRecordPayload(job.Payload)
	if err != nil {
		return err
	}
	return m.deleteFromIndexes(ctx, p.RecordID, p.MailboxID)
}

// deleteFromIndexes removes the record from every index. The cached pages
// of mailboxID are dropped afterwards, or every page when the mailbox is
// unknown.
func (m *Manager) deleteFromIndexes(ctx context.Context, recordID, mailboxID int64) error {
	var errs []error
	for _, idx := range m.indexers {
		if err := idx.DeleteRecord(ctx, recordID); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", idx.Name(), err))
		}
	}
	if len(errs) > 0 {
		return &worker.RetryableError{Cause: fmt.Errorf("delete record %d: %w", recordID, errors.Join(errs...))}
	}
	m.invalidate(mailboxID)
	return nil
}

func (m *Manager) invalidate(mailboxID int64) {
	switch {
	case m.cache == nil:
	case mailboxID > 0:
		m.cache.InvalidateMailboxes(mailboxID)
	default:
		m.cache.Flush()
	}
}

func (m *Manager) rebuildIndexHandler() worker.JobHandler {
	return worker.JobHandler{
		Handle: m.RebuildIndex,
		Opts: worker.JobOptions{
			MaxAttempts: 2,
			Timeout:     30 * time.Minute,
			Backoff:     worker.ConstBackoff{Delay: time.Minute},
		},
	}
}

func (m *Manager) EnqueueRebuildIndexJob(ctx context.Context) error {
	if err := m.worker.Enqueue(ctx, worker.JobSpec{Type: jobRebuildIndex}); err != nil {
		return fmt.Errorf("enqueue rebuild index job: %w", err)
	}
	return nil
}

// RebuildIndex rebuilds every index from scratch and drops the cached
// result pages.
func (m *Manager) RebuildIndex(ctx context.Context, _ worker.JobSpec) error {
	var errs []error
	for _, idx := range m.indexers {
		start := time.Now()
		n, err := idx.Reindex(ctx, nil)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", idx.Name(), err))
			continue
		}
		m.logger.Info("rebuilt index", "indexer", idx.Name(), "indexed", n, "took", time.Since(start).String())
	}

	if m.cache != nil {
		m.cache.Flush()
	}
	if len(errs) > 0 {
		return &worker.RetryableError{Cause: fmt.Errorf("rebuild index: %w", errors.Join(errs...))}
	}
	return nil
}

func (m *Manager) enqueueRecordJob(ctx context.Context, typ string, p recordPayload) error {
	if p.RecordID <= 0 {
		return ticket.ErrEmptyID
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return m.worker.Enqueue(ctx, worker.JobSpec{Type: typ, Payload: payload})
}

func decodeRecordPayload(payload []byte) (recordPayload, error) {
	var p recordPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return recordPayload{}, fmt.Errorf("decode job payload: %w", err)
	}
	if p.RecordID <= 0 {
		return recordPayload{}, fmt.Errorf("decode job payload: %w", ticket.ErrEmptyID)
	}
	return p, nil
}

func keys(handlers map[string]worker.JobHandler) []string {
	types := make([]string, 0, len(handlers))
	for typ := range handlers {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}
