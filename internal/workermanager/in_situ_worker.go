package workermanager

import (
	"context"
	"fmt"

	"github.com/goto/ticketsearch/core/search"
	"github.com/goto/ticketsearch/core/ticket"
	"github.com/goto/ticketsearch/pkg/worker"
)

// InSituWorker applies index changes synchronously, within the request
// that saved or deleted the record.
type InSituWorker struct {
	mgr *Manager
}

func NewInSituWorker(deps Deps) *InSituWorker {
	return &InSituWorker{
		mgr: &Manager{indexers: deps.Indexers, records: deps.Records, cache: deps.Cache},
	}
}

var _ search.Worker = (*InSituWorker)(nil)

func (w *InSituWorker) EnqueueIndexRecordJob(ctx context.Context, recordID int64) error {
	if recordID <= 0 {
		return fmt.Errorf("index record: %w", ticket.ErrEmptyID)
	}
	if err := w.mgr.IndexRecord(ctx, recordJobSpec(jobIndexRecord, recordID)); err != nil {
		return fmt.Errorf("index record: %w", err)
	}
	return nil
}

func (w *InSituWorker) EnqueueDeleteRecordJob(ctx context.Context, recordID, mailboxID int64) error {
	if recordID <= 0 {
		return fmt.Errorf("delete record: %w", ticket.ErrEmptyID)
	}
	if err := w.mgr.deleteFromIndexes(ctx, recordID, mailboxID); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

func (*InSituWorker) Close() error { return nil }

func recordJobSpec(typ string, recordID int64) worker.JobSpec {
	return worker.JobSpec{
		Type:    typ,
		Payload: []byte(fmt.Sprintf(`{"record_id":%d}`, recordID)),
	}
}
