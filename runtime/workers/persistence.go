package workers

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"multilingo/contract"
	"multilingo/domain"
	"multilingo/errors"
	"time"
)

var _ contract.Worker = (*PersistenceWorker)(nil)

// PersistenceWorker drains analyzed records and saves them.
// Failures are logged and dropped: background persistence is best effort.
type PersistenceWorker struct {
	store       contract.StringStore
	records     <-chan domain.StringRecord
	saveTimeout time.Duration
	log         *slog.Logger
}

func NewPersistenceWorker(store contract.StringStore, records <-chan domain.StringRecord,
	saveTimeout time.Duration, log *slog.Logger) *PersistenceWorker {
	return &PersistenceWorker{store: store, records: records, saveTimeout: saveTimeout, log: log}
}

func (w *PersistenceWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping worker")
			return ctx.Err()
		case record, ok := <-w.records:
			if !ok {
				w.log.Debug("Channel is closed")
				return nil
			}
			w.save(ctx, record)
		}
	}
}

func (w *PersistenceWorker) save(ctx context.Context, record domain.StringRecord) {
	saveCtx, cancel := context.WithTimeout(ctx, w.saveTimeout)
	defer cancel()

	err := w.store.Save(saveCtx, record)
	switch {
	case err == nil:
		w.log.Debug("Record persisted", "id", record.ID)
	case stderrors.Is(err, errors.ErrStringAlreadyExists):
		w.log.Debug("Record already persisted", "id", record.ID)
	default:
		w.log.Error("Background save failed",
			"id", record.ID,
			"error", fmt.Errorf("%w: %w", errors.ErrPersistenceFailure, err))
	}
}
