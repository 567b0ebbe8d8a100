package workers

import (
	"context"
	"log/slog"
	"multilingo/contract"
	"multilingo/domain"
	"time"
)

var _ contract.Worker = (*QueueDepthWorker)(nil)

// QueueDepthWorker periodically reports how full the persistence queue is.
// Reading len and cap of a channel never blocks the producers.
type QueueDepthWorker struct {
	log       *slog.Logger
	name      string
	queue     chan domain.StringRecord
	interval  time.Duration
	highWater float64
}

func NewQueueDepthWorker(log *slog.Logger, name string, queue chan domain.StringRecord,
	interval time.Duration) *QueueDepthWorker {
	return &QueueDepthWorker{log: log, name: name, queue: queue, interval: interval, highWater: 0.8}
}

func (w *QueueDepthWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping queue depth reports")
			return nil
		case <-ticker.C:
			w.report()
		}
	}
}

func (w *QueueDepthWorker) report() {
	length, capacity := len(w.queue), cap(w.queue)
	if capacity > 0 && float64(length)/float64(capacity) >= w.highWater {
		w.log.Warn("Queue nearly full", "name", w.name, "length", length, "capacity", capacity)
		return
	}
	w.log.Debug("Queue depth", "name", w.name, "length", length, "capacity", capacity)
}
