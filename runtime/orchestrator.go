// Package runtime runs the background side of the service: the persistence queue
// and its supervised workers. It holds no business rules.
package runtime

import (
	"context"
	"log/slog"
	"multilingo/contract"
	"multilingo/domain"
	"multilingo/errors"
	"multilingo/runtime/workers"
	"sync"
	"time"
)

var _ contract.Submitter = (*Orchestrator)(nil)

type Orchestrator struct {
	mu                 sync.Mutex
	log                *slog.Logger
	numWorkers         int
	supervisor         contract.ISupervisor
	store              contract.StringStore
	records            chan domain.StringRecord
	saveTimeout        time.Duration
	queueCheckInterval time.Duration
	started            bool
	onDrop             func()
}

func NewOrchestrator(log *slog.Logger, supervisor contract.ISupervisor, store contract.StringStore,
	numWorkers, bufferSize int, saveTimeout, queueCheckInterval time.Duration) *Orchestrator {
	return &Orchestrator{
		log:                log,
		numWorkers:         numWorkers,
		supervisor:         supervisor,
		store:              store,
		records:            make(chan domain.StringRecord, bufferSize),
		saveTimeout:        saveTimeout,
		queueCheckInterval: queueCheckInterval,
	}
}

// Submit queues a record for background persistence. It never blocks:
// when the queue is full the record is dropped with a warning.
func (o *Orchestrator) Submit(record domain.StringRecord) error {
	select {
	case o.records <- record:
		return nil
	default:
		o.log.Warn("Persistence queue full, dropping record", "id", record.ID)
		if o.onDrop != nil {
			o.onDrop()
		}
		return errors.ErrQueueFull
	}
}

// OnDrop registers a callback invoked each time Submit drops a record.
func (o *Orchestrator) OnDrop(fn func()) *Orchestrator {
	o.onDrop = fn
	return o
}

// Start registers the workers to the supervisor and blocks until the context
// is canceled or Stop is called.
func (o *Orchestrator) Start(ctx context.Context) error {
	poolWorkers := o.preparePoolWorkers()

	o.mu.Lock()
	if !o.started {
		o.supervisor.Add(poolWorkers...)
		o.supervisor.Add(workers.NewQueueDepthWorker(o.log, "persistence", o.records, o.queueCheckInterval))
		o.started = true
	}
	o.mu.Unlock()

	o.log.Info("Starting orchestrator and all supervised workers", "persistence_workers", o.numWorkers)
	o.supervisor.Run(ctx)
	return nil
}

func (o *Orchestrator) preparePoolWorkers() []contract.Worker {
	res := make([]contract.Worker, 0, o.numWorkers)
	for i := 0; i < o.numWorkers; i++ {
		res = append(res, workers.NewPersistenceWorker(o.store, o.records, o.saveTimeout, o.log))
	}
	return res
}

// Stop cancels the supervised workers. Records still queued are not saved.
func (o *Orchestrator) Stop() {
	o.log.Info("Stopping orchestrator")
	o.supervisor.Stop()
}

// QueueLength is the number of records waiting to be saved.
func (o *Orchestrator) QueueLength() int {
	return len(o.records)
}
