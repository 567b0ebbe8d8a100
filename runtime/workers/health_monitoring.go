package workers

import (
	"context"
	"log/slog"
	"multilingo/contract"
	"multilingo/observability"
	"time"
)

var _ contract.Worker = (*HealthMonitoringWorker)(nil)

// HealthMonitoringWorker samples the service process at a fixed interval
// and hands each sample to report.
type HealthMonitoringWorker struct {
	log            *slog.Logger
	startedAt      time.Time
	metricInterval time.Duration
	report         func(observability.ProcessStats)
}

func NewHealthMonitoringWorker(
	log *slog.Logger,
	startedAt time.Time,
	metricInterval time.Duration,
	report func(observability.ProcessStats),
) *HealthMonitoringWorker {
	return &HealthMonitoringWorker{
		log:            log,
		startedAt:      startedAt,
		metricInterval: metricInterval,
		report:         report,
	}
}

func (w *HealthMonitoringWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping process sampling")
			return nil
		case <-ticker.C:
			stats, err := observability.CurrentProcess(w.startedAt)
			if err != nil {
				w.log.Error("Error while sampling process", "err", err)
				continue
			}
			w.log.Debug("Process sample", "status", stats.Status, "cpu", stats.CPUPercent,
				"ram", stats.MemoryPercent, "goroutines", stats.Goroutines)
			w.report(stats)
		}
	}
}
