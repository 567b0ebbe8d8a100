package workers

import (
	"context"
	"log/slog"
	"multilingo/observability"
	"os"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestHealthMonitoringWorker_ReportsSamples(t *testing.T) {
	defer goleak.VerifyNone(t)
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelError)

	samples := make(chan observability.ProcessStats, 8)
	worker := NewHealthMonitoringWorker(log, time.Now(), 10*time.Millisecond, func(stats observability.ProcessStats) {
		select {
		case samples <- stats:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	select {
	case stats := <-samples:
		req.Equal(int32(os.Getpid()), stats.PID)
		req.Positive(stats.Goroutines)
	case <-time.After(2 * time.Second):
		req.Fail("no process sample reported")
	}

	cancel()
	req.NoError(<-done)
}
