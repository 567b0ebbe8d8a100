package runtime_test

import (
	"context"
	"log/slog"
	"multilingo/domain"
	"multilingo/domain/analyzer"
	"multilingo/errors"
	"multilingo/mocks"
	"multilingo/runtime"
	"multilingo/runtime/workers"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestOrchestrator_PersistsSubmittedRecords(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelError)
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStringStore(ctrl)
	saved := make(chan string, 1)

	store.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r domain.StringRecord) error {
			saved <- r.Value
			return nil
		})

	orchestrator := runtime.NewOrchestrator(log, workers.NewSupervisor(log, 10*time.Millisecond),
		store, 2, 10, time.Second, time.Hour)
	done := make(chan struct{})
	go func() {
		_ = orchestrator.Start(context.Background())
		close(done)
	}()

	// When a record is submitted
	req.NoError(orchestrator.Submit(analyzer.NewRecord("level", time.Now())))

	// Then a worker saves it
	select {
	case value := <-saved:
		req.Equal("level", value)
	case <-time.After(time.Second):
		req.Fail("record was not persisted")
	}

	orchestrator.Stop()
	<-done
}

func TestOrchestrator_SubmitNeverBlocks(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelError)
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStringStore(ctrl)

	// Given an orchestrator that is not started and a queue of one
	dropped := 0
	orchestrator := runtime.NewOrchestrator(log, workers.NewSupervisor(log, 0), store, 1, 1, time.Second, time.Hour).
		OnDrop(func() { dropped++ })

	req.NoError(orchestrator.Submit(analyzer.NewRecord("a", time.Now())))
	err := orchestrator.Submit(analyzer.NewRecord("b", time.Now()))

	// Then the second record is dropped
	req.ErrorIs(err, errors.ErrQueueFull)
	req.Equal(1, orchestrator.QueueLength())
	req.Equal(1, dropped)
}
