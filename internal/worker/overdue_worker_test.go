package worker_test

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"todoQuest/internal/logger"
	"todoQuest/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init(true)
	os.Exit(m.Run())
}

// fakeEngine считает вызовы и запоминает переданное время
type fakeEngine struct {
	calls  atomic.Int64
	lastAt atomic.Value
}

func (f *fakeEngine) CheckOverdue(ctx context.Context, now time.Time) int {
	f.calls.Add(1)
	f.lastAt.Store(now)
	return 0
}

func TestCheckUsesInjectedClock(t *testing.T) {
	engine := &fakeEngine{}
	frozen := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)

	w := worker.NewOverdueWorker(engine, time.Minute).WithClock(func() time.Time {
		return frozen
	})

	w.Check(context.Background())

	assert.Equal(t, int64(1), engine.calls.Load())
	assert.Equal(t, frozen, engine.lastAt.Load().(time.Time))
}

func TestStartChecksImmediatelyAndStopsOnCancel(t *testing.T) {
	engine := &fakeEngine{}
	w := worker.NewOverdueWorker(engine, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	// первая проверка выполняется сразу, без ожидания тикера
	require.Eventually(t, func() bool {
		return engine.calls.Load() == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("воркер не остановился после отмены контекста")
	}
}

func TestStartTicks(t *testing.T) {
	engine := &fakeEngine{}
	w := worker.NewOverdueWorker(engine, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	require.Eventually(t, func() bool {
		return engine.calls.Load() >= 3
	}, time.Second, 5*time.Millisecond)
}

func TestZeroIntervalFallsBackToMinute(t *testing.T) {
	w := worker.NewOverdueWorker(&fakeEngine{}, 0)
	require.NotNil(t, w)
}
