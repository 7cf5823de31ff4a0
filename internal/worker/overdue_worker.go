package worker

import (
	"context"
	"time"

	"todoQuest/internal/logger"

	"go.uber.org/zap"
)

// Engine - та часть сервиса, которая нужна фоновой проверке
type Engine interface {
	CheckOverdue(ctx context.Context, now time.Time) int
}

type OverdueWorker struct {
	engine   Engine
	interval time.Duration
	now      func() time.Time
}

func NewOverdueWorker(engine Engine, interval time.Duration) *OverdueWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &OverdueWorker{
		engine:   engine,
		interval: interval,
		now:      time.Now,
	}
}

// WithClock подменяет источник времени, нужен тестам
func (w *OverdueWorker) WithClock(now func() time.Time) *OverdueWorker {
	w.now = now
	return w
}

// Start гоняет проверку до отмены контекста.
// Первая проверка выполняется сразу, не дожидаясь тикера.
func (w *OverdueWorker) Start(ctx context.Context) {
	logger.Info("Worker: фоновая проверка просрочки запущена",
		zap.Duration("interval", w.interval))

	w.Check(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Check(ctx)
		case <-ctx.Done():
			logger.Info("Worker: фоновая проверка останавливается")
			return
		}
	}
}

// Check - один проход по активным задачам.
// Сам проход идемпотентен, сервис не ставит отметку дважды.
func (w *OverdueWorker) Check(ctx context.Context) {
	start := time.Now()

	marked := w.engine.CheckOverdue(ctx, w.now())

	logger.Info("Worker: завершение проверки просрочки",
		zap.Duration("ms", time.Since(start)),
		zap.Int("marked", marked))
}
