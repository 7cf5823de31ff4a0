package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"todoQuest/internal/config"
	"todoQuest/internal/handlers"
	"todoQuest/internal/logger"
	"todoQuest/internal/middleware"
	"todoQuest/internal/service"
	"todoQuest/internal/storage"
	"todoQuest/internal/storage/file"
	"todoQuest/internal/storage/inmemory"
	"todoQuest/internal/storage/postgres"
	"todoQuest/internal/worker"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type App struct {
	config    *config.Config
	server    *http.Server
	store     storage.SlotStore
	tracker   *service.TrackerService
	worker    *worker.OverdueWorker
	shutdowns []func() // функции для graceful shutdown, выполняются в обратном порядке
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	store, err := a.buildStore(ctx)
	if err != nil {
		return fmt.Errorf("инициализация хранилища: %w", err)
	}
	a.store = store

	a.tracker = service.NewTrackerService(ctx, a.store)
	a.worker = worker.NewOverdueWorker(a.tracker, a.config.Worker.Interval)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.RateLimit(100))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
	}))

	trackerHandler := handlers.NewTrackerHandler(a.tracker)
	r.Mount("/", trackerHandler.Routes())

	a.server = &http.Server{
		Addr:    a.config.GetServerAddr(),
		Handler: r,
	}

	return nil
}

func (a *App) buildStore(ctx context.Context) (storage.SlotStore, error) {
	switch a.config.Storage.Type {
	case "postgres":
		store, err := postgres.New(ctx, a.config.Storage.URL)
		if err != nil {
			return nil, err
		}
		a.shutdowns = append(a.shutdowns, store.Close)
		return store, nil
	case "inmemory":
		return inmemory.NewSlotStorage(), nil
	default:
		return file.New(a.config.Storage.Path)
	}
}

// Run поднимает фоновую проверку просрочки и HTTP-сервер.
// Блокируется до остановки сервера.
func (a *App) Run(ctx context.Context) error {
	workerCtx, cancelWorker := context.WithCancel(ctx)
	a.shutdowns = append(a.shutdowns, cancelWorker)
	go a.worker.Start(workerCtx)

	logger.Info("Сервер запущен", zap.String("addr", a.server.Addr))
	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("запуск сервера: %w", err)
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			logger.Warn("Ошибка остановки сервера", zap.Error(err))
		}
	}

	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}
