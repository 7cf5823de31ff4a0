package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"todoQuest/internal/logger"
	"todoQuest/internal/storage"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Storage struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, connString string) (*Storage, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		logger.Error("Repository: ошибка разбора строки подключения", err)
		return nil, fmt.Errorf("разбор строки подключения: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnIdleTime = time.Minute * 5

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		logger.Error("Repository: ошибка создания пула", err)
		return nil, fmt.Errorf("создание пула: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Error("Repository: неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	s := &Storage{pool: pool}
	if err := s.applyMigrations(); err != nil {
		pool.Close()
		logger.Error("Repository: ошибка применения миграций", err)
		return nil, fmt.Errorf("применение миграций: %w", err)
	}

	logger.Info("Repository: успешное подключение к PostgreSQL")
	return s, nil
}

func (s *Storage) applyMigrations() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("чтение миграций: %w", err)
	}

	db := stdlib.OpenDBFromPool(s.pool)
	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return fmt.Errorf("инициализация драйвера миграций: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return fmt.Errorf("инициализация миграций: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("выполнение миграций: %w", err)
	}
	return nil
}

func (s *Storage) Close() {
	s.pool.Close()
	logger.Info("Repository: закрытие всех соединений PostgreSQL")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		logger.Error("Repository: неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

func (s *Storage) Get(ctx context.Context, slot string) ([]byte, error) {
	start := time.Now()

	query := `SELECT value FROM slots WHERE key = $1`

	var value []byte
	err := s.pool.QueryRow(ctx, query, slot).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		logger.Error("Repository: чтение слота", err, zap.String("slot", slot))
		return nil, fmt.Errorf("чтение слота %s: %w", slot, err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return value, nil
}

func (s *Storage) Put(ctx context.Context, slot string, value []byte) error {
	start := time.Now()

	query := `INSERT INTO slots (key, value, updated_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (key) DO UPDATE
			SET value = EXCLUDED.value,
				updated_at = NOW()`

	_, err := s.pool.Exec(ctx, query, slot, value)
	if err != nil {
		logger.Error("Repository: запись слота", err, zap.String("slot", slot))
		return fmt.Errorf("запись слота %s: %w", slot, err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return nil
}
