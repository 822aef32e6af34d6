package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("record not found")
)

// PostgresStorage — Postgres реализация Storage.
type PostgresStorage struct {
	pool        *pgxpool.Pool
	prefs       *dietPrefsStorage
	meals       *mealsStorage
	planEntries *planEntriesStorage
	reports     *reportsStorage
}

// New создаёт PostgresStorage и проверяет соединение.
func New(ctx context.Context, databaseURL string) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &PostgresStorage{
		pool:        pool,
		prefs:       newDietPrefsStorage(pool),
		meals:       newMealsStorage(pool),
		planEntries: newPlanEntriesStorage(pool),
		reports:     newReportsStorage(pool),
	}, nil
}

// Close закрывает пул соединений.
func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}
