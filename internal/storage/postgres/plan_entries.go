package postgres

import (
	"context"
	"fmt"

	"github.com/amble-health/amble/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type planEntriesStorage struct {
	pool *pgxpool.Pool
}

func newPlanEntriesStorage(pool *pgxpool.Pool) *planEntriesStorage {
	return &planEntriesStorage{pool: pool}
}

func (s *planEntriesStorage) InsertPlanEntry(ctx context.Context, ins storage.PlanEntryInsert) (storage.PlanEntry, error) {
	query := `
		INSERT INTO meal_plans (id, user_id, meal_id, planned_date, meal_time, status, created_at)
		VALUES ($1, $2, $3, CAST($4 AS DATE), $5, $6, NOW())
		RETURNING id, user_id, meal_id, TO_CHAR(planned_date, 'YYYY-MM-DD'), meal_time, status, created_at
	`

	var entry storage.PlanEntry
	err := s.pool.QueryRow(ctx, query,
		uuid.New(),
		ins.UserID,
		ins.MealID,
		ins.PlannedDate,
		ins.MealTime,
		ins.Status,
	).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.MealID,
		&entry.PlannedDate,
		&entry.MealTime,
		&entry.Status,
		&entry.CreatedAt,
	)
	if err != nil {
		return storage.PlanEntry{}, fmt.Errorf("failed to insert plan entry: %w", err)
	}

	return entry, nil
}

func (s *planEntriesStorage) GetDailyTotals(ctx context.Context, userID, date string) (storage.DailyTotals, bool, error) {
	query := `
		SELECT
			COALESCE(SUM(m.calories), 0),
			COALESCE(SUM(m.protein_g), 0),
			COALESCE(SUM(m.fat_g), 0),
			COALESCE(SUM(m.carbs_g), 0),
			COUNT(p.id)
		FROM meal_plans p
		JOIN meals m ON m.id = p.meal_id
		WHERE p.user_id = $1 AND p.planned_date = CAST($2 AS DATE) AND p.status = 'Accepted'
	`

	totals := storage.DailyTotals{Date: date}
	err := s.pool.QueryRow(ctx, query, userID, date).Scan(
		&totals.TotalCalories,
		&totals.TotalProtein,
		&totals.TotalFat,
		&totals.TotalCarbs,
		&totals.MealCount,
	)
	if err != nil {
		return storage.DailyTotals{}, false, fmt.Errorf("failed to get daily totals: %w", err)
	}

	if totals.MealCount == 0 {
		return storage.DailyTotals{}, false, nil
	}
	return totals, true, nil
}

func (s *planEntriesStorage) ListPlanEntries(ctx context.Context, userID, date string) ([]storage.PlanEntry, error) {
	query := `
		SELECT id, user_id, meal_id, TO_CHAR(planned_date, 'YYYY-MM-DD'), meal_time, status, created_at
		FROM meal_plans
		WHERE user_id = $1 AND planned_date = CAST($2 AS DATE)
		ORDER BY created_at ASC
	`

	rows, err := s.pool.Query(ctx, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list plan entries: %w", err)
	}
	defer rows.Close()

	entries := []storage.PlanEntry{}
	for rows.Next() {
		var e storage.PlanEntry
		err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.MealID,
			&e.PlannedDate,
			&e.MealTime,
			&e.Status,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// PlanEntriesStorage methods - delegate to embedded plan entries storage

func (p *PostgresStorage) InsertPlanEntry(ctx context.Context, ins storage.PlanEntryInsert) (storage.PlanEntry, error) {
	return p.planEntries.InsertPlanEntry(ctx, ins)
}

func (p *PostgresStorage) GetDailyTotals(ctx context.Context, userID, date string) (storage.DailyTotals, bool, error) {
	return p.planEntries.GetDailyTotals(ctx, userID, date)
}

func (p *PostgresStorage) ListPlanEntries(ctx context.Context, userID, date string) ([]storage.PlanEntry, error) {
	return p.planEntries.ListPlanEntries(ctx, userID, date)
}
