package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/amble-health/amble/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type dietPrefsStorage struct {
	pool *pgxpool.Pool
}

func newDietPrefsStorage(pool *pgxpool.Pool) *dietPrefsStorage {
	return &dietPrefsStorage{pool: pool}
}

func (s *dietPrefsStorage) GetPreference(ctx context.Context, userID string) (storage.DietPreference, bool, error) {
	query := `
		SELECT user_id, active_diet_name, calories_goal, allergies, created_at, updated_at
		FROM user_preferences
		WHERE user_id = $1 AND is_active = TRUE
	`

	var pref storage.DietPreference
	err := s.pool.QueryRow(ctx, query, userID).Scan(
		&pref.UserID,
		&pref.ActiveDietName,
		&pref.CaloriesGoal,
		&pref.Allergies,
		&pref.CreatedAt,
		&pref.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.DietPreference{}, false, nil
	}
	if err != nil {
		return storage.DietPreference{}, false, fmt.Errorf("failed to get preference: %w", err)
	}

	return pref, true, nil
}

func (s *dietPrefsStorage) UpsertPreference(ctx context.Context, userID, dietName string, caloriesGoal int, allergies string) (storage.DietPreference, error) {
	query := `
		INSERT INTO user_preferences (user_id, active_diet_name, calories_goal, allergies, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, TRUE, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			active_diet_name = EXCLUDED.active_diet_name,
			calories_goal = EXCLUDED.calories_goal,
			allergies = EXCLUDED.allergies,
			is_active = TRUE,
			updated_at = NOW()
		RETURNING user_id, active_diet_name, calories_goal, allergies, created_at, updated_at
	`

	var pref storage.DietPreference
	err := s.pool.QueryRow(ctx, query, userID, dietName, caloriesGoal, allergies).Scan(
		&pref.UserID,
		&pref.ActiveDietName,
		&pref.CaloriesGoal,
		&pref.Allergies,
		&pref.CreatedAt,
		&pref.UpdatedAt,
	)
	if err != nil {
		return storage.DietPreference{}, fmt.Errorf("failed to upsert preference: %w", err)
	}

	return pref, nil
}

// DietPrefsStorage methods - delegate to embedded prefs storage

func (p *PostgresStorage) GetPreference(ctx context.Context, userID string) (storage.DietPreference, bool, error) {
	return p.prefs.GetPreference(ctx, userID)
}

func (p *PostgresStorage) UpsertPreference(ctx context.Context, userID, dietName string, caloriesGoal int, allergies string) (storage.DietPreference, error) {
	return p.prefs.UpsertPreference(ctx, userID, dietName, caloriesGoal, allergies)
}
