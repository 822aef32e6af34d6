package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/amble-health/amble/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type mealsStorage struct {
	pool *pgxpool.Pool
}

func newMealsStorage(pool *pgxpool.Pool) *mealsStorage {
	return &mealsStorage{pool: pool}
}

func (s *mealsStorage) ListDietPlans(ctx context.Context) ([]string, error) {
	query := `
		SELECT diet_name
		FROM diet_plans
		ORDER BY sort_order ASC, diet_name ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list diet plans: %w", err)
	}
	defer rows.Close()

	diets := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan diet plan: %w", err)
		}
		diets = append(diets, name)
	}

	return diets, rows.Err()
}

func (s *mealsStorage) GetRandomMealByDiet(ctx context.Context, dietName string) (storage.Meal, bool, error) {
	query := `
		SELECT id, name, image_url, calories, protein_g, fat_g, carbs_g
		FROM meals
		WHERE LOWER(diet_name) = LOWER($1)
		ORDER BY random()
		LIMIT 1
	`

	var meal storage.Meal
	err := s.pool.QueryRow(ctx, query, dietName).Scan(
		&meal.ID,
		&meal.Name,
		&meal.ImageURL,
		&meal.Calories,
		&meal.ProteinGrams,
		&meal.FatGrams,
		&meal.CarbGrams,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.Meal{}, false, nil
	}
	if err != nil {
		return storage.Meal{}, false, fmt.Errorf("failed to get random meal: %w", err)
	}

	ingredients, err := s.listIngredients(ctx, meal.ID)
	if err != nil {
		return storage.Meal{}, false, err
	}
	meal.Ingredients = ingredients

	return meal, true, nil
}

func (s *mealsStorage) listIngredients(ctx context.Context, mealID int64) ([]storage.Ingredient, error) {
	query := `
		SELECT name, quantity, COALESCE(smart_group, '')
		FROM meal_ingredients
		WHERE meal_id = $1
		ORDER BY position ASC
	`

	rows, err := s.pool.Query(ctx, query, mealID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	defer rows.Close()

	ingredients := []storage.Ingredient{}
	for rows.Next() {
		var ing storage.Ingredient
		if err := rows.Scan(&ing.Name, &ing.Quantity, &ing.SmartGroup); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		ingredients = append(ingredients, ing)
	}

	return ingredients, rows.Err()
}

// MealsStorage methods - delegate to embedded meals storage

func (p *PostgresStorage) ListDietPlans(ctx context.Context) ([]string, error) {
	return p.meals.ListDietPlans(ctx)
}

func (p *PostgresStorage) GetRandomMealByDiet(ctx context.Context, dietName string) (storage.Meal, bool, error) {
	return p.meals.GetRandomMealByDiet(ctx, dietName)
}
