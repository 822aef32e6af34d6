// Package suggest produces diet-filtered meal candidates.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amble-health/amble/internal/storage"
)

// ErrNoMealFound is returned when the catalog has no meal for the
// requested diet. Recoverable, surfaced to the user as-is.
var ErrNoMealFound = errors.New("no meal found for diet")

// Service requests candidate meals from the catalog.
type Service struct {
	meals storage.MealsStorage
}

// NewService creates a new suggestion service.
func NewService(meals storage.MealsStorage) *Service {
	return &Service{meals: meals}
}

// Suggest returns one random meal matching the diet, with its
// ingredient list. The catalog owns the randomness; the service only
// surfaces whatever single candidate it returns.
func (s *Service) Suggest(ctx context.Context, dietName string) (storage.Meal, error) {
	dietName = strings.TrimSpace(dietName)
	if dietName == "" {
		return storage.Meal{}, fmt.Errorf("invalid_request: diet is required")
	}

	meal, found, err := s.meals.GetRandomMealByDiet(ctx, dietName)
	if err != nil {
		return storage.Meal{}, fmt.Errorf("failed to fetch suggestion: %w", err)
	}
	if !found {
		return storage.Meal{}, fmt.Errorf("%w: %s", ErrNoMealFound, dietName)
	}

	return meal, nil
}
