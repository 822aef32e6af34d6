// Package prefs implements diet preference storage and the diet catalog.
package prefs

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/amble-health/amble/internal/storage"
)

// Defaults applied when a user has no stored preference yet.
type Defaults struct {
	DietName     string
	CaloriesGoal int
}

// Service handles diet preference business logic.
type Service struct {
	prefs    storage.DietPrefsStorage
	meals    storage.MealsStorage
	defaults Defaults
}

// NewService creates a new preferences service.
func NewService(prefs storage.DietPrefsStorage, meals storage.MealsStorage, defaults Defaults) *Service {
	return &Service{
		prefs:    prefs,
		meals:    meals,
		defaults: defaults,
	}
}

// Get returns the user's active preference. When nothing is stored the
// default preference is synthesized without being persisted, so a fresh
// user always sees a usable diet.
func (s *Service) Get(ctx context.Context, userID string) (PreferenceDTO, error) {
	pref, found, err := s.prefs.GetPreference(ctx, userID)
	if err != nil {
		return PreferenceDTO{}, fmt.Errorf("failed to get preference: %w", err)
	}

	if !found {
		return PreferenceDTO{
			UserID:       userID,
			Diet:         s.defaults.DietName,
			CaloriesGoal: s.defaults.CaloriesGoal,
			Allergies:    "",
		}, nil
	}

	return toDTO(pref), nil
}

// Update makes dietName the user's active diet. The calorie goal and
// allergy list keep their defaults until a dedicated editor exists.
func (s *Service) Update(ctx context.Context, userID, dietName string) (PreferenceDTO, error) {
	dietName = strings.TrimSpace(dietName)
	if dietName == "" {
		return PreferenceDTO{}, fmt.Errorf("invalid_request: diet is required")
	}

	pref, err := s.prefs.UpsertPreference(ctx, userID, dietName, s.defaults.CaloriesGoal, "")
	if err != nil {
		return PreferenceDTO{}, fmt.Errorf("failed to upsert preference: %w", err)
	}

	return toDTO(pref), nil
}

// DietCatalog returns all selectable diet names. A fetch failure
// degrades to an empty catalog so the picker still renders.
func (s *Service) DietCatalog(ctx context.Context) []string {
	diets, err := s.meals.ListDietPlans(ctx)
	if err != nil {
		log.Printf("WARN prefs: failed to load diet catalog: %v", err)
		return []string{}
	}
	if diets == nil {
		return []string{}
	}
	return diets
}

func toDTO(pref storage.DietPreference) PreferenceDTO {
	return PreferenceDTO{
		UserID:       pref.UserID,
		Diet:         pref.ActiveDietName,
		CaloriesGoal: pref.CaloriesGoal,
		Allergies:    pref.Allergies,
		UpdatedAt:    pref.UpdatedAt,
	}
}
