package memory

import (
	"context"
	"sync"
	"time"

	"github.com/amble-health/amble/internal/storage"
)

type dietPrefsStorage struct {
	mu    sync.RWMutex
	prefs map[string]storage.DietPreference // key: user_id
}

func newDietPrefsStorage() *dietPrefsStorage {
	return &dietPrefsStorage{
		prefs: make(map[string]storage.DietPreference),
	}
}

func (s *dietPrefsStorage) GetPreference(ctx context.Context, userID string) (storage.DietPreference, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pref, ok := s.prefs[userID]
	if !ok {
		return storage.DietPreference{}, false, nil
	}
	return pref, true, nil
}

func (s *dietPrefsStorage) UpsertPreference(ctx context.Context, userID, dietName string, caloriesGoal int, allergies string) (storage.DietPreference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	pref, ok := s.prefs[userID]
	if !ok {
		pref = storage.DietPreference{
			UserID:    userID,
			CreatedAt: now,
		}
	}
	pref.ActiveDietName = dietName
	pref.CaloriesGoal = caloriesGoal
	pref.Allergies = allergies
	pref.UpdatedAt = now
	s.prefs[userID] = pref

	return pref, nil
}

// DietPrefsStorage methods - delegate to embedded prefs storage

func (m *MemoryStorage) GetPreference(ctx context.Context, userID string) (storage.DietPreference, bool, error) {
	return m.prefs.GetPreference(ctx, userID)
}

func (m *MemoryStorage) UpsertPreference(ctx context.Context, userID, dietName string, caloriesGoal int, allergies string) (storage.DietPreference, error) {
	return m.prefs.UpsertPreference(ctx, userID, dietName, caloriesGoal, allergies)
}
