package memory

import (
	"context"
	"sync"
	"time"

	"github.com/amble-health/amble/internal/storage"
	"github.com/google/uuid"
)

type planEntriesStorage struct {
	mu      sync.RWMutex
	entries []storage.PlanEntry
	meals   *mealsStorage
}

func newPlanEntriesStorage(meals *mealsStorage) *planEntriesStorage {
	return &planEntriesStorage{meals: meals}
}

func (s *planEntriesStorage) InsertPlanEntry(ctx context.Context, ins storage.PlanEntryInsert) (storage.PlanEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := storage.PlanEntry{
		ID:          uuid.New(),
		UserID:      ins.UserID,
		MealID:      ins.MealID,
		PlannedDate: ins.PlannedDate,
		MealTime:    ins.MealTime,
		Status:      ins.Status,
		CreatedAt:   time.Now().UTC(),
	}
	s.entries = append(s.entries, entry)

	return entry, nil
}

func (s *planEntriesStorage) GetDailyTotals(ctx context.Context, userID, date string) (storage.DailyTotals, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := storage.DailyTotals{Date: date}
	for _, e := range s.entries {
		if e.UserID != userID || e.PlannedDate != date || e.Status != "Accepted" {
			continue
		}
		meal, ok := s.meals.getMealByID(e.MealID)
		if !ok {
			continue
		}
		totals.TotalCalories += meal.Calories
		totals.TotalProtein += meal.ProteinGrams
		totals.TotalFat += meal.FatGrams
		totals.TotalCarbs += meal.CarbGrams
		totals.MealCount++
	}

	if totals.MealCount == 0 {
		return storage.DailyTotals{}, false, nil
	}
	return totals, true, nil
}

func (s *planEntriesStorage) ListPlanEntries(ctx context.Context, userID, date string) ([]storage.PlanEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := []storage.PlanEntry{}
	for _, e := range s.entries {
		if e.UserID == userID && e.PlannedDate == date {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// PlanEntriesStorage methods - delegate to embedded plan entries storage

func (m *MemoryStorage) InsertPlanEntry(ctx context.Context, ins storage.PlanEntryInsert) (storage.PlanEntry, error) {
	return m.planEntries.InsertPlanEntry(ctx, ins)
}

func (m *MemoryStorage) GetDailyTotals(ctx context.Context, userID, date string) (storage.DailyTotals, bool, error) {
	return m.planEntries.GetDailyTotals(ctx, userID, date)
}

func (m *MemoryStorage) ListPlanEntries(ctx context.Context, userID, date string) ([]storage.PlanEntry, error) {
	return m.planEntries.ListPlanEntries(ctx, userID, date)
}
