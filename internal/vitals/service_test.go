package vitals

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/amble-health/amble/internal/storage"
)

type mockEntriesRepo struct {
	totalsFunc func(ctx context.Context, userID, date string) (storage.DailyTotals, bool, error)
}

func (m *mockEntriesRepo) InsertPlanEntry(ctx context.Context, ins storage.PlanEntryInsert) (storage.PlanEntry, error) {
	return storage.PlanEntry{}, nil
}

func (m *mockEntriesRepo) GetDailyTotals(ctx context.Context, userID, date string) (storage.DailyTotals, bool, error) {
	if m.totalsFunc != nil {
		return m.totalsFunc(ctx, userID, date)
	}
	return storage.DailyTotals{}, false, nil
}

func (m *mockEntriesRepo) ListPlanEntries(ctx context.Context, userID, date string) ([]storage.PlanEntry, error) {
	return nil, nil
}

func testGoals() Goals {
	return Goals{DailyCalories: 2500, DailyProtein: 160}
}

func TestApplyLocalIncrement(t *testing.T) {
	agg := NewAggregator(&mockEntriesRepo{}, testGoals())

	got := agg.ApplyLocalIncrement("2", "2026-08-30", MealNutrition{Calories: 420, ProteinGrams: 38})

	if got.TotalCalories != 420 || got.TotalProtein != 38 {
		t.Errorf("expected 420/38, got %d/%d", got.TotalCalories, got.TotalProtein)
	}
	if got.MealCount != 1 {
		t.Errorf("expected meal count 1, got %d", got.MealCount)
	}
}

func TestApplyLocalIncrement_Accumulates(t *testing.T) {
	agg := NewAggregator(&mockEntriesRepo{}, testGoals())

	agg.ApplyLocalIncrement("2", "2026-08-30", MealNutrition{Calories: 300, ProteinGrams: 20})
	got := agg.ApplyLocalIncrement("2", "2026-08-30", MealNutrition{Calories: 500, ProteinGrams: 30})

	if got.TotalCalories != 800 {
		t.Errorf("expected 800 calories after two acceptances, got %d", got.TotalCalories)
	}
	if got.TotalProtein != 50 {
		t.Errorf("expected 50g protein, got %d", got.TotalProtein)
	}
}

func TestApplyLocalIncrement_DateChangeResets(t *testing.T) {
	agg := NewAggregator(&mockEntriesRepo{}, testGoals())

	agg.ApplyLocalIncrement("2", "2026-08-30", MealNutrition{Calories: 400})
	got := agg.ApplyLocalIncrement("2", "2026-08-31", MealNutrition{Calories: 100})

	if got.TotalCalories != 100 {
		t.Errorf("new date should start from zero, got %d", got.TotalCalories)
	}
}

func TestLoadAuthoritative_OverwritesOptimistic(t *testing.T) {
	repo := &mockEntriesRepo{
		totalsFunc: func(ctx context.Context, userID, date string) (storage.DailyTotals, bool, error) {
			return storage.DailyTotals{Date: date, TotalCalories: 420, TotalProtein: 38, MealCount: 1}, true, nil
		},
	}
	agg := NewAggregator(repo, testGoals())

	// Optimistic drift that the reload must discard.
	agg.ApplyLocalIncrement("2", "2026-08-30", MealNutrition{Calories: 9999, ProteinGrams: 999})

	got, err := agg.LoadAuthoritative(context.Background(), "2", "2026-08-30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalCalories != 420 || got.TotalProtein != 38 {
		t.Errorf("expected authoritative 420/38, got %d/%d", got.TotalCalories, got.TotalProtein)
	}
	if cached := agg.Totals("2", "2026-08-30"); cached != got {
		t.Errorf("cached totals should match reloaded value, got %+v", cached)
	}
}

func TestLoadAuthoritative_AbsentMeansZero(t *testing.T) {
	agg := NewAggregator(&mockEntriesRepo{}, testGoals())

	got, err := agg.LoadAuthoritative(context.Background(), "2", "2026-08-30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalCalories != 0 || got.MealCount != 0 {
		t.Errorf("absent aggregate should yield zero totals, got %+v", got)
	}
}

func TestLoadAuthoritative_FailureRetainsTotals(t *testing.T) {
	repo := &mockEntriesRepo{
		totalsFunc: func(ctx context.Context, userID, date string) (storage.DailyTotals, bool, error) {
			return storage.DailyTotals{}, false, errors.New("connection refused")
		},
	}
	agg := NewAggregator(repo, testGoals())

	before := agg.ApplyLocalIncrement("2", "2026-08-30", MealNutrition{Calories: 420, ProteinGrams: 38})

	got, err := agg.LoadAuthoritative(context.Background(), "2", "2026-08-30")
	if err == nil {
		t.Fatal("expected error")
	}
	if got != before {
		t.Errorf("failed load must retain previous totals: got %+v, want %+v", got, before)
	}
	if cached := agg.Totals("2", "2026-08-30"); cached != before {
		t.Errorf("cached totals must be unchanged, got %+v", cached)
	}
}

func TestRatios_Clamped(t *testing.T) {
	agg := NewAggregator(&mockEntriesRepo{}, testGoals())

	cases := []struct {
		name     string
		totals   Totals
		calories int
		protein  int
	}{
		{"zero", Totals{}, 0, 0},
		{"partial", Totals{TotalCalories: 1250, TotalProtein: 80}, 50, 50},
		{"over goal clamps to 100", Totals{TotalCalories: 9000, TotalProtein: 500}, 100, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := agg.Ratios(tc.totals)
			if r.CaloriesPercent != tc.calories {
				t.Errorf("calories percent: expected %d, got %d", tc.calories, r.CaloriesPercent)
			}
			if r.ProteinPercent != tc.protein {
				t.Errorf("protein percent: expected %d, got %d", tc.protein, r.ProteinPercent)
			}
		})
	}
}

func TestMealNutrition_AcceptsBothProteinSpellings(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		protein int
	}{
		{"legacy protein field", `{"calories":420,"protein":38}`, 38},
		{"proteinGrams field", `{"calories":420,"proteinGrams":38}`, 38},
		{"legacy field wins when both present", `{"calories":420,"protein":40,"proteinGrams":38}`, 40},
		{"neither field", `{"calories":420}`, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var m MealNutrition
			if err := json.Unmarshal([]byte(tc.payload), &m); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if m.ProteinGrams != tc.protein {
				t.Errorf("expected protein %d, got %d", tc.protein, m.ProteinGrams)
			}
			if m.Calories != 420 {
				t.Errorf("expected calories 420, got %d", m.Calories)
			}
		})
	}
}
