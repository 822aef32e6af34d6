// Package vitals tracks running daily nutrition totals, reconciling an
// authoritative server-side aggregate with optimistic local increments.
package vitals

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/amble-health/amble/internal/storage"
)

// Goals are the fixed daily targets used for display-ratio
// computation only. They never reject or validate anything.
type Goals struct {
	DailyCalories int
	DailyProtein  int
}

// Aggregator maintains per-user daily totals. The stored aggregate is
// the sole source of truth; local increments are an optimistic
// convenience that converges on the next authoritative load.
type Aggregator struct {
	entries storage.PlanEntriesStorage
	goals   Goals

	mu     sync.Mutex
	totals map[string]Totals // keyed by user id
}

// NewAggregator creates a new totals aggregator.
func NewAggregator(entries storage.PlanEntriesStorage, goals Goals) *Aggregator {
	return &Aggregator{
		entries: entries,
		goals:   goals,
		totals:  make(map[string]Totals),
	}
}

// Totals returns the user's current in-memory totals for the date.
// A date change resets the running totals to zero.
func (a *Aggregator) Totals(userID, date string) Totals {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.totalsLocked(userID, date)
}

func (a *Aggregator) totalsLocked(userID, date string) Totals {
	t, ok := a.totals[userID]
	if !ok || t.Date != date {
		return Totals{Date: date}
	}
	return t
}

// LoadAuthoritative fetches the server-computed aggregate and
// overwrites the optimistic value. On fetch failure the session keeps
// whatever totals it had before the call.
func (a *Aggregator) LoadAuthoritative(ctx context.Context, userID, date string) (Totals, error) {
	stored, found, err := a.entries.GetDailyTotals(ctx, userID, date)

	a.mu.Lock()
	defer a.mu.Unlock()

	if err != nil {
		log.Printf("WARN vitals: keeping local totals, authoritative load failed: %v", err)
		return a.totalsLocked(userID, date), fmt.Errorf("failed to load daily totals: %w", err)
	}

	t := Totals{Date: date}
	if found {
		t = Totals{
			Date:          stored.Date,
			TotalCalories: stored.TotalCalories,
			TotalProtein:  stored.TotalProtein,
			TotalFat:      stored.TotalFat,
			TotalCarbs:    stored.TotalCarbs,
			MealCount:     stored.MealCount,
		}
	}
	a.totals[userID] = t
	return t, nil
}

// ApplyLocalIncrement adds a meal's macros to the in-memory totals and
// returns the new value. Local-only: it never re-fetches the
// authoritative aggregate.
func (a *Aggregator) ApplyLocalIncrement(userID, date string, meal MealNutrition) Totals {
	a.mu.Lock()
	defer a.mu.Unlock()

	t := a.totalsLocked(userID, date)
	t.TotalCalories += meal.Calories
	t.TotalProtein += meal.ProteinGrams
	t.TotalFat += meal.FatGrams
	t.TotalCarbs += meal.CarbGrams
	t.MealCount++

	a.totals[userID] = t
	return t
}

// Reconcile re-runs the authoritative load, discarding any optimistic
// drift.
func (a *Aggregator) Reconcile(ctx context.Context, userID, date string) (Totals, error) {
	return a.LoadAuthoritative(ctx, userID, date)
}

// Ratios computes display percentages against the daily goals,
// clamped to [0,100].
func (a *Aggregator) Ratios(t Totals) GoalRatios {
	return GoalRatios{
		CaloriesPercent: clampPercent(t.TotalCalories, a.goals.DailyCalories),
		ProteinPercent:  clampPercent(t.TotalProtein, a.goals.DailyProtein),
	}
}

func clampPercent(value, goal int) int {
	if goal <= 0 {
		return 0
	}
	p := value * 100 / goal
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
