// Package planner owns the suggestion-acceptance state machine: one
// live candidate per user, durable persist on accept, then fan-out to
// the weekly plan, the daily totals and the session shopping list.
package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/amble-health/amble/internal/storage"
	"github.com/amble-health/amble/internal/vitals"
)

var (
	// ErrNoCandidate means accept was called with no live candidate.
	ErrNoCandidate = errors.New("no live candidate")

	// ErrStaleCandidate means the referenced candidate was already
	// resolved or superseded. The duplicate accept is a no-op.
	ErrStaleCandidate = errors.New("candidate already resolved")
)

// Candidate is the single live suggestion of a session. It exists only
// between "suggested" and "resolved" and is never persisted.
type Candidate struct {
	Meal       storage.Meal
	DayIndex   int
	Generation uint64
}

// WeekEntry is an accepted meal placed on the in-memory weekly plan.
type WeekEntry struct {
	EntryID      string
	MealID       int64
	MealName     string
	Calories     int
	ProteinGrams int
	MealTime     string
	PlannedDate  string
}

// AcceptResult carries the outcome of a successful acceptance.
type AcceptResult struct {
	Entry  storage.PlanEntry
	Totals vitals.Totals
}

// session holds all per-user in-memory state. The mutex is held across
// the persist call, so accepts for one user never run concurrently.
type session struct {
	mu         sync.Mutex
	candidate  *Candidate
	generation uint64
	week       [7][]WeekEntry
	shopping   []storage.Ingredient
}

// Service manages planner sessions.
type Service struct {
	entries  storage.PlanEntriesStorage
	vitals   *vitals.Aggregator
	mealTime string
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// NewService creates a new planner service. defaultMealTime is used
// for every accepted suggestion.
func NewService(entries storage.PlanEntriesStorage, aggregator *vitals.Aggregator, defaultMealTime string) *Service {
	return &Service{
		entries:  entries,
		vitals:   aggregator,
		mealTime: defaultMealTime,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

func (s *Service) session(userID string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &session{}
		s.sessions[userID] = sess
	}
	return sess
}

func (s *Service) today() string {
	return s.now().UTC().Format("2006-01-02")
}

// RegisterCandidate installs meal as the user's live candidate,
// replacing any previous one, and returns the new generation. A
// response from an older suggestion request carries an older
// generation and loses.
func (s *Service) RegisterCandidate(ctx context.Context, userID string, meal storage.Meal, dayIndex int) uint64 {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.generation++
	sess.candidate = &Candidate{
		Meal:       meal,
		DayIndex:   dayIndex,
		Generation: sess.generation,
	}
	return sess.generation
}

// Candidate returns a copy of the live candidate, if any.
func (s *Service) Candidate(userID string) (Candidate, bool) {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.candidate == nil {
		return Candidate{}, false
	}
	return *sess.candidate, true
}

// Accept persists the live candidate and, only after the store
// acknowledges, applies the three local mutations: weekly plan append,
// totals increment, shopping-list union. On persist failure nothing
// local changes and the candidate stays live.
//
// generation identifies which candidate the caller saw; 0 means
// "whatever is live". A non-zero mismatch is a duplicate or stale
// accept and is a no-op.
func (s *Service) Accept(ctx context.Context, userID string, generation uint64) (AcceptResult, error) {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.candidate == nil {
		if generation != 0 && generation <= sess.generation {
			return AcceptResult{}, ErrStaleCandidate
		}
		return AcceptResult{}, ErrNoCandidate
	}
	if generation != 0 && generation != sess.candidate.Generation {
		return AcceptResult{}, ErrStaleCandidate
	}

	cand := sess.candidate
	date := s.today()

	entry, err := s.entries.InsertPlanEntry(ctx, storage.PlanEntryInsert{
		UserID:      userID,
		MealID:      cand.Meal.ID,
		PlannedDate: date,
		MealTime:    s.mealTime,
		Status:      "Accepted",
	})
	if err != nil {
		return AcceptResult{}, fmt.Errorf("failed to persist plan entry: %w", err)
	}

	sess.week[cand.DayIndex] = append(sess.week[cand.DayIndex], WeekEntry{
		EntryID:      entry.ID.String(),
		MealID:       cand.Meal.ID,
		MealName:     cand.Meal.Name,
		Calories:     cand.Meal.Calories,
		ProteinGrams: cand.Meal.ProteinGrams,
		MealTime:     entry.MealTime,
		PlannedDate:  entry.PlannedDate,
	})

	totals := s.vitals.ApplyLocalIncrement(userID, date, vitals.MealNutrition{
		Calories:     cand.Meal.Calories,
		ProteinGrams: cand.Meal.ProteinGrams,
		FatGrams:     cand.Meal.FatGrams,
		CarbGrams:    cand.Meal.CarbGrams,
	})

	if len(cand.Meal.Ingredients) > 0 {
		sess.shopping = unionIngredients(sess.shopping, cand.Meal.Ingredients)
	}

	sess.candidate = nil

	return AcceptResult{Entry: entry, Totals: totals}, nil
}

// Cancel discards the live candidate. Never touches the store.
func (s *Service) Cancel(ctx context.Context, userID string) bool {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	had := sess.candidate != nil
	sess.candidate = nil
	return had
}

// WeekPlan returns a snapshot of the in-memory weekly plan.
func (s *Service) WeekPlan(userID string) [7][]WeekEntry {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	var week [7][]WeekEntry
	for i := range sess.week {
		week[i] = append([]WeekEntry(nil), sess.week[i]...)
	}
	return week
}

// ShoppingList returns a copy of the session shopping list, in
// acceptance order.
func (s *Service) ShoppingList(ctx context.Context, userID string) []storage.Ingredient {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	return append([]storage.Ingredient(nil), sess.shopping...)
}

// unionIngredients appends incoming ingredients, skipping names the
// list already holds. Comparison is case-insensitive.
func unionIngredients(list, incoming []storage.Ingredient) []storage.Ingredient {
	seen := make(map[string]struct{}, len(list))
	for _, ing := range list {
		seen[strings.ToLower(ing.Name)] = struct{}{}
	}
	for _, ing := range incoming {
		key := strings.ToLower(ing.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		list = append(list, ing)
	}
	return list
}
