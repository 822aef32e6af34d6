package planner

import "github.com/amble-health/amble/internal/vitals"

// AcceptRequest is the body for POST /v1/plan/accept. Generation 0
// accepts whatever candidate is live.
type AcceptRequest struct {
	Generation uint64 `json:"generation"`
}

// PlanEntryDTO represents a persisted plan entry in API responses.
type PlanEntryDTO struct {
	ID          string `json:"id"`
	MealID      int64  `json:"mealId"`
	PlannedDate string `json:"plannedDate"`
	MealTime    string `json:"mealTime"`
	Status      string `json:"status"`
}

// AcceptResponse is the response for POST /v1/plan/accept.
type AcceptResponse struct {
	Entry  PlanEntryDTO  `json:"entry"`
	Totals vitals.Totals `json:"totals"`
}

// CancelResponse is the response for POST /v1/plan/cancel.
type CancelResponse struct {
	Cancelled bool `json:"cancelled"`
}

// WeekEntryDTO represents one accepted meal on the weekly plan.
type WeekEntryDTO struct {
	EntryID      string `json:"entryId"`
	MealID       int64  `json:"mealId"`
	MealName     string `json:"mealName"`
	Calories     int    `json:"calories"`
	ProteinGrams int    `json:"proteinGrams"`
	MealTime     string `json:"mealTime"`
	PlannedDate  string `json:"plannedDate"`
}

// DayPlanDTO holds one weekday's accepted meals.
type DayPlanDTO struct {
	DayIndex int            `json:"dayIndex"`
	Entries  []WeekEntryDTO `json:"entries"`
}

// WeekResponse is the response for GET /v1/plan/week.
type WeekResponse struct {
	Days []DayPlanDTO `json:"days"`
}
