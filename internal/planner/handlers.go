package planner

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/amble-health/amble/internal/userctx"
)

// Handler handles HTTP requests for plan acceptance and the weekly plan.
type Handler struct {
	service *Service
}

// NewHandler creates a new planner handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleAccept handles POST /v1/plan/accept
func (h *Handler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := userctx.GetUserID(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	// An empty body is a plain "accept the live candidate".
	var req AcceptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}
	r.Body.Close()

	result, err := h.service.Accept(ctx, userID, req.Generation)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoCandidate):
			writeError(w, http.StatusConflict, "no_candidate", "No live suggestion to accept")
		case errors.Is(err, ErrStaleCandidate):
			writeError(w, http.StatusConflict, "stale_candidate", "Suggestion was already resolved")
		default:
			writeError(w, http.StatusBadGateway, "persistence_error", "Failed to save plan entry")
		}
		return
	}

	response := AcceptResponse{
		Entry: PlanEntryDTO{
			ID:          result.Entry.ID.String(),
			MealID:      result.Entry.MealID,
			PlannedDate: result.Entry.PlannedDate,
			MealTime:    result.Entry.MealTime,
			Status:      result.Entry.Status,
		},
		Totals: result.Totals,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)
}

// HandleCancel handles POST /v1/plan/cancel
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := userctx.GetUserID(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	cancelled := h.service.Cancel(ctx, userID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(CancelResponse{Cancelled: cancelled})
}

// HandleWeek handles GET /v1/plan/week
func (h *Handler) HandleWeek(w http.ResponseWriter, r *http.Request) {
	userID, ok := userctx.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	week := h.service.WeekPlan(userID)

	response := WeekResponse{Days: make([]DayPlanDTO, 7)}
	for i, entries := range week {
		day := DayPlanDTO{DayIndex: i, Entries: make([]WeekEntryDTO, len(entries))}
		for j, e := range entries {
			day.Entries[j] = WeekEntryDTO{
				EntryID:      e.EntryID,
				MealID:       e.MealID,
				MealName:     e.MealName,
				Calories:     e.Calories,
				ProteinGrams: e.ProteinGrams,
				MealTime:     e.MealTime,
				PlannedDate:  e.PlannedDate,
			}
		}
		response.Days[i] = day
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// writeError writes an error response in the standard format.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
