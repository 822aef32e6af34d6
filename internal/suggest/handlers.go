package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/amble-health/amble/internal/storage"
	"github.com/amble-health/amble/internal/userctx"
)

// DietResolver supplies the user's active diet when the request does
// not name one.
type DietResolver interface {
	ActiveDiet(ctx context.Context, userID string) (string, error)
}

// CandidateRegistrar installs a suggested meal as the user's live
// candidate and returns its generation. Newer registrations supersede
// older ones.
type CandidateRegistrar interface {
	RegisterCandidate(ctx context.Context, userID string, meal storage.Meal, dayIndex int) uint64
}

// Handler handles HTTP requests for meal suggestions.
type Handler struct {
	service   *Service
	diets     DietResolver
	registrar CandidateRegistrar
}

// NewHandler creates a new suggestion handler.
func NewHandler(service *Service, diets DietResolver, registrar CandidateRegistrar) *Handler {
	return &Handler{
		service:   service,
		diets:     diets,
		registrar: registrar,
	}
}

// HandleSuggest handles GET /v1/meals/suggest?diet=&day=
func (h *Handler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := userctx.GetUserID(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	diet := r.URL.Query().Get("diet")
	if diet == "" {
		active, err := h.diets.ActiveDiet(ctx, userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", "Failed to resolve active diet")
			return
		}
		diet = active
	}

	dayIndex, err := parseDayIndex(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "day must be an integer in [0,6]")
		return
	}

	meal, err := h.service.Suggest(ctx, diet)
	if err != nil {
		// Failed suggestions leave any prior candidate untouched.
		if errors.Is(err, ErrNoMealFound) {
			writeError(w, http.StatusNotFound, "no_meal_found", "No meals available for diet: "+diet)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to fetch suggestion")
		return
	}

	generation := h.registrar.RegisterCandidate(ctx, userID, meal, dayIndex)

	response := SuggestResponse{
		Meal:       ToMealDTO(meal),
		DayIndex:   dayIndex,
		Generation: generation,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// parseDayIndex reads the target day from the query, defaulting to
// today's weekday.
func parseDayIndex(r *http.Request) (int, error) {
	dayStr := r.URL.Query().Get("day")
	if dayStr == "" {
		return int(time.Now().UTC().Weekday()), nil
	}

	day, err := strconv.Atoi(dayStr)
	if err != nil || day < 0 || day > 6 {
		return 0, errors.New("day out of range")
	}
	return day, nil
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
