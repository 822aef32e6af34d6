package prefs

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/amble-health/amble/internal/userctx"
)

// Handler handles HTTP requests for diet preferences.
type Handler struct {
	service *Service
}

// NewHandler creates a new preferences handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleGet handles GET /v1/user/preference
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := userctx.GetUserID(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	pref, err := h.service.Get(ctx, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to get preference")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(pref)
}

// HandleUpdate handles POST /v1/user/preference
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := userctx.GetUserID(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	var req UpdatePreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}
	r.Body.Close()

	pref, err := h.service.Update(ctx, userID, req.Diet)
	if err != nil {
		if strings.HasPrefix(err.Error(), "invalid_request: ") {
			writeError(w, http.StatusBadRequest, "invalid_request", strings.TrimPrefix(err.Error(), "invalid_request: "))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to save preference")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(pref)
}

// HandleDietPlans handles GET /v1/diet-plans
func (h *Handler) HandleDietPlans(w http.ResponseWriter, r *http.Request) {
	diets := h.service.DietCatalog(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(DietPlansResponse{Diets: diets})
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
