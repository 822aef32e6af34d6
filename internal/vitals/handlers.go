package vitals

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/amble-health/amble/internal/userctx"
)

// Handler handles HTTP requests for daily nutrition totals.
type Handler struct {
	aggregator *Aggregator
	now        func() time.Time
}

// NewHandler creates a new vitals handler.
func NewHandler(aggregator *Aggregator) *Handler {
	return &Handler{
		aggregator: aggregator,
		now:        time.Now,
	}
}

// HandleDailyTotals handles GET /v1/user/daily-totals
// Returns the current in-memory totals without forcing a reload.
func (h *Handler) HandleDailyTotals(w http.ResponseWriter, r *http.Request) {
	userID, ok := userctx.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	date := h.today()
	totals := h.aggregator.Totals(userID, date)

	writeTotals(w, totals, h.aggregator.Ratios(totals))
}

// HandleReconcile handles POST /v1/vitals/reconcile
// Forces an authoritative reload, overwriting optimistic drift.
func (h *Handler) HandleReconcile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := userctx.GetUserID(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	date := h.today()
	totals, err := h.aggregator.Reconcile(ctx, userID, date)
	if err != nil {
		// The session kept its previous totals; report the failure.
		writeError(w, http.StatusBadGateway, "reconcile_failed", "Failed to load authoritative totals")
		return
	}

	writeTotals(w, totals, h.aggregator.Ratios(totals))
}

func (h *Handler) today() string {
	return h.now().UTC().Format("2006-01-02")
}

func writeTotals(w http.ResponseWriter, totals Totals, goals GoalRatios) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(TotalsResponse{Totals: totals, Goals: goals})
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
