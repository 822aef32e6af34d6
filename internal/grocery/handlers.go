package grocery

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/amble-health/amble/internal/storage"
	"github.com/amble-health/amble/internal/userctx"
)

// ShoppingSource supplies the current session shopping list for a user.
type ShoppingSource interface {
	ShoppingList(ctx context.Context, userID string) []storage.Ingredient
}

// Handler handles HTTP requests for the grocery list and ingredient benefits.
type Handler struct {
	shopping ShoppingSource
}

// NewHandler creates a new grocery handler.
func NewHandler(shopping ShoppingSource) *Handler {
	return &Handler{shopping: shopping}
}

// HandleList handles GET /v1/grocery/list
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := userctx.GetUserID(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	ingredients := h.shopping.ShoppingList(ctx, userID)
	groups := GroupByCategory(ingredients)

	response := ListResponse{
		Groups: make([]CategoryGroupDTO, len(groups)),
		Total:  len(ingredients),
	}
	for i, g := range groups {
		items := make([]IngredientDTO, len(g.Items))
		for j, ing := range g.Items {
			items[j] = IngredientDTO{
				Name:       ing.Name,
				Quantity:   ing.Quantity,
				SmartGroup: g.Category,
			}
		}
		response.Groups[i] = CategoryGroupDTO{Category: g.Category, Items: items}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// HandleBenefits handles GET /v1/grocery/benefits?ingredient=
func (h *Handler) HandleBenefits(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("ingredient")
	if name == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "ingredient is required")
		return
	}

	c := Classify(name)
	response := BenefitsResponse{
		Ingredient:  c.Ingredient,
		Category:    c.Category,
		Nutrients:   c.Nutrients,
		KeyBenefits: c.KeyBenefits,
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
