package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amble-health/amble/internal/storage"
	"github.com/amble-health/amble/internal/userctx"
)

type mockMealsRepo struct {
	randomFunc func(ctx context.Context, dietName string) (storage.Meal, bool, error)
}

func (m *mockMealsRepo) ListDietPlans(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (m *mockMealsRepo) GetRandomMealByDiet(ctx context.Context, dietName string) (storage.Meal, bool, error) {
	if m.randomFunc != nil {
		return m.randomFunc(ctx, dietName)
	}
	return storage.Meal{}, false, nil
}

type mockDietResolver struct {
	diet string
	err  error
}

func (m *mockDietResolver) ActiveDiet(ctx context.Context, userID string) (string, error) {
	return m.diet, m.err
}

type mockRegistrar struct {
	registered []storage.Meal
	dayIndexes []int
	generation uint64
}

func (m *mockRegistrar) RegisterCandidate(ctx context.Context, userID string, meal storage.Meal, dayIndex int) uint64 {
	m.registered = append(m.registered, meal)
	m.dayIndexes = append(m.dayIndexes, dayIndex)
	m.generation++
	return m.generation
}

func ketoSalmon() storage.Meal {
	return storage.Meal{
		ID:           7,
		Name:         "Grilled Salmon",
		Calories:     420,
		ProteinGrams: 38,
		FatGrams:     28,
		CarbGrams:    4,
		Ingredients: []storage.Ingredient{
			{Name: "Salmon Fillet", Quantity: "200g", SmartGroup: "Seafood"},
			{Name: "Olive Oil", Quantity: "1 tbsp", SmartGroup: "Oils"},
		},
	}
}

func TestHandleSuggest_Success(t *testing.T) {
	repo := &mockMealsRepo{
		randomFunc: func(ctx context.Context, dietName string) (storage.Meal, bool, error) {
			if dietName != "Keto" {
				t.Errorf("expected diet 'Keto', got '%s'", dietName)
			}
			return ketoSalmon(), true, nil
		},
	}
	registrar := &mockRegistrar{}
	handler := NewHandler(NewService(repo), &mockDietResolver{}, registrar)

	req := httptest.NewRequest(http.MethodGet, "/v1/meals/suggest?diet=Keto&day=3", nil)
	req = req.WithContext(userctx.WithUserID(req.Context(), "2"))

	w := httptest.NewRecorder()
	handler.HandleSuggest(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response SuggestResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Meal.MealID != 7 || response.Meal.Name != "Grilled Salmon" {
		t.Errorf("unexpected meal: %+v", response.Meal)
	}
	if response.Meal.Calories != 420 || response.Meal.ProteinGrams != 38 {
		t.Errorf("unexpected macros: %+v", response.Meal)
	}
	if response.DayIndex != 3 {
		t.Errorf("expected day index 3, got %d", response.DayIndex)
	}

	if len(registrar.registered) != 1 || registrar.registered[0].ID != 7 {
		t.Errorf("suggestion should register exactly one candidate, got %+v", registrar.registered)
	}
	if registrar.dayIndexes[0] != 3 {
		t.Errorf("candidate should target day 3, got %d", registrar.dayIndexes[0])
	}
}

func TestHandleSuggest_FallsBackToActiveDiet(t *testing.T) {
	var requested string
	repo := &mockMealsRepo{
		randomFunc: func(ctx context.Context, dietName string) (storage.Meal, bool, error) {
			requested = dietName
			return ketoSalmon(), true, nil
		},
	}
	handler := NewHandler(NewService(repo), &mockDietResolver{diet: "Paleo"}, &mockRegistrar{})

	req := httptest.NewRequest(http.MethodGet, "/v1/meals/suggest", nil)
	req = req.WithContext(userctx.WithUserID(req.Context(), "2"))

	w := httptest.NewRecorder()
	handler.HandleSuggest(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if requested != "Paleo" {
		t.Errorf("expected fallback to active diet 'Paleo', got '%s'", requested)
	}
}

func TestHandleSuggest_NoMealFound(t *testing.T) {
	repo := &mockMealsRepo{
		randomFunc: func(ctx context.Context, dietName string) (storage.Meal, bool, error) {
			return storage.Meal{}, false, nil
		},
	}
	registrar := &mockRegistrar{}
	handler := NewHandler(NewService(repo), &mockDietResolver{}, registrar)

	req := httptest.NewRequest(http.MethodGet, "/v1/meals/suggest?diet=Carnivore", nil)
	req = req.WithContext(userctx.WithUserID(req.Context(), "2"))

	w := httptest.NewRecorder()
	handler.HandleSuggest(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
	if len(registrar.registered) != 0 {
		t.Errorf("failed suggestion must not register a candidate, got %+v", registrar.registered)
	}

	var body map[string]map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["error"]["code"] != "no_meal_found" {
		t.Errorf("expected error code 'no_meal_found', got '%s'", body["error"]["code"])
	}
}

func TestHandleSuggest_InvalidDay(t *testing.T) {
	handler := NewHandler(NewService(&mockMealsRepo{}), &mockDietResolver{}, &mockRegistrar{})

	for _, day := range []string{"7", "-1", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/v1/meals/suggest?diet=Keto&day="+day, nil)
		req = req.WithContext(userctx.WithUserID(req.Context(), "2"))

		w := httptest.NewRecorder()
		handler.HandleSuggest(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("day=%s: expected status 400, got %d", day, w.Code)
		}
	}
}

func TestSuggest_CatalogError(t *testing.T) {
	repo := &mockMealsRepo{
		randomFunc: func(ctx context.Context, dietName string) (storage.Meal, bool, error) {
			return storage.Meal{}, false, errors.New("connection refused")
		},
	}
	service := NewService(repo)

	_, err := service.Suggest(context.Background(), "Keto")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrNoMealFound) {
		t.Error("catalog error must not be reported as no_meal_found")
	}
}

func TestSuggest_EmptyCatalogIsNoMealFound(t *testing.T) {
	service := NewService(&mockMealsRepo{})

	_, err := service.Suggest(context.Background(), "Keto")
	if !errors.Is(err, ErrNoMealFound) {
		t.Errorf("expected ErrNoMealFound, got %v", err)
	}
}
