package memory

import (
	"context"
	"math/rand"
	"strings"
	"sync"

	"github.com/amble-health/amble/internal/storage"
)

type mealsStorage struct {
	mu     sync.RWMutex
	diets  []string
	byDiet map[string][]storage.Meal // key: lowercase diet name
	byID   map[int64]storage.Meal
}

func newMealsStorage() *mealsStorage {
	s := &mealsStorage{
		byDiet: make(map[string][]storage.Meal),
		byID:   make(map[int64]storage.Meal),
	}
	s.seed()
	return s
}

// seed наполняет каталог стартовым набором блюд для memory режима.
func (s *mealsStorage) seed() {
	catalog := map[string][]storage.Meal{
		"Keto": {
			{
				ID: 7, Name: "Grilled Salmon", ImageURL: "https://placehold.co/100x100?text=Grilled+Salmon",
				Calories: 420, ProteinGrams: 38, FatGrams: 28, CarbGrams: 4,
				Ingredients: []storage.Ingredient{
					{Name: "Salmon Fillet", Quantity: "200g", SmartGroup: "Seafood"},
					{Name: "Olive Oil", Quantity: "1 tbsp", SmartGroup: "Oils"},
					{Name: "Asparagus", Quantity: "150g", SmartGroup: "Produce"},
					{Name: "Lemon", Quantity: "1/2", SmartGroup: "Produce"},
				},
			},
		},
		"Paleo": {
			{
				ID: 12, Name: "Steak & Sweet Potato", ImageURL: "https://placehold.co/100x100?text=Steak",
				Calories: 560, ProteinGrams: 42, FatGrams: 26, CarbGrams: 34,
				Ingredients: []storage.Ingredient{
					{Name: "Beef Sirloin", Quantity: "220g", SmartGroup: "Meat"},
					{Name: "Sweet Potato", Quantity: "1 medium", SmartGroup: "Produce"},
					{Name: "Butter", Quantity: "1 tbsp", SmartGroup: "Dairy"},
				},
			},
		},
		"Mediterranean": {
			{
				ID: 15, Name: "Shrimp Quinoa Bowl", ImageURL: "https://placehold.co/100x100?text=Shrimp+Bowl",
				Calories: 480, ProteinGrams: 34, FatGrams: 16, CarbGrams: 46,
				Ingredients: []storage.Ingredient{
					{Name: "Shrimp", Quantity: "180g", SmartGroup: "Seafood"},
					{Name: "Quinoa", Quantity: "1 cup", SmartGroup: "Grains"},
					{Name: "Zucchini", Quantity: "1", SmartGroup: "Produce"},
					{Name: "Olive Oil", Quantity: "2 tbsp", SmartGroup: "Oils"},
				},
			},
		},
		"Vegetarian": {
			{
				ID: 21, Name: "Lentil Power Salad", ImageURL: "https://placehold.co/100x100?text=Lentil+Salad",
				Calories: 390, ProteinGrams: 22, FatGrams: 12, CarbGrams: 48,
				Ingredients: []storage.Ingredient{
					{Name: "Lentils", Quantity: "1 cup", SmartGroup: "Grains"},
					{Name: "Spinach", Quantity: "80g", SmartGroup: "Produce"},
					{Name: "Greek Yogurt", Quantity: "100g", SmartGroup: "Dairy"},
					{Name: "Walnuts", Quantity: "30g", SmartGroup: "Nuts"},
				},
			},
		},
		"Vegan": {
			{
				ID: 24, Name: "Chickpea Buddha Bowl", ImageURL: "https://placehold.co/100x100?text=Buddha+Bowl",
				Calories: 440, ProteinGrams: 19, FatGrams: 15, CarbGrams: 58,
				Ingredients: []storage.Ingredient{
					{Name: "Chickpeas", Quantity: "1 cup", SmartGroup: "Canned Goods"},
					{Name: "Kale", Quantity: "60g", SmartGroup: "Produce"},
					{Name: "Avocado", Quantity: "1/2", SmartGroup: "Produce"},
					{Name: "Quinoa", Quantity: "3/4 cup", SmartGroup: "Grains"},
				},
			},
		},
	}

	s.diets = []string{"Keto", "Paleo", "Mediterranean", "Vegetarian", "Vegan"}
	for _, diet := range s.diets {
		meals := catalog[diet]
		s.byDiet[strings.ToLower(diet)] = meals
		for _, meal := range meals {
			s.byID[meal.ID] = meal
		}
	}
}

func (s *mealsStorage) ListDietPlans(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	diets := make([]string, len(s.diets))
	copy(diets, s.diets)
	return diets, nil
}

func (s *mealsStorage) GetRandomMealByDiet(ctx context.Context, dietName string) (storage.Meal, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meals := s.byDiet[strings.ToLower(strings.TrimSpace(dietName))]
	if len(meals) == 0 {
		return storage.Meal{}, false, nil
	}
	return meals[rand.Intn(len(meals))], true, nil
}

// getMealByID используется planEntriesStorage для вычисления дневных агрегатов.
func (s *mealsStorage) getMealByID(id int64) (storage.Meal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meal, ok := s.byID[id]
	return meal, ok
}

// MealsStorage methods - delegate to embedded meals storage

func (m *MemoryStorage) ListDietPlans(ctx context.Context) ([]string, error) {
	return m.meals.ListDietPlans(ctx)
}

func (m *MemoryStorage) GetRandomMealByDiet(ctx context.Context, dietName string) (storage.Meal, bool, error) {
	return m.meals.GetRandomMealByDiet(ctx, dietName)
}
