package suggest

import "github.com/amble-health/amble/internal/storage"

// IngredientDTO represents one meal ingredient in API responses.
type IngredientDTO struct {
	Name       string `json:"name"`
	Quantity   string `json:"quantity,omitempty"`
	SmartGroup string `json:"smartGroup,omitempty"`
}

// MealDTO represents a suggested meal in API responses.
type MealDTO struct {
	MealID       int64           `json:"mealId"`
	Name         string          `json:"name"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	Calories     int             `json:"calories"`
	ProteinGrams int             `json:"proteinGrams"`
	FatGrams     int             `json:"fatGrams"`
	CarbGrams    int             `json:"carbGrams"`
	Ingredients  []IngredientDTO `json:"ingredients"`
}

// SuggestResponse is the response for GET /v1/meals/suggest.
type SuggestResponse struct {
	Meal       MealDTO `json:"meal"`
	DayIndex   int     `json:"dayIndex"`
	Generation uint64  `json:"generation"`
}

// ToMealDTO converts a catalog meal to its API shape.
func ToMealDTO(meal storage.Meal) MealDTO {
	ingredients := make([]IngredientDTO, len(meal.Ingredients))
	for i, ing := range meal.Ingredients {
		ingredients[i] = IngredientDTO{
			Name:       ing.Name,
			Quantity:   ing.Quantity,
			SmartGroup: ing.SmartGroup,
		}
	}
	return MealDTO{
		MealID:       meal.ID,
		Name:         meal.Name,
		ImageURL:     meal.ImageURL,
		Calories:     meal.Calories,
		ProteinGrams: meal.ProteinGrams,
		FatGrams:     meal.FatGrams,
		CarbGrams:    meal.CarbGrams,
		Ingredients:  ingredients,
	}
}
