package vitals

import "encoding/json"

// Totals — накопленные за день калории и белок.
type Totals struct {
	Date          string `json:"date"`
	TotalCalories int    `json:"totalCalories"`
	TotalProtein  int    `json:"totalProtein"`
	TotalFat      int    `json:"totalFat"`
	TotalCarbs    int    `json:"totalCarbs"`
	MealCount     int    `json:"mealCount"`
}

// GoalRatios are display percentages against the fixed daily goals,
// clamped to [0,100].
type GoalRatios struct {
	CaloriesPercent int `json:"caloriesPercent"`
	ProteinPercent  int `json:"proteinPercent"`
}

// TotalsResponse is the response for GET /v1/user/daily-totals and
// POST /v1/vitals/reconcile.
type TotalsResponse struct {
	Totals Totals     `json:"totals"`
	Goals  GoalRatios `json:"goals"`
}

// MealNutrition carries the macro payload of a meal. Older clients
// send the protein value under "protein", newer ones under
// "proteinGrams"; both spellings are accepted.
type MealNutrition struct {
	Calories     int
	ProteinGrams int
	FatGrams     int
	CarbGrams    int
}

func (m *MealNutrition) UnmarshalJSON(data []byte) error {
	var raw struct {
		Calories     int  `json:"calories"`
		Protein      *int `json:"protein"`
		ProteinGrams *int `json:"proteinGrams"`
		FatGrams     int  `json:"fatGrams"`
		CarbGrams    int  `json:"carbGrams"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	m.Calories = raw.Calories
	m.FatGrams = raw.FatGrams
	m.CarbGrams = raw.CarbGrams

	switch {
	case raw.Protein != nil:
		m.ProteinGrams = *raw.Protein
	case raw.ProteinGrams != nil:
		m.ProteinGrams = *raw.ProteinGrams
	default:
		m.ProteinGrams = 0
	}
	return nil
}
