package prefs

import "time"

// PreferenceDTO represents the active diet preference in API responses.
type PreferenceDTO struct {
	UserID       string    `json:"userId"`
	Diet         string    `json:"diet"`
	CaloriesGoal int       `json:"caloriesGoal"`
	Allergies    string    `json:"allergies"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UpdatePreferenceRequest is the body for POST /v1/user/preference.
type UpdatePreferenceRequest struct {
	Diet string `json:"diet"`
}

// DietPlansResponse is the response for GET /v1/diet-plans.
type DietPlansResponse struct {
	Diets []string `json:"diets"`
}
