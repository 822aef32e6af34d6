package grocery

// IngredientDTO represents an ingredient in API responses.
type IngredientDTO struct {
	Name       string `json:"name"`
	Quantity   string `json:"quantity,omitempty"`
	SmartGroup string `json:"smartGroup"`
}

// CategoryGroupDTO represents one shopping category and its items.
type CategoryGroupDTO struct {
	Category string          `json:"category"`
	Items    []IngredientDTO `json:"items"`
}

// ListResponse is the response for GET /v1/grocery/list.
type ListResponse struct {
	Groups []CategoryGroupDTO `json:"groups"`
	Total  int                `json:"total"`
}

// BenefitsResponse is the response for GET /v1/grocery/benefits.
type BenefitsResponse struct {
	Ingredient  string         `json:"ingredient"`
	Category    string         `json:"category"`
	Nutrients   []NutrientFact `json:"nutrients"`
	KeyBenefits []string       `json:"keyBenefits"`
}
