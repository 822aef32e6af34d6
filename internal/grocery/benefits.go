package grocery

import "strings"

// NutrientFact describes one nutrient an ingredient contributes.
type NutrientFact struct {
	Name    string `json:"name"`
	Benefit string `json:"benefit"`
}

// BenefitEntry — статическая запись о пользе ингредиента.
type BenefitEntry struct {
	Category    string
	Nutrients   []NutrientFact
	KeyBenefits []string
}

// Classification is the result of resolving an ingredient name against
// the benefit table.
type Classification struct {
	Ingredient  string
	Category    string
	Nutrients   []NutrientFact
	KeyBenefits []string
}

// benefitKeys fixes the lookup order for substring matching. Map
// iteration order is random, so the table is always walked through
// this slice.
var benefitKeys = []string{
	"chicken",
	"salmon",
	"beef",
	"eggs",
	"shrimp",
	"spinach",
	"broccoli",
	"cauliflower",
	"zucchini",
	"avocado",
	"kale",
	"sweet potato",
	"olive oil",
	"butter",
	"coconut oil",
	"cheese",
	"greek yogurt",
	"walnuts",
	"almonds",
	"quinoa",
	"lentils",
	"chickpeas",
}

var benefitTable = map[string]BenefitEntry{
	// Proteins
	"chicken": {
		Category: "Meat & Seafood",
		Nutrients: []NutrientFact{
			{Name: "Protein", Benefit: "Builds and repairs muscle tissue"},
			{Name: "Vitamin B6", Benefit: "Supports brain health and energy metabolism"},
			{Name: "Niacin", Benefit: "Supports digestive and nervous system health"},
			{Name: "Selenium", Benefit: "Powerful antioxidant supporting thyroid function"},
		},
		KeyBenefits: []string{"Lean Muscle Building", "Weight Management", "Immune Support"},
	},
	"salmon": {
		Category: "Meat & Seafood",
		Nutrients: []NutrientFact{
			{Name: "Omega-3 Fatty Acids", Benefit: "Reduces inflammation and supports heart health"},
			{Name: "Protein", Benefit: "Complete protein with all essential amino acids"},
			{Name: "Vitamin D", Benefit: "Supports bone health and immune function"},
			{Name: "Vitamin B12", Benefit: "Essential for nerve function and red blood cells"},
		},
		KeyBenefits: []string{"Heart Health", "Brain Function", "Anti-Inflammatory"},
	},
	"beef": {
		Category: "Meat & Seafood",
		Nutrients: []NutrientFact{
			{Name: "Iron", Benefit: "Essential for oxygen transport in blood"},
			{Name: "Zinc", Benefit: "Supports immune function and wound healing"},
			{Name: "Vitamin B12", Benefit: "Critical for nerve and blood cell health"},
			{Name: "Creatine", Benefit: "Supports muscle energy and performance"},
		},
		KeyBenefits: []string{"Energy Production", "Muscle Strength", "Cognitive Function"},
	},
	"eggs": {
		Category: "Dairy & Eggs",
		Nutrients: []NutrientFact{
			{Name: "Choline", Benefit: "Essential for brain health and liver function"},
			{Name: "Protein", Benefit: "Complete protein with all 9 essential amino acids"},
			{Name: "Vitamin D", Benefit: "Supports calcium absorption and bone health"},
			{Name: "Lutein", Benefit: "Protects eye health and vision"},
		},
		KeyBenefits: []string{"Brain Health", "Eye Protection", "Muscle Maintenance"},
	},
	"shrimp": {
		Category: "Meat & Seafood",
		Nutrients: []NutrientFact{
			{Name: "Protein", Benefit: "Low-calorie, high-quality protein source"},
			{Name: "Selenium", Benefit: "Supports thyroid and immune function"},
			{Name: "Vitamin B12", Benefit: "Supports energy and nerve health"},
			{Name: "Astaxanthin", Benefit: "Powerful antioxidant for skin and heart"},
		},
		KeyBenefits: []string{"Low-Calorie Protein", "Thyroid Support", "Antioxidant Rich"},
	},

	// Vegetables
	"spinach": {
		Category: "Produce",
		Nutrients: []NutrientFact{
			{Name: "Iron", Benefit: "Supports oxygen transport and energy levels"},
			{Name: "Vitamin K", Benefit: "Essential for blood clotting and bone health"},
			{Name: "Vitamin A", Benefit: "Supports vision and immune function"},
			{Name: "Folate", Benefit: "Critical for cell division and DNA synthesis"},
		},
		KeyBenefits: []string{"Energy Boost", "Bone Strength", "Eye Health"},
	},
	"broccoli": {
		Category: "Produce",
		Nutrients: []NutrientFact{
			{Name: "Vitamin C", Benefit: "Boosts immune system and collagen production"},
			{Name: "Vitamin K", Benefit: "Supports bone health and blood clotting"},
			{Name: "Fiber", Benefit: "Promotes digestive health and satiety"},
			{Name: "Sulforaphane", Benefit: "Powerful compound with anti-cancer properties"},
		},
		KeyBenefits: []string{"Immune Boost", "Digestive Health", "Cancer Prevention"},
	},
	"cauliflower": {
		Category: "Produce",
		Nutrients: []NutrientFact{
			{Name: "Vitamin C", Benefit: "Supports immune function and skin health"},
			{Name: "Vitamin K", Benefit: "Important for bone metabolism"},
			{Name: "Fiber", Benefit: "Aids digestion and promotes fullness"},
			{Name: "Choline", Benefit: "Supports brain health and metabolism"},
		},
		KeyBenefits: []string{"Low-Carb Alternative", "Brain Health", "Detoxification"},
	},
	"zucchini": {
		Category: "Produce",
		Nutrients: []NutrientFact{
			{Name: "Vitamin C", Benefit: "Supports immune function and skin health"},
			{Name: "Vitamin A", Benefit: "Important for vision and immune health"},
			{Name: "Potassium", Benefit: "Helps regulate blood pressure"},
			{Name: "Fiber", Benefit: "Aids digestion and promotes gut health"},
		},
		KeyBenefits: []string{"Healthy Vision", "Heart Health", "Hydration & Weight Management"},
	},
	"avocado": {
		Category: "Produce",
		Nutrients: []NutrientFact{
			{Name: "Healthy Fats", Benefit: "Monounsaturated fats support heart health"},
			{Name: "Potassium", Benefit: "More than bananas, supports blood pressure"},
			{Name: "Fiber", Benefit: "Promotes satiety and digestive health"},
			{Name: "Vitamin E", Benefit: "Powerful antioxidant for skin health"},
		},
		KeyBenefits: []string{"Heart Health", "Nutrient Absorption", "Skin Health"},
	},
	"kale": {
		Category: "Produce",
		Nutrients: []NutrientFact{
			{Name: "Vitamin K", Benefit: "One of the best sources for bone health"},
			{Name: "Vitamin A", Benefit: "Supports vision and immune function"},
			{Name: "Vitamin C", Benefit: "Powerful antioxidant and immune booster"},
			{Name: "Calcium", Benefit: "Supports bone density and muscle function"},
		},
		KeyBenefits: []string{"Bone Health", "Detoxification", "Anti-Inflammatory"},
	},
	"sweet potato": {
		Category: "Produce",
		Nutrients: []NutrientFact{
			{Name: "Beta-Carotene", Benefit: "Converts to Vitamin A for vision health"},
			{Name: "Fiber", Benefit: "Supports digestive health and blood sugar"},
			{Name: "Potassium", Benefit: "Supports heart and muscle function"},
			{Name: "Vitamin C", Benefit: "Boosts immunity and collagen production"},
		},
		KeyBenefits: []string{"Eye Health", "Blood Sugar Control", "Gut Health"},
	},

	// Fats & oils
	"olive oil": {
		Category: "Oils",
		Nutrients: []NutrientFact{
			{Name: "Monounsaturated Fats", Benefit: "Supports heart health and reduces inflammation"},
			{Name: "Polyphenols", Benefit: "Powerful antioxidants protecting cells"},
			{Name: "Vitamin E", Benefit: "Protects cells from oxidative damage"},
			{Name: "Oleocanthal", Benefit: "Natural anti-inflammatory compound"},
		},
		KeyBenefits: []string{"Heart Health", "Brain Protection", "Anti-Aging"},
	},
	"butter": {
		Category: "Dairy & Eggs",
		Nutrients: []NutrientFact{
			{Name: "Vitamin A", Benefit: "Supports vision and immune function"},
			{Name: "Vitamin K2", Benefit: "Directs calcium to bones, not arteries"},
			{Name: "Butyrate", Benefit: "Short-chain fatty acid supporting gut health"},
			{Name: "CLA", Benefit: "May support metabolism and body composition"},
		},
		KeyBenefits: []string{"Fat-Soluble Vitamins", "Gut Health", "Satiety"},
	},
	"coconut oil": {
		Category: "Oils",
		Nutrients: []NutrientFact{
			{Name: "MCTs", Benefit: "Medium-chain triglycerides for quick energy"},
			{Name: "Lauric Acid", Benefit: "Antimicrobial and immune-supporting"},
			{Name: "Saturated Fats", Benefit: "Stable for high-heat cooking"},
		},
		KeyBenefits: []string{"Quick Energy", "Immune Support", "Cooking Stability"},
	},

	// Dairy
	"cheese": {
		Category: "Dairy & Eggs",
		Nutrients: []NutrientFact{
			{Name: "Calcium", Benefit: "Essential for bone and teeth health"},
			{Name: "Protein", Benefit: "Complete protein for muscle maintenance"},
			{Name: "Vitamin B12", Benefit: "Supports nerve function and energy"},
			{Name: "Phosphorus", Benefit: "Works with calcium for bone health"},
		},
		KeyBenefits: []string{"Bone Health", "Muscle Maintenance", "Satiety"},
	},
	"greek yogurt": {
		Category: "Dairy & Eggs",
		Nutrients: []NutrientFact{
			{Name: "Probiotics", Benefit: "Live cultures supporting gut health"},
			{Name: "Protein", Benefit: "High protein content for satiety"},
			{Name: "Calcium", Benefit: "Supports bone density"},
			{Name: "Vitamin B12", Benefit: "Energy metabolism support"},
		},
		KeyBenefits: []string{"Gut Health", "Protein Rich", "Bone Strength"},
	},

	// Nuts & seeds
	"walnuts": {
		Category: "Nuts & Seeds",
		Nutrients: []NutrientFact{
			{Name: "Omega-3 ALA", Benefit: "Plant-based omega-3 for brain health"},
			{Name: "Antioxidants", Benefit: "Highest antioxidant content among nuts"},
			{Name: "Fiber", Benefit: "Supports digestive health"},
			{Name: "Melatonin", Benefit: "Natural compound supporting sleep"},
		},
		KeyBenefits: []string{"Brain Health", "Heart Protection", "Sleep Support"},
	},
	"almonds": {
		Category: "Nuts & Seeds",
		Nutrients: []NutrientFact{
			{Name: "Vitamin E", Benefit: "Powerful antioxidant for skin health"},
			{Name: "Magnesium", Benefit: "Supports muscle and nerve function"},
			{Name: "Fiber", Benefit: "Promotes satiety and digestive health"},
			{Name: "Protein", Benefit: "Plant-based protein source"},
		},
		KeyBenefits: []string{"Skin Health", "Blood Sugar Control", "Heart Health"},
	},

	// Grains & legumes
	"quinoa": {
		Category: "Grains & Legumes",
		Nutrients: []NutrientFact{
			{Name: "Complete Protein", Benefit: "All 9 essential amino acids"},
			{Name: "Fiber", Benefit: "Supports digestive health and satiety"},
			{Name: "Iron", Benefit: "Supports oxygen transport"},
			{Name: "Magnesium", Benefit: "Supports muscle and nerve function"},
		},
		KeyBenefits: []string{"Complete Protein", "Gluten-Free", "Blood Sugar Friendly"},
	},
	"lentils": {
		Category: "Grains & Legumes",
		Nutrients: []NutrientFact{
			{Name: "Plant Protein", Benefit: "Excellent vegetarian protein source"},
			{Name: "Fiber", Benefit: "High fiber for digestive health"},
			{Name: "Iron", Benefit: "Important for vegetarians"},
			{Name: "Folate", Benefit: "Supports cell growth and DNA synthesis"},
		},
		KeyBenefits: []string{"Heart Health", "Blood Sugar Control", "Digestive Health"},
	},
	"chickpeas": {
		Category: "Grains & Legumes",
		Nutrients: []NutrientFact{
			{Name: "Plant Protein", Benefit: "Good vegetarian protein source"},
			{Name: "Fiber", Benefit: "Promotes fullness and gut health"},
			{Name: "Folate", Benefit: "Essential for cell division"},
			{Name: "Iron", Benefit: "Supports energy levels"},
		},
		KeyBenefits: []string{"Blood Sugar Control", "Weight Management", "Gut Health"},
	},
}

// fallbackEntry is returned for ingredients the table does not know.
var fallbackEntry = BenefitEntry{
	Category: "Other",
	Nutrients: []NutrientFact{
		{Name: "Various Nutrients", Benefit: "Contributes to overall nutritional balance"},
	},
	KeyBenefits: []string{"Balanced Nutrition", "Dietary Variety"},
}

// Classify resolves an ingredient name to a shopping category and
// health-benefit metadata. Lookup: exact match on the lowercased name,
// then substring match in either direction over the table keys in
// declared order, then the generic fallback.
func Classify(ingredientName string) Classification {
	normalized := strings.ToLower(strings.TrimSpace(ingredientName))

	if entry, ok := benefitTable[normalized]; ok {
		return toClassification(ingredientName, entry)
	}

	for _, key := range benefitKeys {
		if strings.Contains(normalized, key) || strings.Contains(key, normalized) {
			return toClassification(ingredientName, benefitTable[key])
		}
	}

	return toClassification(ingredientName, fallbackEntry)
}

func toClassification(name string, entry BenefitEntry) Classification {
	return Classification{
		Ingredient:  name,
		Category:    entry.Category,
		Nutrients:   entry.Nutrients,
		KeyBenefits: entry.KeyBenefits,
	}
}
