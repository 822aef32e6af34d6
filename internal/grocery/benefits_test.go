package grocery

import (
	"reflect"
	"testing"
)

func TestClassify_ExactMatch(t *testing.T) {
	c := Classify("salmon")

	if c.Category != "Meat & Seafood" {
		t.Errorf("expected category 'Meat & Seafood', got '%s'", c.Category)
	}
	if len(c.Nutrients) != 4 {
		t.Errorf("expected 4 nutrient facts, got %d", len(c.Nutrients))
	}
	if c.Nutrients[0].Name != "Omega-3 Fatty Acids" {
		t.Errorf("expected first nutrient 'Omega-3 Fatty Acids', got '%s'", c.Nutrients[0].Name)
	}
	if len(c.KeyBenefits) != 3 || c.KeyBenefits[0] != "Heart Health" {
		t.Errorf("unexpected key benefits: %v", c.KeyBenefits)
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	lower := Classify("salmon")
	mixed := Classify("SaLmOn")

	if !reflect.DeepEqual(lower.Nutrients, mixed.Nutrients) {
		t.Error("classification should not depend on input case")
	}
	if mixed.Ingredient != "SaLmOn" {
		t.Errorf("original spelling should be preserved, got '%s'", mixed.Ingredient)
	}
}

func TestClassify_KeyIsSubstringOfInput(t *testing.T) {
	c := Classify("Grilled Chicken Breast")

	if c.Category != "Meat & Seafood" {
		t.Errorf("expected 'Grilled Chicken Breast' to resolve via 'chicken', got category '%s'", c.Category)
	}
	if c.KeyBenefits[0] != "Lean Muscle Building" {
		t.Errorf("expected chicken benefits, got %v", c.KeyBenefits)
	}
}

func TestClassify_InputIsSubstringOfKey(t *testing.T) {
	// "yogurt" is a substring of the table key "greek yogurt".
	c := Classify("yogurt")

	if c.Category != "Dairy & Eggs" {
		t.Errorf("expected 'yogurt' to resolve via 'greek yogurt', got category '%s'", c.Category)
	}
}

func TestClassify_FirstMatchWinsInTableOrder(t *testing.T) {
	// "oil" is a substring of both "olive oil" and "coconut oil";
	// "olive oil" is declared first.
	c := Classify("oil")

	if c.Nutrients[0].Name != "Monounsaturated Fats" {
		t.Errorf("expected olive oil entry to win, got first nutrient '%s'", c.Nutrients[0].Name)
	}
}

func TestClassify_Fallback(t *testing.T) {
	c := Classify("dragon fruit")

	if c.Category != "Other" {
		t.Errorf("expected fallback category 'Other', got '%s'", c.Category)
	}
	if len(c.Nutrients) != 1 {
		t.Errorf("expected one generic nutrient fact, got %d", len(c.Nutrients))
	}
	want := []string{"Balanced Nutrition", "Dietary Variety"}
	if !reflect.DeepEqual(c.KeyBenefits, want) {
		t.Errorf("expected generic benefits %v, got %v", want, c.KeyBenefits)
	}
	if c.Ingredient != "dragon fruit" {
		t.Errorf("fallback should keep the queried name, got '%s'", c.Ingredient)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	inputs := []string{"salmon", "Grilled Chicken Breast", "oil", "dragon fruit", "yogurt"}
	for _, name := range inputs {
		first := Classify(name)
		for i := 0; i < 10; i++ {
			if got := Classify(name); !reflect.DeepEqual(got, first) {
				t.Fatalf("Classify(%q) is not deterministic: %v vs %v", name, got, first)
			}
		}
	}
}
