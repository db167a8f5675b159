package food

import "testing"

func TestAllergenSetSubset(t *testing.T) {
	nutsSoy := NewAllergenSet(AllergenNuts, AllergenSoy)

	if !NewAllergenSet().SubsetOf(nutsSoy) {
		t.Error("Empty set should be a subset of any set")
	}
	if !NewAllergenSet(AllergenNuts).SubsetOf(nutsSoy) {
		t.Error("{nuts} should be a subset of {nuts,soy}")
	}
	if !nutsSoy.SubsetOf(nutsSoy) {
		t.Error("A set should be a subset of itself")
	}
	if NewAllergenSet(AllergenDairy).SubsetOf(nutsSoy) {
		t.Error("{dairy} should not be a subset of {nuts,soy}")
	}
	if NewAllergenSet(AllergenNuts, AllergenGluten).SubsetOf(nutsSoy) {
		t.Error("{nuts,gluten} should not be a subset of {nuts,soy}")
	}
	if nutsSoy.SubsetOf(NewAllergenSet()) {
		t.Error("Non-empty set should not be a subset of the empty set")
	}
}

func TestAllergenSetDedup(t *testing.T) {
	s := NewAllergenSet(AllergenNuts, AllergenNuts, AllergenNuts)
	if s.Len() != 1 {
		t.Errorf("Expected length 1 after duplicate adds, got %d", s.Len())
	}
	if !s.Contains(AllergenNuts) {
		t.Error("Set should contain nuts")
	}
	if s.Contains(AllergenSoy) {
		t.Error("Set should not contain soy")
	}
}

func TestParseAllergenSet(t *testing.T) {
	s, err := ParseAllergenSet("nuts,soy")
	if err != nil {
		t.Fatalf("ParseAllergenSet failed: %v", err)
	}
	if !s.Contains(AllergenNuts) || !s.Contains(AllergenSoy) {
		t.Errorf("Expected {nuts,soy}, got %v", s)
	}
	if s.Len() != 2 {
		t.Errorf("Expected 2 allergens, got %d", s.Len())
	}

	empty, err := ParseAllergenSet("")
	if err != nil {
		t.Fatalf("ParseAllergenSet on empty input failed: %v", err)
	}
	if empty.Len() != 0 {
		t.Errorf("Expected empty set, got %v", empty)
	}

	if _, err := ParseAllergenSet("nuts,plutonium"); err == nil {
		t.Error("Expected error for unknown allergen tag")
	}
}

func TestAllergenSetString(t *testing.T) {
	if got := NewAllergenSet().String(); got != "none" {
		t.Errorf("Expected \"none\" for empty set, got %q", got)
	}
	if got := NewAllergenSet(AllergenSoy, AllergenNuts).String(); got != "nuts,soy" {
		t.Errorf("Expected \"nuts,soy\", got %q", got)
	}
}

func TestCategories(t *testing.T) {
	cats := Categories()
	if len(cats) != int(NumCategories) {
		t.Fatalf("Expected %d categories, got %d", NumCategories, len(cats))
	}

	names := map[string]bool{}
	for _, c := range cats {
		names[c.String()] = true
	}
	for _, want := range []string{"staple", "side", "vegetable", "fruit", "complement"} {
		if !names[want] {
			t.Errorf("Missing category %q", want)
		}
	}
}

func TestMealNutrition(t *testing.T) {
	item := FoodItem{
		Name:      "staple_0",
		Nutrition: Nutrition{Calories: 100, Protein: 10, Fat: 5, Sodium: 50},
	}

	var meal Meal
	for _, cat := range Categories() {
		meal[cat] = MealSlot{Food: &item, Portion: 2.0}
	}

	total := meal.Nutrition()
	if total.Calories != 1000 {
		t.Errorf("Expected 1000 calories, got %f", total.Calories)
	}
	if total.Protein != 100 {
		t.Errorf("Expected 100 protein, got %f", total.Protein)
	}
	if total.Fat != 50 {
		t.Errorf("Expected 50 fat, got %f", total.Fat)
	}
	if total.Sodium != 500 {
		t.Errorf("Expected 500 sodium, got %f", total.Sodium)
	}
}
