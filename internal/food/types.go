package food

import (
	"fmt"
	"math/bits"
	"strings"
)

// Allergen identifies one entry of the fixed allergen vocabulary.
type Allergen uint8

const (
	AllergenNuts Allergen = iota
	AllergenGluten
	AllergenSoy
	AllergenDairy

	numAllergens
)

var allergenNames = [numAllergens]string{"nuts", "gluten", "soy", "dairy"}

func (a Allergen) String() string {
	if a >= numAllergens {
		return fmt.Sprintf("allergen(%d)", uint8(a))
	}
	return allergenNames[a]
}

// ParseAllergen maps a tag like "nuts" to its Allergen value.
func ParseAllergen(s string) (Allergen, error) {
	for i, name := range allergenNames {
		if name == s {
			return Allergen(i), nil
		}
	}
	return 0, fmt.Errorf("unknown allergen %q", s)
}

// AllergenSet is a bitset over the allergen vocabulary. The zero value is
// the empty set.
type AllergenSet uint8

// NewAllergenSet builds a set from the given allergens.
func NewAllergenSet(allergens ...Allergen) AllergenSet {
	var s AllergenSet
	for _, a := range allergens {
		s = s.With(a)
	}
	return s
}

// ParseAllergenSet parses a comma-separated tag list, e.g. "nuts,soy".
// Empty input and blank entries yield the empty set.
func ParseAllergenSet(s string) (AllergenSet, error) {
	var set AllergenSet
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		a, err := ParseAllergen(part)
		if err != nil {
			return 0, err
		}
		set = set.With(a)
	}
	return set, nil
}

// With returns the set extended by a.
func (s AllergenSet) With(a Allergen) AllergenSet {
	return s | 1<<a
}

// Contains reports whether a is in the set.
func (s AllergenSet) Contains(a Allergen) bool {
	return s&(1<<a) != 0
}

// SubsetOf reports whether every allergen in s is also in other.
func (s AllergenSet) SubsetOf(other AllergenSet) bool {
	return s&^other == 0
}

// Len returns the number of allergens in the set.
func (s AllergenSet) Len() int {
	return bits.OnesCount8(uint8(s))
}

func (s AllergenSet) String() string {
	if s == 0 {
		return "none"
	}
	parts := make([]string, 0, s.Len())
	for a := Allergen(0); a < numAllergens; a++ {
		if s.Contains(a) {
			parts = append(parts, a.String())
		}
	}
	return strings.Join(parts, ",")
}

// Category is one of the five fixed food roles every meal must fill.
type Category uint8

const (
	CategoryStaple Category = iota
	CategorySide
	CategoryVegetable
	CategoryFruit
	CategoryComplement

	// NumCategories is the size of the closed category set.
	NumCategories
)

var categoryNames = [NumCategories]string{"staple", "side", "vegetable", "fruit", "complement"}

func (c Category) String() string {
	if c >= NumCategories {
		return fmt.Sprintf("category(%d)", uint8(c))
	}
	return categoryNames[c]
}

// Categories returns the closed category set in its fixed order.
func Categories() []Category {
	return []Category{CategoryStaple, CategorySide, CategoryVegetable, CategoryFruit, CategoryComplement}
}

// Nutrition holds the four tracked nutrient quantities.
type Nutrition struct {
	Calories float64
	Protein  float64
	Fat      float64
	Sodium   float64
}

// AddScaled returns n plus other scaled by factor.
func (n Nutrition) AddScaled(other Nutrition, factor float64) Nutrition {
	return Nutrition{
		Calories: n.Calories + other.Calories*factor,
		Protein:  n.Protein + other.Protein*factor,
		Fat:      n.Fat + other.Fat*factor,
		Sodium:   n.Sodium + other.Sodium*factor,
	}
}

// FoodItem is one catalog entry. Items are immutable once built, so
// references may be shared freely across meals and plans.
type FoodItem struct {
	Name      string
	Nutrition Nutrition
	Allergens AllergenSet
}

// MealSlot pairs a chosen food with its portion multiplier.
type MealSlot struct {
	Food    *FoodItem
	Portion float64
}

// Meal holds exactly one slot per category, indexed by Category.
type Meal [NumCategories]MealSlot

// Slot returns the (item, portion) pair for the given category.
func (m Meal) Slot(c Category) MealSlot {
	return m[c]
}

// Nutrition returns the portion-scaled nutrient sum over all slots.
func (m Meal) Nutrition() Nutrition {
	var total Nutrition
	for _, slot := range m {
		total = total.AddScaled(slot.Food.Nutrition, slot.Portion)
	}
	return total
}
