package food

import (
	"fmt"
	"math/rand"
)

// Catalog holds, per category, an ordered non-empty list of food items.
// It is built once and read-only afterwards, so it may be shared across
// any number of concurrent readers.
type Catalog struct {
	items [NumCategories][]FoodItem
}

// EmptyCatalogError reports a catalog size too small to give every
// category at least one item.
type EmptyCatalogError struct {
	Size int
}

func (e *EmptyCatalogError) Error() string {
	return fmt.Sprintf("catalog size %d leaves every category empty (need at least %d)", e.Size, NumCategories)
}

// BuildCatalog generates size/5 random items per category from the given
// random source. The same seed yields the same catalog.
func BuildCatalog(size int, rng *rand.Rand) (*Catalog, error) {
	perCategory := size / int(NumCategories)
	if perCategory < 1 {
		return nil, &EmptyCatalogError{Size: size}
	}

	c := &Catalog{}
	for _, cat := range Categories() {
		items := make([]FoodItem, perCategory)
		for i := range items {
			items[i] = FoodItem{
				Name: fmt.Sprintf("%s_%d", cat, i),
				Nutrition: Nutrition{
					Calories: float64(50 + rng.Intn(251)),
					Protein:  2 + rng.Float64()*18,
					Fat:      1 + rng.Float64()*14,
					Sodium:   float64(10 + rng.Intn(391)),
				},
				Allergens: randomAllergens(rng),
			}
		}
		c.items[cat] = items
	}
	return c, nil
}

// randomAllergens draws 0-2 tags with replacement and dedupes them.
func randomAllergens(rng *rand.Rand) AllergenSet {
	var set AllergenSet
	draws := rng.Intn(3)
	for i := 0; i < draws; i++ {
		set = set.With(Allergen(rng.Intn(int(numAllergens))))
	}
	return set
}

// Items returns the item list for a category.
func (c *Catalog) Items(cat Category) []FoodItem {
	return c.items[cat]
}

// Len returns the total number of items across all categories.
func (c *Catalog) Len() int {
	n := 0
	for _, items := range c.items {
		n += len(items)
	}
	return n
}

// SampleMeal draws one item per category, preferring items whose allergens
// are a subset of allowed. When no item in a category qualifies, the whole
// category list is used instead; the constraint is advisory, never blocking.
// Portions are uniform in [0.5, 2.0).
func (c *Catalog) SampleMeal(allowed AllergenSet, rng *rand.Rand) Meal {
	var meal Meal
	for _, cat := range Categories() {
		items := c.items[cat]

		eligible := make([]*FoodItem, 0, len(items))
		for i := range items {
			if items[i].Allergens.SubsetOf(allowed) {
				eligible = append(eligible, &items[i])
			}
		}
		if len(eligible) == 0 {
			// Fallback: the full category list.
			eligible = eligible[:0]
			for i := range items {
				eligible = append(eligible, &items[i])
			}
		}

		meal[cat] = MealSlot{
			Food:    eligible[rng.Intn(len(eligible))],
			Portion: 0.5 + rng.Float64()*1.5,
		}
	}
	return meal
}
