package genetic

import (
	"math"
	"math/rand"

	"github.com/cwbudde/dietplanfit/internal/food"
)

const (
	// PlanDays is the number of days a plan covers.
	PlanDays = 7
	// MealsPerDay is the number of meals per day.
	MealsPerDay = 3
	// PlanMeals is the total number of meal slots in a plan.
	PlanMeals = PlanDays * MealsPerDay

	// diversityWeight is the fitness bonus per distinct food used.
	diversityWeight = 0.01
)

// Goals holds the nutrient targets for the full plan period.
type Goals struct {
	Calories float64
	Protein  float64
	Fat      float64
	Sodium   float64
}

// Validate rejects any non-positive target.
func (g Goals) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"calories", g.Calories},
		{"protein", g.Protein},
		{"fat", g.Fat},
		{"sodium", g.Sodium},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return &InvalidGoalError{Nutrient: c.name, Value: c.value}
		}
	}
	return nil
}

// Plan is one candidate weekly menu: an ordered gene sequence of meals,
// slot index = day*MealsPerDay + meal. Fitness is computed by Evaluate and
// is NOT kept current automatically; after any gene change the caller must
// re-evaluate.
type Plan struct {
	Genes   []food.Meal
	Fitness float64
}

// NewRandomPlan constructs a plan of PlanMeals freshly sampled meals.
func NewRandomPlan(catalog *food.Catalog, allowed food.AllergenSet, rng *rand.Rand) *Plan {
	genes := make([]food.Meal, PlanMeals)
	for i := range genes {
		genes[i] = catalog.SampleMeal(allowed, rng)
	}
	return &Plan{Genes: genes}
}

// NewPlanFromGenes constructs a plan directly from an existing gene
// sequence, copying it. This is the non-sampling creation path used by
// crossover and portion refinement.
func NewPlanFromGenes(genes []food.Meal) *Plan {
	copied := make([]food.Meal, len(genes))
	copy(copied, genes)
	return &Plan{Genes: copied}
}

// MealAt returns the meal for the given zero-based day and meal index.
func (p *Plan) MealAt(day, meal int) food.Meal {
	return p.Genes[day*MealsPerDay+meal]
}

// Totals sums the portion-scaled nutrition over every meal.
func (p *Plan) Totals() food.Nutrition {
	var totals food.Nutrition
	for _, meal := range p.Genes {
		n := meal.Nutrition()
		totals.Calories += n.Calories
		totals.Protein += n.Protein
		totals.Fat += n.Fat
		totals.Sodium += n.Sodium
	}
	return totals
}

// DistinctFoods counts the distinct food names referenced anywhere in the
// plan. Names are unique per catalog entry, so this counts catalog items
// actually used.
func (p *Plan) DistinctFoods() int {
	seen := make(map[string]struct{}, len(p.Genes)*int(food.NumCategories))
	for _, meal := range p.Genes {
		for _, slot := range meal {
			seen[slot.Food.Name] = struct{}{}
		}
	}
	return len(seen)
}

// Evaluate computes the plan's fitness against the goals: the negated sum
// of normalized absolute nutrient deviations plus a small diversity bonus.
// Higher is better. The result is stored on the plan and returned. Pure
// given unchanged genes, so plans may be evaluated concurrently.
func (p *Plan) Evaluate(goals Goals) float64 {
	totals := p.Totals()

	score := 0.0
	score -= math.Abs(goals.Calories-totals.Calories) / goals.Calories
	score -= math.Abs(goals.Protein-totals.Protein) / goals.Protein
	score -= math.Abs(goals.Fat-totals.Fat) / goals.Fat
	score -= math.Abs(goals.Sodium-totals.Sodium) / goals.Sodium

	score += diversityWeight * float64(p.DistinctFoods())

	p.Fitness = score
	return score
}

// Mutate replaces each meal slot, independently with probability rate, by
// a fresh sample. In place; fitness is left stale on purpose.
func (p *Plan) Mutate(catalog *food.Catalog, allowed food.AllergenSet, rng *rand.Rand, rate float64) {
	for i := range p.Genes {
		if rng.Float64() < rate {
			p.Genes[i] = catalog.SampleMeal(allowed, rng)
		}
	}
}

// Crossover builds a child whose gene at every slot is taken, uniformly at
// random, from either parent's corresponding slot. The child owns a fresh
// gene sequence and carries no fitness until evaluated.
func (p *Plan) Crossover(other *Plan, rng *rand.Rand) *Plan {
	genes := make([]food.Meal, len(p.Genes))
	for i := range genes {
		if rng.Intn(2) == 0 {
			genes[i] = p.Genes[i]
		} else {
			genes[i] = other.Genes[i]
		}
	}
	return &Plan{Genes: genes}
}
