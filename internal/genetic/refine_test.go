package genetic

import (
	"math/rand"
	"testing"

	"github.com/cwbudde/dietplanfit/internal/food"
)

// fixedOptimizer returns a constant portion vector, letting the refinement
// plumbing be checked without the external library's numerics.
type fixedOptimizer struct {
	value float64
	dim   int
}

func (f *fixedOptimizer) Run(eval func([]float64) float64, lower, upper []float64, dim int) ([]float64, float64) {
	f.dim = dim
	out := make([]float64, dim)
	for i := range out {
		out[i] = f.value
	}
	return out, eval(out)
}

func TestRefinePortionsAppliesResult(t *testing.T) {
	catalog := testCatalog(t, 50, 42)
	rng := rand.New(rand.NewSource(21))

	plan := NewRandomPlan(catalog, food.NewAllergenSet(), rng)
	plan.Evaluate(testGoals)

	stub := &fixedOptimizer{value: 1.25}
	refined := RefinePortions(plan, testGoals, stub)

	wantDim := PlanMeals * int(food.NumCategories)
	if stub.dim != wantDim {
		t.Errorf("Expected %d-dimensional search, got %d", wantDim, stub.dim)
	}

	for i := range refined.Genes {
		for _, cat := range food.Categories() {
			slot := refined.Genes[i].Slot(cat)
			if slot.Portion != 1.25 {
				t.Fatalf("Meal %d %s: portion %f, expected 1.25", i, cat, slot.Portion)
			}
			// Foods stay fixed, only portions move.
			if slot.Food != plan.Genes[i].Slot(cat).Food {
				t.Fatalf("Meal %d %s: food changed during refinement", i, cat)
			}
		}
	}

	if refined.Fitness == 0 {
		t.Error("Refined plan was not evaluated")
	}
}

func TestRefinePortionsLeavesInputUntouched(t *testing.T) {
	catalog := testCatalog(t, 50, 42)
	rng := rand.New(rand.NewSource(22))

	plan := NewRandomPlan(catalog, food.NewAllergenSet(), rng)
	fitnessBefore := plan.Evaluate(testGoals)
	genesBefore := append([]food.Meal(nil), plan.Genes...)

	RefinePortions(plan, testGoals, &fixedOptimizer{value: 0.5})

	if plan.Fitness != fitnessBefore {
		t.Errorf("Input plan fitness changed: %f -> %f", fitnessBefore, plan.Fitness)
	}
	for i := range plan.Genes {
		if plan.Genes[i] != genesBefore[i] {
			t.Fatalf("Input plan gene %d changed", i)
		}
	}
}
