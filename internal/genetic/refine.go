package genetic

import (
	"log/slog"

	"github.com/cwbudde/dietplanfit/internal/food"
	"github.com/cwbudde/dietplanfit/internal/opt"
)

// Portion bounds shared with the meal sampler.
const (
	portionLower = 0.5
	portionUpper = 2.0
)

// RefinePortions keeps a plan's chosen foods fixed and tunes the portion
// multipliers continuously within their sampling bounds, maximizing the
// same fitness the generational search used. The input plan is left
// untouched; the returned plan is evaluated.
func RefinePortions(p *Plan, goals Goals, optimizer opt.Optimizer) *Plan {
	dim := len(p.Genes) * int(food.NumCategories)
	lower := make([]float64, dim)
	upper := make([]float64, dim)
	for i := range lower {
		lower[i] = portionLower
		upper[i] = portionUpper
	}

	// The optimizer minimizes, fitness is maximized.
	eval := func(portions []float64) float64 {
		candidate := p.withPortions(portions)
		return -candidate.Evaluate(goals)
	}

	best, cost := optimizer.Run(eval, lower, upper, dim)

	refined := p.withPortions(best)
	refined.Evaluate(goals)

	slog.Info("Portion refinement complete",
		"fitness_before", p.Fitness,
		"fitness_after", -cost,
	)
	return refined
}

// withPortions returns a copy of the plan with portions taken from a flat
// vector laid out slot-major: plan slot index * NumCategories + category.
func (p *Plan) withPortions(portions []float64) *Plan {
	out := NewPlanFromGenes(p.Genes)
	for i := range out.Genes {
		for c := range out.Genes[i] {
			out.Genes[i][c].Portion = portions[i*int(food.NumCategories)+c]
		}
	}
	return out
}
