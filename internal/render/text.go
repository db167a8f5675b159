package render

import (
	"fmt"
	"strings"

	"github.com/cwbudde/dietplanfit/internal/food"
	"github.com/cwbudde/dietplanfit/internal/genetic"
)

// PlanText renders a plan as the day/meal/category table, followed by the
// plan's nutrient totals next to the goals.
func PlanText(plan *genetic.Plan, goals genetic.Goals) string {
	var b strings.Builder

	for day := 0; day < genetic.PlanDays; day++ {
		fmt.Fprintf(&b, "\nDAY %d\n", day+1)
		b.WriteString(strings.Repeat("-", 30))
		b.WriteString("\n")
		for m := 0; m < genetic.MealsPerDay; m++ {
			fmt.Fprintf(&b, "  Meal %d:\n", m+1)
			meal := plan.MealAt(day, m)
			for _, cat := range food.Categories() {
				slot := meal.Slot(cat)
				fmt.Fprintf(&b, "    %-12s: %s x%.1f\n", title(cat.String()), slot.Food.Name, slot.Portion)
			}
		}
	}

	totals := plan.Totals()
	b.WriteString("\nTOTALS (vs goals)\n")
	b.WriteString(strings.Repeat("-", 30))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %-12s: %8.1f / %8.1f\n", "Calories", totals.Calories, goals.Calories)
	fmt.Fprintf(&b, "  %-12s: %8.1f / %8.1f\n", "Protein", totals.Protein, goals.Protein)
	fmt.Fprintf(&b, "  %-12s: %8.1f / %8.1f\n", "Fat", totals.Fat, goals.Fat)
	fmt.Fprintf(&b, "  %-12s: %8.1f / %8.1f\n", "Sodium", totals.Sodium, goals.Sodium)
	fmt.Fprintf(&b, "  %-12s: %d\n", "Foods used", plan.DistinctFoods())

	return b.String()
}

// title uppercases the first byte; category names are plain ASCII.
func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
