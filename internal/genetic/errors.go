package genetic

import "fmt"

// InvalidGoalError reports a nutrient target that is zero or negative.
// Such a goal would make the normalized deviation term undefined, so it is
// rejected before any population work begins.
type InvalidGoalError struct {
	Nutrient string
	Value    float64
}

func (e *InvalidGoalError) Error() string {
	return fmt.Sprintf("goal %s must be positive, got %g", e.Nutrient, e.Value)
}

// InvalidConfigError reports an optimizer parameter that would make the
// generation loop impossible or meaningless.
type InvalidConfigError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid optimizer config: %s %s", e.Field, e.Reason)
}
