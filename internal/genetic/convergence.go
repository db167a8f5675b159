package genetic

import "math"

// stagnationEpsilon is the best-fitness delta below which a generation
// counts as stagnant.
const stagnationEpsilon = 1e-3

// StagnationTracker detects fitness stagnation: once the best fitness has
// moved by less than stagnationEpsilon for patience consecutive
// generations, the search is considered converged.
type StagnationTracker struct {
	patience   int
	lastBest   float64
	staleCount int
	primed     bool
}

// NewStagnationTracker creates a tracker with the given patience.
func NewStagnationTracker(patience int) *StagnationTracker {
	return &StagnationTracker{patience: patience}
}

// Update records the best fitness of a generation and returns true when
// the patience budget is exhausted.
func (s *StagnationTracker) Update(best float64) bool {
	if !s.primed {
		s.lastBest = best
		s.primed = true
		return false
	}

	if math.Abs(best-s.lastBest) < stagnationEpsilon {
		s.staleCount++
	} else {
		s.staleCount = 0
	}
	s.lastBest = best

	return s.staleCount >= s.patience
}

// StaleCount returns the current run of stagnant generations.
func (s *StagnationTracker) StaleCount() int {
	return s.staleCount
}
