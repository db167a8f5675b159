package genetic

import "testing"

func TestStagnationTrackerBasic(t *testing.T) {
	tracker := NewStagnationTracker(3)

	// First value only primes the tracker.
	if tracker.Update(-5.0) {
		t.Error("Should not trigger on first update")
	}

	// Real movement resets nothing to count.
	if tracker.Update(-4.0) {
		t.Error("Should not trigger after improvement")
	}
	if tracker.StaleCount() != 0 {
		t.Errorf("Expected stale count 0, got %d", tracker.StaleCount())
	}

	// Three consecutive sub-epsilon moves exhaust patience 3.
	if tracker.Update(-3.9995) {
		t.Error("Should not trigger yet (1/3)")
	}
	if tracker.StaleCount() != 1 {
		t.Errorf("Expected stale count 1, got %d", tracker.StaleCount())
	}
	if tracker.Update(-3.9991) {
		t.Error("Should not trigger yet (2/3)")
	}
	if !tracker.Update(-3.999) {
		t.Error("Should trigger after patience exhausted (3/3)")
	}
}

func TestStagnationTrackerResetsOnMovement(t *testing.T) {
	tracker := NewStagnationTracker(2)

	tracker.Update(-10.0)
	tracker.Update(-10.0) // stale 1
	if tracker.StaleCount() != 1 {
		t.Fatalf("Expected stale count 1, got %d", tracker.StaleCount())
	}

	// A move of at least epsilon resets the counter.
	if tracker.Update(-9.9) {
		t.Error("Should not trigger after a real move")
	}
	if tracker.StaleCount() != 0 {
		t.Errorf("Expected stale count reset to 0, got %d", tracker.StaleCount())
	}

	tracker.Update(-9.9)
	if !tracker.Update(-9.9) {
		t.Error("Should trigger after two stale generations")
	}
}

func TestStagnationTrackerEpsilonBoundary(t *testing.T) {
	tracker := NewStagnationTracker(1)

	tracker.Update(0.0)
	// Exactly epsilon is NOT stagnation (strict less-than).
	if tracker.Update(stagnationEpsilon) {
		t.Error("Delta equal to epsilon must not count as stagnant")
	}
	if tracker.StaleCount() != 0 {
		t.Errorf("Expected stale count 0, got %d", tracker.StaleCount())
	}

	// Just under epsilon is.
	if !tracker.Update(stagnationEpsilon + stagnationEpsilon/2) {
		t.Error("Delta below epsilon must count as stagnant")
	}
}
