package runner

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/cwbudde/dietplanfit/internal/food"
	"github.com/cwbudde/dietplanfit/internal/genetic"
	"github.com/cwbudde/dietplanfit/internal/opt"
)

// execute runs one optimization to a terminal state in the background.
func (m *Manager) execute(runID string) {
	run, exists := m.Get(runID)
	if !exists {
		return
	}
	defer close(run.done)

	m.Update(runID, func(r *Run) {
		r.State = StateRunning
	})

	slog.Info("Starting run",
		"run_id", runID,
		"catalog_size", run.Config.CatalogSize,
		"population", run.Config.Genetic.PopulationSize,
		"generations", run.Config.Genetic.Generations,
		"seed", run.Config.Seed,
	)

	rng := rand.New(rand.NewSource(run.Config.Seed))
	catalog, err := food.BuildCatalog(run.Config.CatalogSize, rng)
	if err != nil {
		m.markFailed(runID, fmt.Errorf("failed to build catalog: %w", err))
		return
	}

	cfg := run.Config.Genetic
	cfg.OnGeneration = func(s genetic.GenerationStats) {
		m.Update(runID, func(r *Run) {
			r.Generation = s.Generation
			r.BestSoFar = s.Best
		})
		m.broadcaster.Broadcast(ProgressEvent{
			RunID:      runID,
			State:      StateRunning,
			Generation: s.Generation,
			Best:       s.Best,
			Avg:        s.Avg,
			Stale:      s.Stale,
			Timestamp:  time.Now(),
		})
	}

	optimizer, err := genetic.New(catalog, run.Config.Goals, run.Config.Allowed, cfg, rng)
	if err != nil {
		m.markFailed(runID, err)
		return
	}

	start := time.Now()
	result := optimizer.Run()

	if run.Config.RefineIters > 0 {
		refiner := opt.NewMayfly(run.Config.RefineIters, 20, run.Config.Seed)
		result.Best = genetic.RefinePortions(result.Best, run.Config.Goals, refiner)
	}

	endTime := time.Now()
	m.Update(runID, func(r *Run) {
		r.State = StateCompleted
		r.Result = result
		r.Generation = result.Generations
		r.BestSoFar = result.Best.Fitness
		r.EndTime = &endTime
	})

	slog.Info("Run completed",
		"run_id", runID,
		"elapsed", endTime.Sub(start),
		"generations", result.Generations,
		"status", result.Status,
		"best_fitness", result.Best.Fitness,
	)

	m.broadcaster.Broadcast(ProgressEvent{
		RunID:      runID,
		State:      StateCompleted,
		Generation: result.Generations,
		Best:       result.Best.Fitness,
		Avg:        result.AvgHistory[len(result.AvgHistory)-1],
		Timestamp:  time.Now(),
	})
}

// markFailed moves a run to the failed state.
func (m *Manager) markFailed(runID string, err error) {
	endTime := time.Now()
	m.Update(runID, func(r *Run) {
		r.State = StateFailed
		r.Err = err.Error()
		r.EndTime = &endTime
	})
	slog.Error("Run failed", "run_id", runID, "error", err)

	m.broadcaster.Broadcast(ProgressEvent{
		RunID:     runID,
		State:     StateFailed,
		Timestamp: time.Now(),
	})
}
