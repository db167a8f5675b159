package genetic

import (
	"log/slog"
	"math/rand"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"github.com/cwbudde/dietplanfit/internal/food"
)

// Config holds the generational search parameters.
type Config struct {
	// PopulationSize is the number of plans kept per generation.
	PopulationSize int
	// Generations is the maximum number of generations to run.
	Generations int
	// ElitismFraction of the population is carried forward unchanged.
	// Must be in [0, 1).
	ElitismFraction float64
	// EarlyStopPatience is the number of consecutive stagnant generations
	// tolerated before stopping early.
	EarlyStopPatience int
	// MatingPoolSize is the top slice of the sorted population parents are
	// drawn from. Capped at the population size.
	MatingPoolSize int
	// MutationRate is the per-slot probability of resampling a meal.
	MutationRate float64
	// Parallelism bounds concurrent fitness evaluations. Breeding stays
	// sequential on the single random source, so results are reproducible
	// for any value. Values below 2 mean sequential evaluation.
	Parallelism int
	// OnGeneration, when set, is called after each generation is sorted.
	OnGeneration func(GenerationStats)
}

// DefaultConfig returns the canonical search parameters.
func DefaultConfig() Config {
	return Config{
		PopulationSize:    100,
		Generations:       100,
		ElitismFraction:   0.1,
		EarlyStopPatience: 10,
		MatingPoolSize:    50,
		MutationRate:      0.05,
		Parallelism:       1,
	}
}

// Validate rejects parameters that would make the loop impossible.
func (c Config) Validate() error {
	if c.PopulationSize < 2 {
		return &InvalidConfigError{Field: "PopulationSize", Reason: "must be at least 2 to sample distinct parents"}
	}
	if c.Generations <= 0 {
		return &InvalidConfigError{Field: "Generations", Reason: "must be positive"}
	}
	if c.ElitismFraction < 0 || c.ElitismFraction >= 1 {
		return &InvalidConfigError{Field: "ElitismFraction", Reason: "must be in [0, 1)"}
	}
	if c.MatingPoolSize < 2 {
		return &InvalidConfigError{Field: "MatingPoolSize", Reason: "must be at least 2"}
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return &InvalidConfigError{Field: "MutationRate", Reason: "must be in [0, 1]"}
	}
	return nil
}

// GenerationStats is a per-generation progress snapshot.
type GenerationStats struct {
	Generation int
	Best       float64
	Avg        float64
	Stale      int
}

// Status describes how a run terminated.
type Status string

const (
	// StatusConverged means the stagnation patience was exhausted.
	StatusConverged Status = "converged"
	// StatusExhausted means the generation budget was reached.
	StatusExhausted Status = "exhausted"
)

// Result is the terminal output of a run. BestHistory and AvgHistory have
// one entry per generation actually run, plus the initial generation 0.
type Result struct {
	Best        *Plan
	BestHistory []float64
	AvgHistory  []float64
	Generations int
	Status      Status
}

// Optimizer drives the generational search over a fixed catalog, goal
// vector and allowed-allergen set.
type Optimizer struct {
	catalog *food.Catalog
	goals   Goals
	allowed food.AllergenSet
	cfg     Config
	rng     *rand.Rand
}

// New validates all inputs up front and builds an optimizer. A malformed
// goal vector or config is reported here; the loop never partially runs
// and then fails.
func New(catalog *food.Catalog, goals Goals, allowed food.AllergenSet, cfg Config, rng *rand.Rand) (*Optimizer, error) {
	if err := goals.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Optimizer{
		catalog: catalog,
		goals:   goals,
		allowed: allowed,
		cfg:     cfg,
		rng:     rng,
	}, nil
}

// Optimize validates, runs and returns in one call: the contract the
// presentation layer consumes.
func Optimize(catalog *food.Catalog, goals Goals, allowed food.AllergenSet, cfg Config, seed int64) (*Result, error) {
	opt, err := New(catalog, goals, allowed, cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}
	return opt.Run(), nil
}

// Run executes the search to termination and returns the best plan plus
// both fitness histories.
func (o *Optimizer) Run() *Result {
	popSize := o.cfg.PopulationSize
	eliteCount := int(o.cfg.ElitismFraction * float64(popSize))
	matingPool := o.cfg.MatingPoolSize
	if matingPool > popSize {
		matingPool = popSize
	}

	slog.Debug("Initializing population", "size", popSize, "elites", eliteCount, "mating_pool", matingPool)

	population := make([]*Plan, popSize)
	for i := range population {
		population[i] = NewRandomPlan(o.catalog, o.allowed, o.rng)
	}
	o.evaluateAll(population)
	sortByFitness(population)

	bestHistory := []float64{population[0].Fitness}
	avgHistory := []float64{meanFitness(population)}

	tracker := NewStagnationTracker(o.cfg.EarlyStopPatience)
	tracker.Update(population[0].Fitness)

	status := StatusExhausted
	for gen := 1; gen <= o.cfg.Generations; gen++ {
		next := make([]*Plan, 0, popSize)
		next = append(next, population[:eliteCount]...)

		// Elites keep genes and fitness untouched; only freshly bred
		// children are ever mutated.
		children := make([]*Plan, 0, popSize-eliteCount)
		for len(next)+len(children) < popSize {
			a, b := o.pickParents(population, matingPool)
			child := a.Crossover(b, o.rng)
			child.Mutate(o.catalog, o.allowed, o.rng, o.cfg.MutationRate)
			children = append(children, child)
		}
		o.evaluateAll(children)

		next = append(next, children...)
		sortByFitness(next)
		population = next

		bestHistory = append(bestHistory, population[0].Fitness)
		avgHistory = append(avgHistory, meanFitness(population))

		converged := tracker.Update(population[0].Fitness)

		if o.cfg.OnGeneration != nil {
			o.cfg.OnGeneration(GenerationStats{
				Generation: gen,
				Best:       population[0].Fitness,
				Avg:        avgHistory[len(avgHistory)-1],
				Stale:      tracker.StaleCount(),
			})
		}

		if converged {
			slog.Info("Early stop on stagnation",
				"generation", gen,
				"stale_count", tracker.StaleCount(),
				"best_fitness", population[0].Fitness,
			)
			status = StatusConverged
			break
		}
	}

	return &Result{
		Best:        population[0],
		BestHistory: bestHistory,
		AvgHistory:  avgHistory,
		Generations: len(bestHistory) - 1,
		Status:      status,
	}
}

// pickParents samples two distinct plans uniformly from the top window of
// the sorted population.
func (o *Optimizer) pickParents(population []*Plan, window int) (*Plan, *Plan) {
	i := o.rng.Intn(window)
	j := o.rng.Intn(window - 1)
	if j >= i {
		j++
	}
	return population[i], population[j]
}

// evaluateAll computes fitness for every plan. Evaluation is pure per
// plan, so with Parallelism > 1 it runs on a bounded goroutine pool.
func (o *Optimizer) evaluateAll(plans []*Plan) {
	if o.cfg.Parallelism < 2 {
		for _, p := range plans {
			p.Evaluate(o.goals)
		}
		return
	}

	workers := pool.New().WithMaxGoroutines(o.cfg.Parallelism)
	for _, p := range plans {
		p := p
		workers.Go(func() {
			p.Evaluate(o.goals)
		})
	}
	workers.Wait()
}

func sortByFitness(plans []*Plan) {
	sort.Slice(plans, func(i, j int) bool {
		return plans[i].Fitness > plans[j].Fitness
	})
}

func meanFitness(plans []*Plan) float64 {
	sum := 0.0
	for _, p := range plans {
		sum += p.Fitness
	}
	return sum / float64(len(plans))
}
