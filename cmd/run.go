package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/dietplanfit/internal/food"
	"github.com/cwbudde/dietplanfit/internal/genetic"
	"github.com/cwbudde/dietplanfit/internal/render"
	"github.com/cwbudde/dietplanfit/internal/runner"
)

var (
	catalogSize int
	calories    float64
	protein     float64
	fat         float64
	sodium      float64
	allergens   string
	popSize     int
	generations int
	elitism     float64
	patience    int
	mutation    float64
	parallel    int
	seed        int64
	plotPath    string
	refineIters int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the weekly diet plan optimization",
	Long:  `Builds a random food catalog, evolves a 21-meal plan toward the nutrient goals and prints the winning plan.`,
	RunE:  runOptimization,
}

func init() {
	runCmd.Flags().IntVar(&catalogSize, "size", 100, "Food catalog size (items across all categories)")
	runCmd.Flags().Float64Var(&calories, "calories", 14000, "Calorie target for the full week")
	runCmd.Flags().Float64Var(&protein, "protein", 500, "Protein target for the full week")
	runCmd.Flags().Float64Var(&fat, "fat", 300, "Fat target for the full week")
	runCmd.Flags().Float64Var(&sodium, "sodium", 7000, "Sodium target for the full week")
	runCmd.Flags().StringVar(&allergens, "allergens", "nuts,soy", "Permitted allergens, comma-separated (nuts, gluten, soy, dairy)")
	runCmd.Flags().IntVar(&popSize, "pop", 100, "Population size")
	runCmd.Flags().IntVar(&generations, "generations", 150, "Max generations")
	runCmd.Flags().Float64Var(&elitism, "elitism", 0.1, "Elitism fraction in [0,1)")
	runCmd.Flags().IntVar(&patience, "patience", 15, "Stagnant generations tolerated before early stop")
	runCmd.Flags().Float64Var(&mutation, "mutation", 0.05, "Per-slot mutation rate")
	runCmd.Flags().IntVar(&parallel, "parallel", 1, "Concurrent fitness evaluations")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Random seed")
	runCmd.Flags().StringVar(&plotPath, "plot", "", "Write the fitness history chart to this PNG path")
	runCmd.Flags().IntVar(&refineIters, "refine-iters", 0, "Portion refinement iterations (0 = off)")

	rootCmd.AddCommand(runCmd)
}

func runOptimization(cmd *cobra.Command, args []string) error {
	allowed, err := food.ParseAllergenSet(allergens)
	if err != nil {
		return fmt.Errorf("invalid --allergens: %w", err)
	}

	geneticCfg := genetic.DefaultConfig()
	geneticCfg.PopulationSize = popSize
	geneticCfg.Generations = generations
	geneticCfg.ElitismFraction = elitism
	geneticCfg.EarlyStopPatience = patience
	geneticCfg.MutationRate = mutation
	geneticCfg.Parallelism = parallel

	cfg := runner.RunConfig{
		CatalogSize: catalogSize,
		Seed:        seed,
		Goals:       genetic.Goals{Calories: calories, Protein: protein, Fat: fat, Sodium: sodium},
		Allowed:     allowed,
		Genetic:     geneticCfg,
		RefineIters: refineIters,
	}

	manager := runner.NewManager()

	start := time.Now()
	run, err := manager.Start(cfg)
	if err != nil {
		return err
	}

	slog.Info("Optimization started",
		"run_id", run.ID,
		"allowed_allergens", allowed.String(),
		"population", popSize,
		"generations", generations,
	)

	// Follow progress while the run executes in the background.
	events := manager.Subscribe(run.ID)
	defer manager.Unsubscribe(run.ID, events)

	for {
		var finished bool
		select {
		case ev := <-events:
			if ev.State == runner.StateRunning && ev.Generation%10 == 0 {
				slog.Info("Progress",
					"generation", ev.Generation,
					"best_fitness", ev.Best,
					"avg_fitness", ev.Avg,
					"stale", ev.Stale,
				)
			}
		case <-run.Done():
			finished = true
		}
		if finished {
			break
		}
	}

	if run.State == runner.StateFailed {
		return fmt.Errorf("optimization failed: %s", run.Err)
	}

	result := run.Result
	elapsed := time.Since(start)

	slog.Info("Optimization complete",
		"elapsed", elapsed,
		"generations", result.Generations,
		"status", result.Status,
		"best_fitness", result.Best.Fitness,
		"distinct_foods", result.Best.DistinctFoods(),
	)

	fmt.Println(render.PlanText(result.Best, cfg.Goals))

	if plotPath != "" {
		if err := render.WriteHistoryPNG(plotPath, result.BestHistory, result.AvgHistory, 640, 320); err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%d generations)\n", plotPath, result.Generations)
	}

	return nil
}
