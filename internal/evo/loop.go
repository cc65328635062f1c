package evo

import (
	"context"
	"math/rand"
	"sort"
	"sync"

	"keyopt/internal/effort"
	"keyopt/internal/model"
)

// RunResult is the outcome of one optimize_keyboard_layout call, per
// spec.md §6.
type RunResult struct {
	BestLayout      model.Layout
	BestEffort      float64
	HistoryBest     []float64
	HistoryMean     []float64
	Diagnostics     []model.GenerationDiagnostics
	Generations     int
	PopulationSize  int
	FinalPopulation []ScoredLayout
}

// LoopConfig configures one evolutionary-loop run. Evaluator, Weights, and
// Params are required; the operator fields default to the spec's named
// defaults when left nil.
type LoopConfig struct {
	Evaluator        *effort.Evaluator
	Weights          model.Weights
	Postprocessor    EffortPostprocessor
	Selector         Selector
	Crossover        Crossover
	MutationSchedule MutationSchedule
	Params           model.GAParams
}

// Loop is the evolutionary permutation search of spec.md §4.9.
type Loop struct {
	cfg LoopConfig
}

// NewLoop validates the configuration and returns a ready-to-run Loop.
// Invalid inputs are reported synchronously as *ConfigurationError, per
// spec.md §7.
func NewLoop(cfg LoopConfig) (*Loop, error) {
	if cfg.Evaluator == nil {
		return nil, configError("evaluator", "is required")
	}
	if cfg.Params.PopulationSize < 1 {
		return nil, configError("population_size", "must be >= 1, got %d", cfg.Params.PopulationSize)
	}
	if cfg.Params.Generations < 0 {
		return nil, configError("generations", "must be >= 0, got %d", cfg.Params.Generations)
	}
	if cfg.Params.EliteCount < 0 || cfg.Params.EliteCount > cfg.Params.PopulationSize {
		return nil, configError("elite_count", "must be in [0, population_size], got %d", cfg.Params.EliteCount)
	}
	if cfg.Params.TournamentSize < 1 {
		return nil, configError("tournament_size", "must be >= 1, got %d", cfg.Params.TournamentSize)
	}
	for _, rate := range []struct {
		name  string
		value float64
	}{
		{"mutation_rate", cfg.Params.MutationRate},
		{"crossover_rate", cfg.Params.CrossoverRate},
	} {
		if rate.value < 0 || rate.value > 1 {
			return nil, configError(rate.name, "must be in [0, 1], got %v", rate.value)
		}
	}

	if cfg.Postprocessor == nil {
		cfg.Postprocessor = NoopEffortPostprocessor{}
	}
	if cfg.Selector == nil {
		cfg.Selector = TournamentSelector{TournamentSize: cfg.Params.TournamentSize}
	}
	if cfg.Crossover == nil {
		cfg.Crossover = OrderCrossover{}
	}
	if cfg.MutationSchedule == nil {
		cfg.MutationSchedule = DefaultMutationSchedule{}
	}

	return &Loop{cfg: cfg}, nil
}

// Run executes the generation loop starting from the initial layout,
// per spec.md §4.9's initialization, generation-step, and termination
// procedure. Cancellation via ctx is honored every 10 generations; the
// current generation's evaluations already in flight are allowed to
// complete first.
func (l *Loop) Run(ctx context.Context, initial model.Layout) (RunResult, error) {
	p := l.cfg.Params
	seedRand := childRand(p.Seed, -1, 0)
	// Evaluations within a generation are not interrupted; ctx is only
	// consulted at the generation-boundary check below.
	work := context.WithoutCancel(ctx)

	population := make([]model.Layout, p.PopulationSize)
	population[0] = initial.Clone()
	for i := 1; i < p.PopulationSize; i++ {
		population[i] = shuffled(seedRand, initial)
	}

	scored, err := l.evaluatePopulation(work, population)
	if err != nil {
		return RunResult{}, err
	}
	scored = l.cfg.Postprocessor.Process(scored)
	sortAscending(scored)

	best := scored[0]
	historyBest := make([]float64, 0, p.Generations)
	historyMean := make([]float64, 0, p.Generations)
	diagnostics := make([]model.GenerationDiagnostics, 0, p.Generations)

	for gen := 0; gen < p.Generations; gen++ {
		if gen%10 == 0 {
			if err := ctx.Err(); err != nil {
				return RunResult{
					BestLayout:      best.Layout,
					BestEffort:      best.Effort,
					HistoryBest:     historyBest,
					HistoryMean:     historyMean,
					Diagnostics:     diagnostics,
					Generations:     gen,
					PopulationSize:  p.PopulationSize,
					FinalPopulation: scored,
				}, nil
			}
		}

		next, err := l.nextGeneration(work, scored, gen)
		if err != nil {
			return RunResult{}, err
		}

		scored, err = l.evaluatePopulation(work, next)
		if err != nil {
			return RunResult{}, err
		}
		scored = l.cfg.Postprocessor.Process(scored)
		sortAscending(scored)

		if scored[0].Effort < best.Effort {
			best = scored[0]
		}
		historyBest = append(historyBest, best.Effort)
		historyMean = append(historyMean, meanEffort(scored))
		diagnostics = append(diagnostics, model.GenerationDiagnostics{
			Generation:          gen + 1,
			BestFitness:         best.Effort,
			MeanFitness:         meanEffort(scored),
			MinFitness:          scored[0].Effort,
			PopulationDiversity: PopulationDiversity(scored),
		})
	}

	return RunResult{
		BestLayout:      best.Layout,
		BestEffort:      best.Effort,
		HistoryBest:     historyBest,
		HistoryMean:     historyMean,
		Diagnostics:     diagnostics,
		Generations:     p.Generations,
		PopulationSize:  p.PopulationSize,
		FinalPopulation: scored,
	}, nil
}

// nextGeneration produces the next population: the top elite_count
// individuals survive unconditionally, and every remaining slot is filled
// by tournament-selecting two parents, optionally crossing them, and
// applying the mutation schedule. Each child slot draws from its own
// deterministic rand stream (see rand_streams.go) so the result does not
// depend on worker-pool scheduling.
func (l *Loop) nextGeneration(ctx context.Context, ranked []ScoredLayout, generation int) ([]model.Layout, error) {
	p := l.cfg.Params
	next := make([]model.Layout, p.PopulationSize)
	for i := 0; i < p.EliteCount; i++ {
		next[i] = ranked[i].Layout.Clone()
	}

	type job struct{ slot int }
	type result struct {
		slot   int
		layout model.Layout
		err    error
	}

	jobs := make(chan job)
	results := make(chan result, p.PopulationSize)
	workers := p.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > p.PopulationSize-p.EliteCount && p.PopulationSize-p.EliteCount > 0 {
		workers = p.PopulationSize - p.EliteCount
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				if err := ctx.Err(); err != nil {
					results <- result{slot: j.slot, err: err}
					continue
				}
				rng := childRand(p.Seed, generation, j.slot)
				child, err := l.makeChild(rng, ranked)
				results <- result{slot: j.slot, layout: child, err: err}
			}
		}()
	}

	for slot := p.EliteCount; slot < p.PopulationSize; slot++ {
		jobs <- job{slot: slot}
	}
	close(jobs)
	wg.Wait()
	close(results)

	for res := range results {
		if res.err != nil {
			return nil, res.err
		}
		next[res.slot] = res.layout
	}
	return next, nil
}

func (l *Loop) makeChild(rng *rand.Rand, ranked []ScoredLayout) (model.Layout, error) {
	parent1, err := l.cfg.Selector.PickParent(rng, ranked)
	if err != nil {
		return nil, err
	}

	child := parent1
	if rng.Float64() < l.cfg.Params.CrossoverRate {
		parent2, err := l.cfg.Selector.PickParent(rng, ranked)
		if err != nil {
			return nil, err
		}
		child, err = l.cfg.Crossover.Cross(rng, parent1, parent2)
		if err != nil {
			return nil, err
		}
	} else {
		child = parent1.Clone()
	}

	return l.cfg.MutationSchedule.Apply(rng, child, l.cfg.Params.MutationRate)
}

func (l *Loop) evaluatePopulation(ctx context.Context, population []model.Layout) ([]ScoredLayout, error) {
	type job struct {
		idx    int
		layout model.Layout
	}
	type result struct {
		idx    int
		scored ScoredLayout
		err    error
	}

	jobs := make(chan job)
	results := make(chan result, len(population))

	workers := l.cfg.Params.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(population) {
		workers = len(population)
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				if err := ctx.Err(); err != nil {
					results <- result{idx: j.idx, err: err}
					continue
				}
				effortScore, err := l.cfg.Evaluator.Evaluate(j.layout, l.cfg.Weights)
				if err != nil {
					results <- result{idx: j.idx, err: err}
					continue
				}
				results <- result{idx: j.idx, scored: ScoredLayout{Layout: j.layout, Effort: effortScore}}
			}
		}()
	}

	for i, layout := range population {
		jobs <- job{idx: i, layout: layout}
	}
	close(jobs)
	wg.Wait()
	close(results)

	scored := make([]ScoredLayout, len(population))
	for res := range results {
		if res.err != nil {
			return nil, res.err
		}
		scored[res.idx] = res.scored
	}
	return scored, nil
}

func sortAscending(scored []ScoredLayout) {
	sort.Slice(scored, func(i, j int) bool { return scored[i].Effort < scored[j].Effort })
}

func meanEffort(scored []ScoredLayout) float64 {
	if len(scored) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scored {
		sum += s.Effort
	}
	return sum / float64(len(scored))
}

func shuffled(rng *rand.Rand, layout model.Layout) model.Layout {
	out := layout.Clone()
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
