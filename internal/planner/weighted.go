package planner

import (
	"math/rand"

	"github.com/eklitzke-lifter/lifter/internal/heuristic"
	"github.com/eklitzke-lifter/lifter/internal/plan"
	"github.com/eklitzke-lifter/lifter/internal/world"
)

// weightedEntry is one pending choice in the pool: the world it was
// generated from has already been executed, so result is the world it
// produces and steps is every intermediate world the execution passed
// through (result is always steps' last element). weight is its roulette
// weight, computed once up front from the choice's actual outcome.
type weightedEntry struct {
	result world.World
	steps  []world.World
	weight float64
}

// Weighted is a roulette-wheel pool search: rather than committing to one
// line and discarding every road not taken, it keeps every still-live
// candidate plan in a pool and spins a weighted random wheel over the whole
// pool each iteration. Popping a candidate branches again from every
// running world its execution passed through, so a single promising but
// imperfect choice doesn't crowd out the alternatives the way a purely
// greedy walk would. Grounded on original_source/bot.py's Planner class
// (add_plan/pop_plan) and run_bot's main loop.
type Weighted struct {
	rng  *rand.Rand
	pool []weightedEntry

	best    world.World
	bestSet bool
}

// NewWeighted seeds a Weighted planner at w. seed controls the roulette
// wheel's randomness; callers that want reproducible runs should pass a
// fixed seed (the CLI exposes this as --seed).
func NewWeighted(w world.World, seed int64) *Weighted {
	p := &Weighted{
		rng:     rand.New(rand.NewSource(seed)),
		best:    w,
		bestSet: true,
	}
	p.addChoicesFrom(w)
	return p
}

// addChoicesFrom generates every choice available from w, executes each one
// immediately, and adds the outcome to the pool. Executing up front (rather
// than at pop time) is what lets weight reflect the choice's actual
// resulting score instead of a speculative pre-execution estimate. An Abort
// choice is weighted the same way, from the score it actually ends with,
// and can win a spin like any other entry with a positive weight.
func (p *Weighted) addChoicesFrom(w world.World) {
	for _, c := range heuristic.Generate(w) {
		result, steps := plan.Plan{Start: w, Actions: c.Actions}.Execute()
		weight := heuristic.Goodness(result.Score(), c.ExpectedCost, result.NumMoves)
		if weight < 0 {
			weight = 0
		}
		p.pool = append(p.pool, weightedEntry{result: result, steps: steps, weight: weight})
		p.recordBest(result)
	}
}

// Iterate spins the wheel once, committing to one pooled candidate, and
// replenishes the pool with its successors: for every world still Running
// among the worlds the winning choice passed through, the choices available
// from there are generated and added back to the pool. It returns false
// once the pool runs dry — nothing left anywhere that can still progress.
func (p *Weighted) Iterate() bool {
	if len(p.pool) == 0 {
		return false
	}

	idx := p.pickIndex()
	entry := p.pool[idx]
	p.pool = append(p.pool[:idx], p.pool[idx+1:]...)

	for _, s := range entry.steps {
		if s.IsRunning() {
			p.addChoicesFrom(s)
		}
	}
	return len(p.pool) > 0
}

// pickIndex spins the weighted wheel over the current pool, falling back to
// a uniform random pick if every candidate weighs zero.
func (p *Weighted) pickIndex() int {
	total := 0.0
	for _, e := range p.pool {
		total += e.weight
	}
	if total <= 0 {
		return p.rng.Intn(len(p.pool))
	}
	r := p.rng.Float64() * total
	acc := 0.0
	for i, e := range p.pool {
		acc += e.weight
		if r <= acc {
			return i
		}
	}
	return len(p.pool) - 1
}

func (p *Weighted) recordBest(w world.World) {
	if !p.bestSet || w.Score() > p.best.Score() {
		p.best = w
		p.bestSet = true
	}
}

// Best returns the best-scoring world reached so far.
func (p *Weighted) Best() (world.World, int, bool) {
	return p.best, p.best.Score(), p.bestSet
}
