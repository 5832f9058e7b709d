// Package planner implements the three interchangeable search strategies
// the driver iterates: a flat weighted-roulette planner, a dominance-pruned
// tree planner, and a UCB1 bandit tree planner. All three are single-
// threaded; concurrency across independent map solves belongs to the
// driver/cmd layer, never inside a planner's Iterate.
package planner

import "github.com/eklitzke-lifter/lifter/internal/world"

// Planner is the shared interface the driver iterates against. Iterate
// performs one unit of search work and reports whether it made progress
// (false signals the search is exhausted and further calls are wasted).
// Best returns the best-scoring world found so far (which may still be
// running), its score, and whether any candidate has been found at all.
type Planner interface {
	Iterate() bool
	Best() (world.World, int, bool)
}
