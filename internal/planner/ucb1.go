package planner

import (
	"math"
	"math/rand"

	"github.com/eklitzke-lifter/lifter/internal/heuristic"
	"github.com/eklitzke-lifter/lifter/internal/plan"
	"github.com/eklitzke-lifter/lifter/internal/world"
)

// ucb1Exploration is the standard UCB1 constant (sqrt(2)) trading exploited
// reward against the bonus for under-visited children.
const ucb1Exploration = 1.41421356

// UCB1 is a Monte-Carlo bandit tree search: each Iterate descends from the
// root by repeatedly picking the live child maximizing the UCB1 score,
// expands one new child with heuristic.Generate's choices when it reaches a
// leaf, rolls out a short random playout from there to get a reward
// estimate, and backpropagates that reward up the path it descended.
// depthCap bounds the rollout so a single Iterate call stays cheap. UCB1
// shares plan.Node with Tree rather than keeping its own vertex type, so the
// dominance bookkeeping is unused here but the dead-end bookkeeping is not:
// a child already proven terminal, or whose whole subtree is terminal, is
// marked DeadEnd and selection skips it, per spec.md §4.5.
type UCB1 struct {
	rng      *rand.Rand
	root     *plan.Node
	depthCap int

	best    world.World
	bestSet bool
}

// NewUCB1 seeds a UCB1 planner at w. depthCap limits how many choice-edges
// a single rollout will take past the tree before scoring it; seed controls
// rollout randomness.
func NewUCB1(w world.World, depthCap int, seed int64) *UCB1 {
	return &UCB1{
		rng:      rand.New(rand.NewSource(seed)),
		root:     plan.NewNode(w, "", nil),
		depthCap: depthCap,
		best:     w,
		bestSet:  true,
	}
}

// Iterate runs one select-expand-rollout-backpropagate cycle. It returns
// false once the root is dead-end — terminal itself, or every line below it
// has already been proven terminal — since the bandit tree otherwise always
// has somewhere new to explore.
func (u *UCB1) Iterate() bool {
	u.root.RefreshDeadEnd()
	if u.root.DeadEnd {
		return false
	}

	node := u.root
	for !node.World.IsDone() && node.IsLeaf() && len(node.Children) > 0 {
		next := u.selectLiveChild(node)
		if next == nil {
			break
		}
		node = next
	}

	if !node.World.IsDone() && !node.IsLeaf() {
		node = u.expand(node)
	}

	reward := u.rollout(node.World, u.depthCap)
	u.recordBest(node.World)
	u.backpropagate(node, reward)
	node.RefreshDeadEnd()
	return true
}

// selectLiveChild picks the child maximizing the UCB1 score among those not
// marked DeadEnd. It returns nil if every child is dead-end — a defensive
// case RefreshDeadEnd should already have turned into node itself being
// dead-end by the time this is reached.
func (u *UCB1) selectLiveChild(node *plan.Node) *plan.Node {
	var best *plan.Node
	bestScore := math.Inf(-1)
	logParent := math.Log(float64(node.Visits + 1))
	for _, c := range node.Children {
		if c.DeadEnd {
			continue
		}
		avg := c.TotalReward
		if c.Visits > 0 {
			avg = c.TotalReward / float64(c.Visits)
		}
		bonus := ucb1Exploration * math.Sqrt(logParent/float64(c.Visits+1))
		score := avg + bonus
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	return best
}

// expand draws one unexplored choice from node at random, executes it, and
// attaches the result as a new child.
func (u *UCB1) expand(node *plan.Node) *plan.Node {
	idx := u.rng.Intn(len(node.Unexplored))
	choice := node.Unexplored[idx]
	node.Unexplored = append(node.Unexplored[:idx], node.Unexplored[idx+1:]...)

	result, _ := plan.Plan{Start: node.World, Actions: choice.Actions}.Execute()
	child := plan.NewNode(result, node.Path+choice.Actions, node)
	node.Children[choice.Actions] = child
	return child
}

// rollout takes up to depth further random choices from w and returns the
// best Score() seen along the way, normalized loosely by giving up as soon
// as the world ends.
func (u *UCB1) rollout(w world.World, depth int) float64 {
	cur := w
	best := float64(cur.Score())
	for i := 0; i < depth && cur.IsRunning(); i++ {
		choices := heuristic.Generate(cur)
		if len(choices) == 0 {
			break
		}
		c := choices[u.rng.Intn(len(choices))]
		cur, _ = plan.Plan{Start: cur, Actions: c.Actions}.Execute()
		if s := float64(cur.Score()); s > best {
			best = s
		}
	}
	u.recordBest(cur)
	return best
}

func (u *UCB1) backpropagate(node *plan.Node, reward float64) {
	for n := node; n != nil; n = n.Parent {
		n.Visits++
		n.TotalReward += reward
	}
}

func (u *UCB1) recordBest(w world.World) {
	if !u.bestSet || w.Score() > u.best.Score() {
		u.best = w
		u.bestSet = true
	}
}

// Best returns the best-scoring world discovered by any rollout or
// expansion so far.
func (u *UCB1) Best() (world.World, int, bool) {
	return u.best, u.best.Score(), u.bestSet
}
