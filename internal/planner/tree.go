package planner

import (
	"github.com/eklitzke-lifter/lifter/internal/plan"
	"github.com/eklitzke-lifter/lifter/internal/world"
)

// Tree is a best-first search over the choice graph (not the raw action
// graph — each edge is a whole heuristic.Choice, so branching factor stays
// small). A later arrival at an identical-looking map (same
// world.Fingerprint) in an equal or greater number of moves is discarded
// without being attached to the tree; conversely a later arrival that beats
// the earlier one on moves marks the earlier one's whole subtree Dominated.
type Tree struct {
	root *plan.Node
	// frontier holds leaves still worth expanding; pickFrontierIndex takes
	// the one with the highest MaxChildScore, earliest inserted on ties — a
	// simple slice scan is enough at the branching factors this search sees
	// in practice.
	frontier []*plan.Node

	// seen maps a map fingerprint to the node that currently holds the
	// fewest-moves claim on it, for the dominance check.
	seen map[string]*plan.Node

	best    world.World
	bestSet bool
}

// NewTree seeds a Tree planner at w.
func NewTree(w world.World) *Tree {
	root := plan.NewNode(w, "", nil)
	t := &Tree{
		root:     root,
		frontier: []*plan.Node{root},
		seen:     map[string]*plan.Node{w.Fingerprint(): root},
		best:     w,
		bestSet:  true,
	}
	return t
}

// Iterate pops the single most promising frontier node still worth
// expanding (skipping any that were dominated after being queued), expands
// every one of its unexplored choices, and pushes each surviving child back
// onto the frontier. Returns false once the frontier runs dry.
func (t *Tree) Iterate() bool {
	for {
		idx, ok := t.pickFrontierIndex()
		if !ok {
			return false
		}
		node := t.frontier[idx]
		t.frontier = append(t.frontier[:idx], t.frontier[idx+1:]...)

		if node.Dominated {
			continue
		}
		return t.expand(node)
	}
}

// expand drains node's unexplored choices, applying the dominance rule from
// spec.md §4.5: a prior node for the same map at an equal or lower move
// count dominates the new candidate (discard it); a new candidate with
// strictly fewer moves dominates the prior and its whole subtree instead.
func (t *Tree) expand(node *plan.Node) bool {
	if node.World.IsDone() {
		t.recordBest(node.World)
		node.RefreshDeadEnd()
		return len(t.frontier) > 0
	}

	for !node.IsLeaf() {
		c := node.PopUnexplored()
		result, _ := plan.Plan{Start: node.World, Actions: c.Actions}.Execute()
		fp := result.Fingerprint()

		if prior, ok := t.seen[fp]; ok {
			if prior.World.NumMoves <= result.NumMoves {
				continue // prior reached this map at least as cheaply: new node is dominated
			}
			prior.MarkDominated()
		}

		child := plan.NewNode(result, node.Path+c.Actions, node)
		node.Children[c.Actions] = child
		t.seen[fp] = child
		node.BubbleUp(child.Score)
		t.recordBest(result)
		if result.IsDone() {
			child.RefreshDeadEnd()
		} else {
			t.frontier = append(t.frontier, child)
		}
	}
	node.RefreshDeadEnd()
	return len(t.frontier) > 0
}

// pickFrontierIndex returns the index of the frontier node whose subtree
// has shown the best MaxChildScore so far — the best-first heuristic.
func (t *Tree) pickFrontierIndex() (int, bool) {
	if len(t.frontier) == 0 {
		return 0, false
	}
	best := 0
	for i, n := range t.frontier {
		if n.MaxChildScore > t.frontier[best].MaxChildScore {
			best = i
		}
	}
	return best, true
}

func (t *Tree) recordBest(w world.World) {
	if !t.bestSet || w.Score() > t.best.Score() {
		t.best = w
		t.bestSet = true
	}
}

// Best returns the best-scoring world discovered anywhere in the tree.
func (t *Tree) Best() (world.World, int, bool) {
	return t.best, t.best.Score(), t.bestSet
}
