// Package plan holds the shared data structures the three planner
// strategies in internal/planner build on top of: a finished Plan ready to
// replay, and a search-tree Node the tree and UCB1 strategies both build on
// (Weighted stays flat and never needs a tree).
package plan

import (
	"github.com/eklitzke-lifter/lifter/internal/heuristic"
	"github.com/eklitzke-lifter/lifter/internal/world"
)

// Plan is a finished action sequence paired with the world it was found
// from, so a caller can re-derive the resulting worlds on demand rather
// than carry every intermediate snapshot.
type Plan struct {
	Start   world.World
	Actions string
}

// Execute replays Actions against Start action-by-action, returning the
// final world plus every intermediate world reached along the way (in
// order; the last entry is the final world). It stops early (without
// error) if a later action is illegal in a state an earlier one produced,
// returning whatever was collected up to that point. This can happen for a
// planner's own plans, since the heuristic routes do not simulate physics,
// and for a Plan built by hand (e.g. from an --initial-path string). It
// also stops once the world is no longer running. If Actions is empty, or
// the very first action is illegal, the final world is Start and steps is
// empty.
func (p Plan) Execute() (final world.World, steps []world.World) {
	cur := p.Start
	steps = make([]world.World, 0, len(p.Actions))
	for _, b := range []byte(p.Actions) {
		if !cur.IsRunning() {
			break
		}
		next, err := cur.Step(world.Action(b))
		if err != nil {
			break
		}
		cur = next
		steps = append(steps, cur)
	}
	return cur, steps
}

// Node is one position in a planner's search tree: the world it
// represents, the path of actions that reached it from the root, and
// bookkeeping the tree and UCB1 strategies share. Each edge out of a node
// is a whole heuristic.Choice rather than a single primitive action — the
// planners search over the choice graph, not the raw action graph, to keep
// branching factor small — so Children is keyed by the choice's action
// string rather than a single world.Action.
type Node struct {
	World  world.World
	Path   string
	Parent *Node

	// Children maps a taken choice's action string to the node it produced.
	// Dominance pruning walks this table to mark a superseded subtree.
	Children map[string]*Node

	// Score is this node's own Score(); MaxChildScore is the best Score()
	// seen anywhere in the subtree rooted here, kept up to date on every
	// bubble-up so an ancestor can compare itself against its best
	// descendant without re-walking the tree.
	Score         int
	MaxChildScore int

	// Dominated marks a node superseded by another node that reached the
	// same map fingerprint in fewer moves — the dominance rule from the tree
	// planner, which compares move counts only. A dominated node is never
	// expanded.
	Dominated bool

	// DeadEnd marks a node that can never produce a new result: either its
	// world is terminal, or every child it has is itself dead-end. Set by
	// RefreshDeadEnd, which also propagates the marking up through parents.
	DeadEnd bool

	// Unexplored is the set of choices not yet expanded into a child.
	Unexplored []heuristic.Choice

	// Visits and TotalReward back UCB1's selection formula; unused by the
	// other two strategies.
	Visits      int
	TotalReward float64
}

// NewNode builds a fresh, fully-unexplored node for w reached via path.
func NewNode(w world.World, path string, parent *Node) *Node {
	return &Node{
		World:         w,
		Path:          path,
		Parent:        parent,
		Children:      map[string]*Node{},
		Score:         w.Score(),
		MaxChildScore: w.Score(),
		Unexplored:    heuristic.Generate(w),
	}
}

// IsLeaf reports whether every choice from this node has already been
// expanded into a child.
func (n *Node) IsLeaf() bool {
	return len(n.Unexplored) == 0
}

// PopUnexplored removes and returns one choice from the unexplored set.
// Callers are expected to check IsLeaf first.
func (n *Node) PopUnexplored() heuristic.Choice {
	c := n.Unexplored[len(n.Unexplored)-1]
	n.Unexplored = n.Unexplored[:len(n.Unexplored)-1]
	return c
}

// BubbleUp propagates a freshly-discovered score up through every ancestor's
// MaxChildScore, stopping as soon as an ancestor is already at least as good.
func (n *Node) BubbleUp(score int) {
	for cur := n; cur != nil; cur = cur.Parent {
		if score > cur.MaxChildScore {
			cur.MaxChildScore = score
		} else if cur != n {
			break
		}
	}
}

// MarkDominated marks n and every node in its subtree as dominated,
// walking Children exactly as spec.md §4.5 describes: "mark the prior and
// its descendants dominated by walking their child tables."
func (n *Node) MarkDominated() {
	if n.Dominated {
		return
	}
	n.Dominated = true
	for _, c := range n.Children {
		c.MarkDominated()
	}
}

// RefreshDeadEnd recomputes n's dead-end status and propagates the change
// up through ancestors for as long as it keeps flipping a parent to
// dead-end too: a terminal world is always dead-end; an internal node
// becomes dead-end once it has no unexplored choices left and every child
// is dead-end. Selection (UCB1) skips dead-end children; one all of whose
// children are dead-end becomes dead-end itself, exactly per spec.md §4.5.
func (n *Node) RefreshDeadEnd() {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.DeadEnd {
			return
		}
		if cur.World.IsDone() {
			cur.DeadEnd = true
			continue
		}
		if !cur.IsLeaf() || len(cur.Children) == 0 {
			return
		}
		for _, c := range cur.Children {
			if !c.DeadEnd {
				return
			}
		}
		cur.DeadEnd = true
	}
}
