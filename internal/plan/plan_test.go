package plan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eklitzke-lifter/lifter/internal/heuristic"
	"github.com/eklitzke-lifter/lifter/internal/world"
)

func mustRead(t *testing.T, mapText string) world.World {
	t.Helper()
	w, err := world.Read(strings.NewReader(mapText))
	require.NoError(t, err)
	return w
}

func TestPlanExecuteReplaysActions(t *testing.T) {
	w := mustRead(t, "R.\\L\n")
	p := Plan{Start: w, Actions: "RRR"}
	result, steps := p.Execute()
	assert.Equal(t, world.ReachedLift, result.State)
	require.Len(t, steps, 3)
	assert.Equal(t, result, steps[len(steps)-1])
}

func TestPlanExecuteStopsOnInvalidAction(t *testing.T) {
	w := mustRead(t, "R* #L\n")
	p := Plan{Start: w, Actions: "RR"} // second Right is illegal, push has nowhere to go
	result, steps := p.Execute()
	assert.Equal(t, world.RobotCell, result.At(1, 0))
	require.Len(t, steps, 1)
}

func TestPlanExecuteEmptyActionsYieldsNoSteps(t *testing.T) {
	w := mustRead(t, "R.\\L\n")
	result, steps := Plan{Start: w, Actions: ""}.Execute()
	assert.Equal(t, w, result)
	assert.Empty(t, steps)
}

func TestNewNodeSeedsUnexploredFromGeneratedChoices(t *testing.T) {
	w := mustRead(t, "R* #L\n")
	n := NewNode(w, "", nil)
	assert.Equal(t, heuristic.Generate(w), n.Unexplored)
	assert.False(t, n.IsLeaf())
}

func TestPopUnexploredDrainsToLeaf(t *testing.T) {
	w := mustRead(t, "R.\\L\n")
	n := NewNode(w, "", nil)
	for !n.IsLeaf() {
		n.PopUnexplored()
	}
	assert.True(t, n.IsLeaf())
}

func TestBubbleUpPropagatesBestScore(t *testing.T) {
	w := mustRead(t, "R.\\L\n")
	root := NewNode(w, "", nil)
	child := NewNode(w, "R", root)
	child.Parent = root

	child.BubbleUp(100)
	assert.Equal(t, 100, root.MaxChildScore)
	assert.Equal(t, 100, child.MaxChildScore)
}

func TestBubbleUpStopsWhenAncestorAlreadyBetter(t *testing.T) {
	w := mustRead(t, "R.\\L\n")
	root := NewNode(w, "", nil)
	root.MaxChildScore = 500
	child := NewNode(w, "R", root)
	child.Parent = root

	child.BubbleUp(10)
	assert.Equal(t, 500, root.MaxChildScore)
}

func TestMarkDominatedWalksChildren(t *testing.T) {
	w := mustRead(t, "R.\\L\n")
	root := NewNode(w, "", nil)
	child := NewNode(w, "R", root)
	grandchild := NewNode(w, "RR", child)
	root.Children["R"] = child
	child.Children["R"] = grandchild

	root.MarkDominated()

	assert.True(t, root.Dominated)
	assert.True(t, child.Dominated)
	assert.True(t, grandchild.Dominated)
}

func TestRefreshDeadEndMarksTerminalNode(t *testing.T) {
	w := mustRead(t, "R.\\L\n")
	aborted, err := w.Step(world.Abort)
	require.NoError(t, err)

	n := NewNode(aborted, "A", nil)
	n.RefreshDeadEnd()
	assert.True(t, n.DeadEnd)
}

func TestRefreshDeadEndPropagatesWhenEveryChildIsDeadEnd(t *testing.T) {
	w := mustRead(t, "R.\\L\n")
	aborted, err := w.Step(world.Abort)
	require.NoError(t, err)

	root := NewNode(w, "", nil)
	child := NewNode(aborted, "A", root)
	root.Children["A"] = child
	for !root.IsLeaf() {
		root.PopUnexplored()
	}

	child.RefreshDeadEnd()
	assert.True(t, child.DeadEnd)
	assert.True(t, root.DeadEnd, "root should become dead-end once its only child is dead-end and it has no unexplored choices left")
}

func TestRefreshDeadEndDoesNotPropagateWhileUnexploredRemains(t *testing.T) {
	w := mustRead(t, "R.\\L\n")
	aborted, err := w.Step(world.Abort)
	require.NoError(t, err)

	root := NewNode(w, "", nil)
	child := NewNode(aborted, "A", root)
	root.Children["A"] = child

	child.RefreshDeadEnd()
	assert.True(t, child.DeadEnd)
	assert.False(t, root.DeadEnd, "root still has unexplored choices, so it cannot be dead-end yet")
}
