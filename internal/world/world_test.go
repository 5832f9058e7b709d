package world

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRead(t *testing.T, mapText string) World {
	t.Helper()
	w, err := Read(strings.NewReader(mapText))
	require.NoError(t, err)
	return w
}

func TestCorridorReachesLift(t *testing.T) {
	// robot, earth, lambda, closed-lift on a single row.
	w := mustRead(t, "R.\\L\n")

	for i, a := range []Action{Right, Right, Right} {
		next, err := w.Step(a)
		require.NoErrorf(t, err, "step %d", i)
		w = next
	}

	assert.Equal(t, ReachedLift, w.State)
	assert.Equal(t, 1, w.LambdasCollected)
	assert.Equal(t, 72, w.Score())
}

func TestRockKillsRobot(t *testing.T) {
	// top-to-bottom: rock, robot, empty, all in one column; the lift sits
	// beside the rock in a second column.
	w := mustRead(t, "*L\nR\n \n")

	next, err := w.Step(Down)
	require.NoError(t, err)

	assert.Equal(t, Killed, next.State)
	assert.Equal(t, 0, next.Score())
}

func TestRockPush(t *testing.T) {
	w := mustRead(t, "R* #L\n")

	pushed, err := w.Step(Right)
	require.NoError(t, err)
	assert.Equal(t, Rock, pushed.At(2, 0))
	assert.Equal(t, RobotCell, pushed.At(1, 0))

	_, err = pushed.Step(Right)
	assert.ErrorIs(t, err, ErrInvalidMove)
}

func TestTrampolineTeleportsAndClearsMapping(t *testing.T) {
	w := mustRead(t, "RA.1L\n\nTrampoline A targets 1\n")
	require.Len(t, w.Trampolines, 1)

	next, err := w.Step(Right)
	require.NoError(t, err)

	assert.Equal(t, Point{3, 0}, next.Robot)
	assert.Equal(t, Empty, next.At(1, 0))
	assert.Empty(t, next.Trampolines)
}

func TestFloodingKillsAfterWaterproofExceeded(t *testing.T) {
	w := mustRead(t, "R.L\n\nFlooding 3\nWaterproof 1\n")
	require.Equal(t, -1, w.Water)
	require.Equal(t, 3, w.Flooding)
	require.Equal(t, 1, w.Waterproof)

	states := []State{}
	for i := 0; i < 5; i++ {
		next, err := w.Step(Wait)
		require.NoError(t, err)
		w = next
		states = append(states, w.State)
	}
	assert.Equal(t, 0, w.Water, "water should have risen once by tick 3")
	assert.Equal(t, Flooded, states[4])
	for i := 0; i < 4; i++ {
		assert.NotEqual(t, Flooded, states[i])
	}
}

func TestLiftOpensOnlyAfterLastLambdaCollected(t *testing.T) {
	w := mustRead(t, "R\\\\L\n")

	// Lift starts closed; stepping onto it is invalid while lambdas remain.
	afterFirst, err := w.Step(Right)
	require.NoError(t, err)
	assert.Equal(t, 1, afterFirst.LambdasCollected)
	assert.Equal(t, ClosedLift, afterFirst.At(3, 0))

	afterSecond, err := afterFirst.Step(Right)
	require.NoError(t, err)
	assert.Equal(t, 2, afterSecond.LambdasCollected)
	assert.Equal(t, OpenLift, afterSecond.At(3, 0))

	final, err := afterSecond.Step(Right)
	require.NoError(t, err)
	assert.Equal(t, ReachedLift, final.State)
}

func TestStepIsPure(t *testing.T) {
	w := mustRead(t, "R.\\L\n")
	snapshot := w.Render()

	_, err := w.Step(Right)
	require.NoError(t, err)

	assert.Equal(t, snapshot, w.Render(), "Step must not mutate its receiver")
	assert.Equal(t, 0, w.NumMoves)
}

func TestPathReplayReproducesWorld(t *testing.T) {
	w := mustRead(t, "R.\\L\n")
	cur := w
	for _, a := range []Action{Right, Right, Right} {
		next, err := cur.Step(a)
		require.NoError(t, err)
		cur = next
	}

	replay := w
	for _, b := range []byte(cur.Path) {
		next, err := replay.Step(Action(b))
		require.NoError(t, err)
		replay = next
	}

	assert.Equal(t, cur.Render(), replay.Render())
	assert.Equal(t, cur.Score(), replay.Score())
	assert.Equal(t, cur.State, replay.State)
}

func TestAbortIsTerminal(t *testing.T) {
	w := mustRead(t, "R.\\L\n")
	aborted, err := w.Step(Abort)
	require.NoError(t, err)
	assert.Equal(t, Aborted, aborted.State)
	assert.Equal(t, 1, aborted.NumMoves)

	_, err = aborted.Step(Wait)
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestValidMovesSoundness(t *testing.T) {
	w := mustRead(t, "R* #L\n")
	for _, a := range w.ValidMoves() {
		_, err := w.Step(a)
		assert.NoErrorf(t, err, "action %q should not be invalid", a)
	}
}

func TestInvariantsAfterRandomishWalk(t *testing.T) {
	w := mustRead(t, "R.\\L\n")
	cur := w
	for _, a := range []Action{Right, Right} {
		next, err := cur.Step(a)
		require.NoError(t, err)
		cur = next
	}

	rockSet := map[Point]bool{}
	for y := 0; y < cur.Height; y++ {
		for x := 0; x < cur.Width; x++ {
			c := cur.At(x, y)
			if c == Rock {
				rockSet[Point{x, y}] = true
			}
			if c == Lambda {
				_, ok := cur.Lambdas[Point{x, y}]
				assert.True(t, ok)
			}
		}
	}
	assert.Equal(t, len(rockSet), len(cur.Rocks))
	assert.Equal(t, cur.LambdasCollected+len(cur.Lambdas), cur.InitialLambdas)
}

func TestShaveClearsAdjacentBeardsAndConsumesRazor(t *testing.T) {
	w := mustRead(t, "RWL\n\nRazors 1\n")
	require.Equal(t, 1, w.NumRazors)

	next, err := w.Step(Shave)
	require.NoError(t, err)
	assert.Equal(t, 0, next.NumRazors)
	assert.Equal(t, Empty, next.At(1, 0))
	_, stillBeard := next.Beards[Point{1, 0}]
	assert.False(t, stillBeard)
}

func TestBeardGrows(t *testing.T) {
	w := mustRead(t, "R.L\n W \n   \n\nGrowth 1\n")
	next, err := w.Step(Wait)
	require.NoError(t, err)
	// every empty 8-neighbour of the beard cell becomes a beard on tick 1.
	assert.Equal(t, Beard, next.At(0, 1))
	assert.Equal(t, Beard, next.At(2, 1))
}
