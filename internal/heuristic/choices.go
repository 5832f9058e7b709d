package heuristic

import (
	"sort"

	"github.com/eklitzke-lifter/lifter/internal/world"
)

// Choice is a candidate action sequence from a World's current robot
// position, annotated with the information the planner's roulette wheel and
// dominance tests need: the estimated terrain cost of reaching it and what
// it is expected to net (a lambda, the lift, or just a repositioning move).
type Choice struct {
	Actions      string
	ExpectedCost int
	NetsLambda   bool
	NetsLift     bool
}

// Generate proposes every choice reachable from w's current robot position:
// one per reachable uncollected lambda, one for the lift (only once every
// lambda is gone and the lift cell is open: AStar treats a closed lift as
// impassable, so a map that starts with no lambdas offers no lift choice
// until a tick has opened it), one per reachable rock push (per rock and
// side), one per rock poised to roll off a diagonal into the clear, and
// always a bare Abort. Grounded on
// original_source/bot.py's get_choices for the lambda/lift/push set; the
// droppable-rock generator has no original_source counterpart (that bot
// never modeled it) and is grounded directly on the diagonal-roll rule in
// internal/world/step.go instead — see DESIGN.md.
func Generate(w world.World) []Choice {
	var choices []Choice

	lambdaPoints := make([]world.Point, 0, len(w.Lambdas))
	for p := range w.Lambdas {
		lambdaPoints = append(lambdaPoints, p)
	}
	sort.Slice(lambdaPoints, func(i, j int) bool {
		if lambdaPoints[i].Y != lambdaPoints[j].Y {
			return lambdaPoints[i].Y < lambdaPoints[j].Y
		}
		return lambdaPoints[i].X < lambdaPoints[j].X
	})

	for _, p := range lambdaPoints {
		if route, ok := AStar(w, w.Robot, p); ok {
			choices = append(choices, Choice{Actions: route, ExpectedCost: len(route), NetsLambda: true})
		}
	}

	if len(w.Lambdas) == 0 {
		if route, ok := AStar(w, w.Robot, w.Lift); ok {
			choices = append(choices, Choice{Actions: route, ExpectedCost: len(route), NetsLift: true})
		}
	}

	choices = append(choices, rockPushChoices(w)...)
	choices = append(choices, droppableRockChoices(w)...)
	choices = append(choices, Choice{Actions: string(byte(world.Abort)), ExpectedCost: 1})

	return choices
}

// rockPushChoices proposes stepping next to, and then pushing, any rock with
// an open landing cell on its left or right — the only way a choice can
// change the board's rock layout rather than just the robot's position.
func rockPushChoices(w world.World) []Choice {
	var out []Choice
	for _, r := range w.Rocks {
		for _, dir := range [2]world.Action{world.Left, world.Right} {
			d := dir.Delta()
			standAt := world.Point{X: r.X - d.X, Y: r.Y}
			landAt := world.Point{X: r.X + d.X, Y: r.Y}
			if !w.InBounds(standAt.X, standAt.Y) || !w.InBounds(landAt.X, landAt.Y) {
				continue
			}
			if w.At(landAt.X, landAt.Y) != world.Empty {
				continue
			}
			route, ok := AStar(w, w.Robot, standAt)
			if !ok {
				continue
			}
			actions := route + string(byte(dir))
			out = append(out, Choice{Actions: actions, ExpectedCost: len(actions)})
		}
	}
	return out
}

// droppableRockChoices proposes standing beside a rock that is poised to
// roll off a diagonal — its diagonal-down cell is earth or empty — so the
// planner can discover the choice of waiting there for the roll to clear a
// path, rather than only ever pushing rocks sideways. The standing cell sits
// directly above the cell the rock would roll into, so the robot is never at
// risk from the fall it is waiting out.
func droppableRockChoices(w world.World) []Choice {
	var out []Choice
	for _, r := range w.Rocks {
		for _, dir := range [2]world.Action{world.Left, world.Right} {
			d := dir.Delta()
			diagDown := world.Point{X: r.X + d.X, Y: r.Y - 1}
			if !w.InBounds(diagDown.X, diagDown.Y) || !openCell(w.At(diagDown.X, diagDown.Y)) {
				continue
			}
			standAt := world.Point{X: diagDown.X, Y: diagDown.Y + 1}
			if c, ok := standAndWait(w, standAt); ok {
				out = append(out, c)
			}
		}
	}
	return out
}

// openCell reports whether c counts as an open diagonal-down cell for this
// generator: empty space or earth. Step itself only rolls a rock into empty
// space.
func openCell(c world.Cell) bool {
	return c == world.Empty || c == world.Earth
}

// standAndWait builds the route-then-Wait choice for standing at standAt, if
// standAt is itself an empty cell reachable from the robot's position.
func standAndWait(w world.World, standAt world.Point) (Choice, bool) {
	if !w.InBounds(standAt.X, standAt.Y) || w.At(standAt.X, standAt.Y) != world.Empty {
		return Choice{}, false
	}
	route, ok := AStar(w, w.Robot, standAt)
	if !ok {
		return Choice{}, false
	}
	actions := route + string(byte(world.Wait))
	return Choice{Actions: actions, ExpectedCost: len(actions)}, true
}

// Goodness implements original_source/bot.py's roulette weight:
// (score - expected_cost)^2 / max(num_moves, 1), biasing the wheel toward
// cheap, high-value choices. The weight is never negative; it is zero when
// score equals expectedCost.
func Goodness(score, expectedCost, numMoves int) float64 {
	diff := float64(score - expectedCost)
	denom := numMoves
	if denom < 1 {
		denom = 1
	}
	return (diff * diff) / float64(denom)
}
