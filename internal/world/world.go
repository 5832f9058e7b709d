package world

import (
	"errors"
	"sort"
)

// ErrInvalidMove is returned when an action is illegal in an otherwise
// running world: moving into a wall, a closed lift, a trampoline target, or
// pushing a rock into a non-empty cell.
var ErrInvalidMove = errors.New("lifter/world: invalid move")

// ErrGameOver is returned when Step is called on a non-running world. Unlike
// ErrInvalidMove this is never expected from a sound planner and indicates a
// programming bug upstream.
var ErrGameOver = errors.New("lifter/world: game over")

// World is an immutable snapshot of the puzzle state. Step never mutates the
// receiver; it clones the grid row-by-row and returns a new World.
type World struct {
	Grid   [][]Cell // Grid[y][x]; row 0 is the bottom row.
	Width  int
	Height int

	Robot Point

	// Lambdas and Rocks are derived caches kept consistent with Grid on
	// every exported method; Rocks is strictly sorted by (Y, X) so that
	// Step can process rock physics in the deterministic order the spec
	// requires.
	Lambdas map[Point]struct{}
	Rocks   []Point
	Beards  map[Point]struct{}

	Lift        Point
	Trampolines map[Point]Point // source -> target

	LambdasCollected int
	InitialLambdas   int
	NumMoves         int

	Water      int // highest flooded row, -1 for none
	Flooding   int // 0 disables; else rises every N ticks
	Waterproof int // consecutive submerged ticks survived
	Underwater int

	NumRazors   int
	BeardGrowth int // 0 disables growth

	State State
	Path  string
}

// clone deep-copies everything Step needs to mutate, leaving w untouched.
func (w World) clone() World {
	grid := make([][]Cell, len(w.Grid))
	for y, row := range w.Grid {
		cp := make([]Cell, len(row))
		copy(cp, row)
		grid[y] = cp
	}
	lambdas := make(map[Point]struct{}, len(w.Lambdas))
	for p := range w.Lambdas {
		lambdas[p] = struct{}{}
	}
	beards := make(map[Point]struct{}, len(w.Beards))
	for p := range w.Beards {
		beards[p] = struct{}{}
	}
	rocks := make([]Point, len(w.Rocks))
	copy(rocks, w.Rocks)
	trampolines := make(map[Point]Point, len(w.Trampolines))
	for k, v := range w.Trampolines {
		trampolines[k] = v
	}
	n := w
	n.Grid = grid
	n.Lambdas = lambdas
	n.Beards = beards
	n.Rocks = rocks
	n.Trampolines = trampolines
	return n
}

// At returns the cell at logical coordinates (x, y); (0,0) is bottom-left.
func (w World) At(x, y int) Cell {
	return w.Grid[y][x]
}

func (w World) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < w.Width && y < w.Height
}

// InBounds reports whether (x, y) is within the grid. Exported for the
// heuristic package's pathfinder, which needs to peek at cells beyond the
// immediate neighbour ring (the anti-crush rock check looks two rows up).
func (w World) InBounds(x, y int) bool {
	return w.inBounds(x, y)
}

func (w World) set(x, y int, c Cell) {
	w.Grid[y][x] = c
}

// IsRunning reports whether further Step calls are legal.
func (w World) IsRunning() bool {
	return w.State == Running
}

// IsDone reports whether the world has reached a terminal state.
func (w World) IsDone() bool {
	return w.State != Running
}

// IsFailed reports whether the world ended in death (killed or flooded).
func (w World) IsFailed() bool {
	return w.State == Killed || w.State == Flooded
}

// Score computes 25 * lambdas_collected * M - num_moves, per spec.md §4.2.
// A failed world (killed or flooded) scores flat zero rather than applying
// M=1, matching original_source/world.py's score() and spec.md §8 scenario 2
// (see DESIGN.md for this Open Question resolution).
func (w World) Score() int {
	if w.IsFailed() {
		return 0
	}
	var m int
	switch w.State {
	case Aborted, Running:
		m = 2
	case ReachedLift:
		m = 3
	}
	return 25*w.LambdasCollected*m - w.NumMoves
}

// Fingerprint is a canonical byte-sequence rendering of the grid, used by
// the tree planner to key dominance lookups by map identity (spec.md §4.5).
func (w World) Fingerprint() string {
	buf := make([]byte, 0, w.Width*w.Height+8)
	for _, row := range w.Grid {
		buf = append(buf, []byte(row2bytes(row))...)
	}
	return string(buf)
}

func row2bytes(row []Cell) []byte {
	b := make([]byte, len(row))
	for i, c := range row {
		b[i] = byte(c)
	}
	return b
}

// sortRocks restores the strict (Y, X) ascending order the engine's rock
// physics relies on.
func sortRocks(rocks []Point) {
	sort.Slice(rocks, func(i, j int) bool {
		if rocks[i].Y != rocks[j].Y {
			return rocks[i].Y < rocks[j].Y
		}
		return rocks[i].X < rocks[j].X
	})
}

// ValidMoves returns the subset of the action alphabet that would not
// immediately fail with ErrInvalidMove; empty when the world is not running.
func (w World) ValidMoves() []Action {
	if !w.IsRunning() {
		return nil
	}
	out := make([]Action, 0, 7)
	for _, a := range AllActions {
		if a == Wait || a == Abort || a == Shave {
			out = append(out, a)
			continue
		}
		d := a.Delta()
		nx, ny := w.Robot.X+d.X, w.Robot.Y+d.Y
		if !w.inBounds(nx, ny) {
			continue
		}
		target := w.At(nx, ny)
		switch {
		case target == Wall, target == ClosedLift, target.IsTrampolineTarget():
			continue
		case target == Rock:
			if a != Left && a != Right {
				continue
			}
			rx, ry := nx+d.X, ny+d.Y
			if !w.inBounds(rx, ry) || w.At(rx, ry) != Empty {
				continue
			}
			out = append(out, a)
		case target.IsTrampolineSource():
			if _, ok := w.Trampolines[Point{nx, ny}]; !ok {
				continue
			}
			out = append(out, a)
		default:
			out = append(out, a)
		}
	}
	return out
}
