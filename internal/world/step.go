package world

// eightNeighbours are the relative offsets of a cell's 8-neighbourhood, used
// by both razor shaving and beard growth.
var eightNeighbours = [8]Point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

func cloneGrid(g [][]Cell) [][]Cell {
	out := make([][]Cell, len(g))
	for y, row := range g {
		cp := make([]Cell, len(row))
		copy(cp, row)
		out[y] = cp
	}
	return out
}

// cellAtGrid treats anything outside the grid as a wall, so rock physics at
// the map border behaves as if the map were surrounded by walls: a rock on
// the bottom row neither falls nor rolls.
func cellAtGrid(g [][]Cell, width, height, x, y int) Cell {
	if x < 0 || y < 0 || x >= width || y >= height {
		return Wall
	}
	return g[y][x]
}

// Step applies a single tick. It never mutates w; the returned World is a
// fresh value built from a cloned grid. The three phases run in the fixed
// order spec.md §4.2 mandates: robot action, then world update (rocks and
// beards read the post-action grid and write a fresh successor grid), then
// terminal checks.
func (w World) Step(a Action) (World, error) {
	if !w.IsRunning() {
		return World{}, ErrGameOver
	}

	nw := w.clone()
	nw.NumMoves++
	nw.Path += string(byte(a))

	if a == Abort {
		nw.State = Aborted
		return nw, nil
	}

	inLift, err := nw.applyRobotAction(a)
	if err != nil {
		return World{}, err
	}

	movedRocks := nw.applyWorldUpdate()
	nw.applyTerminalChecks(movedRocks, inLift)
	return nw, nil
}

func (nw *World) moveRobotTo(x, y int) {
	nw.set(nw.Robot.X, nw.Robot.Y, Empty)
	nw.set(x, y, RobotCell)
	nw.Robot = Point{x, y}
}

func (nw *World) moveRock(from, to Point) {
	for i, p := range nw.Rocks {
		if p == from {
			nw.Rocks[i] = to
			break
		}
	}
	sortRocks(nw.Rocks)
}

// applyRobotAction is Phase 1. It mutates nw's grid and derived caches in
// place and reports whether the robot stepped into an open lift.
func (nw *World) applyRobotAction(a Action) (inLift bool, err error) {
	switch a {
	case Wait:
		return false, nil
	case Shave:
		if nw.NumRazors > 0 {
			nw.NumRazors--
			for _, d := range eightNeighbours {
				nx, ny := nw.Robot.X+d.X, nw.Robot.Y+d.Y
				if !nw.inBounds(nx, ny) {
					continue
				}
				if nw.Grid[ny][nx] == Beard {
					nw.set(nx, ny, Empty)
					delete(nw.Beards, Point{nx, ny})
				}
			}
		}
		return false, nil
	}

	d := a.Delta()
	nx, ny := nw.Robot.X+d.X, nw.Robot.Y+d.Y
	if !nw.inBounds(nx, ny) {
		return false, ErrInvalidMove
	}

	target := nw.At(nx, ny)
	switch {
	case target == Wall || target == ClosedLift || target.IsTrampolineTarget():
		return false, ErrInvalidMove

	case target == Rock:
		if a != Left && a != Right {
			return false, ErrInvalidMove
		}
		rx, ry := nx+d.X, ny+d.Y
		if !nw.inBounds(rx, ry) || nw.At(rx, ry) != Empty {
			return false, ErrInvalidMove
		}
		nw.set(rx, ry, Rock)
		nw.moveRock(Point{nx, ny}, Point{rx, ry})
		nw.moveRobotTo(nx, ny)

	case target == Lambda:
		nw.moveRobotTo(nx, ny)
		nw.LambdasCollected++
		delete(nw.Lambdas, Point{nx, ny})

	case target == OpenLift:
		nw.moveRobotTo(nx, ny)
		inLift = true

	case target.IsTrampolineSource():
		dest, ok := nw.Trampolines[Point{nx, ny}]
		if !ok {
			return false, ErrInvalidMove
		}
		var sources []Point
		for src, tgt := range nw.Trampolines {
			if tgt == dest {
				sources = append(sources, src)
			}
		}
		for _, src := range sources {
			nw.set(src.X, src.Y, Empty)
			delete(nw.Trampolines, src)
		}
		nw.set(dest.X, dest.Y, Empty)
		nw.moveRobotTo(dest.X, dest.Y)

	case target == Razor:
		nw.moveRobotTo(nx, ny)
		nw.NumRazors++

	default: // Earth, Empty
		nw.moveRobotTo(nx, ny)
	}
	return inLift, nil
}

// applyWorldUpdate is Phase 2: rock physics and beard growth, both read from
// the stabilized post-action grid and write into a freshly built successor
// grid, following the teacher's read-from-old/write-to-new discipline
// (step_seq.go builds `next` from `cur` rather than mutating in place) so
// that no rock or beard cell observes another rock or beard cell's result
// from the same tick.
func (nw *World) applyWorldUpdate() map[Point]bool {
	read := nw.Grid
	write := cloneGrid(read)
	movedRocks := make(map[Point]bool, len(nw.Rocks))
	newRocks := make([]Point, 0, len(nw.Rocks))

	at := func(x, y int) Cell { return cellAtGrid(read, nw.Width, nw.Height, x, y) }

	for _, p := range nw.Rocks {
		x, y := p.X, p.Y
		below := at(x, y-1)
		left := at(x-1, y)
		right := at(x+1, y)
		dl := at(x-1, y-1)
		dr := at(x+1, y-1)

		nx, ny, moved := x, y, false
		switch {
		case below == Empty:
			nx, ny, moved = x, y-1, true
		case below == Rock && right == Empty && dr == Empty:
			nx, ny, moved = x+1, y-1, true
		case below == Rock && (right != Empty || dr != Empty) && left == Empty && dl == Empty:
			nx, ny, moved = x-1, y-1, true
		case below == Lambda && right == Empty && dr == Empty:
			nx, ny, moved = x+1, y-1, true
		}

		if moved {
			write[y][x] = Empty
			write[ny][nx] = Rock
			movedRocks[Point{nx, ny}] = true
			newRocks = append(newRocks, Point{nx, ny})
		} else {
			newRocks = append(newRocks, Point{x, y})
		}
	}
	sortRocks(newRocks)
	nw.Rocks = newRocks

	if read[nw.Lift.Y][nw.Lift.X] == ClosedLift && len(nw.Lambdas) == 0 {
		write[nw.Lift.Y][nw.Lift.X] = OpenLift
	}

	if nw.BeardGrowth > 0 && nw.NumMoves%nw.BeardGrowth == 0 {
		newBeards := make(map[Point]struct{}, len(nw.Beards))
		for p := range nw.Beards {
			newBeards[p] = struct{}{}
		}
		for p := range nw.Beards {
			for _, d := range eightNeighbours {
				nx, ny := p.X+d.X, p.Y+d.Y
				if !nw.inBounds(nx, ny) {
					continue
				}
				if read[ny][nx] == Empty {
					write[ny][nx] = Beard
					newBeards[Point{nx, ny}] = struct{}{}
				}
			}
		}
		nw.Beards = newBeards
	}

	nw.Grid = write
	return movedRocks
}

// applyTerminalChecks is Phase 3. Water bookkeeping runs first, then the
// four terminal checks run in the fixed order spec.md §4.2 describes.
func (nw *World) applyTerminalChecks(movedRocks map[Point]bool, inLift bool) {
	if nw.Robot.Y <= nw.Water {
		nw.Underwater++
	} else {
		nw.Underwater = 0
	}
	if nw.Flooding > 0 && nw.NumMoves > 0 && nw.NumMoves%nw.Flooding == 0 {
		nw.Water++
	}

	switch {
	case nw.Underwater > nw.Waterproof:
		nw.State = Flooded
	case movedRocks[Point{nw.Robot.X, nw.Robot.Y + 1}]:
		nw.State = Killed
	case inLift:
		nw.State = ReachedLift
	default:
		nw.State = Running
	}
}
