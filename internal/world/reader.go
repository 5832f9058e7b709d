package world

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Read parses the map-file format from spec.md §6: grid lines up to the
// first blank line, then metadata lines. Grounded on the teacher's
// NewWorld/SeedRandom construction (allocate the grid, then derive every
// index in one pass) and on original_source/world.py's read_world for the
// exact flip/pad/derive order.
func Read(r io.Reader) (World, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var gridLines []string
	var metaLines []string
	inGrid := true
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if inGrid {
			if line == "" {
				inGrid = false
				continue
			}
			gridLines = append(gridLines, line)
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		metaLines = append(metaLines, line)
	}
	if err := scanner.Err(); err != nil {
		return World{}, err
	}
	if len(gridLines) == 0 {
		return World{}, errors.New("lifter/world: empty grid")
	}

	width := 0
	for _, l := range gridLines {
		if len(l) > width {
			width = len(l)
		}
	}
	height := len(gridLines)

	grid := make([][]Cell, height)
	for i, l := range gridLines {
		row := make([]Cell, width)
		for x := 0; x < width; x++ {
			if x < len(l) {
				row[x] = Cell(l[x])
			} else {
				row[x] = Empty
			}
		}
		grid[i] = row
	}
	// The input is read top-down; flip so row 0 is the bottom row, per the
	// coordinate convention in spec.md §3.
	for i, j := 0, len(grid)-1; i < j; i, j = i+1, j-1 {
		grid[i], grid[j] = grid[j], grid[i]
	}

	w := World{
		Grid:        grid,
		Width:       width,
		Height:      height,
		Lambdas:     map[Point]struct{}{},
		Beards:      map[Point]struct{}{},
		Trampolines: map[Point]Point{},
		Water:       -1,
		Flooding:    0,
		Waterproof:  10,
		BeardGrowth: 25,
		NumRazors:   0,
		Lift:        Point{-1, -1},
	}

	haveRobot, haveLift := false, false
	sourcePos := map[byte]Point{}
	targetPos := map[byte]Point{}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := grid[y][x]
			switch {
			case c == RobotCell:
				w.Robot, haveRobot = Point{x, y}, true
			case c == Lambda:
				w.Lambdas[Point{x, y}] = struct{}{}
			case c == Rock:
				w.Rocks = append(w.Rocks, Point{x, y})
			case c == ClosedLift || c == OpenLift:
				w.Lift, haveLift = Point{x, y}, true
			case c == Beard:
				w.Beards[Point{x, y}] = struct{}{}
			case c.IsTrampolineSource():
				sourcePos[byte(c)] = Point{x, y}
			case c.IsTrampolineTarget():
				targetPos[byte(c)] = Point{x, y}
			}
		}
	}
	if !haveRobot {
		return World{}, errors.New("lifter/world: map has no robot")
	}
	if !haveLift {
		return World{}, errors.New("lifter/world: map has no lift")
	}
	sortRocks(w.Rocks)
	w.InitialLambdas = len(w.Lambdas)

	type pair struct{ src, dst byte }
	var pairs []pair
	for _, line := range metaLines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "Water":
			if n, ok := metaInt(fields); ok {
				w.Water = n - 1
			} else {
				log.Warn().Str("line", line).Msg("lifter/world: malformed Water metadata")
			}
		case "Flooding":
			if n, ok := metaInt(fields); ok {
				w.Flooding = n
			} else {
				log.Warn().Str("line", line).Msg("lifter/world: malformed Flooding metadata")
			}
		case "Waterproof":
			if n, ok := metaInt(fields); ok {
				w.Waterproof = n
			} else {
				log.Warn().Str("line", line).Msg("lifter/world: malformed Waterproof metadata")
			}
		case "Growth":
			if n, ok := metaInt(fields); ok {
				w.BeardGrowth = n
			} else {
				log.Warn().Str("line", line).Msg("lifter/world: malformed Growth metadata")
			}
		case "Razors":
			if n, ok := metaInt(fields); ok {
				w.NumRazors = n
			} else {
				log.Warn().Str("line", line).Msg("lifter/world: malformed Razors metadata")
			}
		case "Trampoline":
			if len(fields) == 4 && fields[2] == "targets" && len(fields[1]) == 1 && len(fields[3]) == 1 {
				pairs = append(pairs, pair{fields[1][0], fields[3][0]})
			} else {
				log.Warn().Str("line", line).Msg("lifter/world: malformed Trampoline metadata")
			}
		default:
			log.Warn().Str("line", line).Msg("lifter/world: unknown metadata key")
		}
	}
	for _, p := range pairs {
		src, ok1 := sourcePos[p.src]
		dst, ok2 := targetPos[p.dst]
		if !ok1 || !ok2 {
			log.Warn().Str("source", string(p.src)).Str("target", string(p.dst)).
				Msg("lifter/world: trampoline metadata references missing label")
			continue
		}
		w.Trampolines[src] = dst
	}

	return w, nil
}

func metaInt(fields []string) (int, bool) {
	if len(fields) != 2 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
