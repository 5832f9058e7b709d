// Package heuristic implements the cheap oracles the planner layer uses to
// propose candidate action sequences: an A* grid pathfinder and a set of
// choice generators built on top of it. None of this package simulates
// physics; World.Step remains the only source of truth for what a sequence
// of actions actually does.
package heuristic

import (
	"container/heap"

	"github.com/eklitzke-lifter/lifter/internal/world"
)

// terrainCost mirrors original_source/bot.py's `scores` table: earth is
// slow to dig through, lambdas are free, empty space is cheap, everything
// else defaults to 5.
func terrainCost(c world.Cell) int {
	switch c {
	case world.Earth:
		return 4
	case world.Lambda:
		return 0
	case world.Empty:
		return 2
	default:
		return 5
	}
}

func impassable(c world.Cell) bool {
	return c == world.Wall || c == world.Rock || c == world.ClosedLift || c.IsTrampolineTarget()
}

func manhattan(a, b world.Point) int {
	return absInt(a.X-b.X) + absInt(a.Y-b.Y)
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

type pqItem struct {
	p        world.Point
	priority int // g + h
	index    int
}

type priorityQueue []*pqItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	return pq[i].priority < pq[j].priority
}
func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index, pq[j].index = i, j
}
func (pq *priorityQueue) Push(x any) {
	item := x.(*pqItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}
func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}

var fourConnected = [4]world.Point{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

// AStar finds a 4-connected route from "from" to "to", weighted by
// terrainCost and guided by the Manhattan-distance heuristic. It returns the
// route as a compact string of L/R/U/D actions and false if no route
// exists. A downward step is refused when the cell two rows above the
// destination holds a rock, mirroring original_source/bot.py's
// safe_to_go_down anti-crush check.
func AStar(w world.World, from, to world.Point) (string, bool) {
	if from == to {
		return "", true
	}

	gScore := map[world.Point]int{from: 0}
	cameFrom := map[world.Point]world.Point{}
	cameVia := map[world.Point]world.Action{}

	pq := &priorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &pqItem{p: from, priority: manhattan(from, to)})
	visited := map[world.Point]bool{}

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(*pqItem).p
		if visited[cur] {
			continue
		}
		visited[cur] = true
		if cur == to {
			return reconstruct(cameFrom, cameVia, from, to), true
		}

		for _, d := range fourConnected {
			next := world.Point{X: cur.X + d.X, Y: cur.Y + d.Y}
			if next.X < 0 || next.Y < 0 || next.X >= w.Width || next.Y >= w.Height {
				continue
			}
			if visited[next] {
				continue
			}
			cell := w.At(next.X, next.Y)
			if impassable(cell) {
				continue
			}
			if d.Y == -1 && w.InBounds(next.X, next.Y+2) && w.At(next.X, next.Y+2) == world.Rock {
				continue // anti-crush: don't step under a rock poised to fall
			}

			g := gScore[cur] + terrainCost(cell)
			if old, ok := gScore[next]; ok && g >= old {
				continue
			}
			gScore[next] = g
			cameFrom[next] = cur
			cameVia[next] = actionFor(d)
			heap.Push(pq, &pqItem{p: next, priority: g + manhattan(next, to)})
		}
	}
	return "", false
}

func actionFor(d world.Point) world.Action {
	switch {
	case d.X == 1:
		return world.Right
	case d.X == -1:
		return world.Left
	case d.Y == 1:
		return world.Up
	default:
		return world.Down
	}
}

func reconstruct(cameFrom map[world.Point]world.Point, cameVia map[world.Point]world.Action, from, to world.Point) string {
	var actions []byte
	cur := to
	for cur != from {
		actions = append(actions, byte(cameVia[cur]))
		cur = cameFrom[cur]
	}
	// reverse
	for i, j := 0, len(actions)-1; i < j; i, j = i+1, j-1 {
		actions[i], actions[j] = actions[j], actions[i]
	}
	return string(actions)
}
