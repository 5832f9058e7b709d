// Package driver runs a planner to a deadline or iteration cap, reporting
// every improving iteration through a callback. The deadline uses a plain
// time.Timer rather than a SIGALRM-style signal: Go's signal package only
// delivers OS signals, and a portable wall-clock budget is a timer's job,
// not a signal handler's — see DESIGN.md.
package driver

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/eklitzke-lifter/lifter/internal/plan"
	"github.com/eklitzke-lifter/lifter/internal/planner"
	"github.com/eklitzke-lifter/lifter/internal/world"
)

// Config bounds a single run.
type Config struct {
	Deadline time.Duration // 0 disables the wall-clock budget
	MaxIters int           // 0 disables the iteration cap
}

// SeedInitialPath replays path against w and returns the resulting world,
// stopping early (without error) at the first action that would be illegal
// — the root a planner is seeded with after a pre-applied path, per
// spec.md §4.6.
func SeedInitialPath(w world.World, path string) world.World {
	if path == "" {
		return w
	}
	final, _ := plan.Plan{Start: w, Actions: path}.Execute()
	return final
}

// Result is what a run produced.
type Result struct {
	Best       world.World
	Score      int
	Found      bool
	Iterations int
	StoppedBy  string // "exhausted", "deadline", "max_iters", or "interrupt"
}

// OutputPath is the string a CLI should emit on exit: the best world's full
// path, with a trailing Abort appended if that world is still running
// (spec.md §4.6 — a best-known-but-incomplete run is reported as if it had
// aborted there, since no further moves from it were ever committed).
func (r Result) OutputPath() string {
	if !r.Found {
		return ""
	}
	if r.Best.IsRunning() {
		return r.Best.Path + string(byte(world.Abort))
	}
	return r.Best.Path
}

// Run iterates p until it stops offering progress, the deadline elapses,
// MaxIters is reached, or the process receives SIGINT. onBest, if non-nil,
// is called every time Best()'s score improves.
func Run(ctx context.Context, cfg Config, p planner.Planner, onBest func(world.World, int)) Result {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	var timer *time.Timer
	var deadlineC <-chan time.Time
	if cfg.Deadline > 0 {
		timer = time.NewTimer(cfg.Deadline)
		defer timer.Stop()
		deadlineC = timer.C
	}

	res := Result{StoppedBy: "exhausted"}
	lastScore := 0
	lastSet := false

	for {
		select {
		case <-ctx.Done():
			res.StoppedBy = "interrupt"
			return finalize(p, res)
		case <-deadlineC:
			res.StoppedBy = "deadline"
			return finalize(p, res)
		default:
		}

		if cfg.MaxIters > 0 && res.Iterations >= cfg.MaxIters {
			res.StoppedBy = "max_iters"
			return finalize(p, res)
		}

		more := p.Iterate()

		if best, score, ok := p.Best(); ok && (!lastSet || score > lastScore) {
			lastScore, lastSet = score, true
			if onBest != nil {
				onBest(best, score)
			}
		}

		if !more {
			return finalize(p, res)
		}
		res.Iterations++
	}
}

func finalize(p planner.Planner, res Result) Result {
	best, score, ok := p.Best()
	res.Best, res.Score, res.Found = best, score, ok
	return res
}
