// Command bench solves a batch of independent map files concurrently. This
// is the only place in the module goroutines touch planner work, and even
// then each goroutine owns a fully separate World/Planner: spec.md's
// single-threaded-core rule is about never parallelizing within one map's
// search, not about the process as a whole. Grounded on
// niceyeti-tabular/tabular/server/fastview/client.go's errgroup.WithContext
// pattern, generalized from one group fanning out 2 fixed goroutines to one
// fanning out across however many map files were given — the independent-
// map-files analogue of the teacher's StepPar spatial decomposition, which
// parallelized across grid regions of a single board instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/eklitzke-lifter/lifter/internal/driver"
	"github.com/eklitzke-lifter/lifter/internal/logging"
	"github.com/eklitzke-lifter/lifter/internal/planner"
	"github.com/eklitzke-lifter/lifter/internal/world"

	"github.com/rs/zerolog/log"
)

type outcome struct {
	mapPath string
	score   int
	found   bool
	err     error
}

// solveOne runs a single map file end to end: read, build the requested
// planner, drive it to its deadline. It never touches shared state, so
// running many of these concurrently needs no locking beyond collecting
// results.
func solveOne(ctx context.Context, mapPath, plannerName string, seed int64, deadline time.Duration, depthCap int) outcome {
	f, err := os.Open(mapPath)
	if err != nil {
		return outcome{mapPath: mapPath, err: err}
	}
	defer f.Close()

	w, err := world.Read(f)
	if err != nil {
		return outcome{mapPath: mapPath, err: err}
	}

	var p planner.Planner
	switch plannerName {
	case "weighted":
		p = planner.NewWeighted(w, seed)
	case "ucb1":
		p = planner.NewUCB1(w, depthCap, seed)
	default:
		p = planner.NewTree(w)
	}

	res := driver.Run(ctx, driver.Config{Deadline: deadline}, p, nil)
	return outcome{mapPath: mapPath, score: res.Score, found: res.Found}
}

func main() {
	plannerName := flag.String("planner", "tree", "search strategy: weighted, tree, or ucb1")
	seed := flag.Int64("seed", 1, "random seed for stochastic planners")
	deadline := flag.Duration("deadline", 10*time.Second, "per-map wall-clock budget")
	depthCap := flag.Int("depth-cap", 6, "UCB1 rollout depth")
	workers := flag.Int("workers", 4, "maximum concurrent map solves")
	logLevel := flag.String("log-level", "info", "zerolog level")
	flag.Parse()

	logging.Setup(*logLevel)

	mapPaths := flag.Args()
	if len(mapPaths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: bench [flags] <mapfile...>")
		os.Exit(2)
	}

	group, ctx := errgroup.WithContext(context.Background())
	group.SetLimit(*workers)

	results := make([]outcome, len(mapPaths))
	var mu sync.Mutex

	for i, mp := range mapPaths {
		i, mp := i, mp
		group.Go(func() error {
			res := solveOne(ctx, mp, *plannerName, *seed, *deadline, *depthCap)
			mu.Lock()
			results[i] = res
			mu.Unlock()
			if res.err != nil {
				log.Warn().Err(res.err).Str("map", mp).Msg("bench: solve failed")
			} else {
				log.Info().Str("map", mp).Int("score", res.score).Bool("found", res.found).Msg("bench: solve complete")
			}
			return nil
		})
	}
	_ = group.Wait()

	total, solved := 0, 0
	for _, r := range results {
		if r.err == nil {
			total += r.score
			solved++
		}
	}
	fmt.Printf("solved %d maps, total score %d\n", solved, total)
}
