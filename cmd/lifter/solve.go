package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/eklitzke-lifter/lifter/internal/config"
	"github.com/eklitzke-lifter/lifter/internal/driver"
	"github.com/eklitzke-lifter/lifter/internal/logging"
	"github.com/eklitzke-lifter/lifter/internal/planner"
	"github.com/eklitzke-lifter/lifter/internal/report"
	"github.com/eklitzke-lifter/lifter/internal/world"

	"github.com/rs/zerolog/log"
)

func newSolveCmd(configPath *string) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "solve <mapfile>",
		Short: "Solve a single Lambda Lifter map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			materialize := config.Bind(cmd.Flags(), config.Defaults())
			cfg, err := materialize(*configPath)
			if err != nil {
				return fmt.Errorf("lifter: loading config: %w", err)
			}
			logging.Setup(cfg.LogLevel)
			return runSolve(cmd, args[0], cfg, verbose)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print the final map render")
	return cmd
}

func runSolve(cmd *cobra.Command, mapPath string, cfg config.Config, verbose bool) error {
	f, err := os.Open(mapPath)
	if err != nil {
		return fmt.Errorf("lifter: %w", err)
	}
	defer f.Close()

	w, err := world.Read(f)
	if err != nil {
		return fmt.Errorf("lifter: %w", err)
	}
	w = driver.SeedInitialPath(w, cfg.InitialPath)

	p := buildPlanner(w, cfg)

	var onBest func(world.World, int)
	if !cfg.OnBestOnly {
		onBest = func(_ world.World, score int) {
			log.Debug().Int("score", score).Msg("lifter: improved")
		}
	} else {
		onBest = func(_ world.World, score int) {
			log.Info().Int("score", score).Msg("lifter: new best")
		}
	}

	res := driver.Run(context.Background(), driver.Config{
		Deadline: cfg.Deadline,
		MaxIters: cfg.MaxIters,
	}, p, onBest)

	if !res.Found {
		return fmt.Errorf("lifter: planner %q found no candidate solution", cfg.Planner)
	}

	log.Info().
		Str("map", mapPath).
		Str("planner", cfg.Planner).
		Int("score", res.Score).
		Int("iterations", res.Iterations).
		Str("stopped_by", res.StoppedBy).
		Str("state", res.Best.State.String()).
		Msg("lifter: solve complete")

	outPath := res.OutputPath()
	fmt.Fprintf(cmd.OutOrStdout(), "score=%d moves=%d state=%s path=%s\n",
		res.Score, res.Best.NumMoves, res.Best.State, outPath)
	if verbose {
		fmt.Fprintln(cmd.OutOrStdout(), res.Best.Render())
	}

	if cfg.ReportURL != "" {
		client := report.New(cfg.ReportURL)
		client.Send(context.Background(), report.Result{
			Map:      mapPath,
			Planner:  cfg.Planner,
			Score:    res.Score,
			Moves:    res.Best.NumMoves,
			State:    res.Best.State.String(),
			Path:     outPath,
			Lambdas:  res.Best.LambdasCollected,
			SolvedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return nil
}

func buildPlanner(w world.World, cfg config.Config) planner.Planner {
	switch cfg.Planner {
	case "weighted":
		return planner.NewWeighted(w, cfg.Seed)
	case "ucb1":
		return planner.NewUCB1(w, cfg.DepthCap, cfg.Seed)
	default:
		return planner.NewTree(w)
	}
}
