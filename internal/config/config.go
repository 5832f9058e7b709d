// Package config loads layered run configuration the way cmd/lifter needs
// it: command-line flags override environment variables (LIFTER_*), which
// override a lifter.yaml file, which override built-in defaults. Grounded on
// niceyeti-tabular's viper.New()-per-call pattern (reinforcement/learning.go's
// FromYaml) rather than viper's package-global singleton, so a test can
// build an isolated Config without touching process environment.
package config

import (
	"os"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is every knob a solve run reads. Field names match the flag names
// (kebab-cased) one-for-one so Bind can stay a single mechanical pass.
type Config struct {
	Planner     string        // "weighted", "tree", or "ucb1"
	Seed        int64         // roulette/rollout RNG seed
	Deadline    time.Duration // 0 disables the deadline
	MaxIters    int           // 0 disables the iteration cap
	DepthCap    int           // UCB1 rollout depth
	LogLevel    string        // zerolog level name
	ReportURL   string        // empty disables score reporting
	OnBestOnly  bool          // log score improvements at info instead of debug; other iterations are never logged
	InitialPath string        // pre-applied to the root world before solving
}

// Defaults returns the configuration a bare `lifter solve map.txt` runs with.
func Defaults() Config {
	return Config{
		Planner:  "tree",
		Seed:     1,
		Deadline: 20 * time.Second,
		MaxIters: 0,
		DepthCap: 6,
		LogLevel: "info",
	}
}

// Bind registers every Config field as a pflag flag on fs, with the given
// defaults, and returns a function that materializes the final layered
// Config once fs has been parsed: flags beat LIFTER_* environment
// variables, which beat a lifter.yaml found via configPath, which beat def.
func Bind(fs *pflag.FlagSet, def Config) func(configPath string) (Config, error) {
	fs.String("planner", def.Planner, "search strategy: weighted, tree, or ucb1")
	fs.Int64("seed", def.Seed, "random seed for stochastic planners")
	fs.Duration("deadline", def.Deadline, "wall-clock budget for the solve (0 disables)")
	fs.Int("max-iters", def.MaxIters, "planner iteration cap (0 disables)")
	fs.Int("depth-cap", def.DepthCap, "UCB1 rollout depth")
	fs.String("log-level", def.LogLevel, "zerolog level: debug, info, warn, error")
	fs.String("report-url", def.ReportURL, "HTTP endpoint to POST scores to (empty disables)")
	fs.Bool("on-best-only", def.OnBestOnly, "log score improvements at info level instead of debug")
	fs.String("initial-path", def.InitialPath, "action string pre-applied to the map before solving")

	return func(configPath string) (Config, error) {
		vp := viper.New()
		vp.SetEnvPrefix("LIFTER")
		vp.AutomaticEnv()
		if configPath != "" {
			if _, statErr := os.Stat(configPath); statErr == nil {
				vp.SetConfigFile(configPath)
				if err := vp.ReadInConfig(); err != nil {
					return Config{}, err
				}
			}
		}
		if err := vp.BindPFlags(fs); err != nil {
			return Config{}, err
		}

		return Config{
			Planner:     vp.GetString("planner"),
			Seed:        vp.GetInt64("seed"),
			Deadline:    vp.GetDuration("deadline"),
			MaxIters:    vp.GetInt("max-iters"),
			DepthCap:    vp.GetInt("depth-cap"),
			LogLevel:    vp.GetString("log-level"),
			ReportURL:   vp.GetString("report-url"),
			OnBestOnly:  vp.GetBool("on-best-only"),
			InitialPath: vp.GetString("initial-path"),
		}, nil
	}
}
