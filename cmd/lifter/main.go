// Command lifter is the puzzle solver's CLI: solve a single map, or print
// the build version. Flags are bound through Viper so LIFTER_* environment
// variables and a --config yaml file layer in underneath explicit flags,
// per internal/config. Batch solving across many map files concurrently is
// cmd/bench, a separate binary.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "lifter",
		Short: "A Lambda Lifter puzzle solver",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a lifter.yaml config file")

	root.AddCommand(newSolveCmd(&configPath))
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the lifter version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
}
