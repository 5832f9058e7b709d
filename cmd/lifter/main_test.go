package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eklitzke-lifter/lifter/internal/config"
	"github.com/eklitzke-lifter/lifter/internal/planner"
	"github.com/eklitzke-lifter/lifter/internal/world"
)

func TestBuildPlannerSelectsByName(t *testing.T) {
	w, err := world.Read(strings.NewReader("R.\\L\n"))
	require.NoError(t, err)

	cases := map[string]interface{}{
		"weighted": &planner.Weighted{},
		"tree":     &planner.Tree{},
		"ucb1":     &planner.UCB1{},
		"":         &planner.Tree{}, // unrecognized/empty falls back to tree
	}
	for name, want := range cases {
		cfg := config.Defaults()
		cfg.Planner = name
		got := buildPlanner(w, cfg)
		assert.IsType(t, want, got)
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["solve"])
	assert.True(t, names["version"])
}

func TestVersionCommandPrintsVersion(t *testing.T) {
	root := newRootCmd()
	var out strings.Builder
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), version)
}
