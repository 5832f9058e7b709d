package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMap(t *testing.T, text string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "map.txt")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestSolveOneSolvesCorridor(t *testing.T) {
	path := writeMap(t, "R.\\L\n")
	res := solveOne(context.Background(), path, "tree", 1, time.Second, 6)
	require.NoError(t, res.err)
	assert.True(t, res.found)
	assert.Equal(t, 72, res.score)
}

func TestSolveOneReportsMissingFile(t *testing.T) {
	res := solveOne(context.Background(), "/nonexistent/map.txt", "tree", 1, time.Second, 6)
	assert.Error(t, res.err)
}
