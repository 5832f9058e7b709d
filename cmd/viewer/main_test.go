package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eklitzke-lifter/lifter/internal/world"
)

func TestFramesFromPathProducesOneFramePerStep(t *testing.T) {
	w, err := world.Read(strings.NewReader("R.\\L\n"))
	require.NoError(t, err)

	frames := framesFromPath(w, "RRR")
	require.Len(t, frames, 4) // start + 3 steps
	assert.Equal(t, world.ReachedLift, frames[3].State)
}

func TestFramesFromPathStopsOnInvalidAction(t *testing.T) {
	w, err := world.Read(strings.NewReader("R* #L\n"))
	require.NoError(t, err)

	frames := framesFromPath(w, "RR") // second Right is illegal
	assert.Len(t, frames, 2)          // start + one successful push
}

func TestCellColorCoversEveryPaletteEntry(t *testing.T) {
	for _, c := range []world.Cell{world.Wall, world.Earth, world.Rock, world.Lambda, world.ClosedLift, world.OpenLift, world.RobotCell, world.Beard, world.Razor} {
		_, ok := cellColor(c)
		assert.True(t, ok, "cell %q should have a palette entry", c)
	}
	_, ok := cellColor(world.Empty)
	assert.False(t, ok)
}
