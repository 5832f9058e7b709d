// Command viewer plays back a solved run frame by frame using Ebiten,
// adapted from the Wa-Tor simulation's view_ebiten.go: the same
// Game/Update/Draw/Layout shape, repointed at the world's cells (read with
// World.At) instead of fish/shark sprites.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/eklitzke-lifter/lifter/internal/world"
)

const pixelScale = 16

var (
	colBg     = color.RGBA{20, 20, 24, 255}
	colWall   = color.RGBA{90, 90, 100, 255}
	colEarth  = color.RGBA{130, 90, 40, 255}
	colRock   = color.RGBA{150, 150, 150, 255}
	colLambda = color.RGBA{255, 220, 40, 255}
	colLift   = color.RGBA{80, 200, 120, 255}
	colLiftOn = color.RGBA{40, 255, 100, 255}
	colRobot  = color.RGBA{220, 60, 60, 255}
	colBeard  = color.RGBA{90, 60, 30, 255}
	colRazor  = color.RGBA{200, 200, 255, 255}
)

func cellColor(c world.Cell) (color.Color, bool) {
	switch c {
	case world.Wall:
		return colWall, true
	case world.Earth:
		return colEarth, true
	case world.Rock:
		return colRock, true
	case world.Lambda:
		return colLambda, true
	case world.ClosedLift:
		return colLift, true
	case world.OpenLift:
		return colLiftOn, true
	case world.RobotCell:
		return colRobot, true
	case world.Beard:
		return colBeard, true
	case world.Razor:
		return colRazor, true
	default:
		return nil, false
	}
}

// game steps through a precomputed sequence of frames, one every few ticks
// so the solve is watchable rather than instant.
type game struct {
	frames []world.World
	index  int
	tick   int
}

func (g *game) Update() error {
	g.tick++
	if g.tick%15 != 0 {
		return nil
	}
	if g.index < len(g.frames)-1 {
		g.index++
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(colBg)
	w := g.frames[g.index]
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			c, ok := cellColor(w.At(x, y))
			if !ok {
				continue
			}
			// Flip vertically: World's (0,0) is bottom-left, the screen's
			// (0,0) is top-left.
			sy := w.Height - 1 - y
			for dy := 0; dy < pixelScale; dy++ {
				for dx := 0; dx < pixelScale; dx++ {
					screen.Set(x*pixelScale+dx, sy*pixelScale+dy, c)
				}
			}
		}
	}
}

func (g *game) Layout(outW, outH int) (int, int) {
	w := g.frames[0]
	return w.Width * pixelScale, w.Height * pixelScale
}

func framesFromPath(start world.World, path string) []world.World {
	frames := []world.World{start}
	cur := start
	for _, b := range []byte(path) {
		next, err := cur.Step(world.Action(b))
		if err != nil {
			break
		}
		cur = next
		frames = append(frames, cur)
	}
	return frames
}

func main() {
	mapPath := flag.String("map", "", "path to a map file")
	path := flag.String("path", "", "action sequence to replay (L/R/U/D/W/A/S)")
	flag.Parse()

	if *mapPath == "" {
		fmt.Fprintln(os.Stderr, "usage: viewer --map <file> [--path <actions>]")
		os.Exit(2)
	}

	f, err := os.Open(*mapPath)
	if err != nil {
		log.Fatalf("viewer: %v", err)
	}
	defer f.Close()

	start, err := world.Read(f)
	if err != nil {
		log.Fatalf("viewer: %v", err)
	}

	replayPath := *path
	if replayPath == "" {
		replayPath = strings.TrimSpace(start.Path)
	}

	frames := framesFromPath(start, replayPath)
	g := &game{frames: frames}

	ebiten.SetWindowSize(start.Width*pixelScale, start.Height*pixelScale)
	ebiten.SetWindowTitle(fmt.Sprintf("lifter viewer | %s | %d frames", *mapPath, len(frames)))
	if err := ebiten.RunGame(g); err != nil {
		log.Fatalf("viewer: %v", err)
	}
}
