package world

import "strings"

// Render produces the textual depiction of the grid, top row first, the way
// a map file reads — the inverse of Read's bottom-origin storage. This is
// the one stable rendering interface external tools (the CLI's --verbose
// output) are allowed to depend on, per spec.md §1.
func (w World) Render() string {
	var sb strings.Builder
	for y := w.Height - 1; y >= 0; y-- {
		for _, c := range w.Grid[y] {
			sb.WriteByte(byte(c))
		}
		if y > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func (w World) String() string {
	return w.Render()
}
