package tilemap

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"retroarcade/internal/entities"
	"retroarcade/internal/maze"
)

var (
	wallColor   = color.RGBA{R: 33, G: 33, B: 255, A: 255}
	pelletColor = color.RGBA{R: 255, G: 184, B: 174, A: 255}
)

// Draw renders walls and unconsumed goals at the grid's current cell size.
func Draw(dst *ebiten.Image, g *maze.Grid, goals *entities.GoalSet) {
	cs := float32(g.CellSize)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if g.CanEnter(maze.Cell{Row: r, Col: c}) {
				continue
			}
			vector.DrawFilledRect(dst, float32(c)*cs, float32(r)*cs, cs, cs, wallColor, false)
		}
	}
	goals.Each(func(_ int, gl entities.Goal) {
		x, y := g.Center(gl.Cell)
		radius := cs / 8
		if gl.Power {
			radius = cs / 4
		}
		vector.DrawFilledCircle(dst, float32(x), float32(y), radius, pelletColor, true)
	})
}
