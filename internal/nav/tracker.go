package nav

import (
	"math"

	"retroarcade/internal/entities"
	"retroarcade/internal/maze"
)

// maxTolerance caps the centering window at one pixel.
const maxTolerance = 1.0

// Tracker keeps an agent's discrete cell in sync with its pixel position.
type Tracker struct {
	Grid *maze.Grid
}

// Tolerance is half the distance travelled in one tick so a moving agent
// can never be centered twice in a row, capped at maxTolerance.
func Tolerance(speed float64) float64 {
	eps := speed / 2
	if eps > maxTolerance {
		eps = maxTolerance
	}
	if eps <= 0 {
		eps = 1e-9
	}
	return eps
}

// Sync recomputes the agent's cell and reports whether it changed.
func (t Tracker) Sync(a *entities.Agent) bool {
	return a.Enter(t.Grid.CellAt(a.X, a.Y))
}

// Centered reports whether the agent sits on its cell's center within the
// tolerance for speed.
func (t Tracker) Centered(a *entities.Agent, speed float64) bool {
	cx, cy := t.Grid.Center(a.Cell)
	eps := Tolerance(speed)
	return math.Abs(a.X-cx) < eps && math.Abs(a.Y-cy) < eps
}

// Snap moves the agent onto the exact center of its current cell.
func (t Tracker) Snap(a *entities.Agent) {
	a.X, a.Y = t.Grid.Center(a.Cell)
}
