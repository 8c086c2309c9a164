package entities

import "retroarcade/internal/maze"

// Agent is an entity moving continuously through the maze grid.
type Agent struct {
	X, Y  float64
	Cell  maze.Cell
	Dir   maze.Direction
	Speed float64
	// Pending is an externally requested direction taken at the next
	// decision point when it is enterable.
	Pending maze.Direction

	decided     bool
	decidedCell maze.Cell
}

// PlaceAt puts the agent on the exact center of c and clears its
// direction and decision state.
func (a *Agent) PlaceAt(g *maze.Grid, c maze.Cell) {
	a.X, a.Y = g.Center(c)
	a.Cell = c
	a.Dir = maze.DirNone
	a.Pending = maze.DirNone
	a.decided = false
}

// Enter records the agent's discrete cell. Moving to another cell clears
// the decision latch.
func (a *Agent) Enter(c maze.Cell) bool {
	if c == a.Cell {
		return false
	}
	a.Cell = c
	a.decided = false
	return true
}

// Decided reports whether a direction was already chosen in the agent's
// current cell.
func (a *Agent) Decided() bool {
	return a.decided && a.decidedCell == a.Cell
}

func (a *Agent) MarkDecided() {
	a.decided = true
	a.decidedCell = a.Cell
}
