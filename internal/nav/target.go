package nav

import (
	"retroarcade/internal/entities"
	"retroarcade/internal/maze"
)

// NearestGoal returns the index of the unconsumed goal closest to from by
// straight-line distance. Power pellet distances are multiplied by
// discount so they win against comparably distant dots. Ties keep the
// earlier goal.
func NearestGoal(goals *entities.GoalSet, from maze.Cell, discount float64) (int, bool) {
	best, found := -1, false
	bestDist := 0.0
	goals.Each(func(i int, g entities.Goal) {
		d := from.Dist(g.Cell)
		if g.Power {
			d *= discount
		}
		if !found || d < bestDist {
			best, bestDist, found = i, d, true
		}
	})
	return best, found
}

// NearestAgent returns the index of the cell in cells closest to from.
func NearestAgent(from maze.Cell, cells []maze.Cell) (int, bool) {
	best := -1
	bestDist := 0.0
	for i, c := range cells {
		if d := from.Dist(c); best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}
