package maze

import "github.com/pkg/errors"

// Rand is the random source threaded through decisions and placement.
// *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// PlaceSpawns picks n distinct walkable cells at random, each at least
// minDist cells from the avoid cells and from earlier picks. When no free
// cell is far enough, the farthest free cell is used instead.
func PlaceSpawns(g *Grid, rng Rand, n int, avoid []Cell, minDist float64) ([]Cell, error) {
	taken := make(map[Cell]bool, len(avoid)+n)
	anchors := append([]Cell(nil), avoid...)
	for _, c := range avoid {
		taken[c] = true
	}
	open := g.WalkableCells()
	out := make([]Cell, 0, n)
	for i := 0; i < n; i++ {
		var far []Cell
		var best Cell
		bestDist := -1.0
		for _, c := range open {
			if taken[c] {
				continue
			}
			d := clearance(c, anchors)
			if d >= minDist {
				far = append(far, c)
			}
			if d > bestDist {
				best, bestDist = c, d
			}
		}
		if bestDist < 0 {
			return out, errors.Wrapf(ErrNoSpawnCell, "placing agent %d of %d", i+1, n)
		}
		pick := best
		if len(far) > 0 {
			pick = far[rng.Intn(len(far))]
		}
		taken[pick] = true
		anchors = append(anchors, pick)
		out = append(out, pick)
	}
	return out, nil
}

// clearance is the distance from c to the nearest anchor; with no anchors
// every cell is infinitely clear.
func clearance(c Cell, anchors []Cell) float64 {
	nearest := -1.0
	for _, a := range anchors {
		if d := c.Dist(a); nearest < 0 || d < nearest {
			nearest = d
		}
	}
	if nearest < 0 {
		return 1e9
	}
	return nearest
}
