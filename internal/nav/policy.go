package nav

import (
	"retroarcade/internal/entities"
	"retroarcade/internal/maze"
)

// Situation is what a policy sees at a decision point.
type Situation struct {
	Grid *maze.Grid
	Cell maze.Cell
	Dir  maze.Direction
	Rng  maze.Rand
}

// Policy picks one direction out of a non-empty candidate set with at
// least two members.
type Policy interface {
	Choose(s Situation, candidates []maze.Direction) maze.Direction
}

// Candidates lists the enterable directions from cell in Right, Down,
// Left, Up order.
func Candidates(g *maze.Grid, cell maze.Cell) []maze.Direction {
	out := make([]maze.Direction, 0, 4)
	for _, d := range maze.Cardinals {
		if g.CanStep(cell, d) {
			out = append(out, d)
		}
	}
	return out
}

// Decide applies the decision rules shared by every agent: no candidates
// means the agent is walled in, a single candidate is taken as is, a
// pending request wins when enterable, otherwise the policy chooses.
func Decide(p Policy, s Situation, pending maze.Direction) (maze.Direction, bool) {
	candidates := Candidates(s.Grid, s.Cell)
	switch len(candidates) {
	case 0:
		return maze.DirNone, false
	case 1:
		return candidates[0], true
	}
	if pending != maze.DirNone && contains(candidates, pending) {
		return pending, true
	}
	return p.Choose(s, candidates), true
}

// GoalSeek steers the player toward the nearest unconsumed goal.
type GoalSeek struct {
	Goals          *entities.GoalSet
	PelletDiscount float64
}

func (p GoalSeek) Choose(s Situation, candidates []maze.Direction) maze.Direction {
	i, ok := NearestGoal(p.Goals, s.Cell, p.PelletDiscount)
	if !ok {
		return Roam{}.Choose(s, candidates)
	}
	return closest(s.Cell, p.Goals.At(i).Cell, candidates)
}

// Pursue chases a target cell, normally the player's.
type Pursue struct {
	Target maze.Cell
}

func (p Pursue) Choose(s Situation, candidates []maze.Direction) maze.Direction {
	return closest(s.Cell, p.Target, candidates)
}

// Flee is the empowered-mode ghost behaviour: a random turn that never
// doubles back unless nothing else is open.
type Flee struct{}

func (Flee) Choose(s Situation, candidates []maze.Direction) maze.Direction {
	return randomNoReverse(s, candidates)
}

// Roam wanders like Flee; it is used when there is nothing to seek.
type Roam struct{}

func (Roam) Choose(s Situation, candidates []maze.Direction) maze.Direction {
	return randomNoReverse(s, candidates)
}

// closest returns the candidate whose resulting cell is nearest to target.
// Strict comparison keeps the first candidate on ties.
func closest(from, target maze.Cell, candidates []maze.Direction) maze.Direction {
	best := candidates[0]
	bestDist := from.Step(best).Dist(target)
	for _, d := range candidates[1:] {
		if dist := from.Step(d).Dist(target); dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return best
}

func randomNoReverse(s Situation, candidates []maze.Direction) maze.Direction {
	back := s.Dir.Reverse()
	forward := make([]maze.Direction, 0, len(candidates))
	for _, d := range candidates {
		if d != back {
			forward = append(forward, d)
		}
	}
	if len(forward) == 0 {
		forward = candidates
	}
	return forward[s.Rng.Intn(len(forward))]
}

func contains(ds []maze.Direction, d maze.Direction) bool {
	for _, x := range ds {
		if x == d {
			return true
		}
	}
	return false
}
