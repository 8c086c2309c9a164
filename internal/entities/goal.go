package entities

import "retroarcade/internal/maze"

// Goal is a dot or power pellet the player seeks.
type Goal struct {
	Cell     maze.Cell
	Power    bool
	Consumed bool
}

// GoalSet holds goals with liveness flags; consumed goals stay in place so
// indexes remain stable for the whole session.
type GoalSet struct {
	goals     []Goal
	remaining int
}

func NewGoalSet(goals []Goal) *GoalSet {
	gs := &GoalSet{goals: make([]Goal, len(goals))}
	copy(gs.goals, goals)
	for i := range gs.goals {
		if !gs.goals[i].Consumed {
			gs.remaining++
		}
	}
	return gs
}

func (gs *GoalSet) Len() int       { return len(gs.goals) }
func (gs *GoalSet) Remaining() int { return gs.remaining }
func (gs *GoalSet) At(i int) Goal  { return gs.goals[i] }

// Consume marks goal i consumed. It reports whether the call changed
// anything.
func (gs *GoalSet) Consume(i int) bool {
	if i < 0 || i >= len(gs.goals) || gs.goals[i].Consumed {
		return false
	}
	gs.goals[i].Consumed = true
	gs.remaining--
	return true
}

// Reset marks every goal unconsumed again.
func (gs *GoalSet) Reset() {
	for i := range gs.goals {
		gs.goals[i].Consumed = false
	}
	gs.remaining = len(gs.goals)
}

// Each calls fn for every unconsumed goal.
func (gs *GoalSet) Each(fn func(i int, g Goal)) {
	for i, g := range gs.goals {
		if !g.Consumed {
			fn(i, g)
		}
	}
}

// Snapshot returns a copy of all goals, consumed or not.
func (gs *GoalSet) Snapshot() []Goal {
	out := make([]Goal, len(gs.goals))
	copy(out, gs.goals)
	return out
}
