package entities

import "retroarcade/internal/maze"

type Behavior int

const (
	BehaviorPursue Behavior = iota
	BehaviorFlee
)

func (b Behavior) String() string {
	if b == BehaviorFlee {
		return "flee"
	}
	return "pursue"
}

type Ghost struct {
	Agent
	Name     string
	Behavior Behavior
	Home     maze.Cell
}
