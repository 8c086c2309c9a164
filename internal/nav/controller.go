package nav

import (
	"math"

	"retroarcade/internal/entities"
	"retroarcade/internal/maze"
)

type Outcome int

const (
	// OutcomeMoved means the agent advanced along its direction.
	OutcomeMoved Outcome = iota
	// OutcomeSnapped means the direction was blocked; the agent was put
	// back on its cell center, chose a new direction and advanced along it.
	OutcomeSnapped
	// OutcomeWalledIn means no direction is open from the agent's cell.
	OutcomeWalledIn
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSnapped:
		return "snapped"
	case OutcomeWalledIn:
		return "walled-in"
	default:
		return "moved"
	}
}

// Result describes one Step.
type Result struct {
	Outcome Outcome
	From    maze.Cell
	To      maze.Cell
	Decided bool
	Wrapped bool
}

// Controller moves agents through a grid one tick at a time.
type Controller struct {
	Grid    *maze.Grid
	Rng     maze.Rand
	tracker Tracker
}

func NewController(g *maze.Grid, rng maze.Rand) *Controller {
	return &Controller{Grid: g, Rng: rng, tracker: Tracker{Grid: g}}
}

// Step advances a by speed pixels, consulting p at decision points.
func (c *Controller) Step(a *entities.Agent, speed float64, p Policy) Result {
	c.tracker.Sync(a)
	res := Result{From: a.Cell}

	blocked := c.Blocked(a)
	if blocked || (!a.Decided() && c.tracker.Centered(a, speed)) {
		c.tracker.Snap(a)
		dir, ok := Decide(p, Situation{Grid: c.Grid, Cell: a.Cell, Dir: a.Dir, Rng: c.Rng}, a.Pending)
		if !ok {
			res.Outcome = OutcomeWalledIn
			res.To = a.Cell
			return res
		}
		if dir == a.Pending {
			a.Pending = maze.DirNone
		}
		a.Dir = dir
		a.MarkDecided()
		res.Decided = true
	}

	// The chosen direction is always open, so a snapped agent moves on in
	// the same tick.
	c.advance(a, speed)
	res.Wrapped = c.wrap(a)
	c.tracker.Sync(a)
	res.Outcome = OutcomeMoved
	if blocked {
		res.Outcome = OutcomeSnapped
	}
	res.To = a.Cell
	return res
}

// Blocked reports whether advancing a would carry it into a cell it may
// not enter: its direction is closed and it has reached or passed the
// center of its cell. An agent still approaching the center of a dead-end
// cell is not blocked yet.
func (c *Controller) Blocked(a *entities.Agent) bool {
	cell := c.Grid.CellAt(a.X, a.Y)
	if c.Grid.CanStep(cell, a.Dir) {
		return false
	}
	dx, dy := maze.DirDelta(a.Dir)
	cx, cy := c.Grid.Center(cell)
	ahead := (cx-a.X)*float64(dx) + (cy-a.Y)*float64(dy)
	return ahead <= 0
}

// advance moves along the agent's direction but never past the next cell
// center ahead, so no decision point is skipped.
func (c *Controller) advance(a *entities.Agent, speed float64) {
	dx, dy := maze.DirDelta(a.Dir)
	cs := float64(c.Grid.CellSize)
	switch {
	case dx != 0:
		a.X = approach(a.X, float64(dx), speed, cs)
	case dy != 0:
		a.Y = approach(a.Y, float64(dy), speed, cs)
	}
}

func approach(pos, sign, speed, cs float64) float64 {
	k := (pos - cs/2) / cs
	var next float64
	if sign > 0 {
		next = (math.Floor(k)+1)*cs + cs/2
	} else {
		next = (math.Ceil(k)-1)*cs + cs/2
	}
	if math.Abs(next-pos) <= speed {
		return next
	}
	return pos + sign*speed
}

// wrap teleports an agent that left the grid horizontally to the opposite
// edge. Vertical bounds never wrap.
func (c *Controller) wrap(a *entities.Agent) bool {
	w := c.Grid.PixelWidth()
	switch {
	case a.X < 0:
		a.X = w
	case a.X > w:
		a.X = 0
	default:
		return false
	}
	return true
}
