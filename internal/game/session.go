package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"retroarcade/internal/config"
	"retroarcade/internal/entities"
	"retroarcade/internal/maze"
	"retroarcade/internal/nav"
	"retroarcade/internal/power"
	"retroarcade/internal/tilemap"
)

// spawnSearchRadius bounds the ring search around layout spawn hints.
const spawnSearchRadius = 6

var ghostNames = []string{"blinky", "inky", "pinky", "clyde"}

type Event int

const (
	EventDot Event = iota
	EventPowerPellet
	EventPowerExpired
	EventGhostEaten
	EventCaught
	EventLevelCleared
)

type DiagnosticKind int

const (
	// DiagWalledIn: an agent has no open direction from its cell.
	DiagWalledIn DiagnosticKind = iota
)

// Diagnostic reports a malformed state detected during a tick. The tick
// still completes.
type Diagnostic struct {
	Kind  DiagnosticKind
	Tick  int
	Agent string
	Cell  maze.Cell
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("tick %d: %s walled in at (%d,%d)", d.Tick, d.Agent, d.Cell.Row, d.Cell.Col)
}

// Session owns every piece of mutable maze-chase state: grid, agents,
// goals, power mode and the random source.
type Session struct {
	id     string
	cfg    config.Config
	grid   *maze.Grid
	goals  *entities.GoalSet
	player *entities.Agent
	ghosts []*entities.Ghost
	power  power.Mode
	rng    maze.Rand
	ctrl   *nav.Controller
	seek   nav.GoalSeek
	log    *logrus.Entry

	playerStart maze.Cell
	tick        int
	score       int
	level       int
	ghostCombo  int

	// OnEvent, when set, is called synchronously for gameplay events.
	OnEvent func(Event)
}

// NewSession places the agents and returns a ready session. Spawn hints in
// the layout are used when present; otherwise agents are placed at random
// with a safe distance between ghosts and the player. A nil logger means
// the logrus standard logger.
func NewSession(l *tilemap.Layout, cfg config.Config, rng maze.Rand, logger logrus.FieldLogger) (*Session, error) {
	if l == nil || l.Grid == nil {
		return nil, maze.ErrEmptyLayout
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "session config")
	}
	if l.Grid.CellSize != cfg.CellSize {
		return nil, errors.Errorf("grid cell size %d differs from config %d", l.Grid.CellSize, cfg.CellSize)
	}
	s := &Session{
		id:    uuid.NewString(),
		cfg:   cfg,
		grid:  l.Grid,
		goals: entities.NewGoalSet(l.Goals),
		rng:   rng,
		ctrl:  nav.NewController(l.Grid, rng),
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s.log = logger.WithFields(logrus.Fields{"game": Name, "session": s.id})
	s.seek = nav.GoalSeek{Goals: s.goals, PelletDiscount: cfg.PelletDiscount}

	start, err := s.pickPlayerStart(l.PlayerStart)
	if err != nil {
		return nil, err
	}
	s.playerStart = start
	s.player = &entities.Agent{Speed: cfg.PlayerSpeed}
	s.player.PlaceAt(s.grid, start)

	homes, err := s.pickGhostHomes(l.GhostHomes)
	if err != nil {
		return nil, err
	}
	for i, h := range homes {
		gh := &entities.Ghost{Name: ghostNames[i%len(ghostNames)], Home: h}
		gh.Speed = cfg.GhostSpeed
		gh.PlaceAt(s.grid, h)
		s.ghosts = append(s.ghosts, gh)
	}
	s.log.WithFields(logrus.Fields{
		"goals":  s.goals.Len(),
		"ghosts": len(s.ghosts),
		"grid":   fmt.Sprintf("%dx%d", s.grid.Cols, s.grid.Rows),
	}).Info("session created")
	return s, nil
}

func (s *Session) pickPlayerStart(hint *maze.Cell) (maze.Cell, error) {
	if hint != nil {
		if c, ok := s.grid.NearestWalkable(*hint, spawnSearchRadius); ok {
			return c, nil
		}
	}
	cells, err := maze.PlaceSpawns(s.grid, s.rng, 1, nil, 0)
	if err != nil {
		return maze.Cell{}, errors.Wrap(err, "player spawn")
	}
	return cells[0], nil
}

func (s *Session) pickGhostHomes(hints []maze.Cell) ([]maze.Cell, error) {
	if s.cfg.Ghosts == 0 {
		return nil, nil
	}
	if len(hints) == 0 {
		cells, err := maze.PlaceSpawns(s.grid, s.rng, s.cfg.Ghosts, []maze.Cell{s.playerStart}, s.cfg.SpawnDistance)
		return cells, errors.Wrap(err, "ghost spawn")
	}
	homes := make([]maze.Cell, 0, s.cfg.Ghosts)
	for i := 0; i < s.cfg.Ghosts; i++ {
		c, ok := s.grid.NearestWalkable(hints[i%len(hints)], spawnSearchRadius)
		if !ok {
			return nil, errors.Wrapf(maze.ErrNoSpawnCell, "ghost home near (%d,%d)", c.Row, c.Col)
		}
		homes = append(homes, c)
	}
	return homes, nil
}

// Tick advances the session by one frame. It never panics on malformed
// mazes; problems are returned and logged as diagnostics.
func (s *Session) Tick() []Diagnostic {
	s.tick++
	var diags []Diagnostic

	if s.power.Advance() {
		s.ghostCombo = 0
		s.log.WithField("tick", s.tick).Debug("power mode ended")
		s.emit(EventPowerExpired)
	}

	res := s.ctrl.Step(s.player, s.player.Speed, s.seek)
	if res.Outcome == nav.OutcomeWalledIn {
		diags = append(diags, Diagnostic{Kind: DiagWalledIn, Tick: s.tick, Agent: "player", Cell: res.To})
	}
	s.consumeGoals()

	for _, gh := range s.ghosts {
		// Behaviour follows the power flag every tick; the direction only
		// changes at the ghost's next decision point.
		var policy nav.Policy = nav.Pursue{Target: s.player.Cell}
		speed := gh.Speed
		gh.Behavior = entities.BehaviorPursue
		if s.power.Active() {
			gh.Behavior = entities.BehaviorFlee
			policy = nav.Flee{}
			speed *= s.cfg.FrightenedSpeedScale
		}
		res := s.ctrl.Step(&gh.Agent, speed, policy)
		if res.Outcome == nav.OutcomeWalledIn {
			diags = append(diags, Diagnostic{Kind: DiagWalledIn, Tick: s.tick, Agent: gh.Name, Cell: res.To})
		}
	}
	s.checkGhostContact()

	for _, d := range diags {
		s.log.WithFields(logrus.Fields{"tick": d.Tick, "agent": d.Agent, "row": d.Cell.Row, "col": d.Cell.Col}).Warn("agent walled in")
	}
	return diags
}

// Resize rescales every pixel-space quantity to a new cell size; the
// topology and every agent's cell stay the same.
func (s *Session) Resize(cellSize int) {
	if cellSize <= 0 || cellSize == s.grid.CellSize {
		return
	}
	ratio := float64(cellSize) / float64(s.grid.CellSize)
	s.grid.CellSize = cellSize
	s.cfg.CellSize = cellSize
	s.cfg.ConsumeRadius *= ratio
	scale := func(a *entities.Agent) {
		a.X *= ratio
		a.Y *= ratio
		a.Speed *= ratio
	}
	scale(s.player)
	for _, gh := range s.ghosts {
		scale(&gh.Agent)
	}
	s.log.WithField("cell", cellSize).Debug("session resized")
}

// Steer queues a direction for the player's next decision point.
func (s *Session) Steer(d maze.Direction) {
	s.player.Pending = d
}

func (s *Session) emit(ev Event) {
	if s.OnEvent != nil {
		s.OnEvent(ev)
	}
}

func (s *Session) ID() string       { return s.id }
func (s *Session) Grid() *maze.Grid { return s.grid }
func (s *Session) TickCount() int   { return s.tick }
func (s *Session) Score() int       { return s.score }
func (s *Session) Level() int       { return s.level }

func (s *Session) Player() entities.Agent {
	return *s.player
}

func (s *Session) Ghosts() []entities.Ghost {
	out := make([]entities.Ghost, len(s.ghosts))
	for i, gh := range s.ghosts {
		out[i] = *gh
	}
	return out
}

func (s *Session) Goals() []entities.Goal { return s.goals.Snapshot() }

func (s *Session) GoalsRemaining() int { return s.goals.Remaining() }

// NearestGhost returns the ghost closest to the player and its distance in
// cells. ok is false when the session has no ghosts.
func (s *Session) NearestGhost() (gh entities.Ghost, dist float64, ok bool) {
	cells := make([]maze.Cell, len(s.ghosts))
	for i, g := range s.ghosts {
		cells[i] = g.Cell
	}
	i, ok := nav.NearestAgent(s.player.Cell, cells)
	if !ok {
		return entities.Ghost{}, 0, false
	}
	return *s.ghosts[i], s.player.Cell.Dist(cells[i]), true
}

// Power reports whether ghosts are fleeing and for how many more ticks.
func (s *Session) Power() (bool, int) {
	return s.power.Active(), s.power.Remaining()
}
