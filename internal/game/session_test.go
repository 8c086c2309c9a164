package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retroarcade/internal/config"
	"retroarcade/internal/entities"
	"retroarcade/internal/maze"
	"retroarcade/internal/tilemap"
)

func testConfig() config.Config {
	c := config.Default()
	c.Seed = 1
	return c
}

func newTestSession(t *testing.T, cfg config.Config, lines ...string) (*Session, *test.Hook) {
	t.Helper()
	layout, err := tilemap.Decode(lines, cfg.CellSize)
	require.NoError(t, err)
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	s, err := NewSession(layout, cfg, rand.New(rand.NewSource(cfg.Seed)), logger)
	require.NoError(t, err)
	return s, hook
}

func TestFullLevelReset(t *testing.T) {
	cfg := testConfig()
	cfg.Ghosts = 0
	s, hook := newTestSession(t, cfg,
		"#######",
		"#P.  .#",
		"#######",
	)
	require.Equal(t, 2, s.GoalsRemaining())

	for i := 0; i < 200 && s.Level() == 0; i++ {
		before := s.Player()
		s.Tick()
		after := s.Player()
		require.LessOrEqual(t, math.Abs(after.X-before.X)+math.Abs(after.Y-before.Y), cfg.PlayerSpeed,
			"the reset must not move the player")
	}
	require.Equal(t, 1, s.Level())
	assert.Equal(t, 2, s.GoalsRemaining())
	for _, g := range s.Goals() {
		assert.False(t, g.Consumed)
	}
	assert.Equal(t, 2*cfg.PelletPoints, s.Score())

	var cleared bool
	for _, e := range hook.AllEntries() {
		if e.Message == "level cleared" {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestPowerModeLastsConfiguredTicks(t *testing.T) {
	cfg := testConfig()
	cfg.Ghosts = 0
	cfg.PowerTicks = 10
	s, _ := newTestSession(t, cfg,
		"##########",
		"#Po......#",
		"##########",
	)
	var events []Event
	s.OnEvent = func(ev Event) { events = append(events, ev) }

	for i := 0; i < 50; i++ {
		s.Tick()
		if active, _ := s.Power(); active {
			break
		}
	}
	active, remaining := s.Power()
	require.True(t, active)
	require.Equal(t, cfg.PowerTicks, remaining)
	require.Contains(t, events, EventPowerPellet)

	ticks := 1
	for {
		s.Tick()
		if active, _ := s.Power(); !active {
			break
		}
		ticks++
		require.Less(t, ticks, 100)
	}
	assert.Equal(t, cfg.PowerTicks, ticks)
	assert.Contains(t, events, EventPowerExpired)
}

func TestConsumptionIsIdempotent(t *testing.T) {
	cfg := testConfig()
	cfg.Ghosts = 0
	s, _ := newTestSession(t, cfg,
		"######",
		"#P...#",
		"######",
	)
	// Put the player exactly on the first dot.
	x, y := s.grid.Center(maze.Cell{Row: 1, Col: 2})
	s.player.X, s.player.Y = x, y

	s.consumeGoals()
	s.consumeGoals()

	assert.Equal(t, cfg.PelletPoints, s.Score())
	assert.Equal(t, 2, s.GoalsRemaining())
}

func TestGhostsFleeWithoutInstantReversal(t *testing.T) {
	cfg := testConfig()
	cfg.Ghosts = 1
	s, _ := newTestSession(t, cfg,
		"##############",
		"#P          G#",
		"##############",
	)
	gh := s.ghosts[0]
	for i := 0; i < 12; i++ {
		s.Tick()
	}
	require.Equal(t, maze.DirLeft, gh.Dir, "pursuing ghost heads for the player")
	require.Equal(t, entities.BehaviorPursue, gh.Behavior)

	// Move the ghost off-center so the next tick has no decision point.
	gh.X -= 0.5
	s.power.Activate(cfg.PowerTicks)
	s.Tick()

	assert.Equal(t, entities.BehaviorFlee, gh.Behavior)
	assert.Equal(t, maze.DirLeft, gh.Dir, "ghosts only turn at their next decision point")
}

func TestWalledInGhostReportsDiagnostic(t *testing.T) {
	g, err := maze.NewGrid([][]bool{
		{false, false, false, false, false, false},
		{false, true, true, false, true, false},
		{false, false, false, false, false, false},
	}, config.TileSize)
	require.NoError(t, err)
	start := maze.Cell{Row: 1, Col: 1}
	layout := &tilemap.Layout{Grid: g, PlayerStart: &start, GhostHomes: []maze.Cell{{Row: 1, Col: 4}}}

	cfg := testConfig()
	cfg.Ghosts = 1
	logger, hook := test.NewNullLogger()
	s, err := NewSession(layout, cfg, rand.New(rand.NewSource(1)), logger)
	require.NoError(t, err)

	diags := s.Tick()
	require.Len(t, diags, 1)
	assert.Equal(t, DiagWalledIn, diags[0].Kind)
	assert.Equal(t, "blinky", diags[0].Agent)
	assert.Equal(t, maze.Cell{Row: 1, Col: 4}, diags[0].Cell)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "agent walled in", hook.LastEntry().Message)

	cx, cy := g.Center(maze.Cell{Row: 1, Col: 4})
	assert.Equal(t, cx, s.ghosts[0].X)
	assert.Equal(t, cy, s.ghosts[0].Y)
}

func TestEatingGhostsDoublesPoints(t *testing.T) {
	cfg := testConfig()
	cfg.Ghosts = 2
	s, _ := newTestSession(t, cfg, tilemap.DefaultMaze...)
	s.power.Activate(cfg.PowerTicks)
	for _, gh := range s.ghosts {
		gh.X, gh.Y = s.player.X, s.player.Y
	}
	var events []Event
	s.OnEvent = func(ev Event) { events = append(events, ev) }

	s.checkGhostContact()

	assert.Equal(t, cfg.BaseGhostPoints*3, s.Score())
	assert.Equal(t, []Event{EventGhostEaten, EventGhostEaten}, events)
	for _, gh := range s.ghosts {
		hx, hy := s.grid.Center(gh.Home)
		assert.Equal(t, hx, gh.X)
		assert.Equal(t, hy, gh.Y)
	}
}

func TestGhostPointsCapped(t *testing.T) {
	cfg := testConfig()
	cfg.Ghosts = 1
	s, _ := newTestSession(t, cfg, tilemap.DefaultMaze...)
	s.power.Activate(cfg.PowerTicks)
	s.ghostCombo = 6
	s.ghosts[0].X, s.ghosts[0].Y = s.player.X, s.player.Y

	s.checkGhostContact()
	assert.Equal(t, cfg.MaxGhostPoints, s.Score())
}

func TestCaughtPlayerRespawns(t *testing.T) {
	cfg := testConfig()
	s, hook := newTestSession(t, cfg, tilemap.DefaultMaze...)
	for i := 0; i < 30; i++ {
		s.Tick()
	}
	s.power.Clear()
	gh := s.ghosts[0]
	gh.X, gh.Y = s.player.X, s.player.Y

	s.checkGhostContact()

	p := s.Player()
	assert.Equal(t, s.playerStart, p.Cell)
	sx, sy := s.grid.Center(s.playerStart)
	assert.Equal(t, sx, p.X)
	assert.Equal(t, sy, p.Y)
	for _, g := range s.Ghosts() {
		assert.True(t, s.grid.CanEnter(g.Cell))
		assert.GreaterOrEqual(t, g.Cell.Dist(s.playerStart), cfg.SpawnDistance)
	}
	assert.Equal(t, "player caught", hook.LastEntry().Message)
}

func TestSessionIsReproducibleForSeed(t *testing.T) {
	cfg := testConfig()
	cfg.Seed = 7
	a, _ := newTestSession(t, cfg, tilemap.DefaultMaze...)
	b, _ := newTestSession(t, cfg, tilemap.DefaultMaze...)
	for i := 0; i < 600; i++ {
		a.Tick()
		b.Tick()
	}
	assert.Equal(t, a.Player().X, b.Player().X)
	assert.Equal(t, a.Player().Y, b.Player().Y)
	ga, gb := a.Ghosts(), b.Ghosts()
	for i := range ga {
		assert.Equal(t, ga[i].X, gb[i].X)
		assert.Equal(t, ga[i].Y, gb[i].Y)
	}
	assert.Equal(t, a.Score(), b.Score())
}

// Every agent stays on walkable cells (or inside a tunnel) for a long run
// on the default board, and no tick reports a diagnostic.
func TestAgentsStayOnWalkableCells(t *testing.T) {
	cfg := testConfig()
	cfg.Seed = 3
	s, _ := newTestSession(t, cfg, tilemap.DefaultMaze...)
	onBoard := func(c maze.Cell) bool {
		if s.grid.InBounds(c) {
			return s.grid.CanEnter(c)
		}
		return s.grid.IsTunnelRow(c.Row)
	}
	for i := 0; i < 3000; i++ {
		require.Empty(t, s.Tick())
		require.True(t, onBoard(s.Player().Cell), "tick %d player at %v", i, s.Player().Cell)
		for _, g := range s.Ghosts() {
			require.True(t, onBoard(g.Cell), "tick %d %s at %v", i, g.Name, g.Cell)
		}
	}
	assert.Greater(t, s.Score(), 0)
}

func TestResizeKeepsCells(t *testing.T) {
	cfg := testConfig()
	s, _ := newTestSession(t, cfg, tilemap.DefaultMaze...)
	for i := 0; i < 37; i++ {
		s.Tick()
	}
	before := s.Player()
	ghostsBefore := s.Ghosts()

	s.Resize(32)

	after := s.Player()
	assert.Equal(t, before.Cell, after.Cell)
	assert.Equal(t, before.Cell, s.grid.CellAt(after.X, after.Y))
	assert.Equal(t, 2*before.Speed, after.Speed)
	for i, g := range s.Ghosts() {
		assert.Equal(t, ghostsBefore[i].Cell, g.Cell)
	}
	assert.Equal(t, 32, s.grid.CellSize)
	assert.Less(t, s.cfg.ConsumeRadius, 16.0)

	for i := 0; i < 100; i++ {
		require.Empty(t, s.Tick())
	}
}

func TestNewSessionRandomSpawnsWithoutHints(t *testing.T) {
	walkable := make([][]bool, 3)
	for r := range walkable {
		walkable[r] = make([]bool, 24)
	}
	for c := 1; c < 23; c++ {
		walkable[1][c] = true
	}
	g, err := maze.NewGrid(walkable, config.TileSize)
	require.NoError(t, err)
	cfg := testConfig()
	cfg.Ghosts = 2
	cfg.SpawnDistance = 3
	logger, _ := test.NewNullLogger()
	s, err := NewSession(&tilemap.Layout{Grid: g}, cfg, rand.New(rand.NewSource(5)), logger)
	require.NoError(t, err)
	require.Len(t, s.Ghosts(), 2)
	for _, gh := range s.Ghosts() {
		assert.GreaterOrEqual(t, gh.Cell.Dist(s.Player().Cell), 3.0)
	}
}

func TestNewSessionRejectsBadInput(t *testing.T) {
	logger, _ := test.NewNullLogger()
	_, err := NewSession(nil, testConfig(), rand.New(rand.NewSource(1)), logger)
	assert.Error(t, err)

	layout, err := tilemap.Decode(tilemap.DefaultMaze, 16)
	require.NoError(t, err)
	cfg := testConfig()
	cfg.CellSize = 20
	_, err = NewSession(layout, cfg, rand.New(rand.NewSource(1)), logger)
	assert.Error(t, err)
}

func TestNearestGhost(t *testing.T) {
	cfg := testConfig()
	cfg.Ghosts = 2
	s, _ := newTestSession(t, cfg, tilemap.DefaultMaze...)
	s.ghosts[1].PlaceAt(s.grid, maze.Cell{Row: 22, Col: 14})

	gh, dist, ok := s.NearestGhost()
	require.True(t, ok)
	assert.Equal(t, s.ghosts[1].Name, gh.Name)
	assert.Equal(t, 1.0, dist)

	cfg.Ghosts = 0
	s, _ = newTestSession(t, cfg, tilemap.DefaultMaze...)
	_, _, ok = s.NearestGhost()
	assert.False(t, ok)
}

func TestNewSessionNilLogger(t *testing.T) {
	layout, err := tilemap.Decode(tilemap.DefaultMaze, 16)
	require.NoError(t, err)
	s, err := NewSession(layout, testConfig(), rand.New(rand.NewSource(1)), nil)
	require.NoError(t, err)
	assert.NotPanics(t, func() { s.Tick() })
}
