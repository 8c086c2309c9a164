package game

import (
	"fmt"
	"image/color"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font/basicfont"

	"retroarcade/internal/arcade"
	"retroarcade/internal/config"
	"retroarcade/internal/entities"
	"retroarcade/internal/maze"
	"retroarcade/internal/tilemap"
)

const Name = "maze-chase"

var _ arcade.Game = (*Game)(nil)

var (
	playerColor = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	ghostColors = []color.RGBA{
		{R: 255, G: 0, B: 0, A: 255},     // red
		{R: 0, G: 255, B: 255, A: 255},   // cyan
		{R: 255, G: 184, B: 255, A: 255}, // pink
		{R: 255, G: 184, B: 82, A: 255},  // orange
	}
	frightenedColor = color.RGBA{R: 0, G: 0, B: 255, A: 255}
)

// Game wraps a Session as one entry of the arcade rotation.
type Game struct {
	session *Session
	audio   *AudioManager
	log     *logrus.Entry
	running bool
	paused  bool
	off     *ebiten.Image
}

// New builds a maze-chase game on the default board.
func New(cfg config.Config, logger logrus.FieldLogger) (*Game, error) {
	layout, err := tilemap.Decode(tilemap.DefaultMaze, cfg.CellSize)
	if err != nil {
		return nil, errors.Wrap(err, "default maze")
	}
	s, err := NewSession(layout, cfg, rand.New(rand.NewSource(cfg.Seed)), logger)
	if err != nil {
		return nil, err
	}
	g := &Game{
		session: s,
		audio:   NewAudioManager("", cfg.Audio),
		log:     s.log,
	}
	s.OnEvent = g.audio.Handle
	return g, nil
}

func (g *Game) Name() string      { return Name }
func (g *Game) Session() *Session { return g.session }
func (g *Game) Running() bool     { return g.running }

func (g *Game) Start() {
	g.running = true
	g.log.Info("game started")
}

// Stop cancels further ticks; Tick is a no-op until Start is called again.
func (g *Game) Stop() {
	if !g.running {
		return
	}
	g.running = false
	g.log.WithField("ticks", g.session.TickCount()).Info("game stopped")
}

// Tick advances one frame unless the game is stopped or paused.
func (g *Game) Tick() error {
	if !g.running || g.paused {
		return nil
	}
	g.session.Tick()
	return nil
}

// HandleInput reads steering and pause keys. It is only called while the
// game is on screen.
func (g *Game) HandleInput() {
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp):
		g.session.Steer(maze.DirUp)
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown):
		g.session.Steer(maze.DirDown)
	case ebiten.IsKeyPressed(ebiten.KeyArrowLeft):
		g.session.Steer(maze.DirLeft)
	case ebiten.IsKeyPressed(ebiten.KeyArrowRight):
		g.session.Steer(maze.DirRight)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
}

// Resize fits the maze into a w×h surface by changing the cell size.
func (g *Game) Resize(w, h int) {
	grid := g.session.Grid()
	cs := w / grid.Cols
	if byRows := h / grid.Rows; byRows < cs {
		cs = byRows
	}
	if cs < 4 {
		cs = 4
	}
	g.session.Resize(cs)
	g.off = nil
}

func (g *Game) Render(screen *ebiten.Image) {
	screen.Fill(color.Black)
	grid := g.session.Grid()
	nativeW, nativeH := int(grid.PixelWidth()), int(grid.PixelHeight())
	if g.off == nil || g.off.Bounds().Dx() != nativeW || g.off.Bounds().Dy() != nativeH {
		g.off = ebiten.NewImage(nativeW, nativeH)
	}
	off := g.off
	off.Clear()

	tilemap.Draw(off, grid, g.session.goals)

	radius := float32(grid.CellSize)/2 - 2
	p := g.session.Player()
	vector.DrawFilledCircle(off, float32(p.X), float32(p.Y), radius, playerColor, true)

	for i, gh := range g.session.Ghosts() {
		c := ghostColors[i%len(ghostColors)]
		if gh.Behavior == entities.BehaviorFlee {
			c = frightenedColor
		}
		vector.DrawFilledCircle(off, float32(gh.X), float32(gh.Y), radius, c, true)
	}

	hud := fmt.Sprintf("Score: %d  Level: %d  FPS: %0.0f", g.session.Score(), g.session.Level()+1, ebiten.ActualFPS())
	text.Draw(off, hud, basicfont.Face7x13, 4, 12, color.White)

	if active, remaining := g.session.Power(); active {
		timerText := fmt.Sprintf("Frightened: %.1fs", float64(remaining)/float64(config.UpdatesPerSecond))
		textWidth := len(timerText) * 7 // basicfont.Face7x13 is 7 pixels per character
		text.Draw(off, timerText, basicfont.Face7x13, nativeW-textWidth-4, nativeH-4, color.RGBA{R: 0, G: 255, B: 255, A: 255})
	}
	if g.paused {
		msg := "PAUSED"
		text.Draw(off, msg, basicfont.Face7x13, (nativeW-len(msg)*7)/2, nativeH/2, color.White)
	}

	screen.DrawImage(off, &ebiten.DrawImageOptions{})
}

// Size is the native pixel size of the board at the current cell size.
func (g *Game) Size() (int, int) {
	grid := g.session.Grid()
	return int(grid.PixelWidth()), int(grid.PixelHeight())
}
