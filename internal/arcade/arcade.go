// Package arcade rotates through registered games, one at a time, on a
// fixed tick schedule.
package arcade

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var ErrNoGames = errors.New("arcade: no games registered")

// Game is one animation in the rotation. Tick must do nothing while the
// game is stopped.
type Game interface {
	Name() string
	Start()
	Stop()
	Tick() error
	Render(screen *ebiten.Image)
	Resize(w, h int)
}

// InputHandler is implemented by games that react to the keyboard while
// they are on screen.
type InputHandler interface {
	HandleInput()
}

type Factory func() (Game, error)

// Rand picks the next game; *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

type entry struct {
	name    string
	factory Factory
}

// Rotation drives the current game from ebiten and swaps it for a freshly
// built one every few ticks.
type Rotation struct {
	every   int
	rng     Rand
	log     *logrus.Entry
	entries []entry

	current Game
	ticks   int
	w, h    int
}

// NewRotation switches games every `every` ticks (at least one). A nil
// logger means the logrus standard logger.
func NewRotation(every int, rng Rand, logger logrus.FieldLogger) *Rotation {
	if every < 1 {
		every = 1
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Rotation{every: every, rng: rng, log: logger.WithField("component", "rotation")}
}

func (r *Rotation) Register(name string, f Factory) {
	r.entries = append(r.entries, entry{name: name, factory: f})
}

// Current returns the game on screen, or nil before the first switch.
func (r *Rotation) Current() Game { return r.current }

// Switch stops the current game and starts a randomly chosen new one.
func (r *Rotation) Switch() error {
	if len(r.entries) == 0 {
		return ErrNoGames
	}
	if r.current != nil {
		r.current.Stop()
		r.current = nil
	}
	e := r.entries[r.rng.Intn(len(r.entries))]
	g, err := e.factory()
	if err != nil {
		return errors.Wrapf(err, "build %s", e.name)
	}
	if r.w > 0 && r.h > 0 {
		g.Resize(r.w, r.h)
	}
	g.Start()
	r.current = g
	r.ticks = 0
	r.log.WithField("game", e.name).Info("game switched")
	return nil
}

// Advance runs one rotation tick: switch when due, then tick the current
// game.
func (r *Rotation) Advance() error {
	if r.current == nil || r.ticks >= r.every {
		if err := r.Switch(); err != nil {
			return err
		}
	}
	r.ticks++
	return r.current.Tick()
}

// Update implements ebiten.Game.
func (r *Rotation) Update() error {
	if h, ok := r.current.(InputHandler); ok {
		h.HandleInput()
	}
	return r.Advance()
}

// Draw implements ebiten.Game.
func (r *Rotation) Draw(screen *ebiten.Image) {
	if r.current != nil {
		r.current.Render(screen)
	}
}

// Layout implements ebiten.Game. The logical screen follows the window and
// the current game is told about every change.
func (r *Rotation) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != r.w || outsideHeight != r.h {
		r.w, r.h = outsideWidth, outsideHeight
		if r.current != nil {
			r.current.Resize(r.w, r.h)
		}
	}
	return r.w, r.h
}

// Close stops the current game.
func (r *Rotation) Close() {
	if r.current != nil {
		r.current.Stop()
		r.current = nil
	}
}
