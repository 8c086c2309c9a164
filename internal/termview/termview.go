// Package termview draws a maze-chase session on a terminal, one character
// per maze cell.
package termview

import (
	"context"
	"fmt"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"retroarcade/internal/entities"
	"retroarcade/internal/game"
	"retroarcade/internal/maze"
)

const (
	wallRune   = '█'
	dotRune    = '·'
	pelletRune = 'o'
	playerRune = 'C'
	fleeRune   = 'w'
)

var (
	wallStyle   = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	dotStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	playerStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	fleeStyle   = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	ghostStyles = []tcell.Style{
		tcell.StyleDefault.Foreground(tcell.ColorRed),
		tcell.StyleDefault.Foreground(tcell.ColorAqua),
		tcell.StyleDefault.Foreground(tcell.ColorFuchsia),
		tcell.StyleDefault.Foreground(tcell.ColorOrange),
	}
	hudStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

type View struct {
	screen tcell.Screen
	log    *logrus.Entry
}

// New draws on screen. A nil logger means the logrus standard logger.
func New(screen tcell.Screen, logger logrus.FieldLogger) *View {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &View{screen: screen, log: logger.WithField("component", "termview")}
}

// Draw paints the maze, the goals, the agents and a status line below the
// board.
func (v *View) Draw(s *game.Session) {
	v.screen.Clear()
	g := s.Grid()
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if !g.CanEnter(maze.Cell{Row: r, Col: c}) {
				v.screen.SetContent(c, r, wallRune, nil, wallStyle)
			}
		}
	}
	for _, goal := range s.Goals() {
		if goal.Consumed {
			continue
		}
		ch := dotRune
		if goal.Power {
			ch = pelletRune
		}
		v.screen.SetContent(goal.Cell.Col, goal.Cell.Row, ch, nil, dotStyle)
	}
	for i, gh := range s.Ghosts() {
		ch, style := ghostRune(gh), ghostStyles[i%len(ghostStyles)]
		if gh.Behavior == entities.BehaviorFlee {
			ch, style = fleeRune, fleeStyle
		}
		v.put(g, gh.Cell, ch, style)
	}
	v.put(g, s.Player().Cell, playerRune, playerStyle)

	status := fmt.Sprintf("score %d  level %d", s.Score(), s.Level()+1)
	if active, remaining := s.Power(); active {
		status += fmt.Sprintf("  frightened %d", remaining)
	}
	if gh, dist, ok := s.NearestGhost(); ok {
		status += fmt.Sprintf("  %s %.1f", gh.Name, dist)
	}
	for i, r := range status {
		v.screen.SetContent(i, g.Rows, r, nil, hudStyle)
	}
	v.screen.Show()
}

// put skips cells outside the board, which agents pass through in tunnels.
func (v *View) put(g *maze.Grid, c maze.Cell, ch rune, style tcell.Style) {
	if !g.InBounds(c) {
		return
	}
	v.screen.SetContent(c.Col, c.Row, ch, nil, style)
}

func ghostRune(gh entities.Ghost) rune {
	if gh.Name == "" {
		return 'M'
	}
	return unicode.ToUpper(rune(gh.Name[0]))
}

// Run ticks g tps times per second and redraws after each tick until ctx is
// done or the user quits with Esc, q or Ctrl-C. Arrow keys steer.
func (v *View) Run(ctx context.Context, g *game.Game, tps int) error {
	if tps <= 0 {
		tps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	g.Start()
	defer g.Stop()
	v.Draw(g.Session())
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !v.handle(g.Session(), ev) {
				v.log.Info("quit requested")
				return nil
			}
		case <-ticker.C:
			if err := g.Tick(); err != nil {
				return err
			}
			v.Draw(g.Session())
		}
	}
}

// handle applies one terminal event and reports whether to keep running.
func (v *View) handle(s *game.Session, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			s.Steer(maze.DirUp)
		case tcell.KeyDown:
			s.Steer(maze.DirDown)
		case tcell.KeyLeft:
			s.Steer(maze.DirLeft)
		case tcell.KeyRight:
			s.Steer(maze.DirRight)
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return false
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}
