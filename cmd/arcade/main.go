package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"retroarcade/internal/arcade"
	"retroarcade/internal/config"
	"retroarcade/internal/game"
	"retroarcade/internal/termview"
	"retroarcade/internal/tilemap"
)

func main() {
	term := flag.Bool("term", false, "draw in the terminal instead of a window")
	flag.Parse()

	log := logrus.New()
	cfg, err := config.FromEnv()
	if err != nil {
		log.WithError(err).Fatal("bad configuration")
	}
	log.SetLevel(cfg.LogLevel)
	log.WithField("seed", cfg.Seed).Debug("configuration loaded")

	if *term {
		runTerminal(cfg, log)
		return
	}

	rot := arcade.NewRotation(cfg.RotateTicks(), rand.New(rand.NewSource(cfg.Seed)), log)
	rot.Register(game.Name, func() (arcade.Game, error) {
		cfg.Seed++
		g, err := game.New(cfg, log)
		if err != nil {
			return nil, err
		}
		return g, nil
	})
	defer rot.Close()

	ebiten.SetWindowTitle("Retro Arcade")
	ebiten.SetWindowResizable(true)
	ebiten.SetWindowSize(len(tilemap.DefaultMaze[0])*config.TileSize*2, len(tilemap.DefaultMaze)*config.TileSize*2)
	ebiten.SetTPS(config.UpdatesPerSecond)
	if err := ebiten.RunGame(rot); err != nil {
		log.WithError(err).Fatal("arcade stopped")
	}
}

func runTerminal(cfg config.Config, log *logrus.Logger) {
	// Terminal output owns stdout; keep logs off it.
	log.SetOutput(os.Stderr)
	if os.Getenv("ARCADE_LOG_LEVEL") == "" {
		log.SetLevel(logrus.WarnLevel)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.WithError(err).Fatal("terminal")
	}
	if err := screen.Init(); err != nil {
		log.WithError(err).Fatal("terminal init")
	}
	defer screen.Fini()

	g, err := game.New(cfg, log)
	if err != nil {
		screen.Fini()
		log.WithError(err).Fatal("maze-chase")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := termview.New(screen, log).Run(ctx, g, config.UpdatesPerSecond); err != nil {
		screen.Fini()
		log.WithError(err).Fatal("maze-chase")
	}
}
