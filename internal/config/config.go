// Package config holds tuning for the maze-chase session and the arcade
// rotation, with ARCADE_* environment overrides.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	TileSize         = 16
	UpdatesPerSecond = 60
)

type Config struct {
	CellSize int
	// Speeds are in pixels per tick at CellSize.
	PlayerSpeed float64
	GhostSpeed  float64
	// FrightenedSpeedScale slows fleeing ghosts.
	FrightenedSpeedScale float64
	Ghosts               int
	// PowerTicks is how long a power pellet keeps ghosts fleeing.
	PowerTicks int
	// PelletDiscount (<1) makes power pellets look closer to the player.
	PelletDiscount float64
	// ConsumeRadius is the pickup distance in pixels, below half a cell.
	ConsumeRadius float64
	// SpawnDistance is the minimum ghost-to-player spawn gap in cells.
	SpawnDistance float64

	PelletPoints      int
	PowerPelletPoints int
	BaseGhostPoints   int
	MaxGhostPoints    int

	Seed        int64
	RotateEvery time.Duration
	LogLevel    logrus.Level
	Audio       bool
}

// Default mirrors the classic timings at 60 updates per second.
func Default() Config {
	return Config{
		CellSize:             TileSize,
		PlayerSpeed:          2,
		GhostSpeed:           2,
		FrightenedSpeedScale: 0.5,
		Ghosts:               4,
		PowerTicks:           120, // 2 seconds at 60 UPS
		PelletDiscount:       0.5,
		ConsumeRadius:        TileSize * 0.3,
		SpawnDistance:        8,
		PelletPoints:         10,
		PowerPelletPoints:    50,
		BaseGhostPoints:      200,
		MaxGhostPoints:       1600,
		Seed:                 time.Now().UnixNano(),
		RotateEvery:          5 * time.Second,
		LogLevel:             logrus.InfoLevel,
	}
}

// FromEnv applies environment overrides on top of Default.
func FromEnv() (Config, error) {
	c := Default()
	if v := os.Getenv("ARCADE_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c, errors.Wrap(err, "ARCADE_SEED")
		}
		c.Seed = n
	}
	if v := os.Getenv("ARCADE_POWER_TICKS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, errors.Wrap(err, "ARCADE_POWER_TICKS")
		}
		c.PowerTicks = n
	}
	if v := os.Getenv("ARCADE_ROTATE_SECONDS"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c, errors.Wrap(err, "ARCADE_ROTATE_SECONDS")
		}
		c.RotateEvery = time.Duration(n * float64(time.Second))
	}
	if v := os.Getenv("ARCADE_LOG_LEVEL"); v != "" {
		lvl, err := logrus.ParseLevel(v)
		if err != nil {
			return c, errors.Wrap(err, "ARCADE_LOG_LEVEL")
		}
		c.LogLevel = lvl
	}
	// Audio is off unless asked for; the disable switch wins.
	c.Audio = os.Getenv("ARCADE_ENABLE_AUDIO") == "1" && os.Getenv("ARCADE_DISABLE_AUDIO") != "1"
	return c, c.Validate()
}

// Validate rejects settings the movement model cannot honour.
func (c Config) Validate() error {
	cs := float64(c.CellSize)
	switch {
	case c.CellSize <= 0:
		return errors.Errorf("cell size %d must be positive", c.CellSize)
	case c.PlayerSpeed <= 0 || c.PlayerSpeed > cs:
		return errors.Errorf("player speed %.2f must be in (0, %d]", c.PlayerSpeed, c.CellSize)
	case c.GhostSpeed <= 0 || c.GhostSpeed > cs:
		return errors.Errorf("ghost speed %.2f must be in (0, %d]", c.GhostSpeed, c.CellSize)
	case c.FrightenedSpeedScale <= 0 || c.FrightenedSpeedScale > 1:
		return errors.Errorf("frightened speed scale %.2f must be in (0, 1]", c.FrightenedSpeedScale)
	case c.ConsumeRadius <= 0 || c.ConsumeRadius >= cs/2:
		return errors.Errorf("consume radius %.2f must be in (0, %.1f)", c.ConsumeRadius, cs/2)
	case c.PelletDiscount <= 0 || c.PelletDiscount >= 1:
		return errors.Errorf("pellet discount %.2f must be in (0, 1)", c.PelletDiscount)
	case c.PowerTicks <= 0:
		return errors.Errorf("power ticks %d must be positive", c.PowerTicks)
	case c.Ghosts < 0:
		return errors.Errorf("ghost count %d must not be negative", c.Ghosts)
	}
	return nil
}

// RotateTicks converts RotateEvery into update ticks, at least one.
func (c Config) RotateTicks() int {
	n := int(c.RotateEvery.Seconds() * UpdatesPerSecond)
	if n < 1 {
		n = 1
	}
	return n
}
