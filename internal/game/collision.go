package game

import (
	"math"

	"github.com/sirupsen/logrus"

	"retroarcade/internal/entities"
	"retroarcade/internal/maze"
)

// consumeGoals eats every unconsumed goal within the pickup radius of the
// player. Clearing the last goal restores them all and starts a new level.
func (s *Session) consumeGoals() {
	var hits []int
	s.goals.Each(func(i int, g entities.Goal) {
		gx, gy := s.grid.Center(g.Cell)
		if math.Hypot(s.player.X-gx, s.player.Y-gy) < s.cfg.ConsumeRadius {
			hits = append(hits, i)
		}
	})
	for _, i := range hits {
		if !s.goals.Consume(i) {
			continue
		}
		if s.goals.At(i).Power {
			s.score += s.cfg.PowerPelletPoints
			s.ghostCombo = 0
			s.power.Activate(s.cfg.PowerTicks)
			s.log.WithFields(logrus.Fields{"tick": s.tick, "ticks": s.cfg.PowerTicks}).Debug("power mode started")
			s.emit(EventPowerPellet)
		} else {
			s.score += s.cfg.PelletPoints
			s.emit(EventDot)
		}
	}
	if s.goals.Len() > 0 && s.goals.Remaining() == 0 {
		s.goals.Reset()
		s.level++
		s.log.WithFields(logrus.Fields{"tick": s.tick, "level": s.level, "score": s.score}).Info("level cleared")
		s.emit(EventLevelCleared)
	}
}

// checkGhostContact resolves contact between the player and the
// ghosts. Fleeing ghosts are eaten and sent home; otherwise the player is
// caught and every agent respawns.
func (s *Session) checkGhostContact() {
	reach := float64(s.grid.CellSize) - 4
	for _, gh := range s.ghosts {
		dx := s.player.X - gh.X
		dy := s.player.Y - gh.Y
		if dx*dx+dy*dy > reach*reach {
			continue
		}
		if s.power.Active() {
			points := s.cfg.BaseGhostPoints << s.ghostCombo
			if points > s.cfg.MaxGhostPoints || points <= 0 {
				points = s.cfg.MaxGhostPoints
			}
			s.score += points
			s.ghostCombo++
			gh.PlaceAt(s.grid, gh.Home)
			s.log.WithFields(logrus.Fields{"tick": s.tick, "ghost": gh.Name, "points": points}).Debug("ghost eaten")
			s.emit(EventGhostEaten)
			continue
		}
		s.log.WithFields(logrus.Fields{"tick": s.tick, "ghost": gh.Name}).Info("player caught")
		s.emit(EventCaught)
		s.respawn()
		return
	}
}

// respawn puts the player back on its start cell and scatters the ghosts
// at a safe distance from it.
func (s *Session) respawn() {
	s.power.Clear()
	s.ghostCombo = 0
	s.player.PlaceAt(s.grid, s.playerStart)
	if len(s.ghosts) == 0 {
		return
	}
	cells, err := maze.PlaceSpawns(s.grid, s.rng, len(s.ghosts), []maze.Cell{s.playerStart}, s.cfg.SpawnDistance)
	if err != nil {
		// Not enough free cells: fall back to the homes the ghosts started on.
		s.log.WithError(err).Warn("ghost respawn fell back to homes")
		for _, gh := range s.ghosts {
			gh.PlaceAt(s.grid, gh.Home)
		}
		return
	}
	for i, gh := range s.ghosts {
		gh.PlaceAt(s.grid, cells[i])
	}
}
