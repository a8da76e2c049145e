package engine

import (
	"fmt"

	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// GameState represents a snapshot of the game state
type GameState struct {
	MatchID   string
	Tick      uint64
	Elapsed   float64
	Width     float64
	Height    float64
	Score     int
	Lives     int
	Status    Status
	Ship      *ShipState // nil once destroyed
	Asteroids []AsteroidState
	Bullets   []BulletState
}

// ShipState represents a snapshot of a ship's state
type ShipState struct {
	ID                entity.ID
	Position          physics.Vector2D
	Heading           float64
	Speed             float64
	Radius            float64
	Thrusting         bool
	AnimationFrame    int
	CanShoot          bool
	CooldownRemaining float64
	Invulnerable      bool
}

// AsteroidState represents a snapshot of an asteroid's state
type AsteroidState struct {
	ID       entity.ID
	Position physics.Vector2D
	Heading  float64
	Speed    float64
	Radius   float64
}

// BulletState represents a snapshot of a bullet's state
type BulletState struct {
	ID       entity.ID
	Position physics.Vector2D
	Heading  float64
	Radius   float64
}

// State returns a snapshot of the current match. The snapshot shares no
// memory with the game.
func (g *Game) State() GameState {
	m := g.match
	state := GameState{
		MatchID:   m.ID,
		Tick:      m.Tick,
		Elapsed:   m.Elapsed(),
		Width:     g.width,
		Height:    g.height,
		Score:     m.Score,
		Lives:     m.Ship.Lives,
		Status:    m.Status,
		Asteroids: make([]AsteroidState, 0, len(m.Asteroids)),
		Bullets:   make([]BulletState, 0, len(m.Bullets)),
	}

	if s := m.Ship; s.Active {
		cooldown, _ := m.timers.Remaining(m.cooldown)
		state.Ship = &ShipState{
			ID:                s.ID,
			Position:          s.Position,
			Heading:           s.Heading,
			Speed:             s.Speed,
			Radius:            s.Radius,
			Thrusting:         s.Thrusting,
			AnimationFrame:    s.AnimationFrame,
			CanShoot:          s.CanShoot,
			CooldownRemaining: cooldown,
			Invulnerable:      s.Invulnerable(),
		}
	}
	for _, a := range m.Asteroids {
		if a.Active {
			state.Asteroids = append(state.Asteroids, AsteroidState{
				ID:       a.ID,
				Position: a.Position,
				Heading:  a.Heading,
				Speed:    a.Speed,
				Radius:   a.Radius,
			})
		}
	}
	for _, b := range m.Bullets {
		if b.Active {
			state.Bullets = append(state.Bullets, BulletState{
				ID:       b.ID,
				Position: b.Position,
				Heading:  b.Heading,
				Radius:   b.Radius,
			})
		}
	}
	return state
}

// GameOverText returns the message shown once the ship is destroyed.
func (s GameState) GameOverText() string {
	return gameOverText(s.Score)
}

// GameOverText returns the game over message for the current score.
func (g *Game) GameOverText() string {
	return gameOverText(g.match.Score)
}

func gameOverText(score int) string {
	return fmt.Sprintf("GAME OVER\n\nScore: %d\n\n[R]estart?", score)
}
