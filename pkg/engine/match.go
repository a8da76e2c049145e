package engine

import (
	"github.com/google/uuid"

	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// Status is the lifecycle state of a match.
type Status int

const (
	StatusPlaying Status = iota
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Match is everything that belongs to one play-through. Restarting the game
// discards the match and builds a new one.
type Match struct {
	ID        string
	Tick      uint64
	Score     int
	Status    Status
	Ship      *entity.Ship
	Asteroids []*entity.Asteroid
	Bullets   []*entity.Bullet

	ids      entity.IDSource
	timers   Timers
	contacts map[physics.Pair]struct{}
	cooldown TimerID
}

func newMatch() *Match {
	return &Match{
		ID:       uuid.NewString(),
		Status:   StatusPlaying,
		contacts: make(map[physics.Pair]struct{}),
	}
}

// Elapsed returns the simulated seconds since the match started.
func (m *Match) Elapsed() float64 {
	return m.timers.Now()
}

func (m *Match) asteroidByID(id uint64) *entity.Asteroid {
	for _, a := range m.Asteroids {
		if uint64(a.ID) == id {
			return a
		}
	}
	return nil
}

func (m *Match) bulletByID(id uint64) *entity.Bullet {
	for _, b := range m.Bullets {
		if uint64(b.ID) == id {
			return b
		}
	}
	return nil
}

// cleanupInactiveEntities drops destroyed asteroids and bullets. The ship
// stays referenced so its final state can still be read.
func (m *Match) cleanupInactiveEntities() {
	asteroids := m.Asteroids[:0]
	for _, a := range m.Asteroids {
		if a.Active {
			asteroids = append(asteroids, a)
		}
	}
	clear(m.Asteroids[len(asteroids):])
	m.Asteroids = asteroids

	bullets := m.Bullets[:0]
	for _, b := range m.Bullets {
		if b.Active {
			bullets = append(bullets, b)
		}
	}
	clear(m.Bullets[len(bullets):])
	m.Bullets = bullets
}
