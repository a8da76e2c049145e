package entity

import (
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// Asteroid is a drifting rock. While Initializing it is still being placed
// and takes part in no collision reaction.
type Asteroid struct {
	BaseEntity
	Initializing bool
}

// NewAsteroid creates an asteroid in the initializing state.
func NewAsteroid(id ID, position physics.Vector2D, heading, speed, radius float64) *Asteroid {
	return &Asteroid{
		BaseEntity: BaseEntity{
			ID:       id,
			Position: position,
			Heading:  heading,
			Speed:    speed,
			Radius:   radius,
			Active:   true,
		},
		Initializing: true,
	}
}

// GetKind implements Entity.
func (a *Asteroid) GetKind() Kind {
	return KindAsteroid
}

// Placed clears the initializing flag once a spawn position is settled.
func (a *Asteroid) Placed() {
	a.Initializing = false
}

// Bounce reverses the asteroid along its heading.
func (a *Asteroid) Bounce() {
	a.Speed = -a.Speed
}
