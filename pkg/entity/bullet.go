package entity

import (
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// Bullet travels in a straight line at a fixed speed and never wraps.
type Bullet struct {
	BaseEntity
}

// NewBullet creates an active bullet.
func NewBullet(id ID, position physics.Vector2D, heading, speed, radius float64) *Bullet {
	return &Bullet{
		BaseEntity: BaseEntity{
			ID:       id,
			Position: position,
			Heading:  heading,
			Speed:    speed,
			Radius:   radius,
			Active:   true,
		},
	}
}

// GetKind implements Entity.
func (b *Bullet) GetKind() Kind {
	return KindBullet
}
