// Package entity defines the mobile objects of a match: the player's ship,
// asteroids and bullets. Entities are plain state plus the per-entity rules
// that need no knowledge of any other entity.
package entity

import (
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

// Kind discriminates the entity variants.
type Kind int

const (
	KindShip Kind = iota
	KindAsteroid
	KindBullet
)

// String returns the kind's collision tag name.
func (k Kind) String() string {
	return string(k.Tag())
}

// Tag returns the collision tag bodies of this kind are registered under.
func (k Kind) Tag() physics.Tag {
	switch k {
	case KindShip:
		return physics.TagPlayer
	case KindAsteroid:
		return physics.TagAsteroid
	case KindBullet:
		return physics.TagBullet
	default:
		return "unknown"
	}
}

// Entity is the base interface for all game objects
type Entity interface {
	GetID() ID
	GetKind() Kind
	GetPosition() physics.Vector2D
	GetCollider() physics.Circle
	IsActive() bool
	Render(r Renderer)
}

// BaseEntity holds the state every mobile entity shares. Heading is in
// degrees, clockwise-positive; Speed is signed and measured in pixels per
// second along the heading. Radius doubles as the half-extent used for
// screen wrapping.
type BaseEntity struct {
	ID       ID
	Position physics.Vector2D
	Heading  float64
	Speed    float64
	Radius   float64
	Active   bool
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// GetPosition returns the entity's position
func (e *BaseEntity) GetPosition() physics.Vector2D {
	return e.Position
}

// GetCollider returns the entity's collision shape
func (e *BaseEntity) GetCollider() physics.Circle {
	return physics.Circle{Center: e.Position, Radius: e.Radius}
}

// IsActive reports whether the entity is still part of the match.
func (e *BaseEntity) IsActive() bool {
	return e.Active
}

// Destroy marks the entity for removal at the end of the tick.
func (e *BaseEntity) Destroy() {
	e.Active = false
}

// Move integrates the position over dt seconds.
func (e *BaseEntity) Move(dt float64) {
	e.Position = e.Position.Add(physics.PointAt(e.Speed*dt, e.Heading))
}

// Wrap teleports the entity to the opposite edge once it has fully left a
// width x height screen. Each axis is handled independently; heading and
// speed are untouched. It reports whether a wrap happened.
func (e *BaseEntity) Wrap(width, height float64) bool {
	wrapped := false
	switch {
	case e.Position.X > width+e.Radius:
		e.Position.X = 0
		wrapped = true
	case e.Position.X < -e.Radius:
		e.Position.X = width
		wrapped = true
	}
	switch {
	case e.Position.Y > height+e.Radius:
		e.Position.Y = 0
		wrapped = true
	case e.Position.Y < -e.Radius:
		e.Position.Y = height
		wrapped = true
	}
	return wrapped
}

// OffScreen reports whether the collider lies completely outside a
// width x height screen.
func (e *BaseEntity) OffScreen(width, height float64) bool {
	return e.Position.X+e.Radius < 0 ||
		e.Position.X-e.Radius > width ||
		e.Position.Y+e.Radius < 0 ||
		e.Position.Y-e.Radius > height
}

// IDSource hands out increasing IDs. Each match owns one so a restart starts
// numbering again.
type IDSource struct {
	last ID
}

// Next returns a fresh ID. The first ID returned is 1.
func (s *IDSource) Next() ID {
	s.last++
	return s.last
}
