package entity

import (
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// ShipFrameCount is the length of the thrust flame animation cycle.
const ShipFrameCount = 4

// ShipStats holds the handling characteristics of a ship. Turn and speed
// changes are applied once per tick; times are in seconds.
type ShipStats struct {
	TurnSpeed           float64
	Acceleration        float64
	Deceleration        float64
	MaxThrust           float64
	LaserCooldown       float64
	AnimationFrameTime  float64
	InvulnerabilityTime float64
	BulletSpeed         float64
	BulletRadius        float64
}

// DefaultShipStats returns the stock ship handling.
func DefaultShipStats() ShipStats {
	return ShipStats{
		TurnSpeed:          4.58,
		Acceleration:       2,
		Deceleration:       4,
		MaxThrust:          48,
		LaserCooldown:      1,
		AnimationFrameTime: 0.1,
		BulletSpeed:        100,
		BulletRadius:       3,
	}
}

// Ship is the player-controlled entity
type Ship struct {
	BaseEntity
	Stats                 ShipStats
	Lives                 int
	CanShoot              bool
	Thrusting             bool
	AnimationFrame        int
	InvulnerableRemaining float64

	animationTimer float64
}

// NewShip creates a stationary ship facing heading 0.
func NewShip(id ID, position physics.Vector2D, radius float64, lives int, stats ShipStats) *Ship {
	return &Ship{
		BaseEntity: BaseEntity{
			ID:       id,
			Position: position,
			Radius:   radius,
			Active:   true,
		},
		Stats:    stats,
		Lives:    lives,
		CanShoot: true,
	}
}

// GetKind implements Entity.
func (s *Ship) GetKind() Kind {
	return KindShip
}

// TurnLeft rotates the ship counter-clockwise by one tick's worth.
func (s *Ship) TurnLeft() {
	s.Heading -= s.Stats.TurnSpeed
}

// TurnRight rotates the ship clockwise by one tick's worth.
func (s *Ship) TurnRight() {
	s.Heading += s.Stats.TurnSpeed
}

// Accelerate raises speed by one step, capped at MaxThrust.
func (s *Ship) Accelerate() {
	s.Speed = min(s.Speed+s.Stats.Acceleration, s.Stats.MaxThrust)
}

// Decelerate lowers speed by one step, floored at -MaxThrust.
func (s *Ship) Decelerate() {
	s.Speed = max(s.Speed-s.Stats.Deceleration, -s.Stats.MaxThrust)
}

// StartThrust restarts the flame animation from its first frame.
func (s *Ship) StartThrust() {
	s.Thrusting = true
	s.AnimationFrame = 0
}

// StopThrust hides the flame.
func (s *Ship) StopThrust() {
	s.Thrusting = false
}

// AdvanceAnimation accumulates dt and steps the flame frame every
// AnimationFrameTime seconds while thrusting. The accumulator runs whether
// or not the ship is thrusting.
func (s *Ship) AdvanceAnimation(dt float64) {
	s.animationTimer += dt
	if s.animationTimer < s.Stats.AnimationFrameTime {
		return
	}
	s.animationTimer = 0
	if s.Thrusting {
		s.AnimationFrame = (s.AnimationFrame + 1) % ShipFrameCount
	}
}

// Nose returns the point on the collider the ship fires from.
func (s *Ship) Nose() physics.Vector2D {
	return s.Position.Add(physics.PointAt(s.Radius, s.Heading))
}

// Fire spawns a bullet from the nose and closes the weapon until Reload is
// called. It returns nil when the weapon is still cooling down.
func (s *Ship) Fire(id ID) *Bullet {
	if !s.CanShoot || !s.Active {
		return nil
	}
	s.CanShoot = false
	return NewBullet(id, s.Nose(), s.Heading, s.Stats.BulletSpeed, s.Stats.BulletRadius)
}

// Reload reopens the weapon.
func (s *Ship) Reload() {
	s.CanShoot = true
}

// Invulnerable reports whether hits are currently ignored.
func (s *Ship) Invulnerable() bool {
	return s.InvulnerableRemaining > 0
}

// Cool counts down the invulnerability window. The weapon cooldown is a
// timer owned by the match; it ends with Reload.
func (s *Ship) Cool(dt float64) {
	s.InvulnerableRemaining = max(s.InvulnerableRemaining-dt, 0)
}

// Damage removes lives, never going below zero, and starts the
// invulnerability window if one is configured. It reports whether the ship
// has no lives left.
func (s *Ship) Damage(amount int) bool {
	s.Lives = max(s.Lives-amount, 0)
	if s.Stats.InvulnerabilityTime > 0 {
		s.InvulnerableRemaining = s.Stats.InvulnerabilityTime
	}
	return s.Lives == 0
}
