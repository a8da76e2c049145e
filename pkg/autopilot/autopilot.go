// Package autopilot flies the ship from state snapshots. The headless runner
// uses it to exercise a full match without a player.
package autopilot

import (
	"math"
	"math/rand/v2"

	"github.com/opd-ai/go-asteroids/pkg/engine"
	"github.com/opd-ai/go-asteroids/pkg/input"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// Behavior selects how the pilot flies.
type Behavior int

const (
	BehaviorHunter   Behavior = iota // Turns toward the nearest asteroid and shoots
	BehaviorExplorer                 // Drifts around turning at random
)

// String returns the behavior's flag name.
func (b Behavior) String() string {
	switch b {
	case BehaviorHunter:
		return "hunter"
	case BehaviorExplorer:
		return "explorer"
	default:
		return "unknown"
	}
}

// ParseBehavior maps a flag name to a Behavior.
func ParseBehavior(name string) (Behavior, bool) {
	switch name {
	case "hunter":
		return BehaviorHunter, true
	case "explorer":
		return BehaviorExplorer, true
	}
	return 0, false
}

// Default tuning.
const (
	DefaultAimTolerance  = 3.0 // degrees
	DefaultFireTolerance = 8.0 // degrees
	DefaultCruiseSpeed   = 24.0
)

// Pilot decides which keys to hold each tick.
type Pilot struct {
	Behavior      Behavior
	AimTolerance  float64
	FireTolerance float64
	CruiseSpeed   float64

	random   *rand.Rand
	tracker  input.Tracker
	lastFire bool
}

// New creates a pilot. rng drives the explorer's random turns.
func New(behavior Behavior, rng *rand.Rand) *Pilot {
	return &Pilot{
		Behavior:      behavior,
		AimTolerance:  DefaultAimTolerance,
		FireTolerance: DefaultFireTolerance,
		CruiseSpeed:   DefaultCruiseSpeed,
		random:        rng,
	}
}

// Next returns the input snapshot for the tick following state.
func (p *Pilot) Next(state engine.GameState) input.Snapshot {
	return p.tracker.Next(p.Decide(state))
}

// Decide returns the keys to hold given state.
func (p *Pilot) Decide(state engine.GameState) input.KeySet {
	if state.Status == engine.StatusGameOver {
		p.lastFire = false
		return input.NewKeySet(input.Restart)
	}
	if state.Ship == nil {
		return 0
	}

	var held input.KeySet
	switch p.Behavior {
	case BehaviorExplorer:
		held = p.explore(*state.Ship)
	default:
		held = p.hunt(state)
	}

	// Fire is edge triggered, so release it every other tick.
	if held.Has(input.Fire) && p.lastFire {
		held = held.Without(input.Fire)
	}
	p.lastFire = held.Has(input.Fire)
	return held
}

func (p *Pilot) hunt(state engine.GameState) input.KeySet {
	ship := *state.Ship
	held := p.holdSpeed(ship, 0)

	target, ok := NearestAsteroid(ship.Position, state.Asteroids)
	if !ok {
		return held
	}
	delta := physics.AngleDelta(ship.Heading, ship.Position.HeadingTo(target.Position))
	if turn, ok := p.steer(delta); ok {
		held = held.With(turn)
	}
	if math.Abs(delta) <= p.FireTolerance && ship.CanShoot {
		held = held.With(input.Fire)
	}
	return held
}

func (p *Pilot) explore(ship engine.ShipState) input.KeySet {
	held := p.holdSpeed(ship, p.CruiseSpeed)
	if p.random.Float64() < 0.1 {
		if p.random.Float64() < 0.5 {
			held = held.With(input.Left)
		} else {
			held = held.With(input.Right)
		}
	}
	return held
}

// steer returns the turn key that closes delta. It reports false when delta
// is within tolerance.
func (p *Pilot) steer(delta float64) (input.Key, bool) {
	switch {
	case delta > p.AimTolerance:
		return input.Right, true
	case delta < -p.AimTolerance:
		return input.Left, true
	}
	return 0, false
}

// holdSpeed returns the thrust key that moves speed toward target.
func (p *Pilot) holdSpeed(ship engine.ShipState, target float64) input.KeySet {
	switch {
	case ship.Speed < target:
		return input.NewKeySet(input.Up)
	case ship.Speed > target:
		return input.NewKeySet(input.Down)
	}
	return 0
}

// NearestAsteroid returns the asteroid closest to from.
func NearestAsteroid(from physics.Vector2D, asteroids []engine.AsteroidState) (engine.AsteroidState, bool) {
	var nearest engine.AsteroidState
	nearestDistance := math.Inf(1)
	for _, a := range asteroids {
		if d := a.Position.Distance(from); d < nearestDistance {
			nearest = a
			nearestDistance = d
		}
	}
	return nearest, !math.IsInf(nearestDistance, 1)
}
