package engine

import (
	"github.com/opd-ai/go-asteroids/pkg/event"
	"github.com/opd-ai/go-asteroids/pkg/input"
)

// updateShip applies one tick of player input to the ship.
func (g *Game) updateShip(in input.Snapshot, dt float64) {
	ship := g.match.Ship
	if !ship.Active {
		return
	}
	ship.Cool(dt)

	if in.IsDown(input.Left) {
		ship.TurnLeft()
	}
	if in.IsDown(input.Right) {
		ship.TurnRight()
	}
	if in.IsDown(input.Up) {
		ship.Accelerate()
		g.publishThrust(false)
	}
	if in.IsDown(input.Down) {
		ship.Decelerate()
		g.publishThrust(true)
	}

	if in.JustPressed(input.Up) {
		ship.StartThrust()
	}
	if in.JustReleased(input.Up) {
		ship.StopThrust()
	}
	ship.AdvanceAnimation(dt)

	if in.JustPressed(input.Fire) || (g.Config.Rules.AutoFire && in.IsDown(input.Fire)) {
		g.fire()
	}
}

// fire launches a bullet if the laser is ready and arms the cooldown.
func (g *Game) fire() {
	m := g.match
	ship := m.Ship
	if !ship.CanShoot {
		return
	}
	bullet := ship.Fire(m.ids.Next())
	if bullet == nil {
		return
	}
	m.Bullets = append(m.Bullets, bullet)
	m.cooldown = m.timers.After(ship.Stats.LaserCooldown, ship.Reload)

	g.logger.Debug(g.ctx, "bullet fired", "bullet_id", bullet.ID, "heading", bullet.Heading)
	g.EventBus.Publish(event.NewBulletEvent(g, uint64(bullet.ID), uint64(ship.ID)))
}

// moveEntities integrates positions. Ships and asteroids wrap around the
// screen; bullets that leave it are destroyed.
func (g *Game) moveEntities(dt float64) {
	m := g.match
	if m.Ship.Active {
		m.Ship.Move(dt)
		m.Ship.Wrap(g.width, g.height)
	}
	for _, a := range m.Asteroids {
		if !a.Active {
			continue
		}
		a.Move(dt)
		a.Wrap(g.width, g.height)
	}
	for _, b := range m.Bullets {
		if !b.Active {
			continue
		}
		b.Move(dt)
		if b.OffScreen(g.width, g.height) {
			b.Destroy()
		}
	}
}

// publishThrust announces a thrusting tick. It fires every tick a thrust
// key is held, so nothing is built when no one listens.
func (g *Game) publishThrust(reverse bool) {
	if g.EventBus.HandlerCount(event.ThrusterFired) == 0 {
		return
	}
	g.EventBus.Publish(event.NewThrusterEvent(g, uint64(g.match.Ship.ID), reverse))
}
