package engine

import (
	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/event"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// populateSpace registers every collidable entity of the match. Initializing
// asteroids are left out so they take part in no reaction.
func (g *Game) populateSpace() {
	m := g.match
	g.space.Reset()
	if m.Ship.Active {
		g.space.Insert(physics.Body{ID: uint64(m.Ship.ID), Tag: physics.TagPlayer, Shape: m.Ship.GetCollider()})
	}
	for _, a := range m.Asteroids {
		if a.Active && !a.Initializing {
			g.space.Insert(physics.Body{ID: uint64(a.ID), Tag: physics.TagAsteroid, Shape: a.GetCollider()})
		}
	}
	for _, b := range m.Bullets {
		if b.Active {
			g.space.Insert(physics.Body{ID: uint64(b.ID), Tag: physics.TagBullet, Shape: b.GetCollider()})
		}
	}
}

// processCollisions reacts to pairs that started overlapping this tick.
// Pairs that were already overlapping last tick are ignored until they
// separate.
func (g *Game) processCollisions() {
	g.populateSpace()

	m := g.match
	previous := m.contacts
	m.contacts = make(map[physics.Pair]struct{}, len(previous))
	began := func(pairs []physics.Pair) []physics.Pair {
		var fresh []physics.Pair
		for _, p := range pairs {
			m.contacts[p] = struct{}{}
			if _, ok := previous[p]; !ok {
				fresh = append(fresh, p)
			}
		}
		return fresh
	}

	bulletHits := began(g.space.Pairs(physics.TagBullet, physics.TagAsteroid))
	shipHits := began(g.space.Pairs(physics.TagPlayer, physics.TagAsteroid))
	bounces := began(g.space.Pairs(physics.TagAsteroid, physics.TagAsteroid))

	for _, p := range bulletHits {
		g.handleBulletAsteroidCollision(m.bulletByID(p.A), m.asteroidByID(p.B))
	}
	for _, p := range shipHits {
		g.handleShipAsteroidCollision(m.asteroidByID(p.B))
	}
	for _, p := range bounces {
		g.handleAsteroidBounce(m.asteroidByID(p.A), m.asteroidByID(p.B))
	}
}

func (g *Game) handleBulletAsteroidCollision(b *entity.Bullet, a *entity.Asteroid) {
	if b == nil || a == nil || !b.Active || !a.Active || a.Initializing {
		return
	}
	m := g.match
	b.Destroy()
	a.Destroy()
	m.Score++

	g.logger.Debug(g.ctx, "asteroid destroyed", "asteroid_id", a.ID, "bullet_id", b.ID, "score", m.Score)
	g.EventBus.Publish(event.NewAsteroidEvent(g, uint64(a.ID), uint64(b.ID)))
	g.EventBus.Publish(event.NewScoreEvent(event.ScoreChanged, g, m.Score))
}

func (g *Game) handleShipAsteroidCollision(a *entity.Asteroid) {
	m := g.match
	ship := m.Ship
	if a == nil || !a.Active || a.Initializing {
		return
	}
	if !ship.Active || m.Status != StatusPlaying || ship.Invulnerable() {
		return
	}

	noLives := ship.Damage(g.Config.Rules.DamagePerHit)
	g.logger.Debug(g.ctx, "ship hit", "asteroid_id", a.ID, "lives", ship.Lives)
	g.EventBus.Publish(event.NewShipEvent(event.ShipDamaged, g, uint64(ship.ID), ship.Lives))

	if noLives {
		g.destroyShip()
	}
}

func (g *Game) handleAsteroidBounce(a1, a2 *entity.Asteroid) {
	if a1 == nil || a2 == nil || !a1.Active || !a2.Active || a1.Initializing || a2.Initializing {
		return
	}
	a1.Bounce()
	a2.Bounce()
	g.EventBus.Publish(event.NewCollisionEvent(event.AsteroidsBounced, g, uint64(a1.ID), uint64(a2.ID)))
}

// destroyShip ends the match.
func (g *Game) destroyShip() {
	m := g.match
	m.Ship.Destroy()
	m.Status = StatusGameOver
	m.timers.Cancel(m.cooldown)

	g.logger.Info(g.ctx, "game over", "score", m.Score, "tick", m.Tick)
	g.EventBus.Publish(event.NewShipEvent(event.ShipDestroyed, g, uint64(m.Ship.ID), m.Ship.Lives))
	g.EventBus.Publish(event.NewScoreEvent(event.GameOver, g, m.Score))
}
