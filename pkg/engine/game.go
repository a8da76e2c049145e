// Package engine runs the asteroids simulation: one match at a time,
// advanced by Tick with an input snapshot and a time step.
package engine

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/event"
	"github.com/opd-ai/go-asteroids/pkg/input"
	"github.com/opd-ai/go-asteroids/pkg/logging"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// DefaultTimeStep is the tick length frontends use when they run at a
// fixed rate.
const DefaultTimeStep = 1.0 / 60.0

// Game represents the core game state and logic. It is not safe for
// concurrent use; Tick, Restart and State belong to the frontend's main
// loop.
type Game struct {
	Config   *config.GameConfig
	EventBus *event.Bus

	match   *Match
	space   *physics.Space
	spawner *Spawner
	rng     *rand.Rand
	logger  *logging.Logger
	ctx     context.Context
	width   float64
	height  float64
}

// Option customizes a Game.
type Option func(*Game)

// WithRand sets the random source used for asteroid placement.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// WithLogger sets the game's logger.
func WithLogger(logger *logging.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// WithEventBus publishes gameplay events on bus instead of a private one.
func WithEventBus(bus *event.Bus) Option {
	return func(g *Game) { g.EventBus = bus }
}

// NewGame validates cfg and starts the first match. A nil cfg uses the
// defaults.
func NewGame(cfg *config.GameConfig, opts ...Option) (*Game, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	g := &Game{
		Config: cfg,
		width:  float64(cfg.Screen.Width),
		height: float64(cfg.Screen.Height),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.EventBus == nil {
		g.EventBus = event.NewEventBus()
	}
	if g.logger == nil {
		g.logger = logging.NewLogger()
	}
	if g.rng == nil {
		seed := cfg.Rules.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		g.rng = rand.New(rand.NewPCG(seed, seed))
	}

	g.space = physics.NewSpace(g.width, g.height)
	g.spawner = NewSpawner(g.rng, cfg.Asteroids.SpawnMaxAttempts, g.logger)
	g.startMatch()
	return g, nil
}

// Restart throws the current match away and starts a fresh one.
func (g *Game) Restart() {
	g.logger.Info(g.ctx, "restarting match", "score", g.match.Score, "status", g.match.Status.String())
	g.startMatch()
}

func (g *Game) startMatch() {
	cfg := g.Config
	m := newMatch()
	g.match = m
	g.ctx = logging.WithCorrelationID(context.Background(), m.ID)

	center := physics.Vector2D{X: g.width / 2, Y: g.height / 2}
	m.Ship = entity.NewShip(m.ids.Next(), center, cfg.Ship.Radius, cfg.Ship.StartingLives, cfg.ShipStats())

	g.space.Reset()
	g.space.Insert(physics.Body{ID: uint64(m.Ship.ID), Tag: physics.TagPlayer, Shape: m.Ship.GetCollider()})
	fallbacks := 0
	for i := 0; i < cfg.Asteroids.Count; i++ {
		a := entity.NewAsteroid(
			m.ids.Next(),
			physics.Vector2D{},
			randRange(g.rng, cfg.Asteroids.MinHeading, cfg.Asteroids.MaxHeading),
			randRange(g.rng, cfg.Asteroids.MinSpeed, cfg.Asteroids.MaxSpeed),
			cfg.Asteroids.Radius,
		)
		if g.spawner.Place(g.ctx, a, g.space, g.width, g.height) {
			fallbacks++
		}
		m.Asteroids = append(m.Asteroids, a)
	}

	g.logger.Info(g.ctx, "match started",
		"asteroids", len(m.Asteroids),
		"spawn_fallbacks", fallbacks,
		"lives", m.Ship.Lives,
	)
	g.EventBus.Publish(event.NewMatchEvent(g, m.ID))
}

// Tick advances the simulation by dt seconds. Pressing restart replaces the
// match and consumes the tick.
func (g *Game) Tick(in input.Snapshot, dt float64) {
	if in.JustPressed(input.Restart) {
		g.Restart()
		return
	}

	m := g.match
	m.Tick++
	m.timers.Advance(dt)

	if m.Status == StatusPlaying {
		g.updateShip(in, dt)
	}
	g.moveEntities(dt)
	g.processCollisions()
	m.cleanupInactiveEntities()
}

// Render draws every active entity.
func (g *Game) Render(r entity.Renderer) {
	m := g.match
	r.Clear()
	if m.Ship.Active {
		m.Ship.Render(r)
	}
	for _, a := range m.Asteroids {
		if a.Active {
			a.Render(r)
		}
	}
	for _, b := range m.Bullets {
		if b.Active {
			b.Render(r)
		}
	}
	r.Present()
}

// Status returns the lifecycle state of the current match.
func (g *Game) Status() Status {
	return g.match.Status
}

// MatchID returns the ID of the current match.
func (g *Game) MatchID() string {
	return g.match.ID
}

// Context returns a context carrying the current match ID for logging.
func (g *Game) Context() context.Context {
	return g.ctx
}
