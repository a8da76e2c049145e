package autopilot

import (
	"math/rand/v2"
	"testing"

	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/engine"
	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/event"
	"github.com/opd-ai/go-asteroids/pkg/input"
	"github.com/opd-ai/go-asteroids/pkg/logging"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

var center = physics.Vector2D{X: 320, Y: 240}

func playing(ship engine.ShipState, asteroids ...physics.Vector2D) engine.GameState {
	state := engine.GameState{Status: engine.StatusPlaying, Ship: &ship, Lives: 3}
	for i, pos := range asteroids {
		state.Asteroids = append(state.Asteroids, engine.AsteroidState{ID: entity.ID(10 + i), Position: pos, Radius: 24})
	}
	return state
}

func newHunter() *Pilot {
	return New(BehaviorHunter, rand.New(rand.NewPCG(1, 2)))
}

func TestHunter_Decide(t *testing.T) {
	idle := engine.ShipState{Position: center, CanShoot: true}

	tests := []struct {
		name   string
		state  engine.GameState
		want   []input.Key
		absent []input.Key
	}{
		{
			name:   "aligned target fires",
			state:  playing(idle, physics.Vector2D{X: 400, Y: 240}),
			want:   []input.Key{input.Fire},
			absent: []input.Key{input.Left, input.Right, input.Up, input.Down},
		},
		{
			name:   "target below turns clockwise",
			state:  playing(idle, physics.Vector2D{X: 320, Y: 340}),
			want:   []input.Key{input.Right},
			absent: []input.Key{input.Left, input.Fire},
		},
		{
			name:   "target above turns counter-clockwise",
			state:  playing(idle, physics.Vector2D{X: 320, Y: 140}),
			want:   []input.Key{input.Left},
			absent: []input.Key{input.Right, input.Fire},
		},
		{
			name:  "nearest target wins",
			state: playing(idle, physics.Vector2D{X: 320, Y: 100}, physics.Vector2D{X: 350, Y: 240}),
			want:  []input.Key{input.Fire},
		},
		{
			name:   "cooling down holds fire",
			state:  playing(engine.ShipState{Position: center}, physics.Vector2D{X: 400, Y: 240}),
			absent: []input.Key{input.Fire},
		},
		{
			name:  "moving ship brakes",
			state: playing(engine.ShipState{Position: center, Speed: 10}),
			want:  []input.Key{input.Down},
		},
		{
			name:  "reversing ship thrusts",
			state: playing(engine.ShipState{Position: center, Speed: -4}),
			want:  []input.Key{input.Up},
		},
		{
			name:  "game over restarts",
			state: engine.GameState{Status: engine.StatusGameOver},
			want:  []input.Key{input.Restart},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			held := newHunter().Decide(tt.state)
			for _, k := range tt.want {
				if !held.Has(k) {
					t.Errorf("held = %v, want %v", held, k)
				}
			}
			for _, k := range tt.absent {
				if held.Has(k) {
					t.Errorf("held = %v, want no %v", held, k)
				}
			}
		})
	}
}

func TestHunter_NoShip(t *testing.T) {
	held := newHunter().Decide(engine.GameState{Status: engine.StatusPlaying})
	if !held.Empty() {
		t.Errorf("held = %v, want nothing", held)
	}
}

func TestHunter_ReleasesFireBetweenShots(t *testing.T) {
	p := newHunter()
	state := playing(engine.ShipState{Position: center, CanShoot: true}, physics.Vector2D{X: 400, Y: 240})

	want := []bool{true, false, true, false}
	for i, fire := range want {
		if got := p.Next(state); got.JustPressed(input.Fire) != fire {
			t.Errorf("tick %d: fire pressed = %v, want %v", i, got.JustPressed(input.Fire), fire)
		}
	}
}

func TestExplorer_Cruises(t *testing.T) {
	p := New(BehaviorExplorer, rand.New(rand.NewPCG(3, 4)))

	held := p.Decide(playing(engine.ShipState{Position: center}))
	if !held.Has(input.Up) {
		t.Errorf("held = %v, want thrust below cruise speed", held)
	}
	held = p.Decide(playing(engine.ShipState{Position: center, Speed: DefaultCruiseSpeed}))
	if held.Has(input.Up) || held.Has(input.Down) {
		t.Errorf("held = %v, want no thrust at cruise speed", held)
	}
}

func TestNearestAsteroid(t *testing.T) {
	if _, ok := NearestAsteroid(center, nil); ok {
		t.Error("NearestAsteroid(nil) reported a target")
	}

	asteroids := []engine.AsteroidState{
		{ID: 1, Position: physics.Vector2D{X: 0, Y: 0}},
		{ID: 2, Position: physics.Vector2D{X: 300, Y: 250}},
		{ID: 3, Position: physics.Vector2D{X: 600, Y: 400}},
	}
	got, ok := NearestAsteroid(center, asteroids)
	if !ok || got.ID != 2 {
		t.Errorf("NearestAsteroid() = %v, %v; want ID 2", got.ID, ok)
	}
}

func TestParseBehavior(t *testing.T) {
	for _, b := range []Behavior{BehaviorHunter, BehaviorExplorer} {
		got, ok := ParseBehavior(b.String())
		if !ok || got != b {
			t.Errorf("ParseBehavior(%q) = %v, %v", b.String(), got, ok)
		}
	}
	if _, ok := ParseBehavior("bomber"); ok {
		t.Error("ParseBehavior(bomber) succeeded")
	}
}

func TestPilotDrivesGame(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Rules.Seed = 42
	game, err := engine.NewGame(cfg, engine.WithLogger(logging.NewNopLogger()))
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}
	shots := 0
	game.EventBus.Subscribe(event.BulletFired, func(event.Event) { shots++ })

	p := newHunter()
	const ticks = 600
	for i := 0; i < ticks; i++ {
		game.Tick(p.Next(game.State()), engine.DefaultTimeStep)
	}

	if shots == 0 {
		t.Error("pilot never fired")
	}
	if shots > ticks/60+1 {
		t.Errorf("pilot fired %d times in %d ticks, more than the cooldown allows", shots, ticks)
	}
}
