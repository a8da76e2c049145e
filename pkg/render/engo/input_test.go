package engo

import (
	"testing"

	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/engine"
	"github.com/opd-ai/go-asteroids/pkg/input"
	"github.com/opd-ai/go-asteroids/pkg/logging"
	"github.com/opd-ai/go-asteroids/pkg/render"
)

func newTestGame(t *testing.T) *engine.Game {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Rules.Seed = 11
	game, err := engine.NewGame(cfg, engine.WithLogger(logging.NewNopLogger()))
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}
	return game
}

func TestHeldKeys(t *testing.T) {
	down := map[string]bool{"left": true, "space": true, "quit": true}
	held := HeldKeys(func(name string) bool { return down[name] })

	want := input.NewKeySet(input.Left, input.Fire)
	if held != want {
		t.Errorf("HeldKeys() = %v, want %v", held, want)
	}
}

func TestInputSystem_Update(t *testing.T) {
	game := newTestGame(t)
	renderer := render.NewNullRenderer(logging.NewNopLogger())
	is := NewInputSystem(game, renderer, nil)
	down := map[string]bool{"up": true}
	is.buttonDown = func(name string) bool { return down[name] }
	exited := false
	is.exit = func() { exited = true }

	is.Update(float32(engine.DefaultTimeStep))

	state := game.State()
	if state.Tick != 1 || state.Ship == nil || state.Ship.Speed <= 0 {
		t.Errorf("state after one frame = %+v, want an accelerating ship", state)
	}
	if renderer.Frames != 1 {
		t.Errorf("Frames = %d, want 1", renderer.Frames)
	}
	if exited {
		t.Error("exit called without the quit button")
	}

	down["quit"] = true
	is.Update(float32(engine.DefaultTimeStep))
	if !exited {
		t.Error("quit button did not exit")
	}
	if game.State().Tick != 1 {
		t.Error("game ticked on the quit frame")
	}
}

func TestInputSystem_StepUpdatesHUD(t *testing.T) {
	game := newTestGame(t)
	hud, _ := newTestHUD(t)
	is := NewInputSystem(game, render.NewNullRenderer(logging.NewNopLogger()), hud)

	is.Step(0, engine.DefaultTimeStep)

	if hud.LivesShown() != game.Config.Ship.StartingLives {
		t.Errorf("LivesShown() = %d, want %d", hud.LivesShown(), game.Config.Ship.StartingLives)
	}
}
