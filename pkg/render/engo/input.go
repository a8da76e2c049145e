// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-asteroids/pkg/engine"
	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/input"
)

const quitButton = "quit"

// InputSystem polls engo's buttons, ticks the game and mirrors the result
// into the renderer and HUD. It is the only system that touches the game.
type InputSystem struct {
	game     *engine.Game
	renderer entity.Renderer
	hud      *HUDSystem
	tracker  input.Tracker

	buttonDown func(name string) bool
	exit       func()
}

// NewInputSystem creates the system driving game.
func NewInputSystem(game *engine.Game, renderer entity.Renderer, hud *HUDSystem) *InputSystem {
	return &InputSystem{
		game:     game,
		renderer: renderer,
		hud:      hud,
		buttonDown: func(name string) bool {
			return engo.Input.Button(name).Down()
		},
		exit: engo.Exit,
	}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update ticks the game once per frame with the frame's dt.
func (is *InputSystem) Update(dt float32) {
	if is.buttonDown(quitButton) {
		is.exit()
		return
	}
	is.Step(HeldKeys(is.buttonDown), float64(dt))
}

// Step ticks the game with held and draws the result.
func (is *InputSystem) Step(held input.KeySet, dt float64) {
	is.game.Tick(is.tracker.Next(held), dt)
	is.game.Render(is.renderer)
	if is.hud != nil {
		is.hud.UpdateGameState(is.game.State())
	}
}

// HeldKeys reads every logical key through down, which reports whether the
// button of that name is held.
func HeldKeys(down func(name string) bool) input.KeySet {
	var held input.KeySet
	for _, k := range input.Keys() {
		if down(k.String()) {
			held = held.With(k)
		}
	}
	return held
}

// SetupInputBindings registers one engo button per logical key, named
// after the key.
func SetupInputBindings() {
	engo.Input.RegisterButton(input.Left.String(), engo.KeyArrowLeft, engo.KeyA)
	engo.Input.RegisterButton(input.Right.String(), engo.KeyArrowRight, engo.KeyD)
	engo.Input.RegisterButton(input.Up.String(), engo.KeyArrowUp, engo.KeyW)
	engo.Input.RegisterButton(input.Down.String(), engo.KeyArrowDown, engo.KeyS)
	engo.Input.RegisterButton(input.Fire.String(), engo.KeySpace)
	engo.Input.RegisterButton(input.Restart.String(), engo.KeyR)
	engo.Input.RegisterButton(quitButton, engo.KeyEscape)
}
