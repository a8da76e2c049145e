// pkg/render/engo/scene.go
package engo

import (
	"bytes"
	"context"
	"fmt"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/opd-ai/go-asteroids/pkg/assets"
	"github.com/opd-ai/go-asteroids/pkg/engine"
	"github.com/opd-ai/go-asteroids/pkg/logging"
)

const (
	sceneType = "AsteroidsScene"
	fontURL   = "goregular.ttf"
	fontSize  = 18
)

// AsteroidsScene is the engo scene hosting a game.
type AsteroidsScene struct {
	game    *engine.Game
	library *assets.Library
	logger  *logging.Logger

	world    *ecs.World
	renderer *EngoRenderer
	input    *InputSystem
	hud      *HUDSystem
}

// NewAsteroidsScene creates a scene for game, drawing sprites from library.
func NewAsteroidsScene(game *engine.Game, library *assets.Library, logger *logging.Logger) *AsteroidsScene {
	return &AsteroidsScene{
		game:    game,
		library: library,
		logger:  logger,
		world:   &ecs.World{},
	}
}

// Type returns the scene type (required by Engo)
func (scene *AsteroidsScene) Type() string {
	return sceneType
}

// Preload registers the embedded HUD font (required by Engo)
func (scene *AsteroidsScene) Preload() {
	if err := engo.Files.LoadReaderData(fontURL, bytes.NewReader(goregular.TTF)); err != nil {
		scene.logger.Error(scene.game.Context(), "failed to load HUD font", err)
	}
}

// Setup is called when the scene starts (required by Engo)
func (scene *AsteroidsScene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		scene.logger.Warn(scene.game.Context(), "unexpected updater type", "type", fmt.Sprintf("%T", u))
		return
	}
	scene.world = world
	common.SetBackground(color.Black)

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	cfg := scene.game.Config
	viewport := NewViewport(float64(cfg.Screen.Width), float64(cfg.Screen.Height))
	viewport.Fit(float64(engo.GameWidth()), float64(engo.GameHeight()))

	textures := NewTextureCache(scene.library)
	scene.renderer = NewEngoRenderer(renderSystem, textures, viewport)
	scene.renderer.AddBackground()

	scene.hud = NewHUDSystem(renderSystem, textures, scene.loadFont(), engo.GameWidth(), engo.GameHeight())

	SetupInputBindings()
	scene.input = NewInputSystem(scene.game, scene.renderer, scene.hud)
	world.AddSystem(scene.input)

	scene.game.Render(scene.renderer)
	scene.hud.UpdateGameState(scene.game.State())
	scene.logger.Info(scene.game.Context(), "engo scene ready",
		"width", engo.GameWidth(),
		"height", engo.GameHeight(),
		"zoom", viewport.Zoom(),
	)
}

func (scene *AsteroidsScene) loadFont() *common.Font {
	font := &common.Font{
		URL:  fontURL,
		FG:   color.White,
		Size: fontSize,
	}
	if err := font.CreatePreloaded(); err != nil {
		scene.logger.Error(scene.game.Context(), "failed to create HUD font", err)
		return nil
	}
	return font
}

// Exit is called when the window closes (required by Engo)
func (scene *AsteroidsScene) Exit() {
	state := scene.game.State()
	scene.logger.Info(scene.game.Context(), "engo scene exiting",
		"score", state.Score,
		"status", state.Status.String(),
	)
}

// Run opens the window and blocks until it is closed.
func Run(ctx context.Context, game *engine.Game, library *assets.Library, logger *logging.Logger) error {
	if game == nil || library == nil {
		return fmt.Errorf("engo frontend needs a game and an asset library")
	}
	cfg := game.Config.Screen
	scene := NewAsteroidsScene(game, library, logger)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			engo.Exit()
		case <-done:
		}
	}()
	engo.Run(engo.RunOptions{
		Title:      cfg.Title,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Fullscreen: cfg.Fullscreen,
		VSync:      cfg.VSync,
	}, scene)
	return nil
}
