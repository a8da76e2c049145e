// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-asteroids/pkg/assets"
	"github.com/opd-ai/go-asteroids/pkg/engine"
)

// HUD layout in window pixels.
const (
	hudMargin      = 10
	lifeIconSize   = 20
	lifeIconGap    = 4
	hudLineHeight  = 24
	gameOverLines  = 5
	hudTextWidthPx = 9 // approximate advance of the HUD font
)

// textEntity is a text drawable in window space.
type textEntity struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// HUDSystem draws the score, remaining lives and the game over message over
// the playfield.
type HUDSystem struct {
	system   SpriteSystem
	textures *TextureCache
	font     *common.Font
	width    float32
	height   float32

	score    *textEntity
	gameOver *textEntity
	lives    []*textEntity

	lastScore  int
	lastLives  int
	lastStatus engine.Status
	synced     bool
}

// NewHUDSystem creates a HUD for a window of the given size. font may be
// nil, in which case text entities are kept but never drawn.
func NewHUDSystem(system SpriteSystem, textures *TextureCache, font *common.Font, width, height float32) *HUDSystem {
	hud := &HUDSystem{
		system:   system,
		textures: textures,
		font:     font,
		width:    width,
		height:   height,
	}
	hud.score = hud.newText(engo.Point{X: hudMargin, Y: hudMargin})
	hud.gameOver = hud.newText(engo.Point{})
	hud.gameOver.Hidden = true
	return hud
}

func (hud *HUDSystem) newText(pos engo.Point) *textEntity {
	e := &textEntity{BasicEntity: ecs.NewBasic()}
	e.Drawable = common.Text{Font: hud.font}
	e.Color = color.White
	e.Hidden = hud.font == nil
	e.Position = pos
	e.SetZIndex(zHUD)
	hud.system.Add(&e.BasicEntity, &e.RenderComponent, &e.SpaceComponent)
	return e
}

func (hud *HUDSystem) setText(e *textEntity, text string) {
	e.Drawable = common.Text{Font: hud.font, Text: text}
}

// ScoreText returns the score line.
func ScoreText(score int) string {
	return fmt.Sprintf("Score: %d", score)
}

// UpdateGameState refreshes the HUD from a snapshot. Entities are only
// touched when the score, lives or status changed.
func (hud *HUDSystem) UpdateGameState(state engine.GameState) {
	if hud.synced && state.Score == hud.lastScore && state.Lives == hud.lastLives && state.Status == hud.lastStatus {
		return
	}
	hud.synced = true
	hud.lastScore, hud.lastLives, hud.lastStatus = state.Score, state.Lives, state.Status

	hud.setText(hud.score, ScoreText(state.Score))
	hud.syncLives(state.Lives)

	if state.Status == engine.StatusGameOver {
		hud.setText(hud.gameOver, state.GameOverText())
		hud.gameOver.Position = engo.Point{
			X: hud.width/2 - 6*hudTextWidthPx,
			Y: hud.height/2 - gameOverLines*hudLineHeight/2,
		}
		hud.gameOver.Hidden = hud.font == nil
	} else {
		hud.gameOver.Hidden = true
	}
}

// LifeIconPosition returns the top-left corner of life icon i, counted
// from the right edge of the window.
func LifeIconPosition(i int, windowWidth float32) engo.Point {
	step := float32(lifeIconSize + lifeIconGap)
	return engo.Point{
		X: windowWidth - hudMargin - lifeIconSize - float32(i)*step,
		Y: hudMargin,
	}
}

func (hud *HUDSystem) syncLives(lives int) {
	for len(hud.lives) > lives {
		last := hud.lives[len(hud.lives)-1]
		hud.system.Remove(last.BasicEntity)
		hud.lives = hud.lives[:len(hud.lives)-1]
	}
	for len(hud.lives) < lives {
		drawable, size, ok := hud.textures.Sprite(assets.Ship)
		if !ok {
			return
		}
		icon := &textEntity{BasicEntity: ecs.NewBasic()}
		icon.Drawable = drawable
		icon.Color = color.White
		icon.Scale = engo.Point{X: lifeIconSize / size.X, Y: lifeIconSize / size.Y}
		icon.Width, icon.Height = lifeIconSize, lifeIconSize
		// Point up.
		icon.Rotation = -90
		pos := LifeIconPosition(len(hud.lives), hud.width)
		icon.SetCenter(engo.Point{X: pos.X + lifeIconSize/2, Y: pos.Y + lifeIconSize/2})
		icon.SetZIndex(zHUD)
		hud.lives = append(hud.lives, icon)
		hud.system.Add(&icon.BasicEntity, &icon.RenderComponent, &icon.SpaceComponent)
	}
}

// LivesShown returns the number of life icons on screen.
func (hud *HUDSystem) LivesShown() int {
	return len(hud.lives)
}
