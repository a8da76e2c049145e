package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-asteroids/pkg/engine"
	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// shipGlyphs are indexed by heading in 45 degree steps, clockwise from +X.
var shipGlyphs = []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

const (
	asteroidGlyph = 'O'
	bulletGlyph   = '.'
	flameGlyph    = '*'
)

var (
	styleShip     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleFlame    = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleAsteroid = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBullet   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	styleGameOver = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// TerminalRenderer draws the playfield onto a tcell screen. The top row is
// reserved for the HUD; the rest of the screen is scaled to the playfield.
type TerminalRenderer struct {
	screen tcell.Screen
	world  physics.Vector2D
	status engine.GameState
}

// NewTerminalRenderer creates a renderer for a worldWidth x worldHeight
// playfield drawn on screen.
func NewTerminalRenderer(screen tcell.Screen, worldWidth, worldHeight float64) *TerminalRenderer {
	return &TerminalRenderer{
		screen: screen,
		world:  physics.Vector2D{X: worldWidth, Y: worldHeight},
	}
}

// SetStatus supplies the score, lives and status drawn by Present.
func (r *TerminalRenderer) SetStatus(state engine.GameState) {
	r.status = state
}

// worldToScreen converts playfield coordinates to a cell. The second result
// is false when the point falls outside the field.
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int, bool) {
	cols, rows := r.screen.Size()
	rows-- // HUD
	if cols <= 0 || rows <= 0 {
		return 0, 0, false
	}
	x := int(math.Floor(pos.X / r.world.X * float64(cols)))
	y := int(math.Floor(pos.Y/r.world.Y*float64(rows))) + 1
	if x < 0 || x >= cols || y < 1 || y > rows {
		return x, y, false
	}
	return x, y, true
}

func (r *TerminalRenderer) plot(pos physics.Vector2D, ch rune, style tcell.Style) {
	if x, y, ok := r.worldToScreen(pos); ok {
		r.screen.SetContent(x, y, ch, nil, style)
	}
}

// Clear implements entity.Renderer
func (r *TerminalRenderer) Clear() {
	r.screen.Clear()
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	r.drawHUD()
	if r.status.Status == engine.StatusGameOver {
		r.drawGameOver()
	}
	r.screen.Show()
}

// ShipGlyph returns the arrow pointing closest to heading.
func ShipGlyph(heading float64) rune {
	step := int(math.Round(heading/45)) % len(shipGlyphs)
	if step < 0 {
		step += len(shipGlyphs)
	}
	return shipGlyphs[step]
}

// RenderShip implements entity.Renderer
func (r *TerminalRenderer) RenderShip(ship *entity.Ship) {
	if ship.Thrusting {
		tail := ship.Position.Sub(physics.PointAt(2*ship.Radius, ship.Heading))
		r.plot(tail, flameGlyph, styleFlame)
	}
	r.plot(ship.Position, ShipGlyph(ship.Heading), styleShip)
}

// RenderAsteroid implements entity.Renderer
func (r *TerminalRenderer) RenderAsteroid(asteroid *entity.Asteroid) {
	r.plot(asteroid.Position, asteroidGlyph, styleAsteroid)
}

// RenderBullet implements entity.Renderer
func (r *TerminalRenderer) RenderBullet(bullet *entity.Bullet) {
	r.plot(bullet.Position, bulletGlyph, styleBullet)
}

func (r *TerminalRenderer) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

func (r *TerminalRenderer) drawHUD() {
	cols, _ := r.screen.Size()
	lives := strings.Repeat(string(shipGlyphs[6]), r.status.Lives)
	line := fmt.Sprintf(" Lives %-5s Score: %d", lives, r.status.Score)
	if pad := cols - len([]rune(line)); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	r.drawText(0, 0, line, styleHUD)
}

func (r *TerminalRenderer) drawGameOver() {
	cols, rows := r.screen.Size()
	lines := strings.Split(r.status.GameOverText(), "\n")
	top := (rows - len(lines)) / 2
	for i, line := range lines {
		left := (cols - len([]rune(line))) / 2
		r.drawText(max(left, 0), top+i, line, styleGameOver)
	}
}
