// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-asteroids/pkg/assets"
	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// SpriteSystem is the part of common.RenderSystem the renderer needs.
type SpriteSystem interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

// Draw order.
const (
	zBackground float32 = iota
	zAsteroid
	zBullet
	zShip
	zHUD
)

// sprite is one drawable mirrored from a simulation entity.
type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent

	name string
}

// EngoRenderer implements entity.Renderer by keeping one engo sprite per
// live entity. Sprites are created the first frame an entity is drawn and
// removed the first frame it is not.
type EngoRenderer struct {
	system   SpriteSystem
	textures *TextureCache
	viewport *Viewport

	sprites map[entity.ID]*sprite
	seen    map[entity.ID]bool
}

// NewEngoRenderer creates a renderer drawing into system.
func NewEngoRenderer(system SpriteSystem, textures *TextureCache, viewport *Viewport) *EngoRenderer {
	return &EngoRenderer{
		system:   system,
		textures: textures,
		viewport: viewport,
		sprites:  make(map[entity.ID]*sprite),
		seen:     make(map[entity.ID]bool),
	}
}

// AddBackground adds the starfield behind the playfield.
func (r *EngoRenderer) AddBackground() {
	drawable, size, ok := r.textures.Sprite(assets.Space)
	if !ok {
		return
	}
	bg := &sprite{BasicEntity: ecs.NewBasic(), name: assets.Space}
	bg.Drawable = drawable
	bg.Color = color.White
	bg.SetZIndex(zBackground)
	bg.Scale = r.scale()
	bg.Position = r.viewport.WorldToScreen(physics.Vector2D{})
	scaled := r.viewport.Scale(size)
	bg.Width, bg.Height = scaled.X, scaled.Y
	r.system.Add(&bg.BasicEntity, &bg.RenderComponent, &bg.SpaceComponent)
}

// Clear implements entity.Renderer
func (r *EngoRenderer) Clear() {
	clear(r.seen)
}

// Present implements entity.Renderer. Sprites whose entity was not drawn
// this frame are removed.
func (r *EngoRenderer) Present() {
	for id, s := range r.sprites {
		if !r.seen[id] {
			r.system.Remove(s.BasicEntity)
			delete(r.sprites, id)
		}
	}
}

// RenderShip implements entity.Renderer
func (r *EngoRenderer) RenderShip(ship *entity.Ship) {
	name := assets.Ship
	if ship.Thrusting {
		name = assets.RocketFrame(ship.AnimationFrame)
	}
	r.draw(ship.ID, name, zShip, ship.Position, ship.Heading)
}

// RenderAsteroid implements entity.Renderer
func (r *EngoRenderer) RenderAsteroid(asteroid *entity.Asteroid) {
	r.draw(asteroid.ID, assets.Asteroid, zAsteroid, asteroid.Position, asteroid.Heading)
}

// RenderBullet implements entity.Renderer
func (r *EngoRenderer) RenderBullet(bullet *entity.Bullet) {
	r.draw(bullet.ID, assets.Bullet, zBullet, bullet.Position, bullet.Heading)
}

// Len returns the number of live sprites.
func (r *EngoRenderer) Len() int {
	return len(r.sprites)
}

func (r *EngoRenderer) scale() engo.Point {
	zoom := float32(r.viewport.Zoom())
	return engo.Point{X: zoom, Y: zoom}
}

func (r *EngoRenderer) draw(id entity.ID, name string, z float32, pos physics.Vector2D, heading float64) {
	r.seen[id] = true
	s := r.getOrCreateSprite(id, name, z)
	if s == nil {
		return
	}
	if s.name != name {
		if drawable, _, ok := r.textures.Sprite(name); ok {
			s.Drawable = drawable
			s.name = name
		}
	}
	s.Rotation = float32(heading)
	s.SetCenter(r.viewport.WorldToScreen(pos))
}

// getOrCreateSprite gets an existing sprite or registers a new one.
func (r *EngoRenderer) getOrCreateSprite(id entity.ID, name string, z float32) *sprite {
	if s, exists := r.sprites[id]; exists {
		return s
	}
	drawable, size, ok := r.textures.Sprite(name)
	if !ok {
		return nil
	}

	s := &sprite{BasicEntity: ecs.NewBasic(), name: name}
	s.Drawable = drawable
	s.Color = color.White
	s.Scale = r.scale()
	s.SetZIndex(z)
	scaled := r.viewport.Scale(size)
	s.Width, s.Height = scaled.X, scaled.Y

	r.sprites[id] = s
	r.system.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	return s
}
