package engo

import (
	"testing"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-asteroids/pkg/assets"
	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

func newTestRenderer(t *testing.T) (*EngoRenderer, *fakeSystem) {
	t.Helper()
	system := newFakeSystem()
	textures, _ := newTestTextures(t)
	return NewEngoRenderer(system, textures, NewViewport(640, 480)), system
}

func frame(r *EngoRenderer, draw ...func(entity.Renderer)) {
	r.Clear()
	for _, d := range draw {
		d(r)
	}
	r.Present()
}

func TestEngoRenderer_ShipSprite(t *testing.T) {
	r, system := newTestRenderer(t)
	ship := entity.NewShip(1, physics.Vector2D{X: 320, Y: 240}, 16, 3, entity.DefaultShipStats())

	frame(r, ship.Render)

	if r.Len() != 1 || len(system.space) != 1 {
		t.Fatalf("sprites = %d, registered = %d, want 1", r.Len(), len(system.space))
	}
	s := r.sprites[ship.ID]
	if s.name != assets.Ship {
		t.Errorf("sprite = %q, want %q", s.name, assets.Ship)
	}
	if s.Position != (engo.Point{X: 304, Y: 224}) {
		t.Errorf("Position = %v, want centered on the ship", s.Position)
	}
	if s.Width != 32 || s.Height != 32 {
		t.Errorf("size = %vx%v, want 32x32", s.Width, s.Height)
	}
}

func TestEngoRenderer_ShipFollowsHeadingAndThrust(t *testing.T) {
	r, _ := newTestRenderer(t)
	ship := entity.NewShip(1, physics.Vector2D{X: 320, Y: 240}, 16, 3, entity.DefaultShipStats())

	frame(r, ship.Render)
	ship.Heading = 90
	ship.StartThrust()
	ship.AnimationFrame = 2
	frame(r, ship.Render)

	s := r.sprites[ship.ID]
	if s.Rotation != 90 {
		t.Errorf("Rotation = %v, want 90", s.Rotation)
	}
	if s.name != assets.Rocket3 {
		t.Errorf("sprite = %q, want %q", s.name, assets.Rocket3)
	}

	ship.StopThrust()
	frame(r, ship.Render)
	if s.name != assets.Ship {
		t.Errorf("sprite = %q after thrust stopped, want %q", s.name, assets.Ship)
	}
}

func TestEngoRenderer_RemovesVanishedEntities(t *testing.T) {
	r, system := newTestRenderer(t)
	asteroid := entity.NewAsteroid(2, physics.Vector2D{X: 50, Y: 50}, 45, 5, 24)
	bullet := entity.NewBullet(3, physics.Vector2D{X: 200, Y: 200}, 0, 100, 3)

	frame(r, asteroid.Render, bullet.Render)
	if r.Len() != 2 {
		t.Fatalf("sprites = %d, want 2", r.Len())
	}

	frame(r, asteroid.Render)
	if r.Len() != 1 {
		t.Errorf("sprites = %d, want 1", r.Len())
	}
	if len(system.removed) != 1 {
		t.Errorf("removed = %v, want one sprite", system.removed)
	}
	if _, ok := r.sprites[bullet.ID]; ok {
		t.Error("bullet sprite survived a frame without the bullet")
	}
}

func TestEngoRenderer_ReusesSprites(t *testing.T) {
	r, system := newTestRenderer(t)
	asteroid := entity.NewAsteroid(2, physics.Vector2D{X: 50, Y: 50}, 45, 5, 24)

	for i := 0; i < 5; i++ {
		asteroid.Move(0.5)
		frame(r, asteroid.Render)
	}

	if len(system.space) != 1 || len(system.removed) != 0 {
		t.Errorf("registered = %d, removed = %d; want one reused sprite", len(system.space), len(system.removed))
	}
}

func TestEngoRenderer_Background(t *testing.T) {
	r, system := newTestRenderer(t)
	r.AddBackground()

	if len(system.space) != 1 {
		t.Fatalf("registered = %d, want 1", len(system.space))
	}
	for _, space := range system.space {
		if space.Position != (engo.Point{}) || space.Width != 640 || space.Height != 480 {
			t.Errorf("background = %+v, want the whole playfield", *space)
		}
	}
	if r.Len() != 0 {
		t.Error("background counted as an entity sprite")
	}
}
