package engo

import (
	"image"
	"testing"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-asteroids/pkg/assets"
	"github.com/opd-ai/go-asteroids/pkg/config"
)

// fakeSystem records what the renderer and HUD register.
type fakeSystem struct {
	space   map[uint64]*common.SpaceComponent
	render  map[uint64]*common.RenderComponent
	removed []uint64
}

func newFakeSystem() *fakeSystem {
	return &fakeSystem{
		space:  make(map[uint64]*common.SpaceComponent),
		render: make(map[uint64]*common.RenderComponent),
	}
}

func (f *fakeSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	f.space[basic.ID()] = space
	f.render[basic.ID()] = render
}

func (f *fakeSystem) Remove(basic ecs.BasicEntity) {
	delete(f.space, basic.ID())
	delete(f.render, basic.ID())
	f.removed = append(f.removed, basic.ID())
}

// newTestTextures returns a cache that skips the GPU upload.
func newTestTextures(t *testing.T) (*TextureCache, *int) {
	t.Helper()
	lib, err := assets.NewLibrary(assets.SizesFromConfig(config.DefaultConfig()))
	if err != nil {
		t.Fatalf("NewLibrary() error = %v", err)
	}
	uploads := 0
	tc := NewTextureCache(lib)
	tc.upload = func(*image.NRGBA) common.Drawable {
		uploads++
		return common.Rectangle{}
	}
	return tc, &uploads
}
