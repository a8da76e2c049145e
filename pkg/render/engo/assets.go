// pkg/render/engo/assets.go
package engo

import (
	"image"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-asteroids/pkg/assets"
)

// TextureCache uploads sprites from an assets.Library on first use and
// hands out the same drawable afterwards.
type TextureCache struct {
	library  *assets.Library
	upload   func(*image.NRGBA) common.Drawable
	textures map[string]common.Drawable
}

// NewTextureCache creates a cache over library. Textures are uploaded to
// the GPU, so Sprite must only be called once the engo window exists.
func NewTextureCache(library *assets.Library) *TextureCache {
	return &TextureCache{
		library:  library,
		upload:   uploadTexture,
		textures: make(map[string]common.Drawable),
	}
}

// uploadTexture converts an image to an engo texture.
func uploadTexture(img *image.NRGBA) common.Drawable {
	return common.NewTextureSingle(common.NewImageObject(img))
}

// Sprite returns the drawable called name and its size in pixels.
func (tc *TextureCache) Sprite(name string) (common.Drawable, engo.Point, bool) {
	img, ok := tc.library.Image(name)
	if !ok {
		return nil, engo.Point{}, false
	}
	size := engo.Point{X: float32(img.Bounds().Dx()), Y: float32(img.Bounds().Dy())}
	if texture, exists := tc.textures[name]; exists {
		return texture, size, true
	}
	texture := tc.upload(img)
	tc.textures[name] = texture
	return texture, size, true
}

// Len returns the number of uploaded textures.
func (tc *TextureCache) Len() int {
	return len(tc.textures)
}
