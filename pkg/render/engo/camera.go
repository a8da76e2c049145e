// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// Viewport maps the fixed playfield onto the window, scaling it to fit and
// centering it when the aspect ratios differ.
type Viewport struct {
	world  physics.Vector2D
	zoom   float64
	offset physics.Vector2D
}

// NewViewport creates a viewport for a width x height playfield shown at
// its native size.
func NewViewport(width, height float64) *Viewport {
	return &Viewport{
		world: physics.Vector2D{X: width, Y: height},
		zoom:  1,
	}
}

// Fit scales the playfield to a window of the given size. Non-positive
// sizes leave the viewport unchanged.
func (v *Viewport) Fit(windowWidth, windowHeight float64) {
	if windowWidth <= 0 || windowHeight <= 0 {
		return
	}
	v.zoom = min(windowWidth/v.world.X, windowHeight/v.world.Y)
	v.offset = physics.Vector2D{
		X: (windowWidth - v.world.X*v.zoom) / 2,
		Y: (windowHeight - v.world.Y*v.zoom) / 2,
	}
}

// Zoom returns the current scale factor.
func (v *Viewport) Zoom() float64 {
	return v.zoom
}

// WorldToScreen converts playfield coordinates to window coordinates.
func (v *Viewport) WorldToScreen(pos physics.Vector2D) engo.Point {
	return engo.Point{
		X: float32(pos.X*v.zoom + v.offset.X),
		Y: float32(pos.Y*v.zoom + v.offset.Y),
	}
}

// Scale converts a playfield length to window pixels.
func (v *Viewport) Scale(size engo.Point) engo.Point {
	return engo.Point{X: size.X * float32(v.zoom), Y: size.Y * float32(v.zoom)}
}
