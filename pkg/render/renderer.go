// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/logging"
)

// NullRenderer is an entity.Renderer that draws nothing. It logs each call
// at DEBUG and counts what it was asked to draw, which is all the headless
// runner needs.
type NullRenderer struct {
	logger *logging.Logger
	ctx    context.Context

	Frames    int
	Ships     int
	Asteroids int
	Bullets   int
}

// NewNullRenderer creates a NullRenderer logging to logger.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	return &NullRenderer{
		logger: logger,
		ctx:    context.Background(),
	}
}

// SetContext sets the context used for log entries, typically one carrying
// the match ID.
func (d *NullRenderer) SetContext(ctx context.Context) {
	d.ctx = ctx
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(d.ctx, "Clear called", "frame", d.Frames)
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.Frames++
}

// RenderShip implements entity.Renderer.
func (d *NullRenderer) RenderShip(ship *entity.Ship) {
	if ship == nil {
		d.logger.Debug(d.ctx, "RenderShip called with nil ship")
		return
	}
	d.Ships++
	d.logger.Debug(d.ctx, "RenderShip called",
		"ship_id", ship.ID,
		"lives", ship.Lives,
		"heading", ship.Heading,
	)
}

// RenderAsteroid implements entity.Renderer.
func (d *NullRenderer) RenderAsteroid(asteroid *entity.Asteroid) {
	if asteroid == nil {
		d.logger.Debug(d.ctx, "RenderAsteroid called with nil asteroid")
		return
	}
	d.Asteroids++
}

// RenderBullet implements entity.Renderer.
func (d *NullRenderer) RenderBullet(bullet *entity.Bullet) {
	if bullet == nil {
		d.logger.Debug(d.ctx, "RenderBullet called with nil bullet")
		return
	}
	d.Bullets++
}
