package entity

// Renderer draws the entities of one frame. Clear starts a frame and
// Present finishes it.
type Renderer interface {
	RenderShip(ship *Ship)
	RenderAsteroid(asteroid *Asteroid)
	RenderBullet(bullet *Bullet)
	Clear()
	Present()
}

// Render implements Entity.
func (s *Ship) Render(r Renderer) {
	r.RenderShip(s)
}

// Render implements Entity.
func (a *Asteroid) Render(r Renderer) {
	r.RenderAsteroid(a)
}

// Render implements Entity.
func (b *Bullet) Render(r Renderer) {
	r.RenderBullet(b)
}
