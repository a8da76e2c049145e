package engine

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/logging"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// Screen edges an asteroid can enter from.
const (
	edgeTop = iota
	edgeLeft
	edgeBottom
	edgeRight
	edgeCount
)

// Spawner places new asteroids on the screen border, away from every other
// mobile entity.
type Spawner struct {
	rng         *rand.Rand
	maxAttempts int
	logger      *logging.Logger
}

// NewSpawner creates a spawner that tries at most maxAttempts positions per
// asteroid.
func NewSpawner(rng *rand.Rand, maxAttempts int, logger *logging.Logger) *Spawner {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Spawner{rng: rng, maxAttempts: maxAttempts, logger: logger}
}

// ChooseSpawnPoint picks one of the four screen edges uniformly, then a
// uniform point along it.
func (s *Spawner) ChooseSpawnPoint(width, height float64) physics.Vector2D {
	t := s.rng.Float64()
	switch s.rng.IntN(edgeCount) {
	case edgeTop:
		return physics.Vector2D{X: t * width, Y: 0}
	case edgeLeft:
		return physics.Vector2D{X: 0, Y: t * height}
	case edgeBottom:
		return physics.Vector2D{X: t * width, Y: height}
	default:
		return physics.Vector2D{X: width, Y: t * height}
	}
}

// Place moves an initializing asteroid to a spawn point that overlaps no
// body in space, registers it there and clears its initializing flag. When
// every attempt overlaps, the attempt with the most clearance is used and
// Place reports true.
func (s *Spawner) Place(ctx context.Context, a *entity.Asteroid, space *physics.Space, width, height float64) bool {
	var (
		best          physics.Vector2D
		bestClearance = math.Inf(-1)
	)

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		candidate := s.ChooseSpawnPoint(width, height)
		shape := physics.Circle{Center: candidate, Radius: a.Radius}
		if !space.Overlaps(shape, uint64(a.ID)) {
			s.settle(a, candidate, space)
			return false
		}
		if c := space.Clearance(shape, uint64(a.ID)); c > bestClearance {
			best, bestClearance = candidate, c
		}
	}

	s.logger.Warn(ctx, "no clear spawn point, using best candidate",
		"asteroid_id", a.ID,
		"attempts", s.maxAttempts,
		"clearance", bestClearance,
	)
	s.settle(a, best, space)
	return true
}

func (s *Spawner) settle(a *entity.Asteroid, at physics.Vector2D, space *physics.Space) {
	a.Position = at
	a.Placed()
	space.Insert(physics.Body{ID: uint64(a.ID), Tag: physics.TagAsteroid, Shape: a.GetCollider()})
}

// randRange draws uniformly from [lo, hi).
func randRange(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
