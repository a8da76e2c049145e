package physics

import (
	"math"
	"sort"
)

// Tag classifies a body for collision queries.
type Tag string

// Collision tags used by the simulation.
const (
	TagPlayer   Tag = "player"
	TagAsteroid Tag = "asteroid"
	TagBullet   Tag = "bullet"
)

// Body is a tagged circle registered in a Space.
type Body struct {
	ID    uint64
	Tag   Tag
	Shape Circle
}

// Pair is an overlapping pair reported by Space.Pairs. A carries the first
// tag of the query and B the second. For same-tag queries A < B.
type Pair struct {
	A uint64
	B uint64
}

// Space answers overlap queries over a set of tagged bodies. It is rebuilt
// every tick: Reset, Insert each body, then query.
type Space struct {
	bounds    Rect
	tree      *QuadTree
	bodies    map[uint64]Body
	order     []uint64
	outside   []uint64
	maxRadius float64
	scratch   []uint64
}

// spaceMargin lets bodies that drift past the screen edge before wrapping
// stay in the tree.
const spaceMargin = 128

// NewSpace creates a space covering a width x height screen.
func NewSpace(width, height float64) *Space {
	bounds := Rect{
		Center: Vector2D{X: width / 2, Y: height / 2},
		Width:  width,
		Height: height,
	}.Grow(spaceMargin)
	return &Space{
		bounds: bounds,
		tree:   NewQuadTree(bounds, 8),
		bodies: make(map[uint64]Body),
	}
}

// Reset removes every body.
func (s *Space) Reset() {
	s.tree.Clear()
	clear(s.bodies)
	s.order = s.order[:0]
	s.outside = s.outside[:0]
	s.maxRadius = 0
}

// Insert registers a body. Inserting an existing ID replaces its shape.
func (s *Space) Insert(b Body) {
	if _, exists := s.bodies[b.ID]; exists {
		s.Remove(b.ID)
	}
	s.bodies[b.ID] = b
	s.order = append(s.order, b.ID)
	if b.Shape.Radius > s.maxRadius {
		s.maxRadius = b.Shape.Radius
	}
	if !s.tree.Insert(b.Shape.Center, b.ID) {
		s.outside = append(s.outside, b.ID)
	}
}

// Remove drops a body. Its tree slot is ignored by later queries.
func (s *Space) Remove(id uint64) {
	if _, ok := s.bodies[id]; !ok {
		return
	}
	delete(s.bodies, id)
	for i, other := range s.order {
		if other == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of bodies.
func (s *Space) Len() int {
	return len(s.bodies)
}

// candidates returns the IDs of bodies that may overlap shape.
func (s *Space) candidates(shape Circle) []uint64 {
	area := shape.Bounds().Grow(s.maxRadius)
	s.scratch = s.tree.Query(area, s.scratch[:0])
	return append(s.scratch, s.outside...)
}

// Overlaps reports whether shape overlaps any body other than exclude that
// carries one of tags. With no tags every body counts.
func (s *Space) Overlaps(shape Circle, exclude uint64, tags ...Tag) bool {
	for _, id := range s.candidates(shape) {
		b, ok := s.bodies[id]
		if !ok || id == exclude || !hasTag(b.Tag, tags) {
			continue
		}
		if shape.Collides(b.Shape) {
			return true
		}
	}
	return false
}

// Clearance returns the smallest edge gap between shape and any body other
// than exclude carrying one of tags. It is +Inf when there is no such body.
func (s *Space) Clearance(shape Circle, exclude uint64, tags ...Tag) float64 {
	best := math.Inf(1)
	for _, id := range s.order {
		b := s.bodies[id]
		if id == exclude || !hasTag(b.Tag, tags) {
			continue
		}
		if gap := shape.Clearance(b.Shape); gap < best {
			best = gap
		}
	}
	return best
}

// Pairs returns every overlapping pair between bodies tagged a and bodies
// tagged b, sorted by (A, B).
func (s *Space) Pairs(a, b Tag) []Pair {
	var pairs []Pair
	for _, id := range s.order {
		body := s.bodies[id]
		if body.Tag != a {
			continue
		}
		for _, otherID := range s.candidates(body.Shape) {
			other, ok := s.bodies[otherID]
			if !ok || otherID == id || other.Tag != b {
				continue
			}
			if a == b && otherID < id {
				continue
			}
			if body.Shape.Collides(other.Shape) {
				pairs = append(pairs, Pair{A: id, B: otherID})
			}
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})
	return dedupe(pairs)
}

func dedupe(pairs []Pair) []Pair {
	if len(pairs) < 2 {
		return pairs
	}
	out := pairs[:1]
	for _, p := range pairs[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}

func hasTag(tag Tag, tags []Tag) bool {
	if len(tags) == 0 {
		return true
	}
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
