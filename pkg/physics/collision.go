package physics

// Circle is the collider shape used by every entity.
type Circle struct {
	Center Vector2D
	Radius float64
}

// Collides reports whether two circles overlap. Touching edges do not count.
func (c Circle) Collides(other Circle) bool {
	return c.Center.Distance(other.Center) < c.Radius+other.Radius
}

// Clearance returns the gap between the edges of two circles. It is negative
// when they overlap.
func (c Circle) Clearance(other Circle) float64 {
	return c.Center.Distance(other.Center) - c.Radius - other.Radius
}

// Bounds returns the axis-aligned box enclosing the circle.
func (c Circle) Bounds() Rect {
	return Rect{Center: c.Center, Width: c.Radius * 2, Height: c.Radius * 2}
}

// CollisionResult contains information about a collision
type CollisionResult struct {
	Collided    bool
	Normal      Vector2D
	Penetration float64
}

// CheckCollision performs detailed collision detection between two circles.
// Normal points from a toward b.
func CheckCollision(a, b Circle) CollisionResult {
	normal := b.Center.Sub(a.Center)
	distance := normal.Length()
	if distance >= a.Radius+b.Radius {
		return CollisionResult{}
	}
	return CollisionResult{
		Collided:    true,
		Normal:      normal.Normalize(),
		Penetration: a.Radius + b.Radius - distance,
	}
}

// Rect is an axis-aligned rectangle described by its center.
type Rect struct {
	Center Vector2D
	Width  float64
	Height float64
}

// Contains reports whether point lies inside the rectangle. The left and
// top edges are inclusive, the right and bottom edges exclusive.
func (r Rect) Contains(point Vector2D) bool {
	return point.X >= r.Center.X-r.Width/2 &&
		point.X < r.Center.X+r.Width/2 &&
		point.Y >= r.Center.Y-r.Height/2 &&
		point.Y < r.Center.Y+r.Height/2
}

// Intersects reports whether two rectangles overlap or touch.
func (r Rect) Intersects(other Rect) bool {
	return !(other.Center.X-other.Width/2 > r.Center.X+r.Width/2 ||
		other.Center.X+other.Width/2 < r.Center.X-r.Width/2 ||
		other.Center.Y-other.Height/2 > r.Center.Y+r.Height/2 ||
		other.Center.Y+other.Height/2 < r.Center.Y-r.Height/2)
}

// Grow returns the rectangle expanded by margin on every side.
func (r Rect) Grow(margin float64) Rect {
	return Rect{Center: r.Center, Width: r.Width + 2*margin, Height: r.Height + 2*margin}
}

// maxQuadDepth bounds subdivision so that many bodies sharing one point
// cannot recurse forever.
const maxQuadDepth = 8

// QuadTree indexes body IDs by their center point.
type QuadTree struct {
	Boundary  Rect
	Capacity  int
	Points    []Vector2D
	IDs       []uint64
	Divided   bool
	NorthWest *QuadTree
	NorthEast *QuadTree
	SouthWest *QuadTree
	SouthEast *QuadTree

	depth int
}

// NewQuadTree creates a new quad tree with the given boundary and capacity
func NewQuadTree(boundary Rect, capacity int) *QuadTree {
	if capacity < 1 {
		capacity = 1
	}
	return &QuadTree{
		Boundary: boundary,
		Capacity: capacity,
		Points:   make([]Vector2D, 0, capacity),
		IDs:      make([]uint64, 0, capacity),
	}
}

// Insert adds id at point. It returns false when point is outside the tree.
func (qt *QuadTree) Insert(point Vector2D, id uint64) bool {
	if !qt.Boundary.Contains(point) {
		return false
	}

	if (len(qt.Points) < qt.Capacity || qt.depth >= maxQuadDepth) && !qt.Divided {
		qt.Points = append(qt.Points, point)
		qt.IDs = append(qt.IDs, id)
		return true
	}

	if !qt.Divided {
		qt.Subdivide()
	}

	return qt.NorthWest.Insert(point, id) ||
		qt.NorthEast.Insert(point, id) ||
		qt.SouthWest.Insert(point, id) ||
		qt.SouthEast.Insert(point, id)
}

// Subdivide splits the quadtree into four quadrants
func (qt *QuadTree) Subdivide() {
	x := qt.Boundary.Center.X
	y := qt.Boundary.Center.Y
	w := qt.Boundary.Width / 2
	h := qt.Boundary.Height / 2

	child := func(cx, cy float64) *QuadTree {
		c := NewQuadTree(Rect{Center: Vector2D{X: cx, Y: cy}, Width: w, Height: h}, qt.Capacity)
		c.depth = qt.depth + 1
		return c
	}
	qt.NorthWest = child(x-w/2, y-h/2)
	qt.NorthEast = child(x+w/2, y-h/2)
	qt.SouthWest = child(x-w/2, y+h/2)
	qt.SouthEast = child(x+w/2, y+h/2)
	qt.Divided = true
}

// Query appends to found every id whose point lies inside area.
func (qt *QuadTree) Query(area Rect, found []uint64) []uint64 {
	if !qt.Boundary.Intersects(area) {
		return found
	}

	for i, point := range qt.Points {
		if area.Contains(point) {
			found = append(found, qt.IDs[i])
		}
	}

	if !qt.Divided {
		return found
	}

	found = qt.NorthWest.Query(area, found)
	found = qt.NorthEast.Query(area, found)
	found = qt.SouthWest.Query(area, found)
	return qt.SouthEast.Query(area, found)
}

// Clear empties the tree and drops its children.
func (qt *QuadTree) Clear() {
	qt.Points = qt.Points[:0]
	qt.IDs = qt.IDs[:0]
	qt.Divided = false
	qt.NorthWest = nil
	qt.NorthEast = nil
	qt.SouthWest = nil
	qt.SouthEast = nil
}

// Len returns the number of ids stored in the tree.
func (qt *QuadTree) Len() int {
	n := len(qt.IDs)
	if qt.Divided {
		n += qt.NorthWest.Len() + qt.NorthEast.Len() + qt.SouthWest.Len() + qt.SouthEast.Len()
	}
	return n
}
