// Package physics holds the 2D math and collision primitives used by the
// simulation. Coordinates are screen space: X grows to the right and Y grows
// downward, so a positive heading turns clockwise on screen.
package physics

import "math"

// Vector2D is a point or displacement in screen space.
type Vector2D struct {
	X float64
	Y float64
}

// Add returns v + other.
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns v - other.
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scale multiplies both components by factor.
func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D{X: v.X * factor, Y: v.Y * factor}
}

// Length returns the magnitude of the vector.
func (v Vector2D) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// LengthSquared returns the squared magnitude, for comparisons.
func (v Vector2D) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns a unit vector with the same direction, or the zero
// vector when v has no length.
func (v Vector2D) Normalize() Vector2D {
	length := v.Length()
	if length == 0 {
		return Vector2D{}
	}
	return Vector2D{X: v.X / length, Y: v.Y / length}
}

// Distance returns the distance between two points.
func (v Vector2D) Distance(other Vector2D) float64 {
	return v.Sub(other).Length()
}

// Dot returns the dot product.
func (v Vector2D) Dot(other Vector2D) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Angle returns the direction of the vector in radians.
func (v Vector2D) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Rotate rotates the vector by angle radians. In screen space a positive
// angle rotates clockwise.
func (v Vector2D) Rotate(angle float64) Vector2D {
	sin, cos := math.Sincos(angle)
	return Vector2D{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// FromAngle builds a vector from an angle in radians and a magnitude.
func FromAngle(angle float64, magnitude float64) Vector2D {
	sin, cos := math.Sincos(angle)
	return Vector2D{X: magnitude * cos, Y: magnitude * sin}
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// PointAt converts a distance along a heading in degrees into a screen-space
// displacement. Headings are clockwise-positive, so the angle is negated
// before the trig and the Y component is negated again for the Y-down axis.
func PointAt(distance, angleDegrees float64) Vector2D {
	radians := -DegToRad(angleDegrees)
	return Vector2D{
		X: distance * math.Cos(radians),
		Y: -distance * math.Sin(radians),
	}
}

// HeadingTo returns the heading in degrees, in [0, 360), that PointAt would
// need to move from v toward target.
func (v Vector2D) HeadingTo(target Vector2D) float64 {
	deg := RadToDeg(target.Sub(v).Angle())
	if deg < 0 {
		deg += 360
	}
	return deg
}

// AngleDelta returns the signed shortest rotation in degrees, in
// (-180, 180], that turns heading from onto heading to.
func AngleDelta(from, to float64) float64 {
	d := math.Mod(to-from, 360)
	if d <= -180 {
		d += 360
	} else if d > 180 {
		d -= 360
	}
	return d
}
