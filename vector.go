package raycursor

import (
	"math"
)

// VecX represents a unit vector pointing right on the right-handed coordinate system raycursor uses.
var VecX = NewVector(1, 0, 0)

// VecY represents a unit vector pointing upwards.
var VecY = NewVector(0, 1, 0)

// VecZ represents a unit vector pointing backwards, towards the viewer.
var VecZ = NewVector(0, 0, 1)

// WorldForward is the direction a pointer with an identity rotation faces (-Z, like an OpenGL camera).
var WorldForward = NewVector(0, 0, -1)

// Vector represents a 3D Vector, used for positions, directions and sizes in world space.
// Any Vector functions that modify the calling Vector return copies of the modified Vector, meaning you can do method-chaining easily.
// A Point is simply a Vector interpreted as a position.
type Vector struct {
	X float64 // The X (1st) component of the Vector
	Y float64 // The Y (2nd) component of the Vector
	Z float64 // The Z (3rd) component of the Vector
}

// NewVector creates a new Vector with the specified x, y, and z components.
func NewVector(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

// NewVectorZero creates a new "zero-ed out" Vector.
func NewVectorZero() Vector {
	return Vector{}
}

// Add returns a copy of the calling vector, added together with the other Vector provided.
func (vec Vector) Add(other Vector) Vector {
	vec.X += other.X
	vec.Y += other.Y
	vec.Z += other.Z
	return vec
}

// Sub returns a copy of the calling Vector, with the other Vector subtracted from it.
func (vec Vector) Sub(other Vector) Vector {
	vec.X -= other.X
	vec.Y -= other.Y
	vec.Z -= other.Z
	return vec
}

// Cross returns a new Vector, indicating the cross product of the calling Vector and the provided Other Vector.
func (vec Vector) Cross(other Vector) Vector {

	ogVecY := vec.Y
	ogVecZ := vec.Z

	vec.Z = vec.X*other.Y - other.X*vec.Y
	vec.Y = ogVecZ*other.X - other.Z*vec.X
	vec.X = ogVecY*other.Z - other.Y*ogVecZ

	return vec

}

// Invert returns a copy of the Vector pointing the opposite way.
func (vec Vector) Invert() Vector {
	vec.X = -vec.X
	vec.Y = -vec.Y
	vec.Z = -vec.Z
	return vec
}

// Magnitude returns the length of the Vector.
func (vec Vector) Magnitude() float64 {
	return math.Sqrt(vec.X*vec.X + vec.Y*vec.Y + vec.Z*vec.Z)
}

// MagnitudeSquared returns the squared length of the Vector; this is faster than Magnitude() as it avoids using math.Sqrt().
func (vec Vector) MagnitudeSquared() float64 {
	return vec.X*vec.X + vec.Y*vec.Y + vec.Z*vec.Z
}

// DistanceTo returns the euclidean distance between the two points.
func (vec Vector) DistanceTo(other Vector) float64 {
	return vec.Sub(other).Magnitude()
}

// DistanceSquaredTo returns the squared euclidean distance between the two points.
func (vec Vector) DistanceSquaredTo(other Vector) float64 {
	return vec.Sub(other).MagnitudeSquared()
}

// MultComp multiplies the Vector by the other Vector component by component.
func (vec Vector) MultComp(other Vector) Vector {
	vec.X *= other.X
	vec.Y *= other.Y
	vec.Z *= other.Z
	return vec
}

// Unit returns a copy of the Vector, normalized (set to be of unit length).
// A zero Vector is returned unchanged.
func (vec Vector) Unit() Vector {
	l := vec.Magnitude()
	if l < 1e-8 {
		// If it's 0, then don't modify the vector
		return vec
	}
	vec.X, vec.Y, vec.Z = vec.X/l, vec.Y/l, vec.Z/l
	return vec
}

// Scale scales a Vector by the given scalar.
func (vec Vector) Scale(scalar float64) Vector {
	vec.X *= scalar
	vec.Y *= scalar
	vec.Z *= scalar
	return vec
}

// Divide divides a Vector by the given scalar.
func (vec Vector) Divide(scalar float64) Vector {
	vec.X /= scalar
	vec.Y /= scalar
	vec.Z /= scalar
	return vec
}

// Dot returns the dot product of a Vector and another Vector.
func (vec Vector) Dot(other Vector) float64 {
	return vec.X*other.X + vec.Y*other.Y + vec.Z*other.Z
}

// Lerp linearly interpolates from the calling Vector towards the other one by the percentage given.
func (vec Vector) Lerp(other Vector, percentage float64) Vector {
	return vec.Add(other.Sub(vec).Scale(percentage))
}

// Min returns a Vector made of the smallest components of both Vectors.
func (vec Vector) Min(other Vector) Vector {
	vec.X = math.Min(vec.X, other.X)
	vec.Y = math.Min(vec.Y, other.Y)
	vec.Z = math.Min(vec.Z, other.Z)
	return vec
}

// Max returns a Vector made of the largest components of both Vectors.
func (vec Vector) Max(other Vector) Vector {
	vec.X = math.Max(vec.X, other.X)
	vec.Y = math.Max(vec.Y, other.Y)
	vec.Z = math.Max(vec.Z, other.Z)
	return vec
}

// Clamp returns a copy of the Vector with each component clamped between the components of min and max.
func (vec Vector) Clamp(min, max Vector) Vector {
	vec.X = clamp(vec.X, min.X, max.X)
	vec.Y = clamp(vec.Y, min.Y, max.Y)
	vec.Z = clamp(vec.Z, min.Z, max.Z)
	return vec
}

// Equals returns true if the two Vectors are close enough in all values.
func (vec Vector) Equals(other Vector) bool {

	eps := 1e-8

	if math.Abs(vec.X-other.X) > eps || math.Abs(vec.Y-other.Y) > eps || math.Abs(vec.Z-other.Z) > eps {
		return false
	}

	return true

}

// IsZero returns true if the values in the Vector are extremely close to 0.
func (vec Vector) IsZero() bool {
	return vec.Equals(Vector{})
}

// IsFinite returns true if none of the Vector's components are NaN or infinite.
func (vec Vector) IsFinite() bool {
	return isFinite(vec.X) && isFinite(vec.Y) && isFinite(vec.Z)
}

// ClosestPoint returns the Vector itself; a point is its own closest point.
func (vec Vector) ClosestPoint(point Vector) Vector {
	return vec
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
