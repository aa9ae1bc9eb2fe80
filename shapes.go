package raycursor

// Shape represents anything distances can be measured against. ClosestPoint returns the point on the shape
// closest to the given point; for solid shapes (spheres, boxes and meshes), a point inside the shape is its own
// closest point.
type Shape interface {
	ClosestPoint(point Vector) Vector
}

// Line represents an infinite line passing through Origin along Direction. Direction doesn't need to be normalized.
// A Line also stands in for the pointer's forward axis (a ray).
type Line struct {
	Origin    Vector
	Direction Vector
}

// NewLine returns a new Line.
func NewLine(origin, direction Vector) Line {
	return Line{Origin: origin, Direction: direction}
}

// Degenerate returns true if the Line's direction is too short to define a line.
func (line Line) Degenerate() bool {
	return line.Direction.MagnitudeSquared() < 1e-16
}

// PointAt returns the point at the given distance along the Line's normalized direction.
func (line Line) PointAt(distance float64) Vector {
	return line.Origin.Add(line.Direction.Unit().Scale(distance))
}

// ClosestPoint returns the point on the Line closest to the point given. A degenerate Line returns its origin.
func (line Line) ClosestPoint(point Vector) Vector {
	if line.Degenerate() {
		return line.Origin
	}
	t := point.Sub(line.Origin).Dot(line.Direction) / line.Direction.MagnitudeSquared()
	return line.Origin.Add(line.Direction.Scale(t))
}

// Plane represents an infinite plane with a unit Normal; the signed distance from a point p to the plane is Normal·p + Offset.
type Plane struct {
	Normal Vector
	Offset float64
}

// NewPlane returns a Plane facing along normal and passing through point.
func NewPlane(normal, point Vector) Plane {
	normal = normal.Unit()
	return Plane{Normal: normal, Offset: -normal.Dot(point)}
}

// NewPlaneFromPoints returns the Plane passing through the three points given. The normal faces the side from which
// a, b and c appear counter-clockwise.
func NewPlaneFromPoints(a, b, c Vector) Plane {
	return NewPlane(b.Sub(a).Cross(c.Sub(a)), a)
}

// SignedDistance returns the signed distance from the plane to the point; it's positive on the side the normal faces.
func (plane Plane) SignedDistance(point Vector) float64 {
	return plane.Normal.Dot(point) + plane.Offset
}

// ClosestPoint returns the projection of the point onto the plane.
func (plane Plane) ClosestPoint(point Vector) Vector {
	return point.Sub(plane.Normal.Scale(plane.SignedDistance(point)))
}

// Flipped returns the same plane facing the other way.
func (plane Plane) Flipped() Plane {
	return Plane{Normal: plane.Normal.Invert(), Offset: -plane.Offset}
}
