package raycursor

// Sphere represents a 3D sphere in world space.
type Sphere struct {
	Center Vector
	Radius float64
}

// NewSphere returns a new Sphere. A negative radius is clamped to 0.
func NewSphere(center Vector, radius float64) Sphere {
	if radius < 0 {
		radius = 0
	}
	return Sphere{Center: center, Radius: radius}
}

// NewSphereFromTransform returns the world-space Sphere for a local sphere (center, radius) placed with the given Transform.
// The radius is scaled by the Transform's X scale, like a host engine's sphere collider.
func NewSphereFromTransform(transform Transform, localCenter Vector, localRadius float64) Sphere {
	scale := transform.Scale.X
	if scale < 0 {
		scale = -scale
	}
	return NewSphere(transform.TransformPoint(localCenter), localRadius*scale)
}

// WorldSphere returns the Sphere itself, so a Sphere can be used directly as a SphereProvider.
func (sphere Sphere) WorldSphere() Sphere {
	return sphere
}

// PointInside returns whether the given point is inside of the sphere or not.
func (sphere Sphere) PointInside(point Vector) bool {
	return sphere.Center.DistanceSquaredTo(point) < sphere.Radius*sphere.Radius
}

// ClosestPoint returns the closest point, to the point given, on the inside or surface of the Sphere.
func (sphere Sphere) ClosestPoint(point Vector) Vector {
	delta := point.Sub(sphere.Center)
	if delta.MagnitudeSquared() <= sphere.Radius*sphere.Radius {
		return point
	}
	return sphere.Center.Add(delta.Unit().Scale(sphere.Radius))
}
