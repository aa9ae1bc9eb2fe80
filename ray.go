package raycursor

import (
	"math"
)

// RayHit represents the result of a raycast test.
type RayHit struct {
	Selectable *Selectable // Selectable is the registered object struck by the raycast; it's nil for raw shape tests.
	Position   Vector      // Position is the world position that the object was struck.
	Normal     Vector      // Normal is the normal of the surface the ray struck.
	from       Vector      // The starting position of the ray
}

// Distance returns the distance from the RayHit's originating ray source point to the struck position.
func (r RayHit) Distance() float64 {
	return r.from.DistanceTo(r.Position)
}

// RayTester is implemented by shapes that can be tested against a ray directly.
type RayTester interface {
	// RayTest casts the ray from its origin along its direction, up to maxDistance world units, returning the first
	// point struck on the shape and whether the shape was struck at all.
	RayTest(ray Line, maxDistance float64) (RayHit, bool)
}

// Raycaster finds the first registered object along a ray; *Registry implements it.
type Raycaster interface {
	RayTest(ray Line, maxDistance float64) (RayHit, bool)
}

// maxMarchSteps is the maximum number of steps taken when sphere tracing a shape that has no analytic ray test.
const maxMarchSteps = 128

// marchEpsilon is how close a ray has to get to a shape's surface while sphere tracing to count as a hit.
const marchEpsilon = 0.0001

// RayTest tests the ray against the Sphere.
func (sphere Sphere) RayTest(ray Line, maxDistance float64) (RayHit, bool) {

	if ray.Degenerate() {
		return RayHit{}, false
	}

	m := ray.Origin.Sub(sphere.Center)
	normal := ray.Direction.Unit()
	b := m.Dot(normal)
	c := m.Dot(m) - sphere.Radius*sphere.Radius

	// Origin outside of the sphere and pointing away from it
	if c > 0 && b > 0 {
		return RayHit{}, false
	}

	discr := b*b - c

	if discr < 0 {
		return RayHit{}, false
	}

	t := -b - math.Sqrt(discr)

	if t < 0 {
		t = 0
	}

	if t > maxDistance {
		return RayHit{}, false
	}

	strikePos := ray.Origin.Add(normal.Scale(t))

	hitNormal := strikePos.Sub(sphere.Center).Unit()
	if hitNormal.IsZero() {
		hitNormal = normal.Invert()
	}

	return RayHit{
		Position: strikePos,
		from:     ray.Origin,
		Normal:   hitNormal,
	}, true

}

// RayTest tests the ray against the Box, using a slab test in the box's own frame.
func (box *Box) RayTest(ray Line, maxDistance float64) (RayHit, bool) {

	if ray.Degenerate() {
		return RayHit{}, false
	}

	dir := ray.Direction.Unit()
	from := box.toLocal(ray.Origin)
	localDir := box.directionToLocal(dir)

	o := [3]float64{from.X, from.Y, from.Z}
	d := [3]float64{localDir.X, localDir.Y, localDir.Z}

	tmin := math.Inf(-1)
	tmax := math.Inf(1)
	hitAxis := -1
	hitSign := 0.0

	for i := 0; i < 3; i++ {

		if math.Abs(d[i]) < parallelEpsilon {
			// Parallel to this slab; either inside of it for the whole ray or never
			if o[i] < 0 || o[i] > box.lengths[i] {
				return RayHit{}, false
			}
			continue
		}

		t1 := (0 - o[i]) / d[i]
		t2 := (box.lengths[i] - o[i]) / d[i]
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}

		if t1 > tmin {
			tmin = t1
			hitAxis = i
			hitSign = sign
		}
		if t2 < tmax {
			tmax = t2
		}

		if tmin > tmax {
			return RayHit{}, false
		}

	}

	if tmax < 0 {
		return RayHit{}, false
	}

	vecLength := tmin
	hitNormal := dir.Invert()

	if tmin < 0 {
		vecLength = 0 // Origin inside the box
	} else if hitAxis >= 0 {
		hitNormal = box.axes[hitAxis].Scale(hitSign)
	}

	if vecLength > maxDistance {
		return RayHit{}, false
	}

	return RayHit{
		Position: ray.Origin.Add(dir.Scale(vecLength)),
		Normal:   hitNormal,
		from:     ray.Origin,
	}, true

}

// RayTest tests the ray against the Mesh by clipping it against the Mesh's face planes.
// A Mesh without any face planes can't be struck.
func (mesh *Mesh) RayTest(ray Line, maxDistance float64) (RayHit, bool) {

	if ray.Degenerate() || len(mesh.planes) == 0 {
		return RayHit{}, false
	}

	ray.Direction = ray.Direction.Unit()

	tmin, tmax, enter, ok := clipLine(mesh.planes, ray)
	if !ok || tmax < 0 {
		return RayHit{}, false
	}

	vecLength := tmin
	hitNormal := ray.Direction.Invert()

	if tmin < 0 {
		vecLength = 0
	} else if enter >= 0 {
		hitNormal = mesh.planes[enter].Normal
	}

	if vecLength > maxDistance {
		return RayHit{}, false
	}

	return RayHit{
		Position: ray.PointAt(vecLength),
		Normal:   hitNormal,
		from:     ray.Origin,
	}, true

}

// ShapeRayTest tests the ray against any shape. Shapes implementing RayTester are tested directly; other shapes are
// sphere traced using their closest point.
func ShapeRayTest(shape Shape, ray Line, maxDistance float64) (RayHit, bool) {

	if tester, ok := shape.(RayTester); ok {
		return tester.RayTest(ray, maxDistance)
	}

	return marchRay(func(p Vector) float64 { return DistanceShapePoint(shape, p) }, shape.ClosestPoint, ray, maxDistance)

}

// marchRay sphere traces along the ray using the given distance function; closest is used to derive the surface normal.
func marchRay(distance func(Vector) float64, closest func(Vector) Vector, ray Line, maxDistance float64) (RayHit, bool) {

	if ray.Degenerate() {
		return RayHit{}, false
	}

	dir := ray.Direction.Unit()
	t := 0.0
	prev := ray.Origin

	for i := 0; i < maxMarchSteps && t <= maxDistance; i++ {

		p := ray.Origin.Add(dir.Scale(t))
		d := distance(p)

		if d < marchEpsilon {

			hitNormal := dir.Invert()
			if i > 0 {
				if n := prev.Sub(closest(prev)).Unit(); !n.IsZero() {
					hitNormal = n
				}
			}

			return RayHit{
				Position: p,
				Normal:   hitNormal,
				from:     ray.Origin,
			}, true

		}

		prev = p
		t += d

	}

	return RayHit{}, false

}
