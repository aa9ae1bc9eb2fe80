package raycursor

import (
	"math"
)

// insideEpsilon is how close a point has to be to a solid shape's closest point to count as touching or inside it.
const insideEpsilon = 0.000001

// parallelEpsilon is the tolerance used when testing directions or normals for being parallel.
const parallelEpsilon = 1e-9

// Distance returns the minimum distance between two shapes. The result is symmetric (Distance(a, b) == Distance(b, a)).
// Supported shapes are points (Vector), Line, Plane, Sphere, *Box and *Mesh; any other Shape is treated as a generic
// closest point provider, which is only measurable against points.
//
// Distances involving spheres, boxes and meshes can be negative, indicating penetration depth; distances involving
// only points, lines and planes are unsigned, so a point below a plane is as far from it as a point above. The signed
// forms are SignedDistancePlanePoint, SignedDistancePlaneLine and SignedDistancePlanePlane (the last one is not
// symmetric). Degenerate input (a zero-length line direction, an empty mesh) and unsupported pairs return positive
// infinity.
func Distance(a, b Shape) float64 {

	ka, kb := shapeKindOf(a), shapeKindOf(b)
	if ka > kb {
		a, b = b, a
		ka, kb = kb, ka
	}

	switch ka {

	case kindPoint:
		p := a.(Vector)
		switch kb {
		case kindPoint:
			return DistancePointPoint(p, b.(Vector))
		case kindLine:
			return DistancePointLine(p, b.(Line))
		case kindPlane:
			return DistancePlanePoint(b.(Plane), p)
		case kindSphere:
			return DistanceSpherePoint(b.(Sphere), p)
		case kindBox:
			return DistanceBoxPoint(b.(*Box), p)
		case kindMesh:
			return DistanceMeshPoint(b.(*Mesh), p)
		default:
			return DistanceShapePoint(b, p)
		}

	case kindLine:
		l := a.(Line)
		switch kb {
		case kindLine:
			return DistanceLineLine(l, b.(Line))
		case kindPlane:
			return DistancePlaneLine(b.(Plane), l)
		case kindSphere:
			return DistanceSphereLine(b.(Sphere), l)
		case kindBox:
			return DistanceBoxLine(b.(*Box), l)
		case kindMesh:
			return DistanceMeshLine(b.(*Mesh), l)
		}

	case kindPlane:
		pl := a.(Plane)
		switch kb {
		case kindPlane:
			return DistancePlanePlane(pl, b.(Plane))
		case kindSphere:
			return DistanceSpherePlane(b.(Sphere), pl)
		case kindBox:
			return DistanceBoxPlane(b.(*Box), pl)
		case kindMesh:
			return DistanceMeshPlane(b.(*Mesh), pl)
		}

	case kindSphere:
		s := a.(Sphere)
		switch kb {
		case kindSphere:
			return DistanceSphereSphere(s, b.(Sphere))
		case kindBox:
			return DistanceBoxSphere(b.(*Box), s)
		case kindMesh:
			return DistanceMeshSphere(b.(*Mesh), s)
		}

	case kindBox:
		box := a.(*Box)
		switch kb {
		case kindBox:
			return DistanceBoxBox(box, b.(*Box))
		case kindMesh:
			return DistanceBoxMesh(box, b.(*Mesh))
		}

	case kindMesh:
		if kb == kindMesh {
			return DistanceMeshMesh(a.(*Mesh), b.(*Mesh))
		}

	}

	return math.Inf(1)

}

type shapeKind int

const (
	kindPoint shapeKind = iota
	kindLine
	kindPlane
	kindSphere
	kindBox
	kindMesh
	kindGeneric
)

func shapeKindOf(shape Shape) shapeKind {
	switch shape.(type) {
	case Vector:
		return kindPoint
	case Line:
		return kindLine
	case Plane:
		return kindPlane
	case Sphere:
		return kindSphere
	case *Box:
		return kindBox
	case *Mesh:
		return kindMesh
	}
	return kindGeneric
}

// DistancePointPoint returns the euclidean distance between the two points.
func DistancePointPoint(a, b Vector) float64 {
	return b.Sub(a).Magnitude()
}

// DistancePointLine returns the perpendicular distance between the point and the line.
func DistancePointLine(p Vector, l Line) float64 {
	if l.Degenerate() {
		return math.Inf(1)
	}
	return p.Sub(l.Origin).Cross(l.Direction).Magnitude() / l.Direction.Magnitude()
}

// DistanceLineLine returns the minimum distance between the two lines. Parallel lines measure the distance from
// one's origin to the other line.
func DistanceLineLine(x, y Line) float64 {
	if x.Degenerate() || y.Degenerate() {
		return math.Inf(1)
	}
	n := x.Direction.Unit().Cross(y.Direction.Unit())
	if n.Magnitude() < parallelEpsilon { // if parallel
		return DistancePointLine(y.Origin, x)
	}
	return math.Abs(n.Unit().Dot(y.Origin.Sub(x.Origin)))
}

// SignedDistancePlanePoint returns the signed distance between the plane and the point; the sign tells which side
// of the plane the point is on.
func SignedDistancePlanePoint(pl Plane, p Vector) float64 {
	return pl.SignedDistance(p)
}

// DistancePlanePoint returns the absolute distance between the plane and the point.
func DistancePlanePoint(pl Plane, p Vector) float64 {
	return math.Abs(SignedDistancePlanePoint(pl, p))
}

// SignedDistancePlaneLine returns the signed distance between the plane and the line. A line that isn't parallel
// to the plane crosses it, so its distance is 0.
func SignedDistancePlaneLine(pl Plane, l Line) float64 {
	if l.Degenerate() {
		return math.Inf(1)
	}
	if math.Abs(l.Direction.Unit().Dot(pl.Normal)) < parallelEpsilon { // plane parallel to line
		return SignedDistancePlanePoint(pl, l.Origin)
	}
	return 0
}

// DistancePlaneLine returns the absolute distance between the plane and the line; 0 if they aren't parallel.
func DistancePlaneLine(pl Plane, l Line) float64 {
	return math.Abs(SignedDistancePlaneLine(pl, l))
}

// SignedDistancePlanePlane returns the signed distance between both planes, signed by which side of p1 the p2 plane
// is on. Planes that aren't parallel intersect, so their distance is 0.
func SignedDistancePlanePlane(p1, p2 Plane) float64 {
	if p1.Normal.Cross(p2.Normal).Magnitude() < parallelEpsilon { // parallel
		return SignedDistancePlanePoint(p1, p2.ClosestPoint(Vector{}))
	}
	return 0
}

// DistancePlanePlane returns the absolute distance between both planes; 0 if they aren't parallel.
func DistancePlanePlane(p1, p2 Plane) float64 {
	return math.Abs(SignedDistancePlanePlane(p1, p2))
}

// DistanceSpherePoint returns the distance between the sphere's surface and the point. This ranges from 0 on the
// surface down to -radius at the center of the sphere.
func DistanceSpherePoint(s Sphere, p Vector) float64 {
	return DistancePointPoint(s.Center, p) - s.Radius
}

// DistanceSphereLine returns the distance between the sphere and the line. This is 0 for a tangent line and
// -radius for a line crossing the center of the sphere.
func DistanceSphereLine(s Sphere, l Line) float64 {
	return DistancePointLine(s.Center, l) - s.Radius
}

// DistanceSpherePlane returns the distance between the sphere and the plane. This is 0 for a tangent plane and
// -radius when the center of the sphere lies on the plane.
func DistanceSpherePlane(s Sphere, pl Plane) float64 {
	return DistancePlanePoint(pl, s.Center) - s.Radius
}

// DistanceSphereSphere returns the distance between both spheres, down to -(s1.Radius + s2.Radius) when their
// centers coincide.
func DistanceSphereSphere(s1, s2 Sphere) float64 {
	return DistancePointPoint(s1.Center, s2.Center) - s1.Radius - s2.Radius
}

// DistancePlanePoints returns the distance between a plane and the points composing an object. If every point lies
// on the same side of the plane, the result is the distance of the closest point. If the plane cuts through the
// points, the result is negative: the height of the smallest slice of the object cut off by the plane.
// An empty point set returns positive infinity.
func DistancePlanePoints(pl Plane, pts []Vector) float64 {

	if len(pts) == 0 {
		return math.Inf(1)
	}

	minDist := SignedDistancePlanePoint(pl, pts[0])
	maxDist := minDist
	for _, pt := range pts[1:] {
		d := SignedDistancePlanePoint(pl, pt)
		if d < minDist {
			minDist = d
		}
		if d > maxDist {
			maxDist = d
		}
	}

	if minDist < 0 && maxDist < 0 {
		return -maxDist // all points on the negative side
	}
	if minDist >= 0 && maxDist >= 0 {
		return minDist // all points on the positive side
	}
	return math.Max(minDist, -maxDist) // cut by the plane; keep the smallest part

}

// penetration returns the (non-positive) depth of a point inside a solid bounded by the given planes: the largest
// signed distance from the point to any face plane, capped at 0.
func penetration(planes []Plane, p Vector) float64 {
	maxD := math.Inf(-1)
	for _, pl := range planes {
		if d := SignedDistancePlanePoint(pl, p); d > maxD {
			maxD = d
		}
	}
	return math.Min(0, maxD)
}

// DistanceBoxPoint returns the minimum distance between the box and the point. If it's negative, it's the depth of
// the point inside the box, measured to the nearest face.
func DistanceBoxPoint(b *Box, p Vector) float64 {
	d := DistancePointPoint(p, b.ClosestPoint(p))
	if d < insideEpsilon {
		d = penetration(b.planes[:], p)
	}
	return d
}

// DistanceBoxLine returns the distance between the box and the line; 0 if the line goes through the box.
func DistanceBoxLine(b *Box, l Line) float64 {
	return convexLineDistance(b.planes[:], b.edges(), l)
}

// DistanceBoxPlane returns the distance between the box and the plane. If it's negative, it's the height of the
// smallest part of the box cut off by the plane.
func DistanceBoxPlane(b *Box, pl Plane) float64 {
	return DistancePlanePoints(pl, b.vertices[:])
}

// DistanceBoxSphere returns the distance between the box and the sphere. If it's negative, it's the depth of the
// sphere inside the box.
func DistanceBoxSphere(b *Box, s Sphere) float64 {
	return DistanceBoxPoint(b, s.Center) - s.Radius
}

// DistanceBoxBox approximates the minimum distance between both boxes, using the distance of each box's vertices to
// the other box. This can overestimate the separation of boxes that cross each other edge to edge without any vertex
// of one being inside the other.
func DistanceBoxBox(b1, b2 *Box) float64 {
	return vertexApproximation(
		b1.vertices[:], func(p Vector) float64 { return DistanceBoxPoint(b2, p) },
		b2.vertices[:], func(p Vector) float64 { return DistanceBoxPoint(b1, p) },
	)
}

// DistanceMeshPoint returns the minimum distance between the mesh and the point. If it's negative, it's the depth of
// the point inside the mesh, measured to the nearest face. An empty mesh returns positive infinity.
func DistanceMeshPoint(m *Mesh, p Vector) float64 {
	if m.Empty() {
		return math.Inf(1)
	}
	d := DistancePointPoint(p, m.ClosestPoint(p))
	if d < insideEpsilon && len(m.planes) > 0 {
		d = penetration(m.planes, p)
	}
	return d
}

// DistanceMeshLine returns the distance between the mesh and the line; 0 if the line goes through the mesh.
func DistanceMeshLine(m *Mesh, l Line) float64 {
	if m.Empty() {
		return math.Inf(1)
	}
	if len(m.edges) == 0 {
		closest := math.Inf(1)
		for _, v := range m.vertices {
			closest = math.Min(closest, DistancePointLine(v, l))
		}
		return closest
	}
	return convexLineDistance(m.planes, m.edgeSegments(), l)
}

// DistanceMeshPlane returns the distance between the mesh and the plane. If it's negative, it's the height of the
// smallest part of the mesh cut off by the plane.
func DistanceMeshPlane(m *Mesh, pl Plane) float64 {
	return DistancePlanePoints(pl, m.vertices)
}

// DistanceMeshSphere returns the distance between the mesh and the sphere. If it's negative, it's the depth of the
// sphere inside the mesh.
func DistanceMeshSphere(m *Mesh, s Sphere) float64 {
	return DistanceMeshPoint(m, s.Center) - s.Radius
}

// DistanceBoxMesh approximates the minimum distance between the box and the mesh, using the distance of each
// shape's vertices to the other shape (see DistanceBoxBox).
func DistanceBoxMesh(b *Box, m *Mesh) float64 {
	return vertexApproximation(
		m.vertices, func(p Vector) float64 { return DistanceBoxPoint(b, p) },
		b.vertices[:], func(p Vector) float64 { return DistanceMeshPoint(m, p) },
	)
}

// DistanceMeshMesh approximates the minimum distance between both meshes, using the distance of each mesh's
// vertices to the other mesh (see DistanceBoxBox).
func DistanceMeshMesh(m1, m2 *Mesh) float64 {
	return vertexApproximation(
		m1.vertices, func(p Vector) float64 { return DistanceMeshPoint(m2, p) },
		m2.vertices, func(p Vector) float64 { return DistanceMeshPoint(m1, p) },
	)
}

// DistanceShapePoint returns the distance between any shape and the point using the shape's closest point. It's
// never negative.
func DistanceShapePoint(s Shape, p Vector) float64 {
	return DistancePointPoint(s.ClosestPoint(p), p)
}

func vertexApproximation(aPts []Vector, toB func(Vector) float64, bPts []Vector, toA func(Vector) float64) float64 {
	closestDist := math.Inf(1)
	for _, pt := range aPts {
		if d := toB(pt); d < closestDist {
			closestDist = d
		}
	}
	for _, pt := range bPts {
		if d := toA(pt); d < closestDist {
			closestDist = d
		}
	}
	return closestDist
}

// clipLine clips the line against the convex volume bounded by the planes given, returning the parametric range
// (in units of the line's direction) that lies inside it, the index of the plane the line enters through (-1 if the
// line is never outside of the volume on its way in), and whether that range is non-empty.
func clipLine(planes []Plane, l Line) (tMin, tMax float64, enter int, ok bool) {

	tMin, tMax = math.Inf(-1), math.Inf(1)
	enter = -1

	for i, pl := range planes {

		denom := pl.Normal.Dot(l.Direction)
		num := pl.SignedDistance(l.Origin)

		if math.Abs(denom) < parallelEpsilon {
			if num > 0 {
				return 0, 0, -1, false // parallel and outside this face
			}
			continue
		}

		t := -num / denom
		if denom < 0 {
			if t > tMin { // entering
				tMin = t
				enter = i
			}
		} else {
			tMax = math.Min(tMax, t) // leaving
		}

		if tMin > tMax {
			return 0, 0, -1, false
		}

	}

	return tMin, tMax, enter, len(planes) > 0

}

func convexLineDistance(planes []Plane, edges [][2]Vector, l Line) float64 {

	if l.Degenerate() {
		return math.Inf(1)
	}

	if _, _, _, crosses := clipLine(planes, l); crosses {
		return 0
	}

	// A line that misses a convex shape is closest to one of its edges
	closest := math.Inf(1)
	for _, e := range edges {
		closest = math.Min(closest, distanceSegmentLine(e[0], e[1], l))
	}
	return closest

}

// distanceSegmentLine returns the minimum distance between the segment from a to b and the line.
func distanceSegmentLine(a, b Vector, l Line) float64 {

	dir := l.Direction.Unit()
	c0 := a.Sub(l.Origin).Cross(dir)
	c1 := b.Sub(a).Cross(dir)

	s := 0.0
	if den := c1.MagnitudeSquared(); den > 0 {
		s = clamp(-c0.Dot(c1)/den, 0, 1)
	}

	return c0.Add(c1.Scale(s)).Magnitude()

}
