package raycursor

import (
	"errors"
	"fmt"
)

// ErrInvalidMesh is returned when a Mesh's triangle indices don't describe triangles over its vertices.
var ErrInvalidMesh = errors.New("invalid mesh")

// Mesh represents a convex polyhedron in world space, stored as its vertices, its triangles (as index triplets
// into the vertices, wound counter-clockwise when seen from outside) and one outward-facing plane per triangle.
// Distances against non-convex meshes are computed as if the mesh were convex.
type Mesh struct {
	vertices  []Vector
	triangles [][3]int
	planes    []Plane
	edges     [][2]int
}

// NewMesh creates a new Mesh from world-space vertices and triangle indices (three per triangle).
// Triangles with two or more overlapping vertices are kept for closest point queries but produce no plane.
func NewMesh(vertices []Vector, indices []int) (*Mesh, error) {

	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: index count %d is not a multiple of 3", ErrInvalidMesh, len(indices))
	}

	mesh := &Mesh{
		vertices:  make([]Vector, len(vertices)),
		triangles: make([][3]int, 0, len(indices)/3),
	}
	copy(mesh.vertices, vertices)

	seenEdges := map[[2]int]bool{}

	for i := 0; i < len(indices); i += 3 {

		tri := [3]int{indices[i], indices[i+1], indices[i+2]}

		for _, index := range tri {
			if index < 0 || index >= len(vertices) {
				return nil, fmt.Errorf("%w: triangle %d refers to vertex %d out of %d", ErrInvalidMesh, i/3, index, len(vertices))
			}
		}

		mesh.triangles = append(mesh.triangles, tri)

		v0, v1, v2 := vertices[tri[0]], vertices[tri[1]], vertices[tri[2]]

		// Skip because the triangle is degenerate and a plane cannot be set from it
		if !(v0.Equals(v1) || v1.Equals(v2) || v2.Equals(v0)) {
			mesh.planes = append(mesh.planes, NewPlaneFromPoints(v0, v1, v2))
		}

		for e := 0; e < 3; e++ {
			a, b := tri[e], tri[(e+1)%3]
			if a > b {
				a, b = b, a
			}
			if key := [2]int{a, b}; !seenEdges[key] {
				seenEdges[key] = true
				mesh.edges = append(mesh.edges, key)
			}
		}

	}

	return mesh, nil

}

// NewMeshFromTransform creates a new Mesh out of local-space vertices placed in the world with the given Transform.
func NewMeshFromTransform(transform Transform, localVertices []Vector, indices []int) (*Mesh, error) {
	return NewMesh(transform.TransformPoints(localVertices), indices)
}

// WorldMesh returns the Mesh itself, so a Mesh can be used directly as a MeshProvider.
func (mesh *Mesh) WorldMesh() *Mesh {
	return mesh
}

// Vertices returns a copy of the Mesh's world-space vertices.
func (mesh *Mesh) Vertices() []Vector {
	out := make([]Vector, len(mesh.vertices))
	copy(out, mesh.vertices)
	return out
}

// Planes returns a copy of the Mesh's outward-facing face planes.
func (mesh *Mesh) Planes() []Plane {
	out := make([]Plane, len(mesh.planes))
	copy(out, mesh.planes)
	return out
}

// TriangleCount returns how many triangles compose the Mesh.
func (mesh *Mesh) TriangleCount() int {
	return len(mesh.triangles)
}

// Edges returns each unique edge of the Mesh's triangles as a pair of world-space points.
func (mesh *Mesh) Edges() [][2]Vector {
	return mesh.edgeSegments()
}

// Bounds returns the minimum and maximum corners of the Mesh's axis-aligned bounds. An empty Mesh returns zero vectors.
func (mesh *Mesh) Bounds() (min, max Vector) {
	if mesh.Empty() {
		return Vector{}, Vector{}
	}
	return vertexBounds(mesh.vertices)
}

// Empty returns true if the Mesh has no vertices.
func (mesh *Mesh) Empty() bool {
	return len(mesh.vertices) == 0
}

// ClosestPoint returns the closest point, to the point given, on the inside or surface of the Mesh.
// A Mesh with no triangles returns its closest vertex; an empty Mesh returns the point itself.
func (mesh *Mesh) ClosestPoint(point Vector) Vector {

	if len(mesh.vertices) == 0 {
		return point
	}

	if len(mesh.triangles) == 0 {
		closest := mesh.vertices[0]
		for _, v := range mesh.vertices[1:] {
			if v.DistanceSquaredTo(point) < closest.DistanceSquaredTo(point) {
				closest = v
			}
		}
		return closest
	}

	if len(mesh.planes) > 0 && mesh.PointInside(point) {
		return point
	}

	var closest Vector
	closestDist := -1.0

	for _, tri := range mesh.triangles {
		c := closestPointOnTri(point, mesh.vertices[tri[0]], mesh.vertices[tri[1]], mesh.vertices[tri[2]])
		if d := c.DistanceSquaredTo(point); closestDist < 0 || d < closestDist {
			closest = c
			closestDist = d
		}
	}

	return closest

}

// PointInside returns true if the point is behind (or on) every face plane of the Mesh.
func (mesh *Mesh) PointInside(point Vector) bool {
	if len(mesh.planes) == 0 {
		return false
	}
	for _, pl := range mesh.planes {
		if pl.SignedDistance(point) > 1e-9 {
			return false
		}
	}
	return true
}

func (mesh *Mesh) edgeSegments() [][2]Vector {
	out := make([][2]Vector, len(mesh.edges))
	for i, e := range mesh.edges {
		out[i] = [2]Vector{mesh.vertices[e[0]], mesh.vertices[e[1]]}
	}
	return out
}

func closestPointOnTri(point, v0, v1, v2 Vector) Vector {

	if !(v0.Equals(v1) || v1.Equals(v2) || v2.Equals(v0)) {
		plane := NewPlaneFromPoints(v0, v1, v2)
		if planePoint := plane.ClosestPoint(point); pointInsideTriangle(planePoint, v0, v1, v2) {
			return planePoint
		}
	}

	ab := closestPointOnSegment(point, v0, v1)
	bc := closestPointOnSegment(point, v1, v2)
	ca := closestPointOnSegment(point, v2, v0)

	closest := ab
	closestDist := point.DistanceSquaredTo(ab)

	bcDist := point.DistanceSquaredTo(bc)
	caDist := point.DistanceSquaredTo(ca)

	if bcDist < closestDist {
		closest = bc
		closestDist = bcDist
	}

	if caDist < closestDist {
		closest = ca
	}

	return closest

}

func pointInsideTriangle(point, v0, v1, v2 Vector) bool {

	ca := v2.Sub(v0)
	ba := v1.Sub(v0)
	pa := point.Sub(v0)

	dot00 := ca.Dot(ca)
	dot01 := ca.Dot(ba)
	dot02 := ca.Dot(pa)

	dot11 := ba.Dot(ba)
	dot12 := ba.Dot(pa)

	invDenom := 1.0 / ((dot00 * dot11) - (dot01 * dot01))
	u := ((dot11 * dot02) - (dot01 * dot12)) * invDenom
	v := ((dot00 * dot12) - (dot01 * dot02)) * invDenom

	return (u >= 0) && (v >= 0) && (u+v <= 1)

}

func closestPointOnSegment(point, start, end Vector) Vector {

	diff := end.Sub(start)
	dotB := diff.Dot(diff)
	if dotB == 0 {
		return start
	}
	dotA := point.Sub(start).Dot(diff)
	d := clamp(dotA/dotB, 0, 1)
	return start.Add(diff.Scale(d))

}
