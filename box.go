package raycursor

import "math"

// boxEdges lists the vertex index pairs that form the 12 edges of a Box.
var boxEdges = [12][2]int{
	{0, 1}, {0, 2}, {0, 4}, {1, 3}, {1, 5}, {2, 3},
	{2, 6}, {3, 7}, {4, 5}, {4, 6}, {5, 7}, {6, 7},
}

// Box represents an oriented bounding box in world space. It's stored canonically as its 8 world-space vertices,
// ordered like the corners of a min / max bounds ({min.x, min.y, min.z}, {min.x, min.y, max.z}, {min.x, max.y, min.z}...
// up to {max.x, max.y, max.z}), alongside the 6 outward-facing planes derived from them.
type Box struct {
	vertices [8]Vector
	planes   [6]Plane

	// The box's frame, used for closest point queries: vertex 0 as the origin, and the three edges leaving it.
	axes    [3]Vector
	lengths [3]float64
}

// NewBox returns a new Box for the local bounds centered at localCenter with the given localSize, placed in the world
// with the Transform provided. Sizes of 0 or less are bumped up to a tiny minimum so the box keeps a volume.
func NewBox(transform Transform, localCenter, localSize Vector) *Box {

	min := 0.00001
	if localSize.X <= 0 {
		localSize.X = min
	}
	if localSize.Y <= 0 {
		localSize.Y = min
	}
	if localSize.Z <= 0 {
		localSize.Z = min
	}

	lo := localCenter.Sub(localSize.Scale(0.5))
	hi := localCenter.Add(localSize.Scale(0.5))

	corners := [8]Vector{
		{lo.X, lo.Y, lo.Z},
		{lo.X, lo.Y, hi.Z},
		{lo.X, hi.Y, lo.Z},
		{lo.X, hi.Y, hi.Z},
		{hi.X, lo.Y, lo.Z},
		{hi.X, lo.Y, hi.Z},
		{hi.X, hi.Y, lo.Z},
		{hi.X, hi.Y, hi.Z},
	}

	for i, c := range corners {
		corners[i] = transform.TransformPoint(c)
	}
	return NewBoxFromVertices(corners)

}

// boxTriangles lists the 12 triangles of a Box's faces as vertex indices, wound counter-clockwise seen from outside.
var boxTriangles = []int{
	0, 1, 3, 0, 3, 2, // -X
	4, 6, 7, 4, 7, 5, // +X
	0, 4, 5, 0, 5, 1, // -Y
	2, 3, 7, 2, 7, 6, // +Y
	0, 2, 6, 0, 6, 4, // -Z
	1, 5, 7, 1, 7, 3, // +Z
}

// NewBoxFromVertices returns a new Box from its 8 world-space vertices, which must follow the canonical min / max
// corner ordering and form a rectangular cuboid: the three edges leaving vertex 0 must be at right angles to each other.
// Corners that are sheared should be passed to NewShapeFromCorners instead.
func NewBoxFromVertices(vertices [8]Vector) *Box {
	box := &Box{vertices: vertices}
	box.update()
	return box
}

// NewShapeFromCorners returns a Box for the 8 corners given (in the canonical min / max ordering) if their edges are
// at right angles, and a convex Mesh of the same corners otherwise (for example, a box placed under a rotation and a
// non-uniform scale).
func NewShapeFromCorners(corners [8]Vector) Shape {

	if cornersRectangular(corners) {
		return NewBoxFromVertices(corners)
	}

	indices := make([]int, len(boxTriangles))
	copy(indices, boxTriangles)

	// Mirrored corners flip the winding
	e0, e1, e2 := corners[4].Sub(corners[0]), corners[2].Sub(corners[0]), corners[1].Sub(corners[0])
	if e0.Cross(e1).Dot(e2) < 0 {
		for i := 0; i < len(indices); i += 3 {
			indices[i+1], indices[i+2] = indices[i+2], indices[i+1]
		}
	}

	// The indices are always in range, so this can't fail
	mesh, _ := NewMesh(corners[:], indices)
	return mesh

}

func cornersRectangular(corners [8]Vector) bool {
	axes := [3]Vector{
		corners[4].Sub(corners[0]).Unit(),
		corners[2].Sub(corners[0]).Unit(),
		corners[1].Sub(corners[0]).Unit(),
	}
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if math.Abs(axes[i].Dot(axes[j])) > 1e-6 {
				return false
			}
		}
	}
	return true
}

// NewBoxAABB returns an axis-aligned Box centered at center with the given size.
func NewBoxAABB(center, size Vector) *Box {
	return NewBox(NewTransform().WithPosition(center), Vector{}, size)
}

func (box *Box) update() {

	pts := box.vertices

	box.planes = [6]Plane{
		NewPlane(pts[0].Sub(pts[1]), pts[0]),
		NewPlane(pts[1].Sub(pts[0]), pts[1]),
		NewPlane(pts[0].Sub(pts[2]), pts[0]),
		NewPlane(pts[2].Sub(pts[0]), pts[2]),
		NewPlane(pts[0].Sub(pts[4]), pts[0]),
		NewPlane(pts[4].Sub(pts[0]), pts[4]),
	}

	for i, corner := range [3]int{4, 2, 1} {
		edge := pts[corner].Sub(pts[0])
		box.lengths[i] = edge.Magnitude()
		box.axes[i] = edge.Unit()
	}

}

// WorldBox returns the Box itself, so a Box can be used directly as a BoxProvider.
func (box *Box) WorldBox() *Box {
	return box
}

// Vertices returns a copy of the Box's 8 world-space vertices.
func (box *Box) Vertices() []Vector {
	out := make([]Vector, 8)
	copy(out, box.vertices[:])
	return out
}

// Planes returns a copy of the Box's 6 outward-facing planes.
func (box *Box) Planes() []Plane {
	out := make([]Plane, 6)
	copy(out, box.planes[:])
	return out
}

// Center returns the center of the Box.
func (box *Box) Center() Vector {
	return box.vertices[0].Lerp(box.vertices[7], 0.5)
}

// HalfExtents returns half of the Box's size along each of its own axes (X, Y and Z).
func (box *Box) HalfExtents() Vector {
	return NewVector(box.lengths[0]/2, box.lengths[1]/2, box.lengths[2]/2)
}

// ClosestPoint returns the closest point, to the point given, on the inside or surface of the Box.
func (box *Box) ClosestPoint(point Vector) Vector {

	rel := point.Sub(box.vertices[0])
	out := box.vertices[0]

	for i := range box.axes {
		d := clamp(rel.Dot(box.axes[i]), 0, box.lengths[i])
		out = out.Add(box.axes[i].Scale(d))
	}

	return out

}

// PointInside returns true if the point is inside of the Box (or on its surface).
func (box *Box) PointInside(point Vector) bool {
	for _, pl := range box.planes {
		if pl.SignedDistance(point) > 1e-9 {
			return false
		}
	}
	return true
}

// toLocal returns the point in the box's own frame, relative to vertex 0 and measured along the box's axes.
func (box *Box) toLocal(point Vector) Vector {
	rel := point.Sub(box.vertices[0])
	return NewVector(rel.Dot(box.axes[0]), rel.Dot(box.axes[1]), rel.Dot(box.axes[2]))
}

// directionToLocal converts a world direction into the box's frame.
func (box *Box) directionToLocal(dir Vector) Vector {
	return NewVector(dir.Dot(box.axes[0]), dir.Dot(box.axes[1]), dir.Dot(box.axes[2]))
}

func (box *Box) edges() [][2]Vector {
	out := make([][2]Vector, len(boxEdges))
	for i, e := range boxEdges {
		out[i] = [2]Vector{box.vertices[e[0]], box.vertices[e[1]]}
	}
	return out
}
