package raycursor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVector(t testing.TB, expected, actual Vector, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, expected.DistanceTo(actual) < 1e-6, append([]interface{}{"expected %v, got %v", expected, actual}, msgAndArgs...)...)
}

func TestLine(t *testing.T) {

	l := NewLine(NewVector(1, 0, 0), NewVector(0, 0, -4))

	assertVector(t, NewVector(1, 0, -2), l.PointAt(2))
	assertVector(t, NewVector(1, 0, 3), l.ClosestPoint(NewVector(5, 0, 3)))
	assert.False(t, l.Degenerate())

	degenerate := NewLine(NewVector(1, 2, 3), Vector{})
	assert.True(t, degenerate.Degenerate())
	assertVector(t, degenerate.Origin, degenerate.ClosestPoint(NewVector(9, 9, 9)))

}

func TestPlane(t *testing.T) {

	pl := NewPlaneFromPoints(NewVector(0, 1, 0), NewVector(0, 1, 1), NewVector(1, 1, 0))

	assertVector(t, VecY, pl.Normal)
	assert.InDelta(t, 2, pl.SignedDistance(NewVector(4, 3, -1)), testDelta)
	assertVector(t, NewVector(4, 1, -1), pl.ClosestPoint(NewVector(4, 3, -1)))
	assert.InDelta(t, -2, pl.Flipped().SignedDistance(NewVector(4, 3, -1)), testDelta)

}

func TestSphere(t *testing.T) {

	s := NewSphere(NewVector(0, 1, 0), 2)

	assert.True(t, s.PointInside(NewVector(1, 1, 0)))
	assert.False(t, s.PointInside(NewVector(3, 1, 0)))
	assertVector(t, NewVector(1, 1, 0), s.ClosestPoint(NewVector(1, 1, 0)))
	assertVector(t, NewVector(0, 3, 0), s.ClosestPoint(NewVector(0, 10, 0)))

	assert.Equal(t, 0.0, NewSphere(Vector{}, -1).Radius)

	scaled := NewSphereFromTransform(NewTransform().WithPosition(NewVector(1, 0, 0)).WithScale(NewVector(-3, 1, 1)), NewVector(1, 0, 0), 0.5)
	assert.InDelta(t, 1.5, scaled.Radius, testDelta)
	assertVector(t, NewVector(-2, 0, 0), scaled.Center)

}

func TestBox(t *testing.T) {

	box := NewBoxAABB(NewVector(1, 2, 3), NewVector(2, 4, 6))

	assertVector(t, NewVector(1, 2, 3), box.Center())
	assertVector(t, NewVector(1, 2, 3), box.HalfExtents())
	assert.Len(t, box.Vertices(), 8)
	assert.Len(t, box.Planes(), 6)

	assert.True(t, box.PointInside(NewVector(1, 2, 3)))
	assert.True(t, box.PointInside(NewVector(2, 4, 6)))
	assert.False(t, box.PointInside(NewVector(2.1, 2, 3)))

	assertVector(t, NewVector(1.5, 2, 3), box.ClosestPoint(NewVector(1.5, 2, 3)))
	assertVector(t, NewVector(2, 4, 3), box.ClosestPoint(NewVector(5, 7, 3)))

	for _, pl := range box.Planes() {
		assert.Less(t, pl.SignedDistance(box.Center()), 0.0, "planes face outwards")
	}

	// Flat boxes keep a tiny volume
	flat := NewBoxAABB(Vector{}, NewVector(1, 0, 1))
	assert.Greater(t, flat.HalfExtents().Y, 0.0)

	rotated := NewBox(
		NewTransform().WithRotation(NewQuaternionFromAxisAngle(VecZ, ToRadians(90))).WithScale(NewVector(2, 1, 1)),
		Vector{},
		NewVector(1, 1, 1),
	)
	// Scaled along X, then turned so that X points up
	assert.True(t, rotated.PointInside(NewVector(0, 0.9, 0)))
	assert.False(t, rotated.PointInside(NewVector(0.9, 0, 0)))
	assertVector(t, NewVector(1, 0.5, 0.5), rotated.HalfExtents())

}

func TestNewShapeFromCorners(t *testing.T) {

	cornersOf := func(origin, x, y, z Vector) [8]Vector {
		var corners [8]Vector
		for i := range corners {
			c := origin
			if i&4 != 0 {
				c = c.Add(x)
			}
			if i&2 != 0 {
				c = c.Add(y)
			}
			if i&1 != 0 {
				c = c.Add(z)
			}
			corners[i] = c
		}
		return corners
	}

	// Right angles make a Box
	box, ok := NewShapeFromCorners(cornersOf(Vector{}, NewVector(2, 0, 0), NewVector(0, 1, 0), NewVector(0, 0, 1))).(*Box)
	require.True(t, ok)
	assertVector(t, NewVector(1, 0.5, 0.5), box.Center())

	// A sheared box becomes a convex mesh
	sheared := cornersOf(Vector{}, NewVector(2, 0, 0), NewVector(1, 1, 0), NewVector(0, 0, 1))
	mesh, ok := NewShapeFromCorners(sheared).(*Mesh)
	require.True(t, ok)
	assert.Equal(t, 12, mesh.TriangleCount())

	center := NewVector(1.5, 0.5, 0.5)
	assert.True(t, mesh.PointInside(center))
	assert.True(t, mesh.PointInside(NewVector(1.5, 0.5, 0.9)))
	assert.False(t, mesh.PointInside(NewVector(0.2, 0.5, 0.5)), "outside the slanted face")
	assert.InDelta(t, -0.5, DistanceMeshPoint(mesh, center), testDelta)
	assert.InDelta(t, 0.5, DistanceMeshPoint(mesh, NewVector(1.5, 0.5, 1.5)), testDelta)

	for _, pl := range mesh.Planes() {
		assert.Less(t, pl.SignedDistance(center), 0.0, "planes face outwards")
	}

	// Mirrored corners still get outward planes
	for i := range sheared {
		sheared[i].X = -sheared[i].X
	}
	mirrored := NewShapeFromCorners(sheared).(*Mesh)
	for _, pl := range mirrored.Planes() {
		assert.Less(t, pl.SignedDistance(NewVector(-1.5, 0.5, 0.5)), 0.0, "planes face outwards")
	}

}

func TestMesh(t *testing.T) {

	mesh := unitCubeMesh(t, NewVector(0, 0, 0))

	assert.Equal(t, 12, mesh.TriangleCount())
	assert.Len(t, mesh.Planes(), 12)
	assert.Len(t, mesh.Vertices(), 8)
	assert.Len(t, mesh.Edges(), 18) // 12 sides and a diagonal per face

	lo, hi := mesh.Bounds()
	assertVector(t, NewVector(-0.5, -0.5, -0.5), lo)
	assertVector(t, NewVector(0.5, 0.5, 0.5), hi)

	assert.True(t, mesh.PointInside(NewVector(0.1, 0.2, -0.3)))
	assert.False(t, mesh.PointInside(NewVector(0, 0.6, 0)))
	assertVector(t, NewVector(0.5, 0.2, 0), mesh.ClosestPoint(NewVector(3, 0.2, 0)))
	assertVector(t, NewVector(0.1, 0.2, 0.3), mesh.ClosestPoint(NewVector(0.1, 0.2, 0.3)))

	for _, pl := range mesh.Planes() {
		assert.Less(t, pl.SignedDistance(Vector{}), 0.0, "planes face outwards")
	}

}

func TestMeshInvalid(t *testing.T) {

	_, err := NewMesh([]Vector{{}, {1, 0, 0}, {0, 1, 0}}, []int{0, 1})
	assert.ErrorIs(t, err, ErrInvalidMesh)

	_, err = NewMesh([]Vector{{}, {1, 0, 0}, {0, 1, 0}}, []int{0, 1, 3})
	assert.ErrorIs(t, err, ErrInvalidMesh)

	// Degenerate triangles are kept, but give no plane
	mesh, err := NewMesh([]Vector{{}, {1, 0, 0}, {1, 0, 0}}, []int{0, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, 1, mesh.TriangleCount())
	assert.Empty(t, mesh.Planes())
	assert.False(t, mesh.PointInside(Vector{}))

	// A point cloud measures to its closest vertex
	cloud, err := NewMesh([]Vector{{0, 0, 0}, {4, 0, 0}}, nil)
	require.NoError(t, err)
	assertVector(t, NewVector(4, 0, 0), cloud.ClosestPoint(NewVector(3, 1, 0)))
	assert.InDelta(t, math.Sqrt2, DistanceMeshPoint(cloud, NewVector(3, 1, 0)), testDelta)

}

func TestTransform(t *testing.T) {

	transform := NewTransform().
		WithPosition(NewVector(1, 2, 3)).
		WithRotation(NewQuaternionFromAxisAngle(VecY, ToRadians(90))).
		WithScale(NewVector(2, 2, 2))

	// X turns into -Z around Y
	assertVector(t, NewVector(1, 2, 1), transform.TransformPoint(NewVector(1, 0, 0)))
	assertVector(t, NewVector(0, 0, -2), transform.TransformVector(NewVector(1, 0, 0)))

	// A zero rotation is treated as no rotation
	zero := Transform{Scale: NewVector(1, 1, 1)}
	assertVector(t, NewVector(1, 0, 0), zero.TransformPoint(NewVector(1, 0, 0)))

}

func TestTransformFromMatrix(t *testing.T) {

	original := NewTransform().
		WithPosition(NewVector(-4, 0.5, 2)).
		WithRotation(NewQuaternionFromAxisAngle(NewVector(1, 1, 0), 0.7)).
		WithScale(NewVector(1, 2, 3))

	// Build the column-major matrix from the transformed basis
	var m [16]float64
	for c, axis := range []Vector{VecX, VecY, VecZ} {
		col := original.TransformVector(axis)
		m[c*4], m[c*4+1], m[c*4+2] = col.X, col.Y, col.Z
	}
	m[12], m[13], m[14], m[15] = original.Position.X, original.Position.Y, original.Position.Z, 1

	decomposed := NewTransformFromMatrix(m)

	assertVector(t, original.Scale, decomposed.Scale)
	assertVector(t, original.Position, decomposed.Position)

	for _, p := range []Vector{{1, 0, 0}, {0, 1, 0}, {0.3, -2, 5}} {
		assertVector(t, original.TransformPoint(p), decomposed.TransformPoint(p))
	}

}

func TestQuaternion(t *testing.T) {

	assertVector(t, WorldForward, NewQuaternionIdentity().Forward())
	assert.InDelta(t, 90, ToDegrees(math.Pi/2), testDelta)

	yaw := NewQuaternionFromAxisAngle(VecY, ToRadians(90))
	assertVector(t, NewVector(-1, 0, 0), yaw.Forward())
	assertVector(t, NewVector(0, 0, -1), yaw.Conjugate().Mult(yaw).Forward())

	half := NewQuaternionIdentity().Slerp(yaw, 0.5)
	assertVector(t, NewQuaternionFromAxisAngle(VecY, ToRadians(45)).Forward(), half.Forward())

	assert.Equal(t, NewQuaternionIdentity(), Quaternion{}.Unit())

	// Rebuilding a rotation from its matrix
	q := NewQuaternionFromAxisAngle(NewVector(0.2, -1, 0.4), 2.5)
	x, y, z := q.RotateVec(VecX), q.RotateVec(VecY), q.RotateVec(VecZ)
	fromMatrix := NewQuaternionFromMatrix([3][3]float64{
		{x.X, y.X, z.X},
		{x.Y, y.Y, z.Y},
		{x.Z, y.Z, z.Z},
	})
	assert.InDelta(t, 1, math.Abs(q.Dot(fromMatrix)), 1e-9)

}
