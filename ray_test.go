package raycursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var forwardRay = NewLine(Vector{}, WorldForward)

func TestSphereRayTest(t *testing.T) {

	sphere := NewSphere(NewVector(0, 0, -5), 1)

	hit, ok := sphere.RayTest(forwardRay, FarDistance)
	require.True(t, ok)
	assertVector(t, NewVector(0, 0, -4), hit.Position)
	assertVector(t, VecZ, hit.Normal)
	assert.InDelta(t, 4, hit.Distance(), 1e-9)
	assert.Nil(t, hit.Selectable)

	_, ok = sphere.RayTest(forwardRay, 3)
	assert.False(t, ok, "out of range")

	_, ok = sphere.RayTest(NewLine(Vector{}, VecZ), FarDistance)
	assert.False(t, ok, "pointing away")

	_, ok = sphere.RayTest(NewLine(NewVector(0, 2, 0), WorldForward), FarDistance)
	assert.False(t, ok, "passing by")

	hit, ok = sphere.RayTest(NewLine(NewVector(0, 0, -5.5), VecX), FarDistance)
	require.True(t, ok, "starting inside")
	assert.InDelta(t, 0, hit.Distance(), 1e-9)

	_, ok = sphere.RayTest(NewLine(Vector{}, Vector{}), FarDistance)
	assert.False(t, ok, "degenerate")

}

func TestBoxRayTest(t *testing.T) {

	box := NewBoxAABB(NewVector(0, 0, -5), NewVector(2, 2, 2))

	hit, ok := box.RayTest(forwardRay, FarDistance)
	require.True(t, ok)
	assertVector(t, NewVector(0, 0, -4), hit.Position)
	assertVector(t, VecZ, hit.Normal)

	// Hitting the side of the box at an angle
	hit, ok = box.RayTest(NewLine(NewVector(-3, 0.5, -5), NewVector(1, 0, 0.1)), FarDistance)
	require.True(t, ok)
	assertVector(t, NewVector(-1, 0.5, -4.8), hit.Position)
	assertVector(t, NewVector(-1, 0, 0), hit.Normal)

	_, ok = box.RayTest(NewLine(NewVector(0, 1.5, 0), WorldForward), FarDistance)
	assert.False(t, ok, "passing over")

	_, ok = box.RayTest(forwardRay, 2)
	assert.False(t, ok, "out of range")

	hit, ok = box.RayTest(NewLine(NewVector(0, 0, -5), VecY), FarDistance)
	require.True(t, ok, "starting inside")
	assertVector(t, NewVector(0, 0, -5), hit.Position)

	rotated := NewBox(
		NewTransform().WithPosition(NewVector(0, 0, -5)).WithRotation(NewQuaternionFromAxisAngle(VecY, ToRadians(45))),
		Vector{},
		NewVector(2, 2, 2),
	)
	hit, ok = rotated.RayTest(forwardRay, FarDistance)
	require.True(t, ok)
	assert.InDelta(t, 5-1.4142135623730951, hit.Distance(), 1e-9, "struck on the corner edge")

}

func TestMeshRayTest(t *testing.T) {

	mesh := unitCubeMesh(t, NewVector(0, 0, -5))

	hit, ok := mesh.RayTest(forwardRay, FarDistance)
	require.True(t, ok)
	assertVector(t, NewVector(0, 0, -4.5), hit.Position)
	assertVector(t, VecZ, hit.Normal)

	_, ok = mesh.RayTest(NewLine(NewVector(2, 0, 0), WorldForward), FarDistance)
	assert.False(t, ok)

	_, ok = mesh.RayTest(NewLine(Vector{}, VecZ), FarDistance)
	assert.False(t, ok, "behind the ray")

	hit, ok = mesh.RayTest(NewLine(NewVector(0, 0, -5), VecX), FarDistance)
	require.True(t, ok, "starting inside")
	assert.InDelta(t, 0, hit.Distance(), 1e-9)

}

func TestShapeRayTest(t *testing.T) {

	generic := genericShape{NewSphere(NewVector(0, 0, -5), 1)}

	hit, ok := ShapeRayTest(generic, forwardRay, FarDistance)
	require.True(t, ok)
	assertVector(t, NewVector(0, 0, -4), hit.Position)
	assertVector(t, VecZ, hit.Normal)

	_, ok = ShapeRayTest(generic, NewLine(NewVector(3, 0, 0), WorldForward), FarDistance)
	assert.False(t, ok)

	// Shapes with their own ray test use it
	hit, ok = ShapeRayTest(NewBoxAABB(NewVector(0, 0, -5), NewVector(2, 2, 2)), forwardRay, FarDistance)
	require.True(t, ok)
	assert.InDelta(t, 4, hit.Distance(), 1e-9)

}

func TestRegistryRayTest(t *testing.T) {

	registry := NewRegistry()

	far := NewSelectable("far", NewSphere(NewVector(0, 0, -10), 1))
	near := NewSelectable("near", NewBoxAABB(NewVector(0, 0, -4), NewVector(1, 1, 1)))
	aside := NewSelectable("aside", NewSphere(NewVector(5, 0, -2), 1))

	for _, s := range []*Selectable{far, near, aside} {
		s.Enable(registry)
	}

	hit, ok := registry.RayTest(forwardRay, FarDistance)
	require.True(t, ok)
	assert.Same(t, near, hit.Selectable)
	assert.InDelta(t, 3.5, hit.Distance(), 1e-9)

	near.Disable()

	hit, ok = registry.RayTest(forwardRay, FarDistance)
	require.True(t, ok)
	assert.Same(t, far, hit.Selectable)

	_, ok = registry.RayTest(NewLine(Vector{}, VecY), FarDistance)
	assert.False(t, ok)

}

func BenchmarkRegistryRayTest(b *testing.B) {

	b.StopTimer()

	registry := NewRegistry()
	for i := 0; i < 100; i++ {
		x := float64(i%10) - 5
		y := float64(i/10) - 5
		NewSelectable("box", NewBoxAABB(NewVector(x, y, -10), NewVector(0.5, 0.5, 0.5))).Enable(registry)
	}

	b.ReportAllocs()
	b.StartTimer()

	for i := 0; i < b.N; i++ {
		registry.RayTest(forwardRay, FarDistance)
	}

}
