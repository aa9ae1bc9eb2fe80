package raycursor

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boxAndSphere provides both a box and a sphere.
type boxAndSphere struct {
	*Box
}

func (b boxAndSphere) WorldSphere() Sphere { return NewSphere(b.Center(), 1) }

// sphereAndMesh provides both a sphere and a mesh.
type sphereAndMesh struct {
	Sphere
	mesh *Mesh
}

func (s sphereAndMesh) WorldMesh() *Mesh { return s.mesh }

func TestSelectableKind(t *testing.T) {

	box := NewBoxAABB(Vector{}, NewVector(1, 1, 1))
	sphere := NewSphere(Vector{}, 1)
	mesh := unitCubeMesh(t, Vector{})

	assert.Equal(t, ShapeBox, NewSelectable("box", box).Kind())
	assert.Equal(t, ShapeSphere, NewSelectable("sphere", sphere).Kind())
	assert.Equal(t, ShapeMesh, NewSelectable("mesh", mesh).Kind())
	assert.Equal(t, ShapeGeneric, NewSelectable("generic", genericShape{sphere}).Kind())

	// Boxes win over spheres, and spheres over meshes
	assert.Equal(t, ShapeBox, NewSelectable("both", boxAndSphere{box}).Kind())
	assert.Equal(t, ShapeSphere, NewSelectable("both", sphereAndMesh{sphere, mesh}).Kind())

	assert.Equal(t, "box", ShapeBox.String())
	assert.Equal(t, "generic", ShapeGeneric.String())

}

func TestSelectableDistance(t *testing.T) {

	box := NewSelectable("box", NewBoxAABB(Vector{}, NewVector(2, 2, 2)))
	assert.InDelta(t, 1, box.Distance(NewVector(2, 0, 0)), testDelta)
	assert.InDelta(t, -0.5, box.Distance(NewVector(0.5, 0, 0)), testDelta, "inside")

	sphere := NewSelectable("sphere", NewSphere(Vector{}, 1))
	assert.InDelta(t, 2, sphere.Distance(NewVector(0, 3, 0)), testDelta)
	assert.InDelta(t, -1, sphere.Distance(Vector{}), testDelta)

	generic := NewSelectable("generic", genericShape{NewSphere(Vector{}, 1)})
	assert.InDelta(t, 2, generic.Distance(NewVector(0, 3, 0)), testDelta)
	assert.Equal(t, NewSphere(Vector{}, 1), sphere.Shape())

}

func TestSelectableHighlight(t *testing.T) {

	registry := NewRegistry()
	s := NewSelectable("cube", NewSphere(Vector{}, 1))

	require.Len(t, s.Materials(), 1)
	assert.Equal(t, "cube", s.Materials()[0].Name)

	// Disabled Selectables can't be highlighted
	s.SetHighlighted(true, nil)
	assert.False(t, s.Highlighted())

	s.Enable(registry)
	assert.True(t, s.Enabled())
	assert.True(t, registry.Contains(s))

	s.SetHighlighted(true, nil)
	assert.True(t, s.Highlighted())
	require.Len(t, s.Materials(), 2)
	assert.True(t, s.Materials()[1].Shadeless)

	custom := NewHighlightMaterial("custom", NewColor(1, 0, 0, 1))
	s.SetHighlighted(true, custom)
	assert.NotSame(t, custom, s.Materials()[1], "already highlighted")

	s.SetHighlighted(false, nil)
	assert.False(t, s.Highlighted())
	assert.Len(t, s.Materials(), 1)

	s.SetHighlighted(true, custom)
	assert.Same(t, custom, s.Materials()[1])

	// Disabling clears the highlight
	s.Disable()
	assert.False(t, s.Highlighted())
	assert.Len(t, s.Materials(), 1)
	assert.False(t, registry.Contains(s))
	assert.False(t, s.Enabled())
	s.Disable()

}

func TestSelectableSecondaryMaterial(t *testing.T) {

	// A Selectable that already has a second material isn't highlightable
	s := NewSelectable("decal", NewSphere(Vector{}, 1))
	own := NewMaterial("decal")
	overlay := NewMaterial("overlay")
	s.SetMaterials(own, overlay)

	s.Enable(NewRegistry())
	assert.False(t, s.Highlighted())

	s.SetHighlighted(true, nil)
	assert.False(t, s.Highlighted())
	assert.Same(t, overlay, s.Materials()[1], "left alone")

	s.SetHighlighted(false, nil)
	assert.Len(t, s.Materials(), 2, "left alone")

	s.SetMaterials()
	require.Len(t, s.Materials(), 1)
	assert.Equal(t, "decal", s.Materials()[0].Name)

	// Highlightability is decided when enabling
	s.Enable(NewRegistry())
	s.SetHighlighted(true, nil)
	assert.True(t, s.Highlighted())

}

func TestSelectableSelect(t *testing.T) {

	buf := &bytes.Buffer{}
	registry := NewRegistry()
	registry.SetLogger(slog.New(slog.NewTextHandler(buf, nil)))

	s := NewSelectable("button", NewSphere(Vector{}, 1))
	s.Enable(registry)

	var calls []string
	s.OnSelect(func(selectable *Selectable) {
		assert.Same(t, s, selectable)
		calls = append(calls, "first")
	})
	s.OnSelect(func(selectable *Selectable) {
		calls = append(calls, "second")
	})

	s.Select()
	s.Select()

	assert.Equal(t, []string{"first", "second", "first", "second"}, calls)
	assert.Contains(t, buf.String(), "msg=selected")
	assert.Contains(t, buf.String(), "name=button")

	// Selectables without a registry log nowhere
	NewSelectable("lone", NewSphere(Vector{}, 1)).Select()

}

func TestSelectableEnableMoves(t *testing.T) {

	first := NewRegistry()
	second := NewRegistry()

	s := NewSelectable("moving", NewSphere(Vector{}, 1))
	s.Enable(first)
	s.Enable(second)

	assert.False(t, first.Contains(s))
	assert.True(t, second.Contains(s))
	assert.Equal(t, 0, first.Len())
	assert.Equal(t, 1, second.Len())

}

func TestSelectableEnableNil(t *testing.T) {

	s := NewSelectable("loose", NewSphere(Vector{}, 1))
	s.Enable(nil)
	assert.False(t, s.Enabled())

	registry := NewRegistry()
	s.Enable(registry)
	s.Enable(nil)
	assert.True(t, s.Enabled(), "stays in its Registry")
	assert.True(t, registry.Contains(s))

}
