package raycursor

import (
	"io"
	"log/slog"
)

// ShapeKind indicates which distance rules are used for a Selectable's shape.
type ShapeKind int

const (
	ShapeGeneric ShapeKind = iota // ShapeGeneric shapes are measured using only their closest point (or their signed distance, if they provide one).
	ShapeBox                      // ShapeBox shapes provide a world-space Box.
	ShapeSphere                   // ShapeSphere shapes provide a world-space Sphere.
	ShapeMesh                     // ShapeMesh shapes provide a world-space convex Mesh.
)

func (kind ShapeKind) String() string {
	switch kind {
	case ShapeBox:
		return "box"
	case ShapeSphere:
		return "sphere"
	case ShapeMesh:
		return "mesh"
	}
	return "generic"
}

// BoxProvider is implemented by shapes that can provide an oriented box in world space.
type BoxProvider interface {
	WorldBox() *Box
}

// SphereProvider is implemented by shapes that can provide a sphere in world space.
type SphereProvider interface {
	WorldSphere() Sphere
}

// MeshProvider is implemented by shapes that can provide a convex mesh in world space.
type MeshProvider interface {
	WorldMesh() *Mesh
}

// SignedDistancer is implemented by generic shapes that can measure how deep a point is inside of them.
type SignedDistancer interface {
	SignedDistance(point Vector) float64
}

// Selectable is an object that can be pointed at, highlighted and selected with the cursor. It wraps a single shape,
// which is probed once, when the Selectable is created, to decide which distance rules apply to it. A Shape
// implementing more than one provider interface is treated as a box first, then a sphere, then a mesh.
//
// A Selectable is only considered for selection while it's enabled (see Enable()).
type Selectable struct {
	Name string

	kind     ShapeKind
	shape    Shape
	box      BoxProvider
	sphere   SphereProvider
	mesh     MeshProvider
	distance SignedDistancer

	materials     []*Material
	highlightable bool

	registry *Registry
	onSelect []func(selectable *Selectable)

	// Data is an arbitrary value the host can attach to the Selectable.
	Data any
}

// NewSelectable creates a new Selectable wrapping the shape given. The Selectable starts out disabled with a single
// Material named after it.
func NewSelectable(name string, shape Shape) *Selectable {

	s := &Selectable{
		Name:      name,
		shape:     shape,
		materials: []*Material{NewMaterial(name)},
	}

	if box, ok := shape.(BoxProvider); ok {
		s.kind = ShapeBox
		s.box = box
	} else if sphere, ok := shape.(SphereProvider); ok {
		s.kind = ShapeSphere
		s.sphere = sphere
	} else if mesh, ok := shape.(MeshProvider); ok {
		s.kind = ShapeMesh
		s.mesh = mesh
	} else {
		s.kind = ShapeGeneric
		s.distance, _ = shape.(SignedDistancer)
	}

	return s

}

// Kind returns the kind of shape the Selectable was created with.
func (s *Selectable) Kind() ShapeKind {
	return s.kind
}

// Shape returns the shape the Selectable wraps.
func (s *Selectable) Shape() Shape {
	return s.shape
}

// Distance returns the signed distance from the Selectable's shape to the point given; it's negative when the point
// is inside of the shape.
func (s *Selectable) Distance(point Vector) float64 {
	switch s.kind {
	case ShapeBox:
		return DistanceBoxPoint(s.box.WorldBox(), point)
	case ShapeSphere:
		return DistanceSpherePoint(s.sphere.WorldSphere(), point)
	case ShapeMesh:
		return DistanceMeshPoint(s.mesh.WorldMesh(), point)
	}
	if s.distance != nil {
		return s.distance.SignedDistance(point)
	}
	return DistanceShapePoint(s.shape, point)
}

// RayTest tests the ray against the Selectable's shape. A successful hit has its Selectable set.
func (s *Selectable) RayTest(ray Line, maxDistance float64) (RayHit, bool) {

	var hit RayHit
	var ok bool

	switch s.kind {
	case ShapeBox:
		hit, ok = s.box.WorldBox().RayTest(ray, maxDistance)
	case ShapeSphere:
		hit, ok = s.sphere.WorldSphere().RayTest(ray, maxDistance)
	case ShapeMesh:
		hit, ok = s.mesh.WorldMesh().RayTest(ray, maxDistance)
	default:
		hit, ok = ShapeRayTest(s.shape, ray, maxDistance)
	}

	if ok {
		hit.Selectable = s
	}
	return hit, ok

}

// Enable activates the Selectable, registering it in the Registry given so it can be found, highlighted and selected.
// A Selectable can only be highlighted if it had no secondary Material when it was enabled.
// Enabling an already enabled Selectable moves it to the new Registry. Enabling with a nil Registry does nothing.
func (s *Selectable) Enable(registry *Registry) {
	if registry == nil {
		return
	}
	if s.registry != nil {
		s.Disable()
	}
	s.registry = registry
	s.highlightable = len(s.materials) < 2
	registry.Register(s)
}

// Disable deactivates the Selectable, clearing its highlight and unregistering it.
func (s *Selectable) Disable() {
	if s.registry == nil {
		return
	}
	if s.Highlighted() {
		s.SetHighlighted(false, nil)
	}
	s.highlightable = false
	s.registry.Unregister(s)
	s.registry = nil
}

// Enabled returns if the Selectable is currently enabled.
func (s *Selectable) Enabled() bool {
	return s.registry != nil
}

// Highlighted returns if the Selectable is currently highlighted, which is when it's highlightable and its secondary
// Material slot is filled.
func (s *Selectable) Highlighted() bool {
	return s.highlightable && s.secondMaterial() != nil
}

// SetHighlighted highlights the Selectable by setting its secondary Material to the highlight Material given, or
// removes the highlight. If the highlight Material is nil, a default one is used. Selectables that aren't
// highlightable are never highlighted.
func (s *Selectable) SetHighlighted(value bool, highlight *Material) {

	if !s.highlightable {
		return
	}

	if value == (s.secondMaterial() != nil) {
		return
	}

	if value {
		if highlight == nil {
			highlight = defaultHighlightMaterial
		}
		s.setSecondMaterial(highlight)
	} else {
		s.setSecondMaterial(nil)
	}

}

var defaultHighlightMaterial = NewHighlightMaterial("highlight", NewColor(1, 1, 0, 1))

// Materials returns the Selectable's materials; the first is its own, and the second (if there is one) is the
// highlight overlay.
func (s *Selectable) Materials() []*Material {
	return append([]*Material(nil), s.materials...)
}

// SetMaterials sets the Selectable's materials. This takes effect on highlighting the next time the Selectable is
// enabled.
func (s *Selectable) SetMaterials(materials ...*Material) {
	if len(materials) == 0 {
		materials = []*Material{NewMaterial(s.Name)}
	}
	s.materials = append([]*Material(nil), materials...)
}

func (s *Selectable) secondMaterial() *Material {
	if len(s.materials) > 1 {
		return s.materials[1]
	}
	return nil
}

func (s *Selectable) setSecondMaterial(m *Material) {
	if m == nil {
		s.materials = s.materials[:1]
	} else if len(s.materials) == 1 {
		s.materials = append(s.materials, m)
	} else {
		s.materials[1] = m
	}
}

// OnSelect adds a function to be called whenever the Selectable is selected.
func (s *Selectable) OnSelect(handler func(selectable *Selectable)) {
	s.onSelect = append(s.onSelect, handler)
}

// Select selects the Selectable, calling each of its OnSelect handlers in the order they were added.
func (s *Selectable) Select() {
	s.logger().Info("selected", "name", s.Name, "shape", s.kind.String())
	for _, handler := range s.onSelect {
		handler(s)
	}
}

func (s *Selectable) logger() *slog.Logger {
	if s.registry != nil && s.registry.logger != nil {
		return s.registry.logger
	}
	return discardLogger
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
