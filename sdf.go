package raycursor

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// gradientStep is the default offset used when sampling an SDF's gradient.
const gradientStep = 0.00001

// SDFShape is a generic Shape described by a signed distance field built with sdfx. It's negative inside of the
// shape, so a Selectable wrapping an SDFShape reports penetration depth like boxes, spheres and meshes do.
type SDFShape struct {
	SDF  sdf.SDF3
	Step float64 // Step is the offset used to sample the field's gradient; 0 uses a small default.
}

// NewSDFShape wraps an existing sdfx signed distance field.
func NewSDFShape(field sdf.SDF3) *SDFShape {
	return &SDFShape{SDF: field}
}

// NewSDFSphere returns an SDFShape for a sphere of the given radius centered at center.
func NewSDFSphere(center Vector, radius float64) (*SDFShape, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, err
	}
	return NewSDFShape(sdf.Transform3D(s, sdf.Translate3d(toVec3(center)))), nil
}

// NewSDFBox returns an SDFShape for an axis-aligned box of the given size centered at center, with its edges
// rounded by round world units.
func NewSDFBox(center, size Vector, round float64) (*SDFShape, error) {
	s, err := sdf.Box3D(toVec3(size), round)
	if err != nil {
		return nil, err
	}
	return NewSDFShape(sdf.Transform3D(s, sdf.Translate3d(toVec3(center)))), nil
}

// SignedDistance returns the field's value at the point given: negative inside, positive outside.
func (shape *SDFShape) SignedDistance(point Vector) float64 {
	return shape.SDF.Evaluate(toVec3(point))
}

// Normal returns the normalized gradient of the field at the point given, which faces outward from the surface.
func (shape *SDFShape) Normal(point Vector) Vector {

	h := shape.Step
	if h <= 0 {
		h = gradientStep
	}

	grad := Vector{
		shape.SignedDistance(point.Add(Vector{h, 0, 0})) - shape.SignedDistance(point.Sub(Vector{h, 0, 0})),
		shape.SignedDistance(point.Add(Vector{0, h, 0})) - shape.SignedDistance(point.Sub(Vector{0, h, 0})),
		shape.SignedDistance(point.Add(Vector{0, 0, h})) - shape.SignedDistance(point.Sub(Vector{0, 0, h})),
	}

	return grad.Unit()

}

// ClosestPoint returns the closest point, to the point given, on the inside or surface of the shape, found by
// stepping against the field's gradient.
func (shape *SDFShape) ClosestPoint(point Vector) Vector {

	d := shape.SignedDistance(point)
	if d <= 0 {
		return point
	}

	p := point
	for i := 0; i < 16 && math.Abs(d) > marchEpsilon*0.01; i++ {
		n := shape.Normal(p)
		if n.IsZero() {
			break
		}
		p = p.Sub(n.Scale(d))
		d = shape.SignedDistance(p)
	}

	return p

}

// RayTest sphere traces the ray through the field.
func (shape *SDFShape) RayTest(ray Line, maxDistance float64) (RayHit, bool) {
	hit, ok := marchRay(shape.SignedDistance, shape.ClosestPoint, ray, maxDistance)
	if ok {
		if n := shape.Normal(hit.Position); !n.IsZero() {
			hit.Normal = n
		}
	}
	return hit, ok
}

// Bounds returns the axis-aligned Box bounding the field.
func (shape *SDFShape) Bounds() *Box {
	bb := shape.SDF.BoundingBox()
	lo := fromVec3(bb.Min)
	hi := fromVec3(bb.Max)
	return NewBoxAABB(lo.Lerp(hi, 0.5), hi.Sub(lo))
}

func toVec3(v Vector) v3.Vec {
	return v3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

func fromVec3(v v3.Vec) Vector {
	return Vector{v.X, v.Y, v.Z}
}
