package raycursor

// Transform places a local-space shape into world space: scale first, then rotation, then position.
type Transform struct {
	Position Vector
	Rotation Quaternion
	Scale    Vector
}

// NewTransform returns an identity Transform.
func NewTransform() Transform {
	return Transform{
		Rotation: NewQuaternionIdentity(),
		Scale:    NewVector(1, 1, 1),
	}
}

// WithPosition returns a copy of the Transform moved to the given position.
func (t Transform) WithPosition(position Vector) Transform {
	t.Position = position
	return t
}

// WithRotation returns a copy of the Transform with the given rotation.
func (t Transform) WithRotation(rotation Quaternion) Transform {
	t.Rotation = rotation
	return t
}

// WithScale returns a copy of the Transform with the given scale.
func (t Transform) WithScale(scale Vector) Transform {
	t.Scale = scale
	return t
}

func (t Transform) rotation() Quaternion {
	if t.Rotation.IsZero() {
		return NewQuaternionIdentity()
	}
	return t.Rotation.Unit()
}

// TransformPoint converts a local position into world space.
func (t Transform) TransformPoint(local Vector) Vector {
	return t.rotation().RotateVec(local.MultComp(t.Scale)).Add(t.Position)
}

// TransformVector converts a local direction into world space, ignoring position but applying scale.
func (t Transform) TransformVector(local Vector) Vector {
	return t.rotation().RotateVec(local.MultComp(t.Scale))
}

// TransformPoints converts every local position given into world space, returning a new slice.
func (t Transform) TransformPoints(local []Vector) []Vector {
	out := make([]Vector, len(local))
	for i, p := range local {
		out[i] = t.TransformPoint(p)
	}
	return out
}

// NewTransformFromMatrix decomposes a column-major 4x4 affine matrix (like glTF's node matrices) into a Transform.
// Shearing is lost, and a negative determinant is folded into the X scale.
func NewTransformFromMatrix(m [16]float64) Transform {

	col := func(c int) Vector { return Vector{m[c*4], m[c*4+1], m[c*4+2]} }

	x, y, z := col(0), col(1), col(2)
	scale := Vector{x.Magnitude(), y.Magnitude(), z.Magnitude()}

	if x.Cross(y).Dot(z) < 0 {
		scale.X = -scale.X
	}

	t := NewTransform().WithPosition(col(3)).WithScale(scale)

	if scale.X == 0 || scale.Y == 0 || scale.Z == 0 {
		return t
	}

	x = x.Divide(scale.X)
	y = y.Divide(scale.Y)
	z = z.Divide(scale.Z)

	return t.WithRotation(NewQuaternionFromMatrix([3][3]float64{
		{x.X, y.X, z.X},
		{x.Y, y.Y, z.Y},
		{x.Z, y.Z, z.Z},
	}))

}
