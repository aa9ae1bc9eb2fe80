package raycursor

import "math"

// Quaternion represents a rotation. The identity rotation is {0, 0, 0, 1}.
type Quaternion struct {
	X, Y, Z, W float64
}

// NewQuaternion returns a new Quaternion with the components given.
func NewQuaternion(x, y, z, w float64) Quaternion {
	return Quaternion{x, y, z, w}
}

// NewQuaternionIdentity returns a Quaternion representing no rotation.
func NewQuaternionIdentity() Quaternion {
	return Quaternion{0, 0, 0, 1}
}

// NewQuaternionFromAxisAngle returns a Quaternion rotating by angle radians around the given axis.
func NewQuaternionFromAxisAngle(axis Vector, angle float64) Quaternion {
	axis = axis.Unit()
	s := math.Sin(angle / 2)
	return Quaternion{axis.X * s, axis.Y * s, axis.Z * s, math.Cos(angle / 2)}
}

// IsZero returns true if every component of the Quaternion is 0; a zero Quaternion isn't a valid rotation.
func (quat Quaternion) IsZero() bool {
	return quat.X == 0 && quat.Y == 0 && quat.Z == 0 && quat.W == 0
}

// Dot returns the 4D dot product of both Quaternions.
func (quat Quaternion) Dot(other Quaternion) float64 {
	return quat.X*other.X + quat.Y*other.Y + quat.Z*other.Z + quat.W*other.W
}

// Magnitude returns the 4D length of the Quaternion.
func (quat Quaternion) Magnitude() float64 {
	return math.Sqrt(quat.Dot(quat))
}

// Unit returns a normalized copy of the Quaternion. A zero Quaternion becomes the identity.
func (quat Quaternion) Unit() Quaternion {
	m := quat.Magnitude()
	if m < 1e-12 {
		return NewQuaternionIdentity()
	}
	return Quaternion{quat.X / m, quat.Y / m, quat.Z / m, quat.W / m}
}

// Conjugate returns the inverse rotation of a unit Quaternion.
func (quat Quaternion) Conjugate() Quaternion {
	return Quaternion{-quat.X, -quat.Y, -quat.Z, quat.W}
}

// Mult returns the rotation of other followed by the calling Quaternion (quat * other).
func (quat Quaternion) Mult(other Quaternion) Quaternion {
	return Quaternion{
		X: quat.W*other.X + quat.X*other.W + quat.Y*other.Z - quat.Z*other.Y,
		Y: quat.W*other.Y - quat.X*other.Z + quat.Y*other.W + quat.Z*other.X,
		Z: quat.W*other.Z + quat.X*other.Y - quat.Y*other.X + quat.Z*other.W,
		W: quat.W*other.W - quat.X*other.X - quat.Y*other.Y - quat.Z*other.Z,
	}
}

// RotateVec rotates the given Vector by the Quaternion.
func (quat Quaternion) RotateVec(vec Vector) Vector {
	u := NewVector(quat.X, quat.Y, quat.Z)
	t := u.Cross(vec).Scale(2)
	return vec.Add(t.Scale(quat.W)).Add(u.Cross(t))
}

// Forward returns the direction the rotation faces, which is WorldForward rotated by the Quaternion.
func (quat Quaternion) Forward() Vector {
	return quat.RotateVec(WorldForward)
}

// Slerp spherically interpolates from the calling Quaternion towards the other by the percentage given.
func (quat Quaternion) Slerp(other Quaternion, percent float64) Quaternion {

	if percent <= 0 {
		return quat
	} else if percent >= 1 {
		return other
	}

	angle := quat.Dot(other)

	// Take the short way around
	if angle < 0 {
		other = Quaternion{-other.X, -other.Y, -other.Z, -other.W}
		angle = -angle
	}

	if angle >= 1-1e-9 {
		return quat
	}

	sinHalfTheta := math.Sqrt(1 - angle*angle)
	halfTheta := math.Atan2(sinHalfTheta, angle)

	ratioA := math.Sin((1-percent)*halfTheta) / sinHalfTheta
	ratioB := math.Sin(percent*halfTheta) / sinHalfTheta

	return Quaternion{
		X: quat.X*ratioA + other.X*ratioB,
		Y: quat.Y*ratioA + other.Y*ratioB,
		Z: quat.Z*ratioA + other.Z*ratioB,
		W: quat.W*ratioA + other.W*ratioB,
	}

}

// NewQuaternionFromMatrix returns the rotation described by the given orthonormal 3x3 rotation matrix, indexed [row][column].
func NewQuaternionFromMatrix(m [3][3]float64) Quaternion {

	trace := m[0][0] + m[1][1] + m[2][2]

	var q Quaternion

	if trace > 0 {
		s := 0.5 / math.Sqrt(trace+1)
		q = Quaternion{
			X: (m[2][1] - m[1][2]) * s,
			Y: (m[0][2] - m[2][0]) * s,
			Z: (m[1][0] - m[0][1]) * s,
			W: 0.25 / s,
		}
	} else if m[0][0] > m[1][1] && m[0][0] > m[2][2] {
		s := 2 * math.Sqrt(1+m[0][0]-m[1][1]-m[2][2])
		q = Quaternion{
			X: 0.25 * s,
			Y: (m[0][1] + m[1][0]) / s,
			Z: (m[0][2] + m[2][0]) / s,
			W: (m[2][1] - m[1][2]) / s,
		}
	} else if m[1][1] > m[2][2] {
		s := 2 * math.Sqrt(1+m[1][1]-m[0][0]-m[2][2])
		q = Quaternion{
			X: (m[0][1] + m[1][0]) / s,
			Y: 0.25 * s,
			Z: (m[1][2] + m[2][1]) / s,
			W: (m[0][2] - m[2][0]) / s,
		}
	} else {
		s := 2 * math.Sqrt(1+m[2][2]-m[0][0]-m[1][1])
		q = Quaternion{
			X: (m[0][2] + m[2][0]) / s,
			Y: (m[1][2] + m[2][1]) / s,
			Z: 0.25 * s,
			W: (m[1][0] - m[0][1]) / s,
		}
	}

	return q.Unit()

}
