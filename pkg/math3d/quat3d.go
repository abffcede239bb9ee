package math3d

import "math"

// QuatAxisAngleVec3 returns the rotation of angle radians around axis.
// The axis is normalized first.
func QuatAxisAngleVec3(axis Vec3, angle float64) Quatd {
	axis = axis.Normalize()
	return QuatAxisAngle(axis.X, axis.Y, axis.Z, angle)
}

// IntegrateVec3 advances q by the world-space angular velocity av over dt.
func IntegrateVec3(q Quatd, av Vec3, dt float64) Quatd {
	return q.Integrate(av.X, av.Y, av.Z, dt)
}

// AxisVec3 returns the rotation axis of q as a Vec3.
func AxisVec3(q Quatd) (Vec3, error) {
	x, y, z, _, err := q.AxisAngle()
	if err != nil {
		return Vec3{}, err
	}
	return Vec3{x, y, z}, nil
}

// RotateQuat creates a rotation matrix from a unit quaternion.
func RotateQuat(q Quatd) Mat4 {
	x, y, z, w := q.X, q.Y, q.Z, q.W
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return Mat4{
		1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0,
		2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0,
		2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}

// QuatFromMat4 extracts the rotation of the upper 3x3 block of m.
// The block must be a pure rotation (orthonormal, no scale).
func QuatFromMat4(m Mat4) Quatd {
	m11, m12, m13 := m[0], m[4], m[8]
	m21, m22, m23 := m[1], m[5], m[9]
	m31, m32, m33 := m[2], m[6], m[10]
	trace := m11 + m22 + m33

	var q Quatd
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		q = Quatd{(m32 - m23) * s, (m13 - m31) * s, (m21 - m12) * s, 0.25 / s}
	case m11 > m22 && m11 > m33:
		s := 2 * math.Sqrt(1+m11-m22-m33)
		q = Quatd{0.25 * s, (m12 + m21) / s, (m13 + m31) / s, (m32 - m23) / s}
	case m22 > m33:
		s := 2 * math.Sqrt(1+m22-m11-m33)
		q = Quatd{(m12 + m21) / s, 0.25 * s, (m23 + m32) / s, (m13 - m31) / s}
	default:
		s := 2 * math.Sqrt(1+m33-m11-m22)
		q = Quatd{(m13 + m31) / s, (m23 + m32) / s, 0.25 * s, (m21 - m12) / s}
	}
	return q.Normalize()
}
