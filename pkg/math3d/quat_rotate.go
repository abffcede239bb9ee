package math3d

// HalfAngle returns acos(w), half the rotation angle of a unit quaternion.
// w is clamped to [-1, 1] first.
func (q Quat[T]) HalfAngle() T {
	return acos(q.W)
}

// Angle returns the rotation angle in radians, in [0, 2π].
func (q Quat[T]) Angle() T {
	return 2 * q.HalfAngle()
}

// Axis returns the unit rotation axis of q.
//
// A quaternion with w = ±1 rotates about no axis; Axis then returns NaN
// components. Use AxisAngle to get an error instead.
func (q Quat[T]) Axis() (x, y, z T) {
	s := sqrt(max(0, 1-q.W*q.W))
	x, y, z = q.X/s, q.Y/s, q.Z/s
	inv := invSqrt(x*x + y*y + z*z)
	return x * inv, y * inv, z * inv
}

// AxisAngle returns the unit axis and the angle of the rotation encoded
// by q. q need not be unit length.
func (q Quat[T]) AxisAngle() (x, y, z, angle T, err error) {
	if q.IsZero() {
		return 0, 0, 0, 0, ErrZeroLength
	}
	n := q.Normalize()
	vl := sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z)
	if vl == 0 {
		return 0, 0, 0, 0, ErrNoRotation
	}
	return n.X / vl, n.Y / vl, n.Z / vl, n.Angle(), nil
}

// Rotate returns q rotated by angle radians about the unit axis
// (ax, ay, az) in q's local frame: q·Δ.
func (q Quat[T]) Rotate(ax, ay, az, angle T) Quat[T] {
	return q.Mul(QuatAxisAngle(ax, ay, az, angle))
}

// RotateDeg is Rotate with the angle in degrees.
func (q Quat[T]) RotateDeg(ax, ay, az, deg T) Quat[T] {
	return q.Rotate(ax, ay, az, DegToRad(deg))
}

// RotateGlobal returns q rotated by angle radians about the unit axis
// (ax, ay, az) in the fixed world frame: Δ·q.
func (q Quat[T]) RotateGlobal(ax, ay, az, angle T) Quat[T] {
	return q.RevMul(QuatAxisAngle(ax, ay, az, angle))
}

// RotateGlobalDeg is RotateGlobal with the angle in degrees.
func (q Quat[T]) RotateGlobalDeg(ax, ay, az, deg T) Quat[T] {
	return q.RotateGlobal(ax, ay, az, DegToRad(deg))
}

// SetRotate applies Rotate to q in place.
func (q *Quat[T]) SetRotate(ax, ay, az, angle T) {
	*q = q.Rotate(ax, ay, az, angle)
}

// SetRotateGlobal applies RotateGlobal to q in place.
func (q *Quat[T]) SetRotateGlobal(ax, ay, az, angle T) {
	*q = q.RotateGlobal(ax, ay, az, angle)
}

// Integrate advances q by the world-space angular velocity
// (avx, avy, avz), in radians per unit time, over the step dt.
//
// A zero step (body at rest or dt == 0) returns q unchanged.
func (q Quat[T]) Integrate(avx, avy, avz, dt T) Quat[T] {
	h := dt / 2
	tx, ty, tz := avx*h, avy*h, avz*h
	m := sqrt(tx*tx + ty*ty + tz*tz)
	if m == 0 {
		return q
	}
	s, c := sincos(m)
	s /= m
	d := Quat[T]{tx * s, ty * s, tz * s, c}.Normalize()
	return q.RevMul(d)
}

// SetIntegrate applies Integrate to q in place.
func (q *Quat[T]) SetIntegrate(avx, avy, avz, dt T) {
	*q = q.Integrate(avx, avy, avz, dt)
}

// Transform rotates the vector (x, y, z) by q using q·(v, 0)·q*.
func (q Quat[T]) Transform(x, y, z T) (rx, ry, rz T) {
	p := q.MulRaw(Quat[T]{x, y, z, 0}).MulRaw(q.Conjugate())
	return p.X, p.Y, p.Z
}

// Scale returns the rotation about the same axis as q with its angle
// multiplied by f. Scale(0.5) is half of q; the identity scales to itself.
func (q Quat[T]) Scale(f T) Quat[T] {
	vl := sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if vl == 0 {
		return q
	}
	half := atan2(vl, q.W)
	s, c := sincos(half * f)
	s /= vl
	return Quat[T]{q.X * s, q.Y * s, q.Z * s, c}
}

// Nlerp linearly interpolates from q to r along the shorter arc and
// renormalizes the result.
func (q Quat[T]) Nlerp(r Quat[T], t T) Quat[T] {
	if q.Dot(r) < 0 {
		r = r.Negate()
	}
	return q.MulScalar(1 - t).Add(r.MulScalar(t)).Normalize()
}

// slerpNlerpDot is the cosine above which Slerp falls back to Nlerp; the
// arc is short enough that 1/sin(θ) loses precision.
const slerpNlerpDot = 0.9995

// Slerp spherically interpolates from q (t = 0) to r (t = 1) along the
// shorter arc at constant angular speed.
func (q Quat[T]) Slerp(r Quat[T], t T) Quat[T] {
	d := q.Dot(r)
	if d < 0 {
		r = r.Negate()
		d = -d
	}
	if d > slerpNlerpDot {
		return q.Nlerp(r, t)
	}
	theta := acos(d)
	inv := 1 / sin(theta)
	a := sin((1-t)*theta) * inv
	b := sin(t*theta) * inv
	return q.MulScalar(a).Add(r.MulScalar(b)).Normalize()
}
