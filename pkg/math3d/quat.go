package math3d

import (
	"errors"
	"fmt"
)

var (
	// ErrZeroLength is returned when an operation needs a quaternion with
	// non-zero length.
	ErrZeroLength = errors.New("math3d: zero-length quaternion")

	// ErrNoRotation is returned when the axis of a quaternion that encodes
	// no rotation is requested.
	ErrNoRotation = errors.New("math3d: quaternion encodes no rotation")

	// ErrShortSlice is returned when fewer than four components are supplied.
	ErrShortSlice = errors.New("math3d: need at least 4 components")
)

// Quat is a quaternion with vector part (X, Y, Z) and scalar part W.
//
// Quat is a plain value. Methods with value receivers return a new
// quaternion and leave the receiver alone; the Set methods overwrite the
// receiver in place.
type Quat[T Float] struct {
	X, Y, Z, W T
}

// Quatf is a single precision quaternion.
type Quatf = Quat[float32]

// Quatd is a double precision quaternion.
type Quatd = Quat[float64]

// Tuple4 is anything that exposes four ordered components.
type Tuple4[T Float] interface {
	Components() (x, y, z, w T)
}

// Receiver is anything that can take four ordered components, so results
// can be written into a caller's own type.
type Receiver[T Float] interface {
	SetComponents(x, y, z, w T)
}

// Q creates a new quaternion.
func Q[T Float](x, y, z, w T) Quat[T] {
	return Quat[T]{x, y, z, w}
}

// QuatIdent returns the identity rotation (0, 0, 0, 1).
func QuatIdent[T Float]() Quat[T] {
	return Quat[T]{W: 1}
}

// QuatFromSlice reads x, y, z, w from the first four elements of s.
func QuatFromSlice[T Float](s []T) (Quat[T], error) {
	if len(s) < 4 {
		return Quat[T]{}, fmt.Errorf("%w: got %d", ErrShortSlice, len(s))
	}
	return Quat[T]{s[0], s[1], s[2], s[3]}, nil
}

// QuatFrom copies the components of t.
func QuatFrom[T Float](t Tuple4[T]) Quat[T] {
	x, y, z, w := t.Components()
	return Quat[T]{x, y, z, w}
}

// QuatAxisAngle returns the rotation of angle radians around the axis
// (ax, ay, az). The axis is expected to be unit length.
func QuatAxisAngle[T Float](ax, ay, az, angle T) Quat[T] {
	s, c := sincos(angle / 2)
	return Quat[T]{ax * s, ay * s, az * s, c}
}

// QuatAxisAngleDeg is QuatAxisAngle with the angle in degrees.
func QuatAxisAngleDeg[T Float](ax, ay, az, deg T) Quat[T] {
	return QuatAxisAngle(ax, ay, az, DegToRad(deg))
}

// Components returns x, y, z and w in that order.
func (q Quat[T]) Components() (x, y, z, w T) {
	return q.X, q.Y, q.Z, q.W
}

// Array returns the components as [x, y, z, w].
func (q Quat[T]) Array() [4]T {
	return [4]T{q.X, q.Y, q.Z, q.W}
}

// Store writes q into dst.
func (q Quat[T]) Store(dst Receiver[T]) {
	dst.SetComponents(q.X, q.Y, q.Z, q.W)
}

// SetComponents overwrites all four components.
func (q *Quat[T]) SetComponents(x, y, z, w T) {
	q.X, q.Y, q.Z, q.W = x, y, z, w
}

// SetIdent makes q the identity rotation.
func (q *Quat[T]) SetIdent() {
	*q = Quat[T]{W: 1}
}

// String implements fmt.Stringer.
func (q Quat[T]) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", float64(q.X), float64(q.Y), float64(q.Z), float64(q.W))
}

// LenSq returns the squared length.
func (q Quat[T]) LenSq() T {
	return q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W
}

// Len returns the length.
func (q Quat[T]) Len() T {
	return sqrt(q.LenSq())
}

// Dot returns the four-component dot product.
func (q Quat[T]) Dot(r Quat[T]) T {
	return q.X*r.X + q.Y*r.Y + q.Z*r.Z + q.W*r.W
}

// IsZero reports whether all components are zero.
func (q Quat[T]) IsZero() bool {
	return q.X == 0 && q.Y == 0 && q.Z == 0 && q.W == 0
}

// IsUnit reports whether q is unit length within eps.
func (q Quat[T]) IsUnit(eps T) bool {
	return abs(1-q.LenSq()) <= eps
}

// ApproxEqual reports whether every component of q is within eps of r.
func (q Quat[T]) ApproxEqual(r Quat[T], eps T) bool {
	return abs(q.X-r.X) <= eps && abs(q.Y-r.Y) <= eps &&
		abs(q.Z-r.Z) <= eps && abs(q.W-r.W) <= eps
}

// SameRotation reports whether q and r encode the same rotation within
// eps. q and -q rotate identically.
func (q Quat[T]) SameRotation(r Quat[T], eps T) bool {
	return q.ApproxEqual(r, eps) || q.ApproxEqual(r.Negate(), eps)
}

// NormErrorSq returns 1 - |q|². It is zero for a unit quaternion and
// negative when q has grown past unit length.
func (q Quat[T]) NormErrorSq() T {
	return 1 - q.LenSq()
}

// NormError returns sqrt(|1 - |q|²|).
func (q Quat[T]) NormError() T {
	return sqrt(abs(q.NormErrorSq()))
}

// Add returns the componentwise sum q + r.
func (q Quat[T]) Add(r Quat[T]) Quat[T] {
	return Quat[T]{q.X + r.X, q.Y + r.Y, q.Z + r.Z, q.W + r.W}
}

// Sub returns the componentwise difference q - r.
func (q Quat[T]) Sub(r Quat[T]) Quat[T] {
	return Quat[T]{q.X - r.X, q.Y - r.Y, q.Z - r.Z, q.W - r.W}
}

// MulScalar returns every component multiplied by s.
func (q Quat[T]) MulScalar(s T) Quat[T] {
	return Quat[T]{q.X * s, q.Y * s, q.Z * s, q.W * s}
}

// DivScalar returns every component divided by s.
func (q Quat[T]) DivScalar(s T) Quat[T] {
	return Quat[T]{q.X / s, q.Y / s, q.Z / s, q.W / s}
}

// Negate returns -q, which encodes the same rotation as q.
func (q Quat[T]) Negate() Quat[T] {
	return Quat[T]{-q.X, -q.Y, -q.Z, -q.W}
}

// Conjugate returns (-x, -y, -z, w).
func (q Quat[T]) Conjugate() Quat[T] {
	return Quat[T]{-q.X, -q.Y, -q.Z, q.W}
}

// SetConjugate replaces q with its conjugate.
func (q *Quat[T]) SetConjugate() {
	*q = q.Conjugate()
}

// Inverse returns the conjugate scaled by 1/|q|². For a unit quaternion
// this equals Conjugate. A zero quaternion yields non-finite components.
func (q Quat[T]) Inverse() Quat[T] {
	return q.Conjugate().MulScalar(1 / q.LenSq())
}

// InverseSafe is Inverse, failing with ErrZeroLength instead of
// producing non-finite components.
func (q Quat[T]) InverseSafe() (Quat[T], error) {
	if q.IsZero() {
		return Quat[T]{}, ErrZeroLength
	}
	return q.Inverse(), nil
}

// SetInverse replaces q with its inverse.
func (q *Quat[T]) SetInverse() {
	*q = q.Inverse()
}

// Normalize returns q scaled to unit length. A zero quaternion yields
// NaN components.
func (q Quat[T]) Normalize() Quat[T] {
	return q.MulScalar(invSqrt(q.LenSq()))
}

// NormalizeSafe is Normalize, failing with ErrZeroLength instead of
// producing NaN components.
func (q Quat[T]) NormalizeSafe() (Quat[T], error) {
	if q.IsZero() {
		return Quat[T]{}, ErrZeroLength
	}
	return q.Normalize(), nil
}

// SetNormalize scales q to unit length in place.
func (q *Quat[T]) SetNormalize() {
	*q = q.Normalize()
}
