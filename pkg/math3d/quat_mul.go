package math3d

// MulRaw returns the Hamilton product q·r without renormalizing it.
func (q Quat[T]) MulRaw(r Quat[T]) Quat[T] {
	return Quat[T]{
		X: q.W*r.X + r.W*q.X + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y + r.W*q.Y + q.Z*r.X - q.X*r.Z,
		Z: q.W*r.Z + r.W*q.Z + q.X*r.Y - q.Y*r.X,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

// Mul returns q·r divided by its own length, so chains of compositions
// stay unit length. Applying q·r rotates by r first and then by q.
func (q Quat[T]) Mul(r Quat[T]) Quat[T] {
	return q.MulRaw(r).Normalize()
}

// RevMul returns r·q divided by its own length: the reversed order of Mul.
func (q Quat[T]) RevMul(r Quat[T]) Quat[T] {
	return r.MulRaw(q).Normalize()
}

// SetMul replaces q with q·r, renormalized.
func (q *Quat[T]) SetMul(r Quat[T]) {
	*q = q.Mul(r)
}

// SetRevMul replaces q with r·q, renormalized.
func (q *Quat[T]) SetRevMul(r Quat[T]) {
	*q = q.RevMul(r)
}
