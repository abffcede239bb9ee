package math3d

// Transform is a translation, rotation and scale applied in the order
// scale, rotate, translate.
type Transform struct {
	Position Vec3
	Rotation Quatd
	Scale    Vec3
}

// NewTransform returns the identity transform.
func NewTransform() Transform {
	return Transform{
		Rotation: QuatIdent[float64](),
		Scale:    One3(),
	}
}

// TransformFromMat4 splits an affine matrix without shear into
// translation, rotation and scale.
func TransformFromMat4(m Mat4) Transform {
	x, y, z := m.Column(0), m.Column(1), m.Column(2)
	s := Vec3{x.Len(), y.Len(), z.Len()}
	if x.Cross(y).Dot(z) < 0 {
		s.X = -s.X
	}

	// A degenerate axis leaves no rotation to recover.
	r := Identity()
	if s.X != 0 && s.Y != 0 && s.Z != 0 {
		for i, c := range [3]Vec3{x.Scale(1 / s.X), y.Scale(1 / s.Y), z.Scale(1 / s.Z)} {
			r[i*4], r[i*4+1], r[i*4+2] = c.X, c.Y, c.Z
		}
	}

	return Transform{
		Position: m.Translation(),
		Rotation: QuatFromMat4(r),
		Scale:    s,
	}
}

// Matrix returns T * R * S.
func (t Transform) Matrix() Mat4 {
	return Translate(t.Position).Mul(RotateQuat(t.Rotation)).Mul(Scale(t.Scale))
}

// Apply transforms the point p.
func (t Transform) Apply(p Vec3) Vec3 {
	return p.Mul(t.Scale).Rotate(t.Rotation).Add(t.Position)
}

// ApplyDir rotates the direction d, ignoring translation and scale.
func (t Transform) ApplyDir(d Vec3) Vec3 {
	return d.Rotate(t.Rotation)
}

// Mul returns the transform of child expressed in t's parent space: the
// child is applied first, then t. Rotations compose through Quat.Mul and
// so stay unit length down a hierarchy of any depth.
func (t Transform) Mul(child Transform) Transform {
	return Transform{
		Position: t.Apply(child.Position),
		Rotation: t.Rotation.Mul(child.Rotation),
		Scale:    t.Scale.Mul(child.Scale),
	}
}

// Inverse returns the transform undoing t. It is exact when the scale is
// uniform.
func (t Transform) Inverse() Transform {
	inv := Vec3{1 / t.Scale.X, 1 / t.Scale.Y, 1 / t.Scale.Z}
	r := t.Rotation.Conjugate()
	return Transform{
		Position: t.Position.Negate().Rotate(r).Mul(inv),
		Rotation: r,
		Scale:    inv,
	}
}
