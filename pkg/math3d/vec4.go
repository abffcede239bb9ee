package math3d

// Vec4 represents a 4D vector, a homogeneous 3D point, or the raw
// x, y, z, w storage of a quaternion.
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 creates a new Vec4.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// V4FromV3 creates a Vec4 from Vec3 with specified W.
func V4FromV3(v Vec3, w float64) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

// PerspectiveDivide returns Vec3 after dividing by W.
func (v Vec4) PerspectiveDivide() Vec3 {
	if v.W == 0 {
		return Vec3{v.X, v.Y, v.Z}
	}
	return Vec3{v.X / v.W, v.Y / v.W, v.Z / v.W}
}

// Components returns x, y, z and w, so a Vec4 can seed a quaternion
// through QuatFrom.
func (v Vec4) Components() (x, y, z, w float64) {
	return v.X, v.Y, v.Z, v.W
}

// SetComponents overwrites v, so quaternion results can be stored into it.
func (v *Vec4) SetComponents(x, y, z, w float64) {
	v.X, v.Y, v.Z, v.W = x, y, z, w
}
