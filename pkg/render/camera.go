package render

import (
	"math"

	"github.com/taigrr/spin/pkg/math3d"
)

// Camera is a perspective camera. Its orientation is a unit quaternion
// taking camera space to world space; in camera space it looks down -Z
// with +Y up.
type Camera struct {
	Position    math3d.Vec3
	Orientation math3d.Quatd

	// Projection parameters
	FOV         float64 // Vertical field of view in radians
	AspectRatio float64 // Width / Height
	Near        float64 // Near clipping plane
	Far         float64 // Far clipping plane

	// Cached matrices (computed on demand)
	viewMatrix     math3d.Mat4
	projMatrix     math3d.Mat4
	viewProjMatrix math3d.Mat4
	viewDirty      bool
	projDirty      bool
	viewProjDirty  bool
}

// NewCamera returns a camera at (0, 0, 5) looking at the origin.
func NewCamera() *Camera {
	return &Camera{
		Position:      math3d.V3(0, 0, 5),
		Orientation:   math3d.QuatIdent[float64](),
		FOV:           math.Pi / 3, // 60 degrees
		AspectRatio:   16.0 / 9.0,
		Near:          0.1,
		Far:           1000,
		viewDirty:     true,
		projDirty:     true,
		viewProjDirty: true,
	}
}

func (c *Camera) touchView() {
	c.viewDirty = true
	c.viewProjDirty = true
}

func (c *Camera) touchProj() {
	c.projDirty = true
	c.viewProjDirty = true
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.touchView()
}

// SetOrientation sets the camera orientation. q is renormalized.
func (c *Camera) SetOrientation(q math3d.Quatd) {
	c.Orientation = q.Normalize()
	c.touchView()
}

// SetFOV sets the field of view (in radians).
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.touchProj()
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.touchProj()
}

// SetClipPlanes sets the near and far clipping planes.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.touchProj()
}

// Forward returns the world direction the camera looks along.
func (c *Camera) Forward() math3d.Vec3 {
	return math3d.Forward().Rotate(c.Orientation)
}

// Right returns the camera's right direction in world space.
func (c *Camera) Right() math3d.Vec3 {
	return math3d.Right().Rotate(c.Orientation)
}

// Up returns the camera's up direction in world space.
func (c *Camera) Up() math3d.Vec3 {
	return math3d.Up().Rotate(c.Orientation)
}

// ViewMatrix returns the view matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		// The view undoes the camera placement: rotate by the conjugate
		// after moving the world opposite to the camera.
		rot := math3d.RotateQuat(c.Orientation.Conjugate())
		c.viewMatrix = rot.Mul(math3d.Translate(c.Position.Negate()))
		c.viewDirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.projDirty = false
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns the combined view-projection matrix.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	if c.viewProjDirty {
		c.viewProjMatrix = c.ProjectionMatrix().Mul(c.ViewMatrix())
		c.viewProjDirty = false
	}
	return c.viewProjMatrix
}

// MoveForward moves the camera forward (or backward if negative).
func (c *Camera) MoveForward(distance float64) {
	c.SetPosition(c.Position.Add(c.Forward().Scale(distance)))
}

// MoveRight moves the camera right (or left if negative).
func (c *Camera) MoveRight(distance float64) {
	c.SetPosition(c.Position.Add(c.Right().Scale(distance)))
}

// Rotate turns the camera by angle radians about axis in its own frame.
func (c *Camera) Rotate(axis math3d.Vec3, angle float64) {
	a := axis.Normalize()
	c.SetOrientation(c.Orientation.Rotate(a.X, a.Y, a.Z, angle))
}

// RotateGlobal turns the camera by angle radians about a world axis.
func (c *Camera) RotateGlobal(axis math3d.Vec3, angle float64) {
	a := axis.Normalize()
	c.SetOrientation(c.Orientation.RotateGlobal(a.X, a.Y, a.Z, angle))
}

// Orbit swings the camera around target by the world rotation q, keeping
// the target at the same place in view.
func (c *Camera) Orbit(target math3d.Vec3, q math3d.Quatd) {
	c.Position = target.Add(c.Position.Sub(target).Rotate(q))
	c.SetOrientation(c.Orientation.RevMul(q))
}

// LookAt turns the camera toward target, keeping world +Y up where
// possible. Looking straight up or down keeps the current right vector.
func (c *Camera) LookAt(target math3d.Vec3) {
	f := target.Sub(c.Position).Normalize()
	if f == math3d.Zero3() {
		return
	}

	r := f.Cross(math3d.Up())
	if r.LenSq() < 1e-12 {
		r = c.Right()
	}
	r = r.Normalize()
	u := r.Cross(f)

	m := math3d.Identity()
	for i, col := range [3]math3d.Vec3{r, u, f.Negate()} {
		m[i*4], m[i*4+1], m[i*4+2] = col.X, col.Y, col.Z
	}
	c.SetOrientation(math3d.QuatFromMat4(m))
}

// WorldToScreen transforms a world point to screen coordinates.
// Returns (screenX, screenY, depth, visible).
func (c *Camera) WorldToScreen(worldPos math3d.Vec3, screenWidth, screenHeight int) (x, y, depth float64, visible bool) {
	clipPos := c.ViewProjectionMatrix().MulVec4(math3d.V4FromV3(worldPos, 1))

	// Behind the camera
	if clipPos.W <= 0 {
		return 0, 0, 0, false
	}

	ndc := clipPos.PerspectiveDivide()

	x = (ndc.X + 1) * 0.5 * float64(screenWidth)
	y = (1 - ndc.Y) * 0.5 * float64(screenHeight) // Y is flipped
	depth = ndc.Z

	visible = ndc.X >= -1 && ndc.X <= 1 && ndc.Y >= -1 && ndc.Y <= 1 && ndc.Z >= -1 && ndc.Z <= 1
	return x, y, depth, visible
}
