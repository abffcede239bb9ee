package render

import (
	"github.com/taigrr/spin/pkg/math3d"
	"github.com/taigrr/spin/pkg/models"
)

// Wireframe renders 3D wireframe objects.
type Wireframe struct {
	camera *Camera
	fb     *Framebuffer
}

// NewWireframe creates a new wireframe renderer.
func NewWireframe(camera *Camera, fb *Framebuffer) *Wireframe {
	return &Wireframe{
		camera: camera,
		fb:     fb,
	}
}

// SetFramebuffer switches the render target, e.g. after a resize.
func (w *Wireframe) SetFramebuffer(fb *Framebuffer) {
	w.fb = fb
}

// project returns the pixel position of p, and false when p is behind
// the camera.
func (w *Wireframe) project(p math3d.Vec3) (x, y float64, ok bool) {
	clip := w.camera.ViewProjectionMatrix().MulVec4(math3d.V4FromV3(p, 1))
	if clip.W <= w.camera.Near {
		return 0, 0, false
	}
	ndc := clip.PerspectiveDivide()
	return (ndc.X + 1) * 0.5 * float64(w.fb.Width), (1 - ndc.Y) * 0.5 * float64(w.fb.Height), true
}

// DrawLine3D draws a line in 3D space. Lines with an endpoint behind the
// camera are skipped; the rest are clipped to the framebuffer.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, color Color) {
	x1, y1, ok1 := w.project(p1)
	x2, y2, ok2 := w.project(p2)
	if !ok1 || !ok2 {
		return
	}
	w.fb.DrawLineF(x1, y1, x2, y2, color)
}

// DrawMesh draws every edge of mesh after rotating it by orientation
// about the origin.
func (w *Wireframe) DrawMesh(mesh *models.Mesh, orientation math3d.Quatd, color Color) {
	world := make([]math3d.Vec3, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		world[i] = v.Position.Rotate(orientation)
	}
	for _, e := range mesh.Edges() {
		w.DrawLine3D(world[e.A], world[e.B], color)
	}
}

// DrawAxes draws the body axes of orientation at the origin: X red,
// Y green, Z blue.
func (w *Wireframe) DrawAxes(orientation math3d.Quatd, length float64) {
	origin := math3d.Zero3()
	w.DrawLine3D(origin, math3d.V3(length, 0, 0).Rotate(orientation), ColorRed)
	w.DrawLine3D(origin, math3d.V3(0, length, 0).Rotate(orientation), ColorGreen)
	w.DrawLine3D(origin, math3d.V3(0, 0, length).Rotate(orientation), ColorBlue)
}

// DrawGrid draws a grid on the XZ plane at height y.
func (w *Wireframe) DrawGrid(y, size, step float64, color Color) {
	half := size / 2
	for x := -half; x <= half; x += step {
		w.DrawLine3D(math3d.V3(x, y, -half), math3d.V3(x, y, half), color)
	}
	for z := -half; z <= half; z += step {
		w.DrawLine3D(math3d.V3(-half, y, z), math3d.V3(half, y, z), color)
	}
}
