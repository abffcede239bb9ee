package main

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"github.com/taigrr/spin/internal/config"
	"github.com/taigrr/spin/pkg/math3d"
	"github.com/taigrr/spin/pkg/models"
	"github.com/taigrr/spin/pkg/motion"
	"github.com/taigrr/spin/pkg/render"
)

const viewHelp = `Show a model as a spinning wireframe. Without a file a cube is shown.

Controls:
  Mouse drag  - Spin the model
  Scroll      - Zoom in/out
  W/S         - Pitch up/down
  A/D         - Yaw left/right
  Q/E         - Roll left/right
  Space       - Random spin
  G           - Toggle world/body frame for torque
  F           - Ease back to the identity orientation
  R           - Reset
  +/-         - Zoom
  ?           - Toggle HUD
  Esc         - Quit`

const (
	minDistance = 1.0
	maxDistance = 20.0

	// torqueDecay is applied to held torque every frame; key release
	// events are not reported by every terminal.
	torqueDecay = 0.9

	maxFrameDT = 0.1

	maxNormErrorSq = 1e-12
)

// Mouse tracking modes: any-event tracking and SGR extended coordinates.
const (
	enableMouse  = "\x1b[?1003h\x1b[?1006h"
	disableMouse = "\x1b[?1003l\x1b[?1006l"
)

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [model.glb]",
		Short: "Spin a model in the terminal",
		Long:  viewHelp,
		Args:  cobra.MaximumNArgs(1),
		RunE:  runView,
	}
	addViewFlags(cmd)
	return cmd
}

// addViewFlags registers the flags that override config settings.
func addViewFlags(cmd *cobra.Command) {
	def := config.Default()
	f := cmd.Flags()
	f.Int("fps", def.FPS, "target frames per second")
	f.String("bg", def.Background, "background color (R,G,B)")
	f.String("color", def.Color, "wireframe color (R,G,B)")
	f.Float64("torque", def.Torque, "torque applied by the movement keys")
	f.Float64("distance", def.Distance, "camera distance")
	f.String("log", def.Log, "write debug log to this file")
	f.Float64("spring-frequency", def.Spring.Frequency, "spin decay spring frequency")
	f.Float64("spring-damping", def.Spring.Damping, "spin decay spring damping")
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	return config.Load(path, cmd.Flags())
}

// loadMesh reads a GLB file, or builds a cube when path is empty, and fits
// it into a 2 unit box at the origin.
func loadMesh(path string) (*models.Mesh, error) {
	var mesh *models.Mesh
	if path == "" {
		mesh = models.Cube(2)
	} else {
		m, err := models.LoadGLB(path)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		mesh = m
	}
	mesh.Fit(2)
	return mesh, nil
}

// newLogger returns a logger writing to path, or discarding everything
// when path is empty, and a function that closes the log file.
func newLogger(path string) (*log.Logger, func() error, error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return log.New(f, "spin: ", log.LstdFlags|log.Lmicroseconds), f.Close, nil
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	var path string
	if len(args) > 0 {
		path = args[0]
	}
	mesh, err := loadMesh(path)
	if err != nil {
		return err
	}
	logger.Printf("loaded %s: %d vertices, %d triangles", mesh.Name, mesh.VertexCount(), mesh.TriangleCount())

	term := uv.DefaultTerminal()
	term.SetLogger(logger)

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	v, err := newViewer(cfg, mesh, width, height)
	if err != nil {
		return err
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	if err := term.Resize(width, height); err != nil {
		logger.Printf("resize: %v", err)
	}
	if _, err := term.WriteString(enableMouse); err != nil {
		logger.Printf("enable mouse: %v", err)
	}

	defer func() {
		_, _ = term.WriteString(disableMouse)
		term.ExitAltScreen()
		term.ShowCursor()
		if err := term.Shutdown(context.Background()); err != nil {
			logger.Printf("shutdown: %v", err)
		}
	}()

	ctx := cmd.Context()
	ticker := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-term.Events():
			if !ok {
				return nil
			}
			if ws, ok := ev.(uv.WindowSizeEvent); ok {
				term.Erase()
				if err := term.Resize(ws.Width, ws.Height); err != nil {
					logger.Printf("resize: %v", err)
				}
			}
			if v.handleEvent(ev) {
				return nil
			}

		case now := <-ticker.C:
			v.step(now.Sub(last).Seconds())
			last = now
			v.tickFPS(now)
			v.render(term)
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
			if d, ok := v.drift(); ok {
				logger.Printf("orientation drift %.3g", d)
			}
		}
	}
}

// viewer holds the interactive state of the view command. It has no
// terminal of its own so it can be driven by tests.
type viewer struct {
	cfg  *config.Config
	mesh *models.Mesh

	spinner   *motion.Spinner
	follower  *motion.Follower
	following bool

	camera *render.Camera
	fb     *render.Framebuffer
	wire   *render.Wireframe

	bg, fg color.RGBA

	torque   math3d.Vec3 // held key torque in the selected frame
	global   bool        // torque about world axes instead of body axes
	showHUD  bool
	distance float64

	mouseDown    bool
	lastX, lastY int

	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

func newViewer(cfg *config.Config, mesh *models.Mesh, width, height int) (*viewer, error) {
	bg, err := config.ParseRGB(cfg.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	fg, err := config.ParseRGB(cfg.Color)
	if err != nil {
		return nil, fmt.Errorf("color: %w", err)
	}

	v := &viewer{
		cfg:      cfg,
		mesh:     mesh,
		spinner:  motion.NewSpinner(cfg.FPS, cfg.Spring.Frequency, cfg.Spring.Damping),
		camera:   render.NewCamera(),
		bg:       bg,
		fg:       fg,
		global:   true,
		distance: cfg.Distance,
		fpsTime:  time.Now(),
	}
	v.camera.SetFOV(math.Pi / 3)
	v.camera.SetClipPlanes(0.1, 100)
	v.camera.SetPosition(math3d.V3(0, 0, v.distance))
	v.wire = render.NewWireframe(v.camera, nil)
	v.resize(width, height)
	return v, nil
}

func (v *viewer) resize(cols, rows int) {
	w, h := render.FramebufferSize(max(cols, 1), max(rows, 1))
	v.fb = render.NewFramebuffer(w, h)
	v.wire.SetFramebuffer(v.fb)
	v.camera.SetAspectRatio(float64(w) / float64(h))
}

func (v *viewer) zoom(delta float64) {
	v.distance = min(maxDistance, max(minDistance, v.distance+delta))
	v.camera.SetPosition(math3d.V3(0, 0, v.distance))
}

// impulse adds angular velocity in the selected frame and cancels any
// running ease back to identity.
func (v *viewer) impulse(av math3d.Vec3) {
	v.following = false
	if v.global {
		v.spinner.ApplyImpulse(av)
	} else {
		v.spinner.ApplyLocalImpulse(av)
	}
}

func (v *viewer) setTorque(axis math3d.Vec3) {
	v.following = false
	v.torque = axis.Scale(v.cfg.Torque)
}

// handleEvent applies one input event and reports whether to quit.
func (v *viewer) handleEvent(ev uv.Event) (quit bool) {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		v.resize(ev.Width, ev.Height)

	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("escape", "ctrl+c"):
			return true
		case ev.MatchString("w", "up"):
			v.setTorque(math3d.V3(-1, 0, 0))
		case ev.MatchString("s", "down"):
			v.setTorque(math3d.V3(1, 0, 0))
		case ev.MatchString("a", "left"):
			v.setTorque(math3d.V3(0, -1, 0))
		case ev.MatchString("d", "right"):
			v.setTorque(math3d.V3(0, 1, 0))
		case ev.MatchString("q"):
			v.setTorque(math3d.V3(0, 0, 1))
		case ev.MatchString("e"):
			v.setTorque(math3d.V3(0, 0, -1))
		case ev.MatchString("space"):
			v.impulse(math3d.V3(
				(rand.Float64()-0.5)*3,
				(rand.Float64()-0.5)*3,
				(rand.Float64()-0.5)*3,
			))
		case ev.MatchString("g"):
			v.global = !v.global
		case ev.MatchString("f"):
			v.torque = math3d.Zero3()
			v.spinner.Stop()
			v.follower = motion.NewFollower(v.cfg.FPS, v.cfg.Follow.Frequency, v.cfg.Follow.Damping, v.spinner.Orientation)
			v.follower.SetTarget(math3d.QuatIdent[float64]())
			v.following = true
		case ev.MatchString("r"):
			v.torque = math3d.Zero3()
			v.following = false
			v.spinner.Reset()
			v.distance = v.cfg.Distance
			v.zoom(0)
		case ev.Code == '+', ev.MatchString("="):
			v.zoom(-0.5)
		case ev.MatchString("-", "_"):
			v.zoom(0.5)
		case ev.MatchString("?", "shift+/"):
			v.showHUD = !v.showHUD
		}

	case uv.MouseClickEvent:
		v.mouseDown = true
		v.lastX, v.lastY = ev.X, ev.Y

	case uv.MouseReleaseEvent:
		v.mouseDown = false

	case uv.MouseMotionEvent:
		if v.mouseDown {
			dx, dy := ev.X-v.lastX, ev.Y-v.lastY
			v.impulse(math3d.V3(float64(dy)*0.1, float64(dx)*0.1, 0))
			v.lastX, v.lastY = ev.X, ev.Y
		}

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			v.zoom(-0.5)
		case uv.MouseWheelDown:
			v.zoom(0.5)
		}
	}
	return false
}

// step advances the simulation by dt seconds.
func (v *viewer) step(dt float64) {
	dt = min(dt, maxFrameDT)
	if dt <= 0 {
		return
	}

	if v.following {
		v.follower.Update()
		v.spinner.Orientation = v.follower.Orientation()
		if v.follower.Settled(1e-4) {
			v.spinner.Orientation = v.follower.Target()
			v.following = false
		}
		return
	}

	if v.torque.LenSq() > 0 {
		if v.global {
			v.spinner.ApplyImpulse(v.torque.Scale(dt))
		} else {
			v.spinner.ApplyLocalImpulse(v.torque.Scale(dt))
		}
		v.torque = v.torque.Scale(torqueDecay)
		if v.torque.LenSq() < 1e-6 {
			v.torque = math3d.Zero3()
		}
	}
	v.spinner.Update(dt)
}

// drift returns 1 - |q|² of the orientation and whether it is outside
// the 1e-12 budget in either direction.
func (v *viewer) drift() (float64, bool) {
	d := v.spinner.Orientation.NormErrorSq()
	return d, math.Abs(d) > maxNormErrorSq
}

func (v *viewer) tickFPS(now time.Time) {
	v.fpsFrames++
	if elapsed := now.Sub(v.fpsTime); elapsed >= time.Second {
		v.fps = float64(v.fpsFrames) / elapsed.Seconds()
		v.fpsFrames = 0
		v.fpsTime = now
	}
}

// drawScene rasterizes the grid, the model and, with the HUD on, the body
// axes into the framebuffer.
func (v *viewer) drawScene() {
	q := v.spinner.Orientation
	v.fb.Clear(v.bg)
	v.wire.DrawGrid(-1.5, 6, 0.5, render.RGB(60, 60, 80))
	v.wire.DrawMesh(v.mesh, q, v.fg)
	if v.showHUD {
		v.wire.DrawAxes(q, 1.5)
	}
}

// render draws the current frame and the HUD into scr.
func (v *viewer) render(scr uv.Screen) {
	v.drawScene()

	area := scr.Bounds()
	v.fb.Draw(scr, area)

	if !v.showHUD || area.Dy() < 2 {
		return
	}
	top := uv.Rect(area.Min.X, area.Min.Y, area.Dx(), 1)
	bottom := uv.Rect(area.Min.X, area.Max.Y-1, area.Dx(), 1)
	render.DrawText(scr, top, v.hudTop())
	render.DrawText(scr, bottom, v.hudBottom())
}

func (v *viewer) hudTop() string {
	name := v.mesh.Name
	if name == "" {
		name = "cube"
	}
	return fmt.Sprintf("\x1b[40;92m %.0f FPS \x1b[0m\x1b[40;1;97m %s \x1b[0m\x1b[40;96m %d tris \x1b[0m",
		v.fps, filepath.Base(name), v.mesh.TriangleCount())
}

func (v *viewer) hudBottom() string {
	q := v.spinner.Orientation
	frame := "body"
	if v.global {
		frame = "world"
	}
	mode := ""
	if v.following {
		mode = " following"
	}
	return fmt.Sprintf("\x1b[40;97m q=%s %.1f° drift %.1e \x1b[0m\x1b[40;93m %s frame%s \x1b[0m",
		formatQuat(q, 3), math3d.RadToDeg(q.Angle()), q.NormError(), frame, mode)
}
