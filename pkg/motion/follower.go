package motion

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/spin/pkg/math3d"
)

// Follower eases an orientation toward a target along the shortest arc.
// A spring drives the progress p from 0 to 1 and the orientation is the
// start rotated by p of the way to the target.
type Follower struct {
	start    math3d.Quatd
	target   math3d.Quatd
	progress float64
	vel      float64
	spring   harmonica.Spring
}

// NewFollower returns a Follower resting at q.
func NewFollower(fps int, frequency, damping float64, q math3d.Quatd) *Follower {
	q = q.Normalize()
	return &Follower{
		start:    q,
		target:   q,
		progress: 1,
		spring:   harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
	}
}

// SetTarget starts easing from the current orientation to q.
func (f *Follower) SetTarget(q math3d.Quatd) {
	f.start = f.Orientation()
	q = q.Normalize()
	if f.start.Dot(q) < 0 {
		q = q.Negate()
	}
	f.target = q
	f.progress = 0
	f.vel = 0
}

// Target returns the orientation being eased toward.
func (f *Follower) Target() math3d.Quatd {
	return f.target
}

// Update steps the spring by one frame.
func (f *Follower) Update() {
	f.progress, f.vel = f.spring.Update(f.progress, f.vel, 1)
}

// Progress returns how far along the arc the follower is, 0 at the start
// and 1 at the target. An underdamped spring can overshoot past 1.
func (f *Follower) Progress() float64 {
	return f.progress
}

// Orientation returns start · (start⁻¹ · target)^p.
func (f *Follower) Orientation() math3d.Quatd {
	delta := f.start.Conjugate().Mul(f.target)
	return f.start.Mul(delta.Scale(f.progress))
}

// Settled reports whether the follower has reached its target and
// stopped within eps.
func (f *Follower) Settled(eps float64) bool {
	return math.Abs(1-f.progress) < eps && math.Abs(f.vel) < eps
}
