// Package motion drives quaternion orientations over time: a free
// spinning body whose angular velocity eases to rest, and a follower that
// eases from one orientation to another. Both use harmonica springs for
// the easing.
package motion

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/spin/pkg/math3d"
)

// Spinner is a rigid body with an orientation and a world-space angular
// velocity in radians per second.
//
// Each Update integrates the orientation over dt and then eases every
// velocity component toward zero with a spring, so a spin started by an
// impulse slows down smoothly instead of stopping dead.
type Spinner struct {
	Orientation math3d.Quatd
	Velocity    math3d.Vec3

	frequency float64
	damping   float64
	stepDT    float64
	spring    harmonica.Spring
	accel     math3d.Vec3 // spring velocity of each Velocity component
}

// NewSpinner returns a Spinner at rest with the identity orientation.
// frequency and damping configure the decay spring; damping 1 is
// critically damped and never reverses the spin.
func NewSpinner(fps int, frequency, damping float64) *Spinner {
	dt := harmonica.FPS(fps)
	return &Spinner{
		Orientation: math3d.QuatIdent[float64](),
		frequency:   frequency,
		damping:     damping,
		stepDT:      dt,
		spring:      harmonica.NewSpring(dt, frequency, damping),
	}
}

// ApplyImpulse adds a world-space angular velocity.
func (s *Spinner) ApplyImpulse(av math3d.Vec3) {
	s.Velocity = s.Velocity.Add(av)
}

// ApplyLocalImpulse adds an angular velocity given in the body frame,
// so "pitch up" means the body's own X axis whatever way it faces.
func (s *Spinner) ApplyLocalImpulse(av math3d.Vec3) {
	s.ApplyImpulse(av.Rotate(s.Orientation))
}

// springStepTolerance is the relative change in frame time below which
// the decay spring keeps its coefficients. Measured frame times jitter
// around the target rate.
const springStepTolerance = 0.05

// Update advances the orientation by dt seconds and decays the velocity.
func (s *Spinner) Update(dt float64) {
	if dt <= 0 {
		return
	}
	s.Orientation = math3d.IntegrateVec3(s.Orientation, s.Velocity, dt)

	if math.Abs(dt-s.stepDT) > springStepTolerance*s.stepDT {
		s.stepDT = dt
		s.spring = harmonica.NewSpring(dt, s.frequency, s.damping)
	}
	s.Velocity.X, s.accel.X = s.spring.Update(s.Velocity.X, s.accel.X, 0)
	s.Velocity.Y, s.accel.Y = s.spring.Update(s.Velocity.Y, s.accel.Y, 0)
	s.Velocity.Z, s.accel.Z = s.spring.Update(s.Velocity.Z, s.accel.Z, 0)
}

// Resting reports whether the angular speed is below eps.
func (s *Spinner) Resting(eps float64) bool {
	return s.Velocity.Len() < eps
}

// Stop zeroes the velocity and keeps the orientation.
func (s *Spinner) Stop() {
	s.Velocity = math3d.Zero3()
	s.accel = math3d.Zero3()
}

// Reset stops the body and returns it to the identity orientation.
func (s *Spinner) Reset() {
	s.Stop()
	s.Orientation = math3d.QuatIdent[float64]()
}
