package math3d

import (
	"math"
	"unsafe"

	"github.com/chewxy/math32"
	"golang.org/x/exp/constraints"
)

// Float is the scalar type of the generic quaternion.
type Float interface {
	constraints.Float
}

// DegToRad converts degrees to radians.
func DegToRad[T Float](deg T) T {
	return deg * T(math.Pi/180)
}

// RadToDeg converts radians to degrees.
func RadToDeg[T Float](rad T) T {
	return rad * T(180/math.Pi)
}

// is32 reports whether T is a 32-bit float.
// The trig helpers below route 32-bit scalars through math32 so that
// float32 quaternions never widen to float64.
func is32[T Float]() bool {
	var z T
	return unsafe.Sizeof(z) == 4
}

func sqrt[T Float](x T) T {
	if is32[T]() {
		return T(math32.Sqrt(float32(x)))
	}
	return T(math.Sqrt(float64(x)))
}

// invSqrt returns 1/sqrt(x).
func invSqrt[T Float](x T) T {
	return 1 / sqrt(x)
}

func sin[T Float](x T) T {
	if is32[T]() {
		return T(math32.Sin(float32(x)))
	}
	return T(math.Sin(float64(x)))
}

func cos[T Float](x T) T {
	if is32[T]() {
		return T(math32.Cos(float32(x)))
	}
	return T(math.Cos(float64(x)))
}

func sincos[T Float](x T) (s, c T) {
	if is32[T]() {
		s32, c32 := math32.Sincos(float32(x))
		return T(s32), T(c32)
	}
	s64, c64 := math.Sincos(float64(x))
	return T(s64), T(c64)
}

// acos clamps x to [-1, 1] before taking the inverse cosine, so drift
// past ±1 yields 0 or π instead of NaN.
func acos[T Float](x T) T {
	x = clamp(x, -1, 1)
	if is32[T]() {
		return T(math32.Acos(float32(x)))
	}
	return T(math.Acos(float64(x)))
}

func atan2[T Float](y, x T) T {
	if is32[T]() {
		return T(math32.Atan2(float32(y), float32(x)))
	}
	return T(math.Atan2(float64(y), float64(x)))
}

func abs[T Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

func clamp[T Float](x, lo, hi T) T {
	switch {
	case x < lo:
		return lo
	case x > hi:
		return hi
	}
	return x
}
