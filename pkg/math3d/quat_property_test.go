package math3d

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/num/quat"
	"pgregory.net/rapid"
)

func unitVec3() *rapid.Generator[Vec3] {
	return rapid.Custom(func(t *rapid.T) Vec3 {
		return V3(
			rapid.Float64Range(-1, 1).Draw(t, "x"),
			rapid.Float64Range(-1, 1).Draw(t, "y"),
			rapid.Float64Range(-1, 1).Draw(t, "z"),
		)
	}).Filter(func(v Vec3) bool { return v.Len() > 0.1 })
}

func unitQuat() *rapid.Generator[Quatd] {
	return rapid.Custom(func(t *rapid.T) Quatd {
		axis := unitVec3().Draw(t, "axis").Normalize()
		angle := rapid.Float64Range(-2*math.Pi, 2*math.Pi).Draw(t, "angle")
		return QuatAxisAngleVec3(axis, angle)
	})
}

func anyQuat() *rapid.Generator[Quatd] {
	return rapid.Custom(func(t *rapid.T) Quatd {
		return Q(
			rapid.Float64Range(-10, 10).Draw(t, "x"),
			rapid.Float64Range(-10, 10).Draw(t, "y"),
			rapid.Float64Range(-10, 10).Draw(t, "z"),
			rapid.Float64Range(-10, 10).Draw(t, "w"),
		)
	})
}

func TestPropertyMulMatchesHamiltonProduct(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := anyQuat().Draw(t, "a")
		b := anyQuat().Draw(t, "b")

		want := fromNumber(quat.Mul(toNumber(a), toNumber(b)))
		if got := a.MulRaw(b); !got.ApproxEqual(want, 1e-9) {
			t.Fatalf("MulRaw(%v, %v) = %v, gonum = %v", a, b, got, want)
		}
		if got := b.MulRaw(a); !got.ApproxEqual(fromNumber(quat.Mul(toNumber(b), toNumber(a))), 1e-9) {
			t.Fatalf("reverse product mismatch: %v", got)
		}
	})
}

func TestPropertyUnitNormClosure(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := unitQuat().Draw(t, "a")
		b := unitQuat().Draw(t, "b")

		for name, q := range map[string]Quatd{
			"Mul":    a.Mul(b),
			"RevMul": a.RevMul(b),
			"Rotate": a.Rotate(0, 1, 0, 0.3),
			"Slerp":  a.Slerp(b, 0.3),
		} {
			if !scalar.EqualWithinAbs(q.Len(), 1, 1e-12) {
				t.Fatalf("%s: |q| = %v", name, q.Len())
			}
		}
	})
}

func TestPropertyConjugateIsInverse(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		q := unitQuat().Draw(t, "q")
		if !q.Conjugate().ApproxEqual(q.Inverse(), 1e-12) {
			t.Fatalf("conjugate %v != inverse %v", q.Conjugate(), q.Inverse())
		}
	})
}

func TestPropertyIdentityRotation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		q := unitQuat().Draw(t, "q")
		axis := unitVec3().Draw(t, "axis").Normalize()

		if got := q.Rotate(axis.X, axis.Y, axis.Z, 0); !got.ApproxEqual(q, 1e-12) {
			t.Fatalf("Rotate by 0 changed %v to %v", q, got)
		}
		dt := rapid.Float64Range(-10, 10).Draw(t, "dt")
		if got := q.Integrate(0, 0, 0, dt); got != q {
			t.Fatalf("Integrate with zero velocity changed %v to %v", q, got)
		}
	})
}

func TestPropertyAxisAngleRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		axis := unitVec3().Draw(t, "axis").Normalize()
		angle := rapid.Float64Range(1e-3, math.Pi-1e-3).Draw(t, "angle")

		q := QuatAxisAngleVec3(axis, angle)
		if got := q.Angle(); !scalar.EqualWithinAbs(got, angle, 1e-6) {
			t.Fatalf("Angle() = %v, want %v", got, angle)
		}
		x, y, z := q.Axis()
		if !V3(x, y, z).ApproxEqual(axis, 1e-6) {
			t.Fatalf("Axis() = (%v, %v, %v), want %v", x, y, z, axis)
		}
	})
}

func TestPropertyTransformPreservesLength(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		q := unitQuat().Draw(t, "q")
		v := unitVec3().Draw(t, "v").Scale(rapid.Float64Range(0, 100).Draw(t, "len"))

		got := v.Rotate(q)
		if !scalar.EqualWithinAbsOrRel(got.Len(), v.Len(), 1e-9, 1e-9) {
			t.Fatalf("|q v q*| = %v, |v| = %v", got.Len(), v.Len())
		}
		// The inverse rotation undoes it.
		if back := got.Rotate(q.Conjugate()); !back.ApproxEqual(v, 1e-9) {
			t.Fatalf("round trip %v -> %v", v, back)
		}
	})
}
