package math3d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/num/quat"
)

const eps = 1e-9

func toNumber(q Quatd) quat.Number {
	return quat.Number{Real: q.W, Imag: q.X, Jmag: q.Y, Kmag: q.Z}
}

func fromNumber(n quat.Number) Quatd {
	return Quatd{X: n.Imag, Y: n.Jmag, Z: n.Kmag, W: n.Real}
}

func TestQuatConstructors(t *testing.T) {
	q := Q(1.0, 2.0, 3.0, 4.0)
	require.Equal(t, Quatd{1, 2, 3, 4}, q)
	require.Equal(t, [4]float64{1, 2, 3, 4}, q.Array())

	require.Equal(t, Quatf{W: 1}, QuatIdent[float32]())

	got, err := QuatFromSlice([]float64{5, 6, 7, 8, 9})
	require.NoError(t, err)
	require.Equal(t, Quatd{5, 6, 7, 8}, got)

	_, err = QuatFromSlice([]float32{1, 2, 3})
	require.ErrorIs(t, err, ErrShortSlice)

	require.Equal(t, Quatd{1, 2, 3, 4}, QuatFrom[float64](V4(1, 2, 3, 4)))
	require.Equal(t, q, QuatFrom[float64](q))
}

func TestQuatStore(t *testing.T) {
	q := Q(0.5, -0.5, 0.5, -0.5)

	var v Vec4
	q.Store(&v)
	require.Equal(t, V4(0.5, -0.5, 0.5, -0.5), v)

	var r Quatd
	q.Conjugate().Store(&r)
	require.Equal(t, Quatd{-0.5, 0.5, -0.5, -0.5}, r)

	r.SetIdent()
	require.Equal(t, QuatIdent[float64](), r)
}

func TestQuatLength(t *testing.T) {
	tests := []struct {
		name  string
		q     Quatd
		lenSq float64
	}{
		{"identity", QuatIdent[float64](), 1},
		{"zero", Quatd{}, 0},
		{"all ones", Q(1.0, 1.0, 1.0, 1.0), 4},
		{"mixed", Q(1.0, -2.0, 2.0, 0.0), 9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.q.LenSq(); got != tc.lenSq {
				t.Errorf("LenSq() = %v, want %v", got, tc.lenSq)
			}
			if got := tc.q.Len(); math.Abs(got-math.Sqrt(tc.lenSq)) > eps {
				t.Errorf("Len() = %v, want %v", got, math.Sqrt(tc.lenSq))
			}
			if got := tc.q.Len(); !scalar.EqualWithinAbs(got, quat.Abs(toNumber(tc.q)), eps) {
				t.Errorf("Len() = %v, gonum Abs = %v", got, quat.Abs(toNumber(tc.q)))
			}
		})
	}
}

func TestQuatNormError(t *testing.T) {
	q := Q(0, 0, 0, math.Sqrt(1.01))
	require.InDelta(t, -0.01, q.NormErrorSq(), 1e-12)
	require.InDelta(t, 0.1, q.NormError(), 1e-10)

	unit := QuatAxisAngle(0.0, 0.0, 1.0, 0.7)
	require.InDelta(t, 0, unit.NormErrorSq(), 1e-15)
	require.True(t, unit.IsUnit(1e-12))

	shrunk := Q(0, 0, 0, math.Sqrt(0.96))
	require.InDelta(t, 0.04, shrunk.NormErrorSq(), 1e-12)
	require.InDelta(t, 0.2, shrunk.NormError(), 1e-10)
	require.False(t, shrunk.IsUnit(1e-3))
}

func TestQuatConjugateInverse(t *testing.T) {
	q := Q(1.0, 2.0, 3.0, 4.0)

	require.Equal(t, Quatd{-1, -2, -3, 4}, q.Conjugate())
	require.Equal(t, fromNumber(quat.Conj(toNumber(q))), q.Conjugate())
	require.True(t, q.Inverse().ApproxEqual(fromNumber(quat.Inv(toNumber(q))), eps))

	// q * q⁻¹ is the identity even for a non-unit q.
	require.True(t, q.MulRaw(q.Inverse()).ApproxEqual(QuatIdent[float64](), eps))

	u := q.Normalize()
	require.True(t, u.Conjugate().ApproxEqual(u.Inverse(), eps))

	p := q
	p.SetConjugate()
	require.Equal(t, q.Conjugate(), p)
	p = q
	p.SetInverse()
	require.Equal(t, q.Inverse(), p)
}

func TestQuatNormalize(t *testing.T) {
	q := Q(0.0, 3.0, 0.0, 4.0).Normalize()
	require.InDelta(t, 0.6, q.Y, eps)
	require.InDelta(t, 0.8, q.W, eps)

	p := Q(2.0, 0.0, 0.0, 0.0)
	p.SetNormalize()
	require.Equal(t, Quatd{X: 1}, p)

	f := Q[float32](0, 0, 3, 4).Normalize()
	require.InDelta(t, 0.6, f.Z, 1e-6)
	require.InDelta(t, 0.8, f.W, 1e-6)
}

func TestQuatDegenerate(t *testing.T) {
	var zero Quatd

	n := zero.Normalize()
	require.True(t, math.IsNaN(n.W), "Normalize of zero should produce NaN, got %v", n)

	inv := zero.Inverse()
	require.True(t, math.IsNaN(inv.W) || math.IsInf(inv.W, 0), "Inverse of zero should not be finite, got %v", inv)

	_, err := zero.NormalizeSafe()
	require.ErrorIs(t, err, ErrZeroLength)
	_, err = zero.InverseSafe()
	require.ErrorIs(t, err, ErrZeroLength)

	_, _, _, _, err = zero.AxisAngle()
	require.ErrorIs(t, err, ErrZeroLength)

	_, _, _, _, err = QuatIdent[float64]().AxisAngle()
	require.ErrorIs(t, err, ErrNoRotation)

	x, y, z := QuatIdent[float64]().Axis()
	require.True(t, math.IsNaN(x) && math.IsNaN(y) && math.IsNaN(z), "Axis of identity = (%v, %v, %v)", x, y, z)

	got, err := Q(0.0, 0.0, 0.0, 2.0).NormalizeSafe()
	require.NoError(t, err)
	require.Equal(t, QuatIdent[float64](), got)
}

func TestQuatArithmetic(t *testing.T) {
	a := Q(1.0, 2.0, 3.0, 4.0)
	b := Q(0.5, 0.5, 0.5, 0.5)

	require.Equal(t, Quatd{1.5, 2.5, 3.5, 4.5}, a.Add(b))
	require.Equal(t, Quatd{0.5, 1.5, 2.5, 3.5}, a.Sub(b))
	require.Equal(t, Quatd{2, 4, 6, 8}, a.MulScalar(2))
	require.Equal(t, Quatd{0.5, 1, 1.5, 2}, a.DivScalar(2))
	require.Equal(t, Quatd{-1, -2, -3, -4}, a.Negate())
	require.Equal(t, 5.0, a.Dot(b))
	require.True(t, b.SameRotation(b.Negate(), 0))
	require.False(t, a.IsZero())
	require.True(t, Quatd{}.IsZero())
}

func TestQuatString(t *testing.T) {
	require.Equal(t, "(0, 0, 0.5, 1)", Q(0.0, 0.0, 0.5, 1.0).String())
	require.Equal(t, "(1, 2, 3, 4)", Q[float32](1, 2, 3, 4).String())
}

func TestDegRad(t *testing.T) {
	require.InDelta(t, math.Pi, DegToRad(180.0), eps)
	require.InDelta(t, 90, RadToDeg(math.Pi/2), eps)
	require.InDelta(t, float32(math.Pi/4), DegToRad[float32](45), 1e-6)
}
