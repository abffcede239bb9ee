package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/taigrr/spin/pkg/math3d"
	"gonum.org/v1/gonum/num/quat"
)

// parseQuat reads a quaternion written either as four comma separated
// components "x,y,z,w" or in the "w+xi+yj+zk" notation.
func parseQuat(s string) (math3d.Quatd, error) {
	if strings.Contains(s, ",") {
		v, err := parseFloats(s, 4)
		if err != nil {
			return math3d.Quatd{}, fmt.Errorf("quaternion %q: %w", s, err)
		}
		return math3d.QuatFromSlice(v)
	}

	n, err := quat.Parse(s)
	if err != nil {
		return math3d.Quatd{}, fmt.Errorf("quaternion %q: %w", s, err)
	}
	return math3d.Q(n.Imag, n.Jmag, n.Kmag, n.Real), nil
}

// parseVec3 reads "x,y,z".
func parseVec3(s string) (math3d.Vec3, error) {
	v, err := parseFloats(s, 3)
	if err != nil {
		return math3d.Vec3{}, fmt.Errorf("vector %q: %w", s, err)
	}
	return math3d.V3(v[0], v[1], v[2]), nil
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("number %q: %w", s, err)
	}
	return f, nil
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d comma separated numbers, got %d", n, len(parts))
	}
	out := make([]float64, n)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// tidy maps values within 1e-12 of zero, including -0, to 0 so printed
// results do not show rounding noise.
func tidy(v float64) float64 {
	if math.Abs(v) < 1e-12 {
		return 0
	}
	return v
}

func formatQuat(q math3d.Quatd, prec int) string {
	return fmt.Sprintf("(%.*g, %.*g, %.*g, %.*g)",
		prec, tidy(q.X), prec, tidy(q.Y), prec, tidy(q.Z), prec, tidy(q.W))
}

func formatVec3(v math3d.Vec3, prec int) string {
	return fmt.Sprintf("(%.*g, %.*g, %.*g)", prec, tidy(v.X), prec, tidy(v.Y), prec, tidy(v.Z))
}
