package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taigrr/spin/pkg/math3d"
)

// execute runs the root command with args and returns its standard output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), err
}

func TestQuatCommands(t *testing.T) {
	const r45 = "0,0,0.7071067811865476,0.7071067811865476" // 90° about Z

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"mul", []string{"quat", "mul", "0,0,0,1", "0,1,0,0"}, "(0, 1, 0, 0)"},
		{"mul chain", []string{"quat", "mul", r45, r45}, "(0, 0, 1, 0)"},
		{"mul raw keeps length", []string{"quat", "mul", "--raw", "0,0,0,2", "0,0,0,3"}, "(0, 0, 0, 6)"},
		{"revmul", []string{"quat", "revmul", "1,0,0,0", "0,1,0,0"}, "(0, 0, -1, 0)"},
		{"conj", []string{"quat", "conj", "1,2,3,4"}, "(-1, -2, -3, 4)"},
		{"inv", []string{"quat", "inv", "0,0,0,2"}, "(0, 0, 0, 0.5)"},
		{"norm", []string{"quat", "norm", "0,0,3,4"}, "(0, 0, 0.6, 0.8)"},
		{"hamilton notation", []string{"quat", "conj", "1+2i+3j+4k"}, "(-2, -3, -4, 1)"},
		{"axis-angle", []string{"quat", "axis-angle", "0,0,2", "90"}, "(0, 0, 0.707107, 0.707107)"},
		{"axis", []string{"quat", "axis", r45}, "(0, 0, 1) 90°"},
		{"rotate local", []string{"quat", "rotate", "0,0,0,1", "--axis", "0,0,1", "--angle", "180"}, "(0, 0, 1, 0)"},
		{"rotate global", []string{"quat", "rotate", r45, "--axis", "1,0,0", "--angle", "180", "--global"}, "(0.707107, -0.707107, 0, 0)"},
		{"transform", []string{"quat", "transform", r45, "1,0,0"}, "(0, 1, 0)"},
		{"scale", []string{"quat", "scale", "0,0,1,0", "0.5"}, "(0, 0, 0.707107, 0.707107)"},
		{"slerp", []string{"quat", "slerp", "0,0,0,1", "0,0,1,0", "0.5"}, "(0, 0, 0.707107, 0.707107)"},
		{"nlerp", []string{"quat", "slerp", "--nlerp", "0,0,0,1", "0,0,1,0", "0.5"}, "(0, 0, 0.707107, 0.707107)"},
		{"prec", []string{"quat", "axis-angle", "--prec", "3", "0,0,1", "90"}, "(0, 0, 0.707, 0.707)"},
		{"negative operand", []string{"quat", "conj", "--", "-0.5,0.5,0.5,0.5"}, "(0.5, -0.5, -0.5, 0.5)"},
		{"negative factor", []string{"quat", "scale", "--", r45, "-1"}, "(0, 0, -0.707107, 0.707107)"},
		{"negative vector", []string{"quat", "transform", "--", r45, "-1,0,0"}, "(0, -1, 0)"},
		{"negative angle", []string{"quat", "axis-angle", "--prec", "3", "--", "0,0,1", "-90"}, "(0, 0, -0.707, 0.707)"},
		{"negative axis flag", []string{"quat", "rotate", "0,0,0,1", "--axis", "-1,0,0", "--angle", "180"}, "(-1, 0, 0, 0)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			require.Equal(t, tt.want, strings.TrimSpace(out))
		})
	}
}

func TestQuatIntegrate(t *testing.T) {
	out, err := execute(t, "quat", "integrate", "0,0,0,1",
		"--velocity", "0,0,3.141592653589793", "--dt", "0.01", "--steps", "100")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "(0, 0, 1, 0)", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "drift: "))
}

func TestQuatInfo(t *testing.T) {
	out, err := execute(t, "quat", "info", "0,0,0,1")
	require.NoError(t, err)
	require.Contains(t, out, "length: 1\n")
	require.Contains(t, out, "axis:   none")

	out, err = execute(t, "quat", "info", "0,1,0,0")
	require.NoError(t, err)
	require.Contains(t, out, "angle:  180°")
	require.Contains(t, out, "axis:   (0, 1, 0)")
}

func TestQuatErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad quaternion", []string{"quat", "conj", "1,2,3"}},
		{"bad number", []string{"quat", "conj", "1,2,x,4"}},
		{"bad hamilton", []string{"quat", "conj", "1+2q"}},
		{"zero inverse", []string{"quat", "inv", "0,0,0,0"}},
		{"zero norm", []string{"quat", "norm", "0,0,0,0"}},
		{"identity axis", []string{"quat", "axis", "0,0,0,1"}},
		{"zero axis", []string{"quat", "axis-angle", "0,0,0", "90"}},
		{"zero rotate axis", []string{"quat", "rotate", "0,0,0,1", "--axis", "0,0,0"}},
		{"negative steps", []string{"quat", "integrate", "0,0,0,1", "--steps", "-1"}},
		{"missing arg", []string{"quat", "mul", "0,0,0,1"}},
		{"negative operand without separator", []string{"quat", "conj", "-0.5,0.5,0.5,0.5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
		})
	}
}

func TestParseQuat(t *testing.T) {
	q, err := parseQuat(" 1, 2 ,3,4")
	require.NoError(t, err)
	require.Equal(t, math3d.Q(1.0, 2, 3, 4), q)

	q, err = parseQuat("1+2i+3j+4k")
	require.NoError(t, err)
	require.Equal(t, math3d.Q(2.0, 3, 4, 1), q)

	q, err = parseQuat("1")
	require.NoError(t, err)
	require.Equal(t, math3d.QuatIdent[float64](), q)
}

func TestFormatTidiesNoise(t *testing.T) {
	q := math3d.Q(-0.0, 6e-17, 1, -1e-13)
	require.Equal(t, "(0, 0, 1, 0)", formatQuat(q, 6))
	require.Equal(t, "(0.5, 0, -2)", formatVec3(math3d.V3(0.5, -2e-16, -2), 6))
}

func TestConfigCommand(t *testing.T) {
	out, err := execute(t, "config", "--fps", "30", "--color", "1,2,3")
	require.NoError(t, err)
	require.Contains(t, out, "fps: 30")
	require.Contains(t, out, "color: 1,2,3")

	dir := t.TempDir()
	path := filepath.Join(dir, "spin.yaml")
	require.NoError(t, os.WriteFile(path, []byte("torque: 7\n"), 0o644))
	out, err = execute(t, "--config", path, "config")
	require.NoError(t, err)
	require.Contains(t, out, "torque: 7")

	_, err = execute(t, "config", "--fps", "0")
	require.Error(t, err)
}

func TestSnapshotCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	out, err := execute(t, "snapshot", "-o", path, "--width", "20", "--height", "10",
		"--orientation", "0,0.3826834323650898,0,0.9238795325112867", "--axes")
	require.NoError(t, err)
	require.Contains(t, out, "(20x20)")

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Positive(t, info.Size())

	_, err = execute(t, "snapshot", "-o", path, "--orientation", "0,0,0,0")
	require.Error(t, err)

	_, err = execute(t, "snapshot", filepath.Join(t.TempDir(), "missing.glb"))
	require.Error(t, err)
}
