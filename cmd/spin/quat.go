package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taigrr/spin/pkg/math3d"
)

const quatHelp = `Quaternions are written "x,y,z,w" or "w+xi+yj+zk".
Vectors are written "x,y,z". Angles are in degrees.

Operands that start with "-" would be read as flags; put them after "--":

  spin quat conj -- -0.5,0.5,0.5,0.5
  spin quat scale -- 0,0,1,0 -1

Flag values may be negative: --axis -1,0,0 or --axis=-1,0,0.`

func newQuatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quat",
		Short: "Evaluate quaternion operations",
		Long:  quatHelp,
		Example: `  spin quat mul 0,0,0.7071,0.7071 0,0,0.7071,0.7071
  spin quat transform -- 0,0,0.7071,0.7071 -1,0,0`,
	}
	cmd.PersistentFlags().Int("prec", 6, "significant digits in printed results")

	cmd.AddCommand(
		newMulCmd(),
		newRevMulCmd(),
		unaryQuatCmd("conj", "Conjugate of Q", func(q math3d.Quatd) (math3d.Quatd, error) {
			return q.Conjugate(), nil
		}),
		unaryQuatCmd("inv", "Inverse of Q", func(q math3d.Quatd) (math3d.Quatd, error) {
			return q.InverseSafe()
		}),
		unaryQuatCmd("norm", "Q scaled to unit length", func(q math3d.Quatd) (math3d.Quatd, error) {
			return q.NormalizeSafe()
		}),
		newInfoCmd(),
		newAxisCmd(),
		newAxisAngleCmd(),
		newRotateCmd(),
		newIntegrateCmd(),
		newTransformCmd(),
		newScaleCmd(),
		newSlerpCmd(),
	)
	return cmd
}

func precision(cmd *cobra.Command) int {
	p, err := cmd.Flags().GetInt("prec")
	if err != nil || p < 1 {
		return 6
	}
	return p
}

func printQuat(cmd *cobra.Command, q math3d.Quatd) {
	fmt.Fprintln(cmd.OutOrStdout(), formatQuat(q, precision(cmd)))
}

func parseQuats(args []string) ([]math3d.Quatd, error) {
	qs := make([]math3d.Quatd, len(args))
	for i, a := range args {
		q, err := parseQuat(a)
		if err != nil {
			return nil, err
		}
		qs[i] = q
	}
	return qs, nil
}

func unaryQuatCmd(name, short string, op func(math3d.Quatd) (math3d.Quatd, error)) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [--] Q",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := parseQuat(args[0])
			if err != nil {
				return err
			}
			r, err := op(q)
			if err != nil {
				return err
			}
			printQuat(cmd, r)
			return nil
		},
	}
}

func newMulCmd() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "mul [flags] [--] A B [C...]",
		Short: "Hamilton product A·B·C...",
		Long: `Multiply left to right. The result is renormalized after every
product unless --raw is given.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qs, err := parseQuats(args)
			if err != nil {
				return err
			}
			r := qs[0]
			for _, q := range qs[1:] {
				if raw {
					r = r.MulRaw(q)
				} else {
					r = r.Mul(q)
				}
			}
			printQuat(cmd, r)
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "skip renormalization")
	return cmd
}

func newRevMulCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revmul [flags] [--] A B",
		Short: "Reverse product B·A",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qs, err := parseQuats(args)
			if err != nil {
				return err
			}
			printQuat(cmd, qs[0].RevMul(qs[1]))
			return nil
		},
	}
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info [flags] [--] Q",
		Short: "Length, drift, angle and axis of Q",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := parseQuat(args[0])
			if err != nil {
				return err
			}
			p := precision(cmd)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "quat:   %s\n", formatQuat(q, p))
			fmt.Fprintf(out, "length: %.*g\n", p, q.Len())
			fmt.Fprintf(out, "drift:  %.3g\n", q.NormError())
			x, y, z, angle, err := q.AxisAngle()
			switch {
			case err == nil:
				fmt.Fprintf(out, "angle:  %.*g°\n", p, tidy(math3d.RadToDeg(angle)))
				fmt.Fprintf(out, "axis:   %s\n", formatVec3(math3d.V3(x, y, z), p))
			case errors.Is(err, math3d.ErrNoRotation):
				fmt.Fprintln(out, "angle:  0°")
				fmt.Fprintln(out, "axis:   none")
			default:
				return err
			}
			return nil
		},
	}
}

func newAxisCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "axis [flags] [--] Q",
		Short: "Rotation axis and angle of Q",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := parseQuat(args[0])
			if err != nil {
				return err
			}
			x, y, z, angle, err := q.AxisAngle()
			if err != nil {
				return err
			}
			p := precision(cmd)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %.*g°\n",
				formatVec3(math3d.V3(x, y, z), p), p, tidy(math3d.RadToDeg(angle)))
			return nil
		},
	}
}

func newAxisAngleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "axis-angle [flags] [--] AXIS DEG",
		Short: "Quaternion for a rotation of DEG degrees about AXIS",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			axis, err := parseVec3(args[0])
			if err != nil {
				return err
			}
			deg, err := parseFloat(args[1])
			if err != nil {
				return err
			}
			if axis.Len() == 0 {
				return fmt.Errorf("axis %q has zero length", args[0])
			}
			printQuat(cmd, math3d.QuatAxisAngleVec3(axis.Normalize(), math3d.DegToRad(deg)))
			return nil
		},
	}
}

func newRotateCmd() *cobra.Command {
	var (
		axisStr string
		deg     float64
		global  bool
	)
	cmd := &cobra.Command{
		Use:   "rotate [flags] [--] Q",
		Short: "Rotate Q about an axis",
		Long: `Rotate Q by --angle degrees about --axis. The axis is taken in Q's
own frame (Q·Δ) unless --global is given, in which case it is a world
axis (Δ·Q).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := parseQuat(args[0])
			if err != nil {
				return err
			}
			axis, err := parseVec3(axisStr)
			if err != nil {
				return err
			}
			if axis.Len() == 0 {
				return fmt.Errorf("axis %q has zero length", axisStr)
			}
			axis = axis.Normalize()
			if global {
				q = q.RotateGlobalDeg(axis.X, axis.Y, axis.Z, deg)
			} else {
				q = q.RotateDeg(axis.X, axis.Y, axis.Z, deg)
			}
			printQuat(cmd, q)
			return nil
		},
	}
	cmd.Flags().StringVar(&axisStr, "axis", "0,1,0", "rotation axis")
	cmd.Flags().Float64Var(&deg, "angle", 90, "rotation angle in degrees")
	cmd.Flags().BoolVar(&global, "global", false, "rotate about a world axis")
	return cmd
}

func newIntegrateCmd() *cobra.Command {
	var (
		velStr string
		dt     float64
		steps  int
	)
	cmd := &cobra.Command{
		Use:   "integrate [flags] [--] Q",
		Short: "Advance Q under a constant angular velocity",
		Long: `Apply --steps integration steps of --dt seconds under the world
angular velocity --velocity (radians per second) and print the result
with its accumulated drift from unit length.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := parseQuat(args[0])
			if err != nil {
				return err
			}
			av, err := parseVec3(velStr)
			if err != nil {
				return err
			}
			if steps < 0 {
				return fmt.Errorf("steps must not be negative, got %d", steps)
			}
			for range steps {
				q = math3d.IntegrateVec3(q, av, dt)
			}
			printQuat(cmd, q)
			fmt.Fprintf(cmd.OutOrStdout(), "drift: %.3g\n", q.NormError())
			return nil
		},
	}
	cmd.Flags().StringVar(&velStr, "velocity", "0,1,0", "angular velocity in rad/s")
	cmd.Flags().Float64Var(&dt, "dt", 1.0/60, "step length in seconds")
	cmd.Flags().IntVar(&steps, "steps", 1, "number of steps")
	return cmd
}

func newTransformCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transform [flags] [--] Q V",
		Short: "Rotate vector V by Q",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := parseQuat(args[0])
			if err != nil {
				return err
			}
			v, err := parseVec3(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatVec3(v.Rotate(q), precision(cmd)))
			return nil
		},
	}
}

func newScaleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scale [flags] [--] Q F",
		Short: "Scale the rotation angle of Q by F",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := parseQuat(args[0])
			if err != nil {
				return err
			}
			f, err := parseFloat(args[1])
			if err != nil {
				return err
			}
			printQuat(cmd, q.Scale(f))
			return nil
		},
	}
}

func newSlerpCmd() *cobra.Command {
	var nlerp bool
	cmd := &cobra.Command{
		Use:   "slerp [flags] [--] A B T",
		Short: "Interpolate from A to B",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			qs, err := parseQuats(args[:2])
			if err != nil {
				return err
			}
			t, err := parseFloat(args[2])
			if err != nil {
				return err
			}
			if nlerp {
				printQuat(cmd, qs[0].Nlerp(qs[1], t))
			} else {
				printQuat(cmd, qs[0].Slerp(qs[1], t))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&nlerp, "nlerp", false, "normalized linear interpolation")
	return cmd
}
