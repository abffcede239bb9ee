// spin - quaternion rotation toolkit for the terminal.
//
// spin view shows a glTF model (or a cube) as a wireframe spinning under
// spring-damped angular velocity. spin quat evaluates quaternion
// operations from the command line. spin snapshot renders one frame to a
// PNG file.
package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "spin",
		Short: "Quaternion rotation toolkit for the terminal",
		Long: `spin composes, integrates and interpolates rotations stored as unit
quaternions, and shows the result on a spinning wireframe model.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "", "config file (default: spin.yaml in the user config dir or .)")

	root.AddCommand(
		newViewCmd(),
		newSnapshotCmd(),
		newQuatCmd(),
		newConfigCmd(),
	)
	return root
}

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}
