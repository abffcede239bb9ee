package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSnapshotCmd() *cobra.Command {
	var (
		orient string
		out    string
		width  int
		height int
		hud    bool
	)
	cmd := &cobra.Command{
		Use:   "snapshot [model.glb]",
		Short: "Render one frame to a PNG file",
		Long: `Render the model (or a cube) at a fixed orientation and save the
framebuffer as a PNG image. --width and --height are in terminal cells;
the image is twice as tall as it is rows.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			q, err := parseQuat(orient)
			if err != nil {
				return err
			}
			q, err = q.NormalizeSafe()
			if err != nil {
				return fmt.Errorf("orientation: %w", err)
			}

			var path string
			if len(args) > 0 {
				path = args[0]
			}
			mesh, err := loadMesh(path)
			if err != nil {
				return err
			}

			v, err := newViewer(cfg, mesh, width, height)
			if err != nil {
				return err
			}
			v.spinner.Orientation = q
			v.showHUD = hud
			v.drawScene()

			if err := v.fb.SavePNG(out); err != nil {
				return fmt.Errorf("save %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d)\n", out, v.fb.Width, v.fb.Height)
			return nil
		},
	}
	addViewFlags(cmd)
	f := cmd.Flags()
	f.StringVar(&orient, "orientation", "0,0,0,1", "model orientation quaternion")
	f.StringVarP(&out, "output", "o", "spin.png", "output file")
	f.IntVar(&width, "width", 80, "width in cells")
	f.IntVar(&height, "height", 24, "height in cells")
	f.BoolVar(&hud, "axes", false, "draw the body axes")
	return cmd
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			b, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
	addViewFlags(cmd)
	return cmd
}
