package cli

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/pointskel/builder"
	"github.com/katalvlaran/pointskel/geom"
)

// Shapes accepted by the synth command.
const (
	shapeLine     = "line"
	shapeCylinder = "cylinder"
	shapeFork     = "fork"
)

// synthCommand creates the synth command.
func (c *CLI) synthCommand() *cobra.Command {
	var (
		output  string
		length  float64
		radius  float64
		perRing int
		noise   float64
		seed    int64
	)

	cmd := &cobra.Command{
		Use:   "synth [line|cylinder|fork]",
		Short: "Write a synthetic point cloud",
		Long: `Write a synthetic point cloud in XYZ format.

  line      samples along the Z axis, one per radius step
  cylinder  rings of samples on a tube around the Z axis
  fork      a vertical trunk splitting into two branches`,
		ValidArgs: []string{shapeLine, shapeCylinder, shapeFork},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !(radius > 0) || !(length > 0) {
				return errors.New("synth: --length and --radius must be positive")
			}
			opts := []builder.BuilderOption{builder.WithSeed(seed), builder.WithNoise(noise)}

			var pts []geom.Vec
			var err error
			switch args[0] {
			case shapeLine:
				pts, err = builder.Line(geom.Vec{}, geom.Vec{Z: length}, int(length/radius)+1, opts...)
			case shapeCylinder:
				pts, err = builder.Cylinder(geom.Vec{}, geom.Vec{Z: length}, radius, int(length/radius)+1, perRing, opts...)
			case shapeFork:
				pts, err = builder.Fork(length, length*0.75, radius, perRing, opts...)
			}
			if err != nil {
				return err
			}

			w, closeFn, err := createOutput(output, cmd.OutOrStdout())
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := writeXYZ(w, pts); err != nil {
				closeFn()
				return err
			}
			c.Logger.Infof("Generated %s %s points", humanize.Comma(int64(len(pts))), args[0])

			return closeFn()
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().Float64Var(&length, "length", 4, "axis length (trunk length for fork)")
	cmd.Flags().Float64Var(&radius, "radius", 0.3, "tube radius; also the ring spacing")
	cmd.Flags().IntVar(&perRing, "per-ring", 8, "samples per ring")
	cmd.Flags().Float64Var(&noise, "noise", 0, "Gaussian noise sigma")
	cmd.Flags().Int64Var(&seed, "seed", builder.DefaultSeed, "random seed for noise")

	return cmd
}
