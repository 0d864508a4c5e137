package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/pointskel/progress"
	"github.com/katalvlaran/pointskel/skeleton"
)

// skeletonFlags are command-line overrides of the config file.
type skeletonFlags struct {
	config   string
	output   string
	root     int
	binSize  float64
	k        int
	workers  int
	spanning string
	mst      string
}

// skeletonCommand creates the skeleton command.
func (c *CLI) skeletonCommand() *cobra.Command {
	var f skeletonFlags
	def := skeleton.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "skeleton [points.xyz]",
		Short: "Reduce a point cloud to a skeleton tree",
		Long: `Reduce a point cloud to a skeleton tree.

The input holds one "x y z" point per line; extra columns, blank lines and
'#' comments are ignored. The output holds one "index x y z parent radius"
line per skeleton node; the root is its own parent.

Settings come from the defaults, then --config, then explicit flags.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(f.config)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("root") {
				cfg.Root = f.root
			}
			if flags.Changed("bin-size") {
				cfg.BinSize = f.binSize
			}
			if flags.Changed("k") {
				cfg.K = f.k
			}
			if flags.Changed("workers") {
				cfg.Workers = f.workers
			}
			if flags.Changed("spanning-tree") {
				cfg.SpanningTree = f.spanning
			}
			if flags.Changed("mst-method") {
				cfg.MSTMethod = f.mst
			}
			return c.runSkeleton(cmd.Context(), args[0], f.output, cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&f.config, "config", "c", "", "TOML config file (see 'pointskel config')")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().IntVar(&f.root, "root", def.Root, "index of the root point")
	cmd.Flags().Float64Var(&f.binSize, "bin-size", def.BinSize, "width of a distance-to-root bin")
	cmd.Flags().IntVar(&f.k, "k", def.K, "neighbors per point in the proximity graph")
	cmd.Flags().IntVar(&f.workers, "workers", def.Workers, "goroutines for per-point stages")
	cmd.Flags().StringVar(&f.spanning, "spanning-tree", def.SpanningTree, "shortest-path or minimum")
	cmd.Flags().StringVar(&f.mst, "mst-method", def.MSTMethod, "prim or kruskal, for --spanning-tree minimum")

	return cmd
}

// runSkeleton reads points, runs the pipeline and writes the skeleton.
func (c *CLI) runSkeleton(ctx context.Context, input, output string, cfg skeleton.Config, stdout io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	watch := c.startWatch()
	pts, err := readXYZFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	watch.done(fmt.Sprintf("Read %s points from %s", humanize.Comma(int64(len(pts))), input))

	watch = c.startWatch()
	sk, err := skeleton.Build(ctx, pts, cfg, skeleton.WithReporter(progress.NewLogReporter(c.Logger)))
	if err != nil {
		return fmt.Errorf("build skeleton: %w", err)
	}
	if sk == nil {
		return errors.New("build skeleton: no proximity graph backend")
	}
	watch.done(fmt.Sprintf("Built %s nodes, average radius %s",
		humanize.Comma(int64(len(sk.Nodes))), humanize.FtoaWithDigits(sk.AverageRadius, 4)))

	w, closeFn, err := createOutput(output, stdout)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	if err := writeSkeleton(w, sk); err != nil {
		closeFn()
		return fmt.Errorf("write skeleton: %w", err)
	}
	if err := closeFn(); err != nil {
		return err
	}
	if output != "" && output != "-" {
		c.Logger.Infof("Wrote %s", output)
	}

	return nil
}
