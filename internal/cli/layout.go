package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tillvoss/archsketch/pkg/pipeline"
)

// layoutCommand creates the layout command: graph JSON in, positioned
// graph JSON out.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		width      float64
		height     float64
		iterations int
		restLength float64
		spring     float64
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute node positions for a graph",
		Long: `Compute node positions for an extracted graph.

Nodes start on a circle around the canvas center and are relaxed with a
fixed number of spring iterations. The result is deterministic: the same
graph and canvas always produce the same positions.

Reads graph JSON from the given file, or stdin when the argument is "-"
or omitted.

Examples:
  archsketch layout graph.json -o laid.json
  archsketch extract arch.txt | archsketch layout --width 1200 --height 900`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGraphInput(args)
			if err != nil {
				return err
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			lc := cfg.LayoutConfig()
			if iterations > 0 {
				lc.Iterations = iterations
			}
			if restLength > 0 {
				lc.RestLength = restLength
			}
			if spring > 0 {
				lc.Spring = spring
			}

			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(c.Logger)
			laid, err := runner.Layout(cmd.Context(), g, pipeline.Options{
				Width:   width,
				Height:  height,
				Layout:  lc,
				Refresh: refresh,
			})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Positioned %d components on a %gx%g canvas", laid.NodeCount(), width, height))

			return writeGraphOutput(laid, output, c.Logger)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().Float64Var(&width, "width", pipeline.DefaultWidth, "canvas width")
	cmd.Flags().Float64Var(&height, "height", pipeline.DefaultHeight, "canvas height")
	cmd.Flags().IntVar(&iterations, "iterations", 0, "relaxation iterations (0 = config/default)")
	cmd.Flags().Float64Var(&restLength, "rest-length", 0, "spring rest length (0 = config/default)")
	cmd.Flags().Float64Var(&spring, "spring", 0, "spring constant (0 = config/default)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache reads")
	return cmd
}
