package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tillvoss/archsketch/pkg/pipeline"
)

// renderCommand creates the render command: text in, diagram out. Runs
// the complete extract → layout → render pipeline.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formats    []string
		width      float64
		height     float64
		background string
		noLabels   bool
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render architecture text as a diagram",
		Long: `Render architecture text as a diagram.

Runs the full pipeline: extract the graph from the text, lay it out, and
write one artifact per requested format. Reads from the given file, or
stdin when the argument is "-" or omitted.

With a single format, --output names the artifact file directly. With
multiple formats, --output is the base name and each artifact gets its
format as extension.

Examples:
  archsketch render arch.txt -o diagram.svg
  archsketch render arch.txt --format svg --format png -o diagram
  echo "web -> api -> db" | archsketch render --format dot`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args)
			if err != nil {
				return err
			}
			if len(formats) == 0 {
				formats = []string{pipeline.FormatSVG}
			}
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(c.Logger)
			result, err := runner.Execute(cmd.Context(), pipeline.Options{
				Text:       text,
				Width:      width,
				Height:     height,
				Layout:     cfg.LayoutConfig(),
				Formats:    formats,
				Background: background,
				NoLabels:   noLabels,
				Refresh:    refresh,
				Logger:     c.Logger,
			})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Rendered %d components with %d connections",
				result.Stats.NodeCount, result.Stats.EdgeCount))

			return writeArtifacts(result.Artifacts, formats, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file or base name (stdout if empty)")
	cmd.Flags().StringSliceVarP(&formats, "format", "f", nil, "output formats: svg, png, dot, json (repeatable)")
	cmd.Flags().Float64Var(&width, "width", pipeline.DefaultWidth, "canvas width")
	cmd.Flags().Float64Var(&height, "height", pipeline.DefaultHeight, "canvas height")
	cmd.Flags().StringVar(&background, "background", "", "background color (e.g. #ffffff)")
	cmd.Flags().BoolVar(&noLabels, "no-labels", false, "omit node labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache reads")
	return cmd
}

// writeArtifacts writes the rendered artifacts. A single format with an
// empty output goes to stdout; otherwise files are derived from output.
func writeArtifacts(artifacts map[string][]byte, formats []string, output string) error {
	if output == "" {
		if len(formats) > 1 {
			return fmt.Errorf("--output is required with multiple formats")
		}
		_, err := os.Stdout.Write(artifacts[formats[0]])
		return err
	}

	for _, format := range formats {
		path := artifactPath(output, format, len(formats) > 1)
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printSuccess("Wrote %s", path)
	}
	return nil
}

// artifactPath derives the file name for a format. With a single format
// an explicit extension on the output name is respected.
func artifactPath(output, format string, multi bool) string {
	if !multi && strings.Contains(filepath.Base(output), ".") {
		return output
	}
	return strings.TrimSuffix(output, "."+format) + "." + format
}
