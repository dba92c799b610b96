package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tillvoss/archsketch/pkg/pipeline"
	"github.com/tillvoss/archsketch/pkg/sketch"
)

// editCommand creates the edit command: an interactive canvas for
// repositioning nodes after the automatic layout.
func (c *CLI) editCommand() *cobra.Command {
	var (
		output  string
		width   float64
		height  float64
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "edit <file>",
		Short: "Interactively reposition diagram nodes",
		Long: `Open an interactive canvas for a diagram.

A .json input is loaded as a positioned graph; any other input is
treated as architecture text and run through extract and layout first.
Dragging a node moves only that node, the automatic layout is never
re-run on top of manual positions.

Keys:
  mouse drag  move a node
  tab         cycle node selection
  arrows      nudge the selected node
  s           save graph JSON
  q           quit

Examples:
  archsketch edit arch.txt -o graph.json
  archsketch edit graph.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadEditable(cmd, args[0], width, height, noCache)
			if err != nil {
				return err
			}
			if g.NodeCount() == 0 {
				return fmt.Errorf("nothing to edit: no components found in %s", args[0])
			}

			if output == "" {
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".json"
			}

			model := newEditorModel(g, width, height, output)
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("editor: %w", err)
			}

			if m, ok := final.(editorModel); ok && m.saved {
				printSuccess("Saved %s", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "graph JSON output (default: input name with .json)")
	cmd.Flags().Float64Var(&width, "width", pipeline.DefaultWidth, "canvas width")
	cmd.Flags().Float64Var(&height, "height", pipeline.DefaultHeight, "canvas height")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

// loadEditable returns a positioned graph for the editor: graph JSON is
// loaded directly, anything else is extracted and laid out.
func (c *CLI) loadEditable(cmd *cobra.Command, path string, width, height float64, noCache bool) (*sketch.Graph, error) {
	if filepath.Ext(path) == ".json" {
		return sketch.ReadGraphFile(path)
	}

	text, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	runner, err := c.newRunner(cmd.Context(), noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	g, err := runner.Extract(cmd.Context(), pipeline.Options{Text: string(text)})
	if err != nil {
		return nil, err
	}
	return runner.Layout(cmd.Context(), g, pipeline.Options{
		Width:  width,
		Height: height,
		Layout: cfg.LayoutConfig(),
	})
}
