package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tillvoss/archsketch/pkg/extract"
	"github.com/tillvoss/archsketch/pkg/sketch"
)

// extractCommand creates the extract command: text in, graph JSON out.
func (c *CLI) extractCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Extract an architecture graph from text",
		Long: `Extract an architecture graph from free-form text.

Each input line is matched against the connector rules:

  api gateway -> auth service, database     arrow form, multiple targets
  frontend ui connects to api gateway       verb form
  billing worker                            orphan node

Reads from the given file, or stdin when the argument is "-" or omitted.

Examples:
  archsketch extract arch.txt -o graph.json
  echo "web app -> api" | archsketch extract`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args)
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			g := extract.Extract(text)
			prog.done(fmt.Sprintf("Extracted %d components with %d connections", g.NodeCount(), g.EdgeCount()))

			return writeGraphOutput(g, output, c.Logger)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

// readInput returns the text of the file argument, or stdin for "-" or
// no argument.
func readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}

// readGraphInput loads a graph JSON file, or stdin for "-"/no argument.
func readGraphInput(args []string) (*sketch.Graph, error) {
	if len(args) == 0 || args[0] == "-" {
		return sketch.ReadGraph(os.Stdin)
	}
	return sketch.ReadGraphFile(args[0])
}

// writeGraphOutput serializes g as JSON to path, or stdout if empty.
func writeGraphOutput(g *sketch.Graph, path string, logger *log.Logger) error {
	if path == "" {
		return sketch.WriteGraph(g, os.Stdout)
	}
	if err := sketch.WriteGraphFile(g, path); err != nil {
		return err
	}
	logger.Infof("Wrote graph to %s", path)
	return nil
}
