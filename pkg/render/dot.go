package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/tillvoss/archsketch/pkg/sketch"
)

// ToDOT converts a laid-out graph to Graphviz DOT with pinned positions.
// Coordinates are emitted in points with the Y axis flipped (SVG grows
// downward, Graphviz upward) and the "!" suffix so neato keeps them.
// The resulting string renders with [RenderSVG] or [RenderPNG], or with
// any external DOT tooling.
func ToDOT(g *sketch.Graph, height float64) string {
	var buf bytes.Buffer
	buf.WriteString("digraph sketch {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fontcolor=white, fixedsize=true, width=0.72];\n")
	buf.WriteString("  edge [color=\"#475569\", arrowsize=0.8];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q, pos=\"%.2f,%.2f!\"];\n",
			n.ID, n.Label, n.Kind.Color(), n.X, height-n.Y)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz's neato engine,
// which honors the pinned positions emitted by [ToDOT].
func RenderSVG(dot string) ([]byte, error) {
	return renderDOT(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz's neato engine.
func RenderPNG(dot string) ([]byte, error) {
	return renderDOT(dot, graphviz.PNG)
}

func renderDOT(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
