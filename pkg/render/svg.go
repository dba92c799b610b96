package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/tillvoss/archsketch/pkg/sketch"
)

// Geometry constants for the SVG sink, in canvas units.
const (
	// NodeRadius is the radius of the node circle. Edge segments are
	// shortened by this amount at both ends so arrows meet the rim.
	NodeRadius = 26.0

	// HitRadius is the pick-testing radius interaction layers should use
	// when mapping pointer coordinates to nodes.
	HitRadius = 30.0

	labelHeight  = 18.0
	labelPadding = 6.0
	charWidth    = 7.2 // approximation for the 12px monospace label font
)

// SVGOption configures the SVG sink.
type SVGOption func(*svgRenderer)

// WithBackground sets a solid background color ("" keeps it transparent).
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithoutLabels suppresses the node labels, leaving colored circles only.
func WithoutLabels() SVGOption {
	return func(r *svgRenderer) { r.labels = false }
}

type svgRenderer struct {
	background string
	labels     bool
}

// SVG renders the graph onto a width×height drawing surface.
// Edges draw first so circles sit on top of the line endpoints.
func SVG(g *sketch.Graph, width, height float64, opts ...SVGOption) []byte {
	r := svgRenderer{labels: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	writeDefs(&buf)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill=%q/>`+"\n", r.background)
	}

	for _, e := range g.Edges() {
		writeEdge(&buf, g, e)
	}
	for _, n := range g.Nodes() {
		writeNode(&buf, n, r.labels)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <defs>
    <marker id="arrow" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="7" markerHeight="7" orient="auto-start-reverse">
      <path d="M 0 0 L 10 5 L 0 10 z" fill="#475569"/>
    </marker>
  </defs>
`)
}

// writeEdge draws a directed segment between two node rims. Edges whose
// endpoints sit closer than two radii are skipped rather than drawn
// inside-out.
func writeEdge(buf *bytes.Buffer, g *sketch.Graph, e sketch.Edge) {
	a, okA := g.Node(e.From)
	b, okB := g.Node(e.To)
	if !okA || !okB {
		return
	}

	dx, dy := b.X-a.X, b.Y-a.Y
	d := math.Hypot(dx, dy)
	if d <= 2*NodeRadius {
		return
	}
	ux, uy := dx/d, dy/d

	x1, y1 := a.X+ux*NodeRadius, a.Y+uy*NodeRadius
	x2, y2 := b.X-ux*NodeRadius, b.Y-uy*NodeRadius

	fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#475569" stroke-width="1.5" marker-end="url(#arrow)"/>`+"\n",
		x1, y1, x2, y2)
}

func writeNode(buf *bytes.Buffer, n *sketch.Node, labels bool) {
	fmt.Fprintf(buf, `  <circle cx="%.2f" cy="%.2f" r="%.1f" fill=%q stroke="#1e293b" stroke-width="1.5"/>`+"\n",
		n.X, n.Y, NodeRadius, n.Kind.Color())

	if !labels || n.Label == "" {
		return
	}

	// Label sits on a background rect centered above the circle.
	w := float64(len(n.Label))*charWidth + 2*labelPadding
	x := n.X - w/2
	y := n.Y - NodeRadius - labelHeight - labelPadding
	fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.1f" rx="4" fill="#f8fafc" stroke="#cbd5e1" stroke-width="0.75"/>`+"\n",
		x, y, w, labelHeight)
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" text-anchor="middle" font-family="monospace" font-size="12" fill="#0f172a">%s</text>`+"\n",
		n.X, y+labelHeight-5, escapeXML(n.Label))
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
